package domain

// FiscalCategory groups obligation forms under one penalty rule. System
// categories keep a fixed id forever; only their label and rule assignment
// can be overridden. Custom categories are stored whole.
type FiscalCategory struct {
	ID       string `yaml:"id" json:"id"`
	Label    string `yaml:"label" json:"label"`
	RuleID   string `yaml:"rule_id" json:"rule_id"`
	IsSystem bool   `yaml:"is_system" json:"is_system"`
}

// FormDefinition describes one declarable obligation form. For system forms
// the id is the stable identity; label, category and download link are each
// independently overridable. Custom forms are stored whole.
type FormDefinition struct {
	ID          string `yaml:"id" json:"id"`
	Label       string `yaml:"label" json:"label"`
	DefaultLink string `yaml:"default_link" json:"default_link"`
	CategoryID  string `yaml:"category_id" json:"category_id"`
	IsSystem    bool   `yaml:"is_system" json:"is_system"`
}

// Reserved ids of the built-in categories.
const (
	CategoryMonthly = "cat_mensuelles"
	CategoryAnnual  = "cat_annuelles"
	CategorySocial  = "cat_sociales"
	CategoryLocal   = "cat_locales"
)

// Reserved ids of the built-in form definitions.
const (
	FormG50    = "form_g50"
	FormG12    = "form_g12"
	FormLiasse = "form_liasse"
	FormIRG    = "form_irg"
	FormCNAS   = "form_cnas"
	FormCASNOS = "form_casnos"
	FormTF     = "form_tf"
)

// BuiltinCategories returns the immutable default categories, in display
// order. A fresh slice is returned on every call.
func BuiltinCategories() []FiscalCategory {
	return []FiscalCategory{
		{ID: CategoryMonthly, Label: "Déclarations mensuelles", RuleID: RuleMonthly, IsSystem: true},
		{ID: CategoryAnnual, Label: "Déclarations annuelles", RuleID: RuleFixed, IsSystem: true},
		{ID: CategorySocial, Label: "Cotisations sociales", RuleID: RuleMonthly, IsSystem: true},
		{ID: CategoryLocal, Label: "Impôts locaux", RuleID: RuleFlat, IsSystem: true},
	}
}

// BuiltinForms returns the immutable default form definitions, in display
// order. A fresh slice is returned on every call.
func BuiltinForms() []FormDefinition {
	return []FormDefinition{
		{
			ID:          FormG50,
			Label:       "Série G n°50 — Déclaration mensuelle (TVA, TAP, IRG)",
			DefaultLink: "https://www.mfdgi.gov.dz/images/imprimes/G50.pdf",
			CategoryID:  CategoryMonthly,
			IsSystem:    true,
		},
		{
			ID:          FormG12,
			Label:       "Série G n°12 — Déclaration annuelle IFU",
			DefaultLink: "https://www.mfdgi.gov.dz/images/imprimes/G12.pdf",
			CategoryID:  CategoryAnnual,
			IsSystem:    true,
		},
		{
			ID:          FormLiasse,
			Label:       "Liasse fiscale — Bilan et déclaration IBS",
			DefaultLink: "https://www.mfdgi.gov.dz/images/imprimes/G4.pdf",
			CategoryID:  CategoryAnnual,
			IsSystem:    true,
		},
		{
			ID:          FormIRG,
			Label:       "Série G n°1 — Déclaration annuelle des revenus (IRG)",
			DefaultLink: "https://www.mfdgi.gov.dz/images/imprimes/G1.pdf",
			CategoryID:  CategoryAnnual,
			IsSystem:    true,
		},
		{
			ID:          FormCNAS,
			Label:       "Déclaration annuelle des salaires (DAS) — CNAS",
			DefaultLink: "https://www.cnas.dz/documents/das.pdf",
			CategoryID:  CategorySocial,
			IsSystem:    true,
		},
		{
			ID:          FormCASNOS,
			Label:       "Cotisation annuelle — CASNOS",
			DefaultLink: "https://www.casnos.com.dz/documents/declaration.pdf",
			CategoryID:  CategorySocial,
			IsSystem:    true,
		},
		{
			ID:          FormTF,
			Label:       "Taxe foncière et taxe d'assainissement",
			DefaultLink: "https://www.mfdgi.gov.dz/images/imprimes/G31.pdf",
			CategoryID:  CategoryLocal,
			IsSystem:    true,
		},
	}
}
