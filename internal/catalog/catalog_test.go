package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ybenarab/dzfisc/internal/domain"
	"github.com/ybenarab/dzfisc/internal/store"
)

func newTestCatalog(t *testing.T) (*Catalog, *store.Store) {
	t.Helper()
	st := store.New(store.NewMemoryKV(), nil, nil)
	return New(st, nil), st
}

func TestCategoriesDefaults(t *testing.T) {
	c, _ := newTestCatalog(t)

	cats := c.Categories()
	require.Equal(t, len(domain.BuiltinCategories()), len(cats))
	assert.Equal(t, domain.CategoryMonthly, cats[0].ID) // built-in order preserved
	for _, cat := range cats {
		assert.True(t, cat.IsSystem)
	}
}

func TestRenameCategoryOverridesLabelOnly(t *testing.T) {
	c, _ := newTestCatalog(t)

	require.NoError(t, c.RenameCategory(domain.CategoryMonthly, "Mensuel (modifié)"))

	cat, ok := c.CategoryByID(domain.CategoryMonthly)
	require.True(t, ok)
	assert.Equal(t, "Mensuel (modifié)", cat.Label)
	assert.True(t, cat.IsSystem)
	assert.Equal(t, domain.RuleMonthly, cat.RuleID) // untouched
}

func TestOverridePrecedenceIsStable(t *testing.T) {
	// Writing then clearing an override returns the effective value to
	// exactly the built-in one.
	c, st := newTestCatalog(t)
	original, ok := c.FormByID(domain.FormG50)
	require.True(t, ok)

	require.NoError(t, c.RenameForm(domain.FormG50, "autre libellé"))
	renamed, _ := c.FormByID(domain.FormG50)
	assert.Equal(t, "autre libellé", renamed.Label)

	require.NoError(t, st.Clear(store.MapFormLabels))
	restored, _ := c.FormByID(domain.FormG50)
	assert.Equal(t, original, restored)
}

func TestSystemFormOverrides(t *testing.T) {
	c, _ := newTestCatalog(t)

	require.NoError(t, c.RenameForm(domain.FormG50, "G50 (agence)"))
	require.NoError(t, c.SetFormLink(domain.FormG50, "https://intranet.example.dz/g50.pdf"))
	require.NoError(t, c.ReassignFormCategory(domain.FormG50, domain.CategoryLocal))

	f, ok := c.FormByID(domain.FormG50)
	require.True(t, ok)
	assert.Equal(t, "G50 (agence)", f.Label)
	assert.Equal(t, "https://intranet.example.dz/g50.pdf", f.DefaultLink)
	assert.Equal(t, domain.CategoryLocal, f.CategoryID)
	assert.True(t, f.IsSystem) // identity is stable, only attributes move
}

func TestReassignToUnknownCategoryRefused(t *testing.T) {
	c, _ := newTestCatalog(t)
	err := c.ReassignFormCategory(domain.FormG50, "cat_inexistante")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomFormLifecycle(t *testing.T) {
	c, st := newTestCatalog(t)

	form, err := c.AddCustomForm("Déclaration interne", "https://example.dz/interne.pdf", domain.CategoryLocal)
	require.NoError(t, err)
	require.NotEmpty(t, form.ID)
	assert.False(t, form.IsSystem)

	got, ok := c.FormByID(form.ID)
	require.True(t, ok)
	assert.Equal(t, form, got)

	// Pile overrides onto it, then delete: every override entry must go too.
	require.NoError(t, c.ReassignFormCategory(form.ID, domain.CategoryMonthly))
	require.NoError(t, c.ToggleVisibility(form.ID))
	require.NoError(t, c.DeleteCustomForm(form.ID))

	_, ok = c.FormByID(form.ID)
	assert.False(t, ok)
	for _, name := range []string{store.MapFormLabels, store.MapFormLinks, store.MapFormCategories, store.MapHiddenForms} {
		_, present := st.ReadMap(name)[form.ID]
		assert.False(t, present, "orphaned override left in %s", name)
	}
}

func TestDeleteCustomFormUnknown(t *testing.T) {
	c, _ := newTestCatalog(t)
	assert.ErrorIs(t, c.DeleteCustomForm("nope"), ErrNotFound)
}

func TestToggleVisibility(t *testing.T) {
	c, _ := newTestCatalog(t)
	total := len(c.AllForms())

	require.NoError(t, c.ToggleVisibility(domain.FormTF))
	assert.Len(t, c.VisibleForms(), total-1)
	assert.Len(t, c.AllForms(), total) // hidden, not removed

	require.NoError(t, c.ToggleVisibility(domain.FormTF))
	assert.Len(t, c.VisibleForms(), total)
}

func TestDeleteCategoryReferencedIsRefused(t *testing.T) {
	c, _ := newTestCatalog(t)

	cat, err := c.AddCategory("Divers", domain.RuleFlat)
	require.NoError(t, err)
	_, err = c.AddCustomForm("Formulaire divers", "", cat.ID)
	require.NoError(t, err)

	before := c.Categories()
	err = c.DeleteCategory(cat.ID)
	assert.ErrorIs(t, err, ErrCategoryInUse)
	assert.Equal(t, before, c.Categories()) // nothing mutated
}

func TestDeleteCategoryUnreferenced(t *testing.T) {
	c, _ := newTestCatalog(t)

	cat, err := c.AddCategory("Divers", domain.RuleFlat)
	require.NoError(t, err)
	require.NoError(t, c.DeleteCategory(cat.ID))
	_, ok := c.CategoryByID(cat.ID)
	assert.False(t, ok)
}

func TestDeleteSystemCategoryRefused(t *testing.T) {
	c, _ := newTestCatalog(t)
	assert.ErrorIs(t, c.DeleteCategory(domain.CategoryMonthly), ErrSystemEntity)
}

func TestEditedBuiltinRuleShadowsDefault(t *testing.T) {
	c, _ := newTestCatalog(t)

	edited := domain.PenaltyRule{
		ID:       domain.RuleFixed,
		Name:     "Majoration durcie",
		Mode:     domain.ModeFixedRate,
		BaseRate: decimal.NewFromInt(35),
	}
	_, err := c.SaveRule(edited)
	require.NoError(t, err)

	rules := c.PenaltyRules()
	assert.Len(t, rules, len(domain.BuiltinRules())) // shadowed, not appended
	got := c.RuleByID(domain.RuleFixed)
	assert.True(t, got.BaseRate.Equal(decimal.NewFromInt(35)))

	// Resetting the edit restores the default.
	require.NoError(t, c.ResetRule(domain.RuleFixed))
	got = c.RuleByID(domain.RuleFixed)
	assert.True(t, got.BaseRate.Equal(decimal.NewFromInt(25)), "got %s", got.BaseRate)
}

func TestCustomRuleLifecycle(t *testing.T) {
	c, _ := newTestCatalog(t)

	rule, err := c.SaveRule(domain.PenaltyRule{
		Name:        "Astreinte conventionnelle",
		Mode:        domain.ModeFixedAmount,
		FixedAmount: decimal.NewFromInt(10000),
	})
	require.NoError(t, err)
	require.NotEmpty(t, rule.ID)
	assert.Len(t, c.PenaltyRules(), len(domain.BuiltinRules())+1)

	// Assigned to a category, deletion is refused.
	require.NoError(t, c.SetCategoryRule(domain.CategoryLocal, rule.ID))
	assert.ErrorIs(t, c.DeleteRule(rule.ID), ErrRuleInUse)

	// Unassigned, it can be deleted.
	require.NoError(t, c.SetCategoryRule(domain.CategoryLocal, domain.RuleFlat))
	require.NoError(t, c.DeleteRule(rule.ID))
	assert.Len(t, c.PenaltyRules(), len(domain.BuiltinRules()))
}

func TestDeleteBuiltinRuleRefused(t *testing.T) {
	c, _ := newTestCatalog(t)
	assert.ErrorIs(t, c.DeleteRule(domain.RuleMonthly), ErrBuiltinRule)
}

func TestRuleByIDFallsBackToFlat(t *testing.T) {
	c, _ := newTestCatalog(t)
	got := c.RuleByID("rule_fantome")
	assert.Equal(t, domain.RuleFlat, got.ID)
}

func TestRuleForFormResolution(t *testing.T) {
	c, _ := newTestCatalog(t)

	// G50 -> monthly category -> monthly rule.
	assert.Equal(t, domain.RuleMonthly, c.RuleForForm(domain.FormG50).ID)

	// A category pointing at a missing rule falls back to the flat fine.
	require.NoError(t, c.SetCategoryRule(domain.CategoryMonthly, "rule_disparue"))
	assert.Equal(t, domain.RuleFlat, c.RuleForForm(domain.FormG50).ID)

	// Unknown form id falls back too.
	assert.Equal(t, domain.RuleFlat, c.RuleForForm("form_fantome").ID)
}

func TestResetOverridesRestoresDefaults(t *testing.T) {
	c, _ := newTestCatalog(t)

	require.NoError(t, c.RenameForm(domain.FormG50, "x"))
	require.NoError(t, c.RenameCategory(domain.CategoryMonthly, "y"))
	_, err := c.AddCustomForm("z", "", domain.CategoryLocal)
	require.NoError(t, err)
	_, err = c.SaveRule(domain.PenaltyRule{ID: domain.RuleMonthly, Mode: domain.ModeFixedAmount})
	require.NoError(t, err)

	require.NoError(t, c.ResetOverrides())

	assert.Equal(t, domain.BuiltinForms(), c.AllForms())
	assert.Equal(t, domain.BuiltinCategories(), c.Categories())
	assert.Equal(t, domain.BuiltinRules(), c.PenaltyRules())
}

func TestMutatorsNotifyObservers(t *testing.T) {
	st := store.New(store.NewMemoryKV(), nil, nil)
	c := New(st, nil)

	notified := 0
	unsubscribe := st.Notifier().Subscribe(func() { notified++ })
	defer unsubscribe()

	require.NoError(t, c.RenameForm(domain.FormG50, "notifié"))
	assert.Equal(t, 1, notified)

	require.NoError(t, c.ToggleVisibility(domain.FormG50))
	assert.Equal(t, 2, notified)
}
