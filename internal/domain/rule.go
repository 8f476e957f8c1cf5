package domain

import (
	"github.com/shopspring/decimal"
)

// PenaltyMode selects how a late payment penalty is computed.
type PenaltyMode string

const (
	// ModeCumulative applies a base rate plus a per-month increment, optionally capped.
	ModeCumulative PenaltyMode = "cumulative"
	// ModeFixedRate applies the base rate once, regardless of how late the payment is.
	ModeFixedRate PenaltyMode = "fixed_rate"
	// ModeFixedAmount applies a flat amount, regardless of principal and lateness.
	ModeFixedAmount PenaltyMode = "fixed_amount"
)

// PenaltyRule describes one penalty formula. Which fields are meaningful
// depends on Mode: cumulative uses BaseRate/MonthlyIncrement/MaxRate,
// fixed_rate uses BaseRate only, fixed_amount uses FixedAmount only.
// Unused fields are ignored, never validated away.
type PenaltyRule struct {
	ID               string          `yaml:"id" json:"id"`
	Name             string          `yaml:"name" json:"name"`
	Mode             PenaltyMode     `yaml:"mode" json:"mode"`
	BaseRate         decimal.Decimal `yaml:"base_rate" json:"base_rate"`                 // percent
	MonthlyIncrement decimal.Decimal `yaml:"monthly_increment" json:"monthly_increment"` // percent per started month
	MaxRate          decimal.Decimal `yaml:"max_rate" json:"max_rate"`                   // percent cap, zero = uncapped
	FixedAmount      decimal.Decimal `yaml:"fixed_amount" json:"fixed_amount"`           // DA
	Description      string          `yaml:"description" json:"description"`
}

// Reserved ids of the built-in penalty rules.
const (
	RuleMonthly = "rule_monthly"
	RuleFixed   = "rule_fixed"
	RuleFlat    = "rule_flat"
)

// BuiltinRules returns the immutable default penalty rules. Callers receive a
// fresh slice on every call; edits never reach the defaults.
func BuiltinRules() []PenaltyRule {
	return []PenaltyRule{
		{
			ID:               RuleMonthly,
			Name:             "Pénalité de retard de paiement",
			Mode:             ModeCumulative,
			BaseRate:         decimal.NewFromInt(10),
			MonthlyIncrement: decimal.NewFromInt(3),
			MaxRate:          decimal.NewFromInt(25),
			Description:      "10% majorés de 3% par mois de retard entamé, plafonnée à 25% (art. 402 CPF)",
		},
		{
			ID:          RuleFixed,
			Name:        "Majoration pour défaut de déclaration",
			Mode:        ModeFixedRate,
			BaseRate:    decimal.NewFromInt(25),
			Description: "Majoration unique de 25% des droits dus, quelle que soit la durée du retard",
		},
		{
			ID:          RuleFlat,
			Name:        "Amende forfaitaire",
			Mode:        ModeFixedAmount,
			FixedAmount: decimal.NewFromInt(2500),
			Description: "Amende fiscale forfaitaire de 2 500 DA, indépendante du montant dû",
		},
	}
}

// DefaultRule is the rule applied whenever a rule reference cannot be
// resolved. The engine must always be handed a defined rule, so lookups fall
// back to the flat fine rather than failing.
func DefaultRule() PenaltyRule {
	for _, r := range BuiltinRules() {
		if r.ID == RuleFlat {
			return r
		}
	}
	// unreachable while RuleFlat stays in BuiltinRules
	return PenaltyRule{ID: RuleFlat, Mode: ModeFixedAmount}
}
