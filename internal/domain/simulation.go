package domain

import (
	"github.com/shopspring/decimal"
)

// Advisory is the qualitative reading of a simulation outcome. It is derived
// from the numbers, never stored.
type Advisory string

const (
	AdvisoryCompliant Advisory = "compliant"
	AdvisoryWarning   Advisory = "warning"
	AdvisoryCritical  Advisory = "critical"
)

// Figures carries the user-entered base amounts for a simulation. Which
// fields matter depends on the selected form: the monthly declaration sums
// its three duties, annual declarations apply a statutory rate to a taxable
// base, and everything else falls back to the generic Amount.
type Figures struct {
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
	TVA         decimal.Decimal `yaml:"tva" json:"tva"`
	TAP         decimal.Decimal `yaml:"tap" json:"tap"`
	IRG         decimal.Decimal `yaml:"irg" json:"irg"`
	TaxableBase decimal.Decimal `yaml:"taxable_base" json:"taxable_base"`
	Payroll     decimal.Decimal `yaml:"payroll" json:"payroll"`
}

// SimulationResult is the combined outcome of a lateness simulation:
// principal owed, penalty, and the audit trail of how the penalty was
// reached. The export collaborators consume this shape as-is.
type SimulationResult struct {
	FormID          string          `yaml:"form_id" json:"form_id"`
	Principal       decimal.Decimal `yaml:"principal" json:"principal"`
	Penalty         decimal.Decimal `yaml:"penalty" json:"penalty"`
	Total           decimal.Decimal `yaml:"total" json:"total"`
	MonthsLate      int             `yaml:"months_late" json:"months_late"`
	RuleDescription string          `yaml:"rule_description" json:"rule_description"`
	Breakdown       string          `yaml:"breakdown" json:"breakdown"`
	Advisory        Advisory        `yaml:"advisory" json:"advisory"`
}
