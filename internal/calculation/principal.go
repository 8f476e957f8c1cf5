package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/ybenarab/dzfisc/internal/domain"
)

// ObligationKind selects the principal formula for a form. Each built-in
// form maps to one kind; anything unrecognized computes as KindGeneric.
type ObligationKind int

const (
	// KindGeneric uses the single Amount figure as-is.
	KindGeneric ObligationKind = iota
	// KindMonthlyDeclaration sums the three duties of the monthly G50.
	KindMonthlyDeclaration
	// KindIFUAnnual applies the IFU rate to the declared turnover.
	KindIFUAnnual
	// KindIBSBalance applies the IBS rate to the taxable profit.
	KindIBSBalance
	// KindPayrollContribution applies the employer CNAS rate to gross payroll.
	KindPayrollContribution
	// KindIndependentContribution applies the CASNOS rate to declared income.
	KindIndependentContribution
)

// Statutory rates used by the per-form principal formulas, in percent.
var (
	ifuRate          = decimal.NewFromInt(5)
	ibsRate          = decimal.NewFromInt(19)
	cnasEmployerRate = decimal.NewFromInt(26)
	casnosRate       = decimal.NewFromInt(15)
)

// KindForForm maps a form id to its obligation kind. Unknown ids, including
// administrator-created custom forms, fall back to the generic amount.
func KindForForm(formID string) ObligationKind {
	switch formID {
	case domain.FormG50:
		return KindMonthlyDeclaration
	case domain.FormG12:
		return KindIFUAnnual
	case domain.FormLiasse:
		return KindIBSBalance
	case domain.FormCNAS:
		return KindPayrollContribution
	case domain.FormCASNOS:
		return KindIndependentContribution
	default:
		return KindGeneric
	}
}

// Principal computes the base amount owed for this kind from the entered
// figures. Negative figures are coerced to zero.
func (k ObligationKind) Principal(f domain.Figures) decimal.Decimal {
	switch k {
	case KindMonthlyDeclaration:
		return nonNegative(f.TVA).Add(nonNegative(f.TAP)).Add(nonNegative(f.IRG))
	case KindIFUAnnual:
		return nonNegative(f.TaxableBase).Mul(ifuRate).Div(oneHundred)
	case KindIBSBalance:
		return nonNegative(f.TaxableBase).Mul(ibsRate).Div(oneHundred)
	case KindPayrollContribution:
		return nonNegative(f.Payroll).Mul(cnasEmployerRate).Div(oneHundred)
	case KindIndependentContribution:
		return nonNegative(f.TaxableBase).Mul(casnosRate).Div(oneHundred)
	default:
		return nonNegative(f.Amount)
	}
}
