// Package calculation implements the penalty rule engine and the obligation
// simulation engine: deterministic money math over the effective catalog.
package calculation

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ybenarab/dzfisc/internal/domain"
)

// PenaltyResult is the outcome of applying one penalty rule to a late
// payment.
type PenaltyResult struct {
	Penalty     decimal.Decimal
	DaysLate    int
	MonthsLate  int
	AppliedRate decimal.Decimal // percent; zero for fixed-amount rules
	Breakdown   string
}

var oneHundred = decimal.NewFromInt(100)

// ComputePenalty applies rule to a payment of principal due on dueDate and
// made on paymentDate. Paying on or before the due date always yields a zero
// penalty. Lateness is converted to started months using fixed 30-day
// months, not calendar months; the resulting off-by-a-few-days behavior
// around month boundaries is a known simplification kept for parity with the
// published penalty tables.
func ComputePenalty(principal decimal.Decimal, dueDate, paymentDate time.Time, rule domain.PenaltyRule) PenaltyResult {
	principal = nonNegative(principal)

	days := daysBetween(dueDate, paymentDate)
	if days <= 0 {
		return PenaltyResult{
			Penalty:   decimal.Zero,
			Breakdown: "Échéance respectée : aucune pénalité de retard.",
		}
	}
	months := (days + 29) / 30 // ceil(days/30), days >= 1

	switch rule.Mode {
	case domain.ModeCumulative:
		return cumulativePenalty(principal, days, months, rule)
	case domain.ModeFixedRate:
		return fixedRatePenalty(principal, days, months, rule)
	case domain.ModeFixedAmount:
		return fixedAmountPenalty(days, months, rule)
	default:
		// Unknown mode behaves like the flat default so the caller always
		// gets a number.
		return fixedAmountPenalty(days, months, domain.DefaultRule())
	}
}

func cumulativePenalty(principal decimal.Decimal, days, months int, rule domain.PenaltyRule) PenaltyResult {
	base := nonNegative(rule.BaseRate)
	increment := nonNegative(rule.MonthlyIncrement)
	maxRate := nonNegative(rule.MaxRate)

	rate := base.Add(increment.Mul(decimal.NewFromInt(int64(months))))
	capped := false
	if maxRate.IsPositive() && rate.GreaterThan(maxRate) {
		rate = maxRate
		capped = true
	}
	penalty := principal.Mul(rate).Div(oneHundred)

	var b strings.Builder
	fmt.Fprintf(&b, "Retard de paiement : %d jours, soit %d mois entamés (mois de 30 jours)\n", days, months)
	fmt.Fprintf(&b, "Taux applicable : %s%% + %d x %s%% = %s%%", base, months, increment, base.Add(increment.Mul(decimal.NewFromInt(int64(months)))))
	if capped {
		fmt.Fprintf(&b, ", ramené au plafond de %s%%", maxRate)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Pénalité : %s x %s%% = %s DA", principal.StringFixed(2), rate, penalty.StringFixed(2))

	return PenaltyResult{
		Penalty:     penalty,
		DaysLate:    days,
		MonthsLate:  months,
		AppliedRate: rate,
		Breakdown:   b.String(),
	}
}

func fixedRatePenalty(principal decimal.Decimal, days, months int, rule domain.PenaltyRule) PenaltyResult {
	rate := nonNegative(rule.BaseRate)
	penalty := principal.Mul(rate).Div(oneHundred)

	var b strings.Builder
	fmt.Fprintf(&b, "Retard de paiement : %d jours, soit %d mois entamés (mois de 30 jours)\n", days, months)
	fmt.Fprintf(&b, "Majoration unique de %s%%, indépendante de la durée du retard\n", rate)
	fmt.Fprintf(&b, "Pénalité : %s x %s%% = %s DA", principal.StringFixed(2), rate, penalty.StringFixed(2))

	return PenaltyResult{
		Penalty:     penalty,
		DaysLate:    days,
		MonthsLate:  months,
		AppliedRate: rate,
		Breakdown:   b.String(),
	}
}

func fixedAmountPenalty(days, months int, rule domain.PenaltyRule) PenaltyResult {
	amount := nonNegative(rule.FixedAmount)

	var b strings.Builder
	fmt.Fprintf(&b, "Retard de paiement : %d jours, soit %d mois entamés (mois de 30 jours)\n", days, months)
	fmt.Fprintf(&b, "Amende forfaitaire : %s DA, indépendante du principal et de la durée du retard", amount.StringFixed(2))

	return PenaltyResult{
		Penalty:    amount,
		DaysLate:   days,
		MonthsLate: months,
		Breakdown:  b.String(),
	}
}

// daysBetween counts whole calendar days from one date to another, ignoring
// the time of day.
func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
