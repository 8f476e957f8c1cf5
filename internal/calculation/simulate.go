package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ybenarab/dzfisc/internal/catalog"
	"github.com/ybenarab/dzfisc/internal/domain"
)

// criticalShare is the penalty-to-principal ratio at or above which the
// advisory turns critical.
var criticalShare = decimal.NewFromFloat(0.20)

// Simulator combines the per-form principal formulas with the penalty rule
// engine, resolving rules through the effective catalog.
type Simulator struct {
	catalog *catalog.Catalog
}

// NewSimulator creates a simulator over the given catalog.
func NewSimulator(c *catalog.Catalog) *Simulator {
	return &Simulator{catalog: c}
}

// Simulate computes what is owed when the selected obligation is paid on
// paymentDate instead of dueDate. It never fails: unknown form ids fall back
// to the generic principal formula, and unresolvable rule references fall
// back to the flat default rule. Given identical inputs and unchanged
// catalog state the result is identical.
func (s *Simulator) Simulate(formID string, figures domain.Figures, dueDate, paymentDate time.Time) domain.SimulationResult {
	principal := KindForForm(formID).Principal(figures)
	rule := s.catalog.RuleForForm(formID)
	p := ComputePenalty(principal, dueDate, paymentDate, rule)

	return domain.SimulationResult{
		FormID:          formID,
		Principal:       principal,
		Penalty:         p.Penalty,
		Total:           principal.Add(p.Penalty),
		MonthsLate:      p.MonthsLate,
		RuleDescription: rule.Description,
		Breakdown:       p.Breakdown,
		Advisory:        advisory(principal, p),
	}
}

func advisory(principal decimal.Decimal, p PenaltyResult) domain.Advisory {
	if p.MonthsLate == 0 {
		return domain.AdvisoryCompliant
	}
	if p.Penalty.GreaterThanOrEqual(principal.Mul(criticalShare)) {
		return domain.AdvisoryCritical
	}
	return domain.AdvisoryWarning
}
