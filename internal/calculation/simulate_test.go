package calculation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ybenarab/dzfisc/internal/catalog"
	"github.com/ybenarab/dzfisc/internal/domain"
	"github.com/ybenarab/dzfisc/internal/store"
)

func newTestSimulator(t *testing.T) (*Simulator, *catalog.Catalog) {
	t.Helper()
	st := store.New(store.NewMemoryKV(), nil, nil)
	cat := catalog.New(st, nil)
	return NewSimulator(cat), cat
}

func TestPrincipalDispatch(t *testing.T) {
	figures := domain.Figures{
		Amount:      decimal.NewFromInt(7000),
		TVA:         decimal.NewFromInt(40000),
		TAP:         decimal.NewFromInt(10000),
		IRG:         decimal.NewFromInt(50000),
		TaxableBase: decimal.NewFromInt(1000000),
		Payroll:     decimal.NewFromInt(300000),
	}

	tests := []struct {
		name     string
		formID   string
		expected decimal.Decimal
	}{
		{"G50 sums its three duties", domain.FormG50, decimal.NewFromInt(100000)},
		{"G12 applies the IFU rate", domain.FormG12, decimal.NewFromInt(50000)},
		{"liasse applies the IBS rate", domain.FormLiasse, decimal.NewFromInt(190000)},
		{"CNAS applies the employer rate to payroll", domain.FormCNAS, decimal.NewFromInt(78000)},
		{"CASNOS applies its rate to the base", domain.FormCASNOS, decimal.NewFromInt(150000)},
		{"IRG annual uses the generic amount", domain.FormIRG, decimal.NewFromInt(7000)},
		{"unknown form falls back to the generic amount", "form_xyz", decimal.NewFromInt(7000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KindForForm(tt.formID).Principal(figures)
			assert.True(t, got.Equal(tt.expected), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestSimulateWorkedExample(t *testing.T) {
	// G50 with TVA+TAP+IRG = 100000, due 2025-03-20 and paid 2025-06-25:
	// 97 days late, 4 started months, 22% under the monthly rule.
	sim, _ := newTestSimulator(t)

	figures := domain.Figures{
		TVA: decimal.NewFromInt(40000),
		TAP: decimal.NewFromInt(10000),
		IRG: decimal.NewFromInt(50000),
	}
	result := sim.Simulate(domain.FormG50, figures, date(2025, time.March, 20), date(2025, time.June, 25))

	assert.True(t, result.Principal.Equal(decimal.NewFromInt(100000)), "principal %s", result.Principal)
	assert.True(t, result.Penalty.Equal(decimal.NewFromInt(22000)), "penalty %s", result.Penalty)
	assert.True(t, result.Total.Equal(decimal.NewFromInt(122000)), "total %s", result.Total)
	assert.Equal(t, 4, result.MonthsLate)
	assert.Equal(t, domain.AdvisoryCritical, result.Advisory)
	assert.Contains(t, result.Breakdown, "97 jours")
}

func TestSimulateCompliant(t *testing.T) {
	sim, _ := newTestSimulator(t)

	result := sim.Simulate(domain.FormG50, domain.Figures{TVA: decimal.NewFromInt(40000)},
		date(2025, time.March, 20), date(2025, time.March, 15))

	assert.True(t, result.Penalty.IsZero())
	assert.True(t, result.Total.Equal(result.Principal))
	assert.Equal(t, domain.AdvisoryCompliant, result.Advisory)
}

func TestSimulateAdvisoryThreshold(t *testing.T) {
	sim, _ := newTestSimulator(t)
	figures := domain.Figures{TVA: decimal.NewFromInt(100000)}
	due := date(2025, time.March, 20)

	// One started month: 13% < 20% of principal -> warning.
	result := sim.Simulate(domain.FormG50, figures, due, due.AddDate(0, 0, 5))
	assert.Equal(t, domain.AdvisoryWarning, result.Advisory)

	// Four started months: 22% >= 20% -> critical.
	result = sim.Simulate(domain.FormG50, figures, due, due.AddDate(0, 0, 97))
	assert.Equal(t, domain.AdvisoryCritical, result.Advisory)
}

func TestSimulateUnknownFormFallsBackToFlatRule(t *testing.T) {
	// An unresolvable form id resolves to the generic principal and the flat
	// default rule: the caller always gets a number.
	sim, _ := newTestSimulator(t)

	result := sim.Simulate("form_inconnu", domain.Figures{Amount: decimal.NewFromInt(50000)},
		date(2025, time.March, 20), date(2025, time.April, 20))

	flat := domain.DefaultRule()
	assert.True(t, result.Penalty.Equal(flat.FixedAmount), "penalty %s", result.Penalty)
	assert.Equal(t, flat.Description, result.RuleDescription)
}

func TestSimulateFollowsCategoryReassignment(t *testing.T) {
	sim, cat := newTestSimulator(t)
	figures := domain.Figures{TVA: decimal.NewFromInt(100000)}
	due := date(2025, time.March, 20)
	paid := due.AddDate(0, 0, 97)

	before := sim.Simulate(domain.FormG50, figures, due, paid)
	assert.True(t, before.Penalty.Equal(decimal.NewFromInt(22000)), "penalty %s", before.Penalty)

	// Point the monthly category at the flat fine instead.
	require.NoError(t, cat.SetCategoryRule(domain.CategoryMonthly, domain.RuleFlat))

	after := sim.Simulate(domain.FormG50, figures, due, paid)
	assert.True(t, after.Penalty.Equal(decimal.NewFromInt(2500)), "penalty %s", after.Penalty)
}

func TestSimulateIsIdempotent(t *testing.T) {
	sim, _ := newTestSimulator(t)
	figures := domain.Figures{TVA: decimal.NewFromInt(40000), TAP: decimal.NewFromInt(10000)}
	due := date(2025, time.March, 20)
	paid := date(2025, time.June, 25)

	first := sim.Simulate(domain.FormG50, figures, due, paid)
	second := sim.Simulate(domain.FormG50, figures, due, paid)
	assert.Equal(t, first, second)
}
