// Package output renders simulation results, the obligation calendar and the
// effective catalog for the console and for the export collaborators.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/ybenarab/dzfisc/internal/domain"
)

// WriteSimulationReport renders a simulation result in the given format
// (console, json or yaml).
func WriteSimulationReport(w io.Writer, result domain.SimulationResult, format string) error {
	switch format {
	case "console", "":
		writeSimulationConsole(w, result)
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "yaml":
		return yaml.NewEncoder(w).Encode(result)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeSimulationConsole(w io.Writer, result domain.SimulationResult) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "SIMULATION D'OBLIGATION FISCALE")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Formulaire        : %s\n", result.FormID)
	fmt.Fprintf(w, "Principal dû      : %s\n", FormatCurrency(result.Principal))
	fmt.Fprintf(w, "Pénalité          : %s\n", FormatCurrency(result.Penalty))
	fmt.Fprintf(w, "Total à payer     : %s\n", FormatCurrency(result.Total))
	fmt.Fprintf(w, "Mois de retard    : %d\n", result.MonthsLate)
	fmt.Fprintf(w, "Règle appliquée   : %s\n", result.RuleDescription)
	fmt.Fprintf(w, "Avis              : %s\n", advisoryLabel(result.Advisory))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Détail du calcul :")
	for _, line := range strings.Split(result.Breakdown, "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
}

func advisoryLabel(a domain.Advisory) string {
	switch a {
	case domain.AdvisoryCompliant:
		return "conforme"
	case domain.AdvisoryCritical:
		return "critique"
	default:
		return "attention"
	}
}

// WriteCalendar renders the yearly calendar as a console table, marking
// completed events.
func WriteCalendar(w io.Writer, events []domain.FiscalEvent, isComplete func(id string) bool) {
	for _, e := range events {
		mark := "[ ]"
		if isComplete != nil && isComplete(e.ID) {
			mark = "[x]"
		}
		fmt.Fprintf(w, "%s %s  %-42s  (%s)\n",
			mark, e.Date.Format("2006-01-02"), e.Title, strings.Join(e.Regimes, ", "))
	}
}

// CatalogSnapshot is the exportable image of the effective catalog.
type CatalogSnapshot struct {
	Categories []domain.FiscalCategory `yaml:"categories" json:"categories"`
	Forms      []domain.FormDefinition `yaml:"forms" json:"forms"`
	Rules      []domain.PenaltyRule    `yaml:"rules" json:"rules"`
}

// WriteCatalogSnapshot renders the effective catalog as YAML, the shape the
// export collaborators consume.
func WriteCatalogSnapshot(w io.Writer, snap CatalogSnapshot) error {
	return yaml.NewEncoder(w).Encode(snap)
}

// FormatCurrency renders an amount in dinars with two decimals.
func FormatCurrency(d decimal.Decimal) string {
	return d.StringFixed(2) + " DA"
}
