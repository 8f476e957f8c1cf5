// Package calendar derives the yearly obligation calendar and tracks which
// deadlines the user has marked done.
package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/ybenarab/dzfisc/internal/domain"
)

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// Generator derives the obligation calendar for a year. It is stateless:
// every call rebuilds the full list, and event ids are stable across calls
// so completion marks keyed on them stay valid.
type Generator struct{}

// Year returns every obligation due date of the given calendar year, sorted
// by date ascending: the fixed annual deadlines plus twelve monthly
// declaration entries.
func (Generator) Year(year int) []domain.FiscalEvent {
	events := annualEvents(year)
	events = append(events, monthlyDeclarations(year)...)
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.Before(events[j].Date)
		}
		return events[i].ID < events[j].ID
	})
	return events
}

// ForRegime returns the year's events restricted to one regime tag.
func (g Generator) ForRegime(year int, regime string) []domain.FiscalEvent {
	all := g.Year(year)
	filtered := all[:0]
	for _, e := range all {
		if e.AppliesTo(regime) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func annualEvents(year int) []domain.FiscalEvent {
	date := func(month time.Month, day int) time.Time {
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	}
	return []domain.FiscalEvent{
		{
			ID:          fmt.Sprintf("das-%d", year),
			Title:       "Déclaration annuelle des salaires (DAS)",
			Date:        date(time.January, 31),
			Type:        domain.EventAnnual,
			Description: fmt.Sprintf("Dépôt auprès de la CNAS de la déclaration des salaires versés en %d.", year-1),
			FormLink:    "https://www.cnas.dz/documents/das.pdf",
			Regimes:     []string{domain.RegimeEmployeur},
		},
		{
			ID:          fmt.Sprintf("liasse-%d", year),
			Title:       "Liasse fiscale et solde IBS",
			Date:        date(time.April, 30),
			Type:        domain.EventAnnual,
			Description: fmt.Sprintf("Dépôt du bilan fiscal de l'exercice %d et paiement du solde de liquidation IBS.", year-1),
			FormLink:    "https://www.mfdgi.gov.dz/images/imprimes/G4.pdf",
			Regimes:     []string{domain.RegimeReel},
		},
		{
			ID:          fmt.Sprintf("irg-%d", year),
			Title:       "Déclaration annuelle des revenus (G n°1)",
			Date:        date(time.April, 30),
			Type:        domain.EventAnnual,
			Description: fmt.Sprintf("Déclaration globale des revenus de l'année %d.", year-1),
			FormLink:    "https://www.mfdgi.gov.dz/images/imprimes/G1.pdf",
			Regimes:     []string{domain.RegimeReel},
		},
		{
			ID:          fmt.Sprintf("g12-%d", year),
			Title:       "Déclaration prévisionnelle IFU (G n°12)",
			Date:        date(time.June, 30),
			Type:        domain.EventAnnual,
			Description: "Déclaration prévisionnelle du chiffre d'affaires soumis à l'impôt forfaitaire unique.",
			FormLink:    "https://www.mfdgi.gov.dz/images/imprimes/G12.pdf",
			Regimes:     []string{domain.RegimeIFU},
		},
		{
			ID:          fmt.Sprintf("casnos-%d", year),
			Title:       "Cotisation annuelle CASNOS",
			Date:        date(time.June, 30),
			Type:        domain.EventAnnual,
			Description: "Paiement de la cotisation annuelle de sécurité sociale des non-salariés.",
			FormLink:    "https://www.casnos.com.dz/documents/declaration.pdf",
			Regimes:     []string{domain.RegimeReel, domain.RegimeIFU},
		},
		{
			ID:          fmt.Sprintf("tf-%d", year),
			Title:       "Taxe foncière et taxe d'assainissement",
			Date:        date(time.December, 31),
			Type:        domain.EventAnnual,
			Description: "Paiement de la taxe foncière sur les propriétés bâties et de la taxe d'assainissement.",
			FormLink:    "https://www.mfdgi.gov.dz/images/imprimes/G31.pdf",
			Regimes:     []string{domain.RegimeReel, domain.RegimeIFU},
		},
	}
}

// monthlyDeclarations generates the twelve G50 entries, due the 20th of each
// month. A declaration always covers the month before its due date, so the
// January entry is labeled with December of the previous year.
func monthlyDeclarations(year int) []domain.FiscalEvent {
	events := make([]domain.FiscalEvent, 0, 12)
	for month := time.January; month <= time.December; month++ {
		covered := month - 1
		coveredYear := year
		if covered < time.January {
			covered = time.December
			coveredYear = year - 1
		}
		label := fmt.Sprintf("%s %d", frenchMonths[covered-1], coveredYear)
		events = append(events, domain.FiscalEvent{
			ID:          fmt.Sprintf("g50-%d-%02d", year, int(month)),
			Title:       fmt.Sprintf("Déclaration G n°50 : %s", label),
			Date:        time.Date(year, month, 20, 0, 0, 0, 0, time.UTC),
			Type:        domain.EventMonthly,
			Description: fmt.Sprintf("Déclaration et paiement de la TVA, la TAP et l'IRG/salaires au titre de %s.", label),
			FormLink:    "https://www.mfdgi.gov.dz/images/imprimes/G50.pdf",
			Regimes:     []string{domain.RegimeReel, domain.RegimeEmployeur},
		})
	}
	return events
}
