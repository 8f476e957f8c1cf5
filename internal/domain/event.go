package domain

import "time"

// Tax regime tags carried by calendar events. An event applies to a taxpayer
// when at least one of its regimes matches.
const (
	RegimeReel      = "reel"      // régime du réel
	RegimeIFU       = "ifu"       // impôt forfaitaire unique
	RegimeEmployeur = "employeur" // obligations of employers
)

// EventType distinguishes one-off annual deadlines from generated monthly
// recurrences.
type EventType string

const (
	EventAnnual  EventType = "annual"
	EventMonthly EventType = "monthly"
)

// FiscalEvent is one due date on the obligation calendar. Events are derived
// on demand and never persisted; the ID is stable across generations of the
// same logical event so completion marks survive regeneration.
type FiscalEvent struct {
	ID          string    `yaml:"id" json:"id"`
	Title       string    `yaml:"title" json:"title"`
	Date        time.Time `yaml:"date" json:"date"`
	Type        EventType `yaml:"type" json:"type"`
	Description string    `yaml:"description" json:"description"`
	FormLink    string    `yaml:"form_link" json:"form_link"`
	Regimes     []string  `yaml:"regimes" json:"regimes"`
}

// AppliesTo reports whether the event concerns the given regime. An empty
// regime matches everything.
func (e FiscalEvent) AppliesTo(regime string) bool {
	if regime == "" {
		return true
	}
	for _, r := range e.Regimes {
		if r == regime {
			return true
		}
	}
	return false
}
