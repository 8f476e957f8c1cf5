package calendar

import (
	"github.com/ybenarab/dzfisc/internal/store"
)

// Tracker records which calendar events the user has marked done. The only
// state is presence in the completion map: toggled on, toggled off, nothing
// in between.
type Tracker struct {
	store *store.Store
}

// NewTracker creates a tracker over the given override store.
func NewTracker(st *store.Store) *Tracker {
	return &Tracker{store: st}
}

// Toggle flips the completion mark for an event id: absent becomes done,
// done becomes absent.
func (t *Tracker) Toggle(eventID string) error {
	done := t.store.ReadMap(store.MapCompletion)
	if _, ok := done[eventID]; ok {
		delete(done, eventID)
	} else {
		done[eventID] = "1"
	}
	return t.store.WriteMap(store.MapCompletion, done)
}

// IsComplete reports whether the event has been marked done.
func (t *Tracker) IsComplete(eventID string) bool {
	_, ok := t.store.ReadMap(store.MapCompletion)[eventID]
	return ok
}
