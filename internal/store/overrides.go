package store

import (
	"encoding/json"

	"github.com/ybenarab/dzfisc/internal/log"
)

// Names of the persisted override maps and custom-entity lists. Everything
// fiscal lives under a fiscal_ prefix in the KV collaborator.
const (
	MapFormLabels     = "fiscal_form_labels"     // form id -> label override
	MapFormLinks      = "fiscal_form_links"      // form id -> link override
	MapFormCategories = "fiscal_form_categories" // form id -> category override
	MapCategoryLabels = "fiscal_category_labels" // category id -> label override
	MapCategoryRules  = "fiscal_category_rules"  // category id -> rule override
	MapHiddenForms    = "fiscal_hidden_forms"    // form id -> "1" when hidden
	MapCompletion     = "fiscal_done"            // event id -> "1" when done

	ListCustomForms      = "fiscal_custom_forms"
	ListCustomCategories = "fiscal_custom_categories"
	ListRules            = "fiscal_rules" // edited built-ins and custom rules
)

// Store persists override maps and custom-entity lists on the KV
// collaborator and emits a change notification after every write. Reads
// never fail: missing or corrupt blobs come back as empty values, favoring
// availability over strictness.
type Store struct {
	kv       KV
	notifier *Notifier
	log      *log.Logger
}

// New creates a Store over the given KV. The notifier may be shared with
// other components; pass nil to disable notifications.
func New(kv KV, notifier *Notifier, logger *log.Logger) *Store {
	if notifier == nil {
		notifier = NewNotifier()
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &Store{kv: kv, notifier: notifier, log: logger.WithComponent("store")}
}

// Notifier exposes the change signal for subscribers.
func (s *Store) Notifier() *Notifier { return s.notifier }

// ReadMap returns the named override map. Absent or undecodable data yields
// an empty map.
func (s *Store) ReadMap(name string) map[string]string {
	m := make(map[string]string)
	s.readJSON(name, &m)
	if m == nil {
		m = make(map[string]string)
	}
	return m
}

// WriteMap replaces the named override map wholesale (last writer wins) and
// notifies observers.
func (s *Store) WriteMap(name string, m map[string]string) error {
	return s.writeJSON(name, m)
}

// ReadList decodes the named custom-entity list into out (a pointer to a
// slice). Absent or undecodable data leaves out untouched.
func (s *Store) ReadList(name string, out any) {
	s.readJSON(name, out)
}

// WriteList replaces the named custom-entity list wholesale and notifies
// observers.
func (s *Store) WriteList(name string, list any) error {
	return s.writeJSON(name, list)
}

func (s *Store) readJSON(name string, out any) {
	raw, ok, err := s.kv.Get(name)
	if err != nil {
		s.log.Warn("read failed, treating as empty", "key", name, "error", err)
		return
	}
	if !ok || raw == "" {
		return
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.log.Warn("corrupt stored value, treating as empty", "key", name, "error", err)
	}
}

func (s *Store) writeJSON(name string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := s.kv.Set(name, string(raw)); err != nil {
		return err
	}
	s.log.Debug("override written", "key", name)
	s.notifier.Notify()
	return nil
}

// Clear removes the named map or list entirely, restoring defaults for
// whatever it overrode, and notifies observers.
func (s *Store) Clear(name string) error {
	if err := s.kv.Delete(name); err != nil {
		return err
	}
	s.log.Debug("override cleared", "key", name)
	s.notifier.Notify()
	return nil
}
