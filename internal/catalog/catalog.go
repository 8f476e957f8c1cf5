// Package catalog exposes the effective fiscal definitions: built-in forms,
// categories and penalty rules merged with administrator overrides and
// custom entities. Defaults are immutable; the catalog stores only diffs and
// computes every effective view at read time, so clearing an override always
// falls back to the built-in value.
package catalog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ybenarab/dzfisc/internal/domain"
	"github.com/ybenarab/dzfisc/internal/log"
	"github.com/ybenarab/dzfisc/internal/store"
)

var (
	// ErrNotFound reports a mutator aimed at an id that does not exist.
	ErrNotFound = errors.New("catalog: entity not found")
	// ErrCategoryInUse blocks deleting a category still referenced by forms.
	ErrCategoryInUse = errors.New("catalog: category is referenced by form definitions")
	// ErrRuleInUse blocks deleting a rule still assigned to a category.
	ErrRuleInUse = errors.New("catalog: rule is assigned to a category")
	// ErrSystemEntity blocks deleting a built-in category or form.
	ErrSystemEntity = errors.New("catalog: built-in entities cannot be deleted")
	// ErrBuiltinRule blocks deleting a reserved rule id.
	ErrBuiltinRule = errors.New("catalog: built-in rules cannot be deleted")
)

// Catalog merges built-ins with the override store. All reads are computed
// on demand; all mutators are synchronous and either fully apply or leave
// state untouched.
type Catalog struct {
	store *store.Store
	log   *log.Logger
}

// New creates a catalog over the given override store.
func New(st *store.Store, logger *log.Logger) *Catalog {
	if logger == nil {
		logger = log.Nop()
	}
	return &Catalog{store: st, log: logger.WithComponent("catalog")}
}

// Categories returns the effective category list: built-ins first with their
// label and rule overrides applied, then custom categories in stored order.
func (c *Catalog) Categories() []domain.FiscalCategory {
	labels := c.store.ReadMap(store.MapCategoryLabels)
	rules := c.store.ReadMap(store.MapCategoryRules)

	cats := domain.BuiltinCategories()
	for i := range cats {
		if label, ok := labels[cats[i].ID]; ok {
			cats[i].Label = label
		}
		if ruleID, ok := rules[cats[i].ID]; ok {
			cats[i].RuleID = ruleID
		}
	}

	var customs []domain.FiscalCategory
	c.store.ReadList(store.ListCustomCategories, &customs)
	return append(cats, customs...)
}

// CategoryByID resolves one effective category.
func (c *Catalog) CategoryByID(id string) (domain.FiscalCategory, bool) {
	for _, cat := range c.Categories() {
		if cat.ID == id {
			return cat, true
		}
	}
	return domain.FiscalCategory{}, false
}

// AllForms returns the effective form definitions: built-ins with label,
// link and category overrides applied, then custom forms (which also honor
// category overrides) in stored order. Hidden forms are included.
func (c *Catalog) AllForms() []domain.FormDefinition {
	labels := c.store.ReadMap(store.MapFormLabels)
	links := c.store.ReadMap(store.MapFormLinks)
	categories := c.store.ReadMap(store.MapFormCategories)

	forms := domain.BuiltinForms()
	for i := range forms {
		if label, ok := labels[forms[i].ID]; ok {
			forms[i].Label = label
		}
		if link, ok := links[forms[i].ID]; ok {
			forms[i].DefaultLink = link
		}
		if cat, ok := categories[forms[i].ID]; ok {
			forms[i].CategoryID = cat
		}
	}

	var customs []domain.FormDefinition
	c.store.ReadList(store.ListCustomForms, &customs)
	for i := range customs {
		if cat, ok := categories[customs[i].ID]; ok {
			customs[i].CategoryID = cat
		}
	}
	return append(forms, customs...)
}

// VisibleForms returns AllForms minus any id present in the hidden set.
func (c *Catalog) VisibleForms() []domain.FormDefinition {
	hidden := c.store.ReadMap(store.MapHiddenForms)
	all := c.AllForms()
	visible := all[:0]
	for _, f := range all {
		if _, ok := hidden[f.ID]; !ok {
			visible = append(visible, f)
		}
	}
	return visible
}

// FormByID resolves one effective form definition, hidden or not.
func (c *Catalog) FormByID(id string) (domain.FormDefinition, bool) {
	for _, f := range c.AllForms() {
		if f.ID == id {
			return f, true
		}
	}
	return domain.FormDefinition{}, false
}

// PenaltyRules returns the effective rule list: every built-in replaced by
// its stored edit when one exists under the same id, then custom rules in
// stored order.
func (c *Catalog) PenaltyRules() []domain.PenaltyRule {
	var stored []domain.PenaltyRule
	c.store.ReadList(store.ListRules, &stored)

	byID := make(map[string]domain.PenaltyRule, len(stored))
	for _, r := range stored {
		byID[r.ID] = r
	}

	rules := domain.BuiltinRules()
	builtin := make(map[string]bool, len(rules))
	for i := range rules {
		builtin[rules[i].ID] = true
		if edited, ok := byID[rules[i].ID]; ok {
			rules[i] = edited
		}
	}
	for _, r := range stored {
		if !builtin[r.ID] {
			rules = append(rules, r)
		}
	}
	return rules
}

// RuleByID resolves an effective rule, falling back to the flat fine when
// the id is absent. Lookup never fails: the engine must always be handed a
// defined rule.
func (c *Catalog) RuleByID(id string) domain.PenaltyRule {
	for _, r := range c.PenaltyRules() {
		if r.ID == id {
			return r
		}
	}
	return domain.DefaultRule()
}

// RuleForForm resolves form → category → rule, falling back to the flat fine
// at every unresolved step.
func (c *Catalog) RuleForForm(formID string) domain.PenaltyRule {
	form, ok := c.FormByID(formID)
	if !ok {
		return domain.DefaultRule()
	}
	cat, ok := c.CategoryByID(form.CategoryID)
	if !ok {
		return domain.DefaultRule()
	}
	return c.RuleByID(cat.RuleID)
}

// AddCustomForm stores a new custom form and returns it with its generated
// id.
func (c *Catalog) AddCustomForm(label, link, categoryID string) (domain.FormDefinition, error) {
	form := domain.FormDefinition{
		ID:          uuid.NewString(),
		Label:       label,
		DefaultLink: link,
		CategoryID:  categoryID,
		IsSystem:    false,
	}
	var customs []domain.FormDefinition
	c.store.ReadList(store.ListCustomForms, &customs)
	customs = append(customs, form)
	if err := c.store.WriteList(store.ListCustomForms, customs); err != nil {
		return domain.FormDefinition{}, err
	}
	c.log.Debug("custom form added", "id", form.ID, "label", label)
	return form, nil
}

// UpdateCustomForm replaces a stored custom form by id.
func (c *Catalog) UpdateCustomForm(form domain.FormDefinition) error {
	var customs []domain.FormDefinition
	c.store.ReadList(store.ListCustomForms, &customs)
	for i := range customs {
		if customs[i].ID == form.ID {
			form.IsSystem = false
			customs[i] = form
			return c.store.WriteList(store.ListCustomForms, customs)
		}
	}
	return fmt.Errorf("%w: custom form %q", ErrNotFound, form.ID)
}

// DeleteCustomForm removes a custom form together with any label, link,
// category override and hidden flag recorded against its id, so no orphaned
// override keys remain.
func (c *Catalog) DeleteCustomForm(id string) error {
	var customs []domain.FormDefinition
	c.store.ReadList(store.ListCustomForms, &customs)
	kept := customs[:0]
	found := false
	for _, f := range customs {
		if f.ID == id {
			found = true
			continue
		}
		kept = append(kept, f)
	}
	if !found {
		return fmt.Errorf("%w: custom form %q", ErrNotFound, id)
	}
	if err := c.store.WriteList(store.ListCustomForms, kept); err != nil {
		return err
	}
	for _, name := range []string{store.MapFormLabels, store.MapFormLinks, store.MapFormCategories, store.MapHiddenForms} {
		if err := c.removeMapEntry(name, id); err != nil {
			return err
		}
	}
	c.log.Debug("custom form deleted", "id", id)
	return nil
}

// ToggleVisibility flips a form id in and out of the hidden set.
func (c *Catalog) ToggleVisibility(id string) error {
	hidden := c.store.ReadMap(store.MapHiddenForms)
	if _, ok := hidden[id]; ok {
		delete(hidden, id)
	} else {
		hidden[id] = "1"
	}
	return c.store.WriteMap(store.MapHiddenForms, hidden)
}

// RenameForm overrides a system form's display label, or edits a custom form
// in place. The built-in label is never lost.
func (c *Catalog) RenameForm(id, label string) error {
	form, ok := c.FormByID(id)
	if !ok {
		return fmt.Errorf("%w: form %q", ErrNotFound, id)
	}
	if form.IsSystem {
		return c.setMapEntry(store.MapFormLabels, id, label)
	}
	form.Label = label
	return c.UpdateCustomForm(form)
}

// SetFormLink overrides a system form's download link, or edits a custom
// form in place.
func (c *Catalog) SetFormLink(id, link string) error {
	form, ok := c.FormByID(id)
	if !ok {
		return fmt.Errorf("%w: form %q", ErrNotFound, id)
	}
	if form.IsSystem {
		return c.setMapEntry(store.MapFormLinks, id, link)
	}
	form.DefaultLink = link
	return c.UpdateCustomForm(form)
}

// ReassignFormCategory points a form (system or custom) at another category
// through the category override map.
func (c *Catalog) ReassignFormCategory(id, categoryID string) error {
	if _, ok := c.FormByID(id); !ok {
		return fmt.Errorf("%w: form %q", ErrNotFound, id)
	}
	if _, ok := c.CategoryByID(categoryID); !ok {
		return fmt.Errorf("%w: category %q", ErrNotFound, categoryID)
	}
	return c.setMapEntry(store.MapFormCategories, id, categoryID)
}

// AddCategory stores a new custom category and returns it with its generated
// id.
func (c *Catalog) AddCategory(label, ruleID string) (domain.FiscalCategory, error) {
	cat := domain.FiscalCategory{
		ID:       uuid.NewString(),
		Label:    label,
		RuleID:   ruleID,
		IsSystem: false,
	}
	var customs []domain.FiscalCategory
	c.store.ReadList(store.ListCustomCategories, &customs)
	customs = append(customs, cat)
	if err := c.store.WriteList(store.ListCustomCategories, customs); err != nil {
		return domain.FiscalCategory{}, err
	}
	c.log.Debug("custom category added", "id", cat.ID, "label", label)
	return cat, nil
}

// RenameCategory overrides a system category's label, or edits a custom
// category in place. The id of a built-in category never changes.
func (c *Catalog) RenameCategory(id, label string) error {
	cat, ok := c.CategoryByID(id)
	if !ok {
		return fmt.Errorf("%w: category %q", ErrNotFound, id)
	}
	if cat.IsSystem {
		return c.setMapEntry(store.MapCategoryLabels, id, label)
	}
	cat.Label = label
	return c.updateCustomCategory(cat)
}

// SetCategoryRule assigns a penalty rule to a category, through the rule
// override map for system categories or in place for custom ones.
func (c *Catalog) SetCategoryRule(id, ruleID string) error {
	cat, ok := c.CategoryByID(id)
	if !ok {
		return fmt.Errorf("%w: category %q", ErrNotFound, id)
	}
	if cat.IsSystem {
		return c.setMapEntry(store.MapCategoryRules, id, ruleID)
	}
	cat.RuleID = ruleID
	return c.updateCustomCategory(cat)
}

// DeleteCategory removes a custom category. Built-ins are refused, and so is
// any category still referenced by a form definition; in both cases nothing
// is mutated.
func (c *Catalog) DeleteCategory(id string) error {
	cat, ok := c.CategoryByID(id)
	if !ok {
		return fmt.Errorf("%w: category %q", ErrNotFound, id)
	}
	if cat.IsSystem {
		return ErrSystemEntity
	}
	for _, f := range c.AllForms() {
		if f.CategoryID == id {
			return fmt.Errorf("%w: %q used by form %q", ErrCategoryInUse, id, f.ID)
		}
	}

	var customs []domain.FiscalCategory
	c.store.ReadList(store.ListCustomCategories, &customs)
	kept := customs[:0]
	for _, other := range customs {
		if other.ID != id {
			kept = append(kept, other)
		}
	}
	if err := c.store.WriteList(store.ListCustomCategories, kept); err != nil {
		return err
	}
	if err := c.removeMapEntry(store.MapCategoryLabels, id); err != nil {
		return err
	}
	if err := c.removeMapEntry(store.MapCategoryRules, id); err != nil {
		return err
	}
	c.log.Debug("custom category deleted", "id", id)
	return nil
}

// SaveRule stores an edited built-in rule (shadowing its default under the
// same id) or a custom rule. A rule without an id gets a fresh one.
func (c *Catalog) SaveRule(rule domain.PenaltyRule) (domain.PenaltyRule, error) {
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	var stored []domain.PenaltyRule
	c.store.ReadList(store.ListRules, &stored)
	replaced := false
	for i := range stored {
		if stored[i].ID == rule.ID {
			stored[i] = rule
			replaced = true
			break
		}
	}
	if !replaced {
		stored = append(stored, rule)
	}
	if err := c.store.WriteList(store.ListRules, stored); err != nil {
		return domain.PenaltyRule{}, err
	}
	c.log.Debug("rule saved", "id", rule.ID, "mode", string(rule.Mode))
	return rule, nil
}

// ResetRule drops the stored edit of a built-in rule, restoring its default.
// For custom ids this behaves like DeleteRule without the reference check.
func (c *Catalog) ResetRule(id string) error {
	var stored []domain.PenaltyRule
	c.store.ReadList(store.ListRules, &stored)
	kept := stored[:0]
	for _, r := range stored {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(stored) {
		return nil
	}
	return c.store.WriteList(store.ListRules, kept)
}

// DeleteRule removes a custom rule. Reserved built-in ids are refused (edit
// them or reset them instead), as is any rule still assigned to a category.
func (c *Catalog) DeleteRule(id string) error {
	for _, r := range domain.BuiltinRules() {
		if r.ID == id {
			return ErrBuiltinRule
		}
	}
	for _, cat := range c.Categories() {
		if cat.RuleID == id {
			return fmt.Errorf("%w: %q assigned to category %q", ErrRuleInUse, id, cat.ID)
		}
	}

	var stored []domain.PenaltyRule
	c.store.ReadList(store.ListRules, &stored)
	kept := stored[:0]
	found := false
	for _, r := range stored {
		if r.ID == id {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return fmt.Errorf("%w: rule %q", ErrNotFound, id)
	}
	return c.store.WriteList(store.ListRules, kept)
}

// ResetOverrides clears every override map, custom list and rule edit,
// restoring the full built-in catalog. Completion marks are left alone.
func (c *Catalog) ResetOverrides() error {
	names := []string{
		store.MapFormLabels, store.MapFormLinks, store.MapFormCategories,
		store.MapCategoryLabels, store.MapCategoryRules, store.MapHiddenForms,
		store.ListCustomForms, store.ListCustomCategories, store.ListRules,
	}
	for _, name := range names {
		if err := c.store.Clear(name); err != nil {
			return err
		}
	}
	c.log.Info("all fiscal overrides reset to defaults")
	return nil
}

func (c *Catalog) updateCustomCategory(cat domain.FiscalCategory) error {
	var customs []domain.FiscalCategory
	c.store.ReadList(store.ListCustomCategories, &customs)
	for i := range customs {
		if customs[i].ID == cat.ID {
			cat.IsSystem = false
			customs[i] = cat
			return c.store.WriteList(store.ListCustomCategories, customs)
		}
	}
	return fmt.Errorf("%w: custom category %q", ErrNotFound, cat.ID)
}

func (c *Catalog) setMapEntry(name, key, value string) error {
	m := c.store.ReadMap(name)
	m[key] = value
	return c.store.WriteMap(name, m)
}

func (c *Catalog) removeMapEntry(name, key string) error {
	m := c.store.ReadMap(name)
	if _, ok := m[key]; !ok {
		return nil
	}
	delete(m, key)
	return c.store.WriteMap(name, m)
}
