package rules

import (
	"fmt"
	"sync"

	"doclint/internal/diag"
)

// Rule checks one declaration.
type Rule interface {
	Name() string
	Description() string
	Check(ctx *Context)
}

// Entry is a registered rule with the severity it reports at.
type Entry struct {
	Rule     Rule
	Severity diag.Severity
}

// Registry collects the rules enabled for a run.
type Registry struct {
	mu      sync.Mutex
	entries []Entry
	byName  map[string]int // name -> index into entries
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make([]Entry, 0),
		byName:  make(map[string]int),
	}
}

// Add registers rule at sev. Names must be unique.
func (r *Registry) Add(rule Rule, sev diag.Severity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.byName[rule.Name()]; dup {
		return fmt.Errorf("rule %q already registered", rule.Name())
	}
	r.byName[rule.Name()] = len(r.entries)
	r.entries = append(r.entries, Entry{Rule: rule, Severity: sev})
	return nil
}

// All returns the registered entries in registration order.
func (r *Registry) All() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Lookup finds an entry by rule name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, ok := r.byName[name]
	if !ok {
		return Entry{}, false
	}
	return r.entries[idx], true
}

// Filter returns entries whose rule is named in names.
// If names is empty, returns all entries.
func (r *Registry) Filter(names []string) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(names) == 0 {
		return append([]Entry(nil), r.entries...)
	}
	allowed := make(map[string]bool, len(names))
	for _, n := range names {
		allowed[n] = true
	}
	var result []Entry
	for _, e := range r.entries {
		if allowed[e.Rule.Name()] {
			result = append(result, e)
		}
	}
	return result
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Run checks one declaration with every registered rule, in order. ctx is
// not modified; each rule gets a copy carrying its own severity.
func (r *Registry) Run(ctx *Context) {
	for _, e := range r.All() {
		c := *ctx
		c.Severity = e.Severity
		e.Rule.Check(&c)
	}
}

// Info describes a built-in rule for listings.
type Info struct {
	Name        string
	Description string
	Fixable     bool
}

// Builtin lists the rules doclint ships, in registration order.
func Builtin() []Info {
	return []Info{
		{Name: diag.RuleCheckParamNames, Description: checkParamNamesDescription, Fixable: true},
		{Name: diag.RuleRequirePropertyDescription, Description: requirePropertyDescriptionDescription},
	}
}
