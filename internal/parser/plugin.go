package parser

import (
	"errors"
	"sort"

	"github.com/jarredhawkins/yardgen-lsp/internal/types"
)

// ErrUnknownAttribute is reported for attr_* keywords we have no YARD mode for
var ErrUnknownAttribute = errors.New("unknown attribute")

// Matcher defines how to recognize a documentable Ruby construct
type Matcher interface {
	// Name returns plugin identifier
	Name() string

	// Match tests if line declares this construct.
	// Returns nil, nil if no match. A non-nil error is a diagnostic
	// for a line that looked like the construct but could not be used.
	Match(line string) (*types.Construct, error)

	// Priority for ordering (higher = earlier)
	Priority() int
}

// Registry holds all registered matchers
type Registry struct {
	matchers []Matcher
	sorted   bool
}

// NewRegistry creates a new empty registry
func NewRegistry() *Registry {
	return &Registry{
		matchers: make([]Matcher, 0),
	}
}

// Register adds a matcher to the registry
func (r *Registry) Register(m Matcher) {
	r.matchers = append(r.matchers, m)
	r.sorted = false
}

// Matchers returns all registered matchers in priority order
func (r *Registry) Matchers() []Matcher {
	if !r.sorted {
		sort.SliceStable(r.matchers, func(i, j int) bool {
			return r.matchers[i].Priority() > r.matchers[j].Priority()
		})
		r.sorted = true
	}
	return r.matchers
}

// MatchAll runs every matcher against line. Unlike a tokenizer, more than one
// matcher may fire for the same line; each produces its own construct.
// Diagnostics from matchers that rejected the line are returned alongside.
func (r *Registry) MatchAll(line string) ([]*types.Construct, []error) {
	var (
		found []*types.Construct
		diags []error
	)
	for _, m := range r.Matchers() {
		c, err := m.Match(line)
		if err != nil {
			diags = append(diags, err)
			continue
		}
		if c != nil {
			found = append(found, c)
		}
	}
	return found, diags
}

// RegisterDefaults adds the default Ruby matchers to the registry
func RegisterDefaults(r *Registry) {
	r.Register(&MethodMatcher{})
	r.Register(&ConstantMatcher{})
	r.Register(&ModuleMatcher{})
	r.Register(&AttributeMatcher{})
	r.Register(FieldMatcher())
	r.Register(AssociationMatcher())
	r.Register(ValidationMatcher())
	r.Register(DelegateMatcher())
}
