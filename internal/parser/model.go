package parser

import (
	"regexp"

	"github.com/jarredhawkins/yardgen-lsp/internal/types"
)

// ModelMatcher recognizes declarative model macros (Mongoid / ActiveRecord).
// They all get a fixed section label instead of a documentation block.
type ModelMatcher struct {
	name     string
	priority int
	kind     types.ConstructKind
	pattern  *regexp.Regexp
}

func (m *ModelMatcher) Name() string  { return m.name }
func (m *ModelMatcher) Priority() int { return m.priority }

func (m *ModelMatcher) Match(line string) (*types.Construct, error) {
	match := m.pattern.FindStringSubmatch(line)
	if match == nil {
		return nil, nil
	}
	return &types.Construct{
		Kind:    m.kind,
		Indent:  match[1],
		Keyword: match[2],
	}, nil
}

// field :name, type: String
func FieldMatcher() *ModelMatcher {
	return &ModelMatcher{
		name:     "field",
		priority: 50,
		kind:     types.KindField,
		pattern:  regexp.MustCompile(`^(\s*)(field)\s*:.*$`),
	}
}

// has_many :comments
// embeds_one :address
func AssociationMatcher() *ModelMatcher {
	return &ModelMatcher{
		name:     "association",
		priority: 40,
		kind:     types.KindAssociation,
		pattern: regexp.MustCompile(
			`^(\s*)(has_many|has_one|belongs_to|has_and_belongs_to_many|embeds_one|embeds_many)\s*:.*$`,
		),
	}
}

// validates :name, presence: true
// validates_presence_of :name
func ValidationMatcher() *ModelMatcher {
	return &ModelMatcher{
		name:     "validation",
		priority: 30,
		kind:     types.KindValidation,
		pattern: regexp.MustCompile(
			`^(\s*)(validate(?:s!?)?|validates_presence_of|validates_absence_of)\s*:.*$`,
		),
	}
}

// delegate :name, to: :owner
func DelegateMatcher() *ModelMatcher {
	return &ModelMatcher{
		name:     "delegate",
		priority: 20,
		kind:     types.KindDelegate,
		pattern:  regexp.MustCompile(`^(\s*)(delegate)\s*:.*$`),
	}
}
