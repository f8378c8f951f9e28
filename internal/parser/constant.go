package parser

import (
	"regexp"

	"github.com/jarredhawkins/yardgen-lsp/internal/types"
)

// MY_CONSTANT = value
var constantPattern = regexp.MustCompile(`^(\s*)([A-Z][A-Z0-9_]*)\s*=\s*.*$`)

// Pattern to detect comparison operators (==, ===)
var constantComparisonPattern = regexp.MustCompile(`^\s*[A-Z][A-Z0-9_]*\s*={2,3}`)

// ConstantMatcher extracts upper-case constant assignments
type ConstantMatcher struct{}

func (m *ConstantMatcher) Name() string  { return "constant" }
func (m *ConstantMatcher) Priority() int { return 80 }

func (m *ConstantMatcher) Match(line string) (*types.Construct, error) {
	// Skip comparison operators (==, ===)
	if constantComparisonPattern.MatchString(line) {
		return nil, nil
	}

	match := constantPattern.FindStringSubmatch(line)
	if match == nil {
		return nil, nil
	}

	return &types.Construct{
		Kind:   types.KindConstant,
		Indent: match[1],
		Name:   match[2],
	}, nil
}
