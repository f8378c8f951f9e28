package parser

import (
	"regexp"
	"strings"

	"github.com/jarredhawkins/yardgen-lsp/internal/types"
)

// def my_method
// def my_method(args)
// def my_method args
// def self.my_class_method
// def ==(other)
var methodPattern = regexp.MustCompile(`^(\s*)def\s+([^\s(]+)(.*)$`)

// what may follow the argument list: nothing or a comment
var methodTailPattern = regexp.MustCompile(`^\s*(?:#.*)?$`)

// def my_method a, b # comment
var bareArgsPattern = regexp.MustCompile(`^[ \t]+([^#]*?)\s*(?:#.*)?$`)

// MethodMatcher extracts method definitions
type MethodMatcher struct{}

func (m *MethodMatcher) Name() string  { return "method" }
func (m *MethodMatcher) Priority() int { return 90 }

func (m *MethodMatcher) Match(line string) (*types.Construct, error) {
	match := methodPattern.FindStringSubmatch(line)
	if match == nil {
		return nil, nil
	}

	c := &types.Construct{
		Kind:   types.KindMethod,
		Indent: match[1],
		Name:   match[2],
	}

	rest := match[3]
	if trimmed := strings.TrimLeft(rest, " \t"); strings.HasPrefix(trimmed, "(") {
		// parenthesized; balance parens so a comment after them stays a comment
		end := matchingParen(trimmed, 0)
		if end < 0 || !methodTailPattern.MatchString(trimmed[end+1:]) {
			return nil, nil
		}
		c.Args = trimmed[1:end]
		c.HasArgs = true
		return c, nil
	}

	if methodTailPattern.MatchString(rest) {
		return c, nil
	}
	bare := bareArgsPattern.FindStringSubmatch(rest)
	if bare == nil {
		return nil, nil
	}
	if bare[1] != "" {
		c.Args = bare[1]
		c.HasArgs = true
	}
	return c, nil
}
