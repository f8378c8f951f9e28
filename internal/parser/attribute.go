package parser

import (
	"fmt"
	"regexp"

	"github.com/jarredhawkins/yardgen-lsp/internal/types"
)

// attr_reader :name
// attr_accessor :name, :other
//
// Any attr_* keyword is accepted here so that unsupported ones can be reported.
var attributePattern = regexp.MustCompile(`^(\s*)(attr_[a-z_]+)\s+:([a-z][a-zA-Z0-9_]*)`)

// AttributeMatcher extracts attr_reader, attr_writer and attr_accessor declarations
type AttributeMatcher struct{}

func (m *AttributeMatcher) Name() string  { return "attribute" }
func (m *AttributeMatcher) Priority() int { return 60 }

func (m *AttributeMatcher) Match(line string) (*types.Construct, error) {
	match := attributePattern.FindStringSubmatch(line)
	if match == nil {
		return nil, nil
	}

	c := &types.Construct{
		Kind:    types.KindAttribute,
		Indent:  match[1],
		Keyword: match[2],
		Name:    match[3],
	}
	if _, ok := c.AttributeMode(); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAttribute, c.Keyword)
	}
	return c, nil
}
