package parser

import (
	"regexp"

	"github.com/jarredhawkins/yardgen-lsp/internal/types"
)

// module MyModule
// class MyParent::MyClass < Base
var modulePattern = regexp.MustCompile(`^(\s*)(module|class)\s+([A-Z][a-zA-Z0-9]*(?:::[A-Z][a-zA-Z0-9]*)*)`)

// ModuleMatcher extracts module and class declarations
type ModuleMatcher struct{}

func (m *ModuleMatcher) Name() string  { return "module_or_class" }
func (m *ModuleMatcher) Priority() int { return 70 }

func (m *ModuleMatcher) Match(line string) (*types.Construct, error) {
	match := modulePattern.FindStringSubmatch(line)
	if match == nil {
		return nil, nil
	}

	return &types.Construct{
		Kind:    types.KindModuleOrClass,
		Indent:  match[1],
		Keyword: match[2],
		Name:    match[3],
	}, nil
}
