package parser

import (
	"regexp"
	"strings"
)

// a = 1
var defaultValuePattern = regexp.MustCompile(`^(.*?)\s*=.*$`)

// b: 1, c:
var keywordParamPattern = regexp.MustCompile(`^([a-z_][a-zA-Z0-9_]*):.*$`)

// Param is one entry of a method's declared parameter list
type Param struct {
	Name  string // bare name: no default value, sigil or keyword colon
	Sigil string // "", "*", "**" or "&"
}

// Block reports whether this is an explicit &block parameter
func (p Param) Block() bool {
	return p.Sigil == "&"
}

// ParseParams splits a raw parameter list. Default values are dropped so
// `limit = 10` is documented as `limit`, including ones holding commas like
// `opts = { a: 1, b: 2 }`; `*args` and `opts:` become `args` and `opts`.
func ParseParams(raw string) []Param {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var params []Param
	for _, part := range splitTopLevel(raw) {
		name := strings.TrimSpace(part)
		if m := defaultValuePattern.FindStringSubmatch(name); m != nil {
			name = m[1]
		}

		var sigil string
		for _, s := range []string{"**", "*", "&"} {
			if strings.HasPrefix(name, s) {
				sigil = s
				name = strings.TrimSpace(name[len(s):])
				break
			}
		}
		if m := keywordParamPattern.FindStringSubmatch(name); m != nil {
			name = m[1]
		}

		// anonymous splats and blocks (`*`, `&`) still count as parameters
		if name == "" && sigil == "" {
			continue
		}
		params = append(params, Param{Name: name, Sigil: sigil})
	}
	return params
}

// HasBlockParam reports whether any parameter is an explicit &block
func HasBlockParam(params []Param) bool {
	for _, p := range params {
		if p.Block() {
			return true
		}
	}
	return false
}
