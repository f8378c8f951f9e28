package parser

import (
	"regexp"
	"strings"
)

var (
	yieldKeyword = regexp.MustCompile(`\byield\b`)

	// yield(a, b) / yield a, b
	// Parenthesized arguments run to the closing paren or brace. Bare ones
	// stop at the first whitespace that does not continue a comma list, so
	// `yield x if ok` yields only x.
	yieldArgsPattern = regexp.MustCompile(`^(?:\s*\(([^)}\n]*)|[ \t]+([^)}\s,]+(?:[ \t]*,[ \t]*[^)}\s,]+)*))`)

	simpleIdentifier = regexp.MustCompile(`^[a-z][a-zA-Z0-9_]*$`)

	// an identifier after whitespace or an opening paren, e.g. `foo(bar)` -> bar
	embeddedIdentifier = regexp.MustCompile(`[\s(]([a-z][a-zA-Z0-9_]*)`)
)

// FallbackYieldParam names yielded values we cannot name from the source
const FallbackYieldParam = "x"

// YieldInfo tells which block tags a method needs
type YieldInfo struct {
	Found      bool     // body yields; emit @yieldparam per Params and @yieldreturn
	Params     []string // names of yielded values
	BlockParam bool     // no yield but an &block parameter; emit a single @yield
}

// DetectYield inspects a method body for yield and falls back to the
// declared parameters for an explicit &block.
func DetectYield(body string, params []Param) YieldInfo {
	loc := yieldKeyword.FindStringIndex(body)
	if loc == nil {
		return YieldInfo{BlockParam: HasBlockParam(params)}
	}

	info := YieldInfo{Found: true}
	m := yieldArgsPattern.FindStringSubmatch(body[loc[1]:])
	if m == nil {
		return info
	}

	args := m[1]
	if args == "" {
		args = m[2]
	}
	for _, arg := range strings.Split(args, ",") {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		info.Params = append(info.Params, yieldParamName(arg))
	}
	return info
}

func yieldParamName(arg string) string {
	if simpleIdentifier.MatchString(arg) {
		return arg
	}
	if m := embeddedIdentifier.FindStringSubmatch(arg); m != nil {
		return m[1]
	}
	return FallbackYieldParam
}
