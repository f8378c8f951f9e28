package snippet

import (
	"strings"

	"github.com/jarredhawkins/yardgen-lsp/internal/parser"
	"github.com/jarredhawkins/yardgen-lsp/internal/types"
)

// StopsPerParam is the number of tab stops a @param line uses: type, name
// and description. Body placeholders are numbered from the same layout.
const StopsPerParam = 3

// Section labels for declarative model macros
var modelLabels = map[types.ConstructKind]string{
	types.KindField:       "# Fields",
	types.KindAssociation: "# Associations",
	types.KindValidation:  "# Validations",
	types.KindDelegate:    "# Delegate",
}

// Options are the user settings that shape generated comments
type Options struct {
	InitialEmptyLine bool
	Author           string
}

// Template is a comment block; every line gets the same indent
type Template struct {
	Indent string
	Lines  []string
}

func (t *Template) add(line string) {
	t.Lines = append(t.Lines, line)
}

func (t *Template) addInitial(opts Options) {
	if opts.InitialEmptyLine {
		t.add("#")
	}
}

// Render joins the lines, each prefixed with the indent
func (t *Template) Render(lineEnding string) string {
	if len(t.Lines) == 0 {
		return ""
	}
	return t.Indent + strings.Join(t.Lines, lineEnding+t.Indent)
}

// ParamStop links a documented parameter to the tab stop of its name
type ParamStop struct {
	Name string
	Stop int
}

// DocumentedParams drops block parameters and anonymous splats
func DocumentedParams(params []parser.Param) []parser.Param {
	var out []parser.Param
	for _, p := range params {
		if p.Block() || p.Name == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// MethodHeader builds the description, @param and @return lines for a method.
// The returned stops tell RewriteBody which numbers the parameter names got.
func MethodHeader(c *Counter, m *types.Construct, params []parser.Param, opts Options) (*Template, []ParamStop) {
	t := &Template{Indent: m.Indent}
	t.addInitial(opts)
	t.add("# " + c.Next("<description>"))
	t.add("#")

	argStart := c.Peek()
	var stops []ParamStop
	for i, p := range DocumentedParams(params) {
		t.add("# @param [" + c.Next("<type>") + "] " + c.Next(p.Name) + " " + c.Next("<description>"))
		stops = append(stops, ParamStop{Name: p.Name, Stop: argStart + i*StopsPerParam + 1})
	}

	if !m.IsConstructor() {
		t.add("#")
		t.add("# @return [" + c.Next("<type>") + "] " + c.Next("<description>"))
	}
	t.add("# ")
	return t, stops
}

// YieldTags builds the block documentation for a method, or nil if the
// method neither yields nor takes an &block.
func YieldTags(c *Counter, indent string, info parser.YieldInfo) *Template {
	t := &Template{Indent: indent}
	switch {
	case info.Found:
		for _, p := range info.Params {
			t.add("# @yieldparam [" + c.Next("<type>") + "] " + c.Next(p) + " " + c.Next("<description>"))
		}
		t.add("# @yieldreturn [" + c.Next("<type>") + "] " + c.Next("<describe what yield should return>"))
	case info.BlockParam:
		t.add("# @yield " + c.Next("<description>"))
		t.add("#")
	default:
		return nil
	}
	return t
}

// RewriteBody escapes snippet syntax in body and turns every occurrence of a
// parameter name into the tab stop the header gave that name.
func RewriteBody(body string, stops []ParamStop) string {
	out := Escape(body)
	for _, s := range stops {
		out = replaceWord(out, s.Name, Placeholder(s.Stop, s.Name))
	}
	return out
}

// replaceWord replaces whole-word occurrences of word. Instance and global
// variables (@word, $word) are different identifiers and are left alone.
func replaceWord(text, word, repl string) string {
	if word == "" {
		return text
	}

	var b strings.Builder
	rest := text
	for {
		i := strings.Index(rest, word)
		if i < 0 {
			b.WriteString(rest)
			return b.String()
		}
		end := i + len(word)
		consumed := len(text) - len(rest)
		before := byte(0)
		if consumed+i > 0 {
			before = text[consumed+i-1]
		}
		after := byte(0)
		if end < len(rest) {
			after = rest[end]
		}

		b.WriteString(rest[:i])
		if isWordChar(before) || isWordChar(after) || before == '@' || before == '$' {
			b.WriteString(word)
		} else {
			b.WriteString(repl)
		}
		rest = rest[end:]
	}
}

// isWordChar returns true if c is a valid Ruby identifier character
func isWordChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '_'
}

// Constant documents an upper-case constant with a single @return line
func Constant(c *Counter, k *types.Construct, opts Options) *Template {
	t := &Template{Indent: k.Indent}
	t.addInitial(opts)
	t.add("# @return [" + c.Next("<type>") + "] " + c.Next("<description>"))
	return t
}

// Module documents a module or class declaration with its author
func Module(c *Counter, k *types.Construct, opts Options) *Template {
	t := &Template{Indent: k.Indent}
	t.addInitial(opts)
	t.add("# " + capitalize(k.Keyword) + " " + k.Name + " provides " + c.Next("<description>"))
	t.add("#")
	t.add("# @author " + c.Next(opts.Author))
	t.add("#")
	return t
}

// Attribute documents attr_reader, attr_writer and attr_accessor declarations
func Attribute(c *Counter, k *types.Construct, opts Options) *Template {
	mode, ok := k.AttributeMode()
	if !ok {
		return nil
	}
	t := &Template{Indent: k.Indent}
	t.addInitial(opts)
	t.add("# @!attribute [" + mode + "] " + k.Name)
	t.add("#   @return [" + c.Next("<type>") + "] " + c.Next("<description>"))
	return t
}

// ModelHelper labels a group of model macros. It has no tab stops.
func ModelHelper(k *types.Construct) *Template {
	label, ok := modelLabels[k.Kind]
	if !ok {
		return nil
	}
	return &Template{Indent: k.Indent, Lines: []string{label}}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
