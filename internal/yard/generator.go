package yard

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jarredhawkins/yardgen-lsp/internal/config"
	"github.com/jarredhawkins/yardgen-lsp/internal/parser"
	"github.com/jarredhawkins/yardgen-lsp/internal/snippet"
	"github.com/jarredhawkins/yardgen-lsp/internal/types"
)

// Edit replaces Start..End of the original buffer with Snippet.
// Snippet uses ${N:default} tab stops; see snippet.Expand for plain text.
type Edit struct {
	Start   int
	End     int
	Snippet string
	Kinds   []types.ConstructKind
}

// Result of one command invocation
type Result struct {
	// Edits are ordered from the end of the buffer to the start and never
	// overlap, so they can be applied one after another.
	Edits []Edit

	// Diagnostics are non-fatal problems worth showing the user
	Diagnostics []error
}

// Generator runs the documentation command
type Generator struct {
	registry *parser.Registry
	logger   *zap.Logger
}

// NewGenerator creates a generator using the matchers in registry
func NewGenerator(registry *parser.Registry, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		registry: registry,
		logger:   logger,
	}
}

// Registry returns the matchers the generator runs
func (g *Generator) Registry() *parser.Registry {
	return g.registry
}

// Generate documents every construct under the given selections.
// Settings are read once here and used for the whole invocation.
func (g *Generator) Generate(buf Buffer, sels []Selection, settings config.Settings) Result {
	var res Result
	if len(sels) == 0 {
		return res
	}
	// Only do this for ruby scope
	if !buf.IsRuby(sels[0].End) {
		g.logger.Debug("not a ruby buffer, skipping")
		return res
	}

	text := buf.Text()
	lt := newLineTable(text)
	run := &invocation{
		gen:      g,
		text:     text,
		lines:    lt,
		le:       buf.LineEnding(),
		counter:  snippet.NewCounter(),
		scanner:  parser.NewBodyScanner(g.logger, settings.Debug),
		settings: settings,
		opts: snippet.Options{
			InitialEmptyLine: settings.InitialEmptyLine,
			Author:           settings.ResolveAuthor(),
		},
	}

	// Later selections first so earlier offsets stay valid
	ordered := append([]Selection(nil), sels...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start > ordered[j].Start
	})

	seen := make(map[int]bool)
	for _, sel := range ordered {
		line := lt.lineAt(sel.Start)
		if seen[line] {
			continue
		}
		seen[line] = true

		edit, diags := run.documentLine(line)
		res.Diagnostics = append(res.Diagnostics, diags...)
		if edit == nil {
			continue
		}
		if overlapsAny(*edit, res.Edits) {
			// This selection sits on a method whose body holds another
			// selection; the inner edit already claimed that text.
			res.Diagnostics = append(res.Diagnostics,
				fmt.Errorf("line %d: method body overlaps another selection, skipped", line+1))
			continue
		}
		res.Edits = append(res.Edits, *edit)
	}
	return res
}

func overlapsAny(e Edit, edits []Edit) bool {
	for _, o := range edits {
		if e.Start < o.End && o.Start < e.End {
			return true
		}
		if o.Start == o.End && e.Start < o.Start && o.Start < e.End {
			return true
		}
	}
	return false
}

// invocation is the working set of one Generate call
type invocation struct {
	gen      *Generator
	text     string
	lines    *lineTable
	le       string
	counter  *snippet.Counter
	scanner  *parser.BodyScanner
	settings config.Settings
	opts     snippet.Options
}

// documentLine runs every matcher on one line and merges the results into a
// single edit starting at that line: comment blocks first, in matcher order,
// then the rewritten method if one was found.
func (r *invocation) documentLine(line int) (*Edit, []error) {
	text := r.lines.line(line)
	constructs, errs := r.gen.registry.MatchAll(text)

	var diags []error
	for _, err := range errs {
		r.gen.logger.Warn("skipping construct", zap.Int("line", line+1), zap.Error(err))
		diags = append(diags, fmt.Errorf("line %d: %w", line+1, err))
	}
	if len(constructs) == 0 {
		return nil, diags
	}

	start := r.lines.start(line)
	edit := &Edit{Start: start, End: start}
	var comments strings.Builder
	var method string

	for _, c := range constructs {
		c.Line = line
		if c.Kind == types.KindMethod {
			s, end, diag := r.method(c)
			if diag != nil {
				diags = append(diags, diag)
			}
			method = s
			edit.End = end
			edit.Kinds = append(edit.Kinds, c.Kind)
			continue
		}

		t := r.template(c)
		if t == nil {
			continue
		}
		comments.WriteString(t.Render(r.le))
		comments.WriteString(r.le)
		edit.Kinds = append(edit.Kinds, c.Kind)
	}

	edit.Snippet = comments.String() + method
	if edit.Snippet == "" {
		return nil, diags
	}
	r.gen.logger.Debug("generated documentation",
		zap.Int("line", line+1),
		zap.Strings("kinds", kindNames(edit.Kinds)))
	return edit, diags
}

func (r *invocation) template(c *types.Construct) *snippet.Template {
	switch c.Kind {
	case types.KindConstant:
		return snippet.Constant(r.counter, c, r.opts)
	case types.KindModuleOrClass:
		return snippet.Module(r.counter, c, r.opts)
	case types.KindAttribute:
		return snippet.Attribute(r.counter, c, r.opts)
	case types.KindField, types.KindAssociation, types.KindValidation, types.KindDelegate:
		return snippet.ModelHelper(c)
	default:
		return nil
	}
}

// method documents a method and rewrites its body. It returns the snippet
// replacing the def line through the line holding the method's end, and the
// offset where that region stops.
func (r *invocation) method(c *types.Construct) (string, int, error) {
	scan := r.scanner.FindMethodEnd(r.lines.lines(), c.Line)

	var diag error
	if scan.HitCeiling && r.settings.Debug {
		diag = fmt.Errorf("line %d: no end found within %d lines, documented up to line %d",
			c.Line+1, parser.MaxScanLines, scan.EndLine+1)
	}

	regionStart := r.lines.start(c.Line)
	regionEnd := r.lines.start(scan.EndLine + 1)
	body := r.text[regionStart:regionEnd]

	params := parser.ParseParams(c.Args)
	header, stops := snippet.MethodHeader(r.counter, c, params, r.opts)
	yields := snippet.YieldTags(r.counter, c.Indent, parser.DetectYield(body, params))

	var b strings.Builder
	b.WriteString(header.Render(r.le))
	if yields != nil {
		b.WriteString(r.le)
		b.WriteString(yields.Render(r.le))
	}
	b.WriteString(r.le)
	b.WriteString(snippet.RewriteBody(body, stops))

	out := strings.TrimRight(b.String(), "\r\n")
	if strings.HasSuffix(body, "\n") {
		out += r.le
	}
	return out, regionEnd, diag
}

func kindNames(kinds []types.ConstructKind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = k.String()
	}
	return out
}

// ApplyEdits applies edits to text. With plain set, tab stops are expanded
// to their default text; otherwise snippet syntax is kept as is.
func ApplyEdits(text string, edits []Edit, plain bool) string {
	ordered := append([]Edit(nil), edits...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start > ordered[j].Start
	})
	for _, e := range ordered {
		s := e.Snippet
		if plain {
			s = snippet.Expand(s)
		}
		text = text[:e.Start] + s + text[e.End:]
	}
	return text
}
