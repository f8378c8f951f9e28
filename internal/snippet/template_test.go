package snippet

import (
	"reflect"
	"strings"
	"testing"

	"github.com/jarredhawkins/yardgen-lsp/internal/parser"
	"github.com/jarredhawkins/yardgen-lsp/internal/types"
)

func method(line string) *types.Construct {
	c, _ := (&parser.MethodMatcher{}).Match(line)
	return c
}

func TestMethodHeader(t *testing.T) {
	m := method("  def add(a, b = 2)")
	params := parser.ParseParams(m.Args)

	tpl, stops := MethodHeader(NewCounter(), m, params, Options{})
	want := []string{
		"# ${1:<description>}",
		"#",
		"# @param [${2:<type>}] ${3:a} ${4:<description>}",
		"# @param [${5:<type>}] ${6:b} ${7:<description>}",
		"#",
		"# @return [${8:<type>}] ${9:<description>}",
		"# ",
	}
	if !reflect.DeepEqual(tpl.Lines, want) {
		t.Errorf("unexpected lines:\n%s", strings.Join(tpl.Lines, "\n"))
	}
	if tpl.Indent != "  " {
		t.Errorf("expected indent of the def line, got %q", tpl.Indent)
	}

	wantStops := []ParamStop{{Name: "a", Stop: 3}, {Name: "b", Stop: 6}}
	if !reflect.DeepEqual(stops, wantStops) {
		t.Errorf("expected stops %v, got %v", wantStops, stops)
	}
}

func TestMethodHeaderConstructorAndBlock(t *testing.T) {
	m := method("def initialize(name, &block)")
	params := parser.ParseParams(m.Args)

	tpl, stops := MethodHeader(NewCounter(), m, params, Options{InitialEmptyLine: true})
	want := []string{
		"#",
		"# ${1:<description>}",
		"#",
		"# @param [${2:<type>}] ${3:name} ${4:<description>}",
		"# ",
	}
	if !reflect.DeepEqual(tpl.Lines, want) {
		t.Errorf("unexpected lines:\n%s", strings.Join(tpl.Lines, "\n"))
	}
	if len(stops) != 1 || stops[0].Name != "name" {
		t.Errorf("expected only name to get a stop, got %v", stops)
	}
}

func TestYieldTags(t *testing.T) {
	c := NewCounter()
	tpl := YieldTags(c, "", parser.YieldInfo{Found: true, Params: []string{"x"}})
	want := []string{
		"# @yieldparam [${1:<type>}] ${2:x} ${3:<description>}",
		"# @yieldreturn [${4:<type>}] ${5:<describe what yield should return>}",
	}
	if !reflect.DeepEqual(tpl.Lines, want) {
		t.Errorf("unexpected yield lines: %v", tpl.Lines)
	}

	tpl = YieldTags(c, "", parser.YieldInfo{BlockParam: true})
	if !reflect.DeepEqual(tpl.Lines, []string{"# @yield ${6:<description>}", "#"}) {
		t.Errorf("unexpected block lines: %v", tpl.Lines)
	}

	if YieldTags(c, "", parser.YieldInfo{}) != nil {
		t.Error("expected no template without yield or block")
	}
}

func TestRewriteBody(t *testing.T) {
	body := "def add(a, b)\n  @a = a\n  $b = b\n  a_b = a + ab + b\n  \"${a}\"\nend\n"
	got := RewriteBody(body, []ParamStop{{Name: "a", Stop: 3}, {Name: "b", Stop: 6}})
	want := "def add(${3:a}, ${6:b})\n" +
		"  @a = ${3:a}\n" +
		"  \\$b = ${6:b}\n" +
		"  a_b = ${3:a} + ab + ${6:b}\n" +
		"  \"\\${${3:a}\\}\"\n" +
		"end\n"
	if got != want {
		t.Errorf("unexpected body:\n%s\nwant:\n%s", got, want)
	}
	if Expand(got) != body {
		t.Errorf("expanding the rewritten body should give back the original, got:\n%s", Expand(got))
	}
}

func TestRewriteBodySplat(t *testing.T) {
	body := "def log(*args)\n  puts args.join\nend\n"
	m := method("def log(*args)")
	_, stops := MethodHeader(NewCounter(), m, parser.ParseParams(m.Args), Options{})

	got := RewriteBody(body, stops)
	want := "def log(*${3:args})\n  puts ${3:args}.join\nend\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRender(t *testing.T) {
	tpl := &Template{Indent: "  ", Lines: []string{"# one", "#", "# two"}}
	if got := tpl.Render("\r\n"); got != "  # one\r\n  #\r\n  # two" {
		t.Errorf("unexpected render %q", got)
	}
	if got := (&Template{}).Render("\n"); got != "" {
		t.Errorf("expected empty render, got %q", got)
	}
}

func TestConstructTemplates(t *testing.T) {
	opts := Options{Author: "jane"}

	constant := &types.Construct{Kind: types.KindConstant, Name: "MAX"}
	if got := Constant(NewCounter(), constant, opts).Lines; !reflect.DeepEqual(got, []string{
		"# @return [${1:<type>}] ${2:<description>}",
	}) {
		t.Errorf("unexpected constant lines %v", got)
	}
	if got := Constant(NewCounter(), constant, Options{InitialEmptyLine: true}).Lines; len(got) != 2 || got[0] != "#" {
		t.Errorf("expected a leading blank line, got %v", got)
	}

	mod := &types.Construct{Kind: types.KindModuleOrClass, Keyword: "class", Name: "Billing::Invoice"}
	if got := Module(NewCounter(), mod, opts).Lines; !reflect.DeepEqual(got, []string{
		"# Class Billing::Invoice provides ${1:<description>}",
		"#",
		"# @author ${2:jane}",
		"#",
	}) {
		t.Errorf("unexpected module lines %v", got)
	}

	attr := &types.Construct{Kind: types.KindAttribute, Keyword: "attr_writer", Name: "secret"}
	if got := Attribute(NewCounter(), attr, opts).Lines; !reflect.DeepEqual(got, []string{
		"# @!attribute [w] secret",
		"#   @return [${1:<type>}] ${2:<description>}",
	}) {
		t.Errorf("unexpected attribute lines %v", got)
	}
	if Attribute(NewCounter(), &types.Construct{Kind: types.KindAttribute, Keyword: "attr_internal"}, opts) != nil {
		t.Error("expected no template for an unknown attribute keyword")
	}

	assoc := &types.Construct{Kind: types.KindAssociation, Indent: "  ", Keyword: "has_many"}
	if got := ModelHelper(assoc).Render("\n"); got != "  # Associations" {
		t.Errorf("unexpected association label %q", got)
	}
	for kind, label := range map[types.ConstructKind]string{
		types.KindField:      "# Fields",
		types.KindValidation: "# Validations",
		types.KindDelegate:   "# Delegate",
	} {
		if got := ModelHelper(&types.Construct{Kind: kind}).Lines; !reflect.DeepEqual(got, []string{label}) {
			t.Errorf("%v: expected %q, got %v", kind, label, got)
		}
	}
}
