package snippet

import (
	"testing"
)

func TestCounter(t *testing.T) {
	c := NewCounter()
	if got := c.Next("<type>"); got != "${1:<type>}" {
		t.Errorf("expected ${1:<type>}, got %s", got)
	}
	if got := c.Peek(); got != 2 {
		t.Errorf("expected next stop 2, got %d", got)
	}
	if got := c.Next("name"); got != "${2:name}" {
		t.Errorf("expected ${2:name}, got %s", got)
	}
}

func TestPlaceholderEscapesDefault(t *testing.T) {
	if got := Placeholder(4, "a}b$c"); got != `${4:a\}b\$c}` {
		t.Errorf("unexpected placeholder %s", got)
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"cost: $5", `cost: \$5`},
		{`"#{name}"`, `"#{name\}"`},
		{`a\b`, `a\\b`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Escape(tt.in); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestExpand(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"placeholders", "# @param [${1:<type>}] ${2:name} ${3:<description>}", "# @param [<type>] name <description>"},
		{"bare tab stop", "x$0y", "xy"},
		{"escaped dollar", `puts "\$${1:total}"`, `puts "$total"`},
		{"escaped brace in default", `${1:a\}b}`, "a}b"},
		{"escaped text round trip", Escape(`"#{x}" costs $5 \o/`), `"#{x}" costs $5 \o/`},
		{"escaped placeholder syntax", Escape("${1:literal}"), "${1:literal}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Expand(tt.in); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
