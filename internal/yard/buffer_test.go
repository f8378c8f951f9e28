package yard

import "testing"

func TestDetectLineEnding(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"a\nb\n", "\n"},
		{"a\r\nb\r\n", "\r\n"},
		{"single line", "\n"},
		{"", "\n"},
	}
	for _, tt := range tests {
		if got := DetectLineEnding(tt.text); got != tt.want {
			t.Errorf("DetectLineEnding(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestIsRubyFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/app/models/user.rb", true},
		{"lib/tasks/db.rake", true},
		{"mygem.gemspec", true},
		{"Gemfile", true},
		{"/project/Rakefile", true},
		{"main.go", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsRubyFile(tt.path); got != tt.want {
			t.Errorf("IsRubyFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestNewTextBuffer(t *testing.T) {
	if !NewTextBuffer("", "untitled", "ruby").IsRuby(0) {
		t.Error("languageId ruby should mark the buffer as Ruby")
	}
	if !NewTextBuffer("", "/x/user.rb", "").IsRuby(0) {
		t.Error(".rb files should be Ruby")
	}
	if NewTextBuffer("", "/x/main.py", "python").IsRuby(0) {
		t.Error("python buffers are not Ruby")
	}
}

func TestLineTable(t *testing.T) {
	lt := newLineTable("ab\r\ncd\nef")
	if lt.count() != 3 {
		t.Fatalf("expected 3 lines, got %d", lt.count())
	}
	if got := lt.line(0); got != "ab" {
		t.Errorf("expected CR to be trimmed, got %q", got)
	}
	if got := lt.line(2); got != "ef" {
		t.Errorf("expected last line without newline, got %q", got)
	}
	for pos, want := range map[int]int{0: 0, 3: 0, 4: 1, 6: 1, 7: 2, 9: 2} {
		if got := lt.lineAt(pos); got != want {
			t.Errorf("lineAt(%d) = %d, want %d", pos, got, want)
		}
	}
	if lt.start(3) != len("ab\r\ncd\nef") {
		t.Errorf("start past the last line should be the buffer length")
	}
}
