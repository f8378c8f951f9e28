package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write settings: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeSettings(t, "author: Jane Doe\ninitial_empty_line: true\n")
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Author != "Jane Doe" || !s.InitialEmptyLine || s.Debug {
		t.Errorf("unexpected settings %+v", s)
	}
}

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("expected no error for a missing file, got %v", err)
	}
	if s != (Settings{}) {
		t.Errorf("expected zero settings, got %+v", s)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := writeSettings(t, "author: [unterminated\n")
	if _, err := Load(path); err == nil {
		t.Error("expected an error for invalid YAML")
	}
}

func TestResolveAuthor(t *testing.T) {
	if got := (Settings{Author: "kim"}).ResolveAuthor(); got != "kim" {
		t.Errorf("expected the configured author, got %q", got)
	}

	if runtime.GOOS == "windows" {
		t.Setenv("USERNAME", "winuser")
		if got := (Settings{}).ResolveAuthor(); got != "winuser" {
			t.Errorf("expected USERNAME, got %q", got)
		}
		return
	}
	t.Setenv("USER", "unixuser")
	if got := (Settings{}).ResolveAuthor(); got != "unixuser" {
		t.Errorf("expected USER, got %q", got)
	}
}

func TestStore(t *testing.T) {
	path := writeSettings(t, "author: file author\n")
	st := NewStore(path)
	if err := st.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if got := st.Snapshot().Author; got != "file author" {
		t.Errorf("expected the file author, got %q", got)
	}

	st.SetOverride(Override{Debug: Bool(true)})
	got := st.Snapshot()
	if got.Author != "file author" || !got.Debug {
		t.Errorf("expected file and override settings to merge, got %+v", got)
	}

	st.SetOverride(Override{Author: String("editor author")})
	if got := st.Snapshot().Author; got != "editor author" {
		t.Errorf("expected the override to win, got %q", got)
	}

	if err := os.WriteFile(path, []byte("initial_empty_line: true\n"), 0644); err != nil {
		t.Fatalf("failed to rewrite settings: %v", err)
	}
	if err := st.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if got := st.Snapshot(); !got.InitialEmptyLine || got.Author != "editor author" {
		t.Errorf("expected the reloaded file to apply, got %+v", got)
	}
}

func TestStoreOverrideTurnsOffFlags(t *testing.T) {
	path := writeSettings(t, "initial_empty_line: true\ndebug: true\n")
	st := NewStore(path)
	if err := st.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	st.SetOverride(Override{InitialEmptyLine: Bool(false)})
	got := st.Snapshot()
	if got.InitialEmptyLine {
		t.Error("expected an explicit false override to win over the file")
	}
	if !got.Debug {
		t.Error("expected unset override fields to keep the file value")
	}

	st.SetFlags(Override{Debug: Bool(true)})
	st.SetOverride(Override{Debug: Bool(false)})
	if !st.Snapshot().Debug {
		t.Error("expected command line flags to apply last")
	}
}

func TestMerge(t *testing.T) {
	base := Settings{Author: "file", InitialEmptyLine: true}
	tests := []struct {
		name     string
		override Override
		want     Settings
	}{
		{"empty override", Override{}, base},
		{"author", Override{Author: String("kim")}, Settings{Author: "kim", InitialEmptyLine: true}},
		{"false wins", Override{InitialEmptyLine: Bool(false)}, Settings{Author: "file"}},
		{"empty author clears", Override{Author: String("")}, Settings{InitialEmptyLine: true}},
		{"debug on", Override{Debug: Bool(true)}, Settings{Author: "file", InitialEmptyLine: true, Debug: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Merge(tt.override); got != tt.want {
				t.Errorf("Merge() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStoreWithoutFile(t *testing.T) {
	st := NewStore("")
	if err := st.Reload(); err != nil {
		t.Errorf("expected Reload without a path to be a no-op, got %v", err)
	}
	if st.Snapshot() != (Settings{}) {
		t.Errorf("expected zero settings, got %+v", st.Snapshot())
	}
}
