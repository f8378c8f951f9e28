package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"

	"gopkg.in/yaml.v2"
)

// DefaultFileName is looked up in the workspace root when no --config is given
const DefaultFileName = "yardgen.yaml"

// Settings are the user preferences for generated documentation
type Settings struct {
	// Author overrides the operating system user in @author tags
	Author string `yaml:"author,omitempty" json:"author,omitempty"`

	// InitialEmptyLine prepends a bare "#" line to every generated block
	InitialEmptyLine bool `yaml:"initial_empty_line,omitempty" json:"initial_empty_line,omitempty"`

	// Debug traces the method body scanner
	Debug bool `yaml:"debug,omitempty" json:"debug,omitempty"`
}

// Load reads settings from a YAML file. A missing file yields zero settings.
func Load(path string) (Settings, error) {
	var s Settings
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("failed to read settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	return s, nil
}

// ResolveAuthor returns the configured author or the current OS user
func (s Settings) ResolveAuthor() string {
	if s.Author != "" {
		return s.Author
	}
	if runtime.GOOS == "windows" {
		return os.Getenv("USERNAME")
	}
	return os.Getenv("USER")
}

// Override is a partial Settings supplied by the editor or the command line.
// Nil fields keep the underlying value, so an explicit false turns a flag off.
type Override struct {
	Author           *string `yaml:"author,omitempty" json:"author,omitempty"`
	InitialEmptyLine *bool   `yaml:"initial_empty_line,omitempty" json:"initial_empty_line,omitempty"`
	Debug            *bool   `yaml:"debug,omitempty" json:"debug,omitempty"`
}

// Bool returns a pointer to b, for building an Override
func Bool(b bool) *bool { return &b }

// String returns a pointer to s, for building an Override
func String(s string) *string { return &s }

// Merge returns s with every field set in override applied
func (s Settings) Merge(override Override) Settings {
	if override.Author != nil {
		s.Author = *override.Author
	}
	if override.InitialEmptyLine != nil {
		s.InitialEmptyLine = *override.InitialEmptyLine
	}
	if override.Debug != nil {
		s.Debug = *override.Debug
	}
	return s
}

// Store holds the current settings. Readers take a snapshot per command
// invocation; the file watcher and LSP configuration changes replace it.
// Layers apply in order: file, editor override, command line flags.
type Store struct {
	mu       sync.RWMutex
	path     string
	file     Settings
	override Override
	flags    Override
}

// NewStore creates a store backed by the settings file at path (may be empty)
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the settings file path
func (st *Store) Path() string {
	return st.path
}

// Reload re-reads the settings file
func (st *Store) Reload() error {
	if st.path == "" {
		return nil
	}
	s, err := Load(st.path)
	if err != nil {
		return err
	}
	st.mu.Lock()
	st.file = s
	st.mu.Unlock()
	return nil
}

// SetOverride replaces settings supplied by the editor
func (st *Store) SetOverride(o Override) {
	st.mu.Lock()
	st.override = o
	st.mu.Unlock()
}

// SetFlags replaces settings given on the command line
func (st *Store) SetFlags(o Override) {
	st.mu.Lock()
	st.flags = o
	st.mu.Unlock()
}

// Snapshot returns the effective settings
func (st *Store) Snapshot() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.file.Merge(st.override).Merge(st.flags)
}
