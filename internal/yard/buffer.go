package yard

import (
	"path/filepath"
	"strings"
)

// Buffer is what the generator needs from the editor hosting the command
type Buffer interface {
	// Text returns the whole buffer
	Text() string

	// LineEnding returns "\r\n" for Windows buffers and "\n" otherwise
	LineEnding() string

	// IsRuby reports whether the byte offset pos is in Ruby source
	IsRuby(pos int) bool
}

// Selection is a cursor or selected span, as byte offsets into the buffer
type Selection struct {
	Start int
	End   int
}

// TextBuffer is a Buffer over an in-memory string
type TextBuffer struct {
	Content string
	Ruby    bool
}

// NewTextBuffer creates a buffer. A languageID of "ruby" or a Ruby file name
// marks the whole buffer as Ruby.
func NewTextBuffer(content, path, languageID string) *TextBuffer {
	return &TextBuffer{
		Content: content,
		Ruby:    languageID == "ruby" || IsRubyFile(path),
	}
}

func (b *TextBuffer) Text() string        { return b.Content }
func (b *TextBuffer) LineEnding() string  { return DetectLineEnding(b.Content) }
func (b *TextBuffer) IsRuby(pos int) bool { return b.Ruby }

// DetectLineEnding picks the line ending used by the first line break
func DetectLineEnding(text string) string {
	i := strings.IndexByte(text, '\n')
	if i > 0 && text[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// IsRubyFile checks if a file is a Ruby file
func IsRubyFile(path string) bool {
	if path == "" {
		return false
	}
	ext := filepath.Ext(path)
	base := filepath.Base(path)

	switch ext {
	case ".rb", ".rake", ".gemspec", ".ru":
		return true
	}

	switch base {
	case "Gemfile", "Rakefile", "Guardfile", "Vagrantfile":
		return true
	}

	return false
}

// lineTable maps between byte offsets and 0-indexed lines
type lineTable struct {
	text   string
	starts []int
}

func newLineTable(text string) *lineTable {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineTable{text: text, starts: starts}
}

func (lt *lineTable) count() int {
	return len(lt.starts)
}

// lineAt returns the line containing offset pos
func (lt *lineTable) lineAt(pos int) int {
	if pos < 0 {
		return 0
	}
	lo, hi := 0, len(lt.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if lt.starts[mid] <= pos {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// start returns the offset of line n, or the buffer length past the last line
func (lt *lineTable) start(n int) int {
	if n >= len(lt.starts) {
		return len(lt.text)
	}
	return lt.starts[n]
}

// line returns line n without its line ending
func (lt *lineTable) line(n int) string {
	end := len(lt.text)
	if n+1 < len(lt.starts) {
		end = lt.starts[n+1] - 1
	}
	return strings.TrimSuffix(lt.text[lt.starts[n]:end], "\r")
}

func (lt *lineTable) lines() []string {
	out := make([]string, lt.count())
	for i := range out {
		out[i] = lt.line(i)
	}
	return out
}
