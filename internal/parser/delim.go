package parser

// Quote and bracket aware scanning for parameter lists. Default values can
// hold arrays, hashes, calls and strings, whose commas and parens belong to
// the value and not to the list.

func opens(c byte) bool  { return c == '(' || c == '[' || c == '{' }
func closes(c byte) bool { return c == ')' || c == ']' || c == '}' }

// skipQuoted returns the index just past the string literal starting at i,
// or len(s) if it is unterminated
func skipQuoted(s string, i int) int {
	q := s[i]
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case q:
			return j + 1
		}
	}
	return len(s)
}

// matchingParen returns the index of the paren closing the one at s[open],
// or -1 if it is never closed
func matchingParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); {
		c := s[i]
		switch {
		case c == '"' || c == '\'':
			i = skipQuoted(s, i)
			continue
		case opens(c):
			depth++
		case closes(c):
			depth--
			if depth == 0 {
				if c != ')' {
					return -1
				}
				return i
			}
		}
		i++
	}
	return -1
}

// splitTopLevel splits s on commas that are not nested in brackets or quotes
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '"' || c == '\'':
			i = skipQuoted(s, i)
			continue
		case opens(c):
			depth++
		case closes(c):
			if depth > 0 {
				depth--
			}
		case c == ',' && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
		i++
	}
	return append(parts, s[start:])
}
