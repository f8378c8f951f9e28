package snippet

import (
	"regexp"
	"strings"
)

var escaper = strings.NewReplacer(`\`, `\\`, `$`, `\$`, `}`, `\}`)

// Escape protects literal text so it is not read as snippet syntax
func Escape(text string) string {
	return escaper.Replace(text)
}

var placeholderPattern = regexp.MustCompile(`\$\{[0-9]+:((?:[^}\\]|\\.)*)\}|\$[0-9]+`)

var unescaper = strings.NewReplacer(`\\`, `\`, `\$`, `$`, `\}`, `}`)

// Expand replaces every placeholder with its default text and removes
// escapes, giving the text a client without snippet support should insert.
func Expand(snippet string) string {
	var b strings.Builder
	last := 0
	for _, loc := range placeholderPattern.FindAllStringSubmatchIndex(snippet, -1) {
		// skip matches whose $ is itself escaped
		if escapedAt(snippet, loc[0]) {
			continue
		}
		b.WriteString(unescaper.Replace(snippet[last:loc[0]]))
		if loc[2] >= 0 {
			b.WriteString(unescaper.Replace(snippet[loc[2]:loc[3]]))
		}
		last = loc[1]
	}
	b.WriteString(unescaper.Replace(snippet[last:]))
	return b.String()
}

// escapedAt reports whether the byte at i is preceded by an odd run of backslashes
func escapedAt(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}
