package parser

import "regexp"

// Block keywords that affect method body depth. Each is checked
// independently, so a line like `x = case y` counts once for case, and
// `foo do |x| bar end` counts both the do and the end.
var (
	// items.each do |x|, loop do
	doKeyword = regexp.MustCompile(`\bdo\b`)

	// if at the start of the line. Postfix `return if x` does not open a block.
	ifKeyword = regexp.MustCompile(`^\s*if\b`)

	// case at line start or anywhere as a word (x = case y)
	caseKeyword = regexp.MustCompile(`^\s*case\b|\bcase\b`)

	// end anywhere as a word, or alone on the line
	endKeyword = regexp.MustCompile(`\bend\b|^\s*end\s*$`)
)

// depthDelta returns how a line changes the nesting depth of a method body
func depthDelta(line string) int {
	delta := 0
	if doKeyword.MatchString(line) {
		delta++
	}
	if ifKeyword.MatchString(line) {
		delta++
	}
	if caseKeyword.MatchString(line) {
		delta++
	}
	if endKeyword.MatchString(line) {
		delta--
	}
	return delta
}
