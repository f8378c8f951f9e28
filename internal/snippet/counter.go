package snippet

import "strconv"

// Counter allocates numbered tab stops for one command invocation.
// Numbers start at 1 and never repeat, so every stop in the header and the
// rewritten body of all constructs forms one tab sequence.
type Counter struct {
	next int
}

// NewCounter creates a counter whose first stop is $1
func NewCounter() *Counter {
	return &Counter{next: 1}
}

// Next returns a placeholder like ${3:<type>} and advances the counter
func (c *Counter) Next(def string) string {
	n := c.next
	c.next++
	return Placeholder(n, def)
}

// Peek returns the number the next placeholder will get
func (c *Counter) Peek() int {
	return c.next
}

// Placeholder formats tab stop n with default text def
func Placeholder(n int, def string) string {
	return "${" + strconv.Itoa(n) + ":" + Escape(def) + "}"
}
