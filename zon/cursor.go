package zon

// cursor is a character-addressable view over the input text. It tracks
// byte offset, line, and column, and supports checkpoint/restore so the
// value reader can speculate and backtrack.
type cursor struct {
	input string
	pos   int // current byte offset
	line  int // current line number (1-based)
	col   int // current column number (1-based)
}

// checkpoint is a saved cursor position. Restoring one rewinds the cursor
// atomically; there is no other cursor state.
type checkpoint struct {
	pos  int
	line int
	col  int
}

func newCursor(input string) *cursor {
	return &cursor{input: input, line: 1, col: 1}
}

// peek returns the current byte, or 0 at end of input.
func (c *cursor) peek() byte {
	if c.pos >= len(c.input) {
		return 0
	}
	return c.input[c.pos]
}

// peekAt returns the byte n positions ahead, or 0 past end of input.
func (c *cursor) peekAt(n int) byte {
	if c.pos+n >= len(c.input) {
		return 0
	}
	return c.input[c.pos+n]
}

// advance consumes one byte, updating line/column bookkeeping.
func (c *cursor) advance() {
	if c.pos < len(c.input) {
		if c.input[c.pos] == '\n' {
			c.line++
			c.col = 1
		} else {
			c.col++
		}
		c.pos++
	}
}

func (c *cursor) atEnd() bool {
	return c.pos >= len(c.input)
}

// mark saves the current position for a later restore.
func (c *cursor) mark() checkpoint {
	return checkpoint{pos: c.pos, line: c.line, col: c.col}
}

// restore rewinds to a previously saved position.
func (c *cursor) restore(cp checkpoint) {
	c.pos = cp.pos
	c.line = cp.line
	c.col = cp.col
}

// currentPos returns the current source position.
func (c *cursor) currentPos() Position {
	return Position{Line: c.line, Column: c.col, Offset: c.pos}
}

// skipWhitespaceAndComments consumes runs of whitespace and // comments,
// stopping at the first byte that is neither.
func (c *cursor) skipWhitespaceAndComments() {
	for c.pos < len(c.input) {
		ch := c.peek()

		if isSpace(ch) {
			c.advance()
			continue
		}

		// Skip // comments to end of line
		if ch == '/' && c.peekAt(1) == '/' {
			for c.pos < len(c.input) && c.peek() != '\n' {
				c.advance()
			}
			continue
		}

		break
	}
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	}
	return false
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// isIdentChar reports whether ch can appear in a field name.
func isIdentChar(ch byte) bool {
	return isAlpha(ch) || isDigit(ch) || ch == '_' || ch == '-'
}
