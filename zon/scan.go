package zon

import (
	"strconv"
	"strings"
)

// Scalar readers. Each reads one leaf grammar rule through the cursor and
// leaves the cursor just past the consumed text.

// readIdentifier reads a maximal run of identifier characters as a field
// name. The quoted form @"..." reads the name through the string reader,
// which allows names outside the plain identifier set.
func (p *parser) readIdentifier() (string, error) {
	if p.cur.peek() == '@' && p.cur.peekAt(1) == '"' {
		p.cur.advance() // consume @
		return p.readString()
	}

	start := p.cur.pos
	for !p.cur.atEnd() && isIdentChar(p.cur.peek()) {
		p.cur.advance()
	}

	if start == p.cur.pos {
		return "", syntaxErrorf(p.cur.currentPos(), "empty identifier")
	}
	return p.cur.input[start:p.cur.pos], nil
}

// readString reads a quoted string, processing the escape pairs
// \n \t \r \" \\ and passing any other \x through as two literal
// characters.
func (p *parser) readString() (string, error) {
	startPos := p.cur.currentPos()
	p.cur.advance() // consume opening "

	var sb strings.Builder
	for !p.cur.atEnd() && p.cur.peek() != '"' {
		ch := p.cur.peek()
		if ch == '\\' {
			p.cur.advance()
			if p.cur.atEnd() {
				break
			}
			switch esc := p.cur.peek(); esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			default:
				// Unknown escapes pass through untouched.
				sb.WriteByte('\\')
				sb.WriteByte(esc)
			}
		} else {
			sb.WriteByte(ch)
		}
		p.cur.advance()
	}

	if p.cur.peek() != '"' {
		return "", syntaxErrorf(startPos, "unterminated string")
	}
	p.cur.advance() // consume closing "
	return sb.String(), nil
}

// readMultilineString reads the \\-continuation string form. Each line
// consumes the two backslashes and contributes the rest of the line as one
// fragment; fragments are joined with newlines. Folding continues as long
// as the next line, after whitespace and comments, starts with another \\
// pair.
func (p *parser) readMultilineString() (string, error) {
	var fragments []string

	for p.cur.peek() == '\\' && p.cur.peekAt(1) == '\\' {
		p.cur.advance()
		p.cur.advance()

		start := p.cur.pos
		for !p.cur.atEnd() && p.cur.peek() != '\n' {
			p.cur.advance()
		}
		fragments = append(fragments, p.cur.input[start:p.cur.pos])

		p.cur.skipWhitespaceAndComments()
	}

	return strings.Join(fragments, "\n"), nil
}

// readNumber reads an integer or float literal. Hexadecimal literals are
// always integers; a decimal point or exponent marks a float.
func (p *parser) readNumber() (*Value, error) {
	startPos := p.cur.currentPos()

	neg := false
	if p.cur.peek() == '-' {
		neg = true
		p.cur.advance()
	}

	// Hex literal: 0x / 0X followed by hex digits
	if p.cur.peek() == '0' && (p.cur.peekAt(1) == 'x' || p.cur.peekAt(1) == 'X') {
		p.cur.advance()
		p.cur.advance()

		hexStart := p.cur.pos
		for !p.cur.atEnd() && isHexDigit(p.cur.peek()) {
			p.cur.advance()
		}
		hexStr := p.cur.input[hexStart:p.cur.pos]

		n, err := strconv.ParseInt(hexStr, 16, 64)
		if err != nil {
			return nil, syntaxErrorf(startPos, "invalid hexadecimal literal %q", "0x"+hexStr)
		}
		if neg {
			n = -n
		}
		return Int(n), nil
	}

	start := p.cur.pos
	isFloat := false

	for !p.cur.atEnd() && isDigit(p.cur.peek()) {
		p.cur.advance()
	}

	if p.cur.peek() == '.' {
		isFloat = true
		p.cur.advance()
		for !p.cur.atEnd() && isDigit(p.cur.peek()) {
			p.cur.advance()
		}
	}

	if p.cur.peek() == 'e' || p.cur.peek() == 'E' {
		isFloat = true
		p.cur.advance()
		if p.cur.peek() == '+' || p.cur.peek() == '-' {
			p.cur.advance()
		}
		for !p.cur.atEnd() && isDigit(p.cur.peek()) {
			p.cur.advance()
		}
	}

	numStr := p.cur.input[start:p.cur.pos]
	if neg {
		numStr = "-" + numStr
	}

	if isFloat {
		f, err := strconv.ParseFloat(numStr, 64)
		if err != nil {
			return nil, syntaxErrorf(startPos, "invalid number literal %q", numStr)
		}
		return Float(f), nil
	}

	n, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		return nil, syntaxErrorf(startPos, "invalid number literal %q", numStr)
	}
	return Int(n), nil
}

// readBool matches the literals true and false.
func (p *parser) readBool() (*Value, error) {
	if p.literalAhead("true") {
		p.consumeN(4)
		return Bool(true), nil
	}
	if p.literalAhead("false") {
		p.consumeN(5)
		return Bool(false), nil
	}
	return nil, syntaxErrorf(p.cur.currentPos(), "expected 'true' or 'false'")
}

// literalAhead reports whether the input at the cursor starts with lit.
func (p *parser) literalAhead(lit string) bool {
	return strings.HasPrefix(p.cur.input[p.cur.pos:], lit)
}

// consumeN advances the cursor n bytes, keeping line/column bookkeeping.
func (p *parser) consumeN(n int) {
	for i := 0; i < n; i++ {
		p.cur.advance()
	}
}
