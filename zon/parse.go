package zon

// DefaultMaxDepth bounds container nesting so adversarial input fails with
// a syntax error instead of exhausting the stack.
const DefaultMaxDepth = 128

// ParseOptions configures the parser behavior.
type ParseOptions struct {
	// EmptyBraceAsStruct resolves the empty literal .{} to an empty
	// struct instead of an empty tuple. Emptiness is ambiguous in the
	// grammar; this flag is the only thing that decides it.
	EmptyBraceAsStruct bool

	// MaxDepth is the maximum container nesting depth. Zero means
	// DefaultMaxDepth.
	MaxDepth int
}

// Parse parses ZON text into a Value. The input must contain exactly one
// top-level value; the error is always a *SyntaxError.
func Parse(input string, opts ParseOptions) (*Value, error) {
	if opts.MaxDepth == 0 {
		opts.MaxDepth = DefaultMaxDepth
	}

	p := &parser{cur: newCursor(input), opts: opts}

	v, err := p.readValue()
	if err != nil {
		return nil, err
	}

	p.cur.skipWhitespaceAndComments()
	if !p.cur.atEnd() {
		return nil, syntaxErrorf(p.cur.currentPos(), "unexpected character %q after top-level value", p.cur.peek())
	}
	return v, nil
}

// parser reads one ZON value from its cursor. It has no state beyond the
// cursor position and the running nesting depth; every read method is a
// function of cursor state to (Value, new cursor state) or an error.
type parser struct {
	cur   *cursor
	opts  ParseOptions
	depth int
}

// readValue skips leading whitespace/comments and dispatches on the
// current character.
func (p *parser) readValue() (*Value, error) {
	p.cur.skipWhitespaceAndComments()

	ch := p.cur.peek()
	switch {
	case ch == '.':
		p.cur.advance()
		if p.cur.peek() == '{' {
			p.cur.advance()
			return p.readContainer()
		}
		if p.cur.peek() == '[' {
			p.cur.advance()
			return p.readArray()
		}
		// Bare field shorthand: the value is the identifier text.
		ident, err := p.readIdentifier()
		if err != nil {
			return nil, err
		}
		return Str(ident), nil

	case ch == '"':
		s, err := p.readString()
		if err != nil {
			return nil, err
		}
		return Str(s), nil

	case ch == '\\' && p.cur.peekAt(1) == '\\':
		s, err := p.readMultilineString()
		if err != nil {
			return nil, err
		}
		return Str(s), nil

	case isDigit(ch) || ch == '-':
		return p.readNumber()

	case ch == 't' || ch == 'f':
		return p.readBool()

	case ch == 'n' && p.literalAhead("null"):
		p.consumeN(4)
		return Null(), nil

	case ch == 0:
		return nil, syntaxErrorf(p.cur.currentPos(), "unexpected end of input")

	default:
		return nil, syntaxErrorf(p.cur.currentPos(), "unexpected character %q", ch)
	}
}

// readContainer resolves the struct/tuple ambiguity of a .{ ... } literal
// and parses the chosen shape. The opening brace has been consumed.
//
// The decision is made once, from the first element only: a leading
// .identifier means struct, anything else means tuple. A first element of
// the form .{ cannot prove either shape (a tuple may open with a nested
// container), so it is read as a tuple.
func (p *parser) readContainer() (*Value, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	p.cur.skipWhitespaceAndComments()

	// Empty container: nothing to inspect, the policy flag decides.
	if p.cur.peek() == '}' {
		p.cur.advance()
		if p.opts.EmptyBraceAsStruct {
			return StructOf(), nil
		}
		return TupleOf(), nil
	}

	if p.cur.peek() == '.' {
		cp := p.cur.mark()
		p.cur.advance()
		next := p.cur.peek()
		p.cur.restore(cp)

		if next != '{' && (isAlpha(next) || isDigit(next) || next == '_' || next == '@') {
			return p.readStruct()
		}
		return p.readTuple()
	}

	return p.readTuple()
}

// readStruct parses struct entries up to the closing brace. The opening
// brace has been consumed.
func (p *parser) readStruct() (*Value, error) {
	result := StructOf()

	for {
		p.cur.skipWhitespaceAndComments()

		if p.cur.peek() == '}' {
			p.cur.advance()
			break
		}

		if p.cur.peek() != '.' {
			return nil, syntaxErrorf(p.cur.currentPos(), "expected '.' before struct key")
		}
		p.cur.advance()

		key, err := p.readIdentifier()
		if err != nil {
			return nil, err
		}

		p.cur.skipWhitespaceAndComments()

		var value *Value
		if p.cur.peek() == '=' {
			p.cur.advance()
			p.cur.skipWhitespaceAndComments()
			value, err = p.readValue()
			if err != nil {
				return nil, err
			}
		} else {
			// Field shorthand: the value equals the key text.
			value = Str(key)
		}

		// A duplicate key overwrites the earlier entry in place.
		result.setField(key, value)

		p.cur.skipWhitespaceAndComments()

		if p.cur.peek() == ',' {
			p.cur.advance()
		} else if p.cur.peek() != '}' {
			return nil, syntaxErrorf(p.cur.currentPos(), "expected ',' or '}'")
		}
	}

	return result, nil
}

// readTuple parses tuple elements up to the closing brace. The opening
// brace has been consumed. An element that itself begins with .{ recurses
// through readValue into readContainer, re-running the disambiguation for
// that nested container.
func (p *parser) readTuple() (*Value, error) {
	result := TupleOf()

	for {
		p.cur.skipWhitespaceAndComments()

		if p.cur.peek() == '}' {
			p.cur.advance()
			break
		}

		elem, err := p.readValue()
		if err != nil {
			return nil, err
		}
		result.appendElem(elem)

		p.cur.skipWhitespaceAndComments()

		if p.cur.peek() == ',' {
			p.cur.advance()
		} else if p.cur.peek() != '}' {
			return nil, syntaxErrorf(p.cur.currentPos(), "expected ',' or '}'")
		}
	}

	return result, nil
}

// readArray parses the .[ v, v, ... ] literal into a tuple. The opening
// bracket has been consumed.
func (p *parser) readArray() (*Value, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	result := TupleOf()

	for {
		p.cur.skipWhitespaceAndComments()

		if p.cur.peek() == ']' {
			p.cur.advance()
			break
		}

		elem, err := p.readValue()
		if err != nil {
			return nil, err
		}
		result.appendElem(elem)

		p.cur.skipWhitespaceAndComments()

		if p.cur.peek() == ',' {
			p.cur.advance()
		} else if p.cur.peek() != ']' {
			return nil, syntaxErrorf(p.cur.currentPos(), "expected ',' or ']'")
		}
	}

	return result, nil
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > p.opts.MaxDepth {
		return syntaxErrorf(p.cur.currentPos(), "maximum nesting depth %d exceeded", p.opts.MaxDepth)
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}
