package zon

import (
	"math"
	"strconv"
	"strings"
)

// EmitOptions configures the ZON writer.
type EmitOptions struct {
	// Indent string per nesting level (default: four spaces).
	Indent string
}

// DefaultEmitOptions returns the writer defaults.
func DefaultEmitOptions() EmitOptions {
	return EmitOptions{Indent: "    "}
}

// Emit converts a Value back to ZON text. The output re-parses to an
// equal value; comments and original formatting are not preserved, and an
// empty struct and an empty tuple collapse to the same .{} form.
func Emit(v *Value) string {
	return EmitWithOptions(v, DefaultEmitOptions())
}

// EmitWithOptions converts a Value to ZON text with custom options.
func EmitWithOptions(v *Value, opts EmitOptions) string {
	if opts.Indent == "" {
		opts.Indent = "    "
	}
	e := &emitter{opts: opts}
	e.emit(v, 0)
	return e.sb.String()
}

type emitter struct {
	sb   strings.Builder
	opts EmitOptions
}

func (e *emitter) emit(v *Value, depth int) {
	if v.IsNull() {
		e.sb.WriteString("null")
		return
	}

	switch v.kind {
	case KindBool:
		if v.boolVal {
			e.sb.WriteString("true")
		} else {
			e.sb.WriteString("false")
		}

	case KindInt:
		e.sb.WriteString(strconv.FormatInt(v.intVal, 10))

	case KindFloat:
		e.emitFloat(v.floatVal)

	case KindString:
		e.emitString(v.strVal)

	case KindStruct:
		e.emitStruct(v, depth)

	case KindTuple:
		e.emitTuple(v, depth)
	}
}

func (e *emitter) emitFloat(f float64) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		// Not representable in the grammar; null is the closest literal.
		e.sb.WriteString("null")
		return
	}

	// Shortest representation that round-trips, forced to keep a
	// decimal point so it re-parses as a float.
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	e.sb.WriteString(s)
}

func (e *emitter) emitString(s string) {
	e.sb.WriteString("\"")
	e.sb.WriteString(escapeString(s))
	e.sb.WriteString("\"")
}

// emitStruct writes one .key = value entry per line. String values with
// embedded newlines use the \\ continuation form instead of escapes.
func (e *emitter) emitStruct(v *Value, depth int) {
	if len(v.fields) == 0 {
		e.sb.WriteString(".{}")
		return
	}

	e.sb.WriteString(".{\n")
	for _, f := range v.fields {
		e.writeIndent(depth + 1)
		e.sb.WriteString(".")
		e.emitKey(f.Key)
		e.sb.WriteString(" =")

		if f.Value.kind == KindString && strings.Contains(f.Value.strVal, "\n") {
			e.sb.WriteString("\n")
			for _, line := range strings.Split(f.Value.strVal, "\n") {
				e.writeIndent(depth + 1)
				e.sb.WriteString("\\\\")
				e.sb.WriteString(line)
				e.sb.WriteString("\n")
			}
			e.writeIndent(depth + 1)
			e.sb.WriteString(",\n")
			continue
		}

		e.sb.WriteString(" ")
		e.emit(f.Value, depth+1)
		e.sb.WriteString(",\n")
	}
	e.writeIndent(depth)
	e.sb.WriteString("}")
}

// emitTuple writes elements inline, comma-joined.
func (e *emitter) emitTuple(v *Value, depth int) {
	if len(v.elems) == 0 {
		e.sb.WriteString(".{}")
		return
	}

	e.sb.WriteString(".{ ")
	for i, elem := range v.elems {
		if i > 0 {
			e.sb.WriteString(", ")
		}
		e.emit(elem, depth)
	}
	e.sb.WriteString(" }")
}

// emitKey writes a struct key, using the @"..." quoted form when the key
// is not a plain identifier run.
func (e *emitter) emitKey(key string) {
	if isValidIdentifier(key) {
		e.sb.WriteString(key)
		return
	}
	e.sb.WriteString("@\"")
	e.sb.WriteString(escapeString(key))
	e.sb.WriteString("\"")
}

func (e *emitter) writeIndent(depth int) {
	for i := 0; i < depth; i++ {
		e.sb.WriteString(e.opts.Indent)
	}
}

// isValidIdentifier reports whether s can be written as a bare field name.
func isValidIdentifier(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentChar(s[i]) {
			return false
		}
	}
	return true
}

// escapeString escapes a string for quoted output.
func escapeString(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString("\\\"")
		case '\\':
			sb.WriteString("\\\\")
		case '\n':
			sb.WriteString("\\n")
		case '\r':
			sb.WriteString("\\r")
		case '\t':
			sb.WriteString("\\t")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
