// Package zon parses Zig Object Notation (ZON) text into a generic value
// tree and serializes it back to ZON or JSON.
//
// ZON is a struct/tuple literal syntax with dot-prefixed field names:
//
//	.{
//	    .name = "example",
//	    .version = "1.0.0",
//	    .dependencies = .{
//	        .lib1 = .{
//	            .url = "https://example.com/lib1.tar.gz",
//	            .hash = "abcdef123456",
//	        },
//	    },
//	    .tags = .{ "tag1", "tag2" },
//	}
//
// # Data Model
//
// Scalars: null, bool, int, float, string
// Containers: struct (ordered fields), tuple (positional)
//
// Struct and tuple literals share the .{ ... } delimiter; the parser
// resolves the ambiguity from the first element with one character of
// lookahead. An empty .{} carries no evidence either way and is resolved
// by ParseOptions.EmptyBraceAsStruct.
//
// # Grammar Notes
//
//   - // comments run to end of line and are transparent everywhere
//   - .name with no "= value" is shorthand for .name = "name"
//   - .@"some name" quotes a field name outside the identifier set
//   - \\line strings concatenate consecutive \\-prefixed lines
//   - 0xFF is an int; a decimal point or exponent makes a float
//
// Parsing is pure and all-or-nothing: one call, one immutable *Value or
// one *SyntaxError with line/column. Separate inputs may be parsed
// concurrently; a parser instance shares no state.
package zon
