package zon

import (
	"math"
	"strings"
	"testing"
)

func TestToJSON_EndToEnd(t *testing.T) {
	v := mustParse(t, `.{
		// Package manifest
		.name = "example",
		.version = "1.0.0",
		.minimum_zig_version = "0.11.0",
		.dependencies = .{
			.libfoo = .{
				.url = "https://example.com/libfoo.tar.gz",
				.hash = "1220abcdef",
			},
		},
		.paths = .{"build.zig", "src"},
	}`, structOpts())

	got, err := ToJSON(v, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := `{
		"name": "example",
		"version": "1.0.0",
		"minimum_zig_version": "0.11.0",
		"dependencies": {
			"libfoo": {
				"url": "https://example.com/libfoo.tar.gz",
				"hash": "1220abcdef"
			}
		},
		"paths": ["build.zig", "src"]
	}`
	eq, err := JSONEqual([]byte(got), []byte(want))
	if err != nil {
		t.Fatal(err)
	}
	if !eq {
		t.Errorf("JSON mismatch:\n%s", got)
	}
}

func TestToJSON_PreservesFieldOrder(t *testing.T) {
	v := mustParse(t, `.{ .zebra = 1, .apple = 2, .mango = 3 }`, structOpts())

	got, err := ToJSON(v, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"zebra":1,"apple":2,"mango":3}`
	if got != want {
		t.Errorf("ToJSON() = %q, want %q", got, want)
	}
}

func TestToJSON_Indent(t *testing.T) {
	v := StructOf(FieldOf("a", Int(1)))

	got, err := ToJSON(v, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"a\": 1\n}"
	if got != want {
		t.Errorf("ToJSON() = %q, want %q", got, want)
	}
}

func TestToJSON_Scalars(t *testing.T) {
	tests := []struct {
		name string
		v    *Value
		want string
	}{
		{"null", Null(), "null"},
		{"bool", Bool(true), "true"},
		{"int", Int(3735928559), "3735928559"},
		{"float", Float(3.14), "3.14"},
		{"string", Str("hi\n"), `"hi\n"`},
		{"tuple", TupleOf(Int(1), Int(2)), "[1,2]"},
		{"empty struct", StructOf(), "{}"},
		{"empty tuple", TupleOf(), "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToJSON(tt.v, 0)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ToJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToJSON_NonFiniteFloat(t *testing.T) {
	_, err := ToJSON(Float(math.NaN()), 0)
	if err == nil || !strings.Contains(err.Error(), "not representable") {
		t.Errorf("expected NaN marshal error, got %v", err)
	}
}

func TestFromJSON(t *testing.T) {
	v, err := FromJSON([]byte(`{"name":"test","count":3,"ratio":0.5,"ok":true,"none":null,"list":[1,"two"]}`))
	if err != nil {
		t.Fatal(err)
	}

	want := StructOf(
		FieldOf("name", Str("test")),
		FieldOf("count", Int(3)),
		FieldOf("ratio", Float(0.5)),
		FieldOf("ok", Bool(true)),
		FieldOf("none", Null()),
		FieldOf("list", TupleOf(Int(1), Str("two"))),
	)
	if d := diff(want, v); d != "" {
		t.Errorf("FromJSON mismatch (-want +got):\n%s", d)
	}
}

func TestFromJSON_RoundTrip(t *testing.T) {
	v := mustParse(t, `.{
		.name = "round",
		.deps = .{ .{ .id = 1 }, .{ .id = 2 } },
	}`, structOpts())

	encoded, err := ToJSON(v, 0)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := FromJSON([]byte(encoded))
	if err != nil {
		t.Fatal(err)
	}
	if !v.Equal(decoded) {
		t.Errorf("round trip changed value:\n%s", diff(v, decoded))
	}
}

func TestFromJSON_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"invalid syntax", `{"a":}`},
		{"trailing content", `{} {}`},
		{"truncated", `{"a": [1, 2`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromJSON([]byte(tt.input)); err == nil {
				t.Errorf("FromJSON(%q) succeeded, want error", tt.input)
			}
		})
	}
}

func TestJSONEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"key order ignored", `{"a":1,"b":2}`, `{"b":2,"a":1}`, true},
		{"whitespace ignored", `[1, 2]`, `[1,2]`, true},
		{"different values", `{"a":1}`, `{"a":2}`, false},
		{"array order matters", `[1,2]`, `[2,1]`, false},
		{"missing key", `{"a":1}`, `{"a":1,"b":2}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := JSONEqual([]byte(tt.a), []byte(tt.b))
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("JSONEqual(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
