package docblock

import (
	"errors"
	"reflect"
	"testing"
)

func TestNormalizeShapes(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want Document
	}{
		{"string", "hello", Document{{{"hello"}}}},
		{"string slice", []string{"First.", "Second."}, Document{{{"First."}}, {{"Second."}}}},
		{"row slices", [][]string{{"@a", "x"}, {"@b", "y"}}, Document{{{"@a", "x"}}, {{"@b", "y"}}}},
		{"nested rows", []any{[][]string{{"@a", "x"}, {"@b", "y"}}}, Document{{{"@a", "x"}, {"@b", "y"}}}},
		{
			"mixed entries",
			[]any{"text", []any{"@var", "int"}, []any{[]any{"@a"}, []any{"@b", "y"}}},
			Document{{{"text"}}, {{"@var", "int"}}, {{"@a"}, {"@b", "y"}}},
		},
		{"empty table", []any{[]any{}}, Document{{}}},
	}
	for _, tc := range cases {
		got, err := Normalize(tc.in)
		if err != nil {
			t.Fatalf("%s: Normalize failed: %v", tc.name, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s: mismatch:\nwant %v\ngot  %v", tc.name, tc.want, got)
		}
	}
}

func TestNormalizeTypedShapesMatchAny(t *testing.T) {
	// The same logical document must resolve identically whichever Go
	// spelling carries it into Normalize.
	pairs := []struct {
		name  string
		typed any
		loose any
	}{
		{
			"strings are one table each",
			[]string{"First line.", "Second line."},
			[]any{"First line.", "Second line."},
		},
		{
			"row slices are one table each",
			[][]string{{"@a", "x"}, {"@b", "y"}},
			[]any{[]any{"@a", "x"}, []any{"@b", "y"}},
		},
	}
	for _, tc := range pairs {
		fromTyped, err := Normalize(tc.typed)
		if err != nil {
			t.Fatalf("%s: Normalize(typed) failed: %v", tc.name, err)
		}
		fromLoose, err := Normalize(tc.loose)
		if err != nil {
			t.Fatalf("%s: Normalize(loose) failed: %v", tc.name, err)
		}
		if !reflect.DeepEqual(fromTyped, fromLoose) {
			t.Fatalf("%s: shapes diverge:\ntyped %v\nloose %v", tc.name, fromTyped, fromLoose)
		}
	}
}

func TestNormalizeRejectsUndefinedShapes(t *testing.T) {
	cases := []struct {
		name string
		in   any
	}{
		{"nil", nil},
		{"number document", 42},
		{"number table", []any{42}},
		{"number cell", []any{[]any{[]any{"@var", 42}}}},
		{"map table", []any{map[string]any{"a": "b"}}},
		{"mixed row depth", []any{[]any{"text", []any{"@var"}}}},
	}
	for _, tc := range cases {
		if _, err := Normalize(tc.in); !errors.Is(err, ErrBadShape) {
			t.Fatalf("%s: expected ErrBadShape, got %v", tc.name, err)
		}
	}
}

func TestNormalizeAppliesNFC(t *testing.T) {
	// U+0065 U+0301 composes to U+00E9.
	decomposed := "café"
	got, err := Normalize(decomposed)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if got[0][0][0] != "café" {
		t.Fatalf("expected NFC-composed cell, got %q", got[0][0][0])
	}
}
