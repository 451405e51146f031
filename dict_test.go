package conform_test

import (
	"testing"

	conform "github.com/reoring/conform"
)

func TestDictRequiredAndOptionalKeys(t *testing.T) {
	schema := map[string]any{
		"name": conform.Type[string](),
		"age?": conform.Type[int](),
	}

	if msg, _ := conform.ValidateString(schema, map[string]any{"name": "bob"}); msg != "" {
		t.Fatalf("expected success, got: %s", msg)
	}
	if msg, _ := conform.ValidateString(schema, map[string]any{"name": "bob", "age": 42}); msg != "" {
		t.Fatalf("expected success, got: %s", msg)
	}
	msg, _ := conform.ValidateString(schema, map[string]any{"age": 42})
	if msg != `object["name"] is missing` {
		t.Fatalf("unexpected message: %q", msg)
	}
	msg, _ = conform.ValidateString(schema, map[string]any{"name": "bob", "age": "old"})
	if msg != `object["age"] (value:"old") is not of type 'int'` {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestDictOptionalKeyWrapper(t *testing.T) {
	// OptionalKey keeps a literal trailing "?" in the key.
	schema := map[any]any{
		conform.OptionalKey("sure?"): conform.Type[bool](),
	}
	if msg, _ := conform.ValidateString(schema, map[string]any{"sure?": true}); msg != "" {
		t.Fatalf("expected success, got: %s", msg)
	}
	if msg, _ := conform.ValidateString(schema, map[string]any{}); msg != "" {
		t.Fatalf("expected the key to be optional, got: %s", msg)
	}
}

func TestDictStrictness(t *testing.T) {
	schema := map[string]any{"a": 1}

	msg, _ := conform.ValidateString(schema, map[string]any{"a": 1, "b": 2})
	if msg != `object["b"] is not in the schema` {
		t.Fatalf("unexpected message: %q", msg)
	}
	if msg, _ := conform.ValidateString(schema, map[string]any{"a": 1, "b": 2}, conform.Lenient()); msg != "" {
		t.Fatalf("expected lenient validation to pass, got: %s", msg)
	}
}

func TestDictPatternKeys(t *testing.T) {
	schema := map[any]any{
		conform.Regex(`[a-z]+`): conform.Type[int](),
	}

	if msg, _ := conform.ValidateString(schema, map[string]any{"abc": 1, "def": 2}); msg != "" {
		t.Fatalf("expected success, got: %s", msg)
	}
	msg, _ := conform.ValidateString(schema, map[string]any{"ABC": 1})
	if msg != `object["ABC"] is not in the schema` {
		t.Fatalf("unexpected message: %q", msg)
	}
	msg, _ = conform.ValidateString(schema, map[string]any{"abc": "x"})
	if msg != `object["abc"] (value:"x") is not of type 'int'` {
		t.Fatalf("unexpected message: %q", msg)
	}
	// Unmatched keys are tolerated when lenient.
	if msg, _ := conform.ValidateString(schema, map[string]any{"ABC": 1}, conform.Lenient()); msg != "" {
		t.Fatalf("expected lenient validation to pass, got: %s", msg)
	}
}

func TestDictConstKeyFailureFallsBackToPatterns(t *testing.T) {
	schema := map[any]any{
		"n":                     conform.Type[int](),
		conform.Regex(`[a-z]+`): conform.Type[string](),
	}
	// The const entry rejects the value but the pattern entry accepts it.
	if msg, _ := conform.ValidateString(schema, map[string]any{"n": "x"}); msg != "" {
		t.Fatalf("expected the pattern entry to accept, got: %s", msg)
	}
	// Both reject: the messages are joined.
	msg, _ := conform.ValidateString(schema, map[string]any{"n": true})
	want := `object["n"] (value:true) is not of type 'int' and object["n"] (value:true) is not of type 'string'`
	if msg != want {
		t.Fatalf("expected %q, got %q", want, msg)
	}
}

func TestDictRejectsNonMaps(t *testing.T) {
	msg, _ := conform.ValidateString(map[string]any{"a": 1}, []any{1})
	if msg != `object (value:[1]) is not of type 'map'` {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestKeysHelper(t *testing.T) {
	schema := conform.Keys("a", "b")
	if msg, _ := conform.ValidateString(schema, map[string]any{"a": 1, "b": 2, "c": 3}); msg != "" {
		t.Fatalf("expected success, got: %s", msg)
	}
	msg, _ := conform.ValidateString(schema, map[string]any{"a": 1})
	if msg != `object["b"] is missing` {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestKeyCardinalityHelpers(t *testing.T) {
	obj := func(keys ...string) map[string]any {
		m := map[string]any{}
		for _, k := range keys {
			m[k] = 1
		}
		return m
	}

	if !conform.Check(conform.AtLeastOneOf("a", "b"), obj("b")) {
		t.Fatalf("expected at_least_one_of to accept")
	}
	if conform.Check(conform.AtLeastOneOf("a", "b"), obj("c")) {
		t.Fatalf("expected at_least_one_of to reject")
	}
	if !conform.Check(conform.AtMostOneOf("a", "b"), obj()) {
		t.Fatalf("expected at_most_one_of to accept an empty map")
	}
	if conform.Check(conform.AtMostOneOf("a", "b"), obj("a", "b")) {
		t.Fatalf("expected at_most_one_of to reject")
	}
	if !conform.Check(conform.OneOf("a", "b"), obj("a")) {
		t.Fatalf("expected one_of to accept")
	}
	if conform.Check(conform.OneOf("a", "b"), obj()) {
		t.Fatalf("expected one_of to reject an empty map")
	}

	msg, _ := conform.ValidateString(conform.OneOf("a", "b"), obj("a", "b"))
	if msg != `object (value:map[a:1 b:1]) is not of type 'one_of("a","b")'` {
		t.Fatalf("unexpected message: %q", msg)
	}
}
