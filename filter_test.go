package conform_test

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	conform "github.com/reoring/conform"
)

func atoi(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%v is not a string", v)
	}
	return strconv.Atoi(s)
}

func TestFilterTransformsBeforeValidating(t *testing.T) {
	schema := conform.Filter(atoi, conform.GE(0)).Named("atoi")

	if !conform.Check(schema, "12") {
		t.Fatalf(`expected "12" to parse and pass`)
	}
	msg, _ := conform.ValidateString(schema, "-4")
	if msg != `atoi(object) (value:-4) is not greater than or equal to 0` {
		t.Fatalf("unexpected message: %q", msg)
	}
	msg, _ = conform.ValidateString(schema, "xyz")
	if !strings.HasPrefix(msg, `Applying atoi to object (value: "xyz") failed:`) {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestFilterRecoversPanics(t *testing.T) {
	reckless := func(v any) (any, error) { return v.(string) + "!", nil }
	schema := conform.Filter(reckless, conform.Anything()).Named("bang")
	msg, err := conform.ValidateString(schema, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(msg, "Applying bang to object") {
		t.Fatalf("expected the panic to become a failure message, got: %q", msg)
	}
}

func TestFilterRequiresCallable(t *testing.T) {
	_, err := conform.Compile(conform.Filter(nil, conform.Anything()))
	if _, ok := conform.AsSchemaError(err); !ok {
		t.Fatalf("expected a *SchemaError, got %v", err)
	}
}
