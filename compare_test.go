package conform_test

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	conform "github.com/reoring/conform"
)

func TestBounds(t *testing.T) {
	msg, _ := conform.ValidateString(conform.GT(5), 5)
	if msg != `object (value:5) is not strictly greater than 5` {
		t.Fatalf("unexpected message: %q", msg)
	}
	if !conform.Check(conform.GT(5), 6) {
		t.Fatalf("expected 6 > 5")
	}
	if !conform.Check(conform.LE("m"), "a") {
		t.Fatalf("expected string ordering to work")
	}
	if !conform.Check(conform.LT(10), json.Number("9")) {
		t.Fatalf("expected json.Number ordering to work")
	}

	// Incomparable operands fold the reason into the message.
	msg, _ = conform.ValidateString(conform.GT(5), "a")
	want := `object (value:"a") is not strictly greater than 5: cannot compare 5 with "a"`
	if msg != want {
		t.Fatalf("expected %q, got %q", want, msg)
	}

	_, err := conform.Compile(conform.GT([]int{1}))
	if _, ok := conform.AsSchemaError(err); !ok {
		t.Fatalf("expected a *SchemaError for an unorderable bound, got %v", err)
	}
}

func TestInterval(t *testing.T) {
	iv := conform.Interval(0, 10)
	for _, v := range []any{0, 10, 5} {
		if !conform.Check(iv, v) {
			t.Fatalf("expected %v to lie in [0,10]", v)
		}
	}
	if conform.Check(iv, -1) || conform.Check(iv, 11) {
		t.Fatalf("expected values outside [0,10] to fail")
	}

	open := conform.Interval(0, 10).OpenLow().OpenHigh()
	if conform.Check(open, 0) || conform.Check(open, 10) {
		t.Fatalf("expected open endpoints to be excluded")
	}

	if !conform.Check(conform.Interval(0, conform.Ellipsis), 1e9) {
		t.Fatalf("expected an unbounded upper endpoint")
	}
	if !conform.Check(conform.Interval(conform.Ellipsis, conform.Ellipsis), "anything") {
		t.Fatalf("expected a fully open interval to match everything")
	}

	_, err := conform.Compile(conform.Interval(0, "z"))
	if _, ok := conform.AsSchemaError(err); !ok {
		t.Fatalf("expected a *SchemaError for incomparable bounds, got %v", err)
	}
}

func TestCloseTo(t *testing.T) {
	if !conform.Check(conform.CloseTo(1.0), 1.0+1e-12) {
		t.Fatalf("expected the default relative tolerance to absorb 1e-12")
	}
	if conform.Check(conform.CloseTo(1.0), 1.1) {
		t.Fatalf("expected 1.1 to fall outside the tolerance")
	}
	if !conform.Check(conform.CloseTo(0).AbsTol(1e-6), 1e-7) {
		t.Fatalf("expected the absolute tolerance to apply near zero")
	}
	msg, _ := conform.ValidateString(conform.CloseTo(1.0), "x")
	if msg != `object (value:"x") is not of type 'number'` {
		t.Fatalf("unexpected message: %q", msg)
	}

	_, err := conform.Compile(conform.CloseTo(1.0).RelTol(-1))
	if _, ok := conform.AsSchemaError(err); !ok {
		t.Fatalf("expected a *SchemaError for a negative tolerance, got %v", err)
	}
}

func TestDiv(t *testing.T) {
	if !conform.Check(conform.Div(2), 4) {
		t.Fatalf("expected 4 to be divisible by 2")
	}
	msg, _ := conform.ValidateString(conform.Div(2), 5)
	if msg != `object (value:5) is not of type 'div(2)'` {
		t.Fatalf("unexpected message: %q", msg)
	}
	if !conform.Check(conform.Div(2).Rem(1), 5) {
		t.Fatalf("expected 5 to be odd")
	}
	msg, _ = conform.ValidateString(conform.Div(2).Rem(0).Named("even"), 5)
	if msg != `object (value:5) is not of type 'even'` {
		t.Fatalf("unexpected message: %q", msg)
	}
	msg, _ = conform.ValidateString(conform.Div(2), 2.5)
	if msg != `object (value:2.5) is not of type 'int'` {
		t.Fatalf("unexpected message: %q", msg)
	}
	if !conform.Check(conform.Div(3), json.Number("9")) {
		t.Fatalf("expected an integral json.Number to work")
	}
	// A uint64 above MaxInt64 must not wrap negative into the congruence
	// check.
	msg, _ = conform.ValidateString(conform.Div(2), uint64(math.MaxUint64))
	if !strings.Contains(msg, "is not of type 'int'") {
		t.Fatalf("unexpected message: %q", msg)
	}

	_, err := conform.Compile(conform.Div(0))
	if _, ok := conform.AsSchemaError(err); !ok {
		t.Fatalf("expected a *SchemaError for a zero divisor, got %v", err)
	}
}

func TestSize(t *testing.T) {
	if !conform.Check(conform.Size(2, conform.Ellipsis), "ab") {
		t.Fatalf("expected a two-character string to pass")
	}
	msg, _ := conform.ValidateString(conform.Size(2, conform.Ellipsis), "a")
	if msg != `len(object) (value:1) is not greater than or equal to 2` {
		t.Fatalf("unexpected message: %q", msg)
	}
	// nil upper bound means exact length.
	if !conform.Check(conform.Size(2, nil), []any{1, 2}) {
		t.Fatalf("expected an exact length match")
	}
	msg, _ = conform.ValidateString(conform.Size(2, nil), []any{1, 2, 3})
	if msg != `len(object) (value:3) is not less than or equal to 2` {
		t.Fatalf("unexpected message: %q", msg)
	}
	msg, _ = conform.ValidateString(conform.Size(0, 2), 5)
	if msg != `object (value:5) has no length` {
		t.Fatalf("unexpected message: %q", msg)
	}
	if !conform.Check(conform.Size(1, 3), map[string]any{"a": 1}) {
		t.Fatalf("expected map lengths to count")
	}

	for _, bad := range []conform.Compilable{
		conform.Size(-1, conform.Ellipsis),
		conform.Size(3, 1),
	} {
		_, err := conform.Compile(bad)
		if _, ok := conform.AsSchemaError(err); !ok {
			t.Fatalf("expected a *SchemaError, got %v", err)
		}
	}
	_, err := conform.Compile(conform.Size(0, "x"))
	se, ok := conform.AsSchemaError(err)
	if !ok || !strings.Contains(se.Error(), "is not of type 'int'") {
		t.Fatalf("expected a bound type error, got %v", err)
	}
}
