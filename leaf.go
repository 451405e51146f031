package conform

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// constSchema matches a single literal value. Float constants compare with
// the default closeness tolerance unless constructed through Quote.
type constSchema struct {
	value any
	close *closeToNode
}

func newConstSchema(v any) *constSchema {
	c := &constSchema{value: v}
	switch f := v.(type) {
	case float64:
		c.close = newCloseTo(f)
	case float32:
		c.close = newCloseTo(float64(f))
	}
	return c
}

func (c *constSchema) Validate(obj any, name string, strict bool, subs Subs) (string, error) {
	if c.close != nil {
		return c.close.Validate(obj, name, strict, subs)
	}
	if !equalValue(c.value, obj) {
		return fmt.Sprintf("%s (value:%s) is not equal to %s", name, Render(obj), renderRepr(c.value)), nil
	}
	return "", nil
}

// Quote turns any value into a strict-equality leaf, preventing its
// interpretation as a structural schema. Quote([]any{1, 2}) matches exactly
// that two-element sequence value; Quote(1.5) matches 1.5 without the float
// tolerance.
func Quote(v any) Compiled {
	return &constSchema{value: v}
}

// typeSchema matches values assignable to a reflect.Type handle. Interface
// handles match implementations.
type typeSchema struct {
	t reflect.Type
}

func (s *typeSchema) Validate(obj any, name string, strict bool, subs Subs) (string, error) {
	if obj == nil {
		return WrongType(obj, name, s.t.String()), nil
	}
	if !reflect.TypeOf(obj).AssignableTo(s.t) {
		return WrongType(obj, name, s.t.String()), nil
	}
	return "", nil
}

// predicateSchema matches values for which a user predicate returns true. A
// panicking predicate counts as a failure with the panic as explanation, so
// a careless type assertion inside the predicate rejects instead of tearing
// down the caller.
type predicateSchema struct {
	fn   func(any) bool
	name string
}

func (p *predicateSchema) Validate(obj any, name string, strict bool, subs Subs) (msg string, err error) {
	defer func() {
		if r := recover(); r != nil {
			msg = WrongTypef(obj, name, p.name, "%v", r)
			err = nil
		}
	}()
	if !p.fn(obj) {
		return WrongType(obj, name, p.name), nil
	}
	return "", nil
}

// funcName recovers a display name for a predicate. Anonymous functions and
// method values render as "predicate".
func funcName(fn func(any) bool) string {
	pc := reflect.ValueOf(fn).Pointer()
	f := runtime.FuncForPC(pc)
	if f == nil {
		return "predicate"
	}
	full := f.Name()
	if i := strings.LastIndex(full, "/"); i >= 0 {
		full = full[i+1:]
	}
	if i := strings.Index(full, "."); i >= 0 {
		full = full[i+1:]
	}
	if full == "" || strings.Contains(full, "func") || strings.HasSuffix(full, "-fm") {
		return "predicate"
	}
	return full
}

type anythingSchema struct{}

func (anythingSchema) Validate(obj any, name string, strict bool, subs Subs) (string, error) {
	return "", nil
}

// Anything matches every value.
func Anything() Compiled { return anythingSchema{} }

type nothingSchema struct{}

func (nothingSchema) Validate(obj any, name string, strict bool, subs Subs) (string, error) {
	return WrongType(obj, name, "nothing"), nil
}

// Nothing matches no value.
func Nothing() Compiled { return nothingSchema{} }

type numberSchema struct{}

func (numberSchema) Validate(obj any, name string, strict bool, subs Subs) (string, error) {
	if isNumeric(obj) {
		return "", nil
	}
	return WrongType(obj, name, "number"), nil
}

// Number matches any numeric value, including json.Number.
func Number() Compiled { return numberSchema{} }
