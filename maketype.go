package conform

import (
	"fmt"
	"log/slog"
	"sync"
)

// TypeLike wraps a description so it can be used as a membership test.
// The description is compiled once, on first use. A TypeLike is itself a
// Compiled node: inside another description it behaves like a named type
// check, reporting only its name rather than the inner failure.
type TypeLike struct {
	schema any
	name   string
	strict bool
	debug  bool
	subs   Subs

	once       sync.Once
	compiled   Compiled
	compileErr error
}

// MakeType turns schema into a reusable membership test. Configure it with
// Named, Lenient, Debug and WithSubs before the first call to Is or
// Validate.
func MakeType(schema any) *TypeLike {
	return &TypeLike{schema: schema, name: "schema", strict: true}
}

// Named sets the name used in failure messages.
func (t *TypeLike) Named(name string) *TypeLike {
	t.name = name
	return t
}

// Lenient disables strict checking of maps and sequences.
func (t *TypeLike) Lenient() *TypeLike {
	t.strict = false
	return t
}

// Debug logs the underlying failure message via slog when Is returns
// false.
func (t *TypeLike) Debug() *TypeLike {
	t.debug = true
	return t
}

// WithSubs sets the label substitutions applied during validation.
func (t *TypeLike) WithSubs(subs Subs) *TypeLike {
	t.subs = subs
	return t
}

func (t *TypeLike) compile() (Compiled, error) {
	t.once.Do(func() {
		t.compiled, t.compileErr = Compile(t.schema)
	})
	return t.compiled, t.compileErr
}

// Is reports whether obj matches the wrapped description. A defect in the
// description itself (or an ambiguous substitution) is not non-membership;
// it panics rather than being misread as false.
func (t *TypeLike) Is(obj any) bool {
	msg, err := t.check(obj)
	if err != nil {
		panic(fmt.Sprintf("conform: %s: %v", t.name, err))
	}
	if msg != "" {
		if t.debug {
			slog.Debug("validation failed", "type", t.name, "message", msg)
		}
		return false
	}
	return true
}

func (t *TypeLike) check(obj any) (string, error) {
	c, err := t.compile()
	if err != nil {
		return "", err
	}
	return c.Validate(obj, "object", t.strict, t.subs)
}

func (t *TypeLike) Validate(obj any, name string, strict bool, subs Subs) (string, error) {
	msg, err := t.check(obj)
	if err != nil {
		return "", err
	}
	if msg != "" {
		return WrongType(obj, name, t.name), nil
	}
	return "", nil
}
