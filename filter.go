package conform

import (
	"fmt"
)

// FilterSchema transforms a value before validating the result.
type FilterSchema struct {
	fn     func(any) (any, error)
	schema any
	name   string
}

// Filter applies fn to the candidate and validates the result against
// schema. A failing fn is reported as a validation failure at the filter's
// name, not as a hard error.
func Filter(fn func(any) (any, error), schema any) *FilterSchema {
	return &FilterSchema{fn: fn, schema: schema}
}

// Named overrides the filter name used in failure messages and paths.
func (f *FilterSchema) Named(name string) *FilterSchema {
	f.name = name
	return f
}

func (f *FilterSchema) CompileSchema(cc *CompileCtx) (Compiled, error) {
	if f.fn == nil {
		return nil, schemaErrorf("the filter is not callable")
	}
	node, err := cc.Compile(f.schema)
	if err != nil {
		return nil, err
	}
	name := f.name
	if name == "" {
		name = "filter"
	}
	return &filterNode{fn: f.fn, schema: node, name: name}, nil
}

type filterNode struct {
	fn     func(any) (any, error)
	schema Compiled
	name   string
}

func (f *filterNode) Validate(obj any, name string, strict bool, subs Subs) (msg string, err error) {
	transformed, ferr := f.apply(obj)
	if ferr != nil {
		return fmt.Sprintf("Applying %s to %s (value: %s) failed: %v", f.name, name, Render(obj), ferr), nil
	}
	return f.schema.Validate(transformed, fmt.Sprintf("%s(%s)", f.name, name), strict, subs)
}

func (f *filterNode) apply(obj any) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return f.fn(obj)
}
