package conform

import (
	"fmt"
	"reflect"
)

// sizeSchema bounds the length of a sized value (string, slice, array, map
// or channel).
type sizeSchema struct {
	lb int
	ub any
}

// Size matches sized values whose length lies in [lb, ub]. Pass Ellipsis as
// ub for no upper bound, or nil for an exact length of lb.
func Size(lb int, ub any) Compilable {
	return &sizeSchema{lb: lb, ub: ub}
}

func (s *sizeSchema) CompileSchema(cc *CompileCtx) (Compiled, error) {
	if s.lb < 0 {
		return nil, schemaErrorf("the lower size bound (value: %d) is smaller than 0", s.lb)
	}
	ub := s.ub
	if ub == nil {
		ub = s.lb
	}
	if !isEllipsis(ub) {
		n, ok := ub.(int)
		if !ok {
			return nil, schemaErrorf("the upper size bound (value:%s) is not of type 'int'", Render(ub))
		}
		if n < s.lb {
			return nil, schemaErrorf("the lower size bound (value: %d) is bigger than the upper bound (value: %d)", s.lb, n)
		}
	}
	iv, err := Interval(s.lb, ub).CompileSchema(cc)
	if err != nil {
		return nil, err
	}
	return &sizeNode{interval: iv}, nil
}

type sizeNode struct {
	interval Compiled
}

func (s *sizeNode) Validate(obj any, name string, strict bool, subs Subs) (string, error) {
	rv := reflect.ValueOf(obj)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
	default:
		return fmt.Sprintf("%s (value:%s) has no length", name, Render(obj)), nil
	}
	return s.interval.Validate(rv.Len(), fmt.Sprintf("len(%s)", name), strict, subs)
}
