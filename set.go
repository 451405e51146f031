package conform

import (
	"fmt"
	"reflect"
	"sort"
)

// SetSchema describes Go-style sets: maps whose element type is struct{}
// or bool. Each member of a candidate set must match at least one of the
// element schemas. For bool-valued sets only keys mapped to true count as
// members.
type SetSchema struct {
	elems []any
}

// Set builds a schema for set-like maps from the given element schemas.
// With no arguments only the empty set matches.
func Set(elems ...any) SetSchema {
	return SetSchema{elems: elems}
}

func (s SetSchema) CompileSchema(cc *CompileCtx) (Compiled, error) {
	switch len(s.elems) {
	case 0:
		return &setNode{}, nil
	case 1:
		elem, err := cc.Compile(s.elems[0])
		if err != nil {
			return nil, err
		}
		return &setNode{elem: elem}, nil
	default:
		elem, err := cc.Compile(Union(s.elems...))
		if err != nil {
			return nil, err
		}
		return &setNode{elem: elem}, nil
	}
}

// setNode holds the compiled element schema; nil means the empty set.
type setNode struct {
	elem Compiled
}

var emptyStructType = reflect.TypeOf(struct{}{})

func setMembers(rv reflect.Value) ([]any, bool) {
	if !rv.IsValid() || rv.Kind() != reflect.Map {
		return nil, false
	}
	et := rv.Type().Elem()
	boolValued := et.Kind() == reflect.Bool
	if et != emptyStructType && !boolValued {
		return nil, false
	}
	var members []any
	iter := rv.MapRange()
	for iter.Next() {
		if boolValued && !iter.Value().Bool() {
			continue
		}
		members = append(members, iter.Key().Interface())
	}
	sort.Slice(members, func(i, j int) bool {
		return renderRepr(members[i]) < renderRepr(members[j])
	})
	return members, true
}

func (s *setNode) Validate(obj any, name string, strict bool, subs Subs) (string, error) {
	members, ok := setMembers(reflect.ValueOf(obj))
	if !ok {
		return WrongType(obj, name, "set"), nil
	}
	if s.elem == nil {
		if len(members) > 0 {
			return fmt.Sprintf("%s (value:%s) is not equal to the empty set", name, Render(obj)), nil
		}
		return "", nil
	}
	for i, m := range members {
		msg, err := s.elem.Validate(m, fmt.Sprintf("%s{%d}", name, i), true, subs)
		if err != nil {
			return "", err
		}
		if msg != "" {
			return msg, nil
		}
	}
	return "", nil
}
