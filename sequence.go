package conform

import (
	"fmt"
	"reflect"
)

type ellipsisMarker struct{}

// Ellipsis marks a repetition in a sequence schema and an open endpoint in
// Interval. A sequence schema ending in Ellipsis accepts any number of
// trailing elements, each matching the element before the marker (or
// anything when the marker stands alone).
var Ellipsis = ellipsisMarker{}

func isEllipsis(v any) bool {
	_, ok := v.(ellipsisMarker)
	return ok
}

// compileSequence lowers a slice/array description into a sequence node.
// Ellipsis elements are never compiled; only a trailing marker is
// significant.
func (cc *CompileCtx) compileSequence(rv reflect.Value) (Compiled, error) {
	n := rv.Len()
	elems := make([]Compiled, 0, n)
	for i := 0; i < n; i++ {
		e := rv.Index(i).Interface()
		if isEllipsis(e) {
			continue
		}
		node, err := cc.Compile(e)
		if err != nil {
			return nil, err
		}
		elems = append(elems, node)
	}
	node := &sequenceNode{elems: elems}
	if n > 0 && isEllipsis(rv.Index(n-1).Interface()) {
		if len(elems) > 0 {
			node.fill = elems[len(elems)-1]
			node.elems = elems[:len(elems)-1]
		} else {
			node.fill = Anything()
		}
	}
	return node, nil
}

// sequenceNode validates ordered sequences positionally. A nil fill means
// the fixed form (exact arity in strict mode); a non-nil fill validates
// every trailing element with no upper length bound regardless of
// strictness.
type sequenceNode struct {
	elems []Compiled
	fill  Compiled
}

func (s *sequenceNode) Validate(obj any, name string, strict bool, subs Subs) (string, error) {
	rv := reflect.ValueOf(obj)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return WrongType(obj, name, "sequence"), nil
	}
	ls := len(s.elems)
	lo := rv.Len()
	if s.fill == nil && strict && lo > ls {
		return fmt.Sprintf("%s[%d] is not in the schema", name, ls), nil
	}
	if ls > lo {
		return fmt.Sprintf("%s[%d] is missing", name, lo), nil
	}
	for i := 0; i < ls; i++ {
		msg, err := s.elems[i].Validate(rv.Index(i).Interface(), fmt.Sprintf("%s[%d]", name, i), strict, subs)
		if err != nil {
			return "", err
		}
		if msg != "" {
			return msg, nil
		}
	}
	if s.fill != nil {
		for i := ls; i < lo; i++ {
			msg, err := s.fill.Validate(rv.Index(i).Interface(), fmt.Sprintf("%s[%d]", name, i), strict, subs)
			if err != nil {
				return "", err
			}
			if msg != "" {
				return msg, nil
			}
		}
	}
	return "", nil
}
