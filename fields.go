package conform

import (
	"fmt"
	"reflect"
	"sort"
)

type fieldsSchema struct {
	fields map[string]any
}

// Fields validates attributes of an arbitrary object: exported struct
// fields, or niladic single-result getter methods when no field of that
// name exists. Field order is deterministic (sorted by name); the first
// failure wins.
func Fields(fields map[string]any) Compilable {
	return &fieldsSchema{fields: fields}
}

func (f *fieldsSchema) CompileSchema(cc *CompileCtx) (Compiled, error) {
	names := make([]string, 0, len(f.fields))
	for k := range f.fields {
		names = append(names, k)
	}
	sort.Strings(names)
	node := &fieldsNode{checks: make([]fieldCheck, 0, len(names))}
	for _, k := range names {
		child, err := cc.Compile(f.fields[k])
		if err != nil {
			return nil, err
		}
		node.checks = append(node.checks, fieldCheck{name: k, schema: child})
	}
	return node, nil
}

type fieldCheck struct {
	name   string
	schema Compiled
}

type fieldsNode struct {
	checks []fieldCheck
}

func (f *fieldsNode) Validate(obj any, name string, strict bool, subs Subs) (string, error) {
	for _, check := range f.checks {
		label := fmt.Sprintf("%s.%s", name, check.name)
		attr, ok := lookupAttr(obj, check.name)
		if !ok {
			return fmt.Sprintf("%s is missing", label), nil
		}
		msg, err := check.schema.Validate(attr, label, strict, subs)
		if err != nil {
			return "", err
		}
		if msg != "" {
			return msg, nil
		}
	}
	return "", nil
}

func lookupAttr(obj any, name string) (any, bool) {
	rv := reflect.ValueOf(obj)
	if !rv.IsValid() {
		return nil, false
	}
	// Getter methods bind to the original value so pointer receivers work.
	if m := rv.MethodByName(name); m.IsValid() {
		t := m.Type()
		if t.NumIn() == 0 && t.NumOut() == 1 {
			return m.Call(nil)[0].Interface(), true
		}
	}
	elem := rv
	for elem.Kind() == reflect.Pointer {
		if elem.IsNil() {
			return nil, false
		}
		elem = elem.Elem()
	}
	if elem.Kind() == reflect.Struct {
		if fv := elem.FieldByName(name); fv.IsValid() && fv.CanInterface() {
			return fv.Interface(), true
		}
	}
	return nil, false
}
