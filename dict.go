package conform

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

type optionalKey struct {
	key any
}

// OptionalKey marks a map key as optional. The shorthand of a string key
// ending in "?" is equivalent; use OptionalKey when the trailing "?" must be
// part of the key itself.
func OptionalKey(key any) any {
	return optionalKey{key: key}
}

type patternEntry struct {
	key   Compiled
	value Compiled
}

// compileDict lowers a map description. Keys that compile to constants are
// matched by equality; any other key acts as a schema that candidate keys
// are validated against. Keys are processed in render order so that
// compilation and messages are deterministic.
func (cc *CompileCtx) compileDict(rv reflect.Value) (Compiled, error) {
	type rawEntry struct {
		key   any
		value any
	}
	raw := make([]rawEntry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		raw = append(raw, rawEntry{key: iter.Key().Interface(), value: iter.Value().Interface()})
	}
	sort.Slice(raw, func(i, j int) bool {
		return renderRepr(raw[i].key) < renderRepr(raw[j].key)
	})

	node := &dictNode{consts: make(map[any]Compiled)}
	for _, e := range raw {
		value, err := cc.Compile(e.value)
		if err != nil {
			return nil, err
		}
		key := e.key
		optional := false
		if ok, isOpt := key.(optionalKey); isOpt {
			key = ok.key
			optional = true
		} else if s, isStr := key.(string); isStr && len(s) > 0 && s[len(s)-1] == '?' {
			key = s[:len(s)-1]
			optional = true
		}
		ck, err := cc.Compile(key)
		if err != nil {
			return nil, err
		}
		if _, isConst := ck.(*constSchema); isConst {
			if !optional {
				node.minKeys = append(node.minKeys, key)
			}
			node.consts[key] = value
		} else {
			node.patterns = append(node.patterns, patternEntry{key: ck, value: value})
		}
	}
	return node, nil
}

type dictNode struct {
	minKeys  []any
	consts   map[any]Compiled
	patterns []patternEntry
}

func (d *dictNode) constValue(k any) (Compiled, bool) {
	if k != nil && !reflect.TypeOf(k).Comparable() {
		return nil, false
	}
	c, ok := d.consts[k]
	return c, ok
}

func (d *dictNode) Validate(obj any, name string, strict bool, subs Subs) (string, error) {
	rv := reflect.ValueOf(obj)
	if !rv.IsValid() || rv.Kind() != reflect.Map {
		return WrongType(obj, name, "map"), nil
	}

	for _, k := range d.minKeys {
		if _, ok := mapLookup(rv, k); !ok {
			return fmt.Sprintf("%s[%s] is missing", name, renderRepr(k)), nil
		}
	}

	type kv struct {
		key   any
		value any
	}
	entries := make([]kv, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		entries = append(entries, kv{key: iter.Key().Interface(), value: iter.Value().Interface()})
	}
	sort.Slice(entries, func(i, j int) bool {
		return renderRepr(entries[i].key) < renderRepr(entries[j].key)
	})

	for _, e := range entries {
		keyName := fmt.Sprintf("%s[%s]", name, renderRepr(e.key))
		var vals []string
		if value, ok := d.constValue(e.key); ok {
			msg, err := value.Validate(e.value, keyName, strict, subs)
			if err != nil {
				return "", err
			}
			if msg == "" {
				continue
			}
			vals = append(vals, msg)
		}
		matched := false
		for _, p := range d.patterns {
			kmsg, err := p.key.Validate(e.key, "key", strict, subs)
			if err != nil {
				return "", err
			}
			if kmsg != "" {
				continue
			}
			msg, err := p.value.Validate(e.value, keyName, strict, subs)
			if err != nil {
				return "", err
			}
			if msg == "" {
				matched = true
				break
			}
			vals = append(vals, msg)
		}
		if matched {
			continue
		}
		if len(vals) > 0 {
			return strings.Join(vals, " and "), nil
		}
		if strict {
			return fmt.Sprintf("%s is not in the schema", keyName), nil
		}
	}
	return "", nil
}

// mapLookup fetches key from a reflected map, tolerating key type
// mismatches between the description and the candidate map.
func mapLookup(rv reflect.Value, key any) (reflect.Value, bool) {
	kt := rv.Type().Key()
	var kv reflect.Value
	if key == nil {
		if kt.Kind() != reflect.Interface {
			return reflect.Value{}, false
		}
		kv = reflect.Zero(kt)
	} else {
		kv = reflect.ValueOf(key)
		if !kv.Type().AssignableTo(kt) {
			return reflect.Value{}, false
		}
	}
	v := rv.MapIndex(kv)
	if !v.IsValid() {
		return reflect.Value{}, false
	}
	return v, true
}

// Keys requires every listed key to be present in a map, without
// constraining the values. Useful inside Intersect next to a lax map
// schema.
func Keys(keys ...any) Compiled {
	return &keysNode{keys: keys}
}

type keysNode struct {
	keys []any
}

func (k *keysNode) Validate(obj any, name string, strict bool, subs Subs) (string, error) {
	rv := reflect.ValueOf(obj)
	if !rv.IsValid() || rv.Kind() != reflect.Map {
		return WrongType(obj, name, "map"), nil
	}
	for _, key := range k.keys {
		if _, ok := mapLookup(rv, key); !ok {
			return fmt.Sprintf("%s[%s] is missing", name, renderRepr(key)), nil
		}
	}
	return "", nil
}

type keyCountMode int

const (
	countAtLeastOne keyCountMode = iota
	countAtMostOne
	countExactlyOne
)

// AtLeastOneOf accepts maps containing at least one of the given keys.
func AtLeastOneOf(keys ...any) Compiled {
	return newKeyCountNode("at_least_one_of", countAtLeastOne, keys)
}

// AtMostOneOf accepts maps containing at most one of the given keys.
func AtMostOneOf(keys ...any) Compiled {
	return newKeyCountNode("at_most_one_of", countAtMostOne, keys)
}

// OneOf accepts maps containing exactly one of the given keys.
func OneOf(keys ...any) Compiled {
	return newKeyCountNode("one_of", countExactlyOne, keys)
}

func newKeyCountNode(kind string, mode keyCountMode, keys []any) *keyCountNode {
	reprs := make([]string, len(keys))
	for i, k := range keys {
		reprs[i] = renderRepr(k)
	}
	return &keyCountNode{
		keys: keys,
		mode: mode,
		name: fmt.Sprintf("%s(%s)", kind, strings.Join(reprs, ",")),
	}
}

type keyCountNode struct {
	keys []any
	mode keyCountMode
	name string
}

func (k *keyCountNode) Validate(obj any, name string, strict bool, subs Subs) (string, error) {
	rv := reflect.ValueOf(obj)
	if !rv.IsValid() || rv.Kind() != reflect.Map {
		return WrongType(obj, name, k.name), nil
	}
	count := 0
	for _, key := range k.keys {
		if _, ok := mapLookup(rv, key); ok {
			count++
		}
	}
	var ok bool
	switch k.mode {
	case countAtLeastOne:
		ok = count >= 1
	case countAtMostOne:
		ok = count <= 1
	default:
		ok = count == 1
	}
	if !ok {
		return WrongType(obj, name, k.name), nil
	}
	return "", nil
}
