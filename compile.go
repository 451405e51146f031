package conform

import (
	"reflect"
)

// Subs maps label names to replacement schema descriptions, consumed by
// SetLabel nodes at validation time.
type Subs map[string]any

// Compiled is the executable form of a schema description. Validate returns
// the empty string when obj conforms and a composed violation message
// otherwise. The error channel is reserved for hard defects that cannot be
// expressed as a message at a value path (ambiguous label substitution);
// ordinary mismatches never use it.
//
// Any external value implementing Compiled can be used directly as a leaf
// schema description.
type Compiled interface {
	Validate(obj any, name string, strict bool, subs Subs) (string, error)
}

// Compilable is implemented by schema wrappers that produce their compiled
// form lazily. CompileSchema must compile child descriptions through cc so
// that self-referential schemas resolve against the active compile cache.
type Compilable interface {
	CompileSchema(cc *CompileCtx) (Compiled, error)
}

// cacheKey identifies a schema description by allocation identity. Go map
// keys compare by value, so reference kinds are keyed by their pointer; the
// kind disambiguates pointer spaces. Slices carry their length too: a
// sub-slice shares its backing array's base pointer with the full slice but
// is a different description unless the lengths also agree.
type cacheKey struct {
	ptr  uintptr
	len  int
	kind reflect.Kind
}

type cacheEntry struct {
	deferred *deferredSchema // placeholder while the description compiles
	node     Compiled        // final node, once backfilled
	inUse    bool            // some recursive descent returned the placeholder
}

// CompileCtx carries the per-call compilation cache. It is created by
// Compile, owned exclusively by one recursive descent, and discarded when
// the top-level call returns; it must never be shared across concurrent
// compilations.
type CompileCtx struct {
	cache map[cacheKey]*cacheEntry
}

// Compile lowers a schema description into an immutable validator graph.
// Descriptions referring to themselves, directly or through mutual
// recursion, compile into graphs containing deferred indirection nodes that
// are backfilled before Compile returns. A description with a structural
// defect yields a *SchemaError.
func Compile(schema any) (Compiled, error) {
	cc := &CompileCtx{cache: make(map[cacheKey]*cacheEntry)}
	return cc.Compile(schema)
}

// identityKey returns the cache key for schema and whether schema is
// cacheable. Only reference kinds can participate in cycles; everything else
// bypasses the cache.
func identityKey(schema any) (cacheKey, bool) {
	if schema == nil {
		return cacheKey{}, false
	}
	rv := reflect.ValueOf(schema)
	switch rv.Kind() {
	case reflect.Slice:
		return cacheKey{ptr: rv.Pointer(), len: rv.Len(), kind: rv.Kind()}, true
	case reflect.Pointer, reflect.Map, reflect.UnsafePointer:
		return cacheKey{ptr: rv.Pointer(), kind: rv.Kind()}, true
	}
	return cacheKey{}, false
}

// Compile compiles a child description against the active cache. Wrapper
// types implementing Compilable call this from CompileSchema.
func (cc *CompileCtx) Compile(schema any) (Compiled, error) {
	key, cacheable := identityKey(schema)
	if cacheable {
		if e, ok := cc.cache[key]; ok {
			if e.node != nil {
				return e.node, nil
			}
			// Still compiling: hand out the placeholder. This is what
			// terminates cycles.
			e.inUse = true
			return e.deferred, nil
		}
		cc.cache[key] = &cacheEntry{deferred: &deferredSchema{}}
	}

	node, err := cc.dispatch(schema)
	if err != nil {
		if cacheable {
			delete(cc.cache, key)
		}
		return nil, err
	}

	if cacheable {
		e := cc.cache[key]
		if e.inUse {
			// A recursive descent holds the placeholder; point it at the
			// finished node and retain the entry.
			e.deferred.target = node
			e.node = node
		} else {
			delete(cc.cache, key)
		}
	}
	return node, nil
}

// dispatch builds the real node for a description. Precedence matters:
// explicit capabilities win over structural shapes so wrapper objects are
// never misread as plain sequences or callables.
func (cc *CompileCtx) dispatch(schema any) (Compiled, error) {
	switch s := schema.(type) {
	case nil:
		return &constSchema{value: nil}, nil
	case Compiled:
		return s, nil
	case Compilable:
		return s.CompileSchema(cc)
	case reflect.Type:
		return compileTypeHandle(s)
	case func(any) bool:
		return &predicateSchema{fn: s, name: funcName(s)}, nil
	}

	rv := reflect.ValueOf(schema)
	switch rv.Kind() {
	case reflect.Func:
		return nil, schemaErrorf("%s is not usable as a predicate: want func(any) bool", rv.Type())
	case reflect.Slice, reflect.Array:
		return cc.compileSequence(rv)
	case reflect.Map:
		return cc.compileDict(rv)
	}
	return newConstSchema(schema), nil
}

// deferredSchema is the placeholder returned while its description is still
// compiling. The compiler backfills target before the top-level Compile
// returns, so an unresolved target can only be observed if a Compilable
// implementation leaks the placeholder out of a failed compile.
type deferredSchema struct {
	target Compiled
}

func (d *deferredSchema) Validate(obj any, name string, strict bool, subs Subs) (string, error) {
	if d.target == nil {
		return "", validationErrorf("%s: schema is unresolved", name)
	}
	return d.target.Validate(obj, name, strict, subs)
}

var compiledType = reflect.TypeOf((*Compiled)(nil)).Elem()

// compileTypeHandle compiles a reflect.Type description. A type whose zero
// value (or pointer thereto) implements Compiled acts as a self-registering
// validator marker; any other type matches by assignability.
func compileTypeHandle(t reflect.Type) (Compiled, error) {
	if t == nil {
		return nil, schemaErrorf("nil is not a valid type handle")
	}
	if t.Implements(compiledType) {
		if t.Kind() == reflect.Pointer || t.Kind() == reflect.Interface {
			return nil, schemaErrorf("%s does not have a usable zero value as a validator", t)
		}
		return reflect.Zero(t).Interface().(Compiled), nil
	}
	if reflect.PointerTo(t).Implements(compiledType) {
		return reflect.New(t).Interface().(Compiled), nil
	}
	return &typeSchema{t: t}, nil
}

// Type returns a reflect.Type handle usable as a type-membership schema.
func Type[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
