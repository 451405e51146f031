package conform

import (
	"fmt"
	"math"
	"reflect"
)

type boundOp int

const (
	opGT boundOp = iota
	opGE
	opLT
	opLE
)

var boundPhrase = map[boundOp]string{
	opGT: "is not strictly greater than",
	opGE: "is not greater than or equal to",
	opLT: "is not strictly less than",
	opLE: "is not less than or equal to",
}

// boundSchema is the uncompiled description of a one-sided comparison.
type boundSchema struct {
	op    boundOp
	bound any
}

// GT matches values strictly greater than bound.
func GT(bound any) Compilable { return &boundSchema{op: opGT, bound: bound} }

// GE matches values greater than or equal to bound.
func GE(bound any) Compilable { return &boundSchema{op: opGE, bound: bound} }

// LT matches values strictly less than bound.
func LT(bound any) Compilable { return &boundSchema{op: opLT, bound: bound} }

// LE matches values less than or equal to bound.
func LE(bound any) Compilable { return &boundSchema{op: opLE, bound: bound} }

func (b *boundSchema) CompileSchema(cc *CompileCtx) (Compiled, error) {
	if !supportsOrdering(b.bound) {
		return nil, schemaErrorf("the bound %s does not support comparison", Render(b.bound))
	}
	return &boundNode{op: b.op, bound: b.bound}, nil
}

type boundNode struct {
	op    boundOp
	bound any
}

func (b *boundNode) message(obj any, name string) string {
	return fmt.Sprintf("%s (value:%s) %s %v", name, Render(obj), boundPhrase[b.op], b.bound)
}

func (b *boundNode) Validate(obj any, name string, strict bool, subs Subs) (string, error) {
	cmp, err := compareValues(b.bound, obj)
	if err != nil {
		return b.message(obj, name) + ": " + err.Error(), nil
	}
	ok := false
	switch b.op {
	case opGT:
		ok = cmp < 0
	case opGE:
		ok = cmp <= 0
	case opLT:
		ok = cmp > 0
	case opLE:
		ok = cmp >= 0
	}
	if !ok {
		return b.message(obj, name), nil
	}
	return "", nil
}

// CloseToSchema matches numbers within a relative/absolute tolerance of a
// target, mirroring the semantics float constants get by default.
type CloseToSchema struct {
	x        float64
	relTol   float64
	absTol   float64
	hasRel   bool
	hasAbs   bool
	relValid bool
}

// CloseTo matches numbers close to x. Without options the relative tolerance
// is 1e-9 and the absolute tolerance 0.
func CloseTo(x float64) *CloseToSchema {
	return &CloseToSchema{x: x, relValid: true}
}

// RelTol overrides the relative tolerance.
func (c *CloseToSchema) RelTol(rel float64) *CloseToSchema {
	c.relTol = rel
	c.hasRel = true
	c.relValid = rel >= 0
	return c
}

// AbsTol overrides the absolute tolerance.
func (c *CloseToSchema) AbsTol(abs float64) *CloseToSchema {
	c.absTol = abs
	c.hasAbs = true
	return c
}

func (c *CloseToSchema) CompileSchema(cc *CompileCtx) (Compiled, error) {
	if !c.relValid || (c.hasAbs && c.absTol < 0) {
		return nil, schemaErrorf("close_to tolerances must not be negative")
	}
	n := newCloseTo(c.x)
	if c.hasRel {
		n.rel = c.relTol
	}
	if c.hasAbs {
		n.abs = c.absTol
	}
	n.name = c.describe()
	return n, nil
}

func (c *CloseToSchema) describe() string {
	s := fmt.Sprintf("close_to(%v", c.x)
	if c.hasRel {
		s += fmt.Sprintf(",rel_tol=%v", c.relTol)
	}
	if c.hasAbs {
		s += fmt.Sprintf(",abs_tol=%v", c.absTol)
	}
	return s + ")"
}

const defaultRelTol = 1e-9

type closeToNode struct {
	x    float64
	rel  float64
	abs  float64
	name string
}

func newCloseTo(x float64) *closeToNode {
	return &closeToNode{x: x, rel: defaultRelTol, name: fmt.Sprintf("close_to(%v)", x)}
}

func (c *closeToNode) Validate(obj any, name string, strict bool, subs Subs) (string, error) {
	f, ok := toFloat(obj)
	if !ok {
		return WrongType(obj, name, "number"), nil
	}
	if !isClose(f, c.x, c.rel, c.abs) {
		return WrongType(obj, name, c.name), nil
	}
	return "", nil
}

// IntervalSchema matches values between a lower and an upper bound. Either
// endpoint may be Ellipsis, leaving that side unbounded; both endpoints open
// degenerates to Anything.
type IntervalSchema struct {
	lb, ub   any
	strictLB bool
	strictUB bool
}

// Interval matches values in [lb, ub]. Pass Ellipsis to leave an endpoint
// unbounded.
func Interval(lb, ub any) *IntervalSchema {
	return &IntervalSchema{lb: lb, ub: ub}
}

// OpenLow excludes the lower endpoint.
func (iv *IntervalSchema) OpenLow() *IntervalSchema {
	iv.strictLB = true
	return iv
}

// OpenHigh excludes the upper endpoint.
func (iv *IntervalSchema) OpenHigh() *IntervalSchema {
	iv.strictUB = true
	return iv
}

func (iv *IntervalSchema) describe() string {
	ld, ud := "[", "]"
	if iv.strictLB {
		ld = "]"
	}
	if iv.strictUB {
		ud = "["
	}
	lb, ub := "...", "..."
	if !isEllipsis(iv.lb) {
		lb = fmt.Sprint(iv.lb)
	}
	if !isEllipsis(iv.ub) {
		ub = fmt.Sprint(iv.ub)
	}
	return fmt.Sprintf("%s%s,%s%s", ld, lb, ub, ud)
}

func (iv *IntervalSchema) CompileSchema(cc *CompileCtx) (Compiled, error) {
	hasLB := !isEllipsis(iv.lb)
	hasUB := !isEllipsis(iv.ub)

	var lower, upper Compiled
	if hasLB {
		if !supportsOrdering(iv.lb) {
			return nil, schemaErrorf("the lower bound in the interval %s does not support comparison", iv.describe())
		}
		op := opGE
		if iv.strictLB {
			op = opGT
		}
		lower = &boundNode{op: op, bound: iv.lb}
	}
	if hasUB {
		if !supportsOrdering(iv.ub) {
			return nil, schemaErrorf("the upper bound in the interval %s does not support comparison", iv.describe())
		}
		op := opLE
		if iv.strictUB {
			op = opLT
		}
		upper = &boundNode{op: op, bound: iv.ub}
	}

	switch {
	case hasLB && hasUB:
		if _, err := compareValues(iv.lb, iv.ub); err != nil {
			return nil, schemaErrorf("the upper and lower bound in the interval %s are incomparable", iv.describe())
		}
		return &intersectNode{schemas: []Compiled{lower, upper}}, nil
	case hasUB:
		return upper, nil
	case hasLB:
		return lower, nil
	}
	return Anything(), nil
}

// DivSchema matches integers congruent to a remainder modulo a divisor.
type DivSchema struct {
	divisor   int
	remainder int
	name      string
}

// Div matches integers divisible by divisor.
func Div(divisor int) *DivSchema {
	return &DivSchema{divisor: divisor}
}

// Rem shifts the congruence class: values v with (v-remainder) % divisor == 0.
func (d *DivSchema) Rem(remainder int) *DivSchema {
	d.remainder = remainder
	return d
}

// Named overrides the type name used in failure messages.
func (d *DivSchema) Named(name string) *DivSchema {
	d.name = name
	return d
}

func (d *DivSchema) CompileSchema(cc *CompileCtx) (Compiled, error) {
	if d.divisor == 0 {
		return nil, schemaErrorf("the divisor cannot be zero")
	}
	name := d.name
	if name == "" {
		name = fmt.Sprintf("div(%d)", d.divisor)
		if d.remainder != 0 {
			name = fmt.Sprintf("div(%d,%d)", d.divisor, d.remainder)
		}
	}
	return &divNode{divisor: int64(d.divisor), remainder: int64(d.remainder), name: name}, nil
}

type divNode struct {
	divisor   int64
	remainder int64
	name      string
}

func (d *divNode) Validate(obj any, name string, strict bool, subs Subs) (string, error) {
	i, ok := toInt(obj)
	if !ok {
		return WrongType(obj, name, "int"), nil
	}
	if (i-d.remainder)%d.divisor == 0 {
		return "", nil
	}
	return WrongType(obj, name, d.name), nil
}

// toInt narrows integer-kind values (and integral json.Number) to int64.
func toInt(v any) (int64, bool) {
	if n, ok := v.(interface{ Int64() (int64, error) }); ok {
		i, err := n.Int64()
		return i, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			// int64(u) would wrap negative and corrupt the congruence check.
			return 0, false
		}
		return int64(u), true
	}
	return 0, false
}
