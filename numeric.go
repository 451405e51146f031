package conform

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"
)

// intRep is a sign-magnitude integer wide enough for every Go integer kind.
// Integer operands compare through it so values beyond 2^53 keep their
// exactness instead of being widened to float64.
type intRep struct {
	neg bool
	mag uint64
}

func intRepOf(i int64) intRep {
	if i < 0 {
		// uint64(-i) yields the correct magnitude for MinInt64 as well.
		return intRep{neg: true, mag: uint64(-i)}
	}
	return intRep{mag: uint64(i)}
}

// toIntRep reports v as an exact integer: any integer kind, or a json.Number
// holding an integral literal. Floats and fractional numbers do not qualify.
func toIntRep(v any) (intRep, bool) {
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return intRepOf(i), true
		}
		if u, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
			return intRep{mag: u}, true
		}
		return intRep{}, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return intRepOf(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return intRep{mag: rv.Uint()}, true
	}
	return intRep{}, false
}

func compareIntRep(a, b intRep) int {
	if a.neg != b.neg {
		if a.neg {
			return -1
		}
		return 1
	}
	if a.mag == b.mag {
		return 0
	}
	less := a.mag < b.mag
	if a.neg {
		less = !less
	}
	if less {
		return -1
	}
	return 1
}

// toFloat widens any numeric value (including json.Number) to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func isNumeric(v any) bool {
	_, ok := toFloat(v)
	return ok
}

// equalValue implements schema-constant equality: integer operands compare
// exactly across kinds, other numeric pairs compare as float64, everything
// else falls back to deep equality.
func equalValue(a, b any) bool {
	if ra, ok := toIntRep(a); ok {
		if rb, ok := toIntRep(b); ok {
			return ra == rb
		}
	}
	if fa, ok := toFloat(a); ok {
		fb, okb := toFloat(b)
		return okb && fa == fb
	}
	return reflect.DeepEqual(a, b)
}

// isClose reports tolerant float equality: |a-b| bounded by the larger of
// the relative tolerance (scaled by the larger magnitude) and the absolute
// tolerance.
func isClose(a, b, relTol, absTol float64) bool {
	if a == b {
		return true
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) || math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	diff := math.Abs(a - b)
	return diff <= math.Max(relTol*math.Max(math.Abs(a), math.Abs(b)), absTol)
}

// supportsOrdering reports whether v can serve as a comparison bound.
func supportsOrdering(v any) bool {
	if isNumeric(v) {
		return true
	}
	switch v.(type) {
	case string, time.Time:
		return true
	}
	return false
}

// compareValues orders two values: integers exactly, other number pairs as
// float64, strings against strings, times against times. Mixed or
// unsupported operands return an error, which comparison nodes fold into
// their failure message.
func compareValues(a, b any) (int, error) {
	if ra, ok := toIntRep(a); ok {
		if rb, ok := toIntRep(b); ok {
			return compareIntRep(ra, rb), nil
		}
	}
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			switch {
			case fa < fb:
				return -1, nil
			case fa > fb:
				return 1, nil
			}
			return 0, nil
		}
		return 0, fmt.Errorf("cannot compare %s with %s", Render(a), Render(b))
	}
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			switch {
			case av < bv:
				return -1, nil
			case av > bv:
				return 1, nil
			}
			return 0, nil
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv), nil
		}
	}
	return 0, fmt.Errorf("cannot compare %s with %s", Render(a), Render(b))
}
