package conform

import (
	"fmt"
	"strconv"
)

// Rendering of offending values is bounded: anything at or above renderLimit
// runes is cut down to renderKeep runes plus an explicit truncation marker.
const (
	renderLimit = 120
	renderKeep  = 99
)

// Render produces a bounded, human-readable rendering of v for use in
// failure messages. Strings are quoted; long renderings are truncated with a
// "...[TRUNCATED]..." marker, restoring the closing delimiter of container
// values so the shape stays recognizable.
func Render(v any) string {
	_, isString := v.(string)
	ss := fmt.Sprint(v)
	runes := []rune(ss)
	var last rune
	if len(runes) > 0 {
		last = runes[len(runes)-1]
	}
	ret := ss
	if len(runes) >= renderLimit {
		ret = string(runes[:renderKeep]) + "...[TRUNCATED]..."
		if !isString && (last == ']' || last == ')' || last == '}') {
			ret += string(last)
		}
	}
	if isString {
		return strconv.Quote(ret)
	}
	return ret
}

// renderRepr renders a value verbatim (no truncation) for message fragments
// that quote schema constants or map keys.
func renderRepr(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprint(v)
}

// WrongType composes the standard "is not of type" failure message.
func WrongType(obj any, name, typeName string) string {
	return fmt.Sprintf("%s (value:%s) is not of type '%s'", name, Render(obj), typeName)
}

// WrongTypef is WrongType with a trailing explanation.
func WrongTypef(obj any, name, typeName, format string, args ...any) string {
	return WrongType(obj, name, typeName) + ": " + fmt.Sprintf(format, args...)
}
