package conform

import (
	"fmt"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
)

// RegexSchema matches strings against a regular expression. By default the
// whole string must match; Partial anchors only the start. Inline flags such
// as (?i) work as usual.
type RegexSchema struct {
	pattern string
	name    string
	partial bool
}

// Regex matches strings fully matching pattern (RE2 syntax).
func Regex(pattern string) *RegexSchema {
	return &RegexSchema{pattern: pattern}
}

// Named overrides the type name used in failure messages.
func (r *RegexSchema) Named(name string) *RegexSchema {
	r.name = name
	return r
}

// Partial matches a prefix of the string instead of the whole string.
func (r *RegexSchema) Partial() *RegexSchema {
	r.partial = true
	return r
}

func (r *RegexSchema) CompileSchema(cc *CompileCtx) (Compiled, error) {
	expr := `\A(?:` + r.pattern + `)\z`
	if r.partial {
		expr = `\A(?:` + r.pattern + `)`
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, schemaErrorf("%q is an invalid regular expression: %v", r.pattern, err)
	}
	name := r.name
	if name == "" {
		if r.partial {
			name = fmt.Sprintf("regex(%q, partial)", r.pattern)
		} else {
			name = fmt.Sprintf("regex(%q)", r.pattern)
		}
	}
	return &regexNode{re: re, name: name}, nil
}

type regexNode struct {
	re   *regexp.Regexp
	name string
}

func (r *regexNode) Validate(obj any, name string, strict bool, subs Subs) (string, error) {
	s, ok := obj.(string)
	if !ok || !r.re.MatchString(s) {
		return WrongType(obj, name, r.name), nil
	}
	return "", nil
}

// GlobSchema matches strings against a path pattern with doublestar
// ("**", "*", "?", character classes and {alternates}).
type GlobSchema struct {
	pattern string
	name    string
}

// Glob matches path strings against pattern.
func Glob(pattern string) *GlobSchema {
	return &GlobSchema{pattern: pattern}
}

// Named overrides the type name used in failure messages.
func (g *GlobSchema) Named(name string) *GlobSchema {
	g.name = name
	return g
}

func (g *GlobSchema) CompileSchema(cc *CompileCtx) (Compiled, error) {
	if !doublestar.ValidatePattern(g.pattern) {
		return nil, schemaErrorf("%q is not a valid filename pattern", g.pattern)
	}
	name := g.name
	if name == "" {
		name = fmt.Sprintf("glob(%q)", g.pattern)
	}
	return &globNode{pattern: g.pattern, name: name}, nil
}

type globNode struct {
	pattern string
	name    string
}

func (g *globNode) Validate(obj any, name string, strict bool, subs Subs) (string, error) {
	s, ok := obj.(string)
	if !ok {
		return WrongType(obj, name, g.name), nil
	}
	ok, err := doublestar.Match(g.pattern, s)
	if err != nil || !ok {
		return WrongType(obj, name, g.name), nil
	}
	return "", nil
}
