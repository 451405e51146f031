package conform

import (
	"log/slog"
	"sort"
)

// LabelSchema tags a schema with substitution labels. At validation time a
// caller may redirect every node carrying a given label to an alternate
// schema through WithSubs.
type LabelSchema struct {
	schema any
	labels []string
	debug  bool
}

// SetLabel tags schema with one or more substitution labels.
func SetLabel(schema any, labels ...string) *LabelSchema {
	return &LabelSchema{schema: schema, labels: labels}
}

// Debug logs applied substitutions through slog.
func (l *LabelSchema) Debug() *LabelSchema {
	l.debug = true
	return l
}

func (l *LabelSchema) CompileSchema(cc *CompileCtx) (Compiled, error) {
	set := make(map[string]struct{}, len(l.labels))
	for _, label := range l.labels {
		if label == "" {
			return nil, schemaErrorf("labels must not be empty strings")
		}
		set[label] = struct{}{}
	}
	node, err := cc.Compile(l.schema)
	if err != nil {
		return nil, err
	}
	return &labelNode{schema: node, labels: set, debug: l.debug}, nil
}

type labelNode struct {
	schema Compiled
	labels map[string]struct{}
	debug  bool
}

func (l *labelNode) Validate(obj any, name string, strict bool, subs Subs) (string, error) {
	var matches []string
	for k := range subs {
		if _, ok := l.labels[k]; ok {
			matches = append(matches, k)
		}
	}
	if len(matches) >= 2 {
		sort.Strings(matches)
		return "", validationErrorf("multiple substitutions for %s (applicable keys:%v)", name, matches)
	}
	if len(matches) == 1 {
		key := matches[0]
		if l.debug {
			slog.Debug("schema substituted", "name", name, "label", key)
		}
		// The substitute is unknown at schema creation time, so it compiles
		// here. Callers can pre-compile the value in subs to avoid the cost.
		node, err := Compile(subs[key])
		if err != nil {
			return "", err
		}
		return node.Validate(obj, name, true, subs)
	}
	return l.schema.Validate(obj, name, true, subs)
}
