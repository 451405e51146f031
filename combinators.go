package conform

import (
	"fmt"
	"strings"
)

type unionSchema struct {
	schemas []any
}

// Union matches values accepted by at least one of the alternatives. On
// failure the message explains why every alternative rejected the value.
func Union(schemas ...any) Compilable {
	return &unionSchema{schemas: schemas}
}

func (u *unionSchema) CompileSchema(cc *CompileCtx) (Compiled, error) {
	nodes, err := compileAll(cc, u.schemas)
	if err != nil {
		return nil, err
	}
	return &unionNode{schemas: nodes}, nil
}

type unionNode struct {
	schemas []Compiled
}

func (u *unionNode) Validate(obj any, name string, strict bool, subs Subs) (string, error) {
	messages := make([]string, 0, len(u.schemas))
	for _, s := range u.schemas {
		msg, err := s.Validate(obj, name, strict, subs)
		if err != nil {
			return "", err
		}
		if msg == "" {
			return "", nil
		}
		messages = append(messages, msg)
	}
	return strings.Join(messages, " and "), nil
}

type intersectSchema struct {
	schemas []any
}

// Intersect matches values accepted by all of the sub-schemas. The first
// counterexample short-circuits and is reported alone.
func Intersect(schemas ...any) Compilable {
	return &intersectSchema{schemas: schemas}
}

func (i *intersectSchema) CompileSchema(cc *CompileCtx) (Compiled, error) {
	nodes, err := compileAll(cc, i.schemas)
	if err != nil {
		return nil, err
	}
	return &intersectNode{schemas: nodes}, nil
}

type intersectNode struct {
	schemas []Compiled
}

func (i *intersectNode) Validate(obj any, name string, strict bool, subs Subs) (string, error) {
	for _, s := range i.schemas {
		msg, err := s.Validate(obj, name, strict, subs)
		if err != nil {
			return "", err
		}
		if msg != "" {
			return msg, nil
		}
	}
	return "", nil
}

type complementSchema struct {
	schema any
}

// Complement matches values the wrapped schema rejects.
func Complement(schema any) Compilable {
	return &complementSchema{schema: schema}
}

func (c *complementSchema) CompileSchema(cc *CompileCtx) (Compiled, error) {
	node, err := cc.Compile(c.schema)
	if err != nil {
		return nil, err
	}
	return &complementNode{schema: node}, nil
}

type complementNode struct {
	schema Compiled
}

func (c *complementNode) Validate(obj any, name string, strict bool, subs Subs) (string, error) {
	msg, err := c.schema.Validate(obj, name, strict, subs)
	if err != nil {
		return "", err
	}
	if msg != "" {
		return "", nil
	}
	return fmt.Sprintf("%s does not match the complemented schema", name), nil
}

type strictnessSchema struct {
	schema any
	strict bool
}

// Lax validates the wrapped schema with strictness off, tolerating keys and
// positions it does not cover.
func Lax(schema any) Compilable {
	return &strictnessSchema{schema: schema}
}

// Strict validates the wrapped schema with strictness forced on.
func Strict(schema any) Compilable {
	return &strictnessSchema{schema: schema, strict: true}
}

func (s *strictnessSchema) CompileSchema(cc *CompileCtx) (Compiled, error) {
	node, err := cc.Compile(s.schema)
	if err != nil {
		return nil, err
	}
	return &strictnessNode{schema: node, strict: s.strict}, nil
}

type strictnessNode struct {
	schema Compiled
	strict bool
}

func (s *strictnessNode) Validate(obj any, name string, strict bool, subs Subs) (string, error) {
	return s.schema.Validate(obj, name, s.strict, subs)
}

type setNameSchema struct {
	schema any
	name   string
}

// SetName replaces the wrapped schema's failure messages with a single
// "is not of type 'name'" message.
func SetName(schema any, name string) Compilable {
	return &setNameSchema{schema: schema, name: name}
}

func (s *setNameSchema) CompileSchema(cc *CompileCtx) (Compiled, error) {
	if s.name == "" {
		return nil, schemaErrorf("the schema name must not be empty")
	}
	node, err := cc.Compile(s.schema)
	if err != nil {
		return nil, err
	}
	return &setNameNode{schema: node, name: s.name}, nil
}

type setNameNode struct {
	schema Compiled
	name   string
}

func (s *setNameNode) Validate(obj any, name string, strict bool, subs Subs) (string, error) {
	msg, err := s.schema.Validate(obj, name, strict, subs)
	if err != nil {
		return "", err
	}
	if msg != "" {
		return WrongType(obj, name, s.name), nil
	}
	return "", nil
}

// IfThenSchema validates with the then-schema when the if-schema matches,
// and otherwise with the optional else-schema.
type IfThenSchema struct {
	ifSchema   any
	thenSchema any
	elseSchema any
	hasElse    bool
}

// IfThen matches values that either fail ifSchema or satisfy thenSchema.
func IfThen(ifSchema, thenSchema any) *IfThenSchema {
	return &IfThenSchema{ifSchema: ifSchema, thenSchema: thenSchema}
}

// Else adds the branch used when the if-schema does not match.
func (s *IfThenSchema) Else(elseSchema any) *IfThenSchema {
	s.elseSchema = elseSchema
	s.hasElse = true
	return s
}

func (s *IfThenSchema) CompileSchema(cc *CompileCtx) (Compiled, error) {
	ifNode, err := cc.Compile(s.ifSchema)
	if err != nil {
		return nil, err
	}
	thenNode, err := cc.Compile(s.thenSchema)
	if err != nil {
		return nil, err
	}
	node := &ifThenNode{ifSchema: ifNode, thenSchema: thenNode}
	if s.hasElse {
		node.elseSchema, err = cc.Compile(s.elseSchema)
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}

type ifThenNode struct {
	ifSchema   Compiled
	thenSchema Compiled
	elseSchema Compiled
}

func (n *ifThenNode) Validate(obj any, name string, strict bool, subs Subs) (string, error) {
	msg, err := n.ifSchema.Validate(obj, name, strict, subs)
	if err != nil {
		return "", err
	}
	if msg == "" {
		return n.thenSchema.Validate(obj, name, strict, subs)
	}
	if n.elseSchema != nil {
		return n.elseSchema.Validate(obj, name, strict, subs)
	}
	return "", nil
}

// CondCase pairs a condition schema with the schema applied when the
// condition matches.
type CondCase struct {
	When any
	Then any
}

type condSchema struct {
	cases []CondCase
}

// Cond evaluates conditions in order; the first matching condition selects
// its paired schema. When no condition matches, validation succeeds.
func Cond(cases ...CondCase) Compilable {
	return &condSchema{cases: cases}
}

func (c *condSchema) CompileSchema(cc *CompileCtx) (Compiled, error) {
	node := &condNode{cases: make([]condPair, 0, len(c.cases))}
	for _, p := range c.cases {
		when, err := cc.Compile(p.When)
		if err != nil {
			return nil, err
		}
		then, err := cc.Compile(p.Then)
		if err != nil {
			return nil, err
		}
		node.cases = append(node.cases, condPair{when: when, then: then})
	}
	return node, nil
}

type condPair struct {
	when Compiled
	then Compiled
}

type condNode struct {
	cases []condPair
}

func (c *condNode) Validate(obj any, name string, strict bool, subs Subs) (string, error) {
	for _, p := range c.cases {
		msg, err := p.when.Validate(obj, name, strict, subs)
		if err != nil {
			return "", err
		}
		if msg == "" {
			return p.then.Validate(obj, name, strict, subs)
		}
	}
	return "", nil
}

func compileAll(cc *CompileCtx, schemas []any) ([]Compiled, error) {
	nodes := make([]Compiled, 0, len(schemas))
	for _, s := range schemas {
		n, err := cc.Compile(s)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}
