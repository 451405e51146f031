package conform

// Option adjusts a single top-level validation call.
type Option func(*validateOpts)

type validateOpts struct {
	name   string
	strict bool
	subs   Subs
}

func newValidateOpts(opts []Option) validateOpts {
	o := validateOpts{name: "object", strict: true}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// WithName sets the path label used for the root value. The default is
// "object".
func WithName(name string) Option {
	return func(o *validateOpts) { o.name = name }
}

// Lenient tolerates keys and positions not covered by the schema. The
// default is strict (closed-world) validation.
func Lenient() Option {
	return func(o *validateOpts) { o.strict = false }
}

// WithSubs supplies label substitutions consumed by SetLabel nodes.
func WithSubs(subs Subs) Option {
	return func(o *validateOpts) { o.subs = subs }
}

// ValidateString compiles schema and validates obj against it, returning the
// violation message ("" on success). Compilation happens on every call; pass
// an already-compiled node to skip it.
func ValidateString(schema, obj any, opts ...Option) (string, error) {
	o := newValidateOpts(opts)
	node, err := Compile(schema)
	if err != nil {
		return "", err
	}
	return node.Validate(obj, o.name, o.strict, o.subs)
}

// Validate compiles schema and validates obj against it. A value that fails
// its schema yields a *ValidationError carrying the composed message; a
// defective schema yields a *SchemaError.
func Validate(schema, obj any, opts ...Option) error {
	msg, err := ValidateString(schema, obj, opts...)
	if err != nil {
		return err
	}
	if msg != "" {
		return &ValidationError{msg: msg}
	}
	return nil
}

// Check reports whether obj conforms to schema, swallowing both violation
// messages and hard errors.
func Check(schema, obj any, opts ...Option) bool {
	msg, err := ValidateString(schema, obj, opts...)
	return err == nil && msg == ""
}
