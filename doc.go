// Package conform validates already-decoded in-memory values against
// declarative schema descriptions.
//
// A schema description is an ordinary Go value: a literal (matched by
// equality, with tolerant comparison for floats), a reflect.Type handle
// (matched by assignability), a predicate func(any) bool, an ordered
// []any sequence (optionally terminated by Ellipsis), a key-pattern map, a
// Set of alternatives, or one of the combinator wrappers (Union, Intersect,
// Complement, IfThen, Cond, Lax, Strict, SetLabel, Filter, Fields, ...).
// Descriptions compose freely and may refer to themselves, directly or
// through mutual recursion, to describe recursive data such as trees or
// linked records.
//
// Compile lowers a description into an immutable validator graph exactly
// once, breaking cycles with deferred placeholder nodes that are backfilled
// when the enclosing subtree finishes compiling. The compiled graph is safe
// for concurrent use; validation never mutates it. Validate and
// ValidateString compile on every call, so callers on a hot path should
// compile once and reuse the resulting node.
//
// Failures are reported as human-readable messages that name the offending
// location, for example:
//
//	object["users"][2]["email"] (value:"foo") is not of type 'email'
//
// Long value renderings are truncated. Defects in the schema itself (an
// invalid regular expression, inverted size bounds, an incomparable
// interval) surface as *SchemaError at compile time; values that merely
// fail their schema surface as *ValidationError.
//
// The subpackages conform/formats (email, URL, IP address, domain name,
// MIME type, date/time) and conform/source (JSON and YAML decoding front
// ends) plug into the engine through the same Compiled interface that every
// built-in node implements.
package conform
