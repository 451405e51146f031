// Package yaml decodes YAML documents into the generic Go values the
// validation engine operates on.
package yaml

import (
	"bytes"
	"errors"
	"io"

	goyaml "gopkg.in/yaml.v3"

	"github.com/reoring/conform"
)

// Decode parses a single-document YAML stream into generic Go values
// (map[string]any, []any and scalars).
func Decode(data []byte) (any, error) {
	return DecodeReader(bytes.NewReader(data))
}

// DecodeReader is Decode for a stream. A second document in the stream is
// an error.
func DecodeReader(r io.Reader) (any, error) {
	dec := goyaml.NewDecoder(r)
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("multiple documents in stream")
	}
	return v, nil
}

// Validate decodes a YAML document and validates it against schema.
func Validate(schema any, data []byte, opts ...conform.Option) error {
	v, err := Decode(data)
	if err != nil {
		return err
	}
	return conform.Validate(schema, v, opts...)
}
