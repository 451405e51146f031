// Package json decodes JSON documents into the generic Go values the
// validation engine operates on: map[string]any, []any, json.Number,
// string, bool and nil.
package json

import (
	"bytes"
	"errors"
	"io"

	gojson "github.com/goccy/go-json"

	"github.com/reoring/conform"
)

// Option adjusts decoding.
type Option func(*options)

type options struct {
	useFloat bool
}

// UseFloat decodes numbers as float64 instead of json.Number. Large
// integers lose precision in this mode.
func UseFloat() Option {
	return func(o *options) { o.useFloat = true }
}

// Decode parses a JSON document into generic Go values. Numbers are kept
// as json.Number by default so validation can compare them without losing
// precision. Trailing data after the top-level value is an error.
func Decode(data []byte, opts ...Option) (any, error) {
	return DecodeReader(bytes.NewReader(data), opts...)
}

// DecodeReader is Decode for a stream.
func DecodeReader(r io.Reader, opts ...Option) (any, error) {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	dec := gojson.NewDecoder(r)
	if !o.useFloat {
		dec.UseNumber()
	}
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after top-level value")
	}
	return v, nil
}

// Validate decodes a JSON document and validates it against schema.
func Validate(schema any, data []byte, opts ...conform.Option) error {
	v, err := Decode(data)
	if err != nil {
		return err
	}
	return conform.Validate(schema, v, opts...)
}
