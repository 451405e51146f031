package formats

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"

	"github.com/reoring/conform"
)

// MIMEType validates that the content of a string or []byte candidate is
// detected as the given MIME type, for example "application/json" or
// "image/png".
func MIMEType(want string) conform.Compiled {
	return &mimeSchema{want: want, name: fmt.Sprintf("mime_type(%q)", want)}
}

type mimeSchema struct {
	want string
	name string
}

func (m *mimeSchema) Validate(obj any, name string, strict bool, subs conform.Subs) (string, error) {
	var data []byte
	switch v := obj.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return conform.WrongType(obj, name, m.name), nil
	}
	detected := mimetype.Detect(data)
	if !detected.Is(m.want) {
		return conform.WrongTypef(obj, name, m.name, "%q is different from %q", detected.String(), m.want), nil
	}
	return "", nil
}
