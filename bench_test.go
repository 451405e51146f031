package conform_test

import (
	"fmt"
	"testing"

	conform "github.com/reoring/conform"
)

func BenchmarkValidatePrecompiled(b *testing.B) {
	schema := map[string]any{
		"name":  conform.Regex(`[a-z][a-z0-9_]*`),
		"port":  conform.Interval(1, 65535),
		"tags?": []any{conform.Type[string](), conform.Ellipsis},
	}
	c, err := conform.Compile(schema)
	if err != nil {
		b.Fatalf("compile: %v", err)
	}
	obj := map[string]any{
		"name": "api_server",
		"port": 8080,
		"tags": []any{"prod", "edge", "v2"},
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		msg, err := c.Validate(obj, "object", true, nil)
		if err != nil || msg != "" {
			b.Fatalf("unexpected failure: %q %v", msg, err)
		}
	}
}

func BenchmarkCompile(b *testing.B) {
	schema := map[string]any{}
	schema["child?"] = schema
	schema["name"] = conform.Type[string]()
	for i := 0; i < 8; i++ {
		schema[fmt.Sprintf("f%d?", i)] = conform.Interval(0, 100)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := conform.Compile(schema); err != nil {
			b.Fatalf("compile: %v", err)
		}
	}
}
