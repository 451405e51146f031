package formats_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/conform/formats"
)

func TestEmailSyntax(t *testing.T) {
	msg, err := formats.Email().Validate("joe@example.com", "object", true, nil)
	require.NoError(t, err)
	require.Empty(t, msg)

	msg, err = formats.Email().Validate("joe", "object", true, nil)
	require.NoError(t, err)
	require.Contains(t, msg, "is not of type 'email'")

	msg, err = formats.Email().Validate(42, "object", true, nil)
	require.NoError(t, err)
	require.Contains(t, msg, "is not a string")
}

func TestURL(t *testing.T) {
	msg, err := formats.URL().Validate("https://example.com/path?q=1", "object", true, nil)
	require.NoError(t, err)
	require.Empty(t, msg)

	for _, bad := range []any{"example.com/path", "https://", 42} {
		msg, err = formats.URL().Validate(bad, "object", true, nil)
		require.NoError(t, err)
		require.Contains(t, msg, "is not of type 'url'")
	}
}

func TestIPAddress(t *testing.T) {
	for _, good := range []string{"127.0.0.1", "::1", "2001:db8::68"} {
		msg, err := formats.IPAddress().Validate(good, "object", true, nil)
		require.NoError(t, err)
		require.Empty(t, msg)
	}
	for _, bad := range []any{"999.1.1.1", "example.com", 42} {
		msg, err := formats.IPAddress().Validate(bad, "object", true, nil)
		require.NoError(t, err)
		require.Contains(t, msg, "is not of type 'ip_address'")
	}
}

func TestDomainName(t *testing.T) {
	msg, err := formats.DomainName().Validate("www.example.com", "object", true, nil)
	require.NoError(t, err)
	require.Empty(t, msg)

	msg, err = formats.DomainName().Validate("www.hyphen-ok.com", "object", true, nil)
	require.NoError(t, err)
	require.Empty(t, msg)

	msg, err = formats.DomainName().Validate("www.exämple.com", "object", true, nil)
	require.NoError(t, err)
	require.Contains(t, msg, "non-ascii characters")

	msg, err = formats.DomainName().AllowUnicode().Validate("www.exämple.com", "object", true, nil)
	require.NoError(t, err)
	require.Empty(t, msg)

	msg, err = formats.DomainName().Validate("-example-.com", "object", true, nil)
	require.NoError(t, err)
	require.True(t, strings.Contains(msg, "is not of type 'domain_name'"), msg)
}

func TestDateTime(t *testing.T) {
	msg, err := formats.DateTime().Validate("2024-01-15T10:30:00Z", "object", true, nil)
	require.NoError(t, err)
	require.Empty(t, msg)

	msg, err = formats.DateTime().Validate("not a timestamp", "object", true, nil)
	require.NoError(t, err)
	require.Contains(t, msg, "is not of type 'date_time'")

	layout := formats.DateTime().Layout("2006-01-02 15:04")
	msg, err = layout.Validate("2024-01-15 10:30", "object", true, nil)
	require.NoError(t, err)
	require.Empty(t, msg)

	msg, err = layout.Validate("2024-01-15T10:30:00Z", "object", true, nil)
	require.NoError(t, err)
	require.Contains(t, msg, `date_time("2006-01-02 15:04")`)
}

func TestDate(t *testing.T) {
	msg, err := formats.Date().Validate("2024-01-15", "object", true, nil)
	require.NoError(t, err)
	require.Empty(t, msg)

	msg, err = formats.Date().Validate("15/01/2024", "object", true, nil)
	require.NoError(t, err)
	require.Contains(t, msg, "is not of type 'date'")
}

func TestTime(t *testing.T) {
	for _, good := range []string{"23:59:59", "23:59", "10:30:00.5"} {
		msg, err := formats.Time().Validate(good, "object", true, nil)
		require.NoError(t, err)
		require.Empty(t, msg)
	}
	msg, err := formats.Time().Validate("25:00:00", "object", true, nil)
	require.NoError(t, err)
	require.Contains(t, msg, "is not of type 'time'")
}

func TestMIMEType(t *testing.T) {
	msg, err := formats.MIMEType("application/json").Validate(`{"key": "value"}`, "object", true, nil)
	require.NoError(t, err)
	require.Empty(t, msg)

	msg, err = formats.MIMEType("image/png").Validate("just some text", "object", true, nil)
	require.NoError(t, err)
	require.Contains(t, msg, `is different from "image/png"`)

	msg, err = formats.MIMEType("application/json").Validate(42, "object", true, nil)
	require.NoError(t, err)
	require.Contains(t, msg, "is not of type 'mime_type(")
}
