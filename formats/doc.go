// Package formats provides validators for common string formats: email
// addresses, URLs, IP addresses, domain names, timestamps and MIME types.
// Every validator satisfies conform.Compiled and can be placed directly
// inside a description.
package formats
