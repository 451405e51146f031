package formats

import (
	"context"
	"net"
	"net/netip"
	"net/url"
	"strings"

	"golang.org/x/net/idna"

	"github.com/reoring/conform"
)

// URL accepts strings that parse as absolute URLs with a scheme and a
// host.
func URL() conform.Compiled {
	return urlSchema{}
}

type urlSchema struct{}

func (urlSchema) Validate(obj any, name string, strict bool, subs conform.Subs) (string, error) {
	s, ok := obj.(string)
	if !ok {
		return conform.WrongType(obj, name, "url"), nil
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return conform.WrongType(obj, name, "url"), nil
	}
	return "", nil
}

// IPAddress accepts strings that parse as IPv4 or IPv6 addresses.
func IPAddress() conform.Compiled {
	return ipSchema{}
}

type ipSchema struct{}

func (ipSchema) Validate(obj any, name string, strict bool, subs conform.Subs) (string, error) {
	s, ok := obj.(string)
	if !ok {
		return conform.WrongType(obj, name, "ip_address"), nil
	}
	if _, err := netip.ParseAddr(s); err != nil {
		return conform.WrongType(obj, name, "ip_address"), nil
	}
	return "", nil
}

// DomainNameSchema validates internationalized domain names. ASCII only
// by default; AllowUnicode admits names that the IDNA registration
// profile can encode, and Resolve additionally requires the name to
// resolve in DNS.
type DomainNameSchema struct {
	allowUnicode bool
	resolve      bool
	resolver     *net.Resolver
}

func DomainName() *DomainNameSchema {
	return &DomainNameSchema{resolver: net.DefaultResolver}
}

func (d *DomainNameSchema) AllowUnicode() *DomainNameSchema {
	d.allowUnicode = true
	return d
}

// Resolve enables a DNS lookup of the name. This performs network I/O
// during validation.
func (d *DomainNameSchema) Resolve() *DomainNameSchema {
	d.resolve = true
	return d
}

func (d *DomainNameSchema) name() string {
	var opts []string
	if d.allowUnicode {
		opts = append(opts, "unicode")
	}
	if d.resolve {
		opts = append(opts, "resolve")
	}
	if len(opts) == 0 {
		return "domain_name"
	}
	return "domain_name(" + strings.Join(opts, ",") + ")"
}

func (d *DomainNameSchema) Validate(obj any, name string, strict bool, subs conform.Subs) (string, error) {
	s, ok := obj.(string)
	if !ok {
		return conform.WrongType(obj, name, d.name()), nil
	}
	if !d.allowUnicode {
		for i := 0; i < len(s); i++ {
			if s[i] >= 0x80 {
				return conform.WrongTypef(obj, name, d.name(), "non-ascii characters"), nil
			}
		}
	}
	ascii, err := idna.Registration.ToASCII(s)
	if err != nil {
		return conform.WrongTypef(obj, name, d.name(), "%v", err), nil
	}
	if d.resolve {
		ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
		defer cancel()
		if _, err := d.resolver.LookupHost(ctx, ascii); err != nil {
			return conform.WrongTypef(obj, name, d.name(), "%v", err), nil
		}
	}
	return "", nil
}
