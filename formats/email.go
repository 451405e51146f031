package formats

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/reoring/conform"
)

var syntaxCheck = validator.New()

const resolveTimeout = 10 * time.Second

// EmailSchema validates email addresses. Syntax only by default;
// CheckDeliverability additionally requires the domain to publish MX
// records.
type EmailSchema struct {
	deliverability bool
	resolver       *net.Resolver
}

func Email() *EmailSchema {
	return &EmailSchema{resolver: net.DefaultResolver}
}

// CheckDeliverability enables an MX lookup on the address domain. This
// performs network I/O during validation.
func (e *EmailSchema) CheckDeliverability() *EmailSchema {
	e.deliverability = true
	return e
}

func (e *EmailSchema) Validate(obj any, name string, strict bool, subs conform.Subs) (string, error) {
	s, ok := obj.(string)
	if !ok {
		return conform.WrongTypef(obj, name, "email", "%s is not a string", conform.Render(obj)), nil
	}
	if err := syntaxCheck.Var(s, "email"); err != nil {
		return conform.WrongTypef(obj, name, "email", "the address is not valid"), nil
	}
	if e.deliverability {
		domain := s[strings.LastIndex(s, "@")+1:]
		ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
		defer cancel()
		mx, err := e.resolver.LookupMX(ctx, domain)
		if err != nil || len(mx) == 0 {
			return conform.WrongTypef(obj, name, "email", "the domain %s does not accept email", domain), nil
		}
	}
	return "", nil
}
