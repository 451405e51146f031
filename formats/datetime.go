package formats

import (
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/reoring/conform"
)

// DateTimeSchema validates timestamp strings. The default accepts
// RFC 3339 date-times; Layout switches to an explicit reference layout.
type DateTimeSchema struct {
	layout string
}

func DateTime() *DateTimeSchema {
	return &DateTimeSchema{}
}

// Layout sets a time.Parse reference layout, replacing the RFC 3339
// default.
func (d *DateTimeSchema) Layout(layout string) *DateTimeSchema {
	d.layout = layout
	return d
}

func (d *DateTimeSchema) name() string {
	if d.layout != "" {
		return fmt.Sprintf("date_time(%q)", d.layout)
	}
	return "date_time"
}

func (d *DateTimeSchema) Validate(obj any, name string, strict bool, subs conform.Subs) (string, error) {
	s, ok := obj.(string)
	if !ok {
		return conform.WrongType(obj, name, d.name()), nil
	}
	if d.layout != "" {
		if _, err := time.Parse(d.layout, s); err != nil {
			return conform.WrongTypef(obj, name, d.name(), "%v", err), nil
		}
		return "", nil
	}
	if _, err := strfmt.ParseDateTime(s); err != nil {
		return conform.WrongTypef(obj, name, d.name(), "%v", err), nil
	}
	return "", nil
}

// Date accepts RFC 3339 full-date strings (2006-01-02).
func Date() conform.Compiled {
	return dateSchema{}
}

type dateSchema struct{}

func (dateSchema) Validate(obj any, name string, strict bool, subs conform.Subs) (string, error) {
	s, ok := obj.(string)
	if !ok {
		return conform.WrongType(obj, name, "date"), nil
	}
	if !strfmt.IsDate(s) {
		return conform.WrongTypef(obj, name, "date", "%q is not a valid date", s), nil
	}
	return "", nil
}

var clockLayouts = []string{"15:04:05.999999999", "15:04:05", "15:04"}

// Time accepts ISO clock times such as "23:59:59" or "23:59".
func Time() conform.Compiled {
	return timeSchema{}
}

type timeSchema struct{}

func (timeSchema) Validate(obj any, name string, strict bool, subs conform.Subs) (string, error) {
	s, ok := obj.(string)
	if !ok {
		return conform.WrongType(obj, name, "time"), nil
	}
	for _, layout := range clockLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return "", nil
		}
	}
	return conform.WrongTypef(obj, name, "time", "%q is not a valid time", s), nil
}
