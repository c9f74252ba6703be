// Package validation runs struct-tag validation and turns failures into the form
// messages the console shows next to each field.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors maps a field path (json names, e.g. "aliases[1].alias") to its message.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Messages maps "field.tag" to a message. Indexed paths use "[]",
// e.g. "aliases[].alias.required".
type Messages map[string]string

var (
	validate = newValidator()
	indexRe  = regexp.MustCompile(`\[\d+\]`)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Struct validates v. It returns nil, an Errors value, or a non-validation error
// (for instance when v is not a struct).
func Struct(v any, msgs Messages) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := Errors{}
	for _, fe := range verrs {
		field := fieldPath(fe.Namespace())
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = message(field, fe, msgs)
	}
	return out
}

// AsErrors extracts field errors from err.
func AsErrors(err error) (Errors, bool) {
	var e Errors
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func message(field string, fe validator.FieldError, msgs Messages) string {
	key := indexRe.ReplaceAllString(field, "[]") + "." + fe.Tag()
	if m, ok := msgs[key]; ok {
		return m
	}
	if fe.Param() != "" {
		return field + " failed " + fe.Tag() + "=" + fe.Param()
	}
	return field + " failed " + fe.Tag()
}
