package validation

import (
	"errors"
	"sort"
	"strings"
)

// ErrMalformedRequest - тело запроса не удалось разобрать как JSON-объект.
var ErrMalformedRequest = errors.New("malformed request")

// FieldErrors maps a payload field to every reason it was rejected.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, reason string) {
	e[field] = append(e[field], reason)
}

func (e FieldErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(e[f], ", "))
	}
	return "validation failed: " + strings.Join(parts, " | ")
}
