// Package validation holds the account and product payload validators.
//
// Validators are pure: they never read or write storage themselves. Anything
// they need from the outside (the validation mode, a password hasher, an
// account lookup) is handed to them explicitly.
package validation

import (
	"sort"
	"strings"
)

// Messages shared by several fields.
const (
	MsgRequired = "This field is required."
	MsgBlank    = "This field may not be blank."
)

// FieldErrors maps a payload field name to its human readable messages.
// It is returned as an error when validation fails.
type FieldErrors map[string][]string

// Add appends msg to the messages of field.
func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Has reports whether field has at least one message.
func (e FieldErrors) Has(field string) bool {
	return len(e[field]) > 0
}

// Fields returns the failing field names in sorted order.
func (e FieldErrors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func (e FieldErrors) Error() string {
	return "validation failed: " + strings.Join(e.Fields(), ", ")
}

// Err returns e as an error, or nil when it is empty.
func (e FieldErrors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
