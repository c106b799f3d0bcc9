// Package upstream implements the shared parameter-to-protocol translation
// core used by every tool: declarative field tables map present parameters
// onto HTTP headers, query parameters, or form fields; cross-field rules are
// validated before a request is built; and responses are folded into a small
// error taxonomy that callers can distinguish by type.
package upstream

import (
	"strconv"

	"github.com/Laisky/errors/v2"
)

// Params holds only the parameters that were actually provided by the caller.
// A missing key means the field is absent, which is distinct from any default
// value. Values are string, bool, int, or []string.
type Params map[string]any

// Has reports whether the named parameter was provided.
func (p Params) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// String returns the named parameter when it was provided as a string.
func (p Params) String(name string) (string, bool) {
	v, ok := p[name].(string)
	return v, ok
}

// Bool returns the named parameter when it was provided as a bool.
func (p Params) Bool(name string) (bool, bool) {
	v, ok := p[name].(bool)
	return v, ok
}

// Int returns the named parameter when it was provided as an int.
func (p Params) Int(name string) (int, bool) {
	v, ok := p[name].(int)
	return v, ok
}

// Strings returns the named parameter when it was provided as a string list.
func (p Params) Strings(name string) ([]string, bool) {
	v, ok := p[name].([]string)
	return v, ok
}

// formatScalar stringifies a scalar parameter value for the wire.
func formatScalar(name string, value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	default:
		return "", errors.Errorf("parameter %q has unsupported type %T", name, value)
	}
}
