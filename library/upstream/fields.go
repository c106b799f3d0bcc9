package upstream

import (
	"net/http"
	"net/url"

	"github.com/Laisky/errors/v2"
)

// Encoding selects where a field is serialised on the outbound request.
type Encoding int

const (
	// EncodeHeader emits the field as a single HTTP header.
	EncodeHeader Encoding = iota
	// EncodeQuery emits the field as one or more URL query parameters.
	EncodeQuery
	// EncodeForm emits the field as a url-encoded form body entry.
	EncodeForm
)

// Field declares how one caller-facing parameter maps onto the wire. Wire
// overrides the outbound name; when empty the parameter name is used as-is.
type Field struct {
	Name   string
	Wire   string
	Encode Encoding
}

func (f Field) wireName() string {
	if f.Wire != "" {
		return f.Wire
	}

	return f.Name
}

// ApplyFields serialises every present parameter onto its declared target.
// Absent parameters emit nothing. List values produce one query entry per
// element, preserving element order. Scalars are stringified.
func ApplyFields(fields []Field, params Params, header http.Header, query url.Values, form url.Values) error {
	for _, field := range fields {
		raw, ok := params[field.Name]
		if !ok {
			continue
		}

		if list, isList := raw.([]string); isList {
			if field.Encode != EncodeQuery {
				return errors.Errorf("parameter %q is a list but not query-encoded", field.Name)
			}
			for _, item := range list {
				query.Add(field.wireName(), item)
			}
			continue
		}

		value, err := formatScalar(field.Name, raw)
		if err != nil {
			return err
		}

		switch field.Encode {
		case EncodeHeader:
			header.Set(field.wireName(), value)
		case EncodeQuery:
			query.Add(field.wireName(), value)
		case EncodeForm:
			form.Set(field.wireName(), value)
		default:
			return errors.Errorf("parameter %q has unknown encoding %d", field.Name, field.Encode)
		}
	}

	return nil
}
