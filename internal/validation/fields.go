package validation

import (
	"bytes"
	"encoding/json"
)

// Messages for values of the wrong JSON type.
const (
	MsgNull       = "This field may not be null."
	MsgNotAString = "Not a valid string."
)

// decodeString reads an optional string field from raw JSON. Numbers are
// accepted in their literal form. A nil value with ok set means the field
// was absent; ok is false once a type error has been recorded on field.
func decodeString(errs FieldErrors, field string, raw json.RawMessage) (value *string, ok bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, true
	}
	switch raw[0] {
	case 'n':
		errs.Add(field, MsgNull)
		return nil, false
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			errs.Add(field, MsgNotAString)
			return nil, false
		}
		return &s, true
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		s := string(raw)
		return &s, true
	default:
		errs.Add(field, MsgNotAString)
		return nil, false
	}
}

// jsonKind names the JSON type of raw the way type errors report it.
func jsonKind(raw json.RawMessage) string {
	switch raw[0] {
	case '"':
		return "str"
	case 't', 'f':
		return "bool"
	case '{':
		return "dict"
	case '[':
		return "list"
	default:
		return "float"
	}
}
