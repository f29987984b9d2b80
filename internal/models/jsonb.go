package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONB holds a raw JSON document in a jsonb column
type JSONB json.RawMessage

// Scan implements sql.Scanner
func (j *JSONB) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
		return nil
	case []byte:
		*j = append((*j)[:0], v...)
		return nil
	case string:
		*j = JSONB(v)
		return nil
	default:
		return errors.New("failed to scan JSONB")
	}
}

// Value implements driver.Valuer
func (j JSONB) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	if !json.Valid(j) {
		return nil, errors.New("invalid JSON document")
	}
	return []byte(j), nil
}

// MarshalJSON writes the document as-is
func (j JSONB) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON keeps a copy of the raw document
func (j *JSONB) UnmarshalJSON(data []byte) error {
	*j = append((*j)[:0], data...)
	return nil
}

// StringList is a string slice stored as a jsonb array
type StringList []string

func (sl *StringList) Scan(value interface{}) error {
	if value == nil {
		*sl = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan StringList")
	}

	return json.Unmarshal(bytes, sl)
}

func (sl StringList) Value() (driver.Value, error) {
	if sl == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(sl))
}
