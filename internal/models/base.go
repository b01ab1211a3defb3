package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringSlice is a JSONB column holding a list of strings (club facilities etc.).
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan unmarshals a JSONB column into the slice.
func (s *StringSlice) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("StringSlice: expected []byte, got %T", src)
	}
	return json.Unmarshal(b, s)
}

// UintSlice is a JSONB column holding a list of user ids (event participants).
type UintSlice []uint

func (u UintSlice) Value() (driver.Value, error) {
	return json.Marshal(u)
}

// Scan unmarshals a JSONB column into the slice.
func (u *UintSlice) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("UintSlice: expected []byte, got %T", src)
	}
	return json.Unmarshal(b, u)
}
