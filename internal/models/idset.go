package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// IDSet is an ordered, deduplicated set of entity identifiers. It backs the
// node edge-list columns and is persisted as a JSON array in a text column.
// The zero value is an empty set.
type IDSet []string

// Contains reports whether id is in the set.
func (s IDSet) Contains(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Add appends id if absent, preserving insertion order. It reports whether
// the set changed.
func (s *IDSet) Add(id string) bool {
	if s.Contains(id) {
		return false
	}
	*s = append(*s, id)
	return true
}

// Remove deletes id if present. Removing an absent id is a no-op; the return
// value reports whether the set changed.
func (s *IDSet) Remove(id string) bool {
	for i, v := range *s {
		if v == id {
			*s = append((*s)[:i], (*s)[i+1:]...)
			return true
		}
	}
	return false
}

// Value implements driver.Valuer. An empty or nil set serializes as "[]" so
// the column never holds SQL NULL.
func (s IDSet) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal([]string(s))
	if err != nil {
		return nil, fmt.Errorf("models: marshal id set: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (s *IDSet) Scan(value interface{}) error {
	if value == nil {
		*s = IDSet{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("models: scan id set: unsupported type %T", value)
	}
	if len(data) == 0 {
		*s = IDSet{}
		return nil
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return fmt.Errorf("models: scan id set: %w", err)
	}
	*s = IDSet(ids)
	return nil
}
