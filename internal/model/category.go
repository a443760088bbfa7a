package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Category is an existing destination category known to the backend.
type Category struct {
	Name string
	ID   int
}

// CategoryList is the id to name mapping returned by the analysis endpoint.
// The backend sends it as a JSON object; decoding keeps the key order so the
// categories can be offered in the order the backend chose.
type CategoryList []Category

// Name returns the name for id and whether it exists.
func (l CategoryList) Name(id int) (string, bool) {
	for _, c := range l {
		if c.ID == id {
			return c.Name, true
		}
	}
	return "", false
}

// UnmarshalJSON decodes a JSON object of "id": "name" pairs in document order.
func (l *CategoryList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read categories: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("categories: expected object, got %v", tok)
	}

	list := CategoryList{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read category id: %w", err)
		}
		key, _ := keyTok.(string)
		id, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("invalid category id %q: %w", key, err)
		}

		var name string
		if err := dec.Decode(&name); err != nil {
			return fmt.Errorf("failed to read name for category %d: %w", id, err)
		}
		list = append(list, Category{ID: id, Name: name})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to read categories: %w", err)
	}

	*l = list
	return nil
}

// MarshalJSON encodes the list as a JSON object, preserving order.
func (l CategoryList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(strconv.Itoa(c.ID))
		name, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(name)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
