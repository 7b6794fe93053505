package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Optional records whether a JSON key was present at all, and whether it was null.
// Keys missing from the body never call UnmarshalJSON, so Set stays false.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

// Some builds a present, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// NullableText turns a present string into the stored form: trimmed, and nil when empty.
func NullableText(o Optional[string]) *string {
	if o.Null {
		return nil
	}
	v := strings.TrimSpace(o.Value)
	if v == "" {
		return nil
	}
	return &v
}

// Number accepts a JSON number or a numeric string ("150000"), as HTML forms send them.
// An empty string or false decodes to zero with Empty set.
type Number struct {
	Value float64
	Empty bool
}

func (n *Number) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	switch {
	case raw == "false" || raw == `""`:
		n.Empty = true
		return nil
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			n.Empty = true
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		n.Value = v
		return nil
	default:
		return json.Unmarshal(b, &n.Value)
	}
}

// ID returns the value as a positive identifier, or nil when it is zero, empty or negative.
func (n Number) ID() *uint {
	if n.Empty || n.Value <= 0 {
		return nil
	}
	id := uint(n.Value)
	return &id
}

func (n Number) MarshalJSON() ([]byte, error) {
	if n.Empty {
		return []byte(`""`), nil
	}
	return json.Marshal(n.Value)
}

// NumberOf wraps a float as a present Number.
func NumberOf(v float64) Number { return Number{Value: v} }
