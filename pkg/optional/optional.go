// Package optional distinguishes absent JSON fields from present ones in
// partial-update payloads.
package optional

import "encoding/json"

// Value is a field of a partial update. Set is true when the key appeared in
// the payload, including an explicit null. For nullable fields use a pointer
// T so that null decodes to a set nil.
type Value[T any] struct {
	Set   bool
	Value T
}

// Of returns a set Value holding v.
func Of[T any](v T) Value[T] {
	return Value[T]{Set: true, Value: v}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	v.Set = true
	return json.Unmarshal(data, &v.Value)
}

// Apply writes the value into dst when set.
func (v Value[T]) Apply(dst *T) {
	if v.Set {
		*dst = v.Value
	}
}
