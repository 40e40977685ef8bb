package models

import "encoding/json"

// Nullable is a patch field that distinguishes "absent" from an explicit null.
// Set is true whenever the key appeared in the request body; Value is nil for null.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func NullableOf[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// apply copies the patch value onto dst when the key was present.
func (n Nullable[T]) apply(dst **T) {
	if n.Set {
		*dst = n.Value
	}
}

func set[T any](src *T, dst *T) {
	if src != nil {
		*dst = *src
	}
}
