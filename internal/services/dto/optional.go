package dto

import (
	"bytes"
	"encoding/json"
)

// Optional различает три состояния поля в JSON: отсутствует, null, значение.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// HasValue - поле передано и не равно null
func (o Optional[T]) HasValue() bool {
	return o.Set && !o.Null
}

// Ptr возвращает nil для null, иначе указатель на значение. Имеет смысл только при Set.
func (o Optional[T]) Ptr() *T {
	if !o.HasValue() {
		return nil
	}
	v := o.Value
	return &v
}

// Or выбирает первое переданное поле (для алиасов cityId / preferredCityId)
func (o Optional[T]) Or(other Optional[T]) Optional[T] {
	if o.Set {
		return o
	}
	return other
}
