package items

// FieldState distinguishes the three payload signals for an updatable field:
// not present at all, present-but-empty, or present with a value.
type FieldState int

const (
	FieldUnset FieldState = iota
	FieldClear
	FieldSet
)

// Field is a tri-state optional. A plain pointer cannot distinguish "leave
// untouched" from "clear this value", which the update contract requires.
type Field[T any] struct {
	state FieldState
	value T
}

// SetField wraps a concrete value.
func SetField[T any](value T) Field[T] {
	return Field[T]{state: FieldSet, value: value}
}

// ClearField marks the field for explicit clearing.
func ClearField[T any]() Field[T] {
	return Field[T]{state: FieldClear}
}

// State returns the tri-state tag.
func (f Field[T]) State() FieldState {
	return f.state
}

// IsUnset reports whether the field was absent from the payload.
func (f Field[T]) IsUnset() bool {
	return f.state == FieldUnset
}

// IsClear reports whether the field was present but empty.
func (f Field[T]) IsClear() bool {
	return f.state == FieldClear
}

// IsSet reports whether the field carries a value.
func (f Field[T]) IsSet() bool {
	return f.state == FieldSet
}

// Value returns the wrapped value; only meaningful when IsSet.
func (f Field[T]) Value() T {
	return f.value
}

// ValueOK returns the wrapped value and whether it is set.
func (f Field[T]) ValueOK() (T, bool) {
	return f.value, f.state == FieldSet
}
