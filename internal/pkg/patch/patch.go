package patch

// Field distinguishes "leave unchanged" from "set to value" for one attribute of a partial update.
type Field[T any] struct {
	value T
	set   bool
}

func Set[T any](v T) Field[T] {
	return Field[T]{value: v, set: true}
}

func Unset[T any]() Field[T] {
	return Field[T]{}
}

// FromPtr maps nil to Unset and any other pointer to Set(*ptr).
func FromPtr[T any](ptr *T) Field[T] {
	if ptr == nil {
		return Unset[T]()
	}
	return Set(*ptr)
}

func (f Field[T]) IsSet() bool {
	return f.set
}

func (f Field[T]) Get() (T, bool) {
	return f.value, f.set
}

// Apply writes the value into dst when the field is set.
func (f Field[T]) Apply(dst *T) {
	if f.set {
		*dst = f.value
	}
}

// Or returns the value when set, otherwise fallback.
func (f Field[T]) Or(fallback T) T {
	if f.set {
		return f.value
	}
	return fallback
}
