package common

import "unsafe"

// SliceToBytes reinterprets a slice of any type as its raw byte representation
// without copying. The returned slice aliases the input's backing array, so the
// input must stay alive while the bytes are in use (e.g. for a queue write).
//
// Parameters:
//   - s: the slice to reinterpret
//
// Returns:
//   - []byte: a byte view over the slice data, or nil for an empty slice
func SliceToBytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	size := int(unsafe.Sizeof(s[0])) * len(s)
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), size)
}

// StructToBytes reinterprets a struct value as its raw byte representation
// without copying. The struct must contain only fixed-size fields suitable for
// direct GPU upload.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: a byte view over the struct's memory
func StructToBytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(unsafe.Sizeof(*v)))
}

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
