package pulse

import "unsafe"

// AsByteSlice views the memory of value as a byte slice. T must not contain pointers.
func AsByteSlice[T any](value *T) []byte {
	var zeroT T

	n := unsafe.Sizeof(zeroT)
	ptr := (*byte)(unsafe.Pointer(value))

	return unsafe.Slice(ptr, n)
}
