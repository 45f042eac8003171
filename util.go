package ser

import (
	"encoding/binary"
	"unsafe"

	"golang.org/x/exp/constraints"
)

var (
	LE = binary.LittleEndian
	// Order is the byte order of every scalar and enumeration encoding.
	// It is fixed; there is no negotiation.
	Order = LE
)

// Number is the set of arithmetic types encodable as scalars.
type Number interface {
	constraints.Integer | constraints.Float
}

// widthOf returns the storage width of T in bytes.
func widthOf[T Number]() int {
	var v T
	return int(unsafe.Sizeof(v))
}

// bitsOf reinterprets v's storage as an unsigned integer of the same width.
// Reading through the native representation and re-encoding with Order is
// what keeps the output independent of the host byte order.
func bitsOf[T Number](v T) uint64 {
	p := unsafe.Pointer(&v)
	switch unsafe.Sizeof(v) {
	case 1:
		return uint64(*(*uint8)(p))
	case 2:
		return uint64(*(*uint16)(p))
	case 4:
		return uint64(*(*uint32)(p))
	default:
		return *(*uint64)(p)
	}
}

// putBits writes the low len(p) bytes of v into p in Order.
func putBits(p []byte, v uint64) {
	switch len(p) {
	case 1:
		p[0] = uint8(v)
	case 2:
		Order.PutUint16(p, uint16(v))
	case 4:
		Order.PutUint32(p, uint32(v))
	case 8:
		Order.PutUint64(p, v)
	}
}

// hostBytes returns the raw memory image of *v.
func hostBytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}
