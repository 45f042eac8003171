// Package ser packs a fixed set of heterogeneous values into a contiguous
// byte buffer using a little-endian, unpadded layout, and reports ahead of
// time exactly how many bytes that packing consumes.
//
//	s := ser.Serialize(ser.Scalar(uint8(0xAB)), ser.Scalar(uint32(1)))
//	buf := make([]byte, s.Size()) // 5
//	n := s.To(buf)                // ab 01 00 00 00
//
// The layout is the concatenation of each value's encoding in the order the
// values were given. Scalars and enumerations are little-endian on every
// host. Fixed arrays are their elements back to back. Byte strings are
// their bytes through a single terminating zero.
//
// Structs captured with Struct are the exception: they are copied as their
// in-memory image, so multi-byte fields keep the host's byte order and any
// padding the compiler inserted is included, with unspecified content.
// Compose Scalar, Enum and Array values when the layout must be portable.
//
// Nothing is reordered, aligned or padded between values. A buffer that is
// too short receives whole values only; see Serializer.To.
package ser

import (
	"encoding"
	"io"
)

// Sizer is an interface for types that can report their binary size.
// This is useful for pre-allocating buffers before encoding.
type Sizer interface {
	// Size returns the size of the type in bytes when binary encoded.
	Size() int
}

// Marshaler defines the methods for encoding an object into a byte stream.
// It integrates standard library interfaces and provides a high-performance,
// allocation-free option.
type Marshaler interface {
	// encoding.BinaryMarshaler provides the primary encoding method.
	// It allocates and returns a new byte slice.
	encoding.BinaryMarshaler // Method: MarshalBinary() ([]byte, error)
	// io.WriterTo provides efficient, stream-based writing.
	io.WriterTo // Method: WriteTo(writer io.Writer) (int64, error)

	// MarshalTo encodes the object into a pre-allocated buffer, returning an
	// error wrapping io.ErrShortBuffer if the buffer is too small.
	MarshalTo(buf []byte) (int, error)
}

// Category is the closed set of value shapes the package knows how to encode.
type Category uint8

const (
	FixedArray Category = iota + 1
	ArithmeticScalar
	Enumeration
	TriviallyCopyableAggregate
	NullTerminatedByteString
)

func (c Category) String() string {
	switch c {
	case FixedArray:
		return "fixed array"
	case ArithmeticScalar:
		return "arithmetic scalar"
	case Enumeration:
		return "enumeration"
	case TriviallyCopyableAggregate:
		return "trivially copyable aggregate"
	case NullTerminatedByteString:
		return "null-terminated byte string"
	}
	return "unknown"
}

// Value is a captured value together with its encoding rule.
//
// Values are created by the constructors in this package (Scalar, Bool,
// Enum, Array, Struct, CString, Of) and cannot be implemented elsewhere.
// A Value is immutable and safe for concurrent use.
type Value interface {
	Sizer
	// Category reports which encoding rule the value follows.
	Category() Category
	// Static reports whether Size depends only on the value's type.
	// Only null-terminated byte strings are not static.
	Static() bool

	// put encodes the value into p. len(p) is always exactly Size().
	put(p []byte)
}
