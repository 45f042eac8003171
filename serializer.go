package ser

import (
	"fmt"
	"io"
	"slices"

	"go.uber.org/zap"
)

// Serializer is an immutable, ordered set of captured values. Its encoding
// is the concatenation of each value's encoding in the order given, with no
// header, length prefix or padding.
//
// A Serializer is safe for concurrent use. Concurrent To calls into
// overlapping buffers are the caller's responsibility.
type Serializer struct {
	values []Value
	size   int
	static bool
}

// Statically ensure that Serializer implements Marshaler.
var _ Marshaler = (*Serializer)(nil)

// Serialize captures one or more values. The first argument is separate so
// that a serializer without values does not compile. It panics if any
// value is nil.
func Serialize(first Value, rest ...Value) *Serializer {
	values := make([]Value, 0, len(rest)+1)
	values = append(values, first)
	values = append(values, rest...)

	s := &Serializer{values: values, static: true}
	for i, v := range values {
		if v == nil {
			panic(fmt.Errorf("%w: nil Value at index %d", ErrUnsupportedType, i))
		}
		s.size += v.Size()
		s.static = s.static && v.Static()
	}
	return s
}

// SerializeAny is Serialize with each argument passed through Of.
func SerializeAny(first any, rest ...any) *Serializer {
	values := make([]Value, len(rest))
	for i, v := range rest {
		values[i] = Of(v)
	}
	return Serialize(Of(first), values...)
}

// Len returns the number of captured values.
func (s *Serializer) Len() int { return len(s.values) }

// Values returns the captured values in order.
func (s *Serializer) Values() []Value { return slices.Clone(s.values) }

// Size returns the number of bytes To writes into a large enough buffer.
// It includes null-terminated byte strings, whose contribution was measured
// when they were captured.
func (s *Serializer) Size() int { return s.size }

// Static reports whether Size is determined by the types of the captured
// values alone. It is false when any byte string is present.
func (s *Serializer) Static() bool { return s.static }

// To writes the encoding into p and returns the number of bytes written.
//
// len(p) is the capacity. Values are written whole and in order; writing
// stops before the first value that does not fit, so a short buffer
// yields a prefix of whole values and never a partial one. Callers detect
// truncation by comparing the result with Size. For a fixed-size array
// buffer pass buf[:].
func (s *Serializer) To(p []byte) int {
	n := 0
	for i, v := range s.values {
		size := v.Size()
		if size > len(p)-n {
			if ce := Logger().Check(zap.DebugLevel, "serializer truncated"); ce != nil {
				ce.Write(
					zap.Int("index", i),
					zap.Stringer("category", v.Category()),
					zap.Int("need", size),
					zap.Int("available", len(p)-n),
					zap.Int("written", n))
			}
			break
		}
		v.put(p[n : n+size])
		n += size
	}
	return n
}

// MarshalTo is To with truncation reported as an error wrapping
// io.ErrShortBuffer. The returned count is the same as To's.
func (s *Serializer) MarshalTo(p []byte) (int, error) {
	n := s.To(p)
	if n < s.size {
		return n, fmt.Errorf("%w: need %d bytes, have %d", io.ErrShortBuffer, s.size, len(p))
	}
	return n, nil
}

// MarshalBinary allocates a buffer of exactly Size bytes and encodes into it.
// For performance-critical paths, use To or MarshalTo instead.
func (s *Serializer) MarshalBinary() ([]byte, error) {
	return MarshalBinaryGeneric(s)
}

// WriteTo streams the encoding to w, one value at a time. A BytesWriter
// destination receives whole values only, like To. For any other io.Writer
// a failing write may leave part of a value behind; use To or MarshalTo
// when that matters.
func (s *Serializer) WriteTo(writer io.Writer) (int64, error) {
	w, err := NewWriter(writer)
	if err != nil {
		return 0, err
	}
	for _, v := range s.values {
		w.WriteValue(v)
	}
	return w.Result()
}
