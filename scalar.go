package ser

import "golang.org/x/exp/constraints"

type scalar[T Number] struct {
	v   T
	cat Category
}

// Scalar captures an integer or floating-point value. It encodes as the
// little-endian bit pattern of v at the type's natural width; no range
// checking is done.
func Scalar[T Number](v T) Value {
	return scalar[T]{v: v, cat: ArithmeticScalar}
}

// Bool captures a boolean as a one byte scalar, 0x01 for true.
func Bool(v bool) Value {
	var b uint8
	if v {
		b = 1
	}
	return scalar[uint8]{v: b, cat: ArithmeticScalar}
}

// Enum captures an enumeration constant, a value of a defined integer type.
// It encodes as its underlying integer. The value is not checked against
// any set of named constants.
func Enum[E constraints.Integer](e E) Value {
	return scalar[E]{v: e, cat: Enumeration}
}

func (s scalar[T]) Size() int          { return widthOf[T]() }
func (s scalar[T]) Category() Category { return s.cat }
func (s scalar[T]) Static() bool       { return true }
func (s scalar[T]) put(p []byte)       { putBits(p, bitsOf(s.v)) }
