package ser

import "slices"

type array[T Number] struct {
	elems []T
}

// Array captures a fixed sequence of scalars or enumeration values. The
// elements are copied, so the length is fixed from here on. It encodes as
// each element in index order with no separators or length prefix.
//
// For Go array values ([N]T, including arrays of structs or nested arrays)
// use Of.
func Array[T Number](elems ...T) Value {
	return array[T]{elems: slices.Clone(elems)}
}

func (a array[T]) Size() int          { return len(a.elems) * widthOf[T]() }
func (a array[T]) Category() Category { return FixedArray }
func (a array[T]) Static() bool       { return true }

func (a array[T]) put(p []byte) {
	w := widthOf[T]()
	for i, e := range a.elems {
		putBits(p[i*w:(i+1)*w], bitsOf(e))
	}
}
