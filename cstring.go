package ser

import "bytes"

type cstring struct {
	b []byte // includes the terminator
}

// CString captures a null-terminated byte string. The input is scanned for
// its first zero byte; everything before it is kept and exactly one
// terminator is appended, so an input without a NUL is terminated at its end.
//
// Unlike every other category, the width of a byte string depends on its
// contents rather than its type. It is measured once here, counted by
// Serializer.Size, and reported through Static() == false.
func CString[S ~string | ~[]byte](s S) Value {
	b := []byte(s)
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	out := make([]byte, len(b)+1)
	copy(out, b)
	return cstring{b: out}
}

func (c cstring) Size() int          { return len(c.b) }
func (c cstring) Category() Category { return NullTerminatedByteString }
func (c cstring) Static() bool       { return false }
func (c cstring) put(p []byte)       { copy(p, c.b) }
