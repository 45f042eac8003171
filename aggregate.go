package ser

import (
	"fmt"
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// copyableCache avoids re-walking a struct type with reflection on every
// Struct call. A nil entry means the type was checked and is copyable.
var copyableCache = xsync.NewMap[reflect.Type, error]()

// aggregate is the raw-memory escape hatch. Its encoding is the host memory
// image of the struct: fields keep host byte order and the compiler's
// padding is copied as is. Callers that need a portable layout should
// compose Scalar, Enum and Array values instead.
type aggregate[T any] struct {
	v T
}

// Struct captures a struct whose memory image is self-contained: it must
// not (recursively) hold pointers, slices, maps, strings, interfaces,
// channels or funcs. Struct panics with an error wrapping
// ErrNotTriviallyCopyable or ErrUnsupportedType otherwise.
//
// The encoding is not portable across architectures; see the package
// documentation.
func Struct[T any](v T) Value {
	if err := checkCopyable(reflect.TypeFor[T]()); err != nil {
		panic(err)
	}
	return aggregate[T]{v: v}
}

func (a aggregate[T]) Size() int          { return len(hostBytes(&a.v)) }
func (a aggregate[T]) Category() Category { return TriviallyCopyableAggregate }
func (a aggregate[T]) Static() bool       { return true }
func (a aggregate[T]) put(p []byte)       { copy(p, hostBytes(&a.v)) }

// checkCopyable verifies that t is a struct whose memory image can be
// copied byte for byte. The result is cached per type.
func checkCopyable(t reflect.Type) error {
	if t.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %v is a %v, not a struct", ErrUnsupportedType, t, t.Kind())
	}
	err, _ := copyableCache.LoadOrCompute(t, func() (error, bool) {
		return walkCopyable(t, t.String()), false
	})
	return err
}

func walkCopyable(t reflect.Type, path string) error {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return nil
	case reflect.Array:
		return walkCopyable(t.Elem(), path+"[]")
	case reflect.Struct:
		for i := range t.NumField() {
			f := t.Field(i)
			if err := walkCopyable(f.Type, path+"."+f.Name); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%w: field %s has kind %v", ErrNotTriviallyCopyable, path, t.Kind())
}
