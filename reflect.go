package ser

import (
	"fmt"
	"math"
	"reflect"
	"unsafe"

	"github.com/puzpuzpuz/xsync/v4"
	"go.uber.org/zap"
)

// encoderCache holds one encoder per Go type seen by Of. Building an encoder
// walks the type with reflection; encoding with a cached one does not.
var encoderCache = xsync.NewMap[reflect.Type, *encoder]()

// encoder is the reflection counterpart of the typed codecs. width is -1
// for byte strings, whose size is only known from the value.
type encoder struct {
	cat   Category
	width int
	put   func(p []byte, rv reflect.Value)
}

// Of captures v, selecting its category from its Go type:
//
//   - bool, ints, uints and floats are arithmetic scalars, except that
//     defined integer types (type Color uint8) are enumerations
//   - [N]T is a fixed array; T must itself be a scalar, enumeration,
//     struct or array
//   - structs are trivially copyable aggregates (see Struct)
//   - strings are null-terminated byte strings (see CString)
//
// A Value is returned unchanged. Any other type makes Of panic with an
// error wrapping ErrUnsupportedType or ErrNotTriviallyCopyable; prefer the
// typed constructors, which reject such types at compile time.
func Of(v any) Value {
	if val, ok := v.(Value); ok {
		return val
	}
	t := reflect.TypeOf(v)
	if t == nil {
		panic(fmt.Errorf("%w: nil", ErrUnsupportedType))
	}
	enc, err := encoderFor(t)
	if err != nil {
		panic(err)
	}
	if enc.cat == NullTerminatedByteString {
		return CString(reflect.ValueOf(v).String())
	}
	// An addressable private copy, so aggregates can expose their memory.
	rv := reflect.New(t).Elem()
	rv.Set(reflect.ValueOf(v))
	return dynamic{enc: enc, rv: rv}
}

type dynamic struct {
	enc *encoder
	rv  reflect.Value
}

func (d dynamic) Size() int          { return d.enc.width }
func (d dynamic) Category() Category { return d.enc.cat }
func (d dynamic) Static() bool       { return true }
func (d dynamic) put(p []byte)       { d.enc.put(p, d.rv) }

func encoderFor(t reflect.Type) (*encoder, error) {
	if enc, ok := encoderCache.Load(t); ok {
		return enc, nil
	}
	// LoadOrCompute locks a bucket while building, so element encoders are
	// resolved before entering it.
	var elem *encoder
	if t.Kind() == reflect.Array {
		var err error
		if elem, err = encoderFor(t.Elem()); err != nil {
			return nil, err
		}
	}
	var err error
	enc, _ := encoderCache.LoadOrCompute(t, func() (*encoder, bool) {
		var built *encoder
		if built, err = buildEncoder(t, elem); err != nil {
			return nil, true
		}
		Logger().Debug("built encoder",
			zap.Stringer("type", t),
			zap.Stringer("category", built.cat),
			zap.Int("width", built.width))
		return built, false
	})
	if err != nil {
		return nil, err
	}
	return enc, nil
}

// buildEncoder builds the encoder for t. elem is the element encoder when t
// is an array.
func buildEncoder(t reflect.Type, elem *encoder) (*encoder, error) {
	width := int(t.Size())
	// Builtin types have no package path; defined integer types do.
	intCat := ArithmeticScalar
	if t.PkgPath() != "" {
		intCat = Enumeration
	}

	switch t.Kind() {
	case reflect.Bool:
		return &encoder{cat: ArithmeticScalar, width: 1, put: func(p []byte, rv reflect.Value) {
			p[0] = 0
			if rv.Bool() {
				p[0] = 1
			}
		}}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &encoder{cat: intCat, width: width, put: func(p []byte, rv reflect.Value) {
			putBits(p, uint64(rv.Int()))
		}}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return &encoder{cat: intCat, width: width, put: func(p []byte, rv reflect.Value) {
			putBits(p, rv.Uint())
		}}, nil
	case reflect.Float32:
		// Read the storage directly: rv.Float widens to float64, which
		// quiets signaling NaNs.
		return &encoder{cat: ArithmeticScalar, width: 4, put: func(p []byte, rv reflect.Value) {
			Order.PutUint32(p, *(*uint32)(rv.Addr().UnsafePointer()))
		}}, nil
	case reflect.Float64:
		return &encoder{cat: ArithmeticScalar, width: 8, put: func(p []byte, rv reflect.Value) {
			Order.PutUint64(p, math.Float64bits(rv.Float()))
		}}, nil
	case reflect.String:
		return &encoder{cat: NullTerminatedByteString, width: -1}, nil
	case reflect.Struct:
		if err := checkCopyable(t); err != nil {
			return nil, err
		}
		return &encoder{cat: TriviallyCopyableAggregate, width: width, put: func(p []byte, rv reflect.Value) {
			copy(p, unsafe.Slice((*byte)(rv.Addr().UnsafePointer()), len(p)))
		}}, nil
	case reflect.Array:
		if elem.width < 0 {
			return nil, fmt.Errorf("%w: array of %v", ErrUnsupportedType, t.Elem())
		}
		n, ew := t.Len(), elem.width
		return &encoder{cat: FixedArray, width: n * ew, put: func(p []byte, rv reflect.Value) {
			for i := range n {
				elem.put(p[i*ew:(i+1)*ew], rv.Index(i))
			}
		}}, nil
	}
	return nil, fmt.Errorf("%w: %v of kind %v", ErrUnsupportedType, t, t.Kind())
}
