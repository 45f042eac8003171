package ser

import "errors"

var (
	// ErrNilIO indicates that NewWriter was called with a nil io.Writer.
	ErrNilIO = errors.New("ser: NewWriter called with a nil io.Writer")

	// ErrAlreadyBuffered indicates that NewWriter was called with an already-buffered
	// writer, which would lead to unpredictable behavior and performance issues.
	ErrAlreadyBuffered = errors.New("ser: writer is already buffered")

	// ErrInvalidWrite indicates that an io.Writer returned an invalid (negative) count from Write.
	ErrInvalidWrite = errors.New("ser: writer returned invalid count from Write")

	// ErrUnsupportedType indicates a value whose type belongs to none of the
	// encodable categories.
	ErrUnsupportedType = errors.New("ser: unsupported type")

	// ErrNotTriviallyCopyable indicates a struct holding pointers, slices,
	// maps, strings, interfaces, channels or funcs, whose memory image is not
	// a self-contained encoding.
	ErrNotTriviallyCopyable = errors.New("ser: struct is not trivially copyable")

	// ErrTruncatedData indicates that fewer bytes were produced than the
	// serializer's Size predicted.
	ErrTruncatedData = errors.New("ser: truncated data")
)
