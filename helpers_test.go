package ser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requirePanicErrorIs runs f and checks that it panics with an error
// matching target.
func requirePanicErrorIs(t *testing.T, target error, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		assert.ErrorIs(t, err, target)
	}()
	f()
}

// encode packs a single value into a fresh buffer of exactly its size.
func encode(v Value) []byte {
	buf := make([]byte, v.Size())
	Serialize(v).To(buf)
	return buf
}
