package ser

import "sync"

const CHUNK_SIZE = 4 * 1024

// bufPool holds staging buffers for Writer.WriteValue. Values larger than
// a chunk get a one-off allocation.
var bufPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, CHUNK_SIZE)
		return &b
	},
}
