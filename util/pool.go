package util

import "sync"

// FrameBufSize is the read buffer size of a connection reader.  Frame
// boundaries equal read-call boundaries on the wire, so this is also
// the maximum frame length a client can send in one piece.
const FrameBufSize = 64

// frameBufPool provides reusable read buffers for connection readers,
// reducing GC pressure when many clients churn.
var frameBufPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, FrameBufSize)
		return &buf
	},
}

// GetFrameBuf retrieves a buffer from the pool.  Callers must return
// it with [PutFrameBuf] when finished.
func GetFrameBuf() *[]byte {
	return frameBufPool.Get().(*[]byte)
}

// PutFrameBuf returns a buffer to the pool for reuse.
func PutFrameBuf(buf *[]byte) {
	if buf == nil {
		return
	}
	frameBufPool.Put(buf)
}
