package devprop

import "sync"

const (
	// defaultBufferSize covers nearly every property (ids, names, GUIDs).
	defaultBufferSize = 512
	// maxPooledBuffer bounds what is kept for reuse.
	maxPooledBuffer = 64 * 1024
)

// bufferPool provides reusable byte buffers for native property calls.
var bufferPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, defaultBufferSize)
		return &buf
	},
}

// Buffer is a pooled byte buffer handed to a native call. It must be released
// exactly once; Release tolerates repeated calls so `defer b.Release()` can
// back up an early release on the success path.
type Buffer struct {
	buf  *[]byte
	size int
}

// AcquireBuffer returns a buffer of exactly n bytes.
func AcquireBuffer(n int) *Buffer {
	if n < 0 {
		n = 0
	}
	p, ok := bufferPool.Get().(*[]byte)
	if !ok {
		panic("bufferPool returned unexpected type")
	}
	if cap(*p) < n {
		grown := make([]byte, n)
		p = &grown
	}
	b := (*p)[:n]
	clear(b)
	*p = b
	return &Buffer{buf: p, size: n}
}

// Bytes returns the buffer contents, or nil after Release.
func (b *Buffer) Bytes() []byte {
	if b == nil || b.buf == nil {
		return nil
	}
	return (*b.buf)[:b.size]
}

// Len returns the requested size.
func (b *Buffer) Len() int {
	if b == nil || b.buf == nil {
		return 0
	}
	return b.size
}

// Released reports whether Release has run.
func (b *Buffer) Released() bool { return b == nil || b.buf == nil }

// Release returns the buffer to the pool. Buffers larger than
// maxPooledBuffer are left to the garbage collector.
func (b *Buffer) Release() {
	if b == nil || b.buf == nil {
		return
	}
	p := b.buf
	b.buf = nil
	if cap(*p) > maxPooledBuffer {
		return
	}
	*p = (*p)[:cap(*p)]
	bufferPool.Put(p)
}
