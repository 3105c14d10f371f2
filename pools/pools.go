// Package pools centralizes the sync.Pool instances the report builder
// reaches for on the hot path: one file can carry tens of thousands of
// lines, and every group extract and archive member allocates a buffer, so
// pooling them avoids handing the GC a fresh allocation per group on every
// report request.
package pools

import (
	"bytes"
	"strings"
	"sync"
)

// GlobalPools provides centralized memory pooling for the report builder.
type GlobalPools struct {
	StringSlices sync.Pool
	Builders     sync.Pool
	ByteBuffers  sync.Pool
}

// Pools is the global instance of memory pools.
var Pools = &GlobalPools{
	StringSlices: sync.Pool{
		New: func() interface{} {
			slice := make([]string, 0, 64)
			return &slice
		},
	},
	Builders: sync.Pool{
		New: func() interface{} {
			builder := &strings.Builder{}
			builder.Grow(256)
			return builder
		},
	},
	ByteBuffers: sync.Pool{
		New: func() interface{} {
			return &bytes.Buffer{}
		},
	},
}

// GetStringSlice gets a string slice from the pool and resets it.
func (gp *GlobalPools) GetStringSlice() []string {
	slicePtr := gp.StringSlices.Get().(*[]string)
	*slicePtr = (*slicePtr)[:0]
	return *slicePtr
}

// ReturnStringSlice returns a string slice to the pool.
func (gp *GlobalPools) ReturnStringSlice(slice []string) {
	if cap(slice) < 4096 {
		emptySlice := slice[:0]
		gp.StringSlices.Put(&emptySlice)
	}
}

// GetBuilder gets a string builder from the pool and resets it.
func (gp *GlobalPools) GetBuilder() *strings.Builder {
	builder := gp.Builders.Get().(*strings.Builder)
	builder.Reset()
	return builder
}

// ReturnBuilder returns a string builder to the pool.
func (gp *GlobalPools) ReturnBuilder(builder *strings.Builder) {
	if builder.Cap() < 1<<16 {
		gp.Builders.Put(builder)
	}
}

// GetByteBuffer gets a byte buffer from the pool and resets it.
func (gp *GlobalPools) GetByteBuffer() *bytes.Buffer {
	buf := gp.ByteBuffers.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// ReturnByteBuffer returns a byte buffer to the pool.
func (gp *GlobalPools) ReturnByteBuffer(buf *bytes.Buffer) {
	if buf.Cap() < 1<<20 {
		gp.ByteBuffers.Put(buf)
	}
}

// Reset clears all pools. Useful for isolating allocation counts in tests.
func (gp *GlobalPools) Reset() {
	gp.StringSlices = sync.Pool{New: gp.StringSlices.New}
	gp.Builders = sync.Pool{New: gp.Builders.New}
	gp.ByteBuffers = sync.Pool{New: gp.ByteBuffers.New}
}
