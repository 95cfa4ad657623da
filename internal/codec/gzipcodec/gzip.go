// Package gzipcodec compresses cache entries with gzip, for caches that
// other tools read back.
package gzipcodec

import (
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"

	"github.com/discochess/repertoire/internal/codec"
)

var _ codec.Codec = (*Codec)(nil)

// Codec implements gzip compression. Writers are pooled per Codec, so a
// Codec must not be copied after first use.
type Codec struct {
	level   int
	writers sync.Pool
}

// New returns a gzip codec at the default compression level.
func New() *Codec {
	return &Codec{level: gzip.DefaultCompression}
}

// NewLevel returns a gzip codec at the given level, from gzip.HuffmanOnly
// through gzip.BestCompression. Invalid levels fail on the first Writer.
func NewLevel(level int) *Codec {
	return &Codec{level: level}
}

// Reader wraps r to decompress gzip data.
func (c *Codec) Reader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

// Writer wraps w to compress data with gzip. Closing the result flushes
// the stream and returns the compressor to the pool.
func (c *Codec) Writer(w io.Writer) (io.WriteCloser, error) {
	if zw, ok := c.writers.Get().(*gzip.Writer); ok {
		zw.Reset(w)
		return &pooledWriter{zw: zw, pool: &c.writers}, nil
	}
	zw, err := gzip.NewWriterLevel(w, c.level)
	if err != nil {
		return nil, err
	}
	return &pooledWriter{zw: zw, pool: &c.writers}, nil
}

// Extension returns "gz".
func (c *Codec) Extension() string {
	return "gz"
}

type pooledWriter struct {
	zw   *gzip.Writer
	pool *sync.Pool
}

func (p *pooledWriter) Write(b []byte) (int, error) {
	if p.zw == nil {
		return 0, io.ErrClosedPipe
	}
	return p.zw.Write(b)
}

func (p *pooledWriter) Close() error {
	if p.zw == nil {
		return nil
	}
	err := p.zw.Close()
	p.pool.Put(p.zw)
	p.zw = nil
	return err
}
