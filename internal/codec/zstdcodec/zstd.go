// Package zstdcodec compresses cache entries with zstd.
//
// Explorer responses are small NDJSON documents read back far more often
// than they are written, so decoders run single-threaded with a bounded
// window and the default encoder favors speed.
package zstdcodec

import (
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/discochess/repertoire/internal/codec"
)

// maxDecoderMemory bounds the window a corrupt or hostile entry can request.
const maxDecoderMemory = 64 << 20

var _ codec.Codec = (*Codec)(nil)

// Codec implements zstd compression.
type Codec struct {
	level zstd.EncoderLevel
}

// Option configures a Codec.
type Option func(*Codec)

// WithLevel sets the encoder level. The default is zstd.SpeedFastest.
func WithLevel(level zstd.EncoderLevel) Option {
	return func(c *Codec) { c.level = level }
}

// New returns a zstd codec.
func New(opts ...Option) *Codec {
	c := &Codec{level: zstd.SpeedFastest}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Reader wraps r to decompress zstd data. Closing the result releases the
// decoder.
func (c *Codec) Reader(r io.Reader) (io.ReadCloser, error) {
	d, err := zstd.NewReader(r,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
		zstd.WithDecoderMaxMemory(maxDecoderMemory),
	)
	if err != nil {
		return nil, err
	}
	return d.IOReadCloser(), nil
}

// Writer wraps w to compress data at the codec's level.
func (c *Codec) Writer(w io.Writer) (io.WriteCloser, error) {
	return zstd.NewWriter(w,
		zstd.WithEncoderLevel(c.level),
		zstd.WithEncoderConcurrency(1),
	)
}

// Extension returns "zst".
func (c *Codec) Extension() string {
	return "zst"
}
