// Package codec provides optional compression for cached API responses.
package codec

import (
	"bytes"
	"fmt"
	"io"
)

// Codec provides compression and decompression functionality.
type Codec interface {
	// Reader wraps r to decompress data read from it.
	Reader(r io.Reader) (io.ReadCloser, error)
	// Writer wraps w to compress data written to it.
	Writer(w io.Writer) (io.WriteCloser, error)
	// Extension returns the file extension without dot (e.g., "zst", "gz").
	// Returns empty string for no compression.
	Extension() string
}

// Encode compresses data with c.
func Encode(c Codec, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := c.Writer(&buf)
	if err != nil {
		return nil, fmt.Errorf("creating compressor: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, fmt.Errorf("compressing: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("flushing compressor: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode decompresses everything read from r with c.
func Decode(c Codec, r io.Reader) ([]byte, error) {
	reader, err := c.Reader(r)
	if err != nil {
		return nil, fmt.Errorf("creating decompressor: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("decompressing: %w", err)
	}
	return data, nil
}
