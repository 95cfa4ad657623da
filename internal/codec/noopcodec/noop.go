// Package noopcodec stores cache entries as plain JSON, readable with any
// text tool.
package noopcodec

import (
	"io"

	"github.com/discochess/repertoire/internal/codec"
)

var _ codec.Codec = Codec{}

// Codec passes data through unchanged. The zero value is ready to use.
type Codec struct{}

// New returns a Codec.
func New() Codec {
	return Codec{}
}

// Reader returns r, adding a no-op Close when r has none.
func (Codec) Reader(r io.Reader) (io.ReadCloser, error) {
	rc, ok := r.(io.ReadCloser)
	if !ok {
		rc = io.NopCloser(r)
	}
	return rc, nil
}

// Writer returns w behind a Close that leaves w open.
func (Codec) Writer(w io.Writer) (io.WriteCloser, error) {
	return plainWriter{w}, nil
}

// Extension is empty, so entries keep their ".json" name.
func (Codec) Extension() string {
	return ""
}

type plainWriter struct{ io.Writer }

func (plainWriter) Close() error { return nil }
