package noopcodec

import (
	"bytes"
	"io"
	"testing"
)

type closeTracker struct {
	bytes.Buffer
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestCodec_WriterDoesNotCloseUnderlying(t *testing.T) {
	var dst closeTracker
	w, err := New().Writer(&dst)
	if err != nil {
		t.Fatalf("Writer() error = %v", err)
	}
	io.WriteString(w, "[]")
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if dst.closed {
		t.Error("closing the writer closed the destination")
	}
	if dst.String() != "[]" {
		t.Errorf("written = %q, want %q", dst.String(), "[]")
	}
}

func TestCodec_Extension(t *testing.T) {
	if got := New().Extension(); got != "" {
		t.Errorf("Extension() = %q, want empty", got)
	}
}

func TestCodec_ReaderKeepsCloser(t *testing.T) {
	src := &closeTracker{}
	src.WriteString(`{"nbResults":2}`)

	r, err := Codec{}.Reader(src)
	if err != nil {
		t.Fatalf("Reader() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !src.closed {
		t.Error("closing the reader should close a ReadCloser source")
	}
}
