package collection

import (
	"context"
	"io"
)

// contextReader aborts a pending read loop once ctx is done. Bytes already
// consumed from the underlying reader are not rolled back.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *contextReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

// contextWriter aborts a pending write loop once ctx is done. Bytes already
// flushed to the underlying file are not rolled back.
type contextWriter struct {
	ctx context.Context
	w   io.Writer
}

func (w *contextWriter) Write(p []byte) (int, error) {
	if err := w.ctx.Err(); err != nil {
		return 0, err
	}
	return w.w.Write(p)
}
