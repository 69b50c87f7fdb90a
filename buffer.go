package followredirect

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

const bufferChunkSize = 8 * 1024

// bodyBuffer drains a streaming request body into a single in-memory buffer
// so the body can be replayed on every redirect hop. It is strictly
// one-shot: drain may be called exactly once.
type bodyBuffer struct {
	src  io.ReadCloser
	buf  bytes.Buffer
	done bool
}

func newBodyBuffer(src io.ReadCloser) *bodyBuffer {
	return &bodyBuffer{src: src}
}

// drain consumes the source to EOF and returns the accumulated bytes. The
// source is closed in all cases. A stream failure is reported as a
// BodyReadError and the partial buffer is discarded. The context is checked
// between chunks so an abandoned call does not keep reading.
func (b *bodyBuffer) drain(ctx context.Context) ([]byte, error) {
	if b.done {
		panic("followredirect: bodyBuffer drained twice")
	}
	b.done = true
	defer b.src.Close()

	if b.src == http.NoBody {
		return nil, nil
	}

	chunk := make([]byte, bufferChunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return nil, &BodyReadError{Err: err}
		}
		n, err := b.src.Read(chunk)
		if n > 0 {
			b.buf.Write(chunk[:n])
		}
		if err == io.EOF {
			return b.buf.Bytes(), nil
		}
		if err != nil {
			return nil, &BodyReadError{Err: err}
		}
	}
}
