// Package flatecodec adapts github.com/klauspost/compress/flate to the
// engine's codec.Decoder contract, so a DEFLATE-encoded section (ZIP's
// "deflated" method, a raw zlib/gzip payload) can be attached to the
// result tree through internal/codec's decode cache.
package flatecodec

import (
	"context"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// Decoder streams a raw DEFLATE stream from src, counting the encoded
// bytes actually consumed so EncodedFormatSpec can flag a declared/actual
// size mismatch.
type Decoder struct {
	src io.Reader
	cr  *countingReader
}

// New builds a flate Decoder reading from src.
func New(src io.Reader) *Decoder {
	cr := &countingReader{r: src}
	return &Decoder{src: src, cr: cr}
}

func (d *Decoder) ID() string { return "flate" }

// TotalIn reports the number of encoded bytes consumed so far; valid
// once Decode has returned.
func (d *Decoder) TotalIn() int64 { return d.cr.n }

func (d *Decoder) Decode(ctx context.Context, dst io.Writer) error {
	fr := flate.NewReader(d.cr)
	defer fr.Close()
	if _, err := io.Copy(dst, fr); err != nil {
		return fmt.Errorf("flatecodec: inflate: %w", err)
	}
	return nil
}

// countingReader tracks bytes read through it, giving a decoder visibility
// into how many encoded bytes the underlying flate.Reader actually
// consumed — flate.Reader does not expose this itself.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// ReadByte makes countingReader an io.ByteReader, so flate.NewReader uses
// it directly instead of wrapping it in a read-ahead buffer whose extra
// reads would inflate n.
func (c *countingReader) ReadByte() (byte, error) {
	var b [1]byte
	for {
		n, err := c.r.Read(b[:])
		if n == 1 {
			c.n++
			return b[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}
