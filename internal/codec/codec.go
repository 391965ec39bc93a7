// Package codec defines the contract by which an encoded section obtains
// a decoder and installs the decompressed stream as a new input child
// (component 8, the codec/decoded-input bridge). The core depends only on
// these interfaces; concrete codecs (DEFLATE, LZMA, BZIP2, ...) are
// external collaborators — see the codec/ subpackages for examples that
// plug into this contract.
package codec

import (
	"context"
	"io"

	"formatscan/internal/fsinput"
)

// Decoder streams decoded bytes from an encoded section into dst. ID
// identifies the decoder's configuration for decode-cache fingerprinting
// (same input position decoded with an equivalent decoder must yield the
// same cached result). TotalIn reports the number of encoded bytes
// actually consumed, known only after Decode returns.
type Decoder interface {
	ID() string
	TotalIn() int64
	Decode(ctx context.Context, dst io.Writer) error
}

// DecodeCache produces a decoded Input for an encoded section, guaranteeing
// at-most-one concurrent decode per (input, position, decoder-identity)
// fingerprint and idempotent replays (required for correctness when a
// result is rendered more than once).
type DecodeCache interface {
	DecodeInput(ctx context.Context, parent fsinput.Input, position int64, decoder Decoder, decodedPath string) (fsinput.Input, error)
}
