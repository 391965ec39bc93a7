package formats

import (
	"context"
	"io"

	"formatscan/internal/codec"
	"formatscan/internal/fsinput"
	"formatscan/internal/rescontext"
	"formatscan/internal/spec"
)

// fixtureInflateDecoder is a deterministic stand-in for a real DEFLATE
// decoder: it always reports having consumed 12 encoded bytes, so a
// format declaring a 10-byte encoded size exercises the declared/actual
// size mismatch warning (scenario S3) without depending on constructing
// a byte-exact real DEFLATE stream.
type fixtureInflateDecoder struct{}

func (fixtureInflateDecoder) ID() string      { return "fixture-inflate" }
func (fixtureInflateDecoder) TotalIn() int64  { return 12 }
func (fixtureInflateDecoder) Decode(ctx context.Context, dst io.Writer) error {
	_, err := dst.Write([]byte("decoded payload"))
	return err
}

// deflateMismatchFormat grounds scenario S3: a declared encoded size of
// 10 against a decoder that actually consumes 12 bytes. Decode succeeds;
// a non-fatal warning is attached rather than treated as fatal.
var deflateMismatchFormat = &format{
	name:  "size-mismatch fixture",
	order: littleEndian,
	root: spec.Struct("size-mismatch fixture",
		spec.NewUint32("magic").Final(uint32(0xF17EF17E)).Bind(),
		spec.Encoded(spec.DecodeParams{
			Name:        "payload",
			EncodedSize: rescontext.Literal(int64(10)),
			Decoder: func(ctx *rescontext.Context, encoded *fsinput.Buffer) (codec.Decoder, error) {
				return fixtureInflateDecoder{}, nil
			},
			DecodedPath: rescontext.Literal("payload"),
		}, sharedCache, nil),
	),
}
