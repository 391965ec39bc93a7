package formats

import (
	"bytes"
	"fmt"

	"formatscan/internal/codec"
	"formatscan/internal/fsinput"
	"formatscan/internal/rescontext"
	"formatscan/internal/spec"

	"formatscan/codec/flatecodec"
)

// zipMethod and zipSize are declared at package scope (not inside the
// struct literal) because EncodedSize/Decoder need to read them back via
// Value against the active decode scope.
var (
	zipMethod = spec.NewUint16("method").Bind()
	zipSize   = spec.NewUint32("compressedSize").Bind()
)

// zipStoredFormat grounds scenario S2: a ZIP local file header whose
// method selects between a stored (uncompressed) entry and a deflated
// one. matchSize is 10: the four-byte magic, two-byte method and
// four-byte size are all fixed, so accumulation runs through all three.
// The size field holds the number of encoded (stored or deflated) bytes
// that follow the header.
var zipStoredFormat = &format{
	name:  "ZIP local file header",
	order: littleEndian,
	root: spec.Struct("ZIP local file header",
		spec.NewUint32("magic").Final(uint32(0x04034B50)).Bind(),
		zipMethod,
		zipSize,
		spec.Encoded(spec.DecodeParams{
			Name:        "entry data",
			EncodedSize: rescontext.Lazy(func(ctx *rescontext.Context) (int64, error) {
				v, err := zipSize.Value(ctx)
				return int64(v), err
			}),
			Decoder: func(ctx *rescontext.Context, encoded *fsinput.Buffer) (codec.Decoder, error) {
				method, err := zipMethod.Value(ctx)
				if err != nil {
					return nil, err
				}
				switch method {
				case 0:
					return nil, nil // stored: attach the bytes as-is
				case 8:
					return flatecodec.New(bytes.NewReader(encoded.Bytes())), nil
				default:
					return nil, fmt.Errorf("zip: unsupported compression method %d", method)
				}
			},
			DecodedPath: rescontext.Literal("entry"),
		}, sharedCache, nil),
	),
}
