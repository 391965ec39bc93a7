package spec

import (
	"context"
	"fmt"

	"formatscan/internal/codec"
	"formatscan/internal/fsinput"
	"formatscan/internal/rendercontract"
	"formatscan/internal/rescontext"
	"formatscan/internal/result"
)

// DecodeParams configures an EncodedFormatSpec. EncodedSize names the
// number of encoded bytes this section occupies; Decoder builds the
// codec.Decoder to run over them, or may return a nil Decoder to signal
// that the bytes are already stored uncompressed (e.g. a ZIP STORED
// entry) and should be attached to the tree as-is; DecodedPath names the
// derived input for logging/caching.
type DecodeParams struct {
	Name        string
	EncodedSize rescontext.Expr[int64]
	Decoder     func(ctx *rescontext.Context, encoded *fsinput.Buffer) (codec.Decoder, error)
	DecodedPath rescontext.Expr[string]
}

// EncodedFormatSpec is the codec/decoded-input bridge (component 8's
// core-facing half): it reserves EncodedSize bytes of the current input,
// hands them to a codec.Decoder through a codec.DecodeCache, and — if
// inner is non-nil — decodes inner against the resulting decoded Input.
type EncodedFormatSpec struct {
	params DecodeParams
	cache  codec.DecodeCache
	inner  FormatSpec
}

// Encoded builds an EncodedFormatSpec. inner may be nil to leave the
// decoded bytes as an opaque INPUT child (rendered as a hex view).
func Encoded(params DecodeParams, cache codec.DecodeCache, inner FormatSpec) *EncodedFormatSpec {
	return &EncodedFormatSpec{params: params, cache: cache, inner: inner}
}

func (s *EncodedFormatSpec) Title() string          { return s.params.Name }
func (s *EncodedFormatSpec) IsResult() bool         { return true }
func (s *EncodedFormatSpec) ResultKind() ResultKind { return ResultKindEncoded }

// IsFixedSize/MatchSize/Matches are conservative: the encoded size is
// only resolvable against a decode scope (it is commonly itself a bound
// attribute from an enclosing struct), so an encoded section never
// offers useful static matching metadata on its own.
func (s *EncodedFormatSpec) IsFixedSize() bool             { return false }
func (s *EncodedFormatSpec) MatchSize() int64              { return 0 }
func (s *EncodedFormatSpec) Matches(buf *fsinput.Buffer) bool { return true }

// SpecDecode reserves EncodedSize bytes of the current input (or, when
// EncodedSize evaluates negative, an unknown amount left for the decoder
// itself to discover) and installs the decoded bytes as a new INPUT
// child, addressed in that input's own [0, size) coordinate space rather
// than the parent's.
func (s *EncodedFormatSpec) SpecDecode(ctx context.Context, b *result.Builder, in fsinput.Input, position int64) (int64, result.DecodeStatus, error) {
	size, err := s.params.EncodedSize.Eval(b.Context())
	if err != nil {
		return 0, result.DecodeStatus{}, err
	}

	var encoded *fsinput.Buffer
	if size >= 0 {
		buf, err := in.CachedRead(position, int(size))
		if err != nil {
			status, rerr := statusFromErr(err)
			if rerr != nil {
				return 0, result.DecodeStatus{}, rerr
			}
			b.SetStatus(status)
			return 0, status, nil
		}
		encoded = buf
	}

	decoder, err := s.params.Decoder(b.Context(), encoded)
	if err != nil {
		return 0, result.DecodeStatus{}, err
	}

	if decoder == nil && size < 0 {
		return 0, result.DecodeStatus{}, fmt.Errorf("spec: %s: encoded size unknown and no decoder supplied", s.params.Name)
	}

	path, err := s.params.DecodedPath.Eval(b.Context())
	if err != nil {
		return 0, result.DecodeStatus{}, err
	}

	if decoder == nil {
		sub, err := in.Slice(position, position+size, path)
		if err != nil {
			return 0, result.DecodeStatus{}, err
		}
		if err := s.attachDecoded(ctx, b, sub); err != nil {
			return 0, result.DecodeStatus{}, err
		}
		return size, result.DecodeStatus{}, nil
	}

	decoded, err := s.cache.DecodeInput(ctx, in, position, decoder, path)
	if err != nil {
		return 0, result.DecodeStatus{}, err
	}
	if err := s.attachDecoded(ctx, b, decoded); err != nil {
		return 0, result.DecodeStatus{}, err
	}

	actual := decoder.TotalIn()
	consumed := actual
	var status result.DecodeStatus
	if size >= 0 {
		if actual > size {
			status = result.Warning("%s: declared encoded size %d exceeded: %d bytes actually consumed", s.params.Name, size, actual)
			b.SetStatus(status)
		}
		if size > consumed {
			consumed = size
		}
	}
	return consumed, status, nil
}

func (s *EncodedFormatSpec) attachDecoded(ctx context.Context, b *result.Builder, decoded fsinput.Input) error {
	inputBuilder, err := b.AddInput(decoded)
	if err != nil {
		return err
	}
	if s.inner != nil {
		if _, _, err := DecodeChild(ctx, inputBuilder, s.inner, decoded, 0); err != nil {
			return err
		}
	}
	return nil
}

func (s *EncodedFormatSpec) SpecRender(res *result.Result, start, end int64, r rendercontract.Renderer) error {
	if err := r.WriteText(rendercontract.ModeKeyword, s.params.Name); err != nil {
		return err
	}
	if err := r.WriteBreak(); err != nil {
		return err
	}
	return renderSteps(res, r)
}
