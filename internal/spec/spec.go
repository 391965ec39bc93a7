// Package spec implements the FormatSpec contract (component 2) and the
// decode combinators built on it: Attribute, RawSpec, StructSpec,
// ArraySpec, UnionSpec, ConditionalSpec, EncodedFormatSpec and XRefSpec.
// A FormatSpec tree is immutable and stateless; all decode state lives in
// the result.Builder it is handed, and all scoped values live in the
// rescontext.Context reachable from that builder.
package spec

import (
	"context"
	"errors"

	"formatscan/internal/fsinput"
	"formatscan/internal/rendercontract"
	"formatscan/internal/result"
)

// ResultKind distinguishes the two kinds of result-producing spec: one
// that decodes a structured format in place, and one that bridges to a
// decoded (decompressed) input via the codec package.
type ResultKind int

const (
	ResultKindFormat ResultKind = iota
	ResultKindEncoded
)

// FormatSpec is the immutable contract every decode combinator
// implements: static size/match metadata, a decode step against a
// mutable result.Builder, and a render step against the frozen result it
// produced.
type FormatSpec interface {
	// MatchSize is the number of leading bytes this spec needs to decide
	// Matches/Decode; for variable-size specs it is a lower bound.
	MatchSize() int64
	// IsFixedSize reports whether MatchSize is also the exact number of
	// bytes SpecDecode will consume on success.
	IsFixedSize() bool
	// Matches reports whether buf (at least MatchSize bytes) is
	// consistent with this spec, without mutating any state.
	Matches(buf *fsinput.Buffer) bool

	// Title names this spec's contribution for rendering and logging.
	Title() string
	// IsResult reports whether this spec's decode opens its own nested
	// Result (a FORMAT or ENCODED_INPUT child) rather than contributing
	// directly to its caller's Result.
	IsResult() bool
	// ResultKind classifies the nested Result when IsResult is true.
	ResultKind() ResultKind

	// SpecDecode consumes bytes from in starting at position, recording
	// its contribution into b (which is a freshly opened child builder
	// when IsResult is true, or the caller's own builder otherwise). It
	// returns the number of bytes consumed and a DecodeStatus describing
	// any non-fatal or fatal structural anomaly. A non-nil error means a
	// genuine I/O or programming failure, not a decode anomaly.
	SpecDecode(ctx context.Context, b *result.Builder, in fsinput.Input, position int64) (int64, result.DecodeStatus, error)

	// SpecRender renders this spec's contribution to [start,end) of res.
	// Its signature matches result.Renderable exactly, so a FormatSpec
	// satisfies that interface structurally without the result package
	// importing this one.
	SpecRender(res *result.Result, start, end int64, r rendercontract.Renderer) error
}

// statusFromErr classifies an error from a fsinput read: ErrOutOfRange
// becomes a fatal DecodeStatus (structural truncation, not a failure of
// the engine itself); anything else propagates as a genuine error.
func statusFromErr(err error) (result.DecodeStatus, error) {
	if err == nil {
		return result.DecodeStatus{}, nil
	}
	if errors.Is(err, fsinput.ErrOutOfRange) {
		return result.Fatal("%s", err.Error()), nil
	}
	return result.DecodeStatus{}, err
}
