package spec

import (
	"context"

	"formatscan/internal/fsinput"
	"formatscan/internal/rendercontract"
	"formatscan/internal/rescontext"
	"formatscan/internal/result"
)

// ConditionalSpec decodes its wrapped spec only when pred holds against
// the enclosing scope, and otherwise contributes nothing — its enclosing
// struct simply advances to the next field with zero bytes consumed. It
// forwards IsResult/ResultKind/Title/MatchSize/IsFixedSize/Matches to the
// wrapped spec so that DecodeChild and an enclosing StructSpec treat a
// conditional field exactly as they would the inner spec itself.
type ConditionalSpec struct {
	name string
	pred func(ctx *rescontext.Context) (bool, error)
	then FormatSpec
}

// If builds a ConditionalSpec: then decodes only when pred evaluates true.
func If(name string, pred func(ctx *rescontext.Context) (bool, error), then FormatSpec) *ConditionalSpec {
	return &ConditionalSpec{name: name, pred: pred, then: then}
}

func (s *ConditionalSpec) Title() string {
	if s.name != "" {
		return s.name
	}
	return s.then.Title()
}

func (s *ConditionalSpec) IsResult() bool         { return s.then.IsResult() }
func (s *ConditionalSpec) ResultKind() ResultKind { return s.then.ResultKind() }
func (s *ConditionalSpec) MatchSize() int64       { return s.then.MatchSize() }
func (s *ConditionalSpec) IsFixedSize() bool      { return s.then.IsFixedSize() }
func (s *ConditionalSpec) Matches(buf *fsinput.Buffer) bool {
	return s.then.Matches(buf)
}

func (s *ConditionalSpec) SpecDecode(ctx context.Context, b *result.Builder, in fsinput.Input, position int64) (int64, result.DecodeStatus, error) {
	ok, err := s.pred(b.Context())
	if err != nil {
		return 0, result.DecodeStatus{}, err
	}
	if !ok {
		return 0, result.DecodeStatus{}, nil
	}
	return s.then.SpecDecode(ctx, b, in, position)
}

func (s *ConditionalSpec) SpecRender(res *result.Result, start, end int64, r rendercontract.Renderer) error {
	if end <= start {
		return nil
	}
	return s.then.SpecRender(res, start, end, r)
}
