package spec

import (
	"context"

	"formatscan/internal/fsinput"
	"formatscan/internal/rendercontract"
	"formatscan/internal/rescontext"
	"formatscan/internal/result"
)

// ArraySpec decodes a repeated sequence of elements whose count is only
// known at decode time (typically from an earlier bound Attribute). Each
// element factory call must return a fresh FormatSpec instance, so that
// per-element bindable attributes do not collide across iterations —
// DecodeChild gives each result-producing element its own scope, but a
// leaf element decodes directly into the array's own scope and so must
// not reuse attribute identity across iterations.
type ArraySpec struct {
	name  string
	count rescontext.Expr[int64]
	elem  func(index int) FormatSpec
}

// Array builds an ArraySpec of count elements (evaluated against the
// array's own decode scope), each produced fresh by elem.
func Array(name string, count rescontext.Expr[int64], elem func(index int) FormatSpec) *ArraySpec {
	return &ArraySpec{name: name, count: count, elem: elem}
}

func (s *ArraySpec) Title() string          { return s.name }
func (s *ArraySpec) IsResult() bool         { return true }
func (s *ArraySpec) ResultKind() ResultKind { return ResultKindFormat }

// IsFixedSize is always false: the element count is resolved only during
// decode, so no static size can be offered for match-size accounting.
func (s *ArraySpec) IsFixedSize() bool { return false }

// MatchSize is 0: an array never contributes to a struct's prefix
// matchSize accumulation beyond marking it as the stopping point.
func (s *ArraySpec) MatchSize() int64 { return 0 }

// Matches is optimistic: an array's element count is not known from the
// raw bytes alone, so it never disqualifies a candidate format.
func (s *ArraySpec) Matches(buf *fsinput.Buffer) bool { return true }

func (s *ArraySpec) SpecDecode(ctx context.Context, b *result.Builder, in fsinput.Input, position int64) (int64, result.DecodeStatus, error) {
	n, err := s.count.Eval(b.Context())
	if err != nil {
		return 0, result.DecodeStatus{}, err
	}
	pos := position
	var top result.DecodeStatus
	for i := int64(0); i < n; i++ {
		elem := s.elem(int(i))
		consumed, status, err := DecodeChild(ctx, b, elem, in, pos)
		if err != nil {
			return pos - position, top, err
		}
		pos += consumed
		if status.Severity > top.Severity {
			top = status
		}
		if status.IsFatal() {
			break
		}
	}
	return pos - position, top, nil
}

func (s *ArraySpec) SpecRender(res *result.Result, start, end int64, r rendercontract.Renderer) error {
	if err := r.WriteText(rendercontract.ModeKeyword, s.name); err != nil {
		return err
	}
	if err := r.WriteBreak(); err != nil {
		return err
	}
	return renderSteps(res, r)
}
