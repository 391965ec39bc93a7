package spec

import (
	"context"
	"errors"

	"formatscan/internal/fsinput"
	"formatscan/internal/rendercontract"
	"formatscan/internal/result"
)

// UnionSpec picks the first alternative whose Matches predicate accepts
// the bytes at the current position and decodes as if it were that
// alternative directly. UnionSpec itself never opens a Result: whichever
// alternative is selected contributes to the caller exactly as it would
// have on its own, so a struct field typed as a union reads, in the
// frozen tree, indistinguishably from a field typed as the chosen
// alternative.
type UnionSpec struct {
	name string
	alts []FormatSpec
}

// Union builds a UnionSpec trying alts in order.
func Union(name string, alts ...FormatSpec) *UnionSpec {
	return &UnionSpec{name: name, alts: alts}
}

func (s *UnionSpec) Title() string          { return s.name }
func (s *UnionSpec) IsResult() bool         { return false }
func (s *UnionSpec) ResultKind() ResultKind { return ResultKindFormat }

func (s *UnionSpec) MatchSize() int64 {
	var max int64
	for _, alt := range s.alts {
		if alt.MatchSize() > max {
			max = alt.MatchSize()
		}
	}
	return max
}

// IsFixedSize is true only when every alternative is fixed-size and
// agrees on the same size; otherwise the union's true size depends on
// which alternative decode selects.
func (s *UnionSpec) IsFixedSize() bool {
	if len(s.alts) == 0 {
		return false
	}
	size := s.alts[0].MatchSize()
	for _, alt := range s.alts {
		if !alt.IsFixedSize() || alt.MatchSize() != size {
			return false
		}
	}
	return true
}

// Matches reports whether any alternative matches.
func (s *UnionSpec) Matches(buf *fsinput.Buffer) bool {
	for _, alt := range s.alts {
		sub := buf.Slice(0, int(alt.MatchSize()))
		if sub != nil && alt.Matches(sub) {
			return true
		}
	}
	return false
}

func (s *UnionSpec) selectAlt(in fsinput.Input, position int64) (FormatSpec, error) {
	for _, alt := range s.alts {
		buf, err := in.CachedRead(position, int(alt.MatchSize()))
		if err != nil {
			if errors.Is(err, fsinput.ErrOutOfRange) {
				continue
			}
			return nil, err
		}
		if alt.Matches(buf) {
			return alt, nil
		}
	}
	return nil, nil
}

func (s *UnionSpec) SpecDecode(ctx context.Context, b *result.Builder, in fsinput.Input, position int64) (int64, result.DecodeStatus, error) {
	alt, err := s.selectAlt(in, position)
	if err != nil {
		return 0, result.DecodeStatus{}, err
	}
	if alt == nil {
		status := result.Fatal("%s: no alternative matches input at %d", s.name, position)
		b.SetStatus(status)
		return 0, status, nil
	}
	return DecodeChild(ctx, b, alt, in, position)
}

// SpecRender is never called: a union is never itself recorded as a
// result.Renderable — DecodeChild attributes the selected alternative's
// own contribution directly to the caller's builder.
func (s *UnionSpec) SpecRender(res *result.Result, start, end int64, r rendercontract.Renderer) error {
	return nil
}
