package spec

import (
	"context"
	"fmt"

	"formatscan/internal/fsinput"
	"formatscan/internal/rendercontract"
	"formatscan/internal/result"
)

// RawSpec is an opaque, fixed-size byte range that decodes without
// interpretation — a catch-all field for bytes the format declares but
// the spec tree does not (yet) break down further.
type RawSpec struct {
	name string
	size int64
}

// Raw builds a RawSpec of the given size.
func Raw(name string, size int64) *RawSpec { return &RawSpec{name: name, size: size} }

func (s *RawSpec) Title() string          { return s.name }
func (s *RawSpec) IsResult() bool         { return false }
func (s *RawSpec) ResultKind() ResultKind { return ResultKindFormat }
func (s *RawSpec) MatchSize() int64       { return s.size }
func (s *RawSpec) IsFixedSize() bool      { return true }

func (s *RawSpec) Matches(buf *fsinput.Buffer) bool {
	return int64(buf.Len()) >= s.size
}

func (s *RawSpec) SpecDecode(ctx context.Context, b *result.Builder, in fsinput.Input, position int64) (int64, result.DecodeStatus, error) {
	if _, err := in.CachedRead(position, int(s.size)); err != nil {
		status, rerr := statusFromErr(err)
		if rerr != nil {
			return 0, result.DecodeStatus{}, rerr
		}
		b.SetStatus(status)
		return 0, status, nil
	}
	if err := b.AddSection(s, position, position+s.size); err != nil {
		return 0, result.DecodeStatus{}, err
	}
	return s.size, result.DecodeStatus{}, nil
}

func (s *RawSpec) SpecRender(res *result.Result, start, end int64, r rendercontract.Renderer) error {
	n := end - start
	if n <= 0 {
		return nil
	}
	if err := r.WriteText(rendercontract.ModeComment, fmt.Sprintf("%s: %d raw bytes", s.name, n)); err != nil {
		return err
	}
	return r.WriteBreak()
}
