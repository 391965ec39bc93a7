package spec

import (
	"context"
	"fmt"

	"formatscan/internal/fsinput"
	"formatscan/internal/rendercontract"
	"formatscan/internal/result"
)

// XRefSpec decodes a fixed-width offset field and renders it as a
// reference anchor (WriteRefText) rather than plain text, letting a
// renderer turn it into a navigable link to the position it names. Unlike
// Attribute it never binds into scope — its only purpose is the anchor.
type XRefSpec struct {
	name string
	size int64
	read Reader[int64]
	base int64
}

// XRef32 builds an XRefSpec over an unsigned 32-bit offset, rendered as
// base+value.
func XRef32(name string, base int64) *XRefSpec {
	return &XRefSpec{
		name: name,
		size: 4,
		read: func(buf *fsinput.Buffer) (int64, error) {
			v, err := buf.Uint32(0)
			return int64(v), err
		},
		base: base,
	}
}

func (s *XRefSpec) Title() string          { return s.name }
func (s *XRefSpec) IsResult() bool         { return false }
func (s *XRefSpec) ResultKind() ResultKind { return ResultKindFormat }
func (s *XRefSpec) MatchSize() int64       { return s.size }
func (s *XRefSpec) IsFixedSize() bool      { return true }

func (s *XRefSpec) Matches(buf *fsinput.Buffer) bool {
	return int64(buf.Len()) >= s.size
}

func (s *XRefSpec) SpecDecode(ctx context.Context, b *result.Builder, in fsinput.Input, position int64) (int64, result.DecodeStatus, error) {
	buf, err := in.CachedRead(position, int(s.size))
	if err != nil {
		status, rerr := statusFromErr(err)
		if rerr != nil {
			return 0, result.DecodeStatus{}, rerr
		}
		b.SetStatus(status)
		return 0, status, nil
	}
	if _, err := s.read(buf); err != nil {
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

func (s *XRefSpec) SpecRender(res *result.Result, start, end int64, r rendercontract.Renderer) error {
	buf, err := res.Input.CachedRead(start, int(end-start))
	if err != nil {
		return nil
	}
	v, err := s.read(buf)
	if err != nil {
		return nil
	}
	anchor := s.base + v
	if err := r.WriteText(rendercontract.ModeLabel, s.name+": "); err != nil {
		return err
	}
	if err := r.WriteRefText(rendercontract.ModeValue, fmt.Sprintf("-> 0x%x", anchor), anchor); err != nil {
		return err
	}
	return r.WriteBreak()
}
