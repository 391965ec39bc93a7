package spec

import (
	"context"

	"formatscan/internal/fsinput"
	"formatscan/internal/rendercontract"
	"formatscan/internal/result"

	"formatscan/internal/render"
)

// StructSpec decodes an ordered sequence of fields into one nested
// Result. Its matchSize is the sum of each prefix field's matchSize up
// to and including the first field that is not itself fixed-size: once a
// variable-size field is reached, neither its true size nor anything
// past it can be known without decoding, so accumulation stops there.
type StructSpec struct {
	name   string
	fields []FormatSpec
}

// Struct builds a StructSpec over fields, decoded in order.
func Struct(name string, fields ...FormatSpec) *StructSpec {
	return &StructSpec{name: name, fields: fields}
}

func (s *StructSpec) Title() string          { return s.name }
func (s *StructSpec) IsResult() bool         { return true }
func (s *StructSpec) ResultKind() ResultKind { return ResultKindFormat }

func (s *StructSpec) IsFixedSize() bool {
	for _, f := range s.fields {
		if !f.IsFixedSize() {
			return false
		}
	}
	return true
}

func (s *StructSpec) MatchSize() int64 {
	var total int64
	for _, f := range s.fields {
		total += f.MatchSize()
		if !f.IsFixedSize() {
			break
		}
	}
	return total
}

func (s *StructSpec) Matches(buf *fsinput.Buffer) bool {
	off := 0
	for _, f := range s.fields {
		sz := int(f.MatchSize())
		sub := buf.Slice(off, off+sz)
		if sub == nil || !f.Matches(sub) {
			return false
		}
		if !f.IsFixedSize() {
			break
		}
		off += sz
	}
	return true
}

func (s *StructSpec) SpecDecode(ctx context.Context, b *result.Builder, in fsinput.Input, position int64) (int64, result.DecodeStatus, error) {
	pos := position
	var top result.DecodeStatus
	for _, f := range s.fields {
		consumed, status, err := DecodeChild(ctx, b, f, in, pos)
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

func (s *StructSpec) SpecRender(res *result.Result, start, end int64, r rendercontract.Renderer) error {
	if err := r.WriteText(rendercontract.ModeKeyword, s.name); err != nil {
		return err
	}
	if err := r.WriteBreak(); err != nil {
		return err
	}
	return renderSteps(res, r)
}

// renderSteps walks a frozen result's recorded steps in decode order,
// rendering each nested child result recursively (through the rendering
// driver, which applies the hex-view fallback) or each directly recorded
// section in place.
func renderSteps(res *result.Result, r rendercontract.Renderer) error {
	for _, step := range res.Steps {
		if step.IsChildResult() {
			if err := render.RenderChild(step.Child, r); err != nil {
				return err
			}
			continue
		}
		if err := step.Section.Spec.SpecRender(res, step.Section.Start, step.Section.End, r); err != nil {
			return err
		}
	}
	return nil
}
