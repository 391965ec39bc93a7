package result

import (
	"encoding/binary"
	"fmt"

	"formatscan/internal/fsinput"
	"formatscan/internal/rescontext"
)

// Builder is the mutable accumulator a decode populates. Builders are
// never exposed to renderers — only the frozen Result produced by
// ToResult is.
type Builder struct {
	kind       Kind
	input      fsinput.Input
	order      binary.ByteOrder
	start, end int64
	title      string
	status     DecodeStatus
	steps      []buildStep
	ctx        *rescontext.Context
	renderable Renderable
}

type buildStep struct {
	section *Section
	child   *Builder
}

func (s buildStep) isChildResult() bool { return s.child != nil }

// NewBuilder creates a builder of the given kind, rooted at start, with
// no children yet. ctx is the scope this builder's spec decodes into.
func NewBuilder(kind Kind, input fsinput.Input, order binary.ByteOrder, start int64, title string, renderable Renderable, ctx *rescontext.Context) *Builder {
	return &Builder{
		kind: kind, input: input, order: order,
		start: start, end: start, title: title,
		renderable: renderable, ctx: ctx,
	}
}

func (b *Builder) Kind() Kind                     { return b.kind }
func (b *Builder) Start() int64                   { return b.start }
func (b *Builder) End() int64                     { return b.end }
func (b *Builder) Status() DecodeStatus           { return b.status }
func (b *Builder) Context() *rescontext.Context   { return b.ctx }
func (b *Builder) Input() fsinput.Input           { return b.input }

// UpdateEnd requires e >= start; the builder's effective end is the
// maximum of all updates applied.
func (b *Builder) UpdateEnd(e int64) error {
	if e < b.start {
		return fmt.Errorf("result: updateEnd %d precedes start %d", e, b.start)
	}
	if e > b.end {
		b.end = e
	}
	return nil
}

// SetStatus raises this builder's status, never downgrading a fatal
// status already recorded to a lesser one.
func (b *Builder) SetStatus(s DecodeStatus) {
	if s.Severity > b.status.Severity {
		b.status = s
	}
}

// AddSection records a non-result spec's render contribution in place,
// extending end to cover it.
func (b *Builder) AddSection(spec Renderable, start, end int64) error {
	if err := b.UpdateEnd(end); err != nil {
		return err
	}
	b.steps = append(b.steps, buildStep{section: &Section{Spec: spec, Start: start, End: end}})
	return nil
}

// AddResult opens and attaches a child builder for a spec that is itself
// a result. Refuses on INPUT builders, which may only carry their own
// span.
func (b *Builder) AddResult(kind Kind, start int64, title string, renderable Renderable) (*Builder, error) {
	if b.kind == KindInput {
		return nil, fmt.Errorf("result: cannot add a result child to an INPUT builder")
	}
	if start < b.start {
		return nil, fmt.Errorf("result: child start %d precedes parent start %d", start, b.start)
	}
	child := NewBuilder(kind, b.input, b.order, start, title, renderable, b.ctx.Push())
	b.steps = append(b.steps, buildStep{child: child})
	return child, nil
}

// AddInput attaches an INPUT child spanning the derived input's own
// coordinate space, [0, in.Size()) — independent of where the encoded
// bytes it was produced from sit in the parent's coordinate space. The
// caller (EncodedFormatSpec) is responsible for separately advancing the
// parent's own end by however many encoded bytes it consumed.
func (b *Builder) AddInput(in fsinput.Input) (*Builder, error) {
	if b.kind == KindInput {
		return nil, fmt.Errorf("result: cannot add an input child to an INPUT builder")
	}
	child := NewBuilder(KindInput, in, in.Order(), 0, in.Path(), nil, b.ctx.Push())
	if err := child.UpdateEnd(in.Size()); err != nil {
		return nil, err
	}
	b.steps = append(b.steps, buildStep{child: child})
	return child, nil
}

// ToResult freezes this builder tree into an immutable Result. Empty
// (zero-width) children are dropped. ToResult never mutates the builder,
// so calling it again produces a structurally equal tree (idempotence,
// testable property #5).
func (b *Builder) ToResult() *Result {
	res := &Result{
		Kind: b.kind, Input: b.input, Order: b.order,
		Start: b.start, End: b.end, Title: b.title,
		Status: b.status, Context: b.ctx, Renderable: b.renderable,
	}
	for _, st := range b.steps {
		if st.isChildResult() {
			if st.child.end == st.child.start {
				continue
			}
			res.Steps = append(res.Steps, Step{Child: st.child.ToResult()})
			continue
		}
		res.Steps = append(res.Steps, Step{Section: st.section})
	}
	return res
}
