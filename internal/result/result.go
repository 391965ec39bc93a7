// Package result implements the mutable result builder and the immutable
// result tree it freezes into (component 5 of the engine).
package result

import (
	"encoding/binary"

	"formatscan/internal/fsinput"
	"formatscan/internal/rendercontract"
	"formatscan/internal/rescontext"
)

// Kind is the type of a Result node in the frozen tree.
type Kind int

const (
	KindFormat Kind = iota
	KindEncodedInput
	KindInput
)

func (k Kind) String() string {
	switch k {
	case KindFormat:
		return "FORMAT"
	case KindEncodedInput:
		return "ENCODED_INPUT"
	case KindInput:
		return "INPUT"
	default:
		return "UNKNOWN"
	}
}

// Renderable is implemented by anything that can render its contribution
// to a span of a Result. A spec.FormatSpec satisfies this structurally
// (same method signature); this package never imports the spec package,
// which avoids an import cycle between the spec tree and the result
// tree it builds.
type Renderable interface {
	SpecRender(res *Result, start, end int64, r rendercontract.Renderer) error
}

// Section is a (spec, start, end) triple recorded for a spec that is not
// itself result-producing but still contributes to rendering.
type Section struct {
	Spec       Renderable
	Start, End int64
}

// Step is one ordered decode contribution under a Result: either a
// recorded Section (render it directly) or a nested child Result (render
// it recursively, re-entering its own context).
type Step struct {
	Section *Section
	Child   *Result
}

func (s Step) IsChildResult() bool { return s.Child != nil }

// Result is an immutable, frozen node in the decoded tree.
type Result struct {
	Kind       Kind
	Input      fsinput.Input
	Order      binary.ByteOrder
	Start, End int64
	Title      string
	Status     DecodeStatus
	Steps      []Step
	Context    *rescontext.Context
	Renderable Renderable
}

// Children returns the nested result-producing steps, in decode order.
func (r *Result) Children() []*Result {
	var out []*Result
	for _, s := range r.Steps {
		if s.IsChildResult() {
			out = append(out, s.Child)
		}
	}
	return out
}
