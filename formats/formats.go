// Package formats registers the engine's built-in Format descriptors and
// the candidate-selection helper the outer scanning framework uses to
// pick one from a prefix buffer (§2's control-flow: "a top-level scan
// selects a candidate format via matches on a prefix buffer").
package formats

import (
	"encoding/binary"

	"formatscan/internal/decode"
	"formatscan/internal/fsinput"
	"formatscan/internal/spec"
)

// format is the concrete decode.Format every built-in descriptor uses.
type format struct {
	name  string
	order binary.ByteOrder
	root  spec.FormatSpec
}

func (f *format) Name() string               { return f.name }
func (f *format) Order() binary.ByteOrder    { return f.order }
func (f *format) Decodable() spec.FormatSpec { return f.root }

// Registered pairs a decode.Format with its root spec, so Candidates can
// run prefix matching without re-deriving it from the interface.
type Registered struct {
	Format decode.Format
	Root   spec.FormatSpec
}

// Candidates returns every registered format whose root spec matches the
// leading bytes of buf, in registration order. The CLI (cmd/formatscan)
// decodes the first candidate in `scan` and lists all of them in
// `detect`.
func Candidates(all []Registered, buf *fsinput.Buffer) []Registered {
	var out []Registered
	for _, r := range all {
		sz := int(r.Root.MatchSize())
		if sz == 0 {
			continue // matchSize==0 opts out of prefix matching (decode-only)
		}
		sub := buf.Slice(0, sz)
		if sub == nil {
			continue
		}
		if r.Root.Matches(sub) {
			out = append(out, r)
		}
	}
	return out
}

// All returns every format descriptor this package ships, grounding the
// engine's testable end-to-end scenarios (S1-S6).
func All() []Registered {
	return []Registered{
		{Format: pngFormat, Root: pngFormat.root},
		{Format: zipStoredFormat, Root: zipStoredFormat.root},
		{Format: deflateMismatchFormat, Root: deflateMismatchFormat.root},
		{Format: truncatedStructFormat, Root: truncatedStructFormat.root},
		{Format: taggedUnionFormat, Root: taggedUnionFormat.root},
		{Format: xrefFormat, Root: xrefFormat.root},
	}
}
