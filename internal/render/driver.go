// Package render implements the rendering driver (component 7): it walks
// a frozen result tree and invokes each spec's SpecRender, falling back
// to a hex view when a result's spec contributes no output. It depends
// only on the result tree and the renderer contract, never on the spec
// package, so composite specs (internal/spec) can call back into it
// without an import cycle.
package render

import (
	"fmt"

	"formatscan/internal/rendercontract"
	"formatscan/internal/result"
)

// DefaultHexBytes bounds how many bytes the hex-view fallback shows.
const DefaultHexBytes = 512

// Render renders a frozen result, including its non-fatal/fatal status.
// A result with a Renderable that actually writes something wins; failing
// that, a result with recorded steps (an INPUT result whose decoded bytes
// were themselves decoded further) renders those; failing that, a hex
// view of the span is emitted as the last resort.
func Render(res *result.Result, r rendercontract.Renderer) error {
	if res.Renderable != nil {
		wrote := false
		tr := &trackingRenderer{Renderer: r, wrote: &wrote}
		if err := res.Renderable.SpecRender(res, res.Start, res.End, tr); err != nil {
			return err
		}
		if wrote {
			return writeStatusOnly(res, r)
		}
	}
	if len(res.Steps) > 0 {
		for _, step := range res.Steps {
			if step.IsChildResult() {
				if err := RenderChild(step.Child, r); err != nil {
					return err
				}
				continue
			}
			if err := step.Section.Spec.SpecRender(res, step.Section.Start, step.Section.End, r); err != nil {
				return err
			}
		}
		return writeStatusOnly(res, r)
	}
	return renderDefault(res, r)
}

// RenderChild renders a nested child result. Composite specs (StructSpec,
// ArraySpec) call this for each result-producing step they walk over.
func RenderChild(child *result.Result, r rendercontract.Renderer) error {
	return Render(child, r)
}

// trackingRenderer wraps a Renderer to detect whether a single
// SpecRender call contributed anything, without relying on the wrapped
// renderer's own (cumulative, document-wide) HasOutput.
type trackingRenderer struct {
	rendercontract.Renderer
	wrote *bool
}

func (t *trackingRenderer) WriteText(mode rendercontract.Mode, s string) error {
	if s != "" {
		*t.wrote = true
	}
	return t.Renderer.WriteText(mode, s)
}

func (t *trackingRenderer) WriteRefText(mode rendercontract.Mode, s string, anchor int64) error {
	*t.wrote = true
	return t.Renderer.WriteRefText(mode, s, anchor)
}

func (t *trackingRenderer) WriteImage(mode rendercontract.Mode, sh rendercontract.StreamHandler) error {
	*t.wrote = true
	return t.Renderer.WriteImage(mode, sh)
}

func (t *trackingRenderer) WriteVideo(mode rendercontract.Mode, sh rendercontract.StreamHandler) error {
	*t.wrote = true
	return t.Renderer.WriteVideo(mode, sh)
}

func (t *trackingRenderer) WriteRefImage(mode rendercontract.Mode, sh rendercontract.StreamHandler, anchor int64) error {
	*t.wrote = true
	return t.Renderer.WriteRefImage(mode, sh, anchor)
}

func (t *trackingRenderer) WriteRefVideo(mode rendercontract.Mode, sh rendercontract.StreamHandler, anchor int64) error {
	*t.wrote = true
	return t.Renderer.WriteRefVideo(mode, sh, anchor)
}

// renderDefault emits a bounded hex-grid view of a result's byte span —
// the fallback named but left unspecified in the engine's rendering
// design ("a hex view fallback").
func renderDefault(res *result.Result, r rendercontract.Renderer) error {
	size := res.End - res.Start
	n := size
	truncated := false
	if n > DefaultHexBytes {
		n = DefaultHexBytes
		truncated = true
	}
	buf, err := res.Input.CachedRead(res.Start, int(n))
	if err != nil {
		return writeStatusOnly(res, r)
	}
	data := buf.Bytes()
	for off := 0; off < len(data); off += 16 {
		end := off + 16
		if end > len(data) {
			end = len(data)
		}
		line := data[off:end]
		if err := r.WriteText(rendercontract.ModeComment, fmt.Sprintf("%08x  ", int64(off)+res.Start)); err != nil {
			return err
		}
		for i := 0; i < 16; i++ {
			if i < len(line) {
				if err := r.WriteText(rendercontract.ModeValue, fmt.Sprintf("%02x ", line[i])); err != nil {
					return err
				}
			} else {
				if err := r.WriteText(rendercontract.ModeNormal, "   "); err != nil {
					return err
				}
			}
		}
		if err := r.WriteText(rendercontract.ModeNormal, " "); err != nil {
			return err
		}
		for _, c := range line {
			ch := "."
			if c >= 0x20 && c < 0x7f {
				ch = string(c)
			}
			if err := r.WriteText(rendercontract.ModeNormal, ch); err != nil {
				return err
			}
		}
		if err := r.WriteBreak(); err != nil {
			return err
		}
	}
	if truncated {
		if err := r.WriteText(rendercontract.ModeComment, fmt.Sprintf("... %d more bytes", size-n)); err != nil {
			return err
		}
		if err := r.WriteBreak(); err != nil {
			return err
		}
	}
	return writeStatusOnly(res, r)
}

func writeStatusOnly(res *result.Result, r rendercontract.Renderer) error {
	if !res.Status.IsSet() {
		return nil
	}
	mode := rendercontract.ModeComment
	if res.Status.IsFatal() {
		mode = rendercontract.ModeError
	}
	if err := r.WriteText(mode, res.Status.Message); err != nil {
		return err
	}
	return r.WriteBreak()
}
