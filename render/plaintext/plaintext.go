// Package plaintext is a concrete rendercontract.Renderer writing plain,
// unstyled text to an io.Writer — the engine's simplest external
// collaborator, suitable for piping a scan's output to a terminal or a
// log. WriteRefImage and WriteRefVideo only ever emit a placeholder link,
// since a plain-text stream has no way to embed binary media inline; see
// DESIGN.md for why the engine leaves their exact behavior open.
package plaintext

import (
	"fmt"
	"io"

	"formatscan/internal/rendercontract"
)

// Renderer writes an unstyled, line-oriented rendering of a result tree
// to w.
type Renderer struct {
	w     io.Writer
	wrote bool
	err   error
}

// New builds a Renderer writing to w.
func New(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

func (r *Renderer) write(s string) error {
	if r.err != nil {
		return r.err
	}
	if s == "" {
		return nil
	}
	if _, err := io.WriteString(r.w, s); err != nil {
		r.err = fmt.Errorf("plaintext: write: %w", err)
		return r.err
	}
	r.wrote = true
	return nil
}

func (r *Renderer) WritePreamble() error { return nil }
func (r *Renderer) WriteEpilogue() error { return nil }

func (r *Renderer) WriteBeginMode(mode rendercontract.Mode) error { return nil }
func (r *Renderer) WriteEndMode(mode rendercontract.Mode) error   { return nil }

func (r *Renderer) WriteText(mode rendercontract.Mode, s string) error {
	return r.write(s)
}

func (r *Renderer) WriteRefText(mode rendercontract.Mode, s string, anchorPosition int64) error {
	return r.write(fmt.Sprintf("%s [@0x%x]", s, anchorPosition))
}

func (r *Renderer) WriteBreak() error {
	return r.write("\n")
}

func (r *Renderer) WriteImage(mode rendercontract.Mode, stream rendercontract.StreamHandler) error {
	return r.write("[image]")
}

func (r *Renderer) WriteVideo(mode rendercontract.Mode, stream rendercontract.StreamHandler) error {
	return r.write("[video]")
}

// WriteRefImage emits a placeholder link rather than embedding the
// referenced stream: a plain-text sink has no inline media mechanism, so
// the anchor position is all that can usefully be shown.
func (r *Renderer) WriteRefImage(mode rendercontract.Mode, stream rendercontract.StreamHandler, anchorPosition int64) error {
	return r.write(fmt.Sprintf("[image @0x%x]", anchorPosition))
}

// WriteRefVideo is WriteRefImage's counterpart for video streams.
func (r *Renderer) WriteRefVideo(mode rendercontract.Mode, stream rendercontract.StreamHandler, anchorPosition int64) error {
	return r.write(fmt.Sprintf("[video @0x%x]", anchorPosition))
}

func (r *Renderer) HasOutput() bool { return r.wrote }

func (r *Renderer) Close() error { return r.err }
