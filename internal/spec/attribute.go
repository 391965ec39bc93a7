package spec

import (
	"context"
	"fmt"

	"formatscan/internal/fsinput"
	"formatscan/internal/rendercontract"
	"formatscan/internal/rescontext"
	"formatscan/internal/result"
)

// Reader decodes a T out of a fixed-width buffer anchored at offset 0.
type Reader[T any] func(buf *fsinput.Buffer) (T, error)

// Attribute is a fixed-width scalar field: the engine's basic named,
// typed, independently bindable unit of decode. T must be comparable so
// Final can compare a decoded value against an expected constant.
type Attribute[T comparable] struct {
	name   string
	size   int64
	read   Reader[T]
	bind   bool
	final  T
	hasFin bool
	render func(T) string
}

func newAttribute[T comparable](name string, size int64, read Reader[T]) *Attribute[T] {
	return &Attribute[T]{name: name, size: size, read: read}
}

// Bind marks this attribute's decoded value to be bound into its
// enclosing result's scope, under the attribute's own pointer identity,
// so later siblings (array counts, conditionals, encoded sizes) can read
// it back via Value.
func (a *Attribute[T]) Bind() *Attribute[T] { a.bind = true; return a }

// Final declares this attribute a fixed/magic value: a decoded value
// other than v is a fatal structural mismatch.
func (a *Attribute[T]) Final(v T) *Attribute[T] { a.final = v; a.hasFin = true; return a }

// WithRenderer overrides how a decoded value is displayed; by default it
// is formatted with fmt's default verb.
func (a *Attribute[T]) WithRenderer(f func(T) string) *Attribute[T] { a.render = f; return a }

// Value resolves this attribute's bound value from ctx (or an ancestor
// scope reachable from it). Returns an error if it was never bound.
func (a *Attribute[T]) Value(ctx *rescontext.Context) (T, error) {
	v, ok := ctx.Get(a)
	if !ok {
		var zero T
		return zero, fmt.Errorf("spec: attribute %q not bound in this scope", a.name)
	}
	return v.(T), nil
}

func (a *Attribute[T]) Title() string          { return a.name }
func (a *Attribute[T]) IsResult() bool         { return false }
func (a *Attribute[T]) ResultKind() ResultKind { return ResultKindFormat }
func (a *Attribute[T]) MatchSize() int64       { return a.size }
func (a *Attribute[T]) IsFixedSize() bool      { return true }

func (a *Attribute[T]) Matches(buf *fsinput.Buffer) bool {
	if int64(buf.Len()) < a.size {
		return false
	}
	if !a.hasFin {
		return true
	}
	v, err := a.read(buf)
	if err != nil {
		return false
	}
	return v == a.final
}

func (a *Attribute[T]) SpecDecode(ctx context.Context, b *result.Builder, in fsinput.Input, position int64) (int64, result.DecodeStatus, error) {
	buf, err := in.CachedRead(position, int(a.size))
	if err != nil {
		status, rerr := statusFromErr(err)
		if rerr != nil {
			return 0, result.DecodeStatus{}, rerr
		}
		b.SetStatus(status)
		return 0, status, nil
	}
	v, err := a.read(buf)
	if err != nil {
		status, rerr := statusFromErr(err)
		if rerr != nil {
			return 0, result.DecodeStatus{}, rerr
		}
		b.SetStatus(status)
		return 0, status, nil
	}

	var status result.DecodeStatus
	if a.hasFin && v != a.final {
		status = result.Fatal("%s: expected %v, got %v", a.name, a.final, v)
		b.SetStatus(status)
	}
	if a.bind {
		b.Context().Set(a, v)
	}
	if err := b.AddSection(a, position, position+a.size); err != nil {
		return 0, result.DecodeStatus{}, err
	}
	return a.size, status, nil
}

func (a *Attribute[T]) SpecRender(res *result.Result, start, end int64, r rendercontract.Renderer) error {
	buf, err := res.Input.CachedRead(start, int(end-start))
	if err != nil {
		return nil
	}
	v, err := a.read(buf)
	if err != nil {
		return nil
	}
	text := fmt.Sprintf("%v", v)
	if a.render != nil {
		text = a.render(v)
	}
	if err := r.WriteText(rendercontract.ModeLabel, a.name+": "); err != nil {
		return err
	}
	if err := r.WriteText(rendercontract.ModeValue, text); err != nil {
		return err
	}
	return r.WriteBreak()
}

// NewUint8 builds an unsigned 8-bit attribute.
func NewUint8(name string) *Attribute[uint8] {
	return newAttribute(name, 1, func(b *fsinput.Buffer) (uint8, error) { return b.Uint8(0) })
}

// NewInt8 builds a signed 8-bit attribute.
func NewInt8(name string) *Attribute[int8] {
	return newAttribute(name, 1, func(b *fsinput.Buffer) (int8, error) { return b.Int8(0) })
}

// NewUint16 builds an unsigned 16-bit attribute in the buffer's byte order.
func NewUint16(name string) *Attribute[uint16] {
	return newAttribute(name, 2, func(b *fsinput.Buffer) (uint16, error) { return b.Uint16(0) })
}

// NewInt16 builds a signed 16-bit attribute in the buffer's byte order.
func NewInt16(name string) *Attribute[int16] {
	return newAttribute(name, 2, func(b *fsinput.Buffer) (int16, error) { return b.Int16(0) })
}

// NewUint32 builds an unsigned 32-bit attribute in the buffer's byte order.
func NewUint32(name string) *Attribute[uint32] {
	return newAttribute(name, 4, func(b *fsinput.Buffer) (uint32, error) { return b.Uint32(0) })
}

// NewInt32 builds a signed 32-bit attribute in the buffer's byte order.
func NewInt32(name string) *Attribute[int32] {
	return newAttribute(name, 4, func(b *fsinput.Buffer) (int32, error) { return b.Int32(0) })
}

// NewUint64 builds an unsigned 64-bit attribute in the buffer's byte order.
func NewUint64(name string) *Attribute[uint64] {
	return newAttribute(name, 8, func(b *fsinput.Buffer) (uint64, error) { return b.Uint64(0) })
}

// NewInt64 builds a signed 64-bit attribute in the buffer's byte order.
func NewInt64(name string) *Attribute[int64] {
	return newAttribute(name, 8, func(b *fsinput.Buffer) (int64, error) { return b.Int64(0) })
}
