// Package decode implements the decode driver (component 6): given a
// Format and a starting position in an Input, it runs the format's spec
// tree to completion and freezes the resulting Result.
package decode

import (
	"context"
	"encoding/binary"

	"formatscan/internal/fsinput"
	"formatscan/internal/rescontext"
	"formatscan/internal/result"
	"formatscan/internal/spec"
	"formatscan/internal/telemetry"
)

// Format names a decodable top-level specification: a byte order and the
// spec tree itself. Order is recorded on the root result; attributes read
// multi-byte fields in the Input's own byte order, not in Order.
type Format interface {
	Name() string
	Order() binary.ByteOrder
	Decodable() spec.FormatSpec
}

// Decode runs f's spec tree against in starting at position, returning
// the frozen result tree. The returned error is non-nil only for a
// genuine I/O or programming failure; structural anomalies (truncation,
// magic mismatches, declared/actual size mismatches) are recorded on the
// tree as result.DecodeStatus instead. log may be the zero Logger
// (telemetry.Noop()) when the caller doesn't care about tracing.
func Decode(ctx context.Context, f Format, in fsinput.Input, position int64, log telemetry.Logger) (*result.Result, error) {
	root := f.Decodable()
	kind := result.KindFormat
	if root.ResultKind() == spec.ResultKindEncoded {
		kind = result.KindEncodedInput
	}
	builder := result.NewBuilder(kind, in, f.Order(), position, f.Name(), root, rescontext.New())

	log.Debug("decode start", map[string]any{"format": f.Name(), "path": in.Path(), "position": position})

	consumed, status, err := root.SpecDecode(ctx, builder, in, position)
	if err != nil {
		log.Error("decode failed", err, map[string]any{"format": f.Name(), "path": in.Path()})
		return nil, err
	}
	builder.SetStatus(status)
	if err := builder.UpdateEnd(position + consumed); err != nil {
		log.Error("decode failed", err, map[string]any{"format": f.Name(), "path": in.Path()})
		return nil, err
	}
	log.Debug("decode done", map[string]any{"format": f.Name(), "path": in.Path(), "end": position + consumed, "fatal": status.IsFatal()})
	return builder.ToResult(), nil
}
