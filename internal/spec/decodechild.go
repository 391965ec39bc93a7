package spec

import (
	"context"

	"formatscan/internal/fsinput"
	"formatscan/internal/result"
)

// DecodeChild decodes one child spec at position against parent. If the
// child is result-producing, DecodeChild opens the nested child.Result
// itself (via parent.AddResult) before delegating; otherwise the child
// decodes directly into parent and is responsible for recording its own
// contribution (result.Builder.AddSection). Composite specs (StructSpec,
// ArraySpec, UnionSpec) call this for every element they walk, so the
// open-child-or-not decision lives in exactly one place.
func DecodeChild(ctx context.Context, parent *result.Builder, child FormatSpec, in fsinput.Input, position int64) (int64, result.DecodeStatus, error) {
	if !child.IsResult() {
		return child.SpecDecode(ctx, parent, in, position)
	}

	kind := result.KindFormat
	if child.ResultKind() == ResultKindEncoded {
		kind = result.KindEncodedInput
	}
	childBuilder, err := parent.AddResult(kind, position, child.Title(), child)
	if err != nil {
		return 0, result.DecodeStatus{}, err
	}
	consumed, status, err := child.SpecDecode(ctx, childBuilder, in, position)
	if err != nil {
		return 0, result.DecodeStatus{}, err
	}
	childBuilder.SetStatus(status)
	if err := childBuilder.UpdateEnd(position + consumed); err != nil {
		return 0, result.DecodeStatus{}, err
	}
	if err := parent.UpdateEnd(position + consumed); err != nil {
		return 0, result.DecodeStatus{}, err
	}
	return consumed, status, nil
}
