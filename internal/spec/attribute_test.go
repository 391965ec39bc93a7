package spec

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"formatscan/internal/fsinput"
	"formatscan/internal/rescontext"
	"formatscan/internal/result"
)

func newRootBuilder(t *testing.T, data []byte) (*result.Builder, fsinput.Input) {
	t.Helper()
	in := fsinput.FromBytes("mem", binary.BigEndian, data)
	return result.NewBuilder(result.KindFormat, in, binary.BigEndian, 0, "root", nil, rescontext.New()), in
}

func TestAttributeBindAndValue(t *testing.T) {
	a := NewUint16("version").Bind()
	b, in := newRootBuilder(t, []byte{0x00, 0x2a})

	consumed, status, err := a.SpecDecode(context.Background(), b, in, 0)
	require.NoError(t, err)
	require.False(t, status.IsSet())
	require.Equal(t, int64(2), consumed)

	v, err := a.Value(b.Context())
	require.NoError(t, err)
	require.Equal(t, uint16(0x2a), v)
}

func TestAttributeValueUnboundErrors(t *testing.T) {
	a := NewUint8("flags") // never .Bind()
	_, err := a.Value(rescontext.New())
	require.Error(t, err)
}

func TestAttributeFinalMismatchIsFatal(t *testing.T) {
	a := NewUint32("magic").Final(0xCAFEBABE)
	b, in := newRootBuilder(t, []byte{0x00, 0x00, 0x00, 0x01})

	_, status, err := a.SpecDecode(context.Background(), b, in, 0)
	require.NoError(t, err)
	require.True(t, status.IsFatal())
}

func TestAttributeFinalMatchIsNotFatal(t *testing.T) {
	a := NewUint32("magic").Final(0xCAFEBABE)
	b, in := newRootBuilder(t, []byte{0xCA, 0xFE, 0xBA, 0xBE})

	_, status, err := a.SpecDecode(context.Background(), b, in, 0)
	require.NoError(t, err)
	require.False(t, status.IsSet())
}

func TestAttributeMatchesChecksFinalValue(t *testing.T) {
	a := NewUint16("tag").Final(0x1234)
	require.True(t, a.Matches(fsinput.NewBuffer([]byte{0x12, 0x34}, binary.BigEndian)))
	require.False(t, a.Matches(fsinput.NewBuffer([]byte{0x00, 0x00}, binary.BigEndian)))
	require.False(t, a.Matches(fsinput.NewBuffer([]byte{0x12}, binary.BigEndian)), "too short to even hold the field")
}

func TestAttributeTruncatedReadIsFatalStatusNotError(t *testing.T) {
	a := NewUint32("size")
	b, in := newRootBuilder(t, []byte{0x00, 0x01})

	consumed, status, err := a.SpecDecode(context.Background(), b, in, 0)
	require.NoError(t, err, "truncation is structural, not a Go error")
	require.True(t, status.IsFatal())
	require.Equal(t, int64(0), consumed)
}
