package spec

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"formatscan/internal/fsinput"
	"formatscan/internal/rescontext"
)

func TestStructMatchSizeStopsAtFirstVariableField(t *testing.T) {
	s := Struct("hdr",
		Raw("a", 2),
		Raw("b", 3),
		Array("items", rescontext.Literal(int64(2)), func(i int) FormatSpec { return Raw("item", 1) }),
		Raw("c", 100), // never reached by matchSize accumulation
	)
	// 2 + 3 from the two fixed-size prefix fields, stopping at the array.
	require.Equal(t, int64(5), s.MatchSize())
	require.False(t, s.IsFixedSize())
}

func TestStructMatchesOnlyChecksPrefix(t *testing.T) {
	s := Struct("hdr",
		NewUint8("tag").Final(0x7A),
		Array("items", rescontext.Literal(int64(1)), func(i int) FormatSpec { return Raw("item", 1) }),
	)
	buf := fsinput.NewBuffer([]byte{0x7A}, binary.BigEndian)
	require.True(t, s.Matches(buf))

	buf = fsinput.NewBuffer([]byte{0x00}, binary.BigEndian)
	require.False(t, s.Matches(buf))
}

func TestStructDecodeOrdersFieldsAndStopsOnFatal(t *testing.T) {
	s := Struct("hdr",
		NewUint8("tag").Final(0x01),
		Raw("tail", 4),
	)
	b, in := newRootBuilder(t, []byte{0x02, 0xAA, 0xBB, 0xCC, 0xDD}) // tag mismatch

	consumed, status, err := s.SpecDecode(context.Background(), b, in, 0)
	require.NoError(t, err)
	require.True(t, status.IsFatal())
	require.Equal(t, int64(1), consumed, "decode stops at the first fatal field")
}

func TestStructDecodeSucceedsAndBindsNestedAttributes(t *testing.T) {
	count := NewUint8("count").Bind()
	s := Struct("hdr", count, Raw("pad", 1))
	b, in := newRootBuilder(t, []byte{0x03, 0x00})

	consumed, status, err := s.SpecDecode(context.Background(), b, in, 0)
	require.NoError(t, err)
	require.False(t, status.IsSet())
	require.Equal(t, int64(2), consumed)

	v, err := count.Value(b.Context())
	require.NoError(t, err)
	require.Equal(t, uint8(3), v)
}
