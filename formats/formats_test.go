package formats

import (
	"bytes"
	"context"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/stretchr/testify/require"

	"formatscan/internal/decode"
	"formatscan/internal/fsinput"
	"formatscan/internal/result"
	"formatscan/internal/telemetry"
)

func TestCandidatesMatchesOnPrefixOnly(t *testing.T) {
	data := append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 100)...)
	buf := fsinput.NewBuffer(data, bigEndian)

	cands := Candidates(All(), buf)
	// The truncated and xref fixtures start with raw fields and carry no
	// magic, so they match any buffer long enough to hold their prefix.
	require.Len(t, cands, 3)
	require.Equal(t, "PNG", cands[0].Format.Name())
	require.Equal(t, "truncated fixture", cands[1].Format.Name())
	require.Equal(t, "xref fixture", cands[2].Format.Name())
}

func TestCandidatesEmptyWhenNoneMatch(t *testing.T) {
	buf := fsinput.NewBuffer([]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, bigEndian)
	require.Empty(t, Candidates(All(), buf))
}

func TestPNGDecodesMagicAndBody(t *testing.T) {
	data := append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 100)...)
	in := fsinput.FromBytes("sample.png", bigEndian, data)

	res, err := decode.Decode(context.Background(), pngFormat, in, 0, telemetry.Noop())
	require.NoError(t, err)
	require.False(t, res.Status.IsFatal())
	require.Equal(t, int64(108), res.End)
}

func TestZipStoredEntryAttachesBytesUnchanged(t *testing.T) {
	payload := []byte("stored bytes, not compressed")
	data := zipHeader(t, 0, uint32(len(payload)))
	data = append(data, payload...)
	in := fsinput.FromBytes("stored.zip", littleEndian, data)

	res, err := decode.Decode(context.Background(), zipStoredFormat, in, 0, telemetry.Noop())
	require.NoError(t, err)
	require.False(t, res.Status.IsFatal())

	entryInput := findInputChild(t, res, "entry")
	buf, err := entryInput.CachedRead(0, len(payload))
	require.NoError(t, err)
	require.Equal(t, payload, buf.Bytes())
}

func TestZipDeflatedEntryInflates(t *testing.T) {
	payload := []byte("deflated bytes decoded through klauspost/compress/flate")
	var compressed bytes.Buffer
	w, err := flate.NewWriter(&compressed, flate.DefaultCompression)
	require.NoError(t, err)
	_, err = w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data := zipHeader(t, 8, uint32(compressed.Len()))
	data = append(data, compressed.Bytes()...)
	in := fsinput.FromBytes("deflated.zip", littleEndian, data)

	res, err := decode.Decode(context.Background(), zipStoredFormat, in, 0, telemetry.Noop())
	require.NoError(t, err)
	require.False(t, res.Status.IsFatal())

	entryInput := findInputChild(t, res, "entry")
	buf, err := entryInput.CachedRead(0, len(payload))
	require.NoError(t, err)
	require.Equal(t, payload, buf.Bytes())
}

func TestDeflateMismatchFixtureWarnsButSucceeds(t *testing.T) {
	data := []byte{0x7E, 0xF1, 0x7E, 0xF1}
	data = append(data, make([]byte, 10)...)
	in := fsinput.FromBytes("mismatch.bin", littleEndian, data)

	res, err := decode.Decode(context.Background(), deflateMismatchFormat, in, 0, telemetry.Noop())
	require.NoError(t, err)
	require.False(t, res.Status.IsFatal())
	require.True(t, res.Status.IsSet(), "expected the declared/actual size mismatch warning")
}

func TestTruncatedFixtureIsFatalWithEmptyResult(t *testing.T) {
	in := fsinput.FromBytes("short.bin", bigEndian, make([]byte, 4))
	res, err := decode.Decode(context.Background(), truncatedStructFormat, in, 0, telemetry.Noop())
	require.NoError(t, err)
	require.True(t, res.Status.IsFatal())
	require.Equal(t, res.Start, res.End, "nothing was successfully consumed")
}

func TestTaggedUnionSelectsVariantB(t *testing.T) {
	data := []byte{0x02, 0xAA, 0xBB, 0xCC}
	in := fsinput.FromBytes("union.bin", bigEndian, data)

	res, err := decode.Decode(context.Background(), taggedUnionFormat, in, 0, telemetry.Noop())
	require.NoError(t, err)
	require.False(t, res.Status.IsFatal())
	require.Len(t, res.Steps, 1)
	require.Equal(t, "variant B", res.Steps[0].Child.Title)
}

func TestTaggedUnionNoMatchIsFatal(t *testing.T) {
	data := []byte{0x09, 0xAA, 0xBB, 0xCC}
	in := fsinput.FromBytes("union.bin", bigEndian, data)

	res, err := decode.Decode(context.Background(), taggedUnionFormat, in, 0, telemetry.Noop())
	require.NoError(t, err)
	require.True(t, res.Status.IsFatal())
}

func TestXRefFixtureResolvesAnchor(t *testing.T) {
	data := make([]byte, 0x20)
	data = append(data, 0x00, 0x00, 0x00, 0x08)
	in := fsinput.FromBytes("xref.bin", bigEndian, data)

	res, err := decode.Decode(context.Background(), xrefFormat, in, 0, telemetry.Noop())
	require.NoError(t, err)
	require.False(t, res.Status.IsFatal())
	require.Equal(t, int64(0x24), res.End)
}

// zipHeader builds a minimal little-endian ZIP local file header: 4-byte
// magic ("PK\x03\x04"), 2-byte method, 4-byte encoded size.
func zipHeader(t *testing.T, method uint16, size uint32) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, writeLE32(&buf, 0x04034B50))
	require.NoError(t, writeLE16(&buf, method))
	require.NoError(t, writeLE32(&buf, size))
	return buf.Bytes()
}

func writeLE32(w *bytes.Buffer, v uint32) error {
	w.WriteByte(byte(v))
	w.WriteByte(byte(v >> 8))
	w.WriteByte(byte(v >> 16))
	w.WriteByte(byte(v >> 24))
	return nil
}

func writeLE16(w *bytes.Buffer, v uint16) error {
	w.WriteByte(byte(v))
	w.WriteByte(byte(v >> 8))
	return nil
}

// findInputChild walks res's children depth-first for an INPUT result
// named name, returning the Input it wraps.
func findInputChild(t *testing.T, res *result.Result, name string) fsinput.Input {
	t.Helper()
	for _, child := range res.Children() {
		if child.Kind == result.KindInput && child.Title == name {
			return child.Input
		}
		if found := findInputChildOrNil(child, name); found != nil {
			return found
		}
	}
	t.Fatalf("no INPUT child named %q found", name)
	return nil
}

func findInputChildOrNil(res *result.Result, name string) fsinput.Input {
	for _, child := range res.Children() {
		if child.Kind == result.KindInput && child.Title == name {
			return child.Input
		}
		if found := findInputChildOrNil(child, name); found != nil {
			return found
		}
	}
	return nil
}
