package fsinput

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestFromBytesCachedRead(t *testing.T) {
	in := FromBytes("mem", binary.BigEndian, []byte("hello world"))

	buf, err := in.CachedRead(6, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(buf.Bytes()) != "world" {
		t.Errorf("got %q, want %q", buf.Bytes(), "world")
	}
}

func TestCachedReadOutOfRange(t *testing.T) {
	in := FromBytes("mem", binary.BigEndian, []byte("abc"))
	if _, err := in.CachedRead(1, 10); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	if _, err := in.CachedRead(-1, 1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for negative position, got %v", err)
	}
}

func TestCachedReadIsCached(t *testing.T) {
	// A second read of the exact same range must not re-hit the source;
	// randomAccessInput serves it from its cache.
	r := &countingReaderAt{Reader: bytes.NewReader([]byte("0123456789"))}
	in := FromReaderAt("counted", binary.BigEndian, r, 10)

	if _, err := in.CachedRead(2, 4); err != nil {
		t.Fatalf("first read: %v", err)
	}
	firstCalls := r.calls
	if _, err := in.CachedRead(2, 4); err != nil {
		t.Fatalf("second read: %v", err)
	}
	if r.calls != firstCalls {
		t.Errorf("expected cached second read, source was hit again (calls %d -> %d)", firstCalls, r.calls)
	}
}

func TestSliceDerivesIndependentInput(t *testing.T) {
	in := FromBytes("mem", binary.BigEndian, []byte("0123456789"))

	sub, err := in.Slice(3, 7, "mem[3:7)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Size() != 4 {
		t.Fatalf("got size %d, want 4", sub.Size())
	}
	buf, err := sub.CachedRead(0, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(buf.Bytes()) != "3456" {
		t.Errorf("got %q, want %q", buf.Bytes(), "3456")
	}

	if _, err := in.Slice(-1, 2, "bad"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for negative start, got %v", err)
	}
	if _, err := in.Slice(0, 11, "bad"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for end past size, got %v", err)
	}
}

type countingReaderAt struct {
	*bytes.Reader
	calls int
}

func (c *countingReaderAt) ReadAt(p []byte, off int64) (int, error) {
	c.calls++
	return c.Reader.ReadAt(p, off)
}
