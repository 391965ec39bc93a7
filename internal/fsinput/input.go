// Package fsinput provides the read-only, random-access view over bytes
// that the format-spec engine decodes and renders against. An Input never
// mutates the bytes it wraps; slicing and decoded-input derivation always
// produce a new Input value that shares or narrows the underlying source.
package fsinput

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"
)

// ErrOutOfRange is returned (and wrapped) when a read or slice falls
// outside the bounds of an Input. Callers that see this via errors.Is
// should treat it as a structural/truncation problem, not a raw I/O
// failure — see internal/spec's truncation handling.
var ErrOutOfRange = errors.New("fsinput: out of range")

// Input is a read-only, random-access view over bytes, identified by a
// path string, a byte order, and a size.
type Input interface {
	Path() string
	Size() int64
	Order() binary.ByteOrder

	// CachedRead returns a Buffer over length bytes starting at position.
	// Implementations may cache the result; repeated reads of the same
	// range must be safe to call concurrently.
	CachedRead(position int64, length int) (*Buffer, error)

	// Slice returns a derived Input over [start, end), identified by path.
	Slice(start, end int64, path string) (Input, error)
}

// source is the minimal random-access reader an Input is built over.
type source interface {
	ReadAt(buf []byte, off int64) (int, error)
}

type cacheKey struct {
	pos int64
	len int
}

// randomAccessInput is the concrete Input implementation: a window
// [base, base+size) over a shared source, with a small read cache.
type randomAccessInput struct {
	path  string
	order binary.ByteOrder
	size  int64
	base  int64
	src   source

	mu    sync.Mutex
	cache map[cacheKey][]byte
}

// FromBytes wraps an in-memory byte slice as an Input. Used both for
// top-level inputs constructed by callers and for decoded inputs produced
// by the codec bridge (component 8).
func FromBytes(path string, order binary.ByteOrder, data []byte) Input {
	return &randomAccessInput{
		path:  path,
		order: order,
		size:  int64(len(data)),
		src:   bytes.NewReader(data),
	}
}

// FromReaderAt wraps an external random-access reader (typically an
// *os.File) as an Input over its first size bytes.
func FromReaderAt(path string, order binary.ByteOrder, r io.ReaderAt, size int64) Input {
	return &randomAccessInput{path: path, order: order, size: size, src: r}
}

func (in *randomAccessInput) Path() string          { return in.path }
func (in *randomAccessInput) Size() int64           { return in.size }
func (in *randomAccessInput) Order() binary.ByteOrder { return in.order }

func (in *randomAccessInput) CachedRead(position int64, length int) (*Buffer, error) {
	if position < 0 || length < 0 || position+int64(length) > in.size {
		return nil, fmt.Errorf("%w: read [%d,%d) against %q (size %d)", ErrOutOfRange, position, position+int64(length), in.path, in.size)
	}
	key := cacheKey{position, length}

	in.mu.Lock()
	if in.cache != nil {
		if cached, ok := in.cache[key]; ok {
			in.mu.Unlock()
			return NewBuffer(cached, in.order), nil
		}
	}
	in.mu.Unlock()

	data := make([]byte, length)
	if length > 0 {
		if _, err := in.src.ReadAt(data, in.base+position); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("fsinput: read %q at %d: %w", in.path, position, err)
		}
	}

	in.mu.Lock()
	if in.cache == nil {
		in.cache = make(map[cacheKey][]byte)
	}
	in.cache[key] = data
	in.mu.Unlock()

	return NewBuffer(data, in.order), nil
}

func (in *randomAccessInput) Slice(start, end int64, path string) (Input, error) {
	if start < 0 || end < start || end > in.size {
		return nil, fmt.Errorf("%w: slice [%d,%d) against %q (size %d)", ErrOutOfRange, start, end, in.path, in.size)
	}
	return &randomAccessInput{
		path:  path,
		order: in.order,
		size:  end - start,
		base:  in.base + start,
		src:   in.src,
	}, nil
}
