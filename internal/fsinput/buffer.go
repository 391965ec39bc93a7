package fsinput

import (
	"encoding/binary"
	"fmt"
)

// Buffer is a fixed byte range read from an Input, together with the byte
// order to interpret it under. It plays the role of the source format's
// ByteBuffer: a cheap, immutable view handed to FormatSpecs for matching
// and decoding.
type Buffer struct {
	order binary.ByteOrder
	data  []byte
}

// NewBuffer wraps data (not copied) with the given byte order.
func NewBuffer(data []byte, order binary.ByteOrder) *Buffer {
	return &Buffer{order: order, data: data}
}

func (b *Buffer) Len() int                 { return len(b.data) }
func (b *Buffer) Bytes() []byte            { return b.data }
func (b *Buffer) Order() binary.ByteOrder  { return b.order }

// Slice returns a sub-buffer over [start,end) of this buffer, or nil if
// out of range.
func (b *Buffer) Slice(start, end int) *Buffer {
	if start < 0 || end < start || end > len(b.data) {
		return nil
	}
	return &Buffer{order: b.order, data: b.data[start:end]}
}

func (b *Buffer) need(off, n int) error {
	if off < 0 || n < 0 || off+n > len(b.data) {
		return fmt.Errorf("%w: need %d bytes at %d, have %d", ErrOutOfRange, n, off, len(b.data))
	}
	return nil
}

func (b *Buffer) Uint8(off int) (uint8, error) {
	if err := b.need(off, 1); err != nil {
		return 0, err
	}
	return b.data[off], nil
}

func (b *Buffer) Int8(off int) (int8, error) {
	v, err := b.Uint8(off)
	return int8(v), err
}

func (b *Buffer) Uint16(off int) (uint16, error) {
	if err := b.need(off, 2); err != nil {
		return 0, err
	}
	return b.order.Uint16(b.data[off:]), nil
}

func (b *Buffer) Int16(off int) (int16, error) {
	v, err := b.Uint16(off)
	return int16(v), err
}

func (b *Buffer) Uint32(off int) (uint32, error) {
	if err := b.need(off, 4); err != nil {
		return 0, err
	}
	return b.order.Uint32(b.data[off:]), nil
}

func (b *Buffer) Int32(off int) (int32, error) {
	v, err := b.Uint32(off)
	return int32(v), err
}

func (b *Buffer) Uint64(off int) (uint64, error) {
	if err := b.need(off, 8); err != nil {
		return 0, err
	}
	return b.order.Uint64(b.data[off:]), nil
}

func (b *Buffer) Int64(off int) (int64, error) {
	v, err := b.Uint64(off)
	return int64(v), err
}
