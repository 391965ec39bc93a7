package codec

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"formatscan/internal/fsinput"
	"formatscan/internal/telemetry"
)

// MemoCache is an in-process DecodeCache. It decodes each distinct
// (parent path, position, decoder ID) fingerprint at most once and hands
// every caller — including repeated renders of the same result — the
// same derived Input.
type MemoCache struct {
	log telemetry.Logger

	mu      sync.Mutex
	entries map[fingerprint]*cacheEntry
}

type fingerprint struct {
	path     string
	position int64
	decoder  string
}

type cacheEntry struct {
	once  sync.Once
	input fsinput.Input
	err   error
}

// NewMemoCache builds a MemoCache that logs cache activity through log
// (pass telemetry.Noop() to disable).
func NewMemoCache(log telemetry.Logger) *MemoCache {
	return &MemoCache{log: log, entries: make(map[fingerprint]*cacheEntry)}
}

func (c *MemoCache) DecodeInput(ctx context.Context, parent fsinput.Input, position int64, decoder Decoder, decodedPath string) (fsinput.Input, error) {
	fp := fingerprint{path: parent.Path(), position: position, decoder: decoder.ID()}

	c.mu.Lock()
	e, ok := c.entries[fp]
	if !ok {
		e = &cacheEntry{}
		c.entries[fp] = e
	}
	c.mu.Unlock()

	ranDecode := false
	e.once.Do(func() {
		ranDecode = true
		var buf bytes.Buffer
		if err := decoder.Decode(ctx, &buf); err != nil {
			e.err = fmt.Errorf("codec: decode %q at %d: %w", parent.Path(), position, err)
			return
		}
		e.input = fsinput.FromBytes(decodedPath, parent.Order(), buf.Bytes())
		c.log.Debug("decode cache miss", map[string]any{
			"parent": parent.Path(), "position": position, "decoder": decoder.ID(), "bytes": buf.Len(),
		})
	})

	if !ranDecode && e.err == nil {
		c.log.Debug("decode cache hit", map[string]any{
			"parent": parent.Path(), "position": position, "decoder": decoder.ID(),
		})
	}
	return e.input, e.err
}
