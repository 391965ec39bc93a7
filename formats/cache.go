package formats

import (
	"formatscan/internal/codec"
	"formatscan/internal/telemetry"
)

// sharedCache is the decode cache every built-in encoded-section fixture
// shares; a single process-wide cache is appropriate here since all of
// these formats decode distinct, independently-identified inputs.
var sharedCache = codec.NewMemoCache(telemetry.Noop())
