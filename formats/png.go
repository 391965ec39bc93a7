package formats

import "formatscan/internal/spec"

// pngFormat grounds scenario S1: an 8-byte final-valued magic followed by
// a fixed-size body. matchSize is 108 (8 + 100): every field is fixed
// size, so StructSpec.MatchSize sums all of them.
var pngFormat = &format{
	name:  "PNG",
	order: bigEndian,
	root: spec.Struct("PNG",
		spec.NewUint64("magic").Final(0x89504E470D0A1A0A).Bind(),
		spec.Raw("body", 100),
	),
}
