package formats

import "formatscan/internal/spec"

// truncatedStructFormat grounds scenario S4: a single 16-byte raw field
// against an input shorter than that. The field's own read fails outright
// before anything is recorded, so the frozen root ends up with end==start
// and no children — there is no partial prefix to retain because nothing
// was successfully consumed.
var truncatedStructFormat = &format{
	name:  "truncated fixture",
	order: bigEndian,
	root: spec.Struct("truncated fixture",
		spec.Raw("body", 16),
	),
}
