package formats

import "formatscan/internal/spec"

// xrefFormat grounds scenario S6: an attribute at position 0x20 whose
// value is rendered as a reference anchor (writeRefText) rather than
// plain text, letting a viewer jump to the offset it names.
var xrefFormat = &format{
	name:  "xref fixture",
	order: bigEndian,
	root: spec.Struct("xref fixture",
		spec.Raw("header", 0x20),
		spec.XRef32("target", 0),
	),
}
