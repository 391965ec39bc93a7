package formats

import "formatscan/internal/spec"

// taggedUnionFormat grounds scenario S5: a union of two 4-byte
// alternatives selected by a leading tag byte. 0x01 selects the first
// alternative, 0x02 the second; any other leading byte matches neither,
// and since UnionSpec.IsResult() is false, decode sets a fatal status
// directly on the enclosing struct's own builder rather than opening an
// (empty) child for the union itself.
var taggedUnionFormat = &format{
	name:  "tagged union fixture",
	order: bigEndian,
	root: spec.Struct("tagged union fixture",
		spec.Union("variant",
			spec.Struct("variant A",
				spec.NewUint8("tag").Final(uint8(0x01)),
				spec.Raw("payload", 3),
			),
			spec.Struct("variant B",
				spec.NewUint8("tag").Final(uint8(0x02)),
				spec.Raw("payload", 3),
			),
		),
	),
}
