package formats

import "encoding/binary"

var (
	bigEndian    = binary.BigEndian
	littleEndian = binary.LittleEndian
)
