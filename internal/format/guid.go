package format

import "github.com/Microsoft/go-winio/pkg/guid"

// GUIDSize is the wire size of a GUID.
const GUIDSize = 16

// ReadGUID copies the 16-byte Windows GUID layout at off verbatim.
func ReadGUID(b []byte, off int) guid.GUID {
	var a [GUIDSize]byte
	copy(a[:], b[off:off+GUIDSize])
	return guid.FromWindowsArray(a)
}

// PutGUID writes g in Windows layout at off.
func PutGUID(b []byte, off int, g guid.GUID) {
	a := g.ToWindowsArray()
	copy(b[off:off+GUIDSize], a[:])
}
