package devprop

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Microsoft/go-winio/pkg/guid"

	"github.com/joshuapare/pnpkit/internal/format"
)

// keySize is the wire size of a DEVPROPKEY: fmtid GUID followed by a uint32 pid.
const keySize = format.GUIDSize + 4

// Key identifies a device property: a category GUID, a discriminator within
// the category and the statically declared value type.
type Key struct {
	FmtID guid.GUID
	PID   uint32
	Type  Type
}

// NewKey builds a key from its GUID string form.
func NewKey(fmtid string, pid uint32, typ Type) (Key, error) {
	g, err := guid.FromString(strings.Trim(fmtid, "{}"))
	if err != nil {
		return Key{}, fmt.Errorf("devprop: bad fmtid %q: %w", fmtid, err)
	}
	return Key{FmtID: g, PID: pid, Type: typ}, nil
}

// MustKey is NewKey for package-level tables; it panics on a malformed GUID.
func MustKey(fmtid string, pid uint32, typ Type) Key {
	k, err := NewKey(fmtid, pid, typ)
	if err != nil {
		panic(err)
	}
	return k
}

// ParseKey parses the "{fmtid} pid" form produced by Key.String.
func ParseKey(s string, typ Type) (Key, error) {
	id, pid, ok := strings.Cut(strings.TrimSpace(s), " ")
	if !ok {
		return Key{}, fmt.Errorf("devprop: key %q: want \"{fmtid} pid\"", s)
	}
	n, err := strconv.ParseUint(strings.TrimSpace(pid), 10, 32)
	if err != nil {
		return Key{}, fmt.Errorf("devprop: key %q: %w", s, err)
	}
	return NewKey(id, uint32(n), typ)
}

// Kind returns the declared kind. ok is false when the declared type has no
// conversion.
func (k Key) Kind() (Kind, bool) { return k.Type.Kind() }

// WithType returns a copy of k declaring typ.
func (k Key) WithType(typ Type) Key {
	k.Type = typ
	return k
}

// SameProperty reports whether k and o name the same property, ignoring the
// declared type.
func (k Key) SameProperty(o Key) bool {
	return k.FmtID == o.FmtID && k.PID == o.PID
}

// String renders the key as "{fmtid} pid".
func (k Key) String() string {
	return fmt.Sprintf("{%s} %d", k.FmtID, k.PID)
}

func readKey(b []byte) Key {
	return Key{FmtID: format.ReadGUID(b, 0), PID: format.ReadU32(b, format.GUIDSize)}
}

func putKey(b []byte, k Key) {
	format.PutGUID(b, 0, k.FmtID)
	format.PutU32(b, format.GUIDSize, k.PID)
}
