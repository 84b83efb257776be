package devnotify

import (
	"fmt"

	"github.com/Microsoft/go-winio/pkg/guid"

	"github.com/joshuapare/pnpkit/internal/format"
)

// EventKind distinguishes arrivals from removals.
type EventKind uint8

const (
	Arrival EventKind = iota + 1
	Removal
)

func (k EventKind) String() string {
	switch k {
	case Arrival:
		return "arrival"
	case Removal:
		return "removal"
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Event is one device interface notification.
type Event struct {
	Kind EventKind
	// Path is the interface path (symbolic link) of the device.
	Path  string
	Class guid.GUID
}

func (e Event) String() string { return e.Kind.String() + " " + e.Path }

// WM_DEVICECHANGE wparam values and DEV_BROADCAST_HDR layout.
const (
	dbtDeviceArrival        = 0x8000
	dbtDeviceRemoveComplete = 0x8004

	dbtDevtypDeviceInterface = 0x00000005

	hdrSizeOff       = 0x00
	hdrDevtypeOff    = 0x04
	ifaceClassOff    = 0x0C
	ifaceNameOff     = 0x1C
	broadcastHdrSize = 0x0C
)

// ParseBroadcast decodes a WM_DEVICECHANGE notification. ok is false for
// event types other than arrival and removal-complete and for headers that
// do not describe a device interface.
func ParseBroadcast(wparam uintptr, data []byte) (ev Event, ok bool) {
	switch wparam {
	case dbtDeviceArrival:
		ev.Kind = Arrival
	case dbtDeviceRemoveComplete:
		ev.Kind = Removal
	default:
		return Event{}, false
	}
	if len(data) < broadcastHdrSize {
		return Event{}, false
	}
	if format.ReadU32(data, hdrDevtypeOff) != dbtDevtypDeviceInterface {
		return Event{}, false
	}
	if size := int(format.ReadU32(data, hdrSizeOff)); size < len(data) {
		data = data[:size]
	}
	if len(data) < ifaceNameOff {
		return Event{}, false
	}
	ev.Class = format.ReadGUID(data, ifaceClassOff)
	name := data[ifaceNameOff:]
	name = name[:len(name)&^1]
	path, err := format.DecodeUTF16(name)
	if err != nil {
		return Event{}, false
	}
	ev.Path = path
	return ev, true
}

// EncodeBroadcast builds the WM_DEVICECHANGE wparam and a
// DEV_BROADCAST_DEVICEINTERFACE payload for ev.
func EncodeBroadcast(ev Event) (wparam uintptr, data []byte) {
	switch ev.Kind {
	case Arrival:
		wparam = dbtDeviceArrival
	case Removal:
		wparam = dbtDeviceRemoveComplete
	}
	name, _ := format.EncodeUTF16(ev.Path)
	data = make([]byte, ifaceNameOff+len(name))
	format.PutU32(data, hdrSizeOff, uint32(len(data)))
	format.PutU32(data, hdrDevtypeOff, dbtDevtypDeviceInterface)
	format.PutGUID(data, ifaceClassOff, ev.Class)
	copy(data[ifaceNameOff:], name)
	return wparam, data
}
