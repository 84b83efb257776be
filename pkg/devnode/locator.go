package devnode

import (
	"errors"
	"log/slog"

	"github.com/Microsoft/go-winio/pkg/guid"

	"github.com/joshuapare/pnpkit/internal/format"
	"github.com/joshuapare/pnpkit/internal/logger"
	"github.com/joshuapare/pnpkit/pkg/devpkey"
	"github.com/joshuapare/pnpkit/pkg/devprop"
	"github.com/joshuapare/pnpkit/pkg/types"
)

// Locator resolves identifiers to nodes.
type Locator struct {
	platform Platform
	log      *slog.Logger
}

// NewLocator creates a Locator. Without WithPlatform it talks to the running
// system's configuration manager.
func NewLocator(opts ...Option) *Locator {
	l := &Locator{}
	for _, opt := range opts {
		opt(l)
	}
	if l.platform == nil {
		l.platform = nativePlatform()
	}
	return l
}

// Platform returns the native boundary used by l.
func (l *Locator) Platform() Platform { return l.platform }

func (l *Locator) logger() *slog.Logger { return logger.Or(l.log) }

// ResolveByInstanceID locates a node by its instance identifier and reads its
// canonical device identifier.
//
// Under SearchNormal only configured nodes are found; SearchPhantom also
// finds nodes that are known but not present, and SearchCancelRemove finds
// nodes that are being removed. A node that does not match fails with
// types.ErrDeviceNotFound.
func (l *Locator) ResolveByInstanceID(instanceID string, mode SearchMode) (*Node, error) {
	h, ret := l.platform.LocateNode(instanceID, mode)
	l.logger().Debug("locate node", "instance", instanceID, "mode", mode, "ret", ret)
	switch ret {
	case types.CR_SUCCESS:
	case types.CR_NO_SUCH_DEVNODE, types.CR_INVALID_DEVICE_ID, types.CR_NO_SUCH_VALUE:
		return nil, types.NotFound(instanceID, mode)
	default:
		return nil, types.PlatformCall("CM_Locate_DevNode", ret)
	}

	deviceID, err := l.deviceID(h)
	if err != nil {
		return nil, err
	}
	return &Node{
		handle:     h,
		instanceID: instanceID,
		deviceID:   deviceID,
		loc:        l,
	}, nil
}

// InstanceIDFromInterfaceID reads the instance identifier of the device that
// exposes the interface path.
func (l *Locator) InstanceIDFromInterfaceID(path string) (string, error) {
	v, err := fetchProperty("CM_Get_Device_Interface_Property", func(buf []byte) (devprop.Type, int, types.ConfigRet) {
		return l.platform.InterfaceProperty(path, devpkey.InstanceID, buf)
	})
	if err != nil {
		if isMissing(err) {
			return "", types.NotFound(path, SearchNormal)
		}
		return "", err
	}
	if v.IsAbsent() {
		return "", types.NotFound(path, SearchNormal)
	}
	return v.Text()
}

// ResolveByInterfaceID resolves an interface path (symbolic link) to the node
// exposing it. The instance identifier read from the interface is then
// located under mode.
func (l *Locator) ResolveByInterfaceID(path string, mode SearchMode) (*Node, error) {
	instanceID, err := l.InstanceIDFromInterfaceID(path)
	if err != nil {
		return nil, err
	}
	l.logger().Debug("interface resolved", "path", path, "instance", instanceID)
	return l.ResolveByInstanceID(instanceID, mode)
}

// maxListAttempts bounds the size-then-fetch cycles of Interfaces.
const maxListAttempts = 3

// Interfaces lists the interface paths registered for class. With
// presentOnly, only interfaces of present devices are returned. A list that
// keeps outgrowing its buffer fails with CR_BUFFER_SMALL after
// maxListAttempts fetches.
func (l *Locator) Interfaces(class guid.GUID, presentOnly bool) ([]string, error) {
	flags := interfaceListAll
	if presentOnly {
		flags = interfaceListActive
	}
	// The list can grow between the size query and the fetch.
	for attempt := 1; ; attempt++ {
		n, ret := l.platform.InterfaceListSize(class, flags)
		if ret != types.CR_SUCCESS {
			return nil, types.PlatformCall("CM_Get_Device_Interface_List_Size", ret)
		}
		buf := devprop.AcquireBuffer(n * 2)
		ret = l.platform.InterfaceList(class, buf.Bytes(), flags)
		switch ret {
		case types.CR_SUCCESS:
			paths, err := format.DecodeMultiString(buf.Bytes())
			buf.Release()
			if err != nil {
				return nil, types.PlatformErr("CM_Get_Device_Interface_List", err)
			}
			return paths, nil
		case types.CR_BUFFER_SMALL:
			buf.Release()
			if attempt < maxListAttempts {
				l.logger().Debug("interface list grew, retrying", "class", class, "attempt", attempt)
				continue
			}
			return nil, types.PlatformCall("CM_Get_Device_Interface_List", ret)
		default:
			buf.Release()
			return nil, types.PlatformCall("CM_Get_Device_Interface_List", ret)
		}
	}
}

func (l *Locator) deviceID(h Handle) (string, error) {
	n, ret := l.platform.DeviceIDSize(h)
	if ret != types.CR_SUCCESS {
		return "", types.PlatformCall("CM_Get_Device_ID_Size", ret)
	}
	buf := devprop.AcquireBuffer((n + 1) * 2)
	defer buf.Release()
	if ret := l.platform.DeviceID(h, buf.Bytes()); ret != types.CR_SUCCESS {
		return "", types.PlatformCall("CM_Get_Device_ID", ret)
	}
	id, err := format.DecodeUTF16(buf.Bytes())
	if err != nil {
		return "", types.PlatformErr("CM_Get_Device_ID", err)
	}
	return id, nil
}

// fetchProperty runs the size-then-fetch protocol against get. A property
// that is not set decodes to an absent value.
func fetchProperty(call string, get func(buf []byte) (devprop.Type, int, types.ConfigRet)) (devprop.Value, error) {
	typ, size, ret := get(nil)
	switch ret {
	case types.CR_BUFFER_SMALL:
	case types.CR_SUCCESS:
		return devprop.Decode(typ, nil)
	case types.CR_NO_SUCH_VALUE:
		return devprop.Absent(), nil
	default:
		return devprop.Absent(), types.PlatformCall(call, ret)
	}

	buf := devprop.AcquireBuffer(size)
	defer buf.Release()
	typ, size, ret = get(buf.Bytes())
	switch ret {
	case types.CR_SUCCESS:
	case types.CR_NO_SUCH_VALUE:
		return devprop.Absent(), nil
	default:
		return devprop.Absent(), types.PlatformCall(call, ret)
	}
	if size > buf.Len() {
		size = buf.Len()
	}
	return devprop.Decode(typ, buf.Bytes()[:size])
}

// isMissing reports whether err is a platform failure meaning the target
// itself does not exist.
func isMissing(err error) bool {
	var e *types.Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Code {
	case types.CR_NO_SUCH_DEVICE_INTERFACE, types.CR_NO_SUCH_DEVNODE, types.CR_INVALID_DEVICE_ID:
		return true
	}
	return false
}
