//go:build windows

package devnode

import (
	"unsafe"

	"github.com/Microsoft/go-winio/pkg/guid"
	"golang.org/x/sys/windows"

	"github.com/joshuapare/pnpkit/pkg/devprop"
	"github.com/joshuapare/pnpkit/pkg/types"
)

var (
	modcfgmgr32 = windows.NewLazySystemDLL("cfgmgr32.dll")

	procCMLocateDevNodeW              = modcfgmgr32.NewProc("CM_Locate_DevNodeW")
	procCMGetDeviceIDSize             = modcfgmgr32.NewProc("CM_Get_Device_ID_Size")
	procCMGetDeviceIDW                = modcfgmgr32.NewProc("CM_Get_Device_IDW")
	procCMGetDevNodePropertyW         = modcfgmgr32.NewProc("CM_Get_DevNode_PropertyW")
	procCMSetDevNodePropertyW         = modcfgmgr32.NewProc("CM_Set_DevNode_PropertyW")
	procCMGetDeviceInterfacePropertyW = modcfgmgr32.NewProc("CM_Get_Device_Interface_PropertyW")
	procCMQueryAndRemoveSubTreeW      = modcfgmgr32.NewProc("CM_Query_And_Remove_SubTreeW")
	procCMSetupDevNode                = modcfgmgr32.NewProc("CM_Setup_DevNode")
	procCMDisableDevNode              = modcfgmgr32.NewProc("CM_Disable_DevNode")
	procCMEnableDevNode               = modcfgmgr32.NewProc("CM_Enable_DevNode")
	procCMGetDevNodeStatus            = modcfgmgr32.NewProc("CM_Get_DevNode_Status")
	procCMGetDeviceInterfaceListSizeW = modcfgmgr32.NewProc("CM_Get_Device_Interface_List_SizeW")
	procCMGetDeviceInterfaceListW     = modcfgmgr32.NewProc("CM_Get_Device_Interface_ListW")
)

// vetoNameLength is MAX_PATH.
const vetoNameLength = 260

// devPropKey mirrors DEVPROPKEY.
type devPropKey struct {
	fmtid guid.GUID
	pid   uint32
}

func nativeKey(k devprop.Key) *devPropKey {
	return &devPropKey{fmtid: k.FmtID, pid: k.PID}
}

// cmPlatform calls cfgmgr32 directly.
type cmPlatform struct{}

func nativePlatform() Platform { return cmPlatform{} }

func bufPtr(b []byte) *byte {
	if len(b) == 0 {
		return nil
	}
	return &b[0]
}

func utf16Ptr(s string) (*uint16, types.ConfigRet) {
	if s == "" {
		return nil, types.CR_SUCCESS
	}
	p, err := windows.UTF16PtrFromString(s)
	if err != nil {
		return nil, types.CR_INVALID_POINTER
	}
	return p, types.CR_SUCCESS
}

func (cmPlatform) LocateNode(instanceID string, mode SearchMode) (Handle, types.ConfigRet) {
	id, ret := utf16Ptr(instanceID)
	if ret != types.CR_SUCCESS {
		return 0, types.CR_INVALID_DEVICE_ID
	}
	var h uint32
	r, _, _ := procCMLocateDevNodeW.Call(
		uintptr(unsafe.Pointer(&h)),
		uintptr(unsafe.Pointer(id)),
		uintptr(mode),
	)
	return Handle(h), types.ConfigRet(r)
}

func (cmPlatform) DeviceIDSize(h Handle) (int, types.ConfigRet) {
	var n uint32
	r, _, _ := procCMGetDeviceIDSize.Call(uintptr(unsafe.Pointer(&n)), uintptr(h), 0)
	return int(n), types.ConfigRet(r)
}

func (cmPlatform) DeviceID(h Handle, buf []byte) types.ConfigRet {
	r, _, _ := procCMGetDeviceIDW.Call(
		uintptr(h),
		uintptr(unsafe.Pointer(bufPtr(buf))),
		uintptr(len(buf)/2),
		0,
	)
	return types.ConfigRet(r)
}

func (cmPlatform) NodeProperty(h Handle, key devprop.Key, buf []byte) (devprop.Type, int, types.ConfigRet) {
	var typ uint32
	size := uint32(len(buf))
	r, _, _ := procCMGetDevNodePropertyW.Call(
		uintptr(h),
		uintptr(unsafe.Pointer(nativeKey(key))),
		uintptr(unsafe.Pointer(&typ)),
		uintptr(unsafe.Pointer(bufPtr(buf))),
		uintptr(unsafe.Pointer(&size)),
		0,
	)
	return devprop.Type(typ), int(size), types.ConfigRet(r)
}

func (cmPlatform) SetNodeProperty(h Handle, key devprop.Key, typ devprop.Type, buf []byte) types.ConfigRet {
	r, _, _ := procCMSetDevNodePropertyW.Call(
		uintptr(h),
		uintptr(unsafe.Pointer(nativeKey(key))),
		uintptr(typ),
		uintptr(unsafe.Pointer(bufPtr(buf))),
		uintptr(len(buf)),
		0,
	)
	return types.ConfigRet(r)
}

func (cmPlatform) InterfaceProperty(path string, key devprop.Key, buf []byte) (devprop.Type, int, types.ConfigRet) {
	p, ret := utf16Ptr(path)
	if ret != types.CR_SUCCESS || p == nil {
		return devprop.TypeEmpty, 0, types.CR_NO_SUCH_DEVICE_INTERFACE
	}
	var typ uint32
	size := uint32(len(buf))
	r, _, _ := procCMGetDeviceInterfacePropertyW.Call(
		uintptr(unsafe.Pointer(p)),
		uintptr(unsafe.Pointer(nativeKey(key))),
		uintptr(unsafe.Pointer(&typ)),
		uintptr(unsafe.Pointer(bufPtr(buf))),
		uintptr(unsafe.Pointer(&size)),
		0,
	)
	return devprop.Type(typ), int(size), types.ConfigRet(r)
}

func (cmPlatform) QueryAndRemoveSubtree(h Handle, flags uint32) (Veto, types.ConfigRet) {
	var vetoType uint32
	name := make([]uint16, vetoNameLength)
	r, _, _ := procCMQueryAndRemoveSubTreeW.Call(
		uintptr(h),
		uintptr(unsafe.Pointer(&vetoType)),
		uintptr(unsafe.Pointer(&name[0])),
		uintptr(len(name)),
		uintptr(flags),
	)
	return Veto{Type: vetoType, Name: windows.UTF16ToString(name)}, types.ConfigRet(r)
}

func (cmPlatform) SetupNode(h Handle, flags uint32) types.ConfigRet {
	r, _, _ := procCMSetupDevNode.Call(uintptr(h), uintptr(flags))
	return types.ConfigRet(r)
}

func (cmPlatform) DisableNode(h Handle, flags uint32) types.ConfigRet {
	r, _, _ := procCMDisableDevNode.Call(uintptr(h), uintptr(flags))
	return types.ConfigRet(r)
}

func (cmPlatform) EnableNode(h Handle, flags uint32) types.ConfigRet {
	r, _, _ := procCMEnableDevNode.Call(uintptr(h), uintptr(flags))
	return types.ConfigRet(r)
}

func (cmPlatform) NodeStatus(h Handle) (uint32, uint32, types.ConfigRet) {
	var status, problem uint32
	r, _, _ := procCMGetDevNodeStatus.Call(
		uintptr(unsafe.Pointer(&status)),
		uintptr(unsafe.Pointer(&problem)),
		uintptr(h),
		0,
	)
	return status, problem, types.ConfigRet(r)
}

func (cmPlatform) InterfaceListSize(class guid.GUID, flags uint32) (int, types.ConfigRet) {
	var n uint32
	r, _, _ := procCMGetDeviceInterfaceListSizeW.Call(
		uintptr(unsafe.Pointer(&n)),
		uintptr(unsafe.Pointer(&class)),
		0,
		uintptr(flags),
	)
	return int(n), types.ConfigRet(r)
}

func (cmPlatform) InterfaceList(class guid.GUID, buf []byte, flags uint32) types.ConfigRet {
	r, _, _ := procCMGetDeviceInterfaceListW.Call(
		uintptr(unsafe.Pointer(&class)),
		0,
		uintptr(unsafe.Pointer(bufPtr(buf))),
		uintptr(len(buf)/2),
		uintptr(flags),
	)
	return types.ConfigRet(r)
}
