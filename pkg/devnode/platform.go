package devnode

import (
	"github.com/Microsoft/go-winio/pkg/guid"

	"github.com/joshuapare/pnpkit/pkg/devprop"
	"github.com/joshuapare/pnpkit/pkg/types"
)

// Handle is an opaque device-node handle (DEVINST).
type Handle uint32

// SearchMode aliases types.SearchMode for convenience.
type SearchMode = types.SearchMode

// Search modes (re-exported for convenience).
const (
	SearchNormal       = types.SearchNormal
	SearchPhantom      = types.SearchPhantom
	SearchCancelRemove = types.SearchCancelRemove
)

// Flags passed through to the configuration manager.
const (
	removeNoRestart     uint32 = 0x00000002 // CM_REMOVE_NO_RESTART
	setupDevNodeReady   uint32 = 0x00000000 // CM_SETUP_DEVNODE_READY
	disableUINotOK      uint32 = 0x00000004 // CM_DISABLE_UI_NOT_OK
	interfaceListAll    uint32 = 0x00000001 // CM_GET_DEVICE_INTERFACE_LIST_ALL_DEVICES
	interfaceListActive uint32 = 0x00000000 // CM_GET_DEVICE_INTERFACE_LIST_PRESENT
)

// Veto describes why a removal was refused (PNP_VETO_TYPE and veto name).
type Veto struct {
	Type uint32
	Name string
}

// Platform is the native capability boundary. Every method maps onto one
// configuration manager call and reports its raw return code; interpretation
// is left to the caller.
//
// Property and string getters follow the size-then-fetch protocol: called
// with a nil or short buffer they return CR_BUFFER_SMALL and the required
// size in bytes.
type Platform interface {
	// LocateNode finds the node for an instance identifier.
	LocateNode(instanceID string, mode SearchMode) (Handle, types.ConfigRet)

	// DeviceIDSize returns the device identifier length in UTF-16 code
	// units, excluding the terminator.
	DeviceIDSize(h Handle) (int, types.ConfigRet)

	// DeviceID writes the NUL-terminated UTF-16LE device identifier to buf.
	DeviceID(h Handle, buf []byte) types.ConfigRet

	// NodeProperty reads a node property into buf.
	NodeProperty(h Handle, key devprop.Key, buf []byte) (devprop.Type, int, types.ConfigRet)

	// SetNodeProperty writes a node property.
	SetNodeProperty(h Handle, key devprop.Key, typ devprop.Type, buf []byte) types.ConfigRet

	// InterfaceProperty reads a property of a device interface path into buf.
	InterfaceProperty(path string, key devprop.Key, buf []byte) (devprop.Type, int, types.ConfigRet)

	// QueryAndRemoveSubtree removes the node and its children.
	QueryAndRemoveSubtree(h Handle, flags uint32) (Veto, types.ConfigRet)

	// SetupNode re-enables a node after removal.
	SetupNode(h Handle, flags uint32) types.ConfigRet

	// DisableNode and EnableNode toggle the node's disabled state.
	DisableNode(h Handle, flags uint32) types.ConfigRet
	EnableNode(h Handle, flags uint32) types.ConfigRet

	// NodeStatus returns DN_* status bits and the CM_PROB_* problem number.
	NodeStatus(h Handle) (status, problem uint32, ret types.ConfigRet)

	// InterfaceListSize returns the size in UTF-16 code units of the
	// interface list for class, including terminators.
	InterfaceListSize(class guid.GUID, flags uint32) (int, types.ConfigRet)

	// InterfaceList writes the double-terminated interface list to buf.
	InterfaceList(class guid.GUID, buf []byte, flags uint32) types.ConfigRet
}
