//go:build !windows

package devnode

import (
	"github.com/Microsoft/go-winio/pkg/guid"

	"github.com/joshuapare/pnpkit/pkg/devprop"
	"github.com/joshuapare/pnpkit/pkg/types"
)

// unavailablePlatform fails every call; the configuration manager exists
// only on Windows.
type unavailablePlatform struct{}

func nativePlatform() Platform { return unavailablePlatform{} }

const unavailable = types.CR_FAILURE

func (unavailablePlatform) LocateNode(string, SearchMode) (Handle, types.ConfigRet) {
	return 0, unavailable
}

func (unavailablePlatform) DeviceIDSize(Handle) (int, types.ConfigRet) { return 0, unavailable }

func (unavailablePlatform) DeviceID(Handle, []byte) types.ConfigRet { return unavailable }

func (unavailablePlatform) NodeProperty(Handle, devprop.Key, []byte) (devprop.Type, int, types.ConfigRet) {
	return devprop.TypeEmpty, 0, unavailable
}

func (unavailablePlatform) SetNodeProperty(Handle, devprop.Key, devprop.Type, []byte) types.ConfigRet {
	return unavailable
}

func (unavailablePlatform) InterfaceProperty(string, devprop.Key, []byte) (devprop.Type, int, types.ConfigRet) {
	return devprop.TypeEmpty, 0, unavailable
}

func (unavailablePlatform) QueryAndRemoveSubtree(Handle, uint32) (Veto, types.ConfigRet) {
	return Veto{}, unavailable
}

func (unavailablePlatform) SetupNode(Handle, uint32) types.ConfigRet   { return unavailable }
func (unavailablePlatform) DisableNode(Handle, uint32) types.ConfigRet { return unavailable }
func (unavailablePlatform) EnableNode(Handle, uint32) types.ConfigRet  { return unavailable }

func (unavailablePlatform) NodeStatus(Handle) (uint32, uint32, types.ConfigRet) {
	return 0, 0, unavailable
}

func (unavailablePlatform) InterfaceListSize(guid.GUID, uint32) (int, types.ConfigRet) {
	return 0, unavailable
}

func (unavailablePlatform) InterfaceList(guid.GUID, []byte, uint32) types.ConfigRet {
	return unavailable
}
