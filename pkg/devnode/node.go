package devnode

import (
	"fmt"
	"hash/fnv"

	"github.com/joshuapare/pnpkit/pkg/devpkey"
	"github.com/joshuapare/pnpkit/pkg/devprop"
	"github.com/joshuapare/pnpkit/pkg/types"
)

// Node is a resolved device node. The handle is valid only for the tree
// generation it was resolved in.
type Node struct {
	handle     Handle
	instanceID string
	deviceID   string
	loc        *Locator
}

// Handle returns the native handle.
func (n *Node) Handle() Handle { return n.handle }

// InstanceID returns the identifier the node was resolved with.
func (n *Node) InstanceID() string { return n.instanceID }

// DeviceID returns the canonical identifier reported by the platform.
func (n *Node) DeviceID() string { return n.deviceID }

func (n *Node) String() string { return n.instanceID }

// Property reads key and decodes whatever type the platform reports for it.
// A property that is not set yields the absent value and no error.
func (n *Node) Property(key devprop.Key) (devprop.Value, error) {
	p := n.loc.platform
	v, err := fetchProperty("CM_Get_DevNode_Property", func(buf []byte) (devprop.Type, int, types.ConfigRet) {
		return p.NodeProperty(n.handle, key, buf)
	})
	n.loc.logger().Debug("get property", "device", n.deviceID, "key", key, "kind", v.Kind(), "err", err)
	return v, err
}

// PropertyAs reads key as want. The key's declared type is checked before
// the platform is called; a value reported with a different type than
// requested is also a TypeMismatch.
func (n *Node) PropertyAs(key devprop.Key, want devprop.Kind) (devprop.Value, error) {
	if err := devprop.CheckKind(key, want); err != nil {
		return devprop.Absent(), err
	}
	v, err := n.Property(key)
	if err != nil || v.IsAbsent() {
		return v, err
	}
	if v.Kind() != want {
		return devprop.Absent(), types.TypeMismatch(v.Kind(), want)
	}
	return v, nil
}

// SetProperty writes v under key. The value's kind must match the key's
// declared type.
func (n *Node) SetProperty(key devprop.Key, v devprop.Value) error {
	if err := devprop.CheckKind(key, v.Kind()); err != nil {
		return err
	}
	typ, buf, err := devprop.Encode(v)
	if err != nil {
		return err
	}
	ret := n.loc.platform.SetNodeProperty(n.handle, key, typ, buf)
	n.loc.logger().Debug("set property", "device", n.deviceID, "key", key, "type", typ, "ret", ret)
	if ret != types.CR_SUCCESS {
		return types.PlatformCall("CM_Set_DevNode_Property", ret)
	}
	return nil
}

// Get reads key as T. ok is false when the property is not set.
func Get[T devprop.Scalar](n *Node, key devprop.Key) (value T, ok bool, err error) {
	v, err := n.PropertyAs(key, devprop.KindOf[T]())
	if err != nil || v.IsAbsent() {
		return value, false, err
	}
	value, err = devprop.As[T](v)
	return value, err == nil, err
}

// Set writes x under key.
func Set[T devprop.Scalar](n *Node, key devprop.Key, x T) error {
	return n.SetProperty(key, devprop.Of(x))
}

// Parent resolves the node's parent under mode. It fails with
// types.ErrDeviceNotFound when the node has no parent property.
func (n *Node) Parent(mode SearchMode) (*Node, error) {
	id, ok, err := Get[string](n, devpkey.Parent)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, types.NotFound(n.deviceID+" (parent)", mode)
	}
	return n.loc.ResolveByInstanceID(id, mode)
}

// Restart removes the node's subtree without restarting it, then sets the
// node up again. A node that vanished before the setup step is not an error.
func (n *Node) Restart() error {
	if err := n.removeSubtree(); err != nil {
		return err
	}
	ret := n.loc.platform.SetupNode(n.handle, setupDevNodeReady)
	n.loc.logger().Debug("setup node", "device", n.deviceID, "ret", ret)
	switch ret {
	case types.CR_SUCCESS, types.CR_NO_SUCH_DEVNODE:
		return nil
	}
	return types.PlatformCall("CM_Setup_DevNode", ret)
}

// Remove removes the node's subtree without restarting it.
func (n *Node) Remove() error {
	return n.removeSubtree()
}

func (n *Node) removeSubtree() error {
	veto, ret := n.loc.platform.QueryAndRemoveSubtree(n.handle, removeNoRestart)
	n.loc.logger().Debug("remove subtree", "device", n.deviceID, "ret", ret, "veto", veto.Type)
	if ret == types.CR_SUCCESS {
		return nil
	}
	if ret == types.CR_REMOVE_VETOED {
		return &types.Error{
			Kind: types.ErrKindPlatform,
			Msg:  fmt.Sprintf("removal of %s vetoed by '%s' (type %d)", n.deviceID, veto.Name, veto.Type),
			Code: ret,
		}
	}
	return types.PlatformCall("CM_Query_And_Remove_SubTree", ret)
}

// Disable disables the node.
func (n *Node) Disable() error {
	if ret := n.loc.platform.DisableNode(n.handle, disableUINotOK); ret != types.CR_SUCCESS {
		return types.PlatformCall("CM_Disable_DevNode", ret)
	}
	return nil
}

// Enable enables a disabled node.
func (n *Node) Enable() error {
	if ret := n.loc.platform.EnableNode(n.handle, 0); ret != types.CR_SUCCESS {
		return types.PlatformCall("CM_Enable_DevNode", ret)
	}
	return nil
}

// Status reports the node's DN_* status bits and problem code.
func (n *Node) Status() (Status, error) {
	bits, problem, ret := n.loc.platform.NodeStatus(n.handle)
	if ret != types.CR_SUCCESS {
		return Status{}, types.PlatformCall("CM_Get_DevNode_Status", ret)
	}
	return Status{Flags: bits, Problem: problem}, nil
}

// Equal reports whether n and o are the same device. Device identifiers
// compare case-insensitively; instance identifiers are ignored.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	return equalFold(n.deviceID, o.deviceID)
}

// Key returns a case-folded device identifier suitable as a map key.
// Nodes are Equal exactly when their keys are equal.
func (n *Node) Key() string { return foldKey(n.deviceID) }

// Hash returns a hash of the device identifier consistent with Equal.
func (n *Node) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(n.Key()))
	return h.Sum64()
}

// Status is the configuration state of a node.
type Status struct {
	Flags   uint32
	Problem uint32
}

// DN_* status bits.
const (
	StatusRootEnumerated uint32 = 0x00000001
	StatusDriverLoaded   uint32 = 0x00000002
	StatusStarted        uint32 = 0x00000008
	StatusDisableable    uint32 = 0x00002000
	StatusRemovable      uint32 = 0x00004000
	StatusHasProblem     uint32 = 0x00000400
)

// problemDisabled is CM_PROB_DISABLED.
const problemDisabled = 22

// Started reports whether the node is started.
func (s Status) Started() bool { return s.Flags&StatusStarted != 0 }

// Disabled reports whether the node is disabled.
func (s Status) Disabled() bool { return s.Flags&StatusHasProblem != 0 && s.Problem == problemDisabled }

// HasProblem reports whether the node has a problem code set.
func (s Status) HasProblem() bool { return s.Flags&StatusHasProblem != 0 }
