// Package devnode resolves device-tree nodes and operates on them.
//
// # Overview
//
// A Locator maps an instance identifier (e.g. `ROOT\SYSTEM\0000`) or an
// interface path (a symbolic link) to a *Node: an opaque handle plus the
// node's canonical instance and device identifiers. The handle is only valid
// for the current generation of the device tree; once the node is removed or
// reconfigured, resolve it again.
//
//	loc := devnode.NewLocator()
//	n, err := loc.ResolveByInstanceID(`USB\VID_045E&PID_028E\1`, devnode.SearchNormal)
//	if errors.Is(err, types.ErrDeviceNotFound) {
//	    // not configured; try devnode.SearchPhantom to see non-present nodes
//	}
//
// # Properties
//
// Property reads go through the devprop codec. The requested kind is checked
// against the key's declared type before anything reaches the platform:
//
//	desc, ok, err := devnode.Get[string](n, devpkey.DeviceDesc)
//	ids, ok, err := devnode.Get[[]string](n, devpkey.HardwareIDs)
//	_, _, err = devnode.Get[uint32](n, devpkey.DeviceDesc) // TypeMismatch, no native call
//
// ok is false when the property is not set; that is not an error.
//
// # Tree Operations
//
// Restart removes the subtree without restarting it and then sets the node up
// again. Remove only removes. Both block until the platform call returns.
//
// # Virtual Origin
//
// IsVirtualOrigin walks the parent chain up to the tree root and reports
// whether the last node below the root was enumerated by software
// (`ROOT\SYSTEM`, `ROOT\USB`). An exclusion predicate stops the walk early
// with a negative answer.
//
// # Identity
//
// Two nodes are the same device when their device identifiers match
// case-insensitively; Equal, Hash and Key all follow that rule and ignore the
// instance identifier.
//
// # Thread Safety
//
// Locator and Node hold no mutable state and may be used from multiple
// goroutines. Each call blocks on the platform for its duration.
package devnode
