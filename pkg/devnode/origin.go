package devnode

import (
	"errors"
	"strings"

	"github.com/joshuapare/pnpkit/pkg/devpkey"
	"github.com/joshuapare/pnpkit/pkg/types"
)

// RootID is the instance identifier of the tree root.
const RootID = `HTREE\ROOT\0`

// VirtualPrefixes are the instance identifier prefixes of software-enumerated
// buses.
var VirtualPrefixes = []string{`ROOT\SYSTEM`, `ROOT\USB`}

// ExcludeFunc stops an origin walk at the node it returns true for.
type ExcludeFunc func(*Node) bool

// IsVirtual reports whether instanceID starts with one of VirtualPrefixes,
// ignoring case.
func IsVirtual(instanceID string) bool {
	for _, p := range VirtualPrefixes {
		if len(instanceID) >= len(p) && strings.EqualFold(instanceID[:len(p)], p) {
			return true
		}
	}
	return false
}

// ExcludePrefix returns an ExcludeFunc matching nodes whose instance
// identifier starts with any of prefixes, ignoring case.
func ExcludePrefix(prefixes ...string) ExcludeFunc {
	return func(n *Node) bool {
		for _, p := range prefixes {
			id := n.InstanceID()
			if len(id) >= len(p) && strings.EqualFold(id[:len(p)], p) {
				return true
			}
		}
		return false
	}
}

// IsVirtualOrigin walks from n toward the tree root and reports whether the
// last node below the root is software-enumerated. When exclude matches any
// node on the way (n included) the answer is false. A chain that ends
// without reaching the root, or loops, is not virtual.
func (n *Node) IsVirtualOrigin(exclude ExcludeFunc) (bool, error) {
	top, err := n.walk(exclude, nil)
	if err != nil || top == nil {
		return false, err
	}
	return IsVirtual(top.InstanceID()), nil
}

// Ancestors returns the chain from n up to the last node below the root,
// n first. Nodes are resolved in phantom mode so a chain through
// non-present parents is still reported.
func (n *Node) Ancestors() ([]*Node, error) {
	var chain []*Node
	_, err := n.walk(nil, func(cur *Node) { chain = append(chain, cur) })
	return chain, err
}

// walk follows parent links until the parent is the root, returning the
// node directly below it. It returns nil when exclude matches, when a
// parent cannot be resolved, or when a node repeats.
func (n *Node) walk(exclude ExcludeFunc, visit func(*Node)) (*Node, error) {
	seen := make(map[string]struct{})
	cur := n
	for {
		key := foldKey(cur.instanceID)
		if _, dup := seen[key]; dup {
			n.loc.logger().Warn("device tree loops", "device", n.deviceID, "at", cur.instanceID)
			return nil, nil
		}
		seen[key] = struct{}{}
		if visit != nil {
			visit(cur)
		}
		if exclude != nil && exclude(cur) {
			n.loc.logger().Debug("origin walk excluded", "device", n.deviceID, "at", cur.instanceID)
			return nil, nil
		}

		parentID, ok, err := Get[string](cur, devpkey.Parent)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		if strings.EqualFold(parentID, RootID) {
			return cur, nil
		}
		parent, err := n.loc.ResolveByInstanceID(parentID, SearchPhantom)
		if err != nil {
			if errors.Is(err, types.ErrDeviceNotFound) {
				return nil, nil
			}
			return nil, err
		}
		cur = parent
	}
}
