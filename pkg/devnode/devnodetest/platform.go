// Package devnodetest provides an in-memory device tree implementing
// devnode.Platform for tests.
package devnodetest

import (
	"sort"
	"strings"
	"sync"

	"github.com/Microsoft/go-winio/pkg/guid"

	"github.com/joshuapare/pnpkit/internal/format"
	"github.com/joshuapare/pnpkit/pkg/devnode"
	"github.com/joshuapare/pnpkit/pkg/devpkey"
	"github.com/joshuapare/pnpkit/pkg/devprop"
	"github.com/joshuapare/pnpkit/pkg/types"
)

// Device describes one node of the fake tree.
type Device struct {
	InstanceID string
	// DeviceID defaults to InstanceID.
	DeviceID string
	// Parent is the parent's instance identifier. Empty leaves the parent
	// property unset.
	Parent string
	// Phantom nodes are found only with SearchPhantom.
	Phantom bool
	// Removing nodes are found only with SearchCancelRemove or SearchPhantom.
	Removing bool
	Props    map[devprop.Key]devprop.Value
	// Interfaces maps interface paths exposed by the device to their class.
	Interfaces map[string]guid.GUID

	handle   devnode.Handle
	disabled bool
}

// Platform is a fake configuration manager. The zero value is not usable;
// call New.
type Platform struct {
	mu      sync.Mutex
	devices map[string]*Device
	handles map[devnode.Handle]*Device
	next    devnode.Handle
	calls   []string
	fail    map[string]types.ConfigRet
}

var _ devnode.Platform = (*Platform)(nil)

// New returns a fake tree holding devs.
func New(devs ...*Device) *Platform {
	p := &Platform{
		devices: make(map[string]*Device),
		handles: make(map[devnode.Handle]*Device),
		next:    1,
		fail:    make(map[string]types.ConfigRet),
	}
	for _, d := range devs {
		p.Add(d)
	}
	return p
}

// Add inserts d into the tree.
func (p *Platform) Add(d *Device) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if d.DeviceID == "" {
		d.DeviceID = d.InstanceID
	}
	if d.Props == nil {
		d.Props = make(map[devprop.Key]devprop.Value)
	}
	d.handle = p.next
	p.next++
	p.devices[strings.ToUpper(d.InstanceID)] = d
	p.handles[d.handle] = d
}

// Chain builds a parent chain below the tree root, top first: Chain(a, b, c)
// makes a the root's child and c the leaf.
func Chain(ids ...string) []*Device {
	devs := make([]*Device, len(ids))
	parent := devnode.RootID
	for i, id := range ids {
		devs[i] = &Device{InstanceID: id, Parent: parent}
		parent = id
	}
	return devs
}

// Fail makes the named call return ret until cleared with CR_SUCCESS.
// Names are the Platform method names.
func (p *Platform) Fail(call string, ret types.ConfigRet) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ret == types.CR_SUCCESS {
		delete(p.fail, call)
		return
	}
	p.fail[call] = ret
}

// Calls returns the Platform methods invoked so far, in order.
func (p *Platform) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}

// ResetCalls clears the call log.
func (p *Platform) ResetCalls() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = nil
}

// Device returns the device registered under instanceID.
func (p *Platform) Device(instanceID string) (*Device, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	d, ok := p.devices[strings.ToUpper(instanceID)]
	return d, ok
}

// record logs call and returns an injected failure, if any. Caller holds mu.
func (p *Platform) record(call string) types.ConfigRet {
	p.calls = append(p.calls, call)
	return p.fail[call]
}

func (p *Platform) LocateNode(instanceID string, mode devnode.SearchMode) (devnode.Handle, types.ConfigRet) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ret := p.record("LocateNode"); ret != types.CR_SUCCESS {
		return 0, ret
	}
	d, ok := p.devices[strings.ToUpper(instanceID)]
	if !ok {
		return 0, types.CR_NO_SUCH_DEVNODE
	}
	switch mode {
	case devnode.SearchNormal:
		if d.Phantom || d.Removing {
			return 0, types.CR_NO_SUCH_DEVNODE
		}
	case devnode.SearchCancelRemove:
		if d.Phantom {
			return 0, types.CR_NO_SUCH_DEVNODE
		}
		d.Removing = false
	}
	return d.handle, types.CR_SUCCESS
}

func (p *Platform) DeviceIDSize(h devnode.Handle) (int, types.ConfigRet) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ret := p.record("DeviceIDSize"); ret != types.CR_SUCCESS {
		return 0, ret
	}
	d, ok := p.handles[h]
	if !ok {
		return 0, types.CR_INVALID_DEVNODE
	}
	b, _ := format.EncodeUTF16(d.DeviceID)
	return len(b)/2 - 1, types.CR_SUCCESS
}

func (p *Platform) DeviceID(h devnode.Handle, buf []byte) types.ConfigRet {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ret := p.record("DeviceID"); ret != types.CR_SUCCESS {
		return ret
	}
	d, ok := p.handles[h]
	if !ok {
		return types.CR_INVALID_DEVNODE
	}
	b, _ := format.EncodeUTF16(d.DeviceID)
	if len(buf) < len(b) {
		return types.CR_BUFFER_SMALL
	}
	copy(buf, b)
	return types.CR_SUCCESS
}

// lookup returns the stored value for key. The parent and instance
// properties are derived from the device fields. Caller holds mu.
func lookup(d *Device, key devprop.Key) (devprop.Value, bool) {
	switch {
	case key.SameProperty(devpkey.Parent):
		if d.Parent == "" {
			return devprop.Value{}, false
		}
		return devprop.StringValue(d.Parent), true
	case key.SameProperty(devpkey.InstanceID):
		return devprop.StringValue(d.InstanceID), true
	}
	for k, v := range d.Props {
		if k.SameProperty(key) {
			return v, true
		}
	}
	return devprop.Value{}, false
}

// copyOut applies the size-then-fetch protocol to v.
func copyOut(v devprop.Value, buf []byte) (devprop.Type, int, types.ConfigRet) {
	typ, b, err := devprop.Encode(v)
	if err != nil {
		return devprop.TypeEmpty, 0, types.CR_INVALID_DATA
	}
	if len(buf) < len(b) {
		return typ, len(b), types.CR_BUFFER_SMALL
	}
	copy(buf, b)
	return typ, len(b), types.CR_SUCCESS
}

func (p *Platform) NodeProperty(h devnode.Handle, key devprop.Key, buf []byte) (devprop.Type, int, types.ConfigRet) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ret := p.record("NodeProperty"); ret != types.CR_SUCCESS {
		return devprop.TypeEmpty, 0, ret
	}
	d, ok := p.handles[h]
	if !ok {
		return devprop.TypeEmpty, 0, types.CR_INVALID_DEVNODE
	}
	v, ok := lookup(d, key)
	if !ok {
		return devprop.TypeEmpty, 0, types.CR_NO_SUCH_VALUE
	}
	return copyOut(v, buf)
}

func (p *Platform) SetNodeProperty(h devnode.Handle, key devprop.Key, typ devprop.Type, buf []byte) types.ConfigRet {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ret := p.record("SetNodeProperty"); ret != types.CR_SUCCESS {
		return ret
	}
	d, ok := p.handles[h]
	if !ok {
		return types.CR_INVALID_DEVNODE
	}
	v, err := devprop.Decode(typ, buf)
	if err != nil {
		return types.CR_INVALID_DATA
	}
	for k := range d.Props {
		if k.SameProperty(key) {
			delete(d.Props, k)
		}
	}
	d.Props[key.WithType(typ)] = v
	return types.CR_SUCCESS
}

func (p *Platform) InterfaceProperty(path string, key devprop.Key, buf []byte) (devprop.Type, int, types.ConfigRet) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ret := p.record("InterfaceProperty"); ret != types.CR_SUCCESS {
		return devprop.TypeEmpty, 0, ret
	}
	for _, d := range p.devices {
		for ip, class := range d.Interfaces {
			if !strings.EqualFold(ip, path) {
				continue
			}
			switch {
			case key.SameProperty(devpkey.InstanceID):
				return copyOut(devprop.StringValue(d.InstanceID), buf)
			case key.SameProperty(devpkey.InterfaceClassGUID):
				return copyOut(devprop.GUIDValue(class), buf)
			case key.SameProperty(devpkey.InterfaceEnabled):
				return copyOut(devprop.BoolValue(!d.Phantom && !d.disabled), buf)
			}
			return devprop.TypeEmpty, 0, types.CR_NO_SUCH_VALUE
		}
	}
	return devprop.TypeEmpty, 0, types.CR_NO_SUCH_DEVICE_INTERFACE
}

func (p *Platform) QueryAndRemoveSubtree(h devnode.Handle, _ uint32) (devnode.Veto, types.ConfigRet) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ret := p.record("QueryAndRemoveSubtree"); ret != types.CR_SUCCESS {
		return devnode.Veto{Type: 1, Name: `ROOT\VETO\0000`}, ret
	}
	d, ok := p.handles[h]
	if !ok {
		return devnode.Veto{}, types.CR_INVALID_DEVNODE
	}
	p.markRemoving(d)
	return devnode.Veto{}, types.CR_SUCCESS
}

// markRemoving flags d and its descendants. Caller holds mu.
func (p *Platform) markRemoving(d *Device) {
	d.Removing = true
	for _, c := range p.devices {
		if !c.Removing && strings.EqualFold(c.Parent, d.InstanceID) {
			p.markRemoving(c)
		}
	}
}

func (p *Platform) SetupNode(h devnode.Handle, _ uint32) types.ConfigRet {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ret := p.record("SetupNode"); ret != types.CR_SUCCESS {
		return ret
	}
	d, ok := p.handles[h]
	if !ok {
		return types.CR_INVALID_DEVNODE
	}
	d.Removing = false
	return types.CR_SUCCESS
}

func (p *Platform) DisableNode(h devnode.Handle, _ uint32) types.ConfigRet {
	return p.setDisabled("DisableNode", h, true)
}

func (p *Platform) EnableNode(h devnode.Handle, _ uint32) types.ConfigRet {
	return p.setDisabled("EnableNode", h, false)
}

func (p *Platform) setDisabled(call string, h devnode.Handle, disabled bool) types.ConfigRet {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ret := p.record(call); ret != types.CR_SUCCESS {
		return ret
	}
	d, ok := p.handles[h]
	if !ok {
		return types.CR_INVALID_DEVNODE
	}
	d.disabled = disabled
	return types.CR_SUCCESS
}

func (p *Platform) NodeStatus(h devnode.Handle) (uint32, uint32, types.ConfigRet) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ret := p.record("NodeStatus"); ret != types.CR_SUCCESS {
		return 0, 0, ret
	}
	d, ok := p.handles[h]
	if !ok {
		return 0, 0, types.CR_INVALID_DEVNODE
	}
	if d.Phantom || d.Removing {
		return 0, 0, types.CR_NO_SUCH_DEVNODE
	}
	if d.disabled {
		return devnode.StatusHasProblem | devnode.StatusDisableable, 22, types.CR_SUCCESS
	}
	return devnode.StatusStarted | devnode.StatusDriverLoaded | devnode.StatusDisableable, 0, types.CR_SUCCESS
}

// interfaces returns the paths of class, present ones only when activeOnly.
// Caller holds mu.
func (p *Platform) interfaces(class guid.GUID, activeOnly bool) []string {
	var out []string
	for _, d := range p.devices {
		if activeOnly && (d.Phantom || d.Removing || d.disabled) {
			continue
		}
		for path, c := range d.Interfaces {
			if c == class {
				out = append(out, path)
			}
		}
	}
	sort.Strings(out)
	return out
}

func (p *Platform) InterfaceListSize(class guid.GUID, flags uint32) (int, types.ConfigRet) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ret := p.record("InterfaceListSize"); ret != types.CR_SUCCESS {
		return 0, ret
	}
	b, _ := format.EncodeMultiString(p.interfaces(class, flags == 0))
	return len(b) / 2, types.CR_SUCCESS
}

func (p *Platform) InterfaceList(class guid.GUID, buf []byte, flags uint32) types.ConfigRet {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ret := p.record("InterfaceList"); ret != types.CR_SUCCESS {
		return ret
	}
	b, _ := format.EncodeMultiString(p.interfaces(class, flags == 0))
	if len(buf) < len(b) {
		return types.CR_BUFFER_SMALL
	}
	copy(buf, b)
	return types.CR_SUCCESS
}
