// Package devclass names device interface classes.
//
// Classes are GUIDs; this package gives the common ones names and lets a
// YAML file add more:
//
//	# classes.yaml
//	ds4: "{4d1e55b2-f16f-11cf-88cb-001111000030}"
//	xusb: ec87f1e3-c13b-4100-b5f7-8b84d54260cb
package devclass

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Microsoft/go-winio/pkg/guid"
	"gopkg.in/yaml.v3"
)

// Well-known device interface classes.
var (
	// USBDevice is GUID_DEVINTERFACE_USB_DEVICE.
	USBDevice = mustParse("A5DCBF10-6530-11D2-901F-00C04FB951ED")
	// HID is GUID_DEVINTERFACE_HID.
	HID = mustParse("4D1E55B2-F16F-11CF-88CB-001111000030")
	// XnaComposite is the interface of XInput-compatible composite devices.
	XnaComposite = mustParse("D61CA365-5AF4-4486-998B-9DB4734C6CA3")
	// XboxComposite is the interface of Xbox One composite devices.
	XboxComposite = mustParse("05F5CFE2-4733-4950-A6BB-07AAD01A3A84")
)

func mustParse(s string) guid.GUID {
	g, err := guid.FromString(s)
	if err != nil {
		panic(err)
	}
	return g
}

// Aliases maps lower-case names to class GUIDs.
type Aliases map[string]guid.GUID

// Builtin returns the aliases known without a file.
func Builtin() Aliases {
	return Aliases{
		"usb":           USBDevice,
		"hid":           HID,
		"xnacomposite":  XnaComposite,
		"xboxcomposite": XboxComposite,
	}
}

// Parse reads a GUID with or without braces.
func Parse(s string) (guid.GUID, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "{"), "}")
	g, err := guid.FromString(s)
	if err != nil {
		return guid.GUID{}, fmt.Errorf("devclass: invalid class %q: %w", s, err)
	}
	return g, nil
}

// LoadAliases reads a YAML mapping of name to GUID from path and merges it
// over the built-in aliases. Names are case-insensitive; file entries win.
func LoadAliases(path string) (Aliases, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("devclass: %w", err)
	}
	return ParseAliases(data)
}

// ParseAliases is LoadAliases on an in-memory document.
func ParseAliases(data []byte) (Aliases, error) {
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("devclass: parse aliases: %w", err)
	}
	a := Builtin()
	for name, s := range raw {
		g, err := Parse(s)
		if err != nil {
			return nil, fmt.Errorf("devclass: alias %q: %w", name, err)
		}
		a[strings.ToLower(name)] = g
	}
	return a, nil
}

// Resolve returns the class named by s, which is either an alias or a GUID.
func (a Aliases) Resolve(s string) (guid.GUID, error) {
	if g, ok := a[strings.ToLower(strings.TrimSpace(s))]; ok {
		return g, nil
	}
	return Parse(s)
}

// Name returns the alias for g, or its braced string form.
func (a Aliases) Name(g guid.GUID) string {
	for _, n := range a.Names() {
		if a[n] == g {
			return n
		}
	}
	return "{" + g.String() + "}"
}

// Names returns the alias names in sorted order.
func (a Aliases) Names() []string {
	names := make([]string, 0, len(a))
	for n := range a {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
