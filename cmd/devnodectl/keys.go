package main

import (
	"fmt"
	"strings"

	"github.com/joshuapare/pnpkit/pkg/devpkey"
	"github.com/joshuapare/pnpkit/pkg/devprop"
)

// parseKey accepts a well-known key name ("FriendlyName",
// "DEVPKEY_Device_Parent") or "{fmtid} pid:kind".
func parseKey(s string) (devprop.Key, error) {
	if k, ok := devpkey.Lookup(s); ok {
		return k, nil
	}
	ref, kindName, ok := strings.Cut(s, ":")
	if !ok {
		return devprop.Key{}, fmt.Errorf("unknown property %q (want a known name or \"{fmtid} pid:kind\")", s)
	}
	kind, ok := devprop.ParseKind(kindName)
	if !ok {
		return devprop.Key{}, fmt.Errorf("unknown kind %q", kindName)
	}
	typ, _ := kind.Type()
	return devprop.ParseKey(ref, typ)
}
