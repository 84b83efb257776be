package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/Microsoft/go-winio/pkg/guid"

	"github.com/joshuapare/pnpkit/pkg/devclass"
	"github.com/joshuapare/pnpkit/pkg/devnode"
	"github.com/joshuapare/pnpkit/pkg/devnode/devnodetest"
	"github.com/joshuapare/pnpkit/pkg/devpkey"
	"github.com/joshuapare/pnpkit/pkg/devprop"
)

const (
	padID   = `USB\VID_045E&PID_028E\1`
	padPath = `\\?\USB#VID_045E&PID_028E#1#{a5dcbf10-6530-11d2-901f-00c04fb951ed}`
	hidID   = `HID\VID_045E&PID_028E\2`
	hubID   = `ROOT\USB\0000`
)

// fakeTree installs a locator over a small tree: a software USB hub with a
// controller and its HID child.
func fakeTree(t *testing.T) *devnodetest.Platform {
	t.Helper()
	devs := devnodetest.Chain(hubID, padID, hidID)
	devs[1].Props = map[devprop.Key]devprop.Value{
		devpkey.DeviceDesc:  devprop.StringValue("Xbox 360 Controller for Windows"),
		devpkey.HardwareIDs: devprop.StringListValue([]string{`USB\VID_045E&PID_028E&REV_0114`, `USB\VID_045E&PID_028E`}),
	}
	devs[1].Interfaces = map[string]guid.GUID{padPath: devclass.USBDevice}
	p := devnodetest.New(devs...)

	orig := newLocator
	newLocator = func() *devnode.Locator { return devnode.NewLocator(devnode.WithPlatform(p)) }
	t.Cleanup(func() { newLocator = orig })
	return p
}

// resetFlags restores global flags to their defaults.
func resetFlags(t *testing.T) {
	t.Helper()
	verbose = false
	quiet = false
	jsonOut = false
	modeFlag = "normal"
	resolveInterface = false
	getShowType = false
	originExclude = nil
	originChain = false
	interfacesAll = false
	watchCount = 0
	classes = devclass.Builtin()
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	done := make(chan struct{})
	var buf bytes.Buffer
	go func() {
		_, _ = buf.ReadFrom(r)
		close(done)
	}()

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout
	<-done

	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// assertNotContains checks that output doesn't contain unwanted strings
func assertNotContains(t *testing.T, output string, unwanted []string) {
	t.Helper()
	for _, dont := range unwanted {
		if strings.Contains(output, dont) {
			t.Errorf("output contains unwanted string %q\nGot: %s", dont, output)
		}
	}
}
