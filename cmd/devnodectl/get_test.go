package main

import (
	"testing"
)

func TestGetCommand(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		key            string
		mode           string
		showType       bool
		wantErr        bool
		wantContain    []string
		wantNotContain []string
		wantJSON       bool
	}{
		{
			name:        "get DeviceDesc",
			id:          padID,
			key:         "DeviceDesc",
			wantContain: []string{"Xbox 360 Controller for Windows"},
		},
		{
			name:        "get HardwareIDs with type",
			id:          padID,
			key:         "DEVPKEY_Device_HardwareIds",
			showType:    true,
			wantContain: []string{"(StringList)", `USB\VID_045E&PID_028E&REV_0114`},
		},
		{
			name:        "get parent by raw key",
			id:          hidID,
			key:         "{4340a6c5-93fa-4706-972c-7b648008a5a7} 8:String",
			wantContain: []string{padID},
		},
		{
			name:        "unset property",
			id:          padID,
			key:         "FriendlyName",
			wantContain: []string{"FriendlyName is not set"},
		},
		{
			name:        "get value as JSON",
			id:          padID,
			key:         "DeviceDesc",
			wantJSON:    true,
			wantContain: []string{`"type": "String"`, "Xbox 360 Controller for Windows"},
		},
		{
			name:    "nonexistent device",
			id:      `USB\NOPE\0`,
			key:     "DeviceDesc",
			wantErr: true,
		},
		{
			name:    "unknown key",
			id:      padID,
			key:     "NoSuchKey",
			wantErr: true,
		},
		{
			name:    "unsupported key type",
			id:      padID,
			key:     "Security",
			wantErr: true,
		},
		{
			name:    "bad mode",
			id:      padID,
			key:     "DeviceDesc",
			mode:    "sideways",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			fakeTree(t)
			jsonOut = tt.wantJSON
			getShowType = tt.showType
			if tt.mode != "" {
				modeFlag = tt.mode
			}

			output, err := captureOutput(t, func() error {
				return runGet([]string{tt.id, tt.key})
			})

			if (err != nil) != tt.wantErr {
				t.Errorf("runGet() error = %v, wantErr %v\nOutput: %s", err, tt.wantErr, output)
				return
			}

			if tt.wantJSON && !tt.wantErr {
				assertJSON(t, output)
			}

			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}
