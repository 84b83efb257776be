package devpkey

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/pnpkit/pkg/devprop"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		want devprop.Key
	}{
		{"parent", Parent},
		{"Parent", Parent},
		{"DEVPKEY_Device_Parent", Parent},
		{"DEVPKEY_Device_InstanceId", InstanceID},
		{"hardware_ids", HardwareIDs},
		{"DEVPKEY_NAME", Name},
	}
	for _, tt := range tests {
		got, ok := Lookup(tt.name)
		require.True(t, ok, tt.name)
		require.Equal(t, tt.want, got, tt.name)
	}

	_, ok := Lookup("nope")
	require.False(t, ok)
}

func TestNamesCoverTable(t *testing.T) {
	names := Names()
	require.Len(t, names, len(byName))
	require.IsIncreasing(t, names)
}

func TestDeclaredTypes(t *testing.T) {
	require.Equal(t, devprop.TypeString, Parent.Type)
	require.Equal(t, devprop.TypeString, InstanceID.Type)
	require.Equal(t, uint32(256), InstanceID.PID)
	require.Equal(t, devprop.TypeStringList, HardwareIDs.Type)
	require.False(t, Parent.SameProperty(InstanceID))
}
