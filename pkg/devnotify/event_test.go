package devnotify

import (
	"testing"

	"github.com/Microsoft/go-winio/pkg/guid"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/pnpkit/internal/format"
)

var xnaComposite = guid.GUID{
	Data1: 0xD61CA365, Data2: 0x5AF4, Data3: 0x4486,
	Data4: [8]byte{0x99, 0x8B, 0x9D, 0xB4, 0x73, 0x4C, 0x6C, 0xA3},
}

const padPath = `\\?\USB#VID_045E&PID_028E#1&2d595ca7&0&0000#{d61ca365-5af4-4486-998b-9db4734c6ca3}`

func TestParseBroadcast_Arrival(t *testing.T) {
	wparam, data := EncodeBroadcast(Event{Kind: Arrival, Path: padPath, Class: xnaComposite})
	require.Equal(t, uintptr(0x8000), wparam)
	require.Equal(t, uint32(len(data)), format.ReadU32(data, 0))

	ev, ok := ParseBroadcast(wparam, data)
	require.True(t, ok)
	require.Equal(t, Event{Kind: Arrival, Path: padPath, Class: xnaComposite}, ev)
}

func TestParseBroadcast_Removal(t *testing.T) {
	ev, ok := ParseBroadcast(EncodeBroadcast(Event{Kind: Removal, Path: padPath}))
	require.True(t, ok)
	require.Equal(t, Removal, ev.Kind)
	require.Equal(t, padPath, ev.Path)
}

func TestParseBroadcast_Ignored(t *testing.T) {
	_, data := EncodeBroadcast(Event{Kind: Arrival, Path: padPath})

	t.Run("other event type", func(t *testing.T) {
		_, ok := ParseBroadcast(0x0007, data) // DBT_DEVNODES_CHANGED
		require.False(t, ok)
	})

	t.Run("volume header", func(t *testing.T) {
		vol := make([]byte, 20)
		format.PutU32(vol, 0, 20)
		format.PutU32(vol, 4, 0x00000002) // DBT_DEVTYP_VOLUME
		_, ok := ParseBroadcast(0x8000, vol)
		require.False(t, ok)
	})

	t.Run("short header", func(t *testing.T) {
		_, ok := ParseBroadcast(0x8000, data[:8])
		require.False(t, ok)
	})

	t.Run("truncated interface", func(t *testing.T) {
		short := append([]byte(nil), data[:20]...)
		format.PutU32(short, 0, 20)
		_, ok := ParseBroadcast(0x8000, short)
		require.False(t, ok)
	})
}

func TestParseBroadcast_HonoursHeaderSize(t *testing.T) {
	_, data := EncodeBroadcast(Event{Kind: Arrival, Path: "abc"})
	// Trailing garbage beyond dbcc_size must not leak into the path.
	padded := append(append([]byte(nil), data...), 'x', 0, 'y', 0)
	padded[len(data)-2] = 'z' // overwrite terminator inside the declared size
	ev, ok := ParseBroadcast(0x8000, padded)
	require.True(t, ok)
	require.Equal(t, "abcz", ev.Path)
}

func TestKindAndStateStrings(t *testing.T) {
	require.Equal(t, "arrival", Arrival.String())
	require.Equal(t, "removal", Removal.String())
	require.Equal(t, "listening", Listening.String())
	require.Equal(t, "State(9)", State(9).String())
}
