package types

import (
	"fmt"
	"strings"
)

// SearchMode selects which nodes are visible to a node lookup. It is passed
// through to the platform as CM_LOCATE_DEVNODE_* flags and changes nothing else.
type SearchMode uint32

const (
	// SearchNormal only finds nodes currently configured in the live tree.
	SearchNormal SearchMode = 0x0
	// SearchPhantom also finds nodes that are not present but still known.
	SearchPhantom SearchMode = 0x1
	// SearchCancelRemove also finds nodes being removed and cancels the removal.
	SearchCancelRemove SearchMode = 0x2
)

// String implements the Stringer interface for SearchMode.
func (m SearchMode) String() string {
	switch m {
	case SearchNormal:
		return "normal"
	case SearchPhantom:
		return "phantom"
	case SearchCancelRemove:
		return "cancelremove"
	default:
		return fmt.Sprintf("SearchMode(%d)", uint32(m))
	}
}

// ParseSearchMode parses the String form of a SearchMode (case-insensitive).
func ParseSearchMode(s string) (SearchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return SearchNormal, nil
	case "phantom":
		return SearchPhantom, nil
	case "cancelremove", "cancel-remove":
		return SearchCancelRemove, nil
	default:
		return 0, fmt.Errorf("unknown search mode %q", s)
	}
}
