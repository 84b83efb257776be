//go:build !windows

package devnotify

import (
	"errors"

	"github.com/Microsoft/go-winio/pkg/guid"
)

var errNoNotifications = errors.New("device notifications require Windows")

type unavailableSource struct{}

func nativeSource() Source { return unavailableSource{} }

func (unavailableSource) Open(guid.GUID) (Session, error) { return nil, errNoNotifications }
