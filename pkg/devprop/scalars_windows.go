//go:build windows

package devprop

import "golang.org/x/sys/windows"

// Errno returns the code as a windows.Errno for errors.Is comparisons.
func (e ErrorCode) Errno() windows.Errno { return windows.Errno(uint32(e)) }
