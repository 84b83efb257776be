// Package format houses the low-level wire helpers for native device
// property buffers: little-endian integers, UTF-16LE text and multi-strings,
// FILETIME and OLE automation dates, DECIMAL and GUID layouts.
//
// Everything here operates on plain byte slices and is independent from the
// public API so higher-level packages can decide what the bytes mean.
package format
