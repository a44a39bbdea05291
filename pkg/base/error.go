// Package base holds the value types and error kinds shared by every
// other package in this module.
package base

import "errors"

// ----- pkg/registry -----

var ErrInvalidHandle = errors.New("bb-rtmp.base: invalid handle")

// ----- pkg/session -----

var (
	ErrInvalidInput      = errors.New("bb-rtmp.base: invalid input")
	ErrUnsupportedFormat = errors.New("bb-rtmp.base: unsupported format")
)

// ----- pkg/transport -----

var (
	ErrConnect   = errors.New("bb-rtmp.base: connect failed")
	ErrTransport = errors.New("bb-rtmp.base: transport write failed")
	ErrClosed    = errors.New("bb-rtmp.base: transport closed")
)
