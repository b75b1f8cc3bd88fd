// ./errors.go
package calceph

/*
Package calceph defines the errors returned by Ephemeris methods.

This program is free software; you can redistribute it and/or
modify it under the terms of the GNU General Public License
as published by the Free Software Foundation; either version 2
of the License, or (at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program; if not, write to the Free Software
Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston, MA
02110-1301, USA.
*/

import (
	"errors"
	"fmt"
)

// ErrBadPath is returned when a file name cannot be represented in the
// encoding the native library expects. No native call is made.
var ErrBadPath = errors.New("path cannot be passed to the native library")

// ErrNativeFailure is matched by every *NativeError.
var ErrNativeFailure = errors.New("native library failure")

// ErrUnknownTimescale is matched by every *UnknownTimescaleError.
var ErrUnknownTimescale = errors.New("unknown timescale")

// ErrClosed is returned by every operation on a released ephemeris.
var ErrClosed = errors.New("ephemeris is closed")

// ErrInvalidArgument is returned when a target or unit value lies outside its
// closed set. No native call is made.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrNoBackend is returned when no native library can serve an open.
var ErrNoBackend = errors.New("no native library available")

// NativeError reports a failure signalled by the native library, with the
// message the library delivered to its error handler during the call.
type NativeError struct {
	Op      string // operation, e.g. "compute"
	Message string
}

func (e *NativeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *NativeError) Unwrap() error { return ErrNativeFailure }

// UnknownTimescaleError reports a timescale code outside {TDB, TCB}. Message
// holds what the native library reported, if anything.
type UnknownTimescaleError struct {
	Code    int32
	Message string
}

func (e *UnknownTimescaleError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("timescale code %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("timescale code %d is neither TDB nor TCB", e.Code)
}

func (e *UnknownTimescaleError) Unwrap() error { return ErrUnknownTimescale }
