// ./internal/native/native.go

// Package native describes the ABI of the ephemeris computation library as
// seen from Go.
//
// A Library is one binding of that ABI: the linked libcalceph (cgolib), a
// libcalceph loaded at runtime (dynlib), or the pure-Go JPL DE engine
// (jplde). Every binding follows the same contract as the C library:
//
//   - state lives behind an opaque Handle; a zero Handle signals a failed open;
//   - operations signal failure through their return value only, and describe
//     it by invoking the process-wide error handler before returning;
//   - units are selected by summing one position code and one time code.
//
// Callers are expected to serialize calls that can fail so that the message
// delivered to the handler can be attributed to the call that produced it.
package native

/*
Package native declares the binding ABI.

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

// Handle is an opaque reference to library-managed state for one opened
// ephemeris dataset. The zero Handle is never valid.
type Handle uintptr

// Unit codes. A query combines one position code and one time code by
// addition.
const (
	UnitAU  int32 = 1
	UnitKM  int32 = 2
	UnitDay int32 = 4
	UnitSec int32 = 8
)

// AsteroidBase is added to an asteroid number to form its target code.
const AsteroidBase int32 = 2000000

// Timescale codes reported by Library.Timescale.
const (
	TimescaleTDB int32 = 1
	TimescaleTCB int32 = 2
)

// Continuity codes reported by Library.TimeSpan.
const (
	SpanContinuous          int32 = 1
	SpanGapsInSomeBodies    int32 = 2
	SpanGapsInAllQuantities int32 = 3
)

// Error handler type selector understood by calceph_seterrorhandler: call a
// user function with the message.
const ErrorHandlerUserFunc = 3

// MaxConstantName is the size of the buffer receiving a constant name,
// terminator included.
const MaxConstantName = 33

// MaxConstantValue is the size of the buffer receiving a version string,
// terminator included.
const MaxConstantValue = 1024

// ErrorHandler receives the text of a failure. msg is only valid for the
// duration of the call; the handler must copy what it keeps.
type ErrorHandler func(msg []byte)

// Library is one binding of the native ABI.
type Library interface {
	// Name identifies the binding ("calceph", "calceph-dynamic", "jplde").
	Name() string
	// Available reports whether the binding can be used in this process.
	Available() bool
	// Version returns the version string of the underlying library.
	Version() string

	// SetErrorHandler installs the process-wide failure callback.
	SetErrorHandler(fn ErrorHandler)

	// Open opens one dataset made of one or more files. Each path is the
	// platform encoding of a file name without a terminating NUL.
	Open(paths [][]byte) Handle
	Prefetch(h Handle) bool
	Close(h Handle)

	ComputeUnit(h Handle, jd0, time float64, target, center, unit int32, pv *[6]float64) bool
	Constant(h Handle, name string) (float64, bool)
	ConstantCount(h Handle) int
	// ConstantIndex returns the constant at a 1-based index.
	ConstantIndex(h Handle, index int) (string, float64, bool)
	// Timescale returns a timescale code, or 0 on failure.
	Timescale(h Handle) int32
	TimeSpan(h Handle) (first, last float64, continuity int32, ok bool)
	FileVersion(h Handle) (string, bool)
}
