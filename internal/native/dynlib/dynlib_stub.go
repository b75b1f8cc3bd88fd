// ./internal/native/dynlib/dynlib_stub.go

//go:build !(darwin || linux)

package dynlib

/*
Package dynlib reports the dynamic binding as unavailable.

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

	"github.com/mshafiee/calceph/internal/native"
)

const LibraryEnv = "CALCEPH_LIBRARY"

var errUnsupported = errors.New("load libcalceph: runtime loading is not supported on this platform")

// Library stands in for the runtime-loaded binding on platforms purego
// cannot dlopen on.
type Library struct{}

func New(string) *Library { return &Library{} }

func (l *Library) Name() string     { return "calceph-dynamic" }
func (l *Library) Available() bool  { return false }
func (l *Library) LoadError() error { return errUnsupported }
func (l *Library) Version() string  { return "" }

func (l *Library) SetErrorHandler(native.ErrorHandler) {}
func (l *Library) Open([][]byte) native.Handle         { return 0 }
func (l *Library) Prefetch(native.Handle) bool         { return false }
func (l *Library) Close(native.Handle)                 {}

func (l *Library) ComputeUnit(native.Handle, float64, float64, int32, int32, int32, *[6]float64) bool {
	return false
}

func (l *Library) Constant(native.Handle, string) (float64, bool) { return 0, false }
func (l *Library) ConstantCount(native.Handle) int                { return 0 }

func (l *Library) ConstantIndex(native.Handle, int) (string, float64, bool) {
	return "", 0, false
}

func (l *Library) Timescale(native.Handle) int32 { return 0 }

func (l *Library) TimeSpan(native.Handle) (float64, float64, int32, bool) {
	return 0, 0, 0, false
}

func (l *Library) FileVersion(native.Handle) (string, bool) { return "", false }
