// ./internal/native/cgolib/cgolib.go

//go:build cgo && calceph

// Package cgolib binds the native ABI to a libcalceph linked at build time.
//
// Build with the calceph tag and the library headers on the include path:
//
//	go build -tags calceph ./...
package cgolib

/*
Package cgolib calls libcalceph through cgo.

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

/*
#cgo LDFLAGS: -lcalceph -lm
#include <stdlib.h>
#include <string.h>
#include <calceph.h>

extern void calcephGoErrorHandler(char* msg);

static void calceph_install_go_handler(void) {
	calceph_seterrorhandler(3, (void (*)(const char*))calcephGoErrorHandler);
}
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/mshafiee/calceph/internal/native"
)

var (
	handlerMu sync.RWMutex
	handler   native.ErrorHandler
)

//export calcephGoErrorHandler
func calcephGoErrorHandler(msg *C.char) {
	handlerMu.RLock()
	fn := handler
	handlerMu.RUnlock()
	if fn == nil || msg == nil {
		return
	}
	n := C.strlen(msg)
	fn(unsafe.Slice((*byte)(unsafe.Pointer(msg)), int(n)))
}

// Library is the linked libcalceph binding.
type Library struct{}

// New returns the linked binding.
func New() *Library { return &Library{} }

func (l *Library) Name() string    { return "calceph" }
func (l *Library) Available() bool { return true }

func (l *Library) Version() string {
	var buf [native.MaxConstantName]C.char
	C.calceph_getversion_str(&buf[0])
	return C.GoString(&buf[0])
}

func (l *Library) SetErrorHandler(fn native.ErrorHandler) {
	handlerMu.Lock()
	handler = fn
	handlerMu.Unlock()
	C.calceph_install_go_handler()
}

func (l *Library) Open(paths [][]byte) native.Handle {
	if len(paths) == 0 {
		return 0
	}
	cpaths := make([]*C.char, len(paths))
	for i, p := range paths {
		cpaths[i] = (*C.char)(C.CBytes(append(p[:len(p):len(p)], 0)))
	}
	defer func() {
		for _, p := range cpaths {
			C.free(unsafe.Pointer(p))
		}
	}()

	var eph *C.t_calcephbin
	if len(cpaths) == 1 {
		eph = C.calceph_open(cpaths[0])
	} else {
		// The array itself must live in C memory: it holds C pointers.
		arr := (**C.char)(C.malloc(C.size_t(len(cpaths)) * C.size_t(unsafe.Sizeof(uintptr(0)))))
		defer C.free(unsafe.Pointer(arr))
		copy(unsafe.Slice(arr, len(cpaths)), cpaths)
		eph = C.calceph_open_array(C.int(len(cpaths)), arr)
	}
	return native.Handle(unsafe.Pointer(eph))
}

func bin(h native.Handle) *C.t_calcephbin {
	return (*C.t_calcephbin)(unsafe.Pointer(h))
}

func (l *Library) Prefetch(h native.Handle) bool {
	return C.calceph_prefetch(bin(h)) != 0
}

func (l *Library) Close(h native.Handle) {
	C.calceph_close(bin(h))
}

func (l *Library) ComputeUnit(h native.Handle, jd0, time float64, target, center, unit int32, pv *[6]float64) bool {
	var out [6]C.double
	ok := C.calceph_compute_unit(bin(h), C.double(jd0), C.double(time),
		C.int(target), C.int(center), C.int(unit), &out[0]) != 0
	for i := range out {
		pv[i] = float64(out[i])
	}
	return ok
}

func (l *Library) Constant(h native.Handle, name string) (float64, bool) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var v C.double
	if C.calceph_getconstant(bin(h), cname, &v) == 0 {
		return 0, false
	}
	return float64(v), true
}

func (l *Library) ConstantCount(h native.Handle) int {
	return int(C.calceph_getconstantcount(bin(h)))
}

func (l *Library) ConstantIndex(h native.Handle, index int) (string, float64, bool) {
	var name [native.MaxConstantName]C.char
	var v C.double
	if C.calceph_getconstantindex(bin(h), C.int(index), &name[0], &v) == 0 {
		return "", 0, false
	}
	return C.GoString(&name[0]), float64(v), true
}

func (l *Library) Timescale(h native.Handle) int32 {
	return int32(C.calceph_gettimescale(bin(h)))
}

func (l *Library) TimeSpan(h native.Handle) (float64, float64, int32, bool) {
	var first, last C.double
	var cont C.int
	if C.calceph_gettimespan(bin(h), &first, &last, &cont) == 0 {
		return 0, 0, 0, false
	}
	return float64(first), float64(last), int32(cont), true
}

func (l *Library) FileVersion(h native.Handle) (string, bool) {
	var buf [native.MaxConstantValue]C.char
	if C.calceph_getfileversion(bin(h), &buf[0]) == 0 {
		return "", false
	}
	return C.GoString(&buf[0]), true
}
