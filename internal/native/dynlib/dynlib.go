// ./internal/native/dynlib/dynlib.go

//go:build darwin || linux

// Package dynlib binds the native ABI to a libcalceph shared object located
// and loaded at runtime with purego, so no C toolchain is needed at build
// time.
//
// The shared object is taken from CALCEPH_LIBRARY when set, otherwise from the
// platform's usual library names on the dynamic loader search path.
package dynlib

/*
Package dynlib loads libcalceph at run time.

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
	"fmt"
	"os"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/mshafiee/calceph/internal/native"
)

// LibraryEnv names the environment variable overriding the shared object path.
const LibraryEnv = "CALCEPH_LIBRARY"

var (
	handlerMu sync.RWMutex
	handler   native.ErrorHandler

	callbackOnce sync.Once
	callback     uintptr
)

// onError is the C-callable entry point; msg is a const char*.
func onError(msg uintptr) {
	handlerMu.RLock()
	fn := handler
	handlerMu.RUnlock()
	if fn == nil || msg == 0 {
		return
	}
	fn(cString(msg))
}

// cString views the NUL-terminated string at p without copying.
func cString(p uintptr) []byte {
	start := unsafe.Pointer(p)
	n := 0
	for *(*byte)(unsafe.Add(start, n)) != 0 {
		n++
	}
	return unsafe.Slice((*byte)(start), n)
}

// Library is the runtime-loaded libcalceph binding.
type Library struct {
	path string

	once sync.Once
	err  error

	setErrorHandler  func(typ int32, fn uintptr)
	open             func(path *byte) uintptr
	openArray        func(n int32, paths **byte) uintptr
	prefetch         func(eph uintptr) int32
	closeEph         func(eph uintptr)
	computeUnit      func(eph uintptr, jd0, time float64, target, center, unit int32, pv *float64) int32
	getConstant      func(eph uintptr, name *byte, value *float64) int32
	getConstantCount func(eph uintptr) int32
	getConstantIndex func(eph uintptr, index int32, name *byte, value *float64) int32
	getTimescale     func(eph uintptr) int32
	getTimeSpan      func(eph uintptr, first, last *float64, continuous *int32) int32
	getFileVersion   func(eph uintptr, version *byte) int32
	getVersionStr    func(version *byte)
}

// New returns a binding for the shared object at path. An empty path selects
// CALCEPH_LIBRARY or the platform default names.
func New(path string) *Library {
	return &Library{path: path}
}

func candidates(path string) []string {
	if path != "" {
		return []string{path}
	}
	if env := os.Getenv(LibraryEnv); env != "" {
		return []string{env}
	}
	if runtime.GOOS == "darwin" {
		return []string{"libcalceph.dylib", "/usr/local/lib/libcalceph.dylib", "/opt/homebrew/lib/libcalceph.dylib"}
	}
	return []string{"libcalceph.so", "libcalceph.so.1", "/usr/local/lib/libcalceph.so"}
}

func (l *Library) load() error {
	l.once.Do(func() {
		var lib uintptr
		var lastErr error
		for _, name := range candidates(l.path) {
			h, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
			if err == nil {
				lib = h
				break
			}
			lastErr = err
		}
		if lib == 0 {
			l.err = fmt.Errorf("load libcalceph: %w", lastErr)
			return
		}
		syms := []struct {
			fptr any
			name string
		}{
			{&l.setErrorHandler, "calceph_seterrorhandler"},
			{&l.open, "calceph_open"},
			{&l.openArray, "calceph_open_array"},
			{&l.prefetch, "calceph_prefetch"},
			{&l.closeEph, "calceph_close"},
			{&l.computeUnit, "calceph_compute_unit"},
			{&l.getConstant, "calceph_getconstant"},
			{&l.getConstantCount, "calceph_getconstantcount"},
			{&l.getConstantIndex, "calceph_getconstantindex"},
			{&l.getTimescale, "calceph_gettimescale"},
			{&l.getTimeSpan, "calceph_gettimespan"},
			{&l.getFileVersion, "calceph_getfileversion"},
			{&l.getVersionStr, "calceph_getversion_str"},
		}
		for _, s := range syms {
			sym, err := purego.Dlsym(lib, s.name)
			if err != nil {
				l.err = fmt.Errorf("resolve %s: %w", s.name, err)
				return
			}
			purego.RegisterFunc(s.fptr, sym)
		}
	})
	return l.err
}

func (l *Library) Name() string { return "calceph-dynamic" }

// Available loads the shared object on first use.
func (l *Library) Available() bool { return l.load() == nil }

// LoadError reports why the shared object could not be used, if it could not.
func (l *Library) LoadError() error { return l.load() }

func (l *Library) Version() string {
	if l.load() != nil {
		return ""
	}
	var buf [native.MaxConstantName]byte
	l.getVersionStr(&buf[0])
	return goString(buf[:])
}

func (l *Library) SetErrorHandler(fn native.ErrorHandler) {
	if l.load() != nil {
		return
	}
	handlerMu.Lock()
	handler = fn
	handlerMu.Unlock()
	callbackOnce.Do(func() { callback = purego.NewCallback(onError) })
	l.setErrorHandler(native.ErrorHandlerUserFunc, callback)
}

func cBytes(p []byte) []byte {
	b := make([]byte, len(p)+1)
	copy(b, p)
	return b
}

func (l *Library) Open(paths [][]byte) native.Handle {
	if l.load() != nil || len(paths) == 0 {
		return 0
	}
	bufs := make([][]byte, len(paths))
	ptrs := make([]*byte, len(paths))
	for i, p := range paths {
		bufs[i] = cBytes(p)
		ptrs[i] = &bufs[i][0]
	}
	var eph uintptr
	if len(ptrs) == 1 {
		eph = l.open(ptrs[0])
	} else {
		eph = l.openArray(int32(len(ptrs)), &ptrs[0])
	}
	runtime.KeepAlive(bufs)
	runtime.KeepAlive(ptrs)
	return native.Handle(eph)
}

func (l *Library) Prefetch(h native.Handle) bool {
	return l.prefetch(uintptr(h)) != 0
}

func (l *Library) Close(h native.Handle) {
	l.closeEph(uintptr(h))
}

func (l *Library) ComputeUnit(h native.Handle, jd0, time float64, target, center, unit int32, pv *[6]float64) bool {
	return l.computeUnit(uintptr(h), jd0, time, target, center, unit, &pv[0]) != 0
}

func (l *Library) Constant(h native.Handle, name string) (float64, bool) {
	var v float64
	cname := cBytes([]byte(name))
	ok := l.getConstant(uintptr(h), &cname[0], &v) != 0
	return v, ok
}

func (l *Library) ConstantCount(h native.Handle) int {
	return int(l.getConstantCount(uintptr(h)))
}

func (l *Library) ConstantIndex(h native.Handle, index int) (string, float64, bool) {
	var name [native.MaxConstantName]byte
	var v float64
	if l.getConstantIndex(uintptr(h), int32(index), &name[0], &v) == 0 {
		return "", 0, false
	}
	return goString(name[:]), v, true
}

func (l *Library) Timescale(h native.Handle) int32 {
	return l.getTimescale(uintptr(h))
}

func (l *Library) TimeSpan(h native.Handle) (float64, float64, int32, bool) {
	var first, last float64
	var cont int32
	if l.getTimeSpan(uintptr(h), &first, &last, &cont) == 0 {
		return 0, 0, 0, false
	}
	return first, last, cont, true
}

func (l *Library) FileVersion(h native.Handle) (string, bool) {
	var buf [native.MaxConstantValue]byte
	if l.getFileVersion(uintptr(h), &buf[0]) == 0 {
		return "", false
	}
	return goString(buf[:]), true
}

// goString converts a NUL-terminated buffer.
func goString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
