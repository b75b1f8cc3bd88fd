// ./ephemeris.go
package calceph

/*
Package calceph manages the lifetime of native ephemeris handles.

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
	"log/slog"
	"runtime"
	"sync"

	"github.com/mshafiee/calceph/internal/native"
)

// Ephemeris owns one dataset opened by the native library. Close releases
// it; an Ephemeris that becomes unreachable without Close is released by the
// runtime. Every method called after Close returns ErrClosed.
//
// Methods may race Close safely, but an Ephemeris is not documented for
// concurrent queries; see Share.
type Ephemeris struct {
	lib    native.Library
	logger *slog.Logger
	paths  []string

	mu         sync.Mutex
	handle     native.Handle
	prefetched bool
	cleanup    runtime.Cleanup
}

// release is what the runtime cleanup needs to close a handle. It must not
// reference the Ephemeris.
type release struct {
	lib    native.Library
	handle native.Handle
}

func releaseHandle(r release) {
	lastError.exclusive(func() { r.lib.Close(r.handle) })
}

// Open opens the ephemeris file at path.
func Open(path string, opts ...Option) (*Ephemeris, error) {
	return OpenFiles([]string{path}, opts...)
}

// OpenFiles opens one dataset made of several files, e.g. a planetary file
// and an asteroid file.
func OpenFiles(paths []string, opts ...Option) (*Ephemeris, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("open: no files: %w", ErrBadPath)
	}
	raw := make([][]byte, len(paths))
	for i, p := range paths {
		b, err := nativePath(p)
		if err != nil {
			return nil, fmt.Errorf("open: %w", err)
		}
		raw[i] = b
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	registerErrorHandler(o.lib)
	var h native.Handle
	err = lastError.call("open", func() bool {
		h = o.lib.Open(raw)
		return h != 0
	})
	if err != nil {
		o.logger.Debug("open failed", "backend", o.lib.Name(), "files", paths, "error", err)
		return nil, err
	}

	e := &Ephemeris{
		lib:    o.lib,
		logger: o.logger,
		paths:  append([]string(nil), paths...),
		handle: h,
	}
	e.cleanup = runtime.AddCleanup(e, releaseHandle, release{lib: o.lib, handle: h})
	e.logger.Debug("opened ephemeris", "backend", o.lib.Name(), "files", paths)

	if o.prefetch {
		if err := e.Prefetch(); err != nil {
			_ = e.Close()
			return nil, err
		}
	}
	return e, nil
}

// do runs one native operation on the live handle.
func (e *Ephemeris) do(op string, fn func(h native.Handle) bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.handle == 0 {
		return fmt.Errorf("%s: %w", op, ErrClosed)
	}
	return lastError.call(op, func() bool { return fn(e.handle) })
}

// Prefetch loads every segment of the dataset into memory. Afterwards
// queries perform no disk access.
func (e *Ephemeris) Prefetch() error {
	err := e.do("prefetch", func(h native.Handle) bool {
		if !e.lib.Prefetch(h) {
			return false
		}
		e.prefetched = true
		return true
	})
	if err != nil {
		return err
	}
	e.logger.Debug("prefetched ephemeris", "files", e.paths)
	return nil
}

// Prefetched reports whether Prefetch has succeeded.
func (e *Ephemeris) Prefetched() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.prefetched
}

// Close releases the native handle. It is safe to call after failed
// operations and more than once; calls after the first return nil.
func (e *Ephemeris) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.handle == 0 {
		return nil
	}
	e.cleanup.Stop()
	h := e.handle
	e.handle = 0
	e.prefetched = false
	releaseHandle(release{lib: e.lib, handle: h})
	e.logger.Debug("closed ephemeris", "files", e.paths)
	return nil
}

// Files returns the paths the ephemeris was opened from.
func (e *Ephemeris) Files() []string {
	return append([]string(nil), e.paths...)
}

// Backend names the native binding serving e.
func (e *Ephemeris) Backend() string { return e.lib.Name() }

// LibraryVersion returns the version of the native binding serving e.
func (e *Ephemeris) LibraryVersion() string { return e.lib.Version() }
