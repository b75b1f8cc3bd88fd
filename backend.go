// ./backend.go
package calceph

/*
Package calceph selects the native binding that serves an Ephemeris.

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
	"sync"

	"github.com/mshafiee/calceph/internal/native"
	"github.com/mshafiee/calceph/internal/native/cgolib"
	"github.com/mshafiee/calceph/internal/native/dynlib"
	"github.com/mshafiee/calceph/internal/native/jplde"
)

var (
	backendsOnce sync.Once
	backends     []native.Library

	loggerMu      sync.RWMutex
	defaultLogger = slog.New(slog.DiscardHandler)
)

// registered returns the bindings in order of preference: the linked
// libcalceph, a libcalceph loaded at runtime, then the pure-Go DE engine.
func registered() []native.Library {
	backendsOnce.Do(func() {
		backends = []native.Library{
			cgolib.New(),
			dynlib.New(""),
			jplde.New(),
		}
	})
	return backends
}

// BackendInfo describes one native binding.
type BackendInfo struct {
	Name      string
	Available bool
	Version   string
}

// Backends lists every binding compiled into this program.
func Backends() []BackendInfo {
	libs := registered()
	out := make([]BackendInfo, 0, len(libs))
	for _, lib := range libs {
		info := BackendInfo{Name: lib.Name(), Available: lib.Available()}
		if info.Available {
			info.Version = lib.Version()
		}
		out = append(out, info)
	}
	return out
}

// selectBackend returns the named binding, or the first available one when
// name is empty or "auto".
func selectBackend(name string) (native.Library, error) {
	libs := registered()
	if name == "" || name == "auto" {
		for _, lib := range libs {
			if lib.Available() {
				return lib, nil
			}
		}
		return nil, ErrNoBackend
	}
	for _, lib := range libs {
		if lib.Name() != name {
			continue
		}
		if !lib.Available() {
			return nil, fmt.Errorf("backend %q: %w", name, ErrNoBackend)
		}
		return lib, nil
	}
	return nil, fmt.Errorf("unknown backend %q: %w", name, ErrNoBackend)
}

// SetLogger sets the logger used by handles opened without WithLogger, and
// by the pure-Go engine.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	loggerMu.Lock()
	defaultLogger = l
	loggerMu.Unlock()
	jplde.SetLogger(l)
}

func currentLogger() *slog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return defaultLogger
}
