// ./options.go
package calceph

/*
Package calceph defines the options of Open.

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
	"log/slog"

	"github.com/mshafiee/calceph/internal/native"
)

type options struct {
	backend  string
	lib      native.Library
	prefetch bool
	logger   *slog.Logger
}

// Option configures Open and OpenFiles.
type Option func(*options)

// WithBackend selects a binding by name: "calceph", "calceph-dynamic",
// "jplde", or "auto" for the first available one.
func WithBackend(name string) Option {
	return func(o *options) { o.backend = name }
}

// WithPrefetch loads the whole dataset into memory before the open returns.
func WithPrefetch() Option {
	return func(o *options) { o.prefetch = true }
}

// WithLogger sets the logger receiving lifecycle events of the handle.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// withLibrary bypasses backend selection.
func withLibrary(lib native.Library) Option {
	return func(o *options) { o.lib = lib }
}

func buildOptions(opts []Option) (options, error) {
	o := options{logger: currentLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = currentLogger()
	}
	if o.lib == nil {
		lib, err := selectBackend(o.backend)
		if err != nil {
			return o, err
		}
		o.lib = lib
	}
	return o, nil
}
