// ./shared.go
package calceph

/*
Package calceph provides the concurrency-safe view of a prefetched Ephemeris.

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

import "fmt"

// Shared is a prefetched ephemeris. It is safe for concurrent use by
// multiple goroutines. The only ways to obtain one are OpenShared and
// (*Ephemeris).Share, both of which require a successful prefetch.
type Shared struct {
	e *Ephemeris
}

// OpenShared opens and prefetches the given files.
func OpenShared(paths []string, opts ...Option) (*Shared, error) {
	e, err := OpenFiles(paths, append(opts[:len(opts):len(opts)], WithPrefetch())...)
	if err != nil {
		return nil, err
	}
	return &Shared{e: e}, nil
}

// Share returns a concurrency-safe view of e, which must have been
// prefetched. The view and e share one handle; closing either closes both.
func (e *Ephemeris) Share() (*Shared, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.handle == 0 {
		return nil, fmt.Errorf("share: %w", ErrClosed)
	}
	if !e.prefetched {
		return nil, fmt.Errorf("share: ephemeris has not been prefetched: %w", ErrInvalidArgument)
	}
	return &Shared{e: e}, nil
}

// CalculatePV is (*Ephemeris).CalculatePV.
func (s *Shared) CalculatePV(jd0, time float64, target, center Target, pu PositionUnit, tu TimeUnit) (StateVector, error) {
	return s.e.CalculatePV(jd0, time, target, center, pu, tu)
}

// Constant is (*Ephemeris).Constant.
func (s *Shared) Constant(name string) (float64, error) { return s.e.Constant(name) }

// Constants is (*Ephemeris).Constants.
func (s *Shared) Constants() ([]Constant, error) { return s.e.Constants() }

// Timescale is (*Ephemeris).Timescale.
func (s *Shared) Timescale() (Timescale, error) { return s.e.Timescale() }

// TimeSpan is (*Ephemeris).TimeSpan.
func (s *Shared) TimeSpan() (TimeSpan, error) { return s.e.TimeSpan() }

// FileVersion is (*Ephemeris).FileVersion.
func (s *Shared) FileVersion() (string, error) { return s.e.FileVersion() }

// Backend is (*Ephemeris).Backend.
func (s *Shared) Backend() string { return s.e.Backend() }

// Close is (*Ephemeris).Close.
func (s *Shared) Close() error { return s.e.Close() }
