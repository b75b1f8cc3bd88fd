// ./compute.go
package calceph

/*
Package calceph implements the queries of an open Ephemeris.

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
	"strings"

	"github.com/mshafiee/calceph/internal/native"
)

// Position represents a three-dimensional position vector.
type Position struct {
	X, Y, Z float64
}

// Velocity represents a three-dimensional velocity vector.
type Velocity struct {
	DX, DY, DZ float64
}

// StateVector holds x, y, z, vx, vy, vz in the units of the query.
type StateVector [6]float64

// Position returns the first three components.
func (s StateVector) Position() Position { return Position{s[0], s[1], s[2]} }

// Velocity returns the last three components.
func (s StateVector) Velocity() Velocity { return Velocity{s[3], s[4], s[5]} }

// Constant is a named value recorded in an ephemeris file.
type Constant struct {
	Name  string
	Value float64
}

// TimeSpan is the interval covered by a dataset, in Julian days of its
// timescale.
type TimeSpan struct {
	First, Last float64
	Continuity  Continuity
}

// CalculatePV returns the state of target relative to center at the Julian
// date jd0+time. Splitting the date keeps precision: put the integer part in
// jd0 and the fraction in time. Positions are expressed in pu and
// velocities in pu per tu.
func (e *Ephemeris) CalculatePV(jd0, time float64, target, center Target, pu PositionUnit, tu TimeUnit) (StateVector, error) {
	var pv StateVector
	if !target.Valid() {
		return pv, fmt.Errorf("compute: target %v: %w", target, ErrInvalidArgument)
	}
	if !center.Valid() {
		return pv, fmt.Errorf("compute: center %v: %w", center, ErrInvalidArgument)
	}
	unit, err := unitCode(pu, tu)
	if err != nil {
		return pv, fmt.Errorf("compute: %w", err)
	}
	err = e.do("compute", func(h native.Handle) bool {
		out := (*[6]float64)(&pv)
		return e.lib.ComputeUnit(h, jd0, time, target.Code(), center.Code(), unit, out)
	})
	if err != nil {
		return StateVector{}, err
	}
	return pv, nil
}

// Constant returns the value of the named constant, e.g. "AU" in km.
func (e *Ephemeris) Constant(name string) (float64, error) {
	if strings.IndexByte(name, 0) >= 0 {
		return 0, fmt.Errorf("constant %q: name contains a NUL byte: %w", name, ErrInvalidArgument)
	}
	var v float64
	err := e.do("constant "+name, func(h native.Handle) bool {
		var ok bool
		v, ok = e.lib.Constant(h, name)
		return ok
	})
	return v, err
}

// Constants returns every constant of the dataset in file order.
func (e *Ephemeris) Constants() ([]Constant, error) {
	var out []Constant
	err := e.do("constants", func(h native.Handle) bool {
		n := e.lib.ConstantCount(h)
		if n == 0 && lastError.readLastError() != "" {
			return false
		}
		out = make([]Constant, 0, n)
		for i := 1; i <= n; i++ {
			name, v, ok := e.lib.ConstantIndex(h, i)
			if !ok {
				return false
			}
			out = append(out, Constant{Name: name, Value: v})
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Timescale reports the time standard of the dataset. A code outside TDB
// and TCB, including the library's failure code, yields an
// *UnknownTimescaleError.
func (e *Ephemeris) Timescale() (Timescale, error) {
	var (
		code int32
		msg  string
	)
	err := e.do("timescale", func(h native.Handle) bool {
		code = e.lib.Timescale(h)
		msg = lastError.readLastError()
		return true
	})
	if err != nil {
		return 0, err
	}
	ts, ok := timescaleFromCode(code)
	if !ok {
		return 0, &UnknownTimescaleError{Code: code, Message: msg}
	}
	return ts, nil
}

// TimeSpan reports the interval covered by the dataset.
func (e *Ephemeris) TimeSpan() (TimeSpan, error) {
	var span TimeSpan
	err := e.do("time span", func(h native.Handle) bool {
		first, last, continuity, ok := e.lib.TimeSpan(h)
		span = TimeSpan{First: first, Last: last, Continuity: Continuity(continuity)}
		return ok
	})
	if err != nil {
		return TimeSpan{}, err
	}
	return span, nil
}

// FileVersion returns the version recorded in the dataset, e.g. "DE405" or
// "INPOP10B".
func (e *Ephemeris) FileVersion() (string, error) {
	var v string
	err := e.do("file version", func(h native.Handle) bool {
		var ok bool
		v, ok = e.lib.FileVersion(h)
		return ok
	})
	return v, err
}
