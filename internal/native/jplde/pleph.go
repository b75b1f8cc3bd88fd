// ./internal/native/jplde/pleph.go
package jplde

/*
Package jplde computes states of bodies from DE records.

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

Authorship:
Mohammad Shafiee authored this Go code as a translation of the original C code.
The C version was a translation of Fortran-77 code originally written by
Piotr A. Dybczynski and later revised by Bill J Gray.
*/

import (
	"fmt"

	"github.com/mshafiee/calceph/internal/native"
)

// Body codes, shared with the native target/center code space.
const (
	codeMercury = 1
	codeEarth   = 3
	codeMoon    = 10
	codeSun     = 11
	codeSSB     = 12
	codeEMB     = 13
)

const secondsPerDay = 86400.0

// validUnit reports whether unit is exactly one position code plus one time
// code.
func validUnit(unit int32) bool {
	pos := unit & (native.UnitAU | native.UnitKM)
	tim := unit & (native.UnitDay | native.UnitSec)
	return unit == pos+tim &&
		(pos == native.UnitAU || pos == native.UnitKM) &&
		(tim == native.UnitDay || tim == native.UnitSec)
}

// bodies lazily interpolates the rows one query needs.
type bodies struct {
	d    *dataset
	rec  []float64
	t    [2]float64
	done [iptSun + 1]bool
	pv   [iptSun + 1][6]float64
}

func (b *bodies) get(row int) [6]float64 {
	if !b.done[row] {
		b.d.row(b.rec, b.t, row, &b.pv[row])
		b.done[row] = true
	}
	return b.pv[row]
}

// barycentric returns the state of a body code relative to the solar-system
// barycenter, in km and km/day.
func (b *bodies) barycentric(code int32) [6]float64 {
	switch {
	case code == codeSSB:
		return [6]float64{}
	case code == codeEMB:
		return b.get(2)
	case code == codeEarth, code == codeMoon:
		emb, moon := b.get(2), b.get(9)
		var out [6]float64
		for i := range out {
			earth := emb[i] - moon[i]/(1.0+b.d.emrat)
			if code == codeEarth {
				out[i] = earth
			} else {
				out[i] = earth + moon[i]
			}
		}
		return out
	case code == codeSun:
		return b.get(iptSun)
	default:
		return b.get(int(code) - 1)
	}
}

// compute fills pv with the state of target relative to center at jd0+time.
func (d *dataset) compute(jd0, time float64, target, center, unit int32, pv *[6]float64) error {
	if !validUnit(unit) {
		return fmt.Errorf("the unit code %d is not one position unit plus one time unit", unit)
	}
	for _, c := range [2]int32{target, center} {
		if c >= native.AsteroidBase {
			return fmt.Errorf("the asteroid %d is not available in '%s'", c-native.AsteroidBase, d.path)
		}
		if c < codeMercury || c > codeEMB {
			return fmt.Errorf("the body code %d is not supported", c)
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	rec, t, err := d.record(jd0, time)
	if err != nil {
		return err
	}
	*pv = [6]float64{}
	if target == center {
		return nil
	}

	b := &bodies{d: d, rec: rec, t: t}
	if (target == codeEarth && center == codeMoon) || (target == codeMoon && center == codeEarth) {
		// Straight from the geocentric Moon row to keep its precision.
		moon := b.get(9)
		for i := range pv {
			pv[i] = moon[i]
			if target == codeEarth {
				pv[i] = -moon[i]
			}
		}
	} else {
		tp, cp := b.barycentric(target), b.barycentric(center)
		for i := range pv {
			pv[i] = tp[i] - cp[i]
		}
	}

	if unit&native.UnitAU != 0 {
		for i := range pv {
			pv[i] /= d.au
		}
	}
	if unit&native.UnitSec != 0 {
		for i := 3; i < 6; i++ {
			pv[i] /= secondsPerDay
		}
	}
	return nil
}
