// ./internal/native/jplde/interp.go
package jplde

/*
Package jplde provides Chebyshev interpolation of DE records.

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
	"math"
)

// interp evaluates a Chebyshev series and its derivative.
//
//   - coef: coefficients, ncf per component, ncm components per
//     sub-interval, na sub-intervals.
//   - t: fraction of the record elapsed (0 <= t[0] <= 1) and the record span
//     in days.
//   - posvel: receives ncm positions then ncm rates per day.
func interp(coef []float64, t [2]float64, ncf, ncm, na int, posvel []float64) {
	dna := float64(na)
	whole, frac := math.Modf(dna * t[0])
	l := int(whole)
	tc := 2.0*frac - 1.0
	if l == na {
		// t[0] == 1: last sub-interval, right edge.
		l--
		tc = 1.0
	}

	var pc, vc [maxCheby]float64
	pc[0], pc[1] = 1.0, tc
	vc[0], vc[1] = 0.0, 1.0
	twot := tc + tc
	for i := 2; i < ncf; i++ {
		pc[i] = twot*pc[i-1] - pc[i-2]
		vc[i] = twot*vc[i-1] + 2*pc[i-1] - vc[i-2]
	}

	vfac := (dna + dna) / t[1]
	for i := 0; i < ncm; i++ {
		c := coef[ncf*(i+l*ncm):]
		p, v := 0.0, 0.0
		for j := 0; j < ncf; j++ {
			p += pc[j] * c[j]
		}
		for j := 1; j < ncf; j++ {
			v += vc[j] * c[j]
		}
		posvel[i] = p
		posvel[i+ncm] = v * vfac
	}
}

// record returns the data record covering the epoch jd0+time and the
// fraction of it elapsed. Callers must hold d.mu.
func (d *dataset) record(jd0, time float64) ([]float64, [2]float64, error) {
	var t [2]float64
	et := jd0 + time
	if et < d.start || et > d.end {
		return nil, t, fmt.Errorf("the epoch %.9f is outside the interval [%.1f, %.1f] of '%s'", et, d.start, d.end, d.path)
	}
	// Splitting the subtraction keeps the precision of the fractional day.
	blockLoc := ((jd0 - d.start) + time) / d.step
	nr := uint32(blockLoc)
	t[0] = blockLoc - float64(nr)
	if t[0] == 0 && nr != 0 {
		t[0] = 1.0
		nr--
	}
	t[1] = d.step
	if nr >= d.nrec {
		return nil, t, fmt.Errorf("'%s' is truncated: record %d of the epoch %.9f is missing", d.path, nr, et)
	}

	if d.records != nil {
		off := int(nr) * int(d.ncoeff)
		return d.records[off : off+int(d.ncoeff)], t, nil
	}
	if nr != d.cacheRec {
		if d.file == nil {
			return nil, t, fmt.Errorf("'%s' is closed", d.path)
		}
		raw := make([]byte, d.recsize)
		if _, err := d.file.ReadAt(raw, int64(nr+2)*int64(d.recsize)); err != nil {
			d.cacheRec = ^uint32(0)
			return nil, t, fmt.Errorf("can't read record %d of '%s': %w", nr, d.path, err)
		}
		decodeFloat64s(d.order, raw, d.cache)
		d.cacheRec = nr
	}
	return d.cache, t, nil
}

// row interpolates one ipt row into dst (3 positions, 3 rates) in km and
// km/day. Rows absent from the file leave dst zero and report false.
func (d *dataset) row(rec []float64, t [2]float64, i int, dst *[6]float64) bool {
	e := d.ipt[i]
	if e[1] == 0 || e[2] == 0 {
		*dst = [6]float64{}
		return false
	}
	interp(rec[e[0]-1:], t, int(e[1]), 3, int(e[2]), dst[:])
	return true
}
