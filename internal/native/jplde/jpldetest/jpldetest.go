// ./internal/native/jplde/jpldetest/jpldetest.go

// Package jpldetest writes small synthetic JPL DE binary files whose
// interpolated states are known in closed form.
//
// Every body row holds, in each sub-interval, a Chebyshev series with only
// the first two terms set, so a component evaluates to Offset + Slope*tc
// where tc in [-1, 1] is the normalized time within the sub-interval.
package jpldetest

/*
Package jpldetest builds synthetic DE files.

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
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
)

// Rows of the interpolation pointer table.
const (
	RowMercury = 0
	RowVenus   = 1
	RowEMB     = 2
	RowMars    = 3
	RowJupiter = 4
	RowSaturn  = 5
	RowUranus  = 6
	RowNeptune = 7
	RowPluto   = 8
	RowMoon    = 9 // geocentric
	RowSun     = 10
)

const bodyRows = 11

// Linear is the closed form of one row, in km.
type Linear struct {
	Offset [3]float64
	Slope  [3]float64
}

// Constant is a named header constant.
type Constant struct {
	Name  string
	Value float64
}

// File describes a synthetic DE file.
type File struct {
	Title        string
	Version      int32
	Start        float64
	Step         float64
	Records      int
	AU           float64
	EMRat        float64
	Coefficients int // per component
	SubIntervals int
	Constants    []Constant
	Rows         map[int]Linear
	BigEndian    bool
}

// Mars and Moon values used by Standard.
var (
	MarsRow = Linear{
		Offset: [3]float64{2.0e8, -1.0e8, 5.0e7},
		Slope:  [3]float64{3.2e6, 1.6e6, -8.0e5},
	}
	MoonRow = Linear{
		Offset: [3]float64{3.8e5, -1.2e5, 4.0e4},
		Slope:  [3]float64{-2.0e4, 1.0e4, 5.0e3},
	}
	EMBRow = Linear{
		Offset: [3]float64{-2.6e7, 1.33e8, 5.77e7},
		Slope:  [3]float64{-2.4e6, -4.0e5, -1.7e5},
	}
	SunRow = Linear{
		Offset: [3]float64{4.5e5, 6.0e5, 2.4e5},
		Slope:  [3]float64{-1.0e2, 2.0e2, 1.0e2},
	}
)

// Standard describes a DE405-like file covering JD 2442448.5 to 2442512.5 in
// two 32-day records.
func Standard() File {
	return File{
		Title:        "JPL Planetary Ephemeris DE405/LE405",
		Version:      405,
		Start:        2442448.5,
		Step:         32,
		Records:      2,
		AU:           149597870.7,
		EMRat:        81.30056,
		Coefficients: 14,
		SubIntervals: 4,
		Constants: []Constant{
			{"DENUM", 405},
			{"AU", 149597870.7},
			{"EMRAT", 81.30056},
			{"GMS", 2.959122082855911e-04},
			{"GM4", 9.549548695550771e-11},
		},
		Rows: map[int]Linear{
			RowEMB:  EMBRow,
			RowMars: MarsRow,
			RowMoon: MoonRow,
			RowSun:  SunRow,
		},
	}
}

// End returns the last covered JD.
func (f File) End() float64 { return f.Start + float64(f.Records)*f.Step }

func (f File) ncoeff() int { return 2 + bodyRows*3*f.Coefficients*f.SubIntervals }

func (f File) rowOffset(row int) int { return 2 + row*3*f.Coefficients*f.SubIntervals }

// Bytes renders the file.
func (f File) Bytes() ([]byte, error) {
	if f.Coefficients < 2 || f.Coefficients >= 18 || f.SubIntervals < 1 {
		return nil, fmt.Errorf("jpldetest: %d coefficients over %d sub-intervals", f.Coefficients, f.SubIntervals)
	}
	ncoeff := f.ncoeff()
	recsize := ncoeff * 8
	if recsize < 2856 || len(f.Constants)*8 > recsize {
		return nil, errors.New("jpldetest: records too small to hold the header")
	}
	var order binary.ByteOrder = binary.LittleEndian
	if f.BigEndian {
		order = binary.BigEndian
	}
	b := make([]byte, (2+f.Records)*recsize)
	for i := 0; i < 252; i++ {
		b[i] = ' '
	}
	copy(b, f.Title)
	copy(b[84:], fmt.Sprintf("Start Epoch: JED= %.1f", f.Start))
	copy(b[168:], fmt.Sprintf("Final Epoch: JED= %.1f", f.End()))
	for i := 0; i < 400*6; i++ {
		b[252+i] = ' '
	}
	for i, c := range f.Constants {
		copy(b[252+i*6:252+(i+1)*6], c.Name)
	}

	off := 2652
	putF := func(v float64) { order.PutUint64(b[off:], math.Float64bits(v)); off += 8 }
	putI := func(v uint32) { order.PutUint32(b[off:], v); off += 4 }
	putF(f.Start)
	putF(f.End())
	putF(f.Step)
	putI(uint32(len(f.Constants)))
	putF(f.AU)
	putF(f.EMRat)
	for row := 0; row < 12; row++ {
		if row < bodyRows {
			putI(uint32(f.rowOffset(row) + 1))
			putI(uint32(f.Coefficients))
			putI(uint32(f.SubIntervals))
		} else {
			putI(0)
			putI(0)
			putI(0)
		}
	}
	putI(uint32(f.Version))
	putI(0)
	putI(0)
	putI(0)

	off = recsize
	for _, c := range f.Constants {
		putF(c.Value)
	}

	for n := 0; n < f.Records; n++ {
		off = (n + 2) * recsize
		base := off
		putF(f.Start + float64(n)*f.Step)
		putF(f.Start + float64(n+1)*f.Step)
		for row, lin := range f.Rows {
			for l := 0; l < f.SubIntervals; l++ {
				for c := 0; c < 3; c++ {
					idx := f.rowOffset(row) + f.Coefficients*(c+l*3)
					off = base + idx*8
					putF(lin.Offset[c])
					putF(lin.Slope[c])
				}
			}
		}
	}
	return b, nil
}

// Write renders the file to path.
func (f File) Write(path string) error {
	b, err := f.Bytes()
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// State returns the barycentric-frame state of a row at JD et in km and
// km/day, as the interpolation of the file yields it. et must not fall on a
// record boundary.
func (f File) State(row int, et float64) [6]float64 {
	lin := f.Rows[row]
	blockLoc := (et - f.Start) / f.Step
	frac := blockLoc - math.Floor(blockLoc)
	na := float64(f.SubIntervals)
	_, sub := math.Modf(na * frac)
	tc := 2*sub - 1
	vfac := 2 * na / f.Step
	var out [6]float64
	for c := 0; c < 3; c++ {
		out[c] = lin.Offset[c] + lin.Slope[c]*tc
		out[c+3] = lin.Slope[c] * vfac
	}
	return out
}
