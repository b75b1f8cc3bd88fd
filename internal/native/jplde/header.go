// ./internal/native/jplde/header.go
package jplde

/*
Package jplde parses the header record of DE files.

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
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
)

// File structure of a JPL DE binary ephemeris.
//
// Header:
//
//	Bytes 0-251:     three 84-byte title lines, e.g. "JPL Planetary Ephemeris DE405/LE405"
//	Bytes 252-2651:  names of constants 0..399, 6 bytes each
//	Bytes 2652-2675: start JD, end JD, record span in days (float64 each)
//	Bytes 2676-2679: number of constants (int32)
//	Bytes 2680-2695: AU in km, Earth/Moon mass ratio (float64 each)
//	Bytes 2696-2839: ipt[0..11], 12x3 int32 (offset, coefficients, sub-intervals)
//	Bytes 2840-2843: DE number (int32)
//	Bytes 2844-2855: lunar libration pointer, 3 int32
//	Bytes 2856-:     names of constants 400.. when there are more than 400,
//	                 then (DE430 and later) the lunar mantle and TT-TDB
//	                 pointers, 6 int32
//
// Constant values start at byte recsize, one float64 per constant. Data
// record n starts at byte (n+2)*recsize; each holds ncoeff float64: the
// record's start and end JD followed by the Chebyshev coefficients.
//
// ipt rows, in order: Mercury, Venus, Earth-Moon barycenter, Mars, Jupiter,
// Saturn, Uranus, Neptune, Pluto, geocentric Moon, Sun, nutations,
// librations, lunar mantle, TT-TDB.

// maxCheby is the largest coefficient count per component across known DE
// series.
const maxCheby = 18

const (
	titleSize          = 84
	constantNameSize   = 6
	constantNamesStart = titleSize * 3
	headerStart        = constantNamesStart + 400*constantNameSize // 2652
	headerSize         = 5*8 + 41*4
	// start400thConstantName is where the names of constants beyond the first 400 live.
	start400thConstantName = headerStart + headerSize
)

// Plausible Earth/Moon mass ratio bounds; anything else means the header was
// misread.
const (
	minEMRat = 81.30055
	maxEMRat = 81.3008
)

const (
	iptSun        = 10
	iptNutations  = 11
	iptLibrations = 12
	iptMantle     = 13
	iptTTTDB      = 14
)

// dataset is one opened DE file.
type dataset struct {
	path    string
	order   binary.ByteOrder
	name    string
	version int64

	start, end, step float64
	au, emrat        float64
	ipt              [15][3]uint32

	ncoeff  uint32 // float64 per record
	recsize uint32 // bytes per record
	nrec    uint32 // records present in the file

	constNames  []string
	constValues []float64

	mu       sync.Mutex
	file     *os.File
	cache    []float64
	cacheRec uint32
	records  []float64 // every record, once prefetched
}

// quantityDimension returns the number of components of an ipt row.
func quantityDimension(row int) int {
	switch row {
	case iptNutations:
		return 2
	case iptTTTDB:
		return 1
	default:
		return 3
	}
}

// parseTitle extracts the series name and number from the first title line.
func parseTitle(title []byte) (string, int64, error) {
	nameField, numField := title[24:54], title[26:54]
	if bytes.HasPrefix(title, []byte("INPOP")) {
		nameField, numField = title[:30], title[5:30]
	}
	digits := strings.TrimLeft(string(numField), " ")
	i := 0
	for i < len(digits) && digits[i] >= '0' && digits[i] <= '9' {
		i++
	}
	version, err := strconv.ParseInt(digits[:i], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("parse ephemeris number %q: %w", digits[:i], err)
	}
	if n := bytes.IndexByte(nameField, 0); n >= 0 {
		nameField = nameField[:n]
	}
	name := ""
	if fields := strings.Fields(string(nameField)); len(fields) > 0 {
		name = fields[0]
	}
	return name, version, nil
}

// openDataset reads the header and constants of the DE file at path.
func openDataset(path string) (_ *dataset, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("can't open the file '%s': %w", path, err)
	}
	defer func() {
		if err != nil {
			f.Close()
		}
	}()

	head := make([]byte, start400thConstantName)
	if _, err := io.ReadFull(f, head); err != nil {
		return nil, fmt.Errorf("can't read the header of '%s': %w", path, err)
	}

	d := &dataset{path: path, file: f, cacheRec: ^uint32(0)}
	d.name, d.version, err = parseTitle(head[:titleSize])
	if err != nil {
		return nil, fmt.Errorf("'%s' is not a JPL DE binary file: %w", path, err)
	}

	d.order = detectByteOrder(head[headerStart+24 : headerStart+28])
	r := &fieldReader{b: head, order: d.order, off: headerStart}
	d.start = r.float64()
	d.end = r.float64()
	d.step = r.float64()
	ncon := r.uint32()
	d.au = r.float64()
	d.emrat = r.float64()
	for i := 0; i < 12; i++ {
		for j := 0; j < 3; j++ {
			d.ipt[i][j] = r.uint32()
		}
	}
	r.uint32() // DE number, already taken from the title
	for j := 0; j < 3; j++ {
		d.ipt[iptLibrations][j] = r.uint32()
	}

	if d.version >= 430 && ncon != 400 {
		if ncon > 400 {
			if _, err := f.Seek(start400thConstantName+int64(ncon-400)*constantNameSize, io.SeekStart); err != nil {
				return nil, fmt.Errorf("seek past constant names in '%s': %w", path, err)
			}
		} else if _, err := f.Seek(start400thConstantName, io.SeekStart); err != nil {
			return nil, fmt.Errorf("seek past header in '%s': %w", path, err)
		}
		extra := make([]byte, 6*4)
		if _, err := io.ReadFull(f, extra); err != nil {
			return nil, fmt.Errorf("can't read the TT-TDB pointers of '%s': %w", path, err)
		}
		r := &fieldReader{b: extra, order: d.order}
		for i := iptMantle; i <= iptTTTDB; i++ {
			for j := 0; j < 3; j++ {
				d.ipt[i][j] = r.uint32()
			}
		}
	}
	// Garbage in the optional rows: drop them rather than misplace coefficients.
	lib, man := d.ipt[iptLibrations], d.ipt[iptMantle]
	if man[0] != lib[0]+lib[1]*lib[2]*3 || d.ipt[iptTTTDB][0] != man[0]+man[1]*man[2]*3 {
		d.ipt[iptMantle] = [3]uint32{}
		d.ipt[iptTTTDB] = [3]uint32{}
	}

	if d.emrat < minEMRat || d.emrat > maxEMRat {
		return nil, fmt.Errorf("'%s' is corrupt: Earth/Moon mass ratio %f out of range", path, d.emrat)
	}

	kernelSize := uint32(4)
	for i := range d.ipt {
		kernelSize += 2 * d.ipt[i][1] * d.ipt[i][2] * uint32(quantityDimension(i))
	}
	d.ncoeff = kernelSize / 2
	d.recsize = kernelSize * 4
	for i := 0; i <= iptSun; i++ {
		if d.ipt[i][1] >= maxCheby {
			return nil, fmt.Errorf("'%s' is corrupt: %d coefficients per component", path, d.ipt[i][1])
		}
		if d.ipt[i][1] > 0 && int(d.ipt[i][0]-1)+int(d.ipt[i][1]*d.ipt[i][2])*3 > int(d.ncoeff) {
			return nil, fmt.Errorf("'%s' is corrupt: coefficients of row %d overflow the record", path, i)
		}
	}
	d.cache = make([]float64, d.ncoeff)

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat '%s': %w", path, err)
	}
	if n := st.Size() / int64(d.recsize); n > 2 {
		d.nrec = uint32(n - 2)
	}

	if err := d.readConstants(f, head, ncon); err != nil {
		return nil, err
	}
	logger().Debug("opened DE file", "path", path, "name", d.name, "version", d.version,
		"start", d.start, "end", d.end, "ncoeff", d.ncoeff, "records", d.nrec)
	return d, nil
}

// readConstants loads every constant name and value.
func (d *dataset) readConstants(f *os.File, head []byte, ncon uint32) error {
	names := make([]byte, int(ncon)*constantNameSize)
	n400 := min(int(ncon), 400) * constantNameSize
	copy(names, head[constantNamesStart:constantNamesStart+n400])
	if ncon > 400 {
		if _, err := f.ReadAt(names[n400:], start400thConstantName); err != nil {
			return fmt.Errorf("can't read the constant names of '%s': %w", d.path, err)
		}
	}
	raw := make([]byte, int(ncon)*8)
	if _, err := f.ReadAt(raw, int64(d.recsize)); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("can't read the constant values of '%s': %w", d.path, err)
	}
	d.constNames = make([]string, ncon)
	d.constValues = make([]float64, ncon)
	decodeFloat64s(d.order, raw, d.constValues)
	for i := range d.constNames {
		d.constNames[i] = strings.TrimSpace(string(bytes.TrimRight(names[i*constantNameSize:(i+1)*constantNameSize], "\x00")))
	}
	return nil
}

// close releases the file. Prefetched datasets have none left.
func (d *dataset) close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}
