// ./internal/native/jplde/binary.go
package jplde

/*
Package jplde provides helper functions for reading binary data.

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
	"encoding/binary"
	"math"
)

// DE files are normally little-endian; a header whose constant count only
// makes sense byte-swapped marks a big-endian file.
const maxPlausibleConstants = 65536

// detectByteOrder picks the order under which the 4-byte constant count is
// plausible.
func detectByteOrder(ncon []byte) binary.ByteOrder {
	if binary.LittleEndian.Uint32(ncon) > maxPlausibleConstants {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// fieldReader decodes consecutive header fields from a byte slice.
type fieldReader struct {
	b     []byte
	order binary.ByteOrder
	off   int
}

func (r *fieldReader) float64() float64 {
	v := math.Float64frombits(r.order.Uint64(r.b[r.off:]))
	r.off += 8
	return v
}

func (r *fieldReader) uint32() uint32 {
	v := r.order.Uint32(r.b[r.off:])
	r.off += 4
	return v
}

// decodeFloat64s fills dst from b, which must hold 8*len(dst) bytes.
func decodeFloat64s(order binary.ByteOrder, b []byte, dst []float64) {
	for i := range dst {
		dst[i] = math.Float64frombits(order.Uint64(b[i*8:]))
	}
}
