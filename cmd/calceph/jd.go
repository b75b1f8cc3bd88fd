// ./cmd/calceph/jd.go
package main

/*
Command calceph parses Julian dates.

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
	"strconv"
	"strings"
)

// parseJD splits a Julian date written in decimal into its integer part and
// fraction without going through a single float64 sum.
func parseJD(s string) (float64, float64, error) {
	s = strings.TrimSpace(s)
	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" || whole == "-" || whole == "+" {
		whole += "0"
	}
	jd0, err := strconv.ParseFloat(whole, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("julian date %q: %w", s, err)
	}
	if !hasFrac || frac == "" {
		return jd0, 0, nil
	}
	if strings.ContainsAny(frac, "+-eE") {
		return 0, 0, fmt.Errorf("julian date %q: exponents are not supported", s)
	}
	f, err := strconv.ParseFloat("0."+frac, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("julian date %q: %w", s, err)
	}
	if strings.HasPrefix(whole, "-") {
		f = -f
	}
	return jd0, f, nil
}
