// ./path_other.go

//go:build !unix

package calceph

/*
Package calceph converts paths for the native library on other systems.

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
	"unicode/utf8"
)

// nativePath returns the bytes handed to the native open. Outside POSIX the
// library expects UTF-8 without interior NUL.
func nativePath(path string) ([]byte, error) {
	if !utf8.ValidString(path) {
		return nil, fmt.Errorf("%q is not valid UTF-8: %w", path, ErrBadPath)
	}
	if strings.IndexByte(path, 0) >= 0 {
		return nil, fmt.Errorf("%q contains a NUL byte: %w", path, ErrBadPath)
	}
	return []byte(path), nil
}
