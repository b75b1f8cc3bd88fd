// ./path_unix.go

//go:build unix

package calceph

/*
Package calceph converts paths for the native library on Unix systems.

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
	"bytes"
	"fmt"
)

// nativePath returns the bytes handed to the native open. File names on
// POSIX systems are byte strings; only NUL cannot be passed.
func nativePath(path string) ([]byte, error) {
	b := []byte(path)
	if bytes.IndexByte(b, 0) >= 0 {
		return nil, fmt.Errorf("%q contains a NUL byte: %w", path, ErrBadPath)
	}
	return b, nil
}
