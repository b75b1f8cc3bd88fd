// ./api.go

/*
Package calceph provides safe access to planetary and lunar ephemerides
computed by a native ephemeris library.

The native library keeps each opened dataset behind an opaque handle, reports
failures through one process-wide callback, and selects bodies and units by
small integer codes. This package owns the handle, turns the callback into a
typed error per call, and maps typed targets and units onto the codes.

Bindings:
  - calceph: libcalceph linked at build time (build tag "calceph", cgo).
  - calceph-dynamic: libcalceph loaded at run time; set CALCEPH_LIBRARY to
    its path if it is not on the loader path.
  - jplde: a pure-Go reader for JPL DE binary files, always available.

Usage:

 1. Open a file:
    ```go
    eph, err := calceph.Open("de405.bin")
    if err != nil {
        log.Fatal(err)
    }
    defer eph.Close()
    ```

 2. Calculate position and velocity:
    ```go
    pv, err := eph.CalculatePV(2451545, 0, calceph.MarsBarycenter, calceph.Sun,
        calceph.AstronomicalUnit, calceph.Day)
    if err != nil {
        log.Fatal(err)
    }
    pos := pv.Position()
    fmt.Printf("X: %f AU, Y: %f AU, Z: %f AU\n", pos.X, pos.Y, pos.Z)
    ```

 3. Read constants and metadata:
    ```go
    au, err := eph.Constant("AU")
    ts, err := eph.Timescale()
    span, err := eph.TimeSpan()
    ```

 4. Share a prefetched dataset between goroutines:
    ```go
    shared, err := calceph.OpenShared([]string{"de405.bin"})
    ```

Errors:
A path the native library cannot receive fails with ErrBadPath before any
native call. Failures reported by the native library are *NativeError values
carrying the library's message; they match ErrNativeFailure. A timescale code
outside TDB and TCB is an *UnknownTimescaleError. Operations on a closed
Ephemeris return ErrClosed.

License:
This program is free software; you can redistribute it and/or
modify it under the terms of the GNU General Public License
as published by the Free Software Foundation; either version 2
of the License, or (at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program; if not, write to the Free Software
Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston, MA
02110-1301, USA.
*/
package calceph
