// ./codes.go
package calceph

/*
Package calceph maps targets and units onto native codes.

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
	"math"
	"strconv"
	"strings"

	"github.com/mshafiee/calceph/internal/native"
)

// Target is a body usable as the target or the center of a query. Its value
// is the code the native library expects.
type Target int32

const (
	// MercuryBarycenter represents the barycenter of the Mercury system.
	MercuryBarycenter Target = 1
	// VenusBarycenter represents the barycenter of the Venus system.
	VenusBarycenter Target = 2
	// Earth represents the planet Earth.
	Earth Target = 3
	// MarsBarycenter represents the barycenter of the Mars system.
	MarsBarycenter Target = 4
	// JupiterBarycenter represents the barycenter of the Jupiter system.
	JupiterBarycenter Target = 5
	// SaturnBarycenter represents the barycenter of the Saturn system.
	SaturnBarycenter Target = 6
	// UranusBarycenter represents the barycenter of the Uranus system.
	UranusBarycenter Target = 7
	// NeptuneBarycenter represents the barycenter of the Neptune system.
	NeptuneBarycenter Target = 8
	// PlutoBarycenter represents the barycenter of the Pluto system.
	PlutoBarycenter Target = 9
	// Moon represents the Earth's Moon.
	Moon Target = 10
	// Sun represents the Sun.
	Sun Target = 11
	// SolarSystemBarycenter represents the Solar System Barycenter.
	SolarSystemBarycenter Target = 12
	// EarthMoonBarycenter represents the Earth-Moon Barycenter.
	EarthMoonBarycenter Target = 13
)

// AsteroidBase is the code offset of asteroid targets.
const AsteroidBase = native.AsteroidBase

// Asteroid returns the target for asteroid number n. For n < 0, or n too
// large for a code, it returns Target(0), which is not Valid.
func Asteroid(n int32) Target {
	if n < 0 || n > math.MaxInt32-AsteroidBase {
		return 0
	}
	return Target(AsteroidBase + n)
}

var targetNames = [...]string{
	MercuryBarycenter:     "mercury",
	VenusBarycenter:       "venus",
	Earth:                 "earth",
	MarsBarycenter:        "mars",
	JupiterBarycenter:     "jupiter",
	SaturnBarycenter:      "saturn",
	UranusBarycenter:      "uranus",
	NeptuneBarycenter:     "neptune",
	PlutoBarycenter:       "pluto",
	Moon:                  "moon",
	Sun:                   "sun",
	SolarSystemBarycenter: "ssb",
	EarthMoonBarycenter:   "emb",
}

// Bodies lists the named targets in code order.
func Bodies() []Target {
	out := make([]Target, 0, len(targetNames)-1)
	for t := MercuryBarycenter; t <= EarthMoonBarycenter; t++ {
		out = append(out, t)
	}
	return out
}

// IsAsteroid reports whether t was built by Asteroid with n >= 0.
func (t Target) IsAsteroid() bool { return int32(t) >= AsteroidBase }

// AsteroidNumber returns n for t == Asteroid(n).
func (t Target) AsteroidNumber() (int32, bool) {
	if !t.IsAsteroid() {
		return 0, false
	}
	return int32(t) - AsteroidBase, true
}

// Valid reports whether t is a named body or an asteroid.
func (t Target) Valid() bool {
	return (t >= MercuryBarycenter && t <= EarthMoonBarycenter) || t.IsAsteroid()
}

// Code returns the native code of t.
func (t Target) Code() int32 { return int32(t) }

func (t Target) String() string {
	if n, ok := t.AsteroidNumber(); ok {
		return "asteroid:" + strconv.Itoa(int(n))
	}
	if t >= MercuryBarycenter && t <= EarthMoonBarycenter {
		return targetNames[t]
	}
	return fmt.Sprintf("Target(%d)", int32(t))
}

// ParseTarget accepts the names produced by String ("mars", "ssb",
// "asteroid:433"), a few long forms, and bare native codes.
func ParseTarget(s string) (Target, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "solar-system-barycenter", "solarsystembarycenter":
		return SolarSystemBarycenter, nil
	case "earth-moon-barycenter", "earthmoonbarycenter":
		return EarthMoonBarycenter, nil
	}
	for t := MercuryBarycenter; t <= EarthMoonBarycenter; t++ {
		if targetNames[t] == s {
			return t, nil
		}
	}
	if rest, ok := strings.CutPrefix(s, "asteroid:"); ok {
		n, err := strconv.ParseInt(rest, 10, 32)
		if err != nil || n < 0 || n > int64(math.MaxInt32-AsteroidBase) {
			return 0, fmt.Errorf("parse target %q: %w", s, ErrInvalidArgument)
		}
		return Asteroid(int32(n)), nil
	}
	if n, err := strconv.ParseInt(s, 10, 32); err == nil && Target(n).Valid() {
		return Target(n), nil
	}
	return 0, fmt.Errorf("parse target %q: %w", s, ErrInvalidArgument)
}

// PositionUnit selects the length unit of a result.
type PositionUnit int

const (
	// AstronomicalUnit expresses positions in au.
	AstronomicalUnit PositionUnit = iota + 1
	// Kilometer expresses positions in km.
	Kilometer
)

// Code returns the native flag of u.
func (u PositionUnit) Code() (int32, bool) {
	switch u {
	case AstronomicalUnit:
		return native.UnitAU, true
	case Kilometer:
		return native.UnitKM, true
	}
	return 0, false
}

func (u PositionUnit) String() string {
	switch u {
	case AstronomicalUnit:
		return "au"
	case Kilometer:
		return "km"
	}
	return fmt.Sprintf("PositionUnit(%d)", int(u))
}

// ParsePositionUnit accepts "au" and "km".
func ParsePositionUnit(s string) (PositionUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "au", "astronomicalunit":
		return AstronomicalUnit, nil
	case "km", "kilometer":
		return Kilometer, nil
	}
	return 0, fmt.Errorf("parse position unit %q: %w", s, ErrInvalidArgument)
}

// TimeUnit selects the time unit of velocities.
type TimeUnit int

const (
	// Day expresses velocities per day.
	Day TimeUnit = iota + 1
	// Second expresses velocities per second.
	Second
)

// Code returns the native flag of u.
func (u TimeUnit) Code() (int32, bool) {
	switch u {
	case Day:
		return native.UnitDay, true
	case Second:
		return native.UnitSec, true
	}
	return 0, false
}

func (u TimeUnit) String() string {
	switch u {
	case Day:
		return "day"
	case Second:
		return "sec"
	}
	return fmt.Sprintf("TimeUnit(%d)", int(u))
}

// ParseTimeUnit accepts "day" and "sec".
func ParseTimeUnit(s string) (TimeUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "d", "days":
		return Day, nil
	case "sec", "s", "second", "seconds":
		return Second, nil
	}
	return 0, fmt.Errorf("parse time unit %q: %w", s, ErrInvalidArgument)
}

// unitCode combines one position flag and one time flag.
func unitCode(pu PositionUnit, tu TimeUnit) (int32, error) {
	p, ok := pu.Code()
	if !ok {
		return 0, fmt.Errorf("%v: %w", pu, ErrInvalidArgument)
	}
	t, ok := tu.Code()
	if !ok {
		return 0, fmt.Errorf("%v: %w", tu, ErrInvalidArgument)
	}
	return p + t, nil
}

// Timescale is the time standard of the epochs of a file.
type Timescale int

const (
	// TDB is Barycentric Dynamical Time.
	TDB Timescale = iota + 1
	// TCB is Barycentric Coordinate Time.
	TCB
)

func (s Timescale) String() string {
	switch s {
	case TDB:
		return "TDB"
	case TCB:
		return "TCB"
	}
	return fmt.Sprintf("Timescale(%d)", int(s))
}

// timescaleFromCode maps the native code.
func timescaleFromCode(code int32) (Timescale, bool) {
	switch code {
	case native.TimescaleTDB:
		return TDB, true
	case native.TimescaleTCB:
		return TCB, true
	}
	return 0, false
}

// Continuity describes gaps in the time span of a dataset.
type Continuity int

const (
	// Continuous means every quantity is available over the whole span.
	Continuous Continuity = iota + 1
	// GapsInSomeBodies means some bodies lack data over parts of the span.
	GapsInSomeBodies
	// GapsInAllQuantities means the span has holes for every quantity.
	GapsInAllQuantities
)

func (c Continuity) String() string {
	switch c {
	case Continuous:
		return "continuous"
	case GapsInSomeBodies:
		return "gaps in some bodies"
	case GapsInAllQuantities:
		return "gaps in all quantities"
	}
	return fmt.Sprintf("Continuity(%d)", int(c))
}
