package calceph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetCodes(t *testing.T) {
	bodies := Bodies()
	require.Len(t, bodies, 13)
	for i, b := range bodies {
		assert.Equal(t, int32(i+1), b.Code())
		assert.True(t, b.Valid())
		assert.False(t, b.IsAsteroid())
	}
	assert.Equal(t, int32(12), SolarSystemBarycenter.Code())
	assert.Equal(t, int32(3), Earth.Code())
}

func TestAsteroidCodes(t *testing.T) {
	for _, n := range []int32{0, 1, 4, 433, 99942, 1000000} {
		a := Asteroid(n)
		assert.Equal(t, AsteroidBase+n, a.Code())
		assert.True(t, a.Valid())
		assert.True(t, a.IsAsteroid())
		got, ok := a.AsteroidNumber()
		assert.True(t, ok)
		assert.Equal(t, n, got)
		for _, b := range Bodies() {
			assert.NotEqual(t, b.Code(), a.Code())
		}
	}
	assert.False(t, Asteroid(-5).Valid())
}

func TestAsteroidOutOfRange(t *testing.T) {
	for _, n := range []int32{-1, -5, -1999990, -AsteroidBase, math.MinInt32, math.MaxInt32 - AsteroidBase + 1, math.MaxInt32} {
		a := Asteroid(n)
		assert.False(t, a.Valid(), "Asteroid(%d)", n)
		assert.False(t, a.IsAsteroid(), "Asteroid(%d)", n)
		assert.NotEqual(t, Moon, a)
	}
	last := Asteroid(math.MaxInt32 - AsteroidBase)
	assert.True(t, last.Valid())
	assert.Equal(t, int32(math.MaxInt32), last.Code())
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		in      string
		want    Target
		wantErr bool
	}{
		{"mars", MarsBarycenter, false},
		{" Moon ", Moon, false},
		{"ssb", SolarSystemBarycenter, false},
		{"earth-moon-barycenter", EarthMoonBarycenter, false},
		{"asteroid:433", Asteroid(433), false},
		{"11", Sun, false},
		{"2000004", Asteroid(4), false},
		{"asteroid:-1", 0, true},
		{"asteroid:x", 0, true},
		{"vulcan", 0, true},
		{"14", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTarget(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTargetStringRoundTrip(t *testing.T) {
	for _, b := range append(Bodies(), Asteroid(433)) {
		got, err := ParseTarget(b.String())
		require.NoError(t, err)
		assert.Equal(t, b, got)
	}
	assert.Equal(t, "Target(0)", Target(0).String())
}

func TestUnitCode(t *testing.T) {
	tests := []struct {
		pu   PositionUnit
		tu   TimeUnit
		want int32
	}{
		{AstronomicalUnit, Day, 1 + 4},
		{AstronomicalUnit, Second, 1 + 8},
		{Kilometer, Day, 2 + 4},
		{Kilometer, Second, 2 + 8},
	}
	for _, tt := range tests {
		got, err := unitCode(tt.pu, tt.tu)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%v/%v", tt.pu, tt.tu)
	}

	_, err := unitCode(PositionUnit(3), Day)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = unitCode(Kilometer, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestParseUnits(t *testing.T) {
	pu, err := ParsePositionUnit("KM")
	require.NoError(t, err)
	assert.Equal(t, Kilometer, pu)
	pu, err = ParsePositionUnit(AstronomicalUnit.String())
	require.NoError(t, err)
	assert.Equal(t, AstronomicalUnit, pu)
	_, err = ParsePositionUnit("ly")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	tu, err := ParseTimeUnit("sec")
	require.NoError(t, err)
	assert.Equal(t, Second, tu)
	tu, err = ParseTimeUnit(Day.String())
	require.NoError(t, err)
	assert.Equal(t, Day, tu)
	_, err = ParseTimeUnit("year")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTimescaleFromCode(t *testing.T) {
	ts, ok := timescaleFromCode(1)
	assert.True(t, ok)
	assert.Equal(t, TDB, ts)
	ts, ok = timescaleFromCode(2)
	assert.True(t, ok)
	assert.Equal(t, TCB, ts)
	for _, code := range []int32{0, 3, -1, 255} {
		_, ok := timescaleFromCode(code)
		assert.False(t, ok, code)
	}
	assert.Equal(t, "TCB", TCB.String())
}
