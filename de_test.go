package calceph

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/mshafiee/calceph/internal/native/jplde/jpldetest"
)

const auKm = 149597870.7

func writeDE(t *testing.T, f jpldetest.File) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "de405.bin")
	require.NoError(t, f.Write(path))
	return path
}

func openDE(t *testing.T, f jpldetest.File, opts ...Option) *Ephemeris {
	t.Helper()
	eph, err := Open(writeDE(t, f), append([]Option{WithBackend("jplde")}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { eph.Close() })
	return eph
}

// Mars barycenter relative to the solar-system barycenter at JD 2442457.5,
// in au and au/s.
var marsGolden = StateVector{
	1.320874415360245,
	-0.6764802167735667,
	0.33824010838678337,
	6.189432520618931e-08,
	3.0947162603094656e-08,
	-1.5473581301547328e-08,
}

func TestMarsGoldenVector(t *testing.T) {
	for _, bigEndian := range []bool{false, true} {
		f := jpldetest.Standard()
		f.BigEndian = bigEndian
		eph := openDE(t, f)

		pv, err := eph.CalculatePV(2442457, 0.5, MarsBarycenter, SolarSystemBarycenter, AstronomicalUnit, Second)
		require.NoError(t, err)
		for i := range pv {
			assert.InDelta(t, marsGolden[i], pv[i], 1e-14*max(1, math.Abs(marsGolden[i])), "component %d, big endian %v", i, bigEndian)
		}
	}
}

func TestMarsKilometersPerDay(t *testing.T) {
	f := jpldetest.Standard()
	eph := openDE(t, f)

	for _, et := range []float64{2442450.25, 2442470.1, 2442499.9} {
		want := f.State(jpldetest.RowMars, et)
		pv, err := eph.CalculatePV(et, 0, MarsBarycenter, SolarSystemBarycenter, Kilometer, Day)
		require.NoError(t, err)
		for i := range pv {
			assert.InDelta(t, want[i], pv[i], 1e-6, "et %v component %d", et, i)
		}
	}
}

func TestEarthMoonConsistency(t *testing.T) {
	f := jpldetest.Standard()
	eph := openDE(t, f)
	const jd0, frac = 2442480, 0.3

	earth, err := eph.CalculatePV(jd0, frac, Earth, SolarSystemBarycenter, Kilometer, Day)
	require.NoError(t, err)
	moon, err := eph.CalculatePV(jd0, frac, Moon, SolarSystemBarycenter, Kilometer, Day)
	require.NoError(t, err)
	geo, err := eph.CalculatePV(jd0, frac, Moon, Earth, Kilometer, Day)
	require.NoError(t, err)
	emb, err := eph.CalculatePV(jd0, frac, EarthMoonBarycenter, SolarSystemBarycenter, Kilometer, Day)
	require.NoError(t, err)

	want := f.State(jpldetest.RowMoon, jd0+frac)
	emrat := f.EMRat
	for i := range geo {
		assert.InDelta(t, want[i], geo[i], 1e-6)
		assert.InDelta(t, moon[i]-earth[i], geo[i], 1e-6)
		assert.InDelta(t, emb[i], earth[i]+geo[i]/(1+emrat), 1e-6)
	}

	back, err := eph.CalculatePV(jd0, frac, Earth, Moon, Kilometer, Day)
	require.NoError(t, err)
	for i := range back {
		assert.InDelta(t, -geo[i], back[i], 1e-9)
	}

	same, err := eph.CalculatePV(jd0, frac, Sun, Sun, AstronomicalUnit, Day)
	require.NoError(t, err)
	assert.Equal(t, StateVector{}, same)
}

func TestDEConstantsAndMetadata(t *testing.T) {
	eph := openDE(t, jpldetest.Standard())

	au, err := eph.Constant("AU")
	require.NoError(t, err)
	assert.InDelta(t, auKm, au, 1e-6)

	all, err := eph.Constants()
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, Constant{Name: "DENUM", Value: 405}, all[0])

	_, err = eph.Constant("GM_Vulcan")
	assert.ErrorIs(t, err, ErrNativeFailure)

	ts, err := eph.Timescale()
	require.NoError(t, err)
	assert.Equal(t, TDB, ts)

	span, err := eph.TimeSpan()
	require.NoError(t, err)
	assert.Equal(t, TimeSpan{First: 2442448.5, Last: 2442512.5, Continuity: Continuous}, span)

	v, err := eph.FileVersion()
	require.NoError(t, err)
	assert.Equal(t, "DE405", v)
	assert.Equal(t, "jplde", eph.Backend())
}

func TestDETCBTimescale(t *testing.T) {
	f := jpldetest.Standard()
	f.Constants = append(f.Constants, jpldetest.Constant{Name: "TIMESC", Value: 1})
	eph := openDE(t, f)

	ts, err := eph.Timescale()
	require.NoError(t, err)
	assert.Equal(t, TCB, ts)
}

func TestDEFailures(t *testing.T) {
	eph := openDE(t, jpldetest.Standard())

	_, err := eph.CalculatePV(2442400, 0, MarsBarycenter, Sun, AstronomicalUnit, Day)
	var nerr *NativeError
	require.ErrorAs(t, err, &nerr)
	assert.Contains(t, nerr.Message, "outside the interval")

	_, err = eph.CalculatePV(2442457, 0.5, Asteroid(433), Sun, AstronomicalUnit, Day)
	require.ErrorAs(t, err, &nerr)
	assert.Contains(t, nerr.Message, "asteroid 433")
}

func TestDEOpenNonexistentFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.bin"), WithBackend("jplde"))
	var nerr *NativeError
	require.ErrorAs(t, err, &nerr)
	assert.NotEmpty(t, nerr.Message)
	assert.Contains(t, nerr.Message, "absent.bin")
}

func TestDEPrefetchTruncated(t *testing.T) {
	f := jpldetest.Standard()
	b, err := f.Bytes()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "short.bin")
	require.NoError(t, os.WriteFile(path, b[:len(b)-100], 0644))

	eph, err := Open(path, WithBackend("jplde"))
	require.NoError(t, err)
	defer eph.Close()

	err = eph.Prefetch()
	var nerr *NativeError
	require.ErrorAs(t, err, &nerr)
	assert.Contains(t, nerr.Message, "truncated")
	assert.False(t, eph.Prefetched())

	_, err = eph.CalculatePV(2442457, 0.5, MarsBarycenter, SolarSystemBarycenter, AstronomicalUnit, Day)
	assert.NoError(t, err)
}

func TestDESharedConcurrentQueries(t *testing.T) {
	f := jpldetest.Standard()
	path := writeDE(t, f)

	var g errgroup.Group
	for w := 0; w < 4; w++ {
		shared, err := OpenShared([]string{path}, WithBackend("jplde"))
		require.NoError(t, err)
		defer shared.Close()

		g.Go(func() error {
			for i := 0; i < 50; i++ {
				et := 2442449 + float64(i)
				pv, err := shared.CalculatePV(et, 0.25, MarsBarycenter, SolarSystemBarycenter, Kilometer, Day)
				if err != nil {
					return err
				}
				want := f.State(jpldetest.RowMars, et+0.25)
				if math.Abs(pv[0]-want[0]) > 1e-6 {
					t.Errorf("et %v: x = %v, want %v", et, pv[0], want[0])
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

// TestRealEphemeris runs against the file named by CALCEPH_TEST_EPHEMERIS,
// e.g. a DE405 binary covering 1975.
func TestRealEphemeris(t *testing.T) {
	path := os.Getenv("CALCEPH_TEST_EPHEMERIS")
	if path == "" {
		t.Skip("CALCEPH_TEST_EPHEMERIS not set")
	}
	eph, err := Open(path, WithPrefetch())
	require.NoError(t, err)
	defer eph.Close()

	au, err := eph.Constant("AU")
	require.NoError(t, err)
	assert.InDelta(t, auKm, au, 1e-3)

	pv, err := eph.CalculatePV(2442457, 0.5, MarsBarycenter, SolarSystemBarycenter, AstronomicalUnit, Second)
	require.NoError(t, err)
	pos := pv.Position()
	r := pos.X*pos.X + pos.Y*pos.Y + pos.Z*pos.Z
	assert.InDelta(t, 1.5*1.5, r, 1.0, "Mars should lie between 1.38 and 1.67 au from the barycenter")
}
