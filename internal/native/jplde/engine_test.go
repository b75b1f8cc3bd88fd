package jplde

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mshafiee/calceph/internal/native"
	"github.com/mshafiee/calceph/internal/native/jplde/jpldetest"
)

// messages collects what the engine reports to the error handler.
type messages struct {
	mu   sync.Mutex
	list []string
}

func (m *messages) handle(msg []byte) {
	m.mu.Lock()
	m.list = append(m.list, string(msg))
	m.mu.Unlock()
}

func (m *messages) last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.list) == 0 {
		return ""
	}
	return m.list[len(m.list)-1]
}

func newEngine(t *testing.T) (*Engine, *messages) {
	t.Helper()
	e := New()
	m := &messages{}
	e.SetErrorHandler(m.handle)
	t.Cleanup(func() { e.SetErrorHandler(nil) })
	return e, m
}

func writeFile(t *testing.T, f jpldetest.File) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "de.bin")
	require.NoError(t, f.Write(path))
	return path
}

func openFile(t *testing.T, e *Engine, path string) native.Handle {
	t.Helper()
	h := e.Open([][]byte{[]byte(path)})
	require.NotZero(t, h)
	t.Cleanup(func() { e.Close(h) })
	return h
}

func TestOpenReadsHeader(t *testing.T) {
	for _, bigEndian := range []bool{false, true} {
		f := jpldetest.Standard()
		f.BigEndian = bigEndian
		e, _ := newEngine(t)
		h := openFile(t, e, writeFile(t, f))

		d := e.lookup(h)
		require.NotNil(t, d)
		assert.Equal(t, "DE405/LE405", d.name)
		assert.EqualValues(t, 405, d.version)
		assert.Equal(t, f.Start, d.start)
		assert.Equal(t, f.End(), d.end)
		assert.Equal(t, f.Step, d.step)
		assert.Equal(t, f.EMRat, d.emrat)
		assert.EqualValues(t, 1850, d.ncoeff)
		assert.EqualValues(t, 14800, d.recsize)
		assert.EqualValues(t, 2, d.nrec)
		assert.Equal(t, [3]uint32{3 + 3*14*4*3, 14, 4}, d.ipt[3])
		if bigEndian {
			assert.Equal(t, binary.BigEndian, d.order)
		} else {
			assert.Equal(t, binary.LittleEndian, d.order)
		}
	}
}

func TestOpenFailures(t *testing.T) {
	e, m := newEngine(t)

	assert.Zero(t, e.Open([][]byte{[]byte(filepath.Join(t.TempDir(), "absent.bin"))}))
	assert.Contains(t, m.last(), "can't open the file")

	path := writeFile(t, jpldetest.Standard())
	assert.Zero(t, e.Open([][]byte{[]byte(path), []byte(path)}))
	assert.Contains(t, m.last(), "single file")

	junk := filepath.Join(t.TempDir(), "junk.bin")
	require.NoError(t, os.WriteFile(junk, make([]byte, 4000), 0644))
	assert.Zero(t, e.Open([][]byte{[]byte(junk)}))
	assert.Contains(t, m.last(), "junk.bin")

	short := filepath.Join(t.TempDir(), "short.bin")
	require.NoError(t, os.WriteFile(short, []byte("JPL"), 0644))
	assert.Zero(t, e.Open([][]byte{[]byte(short)}))
	assert.Contains(t, m.last(), "can't read the header")
}

func TestOpenRejectsBadEMRat(t *testing.T) {
	f := jpldetest.Standard()
	f.EMRat = 80
	e, m := newEngine(t)
	assert.Zero(t, e.Open([][]byte{[]byte(writeFile(t, f))}))
	assert.Contains(t, m.last(), "mass ratio")
}

func TestInvalidHandle(t *testing.T) {
	e, m := newEngine(t)
	var pv [6]float64
	assert.False(t, e.ComputeUnit(42, 2442457, 0.5, 4, 12, native.UnitKM+native.UnitDay, &pv))
	assert.Contains(t, m.last(), "invalid ephemeris handle")
	assert.Zero(t, e.Timescale(42))
	assert.False(t, e.Prefetch(42))
	e.Close(42)
}

func TestComputeUnitAgainstClosedForm(t *testing.T) {
	f := jpldetest.Standard()
	e, _ := newEngine(t)
	h := openFile(t, e, writeFile(t, f))

	tests := []struct {
		name string
		row  int
		code int32
		et   float64
	}{
		{"mars early", jpldetest.RowMars, 4, 2442450.3},
		{"mars second record", jpldetest.RowMars, 4, 2442490.7},
		{"emb", jpldetest.RowEMB, 13, 2442461.1},
		{"sun", jpldetest.RowSun, 11, 2442502.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pv [6]float64
			require.True(t, e.ComputeUnit(h, tt.et, 0, tt.code, 12, native.UnitKM+native.UnitDay, &pv))
			want := f.State(tt.row, tt.et)
			for i := range pv {
				assert.InDelta(t, want[i], pv[i], 1e-6, "component %d", i)
			}

			var au [6]float64
			require.True(t, e.ComputeUnit(h, tt.et, 0, tt.code, 12, native.UnitAU+native.UnitSec, &au))
			for i := 0; i < 3; i++ {
				assert.InDelta(t, want[i]/f.AU, au[i], 1e-15)
				assert.InDelta(t, want[i+3]/f.AU/86400, au[i+3], 1e-20)
			}
		})
	}
}

func TestComputeUnitSplitEpoch(t *testing.T) {
	f := jpldetest.Standard()
	e, _ := newEngine(t)
	h := openFile(t, e, writeFile(t, f))

	var whole, split [6]float64
	require.True(t, e.ComputeUnit(h, 2442470.25, 0, 4, 12, native.UnitKM+native.UnitDay, &whole))
	require.True(t, e.ComputeUnit(h, 2442470, 0.25, 4, 12, native.UnitKM+native.UnitDay, &split))
	assert.Equal(t, whole, split)
}

func TestComputeUnitFailures(t *testing.T) {
	e, m := newEngine(t)
	h := openFile(t, e, writeFile(t, jpldetest.Standard()))
	var pv [6]float64

	tests := []struct {
		name                 string
		et                   float64
		target, center, unit int32
		msg                  string
	}{
		{"before start", 2442000, 4, 12, 5, "outside the interval"},
		{"after end", 2442600, 4, 12, 5, "outside the interval"},
		{"asteroid", 2442457.5, native.AsteroidBase + 1, 12, 5, "asteroid 1 "},
		{"asteroid zero", 2442457.5, 11, native.AsteroidBase, 5, "asteroid 0 "},
		{"body 14", 2442457.5, 14, 12, 5, "body code 14"},
		{"two position units", 2442457.5, 4, 12, 3 + 4, "unit code 7"},
		{"no time unit", 2442457.5, 4, 12, 2, "unit code 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, e.ComputeUnit(h, tt.et, 0, tt.target, tt.center, tt.unit, &pv))
			assert.Contains(t, m.last(), tt.msg)
		})
	}
}

func TestPrefetch(t *testing.T) {
	f := jpldetest.Standard()
	e, _ := newEngine(t)
	h := openFile(t, e, writeFile(t, f))

	var before, after [6]float64
	require.True(t, e.ComputeUnit(h, 2442490.7, 0, 4, 11, native.UnitAU+native.UnitDay, &before))
	require.True(t, e.Prefetch(h))
	require.True(t, e.Prefetch(h))
	d := e.lookup(h)
	assert.Nil(t, d.file)
	assert.Len(t, d.records, 2*1850)

	require.True(t, e.ComputeUnit(h, 2442490.7, 0, 4, 11, native.UnitAU+native.UnitDay, &after))
	assert.Equal(t, before, after)
}

func TestPrefetchDetectsCorruptRecord(t *testing.T) {
	f := jpldetest.Standard()
	b, err := f.Bytes()
	require.NoError(t, err)
	// Second record claims to start where the first does.
	binary.LittleEndian.PutUint64(b[3*14800:], math.Float64bits(f.Start))
	path := filepath.Join(t.TempDir(), "corrupt.bin")
	require.NoError(t, os.WriteFile(path, b, 0644))

	e, m := newEngine(t)
	h := openFile(t, e, path)
	assert.False(t, e.Prefetch(h))
	assert.Contains(t, m.last(), "corrupt")
}

func TestConstants(t *testing.T) {
	f := jpldetest.Standard()
	e, m := newEngine(t)
	h := openFile(t, e, writeFile(t, f))

	v, ok := e.Constant(h, "AU")
	require.True(t, ok)
	assert.Equal(t, 149597870.7, v)

	v, ok = e.Constant(h, " emrat ")
	require.True(t, ok)
	assert.Equal(t, 81.30056, v)

	_, ok = e.Constant(h, "GM_Vulcan")
	assert.False(t, ok)
	assert.Contains(t, m.last(), "GM_Vulcan")

	require.Equal(t, len(f.Constants), e.ConstantCount(h))
	for i, c := range f.Constants {
		name, value, ok := e.ConstantIndex(h, i+1)
		require.True(t, ok)
		assert.Equal(t, c.Name, name)
		assert.Equal(t, c.Value, value)
	}
	_, _, ok = e.ConstantIndex(h, 0)
	assert.False(t, ok)
	_, _, ok = e.ConstantIndex(h, len(f.Constants)+1)
	assert.False(t, ok)
}

func TestMetadata(t *testing.T) {
	f := jpldetest.Standard()
	e, _ := newEngine(t)
	h := openFile(t, e, writeFile(t, f))

	assert.Equal(t, native.TimescaleTDB, e.Timescale(h))
	first, last, continuity, ok := e.TimeSpan(h)
	require.True(t, ok)
	assert.Equal(t, f.Start, first)
	assert.Equal(t, f.End(), last)
	assert.Equal(t, native.SpanContinuous, continuity)

	v, ok := e.FileVersion(h)
	require.True(t, ok)
	assert.Equal(t, "DE405", v)
}

func TestParseTitle(t *testing.T) {
	tests := []struct {
		title   string
		name    string
		version int64
	}{
		{"JPL Planetary Ephemeris DE405/LE405", "DE405/LE405", 405},
		{"JPL Planetary Ephemeris DE440/LE440", "DE440/LE440", 440},
		{"INPOP10B TCB", "INPOP10B", 10},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			title := make([]byte, titleSize)
			for i := range title {
				title[i] = ' '
			}
			copy(title, tt.title)
			name, version, err := parseTitle(title)
			require.NoError(t, err)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.version, version)
		})
	}
}

func TestInterpChebyshev(t *testing.T) {
	// T0=1, T1=t, T2=2t²-1, T3=4t³-3t on one sub-interval of a 2-day record.
	coef := []float64{1, 2, 3, 4}
	for _, frac := range []float64{0, 0.1, 0.5, 0.9, 1} {
		var pv [2]float64
		interp(coef, [2]float64{frac, 2}, 4, 1, 1, pv[:])
		tc := 2*frac - 1
		wantP := 1 + 2*tc + 3*(2*tc*tc-1) + 4*(4*tc*tc*tc-3*tc)
		wantV := (2 + 3*4*tc + 4*(12*tc*tc-3)) * (2.0 / 2)
		assert.InDelta(t, wantP, pv[0], 1e-12, "t=%v", frac)
		assert.InDelta(t, wantV, pv[1], 1e-12, "t=%v", frac)
	}
}

func TestDetectByteOrder(t *testing.T) {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, 572)
	assert.Equal(t, binary.LittleEndian, detectByteOrder(b))
	binary.BigEndian.PutUint32(b, 572)
	assert.Equal(t, binary.BigEndian, detectByteOrder(b))
}
