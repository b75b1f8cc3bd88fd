package calceph

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/mshafiee/calceph/internal/native"
)

// fakeLibrary is an in-memory native.Library. Failures are reported through
// the installed handler before returning, as the C library does.
type fakeLibrary struct {
	mu      sync.Mutex
	handler native.ErrorHandler
	files   map[string]bool
	next    native.Handle
	live    map[native.Handle]bool

	opens      int
	closes     int
	prefetches int
	computes   int
	lookups    int

	prefetchFailure string
	silentFailure   bool
	timescale       int32
	constants       []Constant
	pv              [6]float64
	lastUnit        int32
	lastTarget      int32
	lastCenter      int32
	lastEpoch       [2]float64
}

func newFakeLibrary(files ...string) *fakeLibrary {
	f := &fakeLibrary{
		files:     make(map[string]bool),
		live:      make(map[native.Handle]bool),
		timescale: native.TimescaleTDB,
		constants: []Constant{{"AU", 149597870.7}, {"EMRAT", 81.30056}},
		pv:        [6]float64{1, 2, 3, 4, 5, 6},
	}
	for _, p := range files {
		f.files[p] = true
	}
	return f
}

func (f *fakeLibrary) report(format string, args ...any) {
	if f.silentFailure {
		return
	}
	f.mu.Lock()
	fn := f.handler
	f.mu.Unlock()
	if fn != nil {
		fn([]byte(fmt.Sprintf(format, args...)))
	}
}

func (f *fakeLibrary) counts() (opens, closes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opens, f.closes
}

func (f *fakeLibrary) Name() string    { return "fake" }
func (f *fakeLibrary) Available() bool { return true }
func (f *fakeLibrary) Version() string { return "fake 0.1" }

func (f *fakeLibrary) SetErrorHandler(fn native.ErrorHandler) {
	f.mu.Lock()
	f.handler = fn
	f.mu.Unlock()
}

func (f *fakeLibrary) Open(paths [][]byte) native.Handle {
	f.mu.Lock()
	f.opens++
	f.mu.Unlock()
	for _, p := range paths {
		if !f.files[string(p)] {
			f.report("can't open the file '%s'", p)
			return 0
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	f.live[f.next] = true
	return f.next
}

func (f *fakeLibrary) Prefetch(h native.Handle) bool {
	f.mu.Lock()
	f.prefetches++
	msg := f.prefetchFailure
	f.mu.Unlock()
	if msg != "" {
		f.report("%s", msg)
		return false
	}
	return true
}

func (f *fakeLibrary) Close(h native.Handle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closes++
	delete(f.live, h)
}

// ComputeUnit fails for asteroids with a message unique to the target and
// yields before returning, so an unserialized caller would see another
// goroutine's message.
func (f *fakeLibrary) ComputeUnit(h native.Handle, jd0, time float64, target, center, unit int32, pv *[6]float64) bool {
	f.mu.Lock()
	f.computes++
	f.lastTarget, f.lastCenter, f.lastUnit = target, center, unit
	f.lastEpoch = [2]float64{jd0, time}
	out := f.pv
	f.mu.Unlock()
	if target >= native.AsteroidBase {
		f.report("%s", asteroidMessage(target-native.AsteroidBase))
		runtime.Gosched()
		return false
	}
	*pv = out
	return true
}

func asteroidMessage(n int32) string {
	return strings.Repeat(fmt.Sprintf("<asteroid %d not found>", n), 32)
}

func (f *fakeLibrary) Constant(h native.Handle, name string) (float64, bool) {
	f.mu.Lock()
	f.lookups++
	f.mu.Unlock()
	for _, c := range f.constants {
		if c.Name == name {
			return c.Value, true
		}
	}
	f.report("the constant '%s' is not in the file", name)
	return 0, false
}

func (f *fakeLibrary) ConstantCount(h native.Handle) int { return len(f.constants) }

func (f *fakeLibrary) ConstantIndex(h native.Handle, index int) (string, float64, bool) {
	if index < 1 || index > len(f.constants) {
		f.report("bad index %d", index)
		return "", 0, false
	}
	c := f.constants[index-1]
	return c.Name, c.Value, true
}

func (f *fakeLibrary) Timescale(h native.Handle) int32 {
	if f.timescale == 0 {
		f.report("the timescale is not available")
	}
	return f.timescale
}

func (f *fakeLibrary) TimeSpan(h native.Handle) (float64, float64, int32, bool) {
	return 2287184.5, 2688976.5, native.SpanGapsInSomeBodies, true
}

func (f *fakeLibrary) FileVersion(h native.Handle) (string, bool) {
	return "INPOP10B", true
}
