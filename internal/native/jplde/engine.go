// ./internal/native/jplde/engine.go

// Package jplde is a pure-Go engine for JPL DE binary ephemeris files that
// honours the native ABI contract of package native: datasets live behind
// opaque handles, failures are signalled by return values and described
// through one process-wide error handler, and units are selected by summed
// codes.
//
// Only the thirteen body codes of a DE file are served; asteroid codes and
// multi-file datasets are reported as failures.
package jplde

/*
Package jplde manages the handles of the DE engine.

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
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/mshafiee/calceph/internal/native"
)

var (
	tracer atomic.Pointer[slog.Logger]

	handlerMu sync.RWMutex
	handler   native.ErrorHandler
)

func init() {
	tracer.Store(slog.New(slog.DiscardHandler))
}

// SetLogger routes the engine's debug tracing to l.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	tracer.Store(l)
}

func logger() *slog.Logger { return tracer.Load() }

// fail reports a failure to the installed error handler.
func fail(err error) {
	logger().Debug("jplde failure", "error", err)
	handlerMu.RLock()
	fn := handler
	handlerMu.RUnlock()
	if fn != nil {
		fn([]byte(err.Error()))
	}
}

// Engine is the jplde binding. The zero value is not usable; call New.
type Engine struct {
	mu   sync.Mutex
	next native.Handle
	sets map[native.Handle]*dataset
}

// New returns an engine with no open datasets.
func New() *Engine {
	return &Engine{sets: make(map[native.Handle]*dataset)}
}

func (e *Engine) Name() string    { return "jplde" }
func (e *Engine) Available() bool { return true }
func (e *Engine) Version() string { return "jplde 1.0" }

func (e *Engine) SetErrorHandler(fn native.ErrorHandler) {
	handlerMu.Lock()
	handler = fn
	handlerMu.Unlock()
}

func (e *Engine) lookup(h native.Handle) *dataset {
	e.mu.Lock()
	defer e.mu.Unlock()
	d := e.sets[h]
	if d == nil {
		fail(fmt.Errorf("invalid ephemeris handle %#x", uintptr(h)))
	}
	return d
}

func (e *Engine) Open(paths [][]byte) native.Handle {
	if len(paths) != 1 {
		fail(fmt.Errorf("a DE binary dataset is a single file, got %d files", len(paths)))
		return 0
	}
	d, err := openDataset(string(paths[0]))
	if err != nil {
		fail(err)
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.next++
	e.sets[e.next] = d
	return e.next
}

// Prefetch loads every data record and releases the file. Afterwards the
// dataset is only read.
func (e *Engine) Prefetch(h native.Handle) bool {
	d := e.lookup(h)
	if d == nil {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.records != nil {
		return true
	}
	if d.file == nil {
		fail(fmt.Errorf("'%s' is closed", d.path))
		return false
	}
	need := uint32(math.Ceil((d.end - d.start) / d.step))
	if d.nrec < need {
		fail(fmt.Errorf("'%s' is truncated: %d records present, %d needed", d.path, d.nrec, need))
		return false
	}
	raw := make([]byte, int64(need)*int64(d.recsize))
	if _, err := d.file.ReadAt(raw, 2*int64(d.recsize)); err != nil && err != io.EOF {
		fail(fmt.Errorf("can't prefetch '%s': %w", d.path, err))
		return false
	}
	records := make([]float64, int(need)*int(d.ncoeff))
	decodeFloat64s(d.order, raw, records)
	for n := uint32(0); n < need; n++ {
		rec := records[int(n)*int(d.ncoeff):]
		if want := d.start + float64(n)*d.step; math.Abs(rec[0]-want) > 1e-3 {
			fail(fmt.Errorf("'%s' is corrupt: record %d starts at %.1f, expected %.1f", d.path, n, rec[0], want))
			return false
		}
	}
	d.records = records
	d.nrec = need
	if err := d.file.Close(); err != nil {
		logger().Debug("close after prefetch", "path", d.path, "error", err)
	}
	d.file = nil
	logger().Debug("prefetched DE file", "path", d.path, "records", need)
	return true
}

func (e *Engine) Close(h native.Handle) {
	e.mu.Lock()
	d := e.sets[h]
	delete(e.sets, h)
	e.mu.Unlock()
	if d == nil {
		return
	}
	if err := d.close(); err != nil {
		logger().Debug("close DE file", "path", d.path, "error", err)
	}
}

func (e *Engine) ComputeUnit(h native.Handle, jd0, time float64, target, center, unit int32, pv *[6]float64) bool {
	d := e.lookup(h)
	if d == nil {
		return false
	}
	if err := d.compute(jd0, time, target, center, unit, pv); err != nil {
		fail(err)
		return false
	}
	return true
}

func (e *Engine) Constant(h native.Handle, name string) (float64, bool) {
	d := e.lookup(h)
	if d == nil {
		return 0, false
	}
	if v, ok := d.constant(name); ok {
		return v, true
	}
	fail(fmt.Errorf("the constant '%s' is not in '%s'", name, d.path))
	return 0, false
}

// constant looks a name up, ignoring case and padding.
func (d *dataset) constant(name string) (float64, bool) {
	name = strings.TrimSpace(name)
	for i, n := range d.constNames {
		if strings.EqualFold(n, name) {
			return d.constValues[i], true
		}
	}
	return 0, false
}

func (e *Engine) ConstantCount(h native.Handle) int {
	d := e.lookup(h)
	if d == nil {
		return 0
	}
	return len(d.constNames)
}

func (e *Engine) ConstantIndex(h native.Handle, index int) (string, float64, bool) {
	d := e.lookup(h)
	if d == nil {
		return "", 0, false
	}
	if index < 1 || index > len(d.constNames) {
		fail(fmt.Errorf("the constant index %d is outside [1, %d]", index, len(d.constNames)))
		return "", 0, false
	}
	return d.constNames[index-1], d.constValues[index-1], true
}

// Timescale is TDB unless the file carries TIMESC = 1, as INPOP TCB files do.
func (e *Engine) Timescale(h native.Handle) int32 {
	d := e.lookup(h)
	if d == nil {
		return 0
	}
	if v, ok := d.constant("TIMESC"); ok && v == 1 {
		return native.TimescaleTCB
	}
	return native.TimescaleTDB
}

func (e *Engine) TimeSpan(h native.Handle) (float64, float64, int32, bool) {
	d := e.lookup(h)
	if d == nil {
		return 0, 0, 0, false
	}
	return d.start, d.end, native.SpanContinuous, true
}

// FileVersion returns the series name without the lunar part, e.g. "DE405".
func (e *Engine) FileVersion(h native.Handle) (string, bool) {
	d := e.lookup(h)
	if d == nil {
		return "", false
	}
	name, _, _ := strings.Cut(d.name, "/")
	if name == "" {
		fail(fmt.Errorf("'%s' carries no version", d.path))
		return "", false
	}
	return name, true
}
