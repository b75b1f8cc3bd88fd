// ./cmd/calceph/report.go
package main

/*
Command calceph prints the diagnostic report of an ephemeris file.

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
	"math"

	"github.com/spf13/cobra"

	"github.com/mshafiee/calceph"
)

// printResult formats a position.
func printResult(w io.Writer, label string, pos calceph.Position) {
	fmt.Fprintf(w, "  %s: [%12.5e, %12.5e, %12.5e]\n", label, pos.X, pos.Y, pos.Z)
}

// printVelocityResult formats a velocity.
func printVelocityResult(w io.Writer, label string, vel calceph.Velocity) {
	fmt.Fprintf(w, "  %s: [%12.5e, %12.5e, %12.5e]\n", label, vel.DX, vel.DY, vel.DZ)
}

// magnitude calculates the magnitude of a Position vector.
func magnitude(pos calceph.Position) float64 {
	return math.Sqrt(pos.X*pos.X + pos.Y*pos.Y + pos.Z*pos.Z)
}

type reporter struct {
	w         io.Writer
	eph       *calceph.Ephemeris
	jd0, frac float64
	failures  int
}

func (r *reporter) pv(target, center calceph.Target) (calceph.StateVector, error) {
	pv, err := r.eph.CalculatePV(r.jd0, r.frac, target, center, calceph.AstronomicalUnit, calceph.Day)
	if err != nil {
		r.failures++
	}
	return pv, err
}

// body reports the barycentric and heliocentric state of one body.
func (r *reporter) body(body calceph.Target) {
	fmt.Fprintf(r.w, "\nTesting %s:\n", body)

	pv, err := r.pv(body, calceph.SolarSystemBarycenter)
	if err != nil {
		fmt.Fprintf(r.w, "  Error calculating barycentric position: %v\n", err)
		return
	}
	printResult(r.w, "Barycentric Position (AU)", pv.Position())
	printVelocityResult(r.w, "Barycentric Velocity (AU/day)", pv.Velocity())

	if body >= calceph.MercuryBarycenter && body <= calceph.PlutoBarycenter {
		pv, err = r.pv(body, calceph.Sun)
		if err != nil {
			fmt.Fprintf(r.w, "  Error calculating heliocentric position: %v\n", err)
			return
		}
		printResult(r.w, "Heliocentric Position (AU)", pv.Position())
	}
}

// earthMoonSystem reports the Earth-Moon barycenter decomposition.
func (r *reporter) earthMoonSystem() {
	fmt.Fprintf(r.w, "\n=== Earth-Moon System ===\n")

	steps := []struct {
		label          string
		target, center calceph.Target
	}{
		{"EMB Position (AU)", calceph.EarthMoonBarycenter, calceph.SolarSystemBarycenter},
		{"Earth relative to EMB (AU)", calceph.Earth, calceph.EarthMoonBarycenter},
		{"Moon relative to EMB (AU)", calceph.Moon, calceph.EarthMoonBarycenter},
	}
	for _, s := range steps {
		pv, err := r.pv(s.target, s.center)
		if err != nil {
			fmt.Fprintf(r.w, "  Error calculating %s: %v\n", s.label, err)
			return
		}
		printResult(r.w, s.label, pv.Position())
	}

	pv, err := r.pv(calceph.Moon, calceph.Earth)
	if err != nil {
		fmt.Fprintf(r.w, "  Error calculating Earth-Moon relative position: %v\n", err)
		return
	}
	distance := magnitude(pv.Position())
	if au, err := r.eph.Constant("AU"); err == nil {
		fmt.Fprintf(r.w, "\nEarth-Moon Distance: %.5f AU (%.3f km)\n", distance, distance*au)
	} else {
		fmt.Fprintf(r.w, "\nEarth-Moon Distance: %.5f AU\n", distance)
	}
}

// constants reports the first constants of the file.
func (r *reporter) constants() {
	fmt.Fprintf(r.w, "\n=== Constant Tests ===\n")
	all, err := r.eph.Constants()
	if err != nil {
		r.failures++
		fmt.Fprintf(r.w, "  Error listing constants: %v\n", err)
		return
	}
	if len(all) == 0 {
		fmt.Fprintln(r.w, "  Warning: No constants to test.")
		return
	}
	fmt.Fprintf(r.w, "  Testing retrieval of %d constants...\n", len(all))
	for i, c := range all {
		v, err := r.eph.Constant(c.Name)
		if err != nil || v != c.Value {
			r.failures++
			fmt.Fprintf(r.w, "  Constant %s: lookup by name gave %v, %v; listed %v\n", c.Name, v, err, c.Value)
			continue
		}
		if i < 10 {
			fmt.Fprintf(r.w, "  Constant %d: Name='%s', Value=%.2f\n", i, c.Name, c.Value)
		}
	}
	fmt.Fprintln(r.w, "  Constant tests finished.")
}

func newReportCmd(a *app) *cobra.Command {
	var at string
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "exercise every body and constant of the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eph, err := a.open()
			if err != nil {
				return err
			}
			defer eph.Close()

			out := cmd.OutOrStdout()
			span, err := eph.TimeSpan()
			if err != nil {
				return err
			}
			r := &reporter{w: out, eph: eph}
			if at != "" {
				if r.jd0, r.frac, err = parseJD(at); err != nil {
					return err
				}
			} else {
				r.jd0, r.frac = math.Modf((span.First + span.Last) / 2)
			}

			fmt.Fprintf(out, "=== Ephemeris Header Tests ===\n")
			if v, err := eph.FileVersion(); err == nil {
				fmt.Fprintf(out, "Ephemeris name: %s\n", v)
			}
			fmt.Fprintf(out, "Time range: %.1f to %.1f JD (%s)\n", span.First, span.Last, span.Continuity)
			if ts, err := eph.Timescale(); err == nil {
				fmt.Fprintf(out, "Timescale: %s\n", ts)
			} else {
				fmt.Fprintf(out, "Timescale: %v\n", err)
			}
			if au, err := eph.Constant("AU"); err == nil {
				fmt.Fprintf(out, "AU value: %.8f km\n", au)
			}
			if emrat, err := eph.Constant("EMRAT"); err == nil {
				fmt.Fprintf(out, "Earth-Moon ratio: %.5f\n", emrat)
			}

			fmt.Fprintf(out, "\nTesting positions at JD %.3f\n", r.jd0+r.frac)
			fmt.Fprintf(out, "\n=== Standard Celestial Bodies ===\n")
			for _, body := range calceph.Bodies() {
				r.body(body)
			}
			r.earthMoonSystem()
			r.constants()

			if r.failures > 0 {
				return fmt.Errorf("%d queries failed", r.failures)
			}
			fmt.Fprintln(out, "Program finished successfully.")
			return nil
		},
	}
	reportCmd.Flags().StringVar(&at, "jd", "", "Julian date of the position tests (default: middle of the dataset)")
	return reportCmd
}
