// ./cmd/calceph/compute.go
package main

/*
Command calceph computes state vectors.

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
	"io"

	"github.com/spf13/cobra"

	"github.com/mshafiee/calceph"
)

func newComputeCmd(a *app) *cobra.Command {
	var pos, tim string
	computeCmd := &cobra.Command{
		Use:   "compute [target] [center] [jd]...",
		Short: "position and velocity of a body relative to another",
		Long: "Print the state of target relative to center at each Julian date.\n" +
			"Bodies are names (mars, moon, ssb, emb), native codes, or asteroid:N.",
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := calceph.ParseTarget(args[0])
			if err != nil {
				return err
			}
			center, err := calceph.ParseTarget(args[1])
			if err != nil {
				return err
			}
			pu, tu, err := a.units(pos, tim)
			if err != nil {
				return err
			}
			eph, err := a.open()
			if err != nil {
				return err
			}
			defer eph.Close()

			out := cmd.OutOrStdout()
			for _, s := range args[2:] {
				jd0, frac, err := parseJD(s)
				if err != nil {
					return err
				}
				pv, err := eph.CalculatePV(jd0, frac, target, center, pu, tu)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s relative to %s at JD %s\n", target, center, s)
				printState(out, pv, pu, tu)
			}
			return nil
		},
	}
	computeCmd.Flags().StringVar(&pos, "position-unit", "", "au or km (default from config)")
	computeCmd.Flags().StringVar(&tim, "time-unit", "", "day or sec (default from config)")
	return computeCmd
}

func printState(w io.Writer, pv calceph.StateVector, pu calceph.PositionUnit, tu calceph.TimeUnit) {
	posLabel, velLabel := unitLabels(pu, tu)
	p, v := pv.Position(), pv.Velocity()
	fmt.Fprintf(w, "  Position (%s): [%22.15e, %22.15e, %22.15e]\n", posLabel, p.X, p.Y, p.Z)
	fmt.Fprintf(w, "  Velocity (%s): [%22.15e, %22.15e, %22.15e]\n", velLabel, v.DX, v.DY, v.DZ)
}
