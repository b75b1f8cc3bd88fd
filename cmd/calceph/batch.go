// ./cmd/calceph/batch.go
package main

/*
Command calceph computes many state vectors in parallel.

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
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mshafiee/calceph"
)

type batchResult struct {
	target calceph.Target
	jd     []float64
	states []calceph.StateVector
}

func newBatchCmd(a *app) *cobra.Command {
	var (
		center   string
		from, to string
		steps    int
		workers  int
		pos, tim string
	)
	batchCmd := &cobra.Command{
		Use:   "batch [target]...",
		Short: "tabulate several bodies concurrently",
		Long: "Tabulate the state of each target over an interval. Each target is\n" +
			"computed by its own goroutine on its own prefetched handle.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			targets := make([]calceph.Target, len(args))
			for i, s := range args {
				t, err := calceph.ParseTarget(s)
				if err != nil {
					return err
				}
				targets[i] = t
			}
			c, err := calceph.ParseTarget(center)
			if err != nil {
				return err
			}
			pu, tu, err := a.units(pos, tim)
			if err != nil {
				return err
			}
			if steps < 1 {
				return fmt.Errorf("--steps must be positive, got %d", steps)
			}
			if workers < 1 {
				return fmt.Errorf("--workers must be positive, got %d", workers)
			}

			probe, err := a.open()
			if err != nil {
				return err
			}
			start0, startFrac, end0, endFrac, err := a.interval(probe, from, to)
			probe.Close()
			if err != nil {
				return err
			}
			span := (end0 - start0) + (endFrac - startFrac)

			results := make([]batchResult, len(targets))
			g := new(errgroup.Group)
			g.SetLimit(workers)
			for i, target := range targets {
				g.Go(func() error {
					shared, err := a.openShared()
					if err != nil {
						return err
					}
					defer shared.Close()

					res := batchResult{target: target}
					for s := 0; s < steps; s++ {
						offset := 0.0
						if steps > 1 {
							offset = span * float64(s) / float64(steps-1)
						}
						whole, frac := math.Modf(offset)
						pv, err := shared.CalculatePV(start0+whole, startFrac+frac, target, c, pu, tu)
						if err != nil {
							return fmt.Errorf("%s: %w", target, err)
						}
						res.jd = append(res.jd, start0+startFrac+offset)
						res.states = append(res.states, pv)
					}
					results[i] = res
					a.logger.Debug("batch target done", "target", target, "samples", steps)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			posLabel, velLabel := unitLabels(pu, tu)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintf(w, "TARGET\tJD\tX (%s)\tY\tZ\tVX (%s)\tVY\tVZ\t\n", posLabel, velLabel)
			for _, res := range results {
				for k, pv := range res.states {
					fmt.Fprintf(w, "%s\t%.6f\t%.12e\t%.12e\t%.12e\t%.12e\t%.12e\t%.12e\t\n",
						res.target, res.jd[k], pv[0], pv[1], pv[2], pv[3], pv[4], pv[5])
				}
			}
			return w.Flush()
		},
	}
	batchCmd.Flags().StringVar(&center, "center", "ssb", "center body")
	batchCmd.Flags().StringVar(&from, "from", "", "first JD (default: start of the dataset)")
	batchCmd.Flags().StringVar(&to, "to", "", "last JD (default: end of the dataset)")
	batchCmd.Flags().IntVar(&steps, "steps", 10, "samples per target")
	batchCmd.Flags().IntVar(&workers, "workers", 4, "targets computed at once")
	batchCmd.Flags().StringVar(&pos, "position-unit", "", "au or km (default from config)")
	batchCmd.Flags().StringVar(&tim, "time-unit", "", "day or sec (default from config)")
	return batchCmd
}
