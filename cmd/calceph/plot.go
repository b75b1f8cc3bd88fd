// ./cmd/calceph/plot.go
package main

/*
Command calceph plots a coordinate of a body over time.

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

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/mshafiee/calceph"
)

func newPlotCmd(a *app) *cobra.Command {
	var (
		from, to string
		steps    int
		pos      string
		height   int
		width    int
	)
	plotCmd := &cobra.Command{
		Use:   "plot [target] [center]",
		Short: "plot the distance between two bodies over time",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := calceph.ParseTarget(args[0])
			if err != nil {
				return err
			}
			center, err := calceph.ParseTarget(args[1])
			if err != nil {
				return err
			}
			pu, tu, err := a.units(pos, "")
			if err != nil {
				return err
			}
			if steps < 2 {
				return fmt.Errorf("--steps must be at least 2, got %d", steps)
			}

			eph, err := a.open()
			if err != nil {
				return err
			}
			defer eph.Close()

			start0, startFrac, end0, endFrac, err := a.interval(eph, from, to)
			if err != nil {
				return err
			}
			span := (end0 - start0) + (endFrac - startFrac)
			data := make([]float64, steps)
			for i := range data {
				offset := span * float64(i) / float64(steps-1)
				whole, frac := math.Modf(offset)
				pv, err := eph.CalculatePV(start0+whole, startFrac+frac, target, center, pu, tu)
				if err != nil {
					return err
				}
				p := pv.Position()
				data[i] = math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
			}

			caption := fmt.Sprintf("%s-%s distance (%s), JD %.1f to %.1f", target, center, pu, start0+startFrac, end0+endFrac)
			graph := asciigraph.Plot(data,
				asciigraph.Height(height),
				asciigraph.Width(width),
				asciigraph.Caption(caption),
			)
			fmt.Fprintln(cmd.OutOrStdout(), graph)
			return nil
		},
	}
	plotCmd.Flags().StringVar(&from, "from", "", "first JD (default: start of the dataset)")
	plotCmd.Flags().StringVar(&to, "to", "", "last JD (default: end of the dataset)")
	plotCmd.Flags().IntVar(&steps, "steps", 200, "number of samples")
	plotCmd.Flags().StringVar(&pos, "position-unit", "", "au or km (default from config)")
	plotCmd.Flags().IntVar(&height, "height", 15, "graph height")
	plotCmd.Flags().IntVar(&width, "width", 80, "graph width")
	return plotCmd
}

// interval resolves --from and --to, defaulting to the dataset's span.
func (a *app) interval(eph *calceph.Ephemeris, from, to string) (float64, float64, float64, float64, error) {
	var start0, startFrac, end0, endFrac float64
	if from == "" || to == "" {
		span, err := eph.TimeSpan()
		if err != nil {
			return 0, 0, 0, 0, err
		}
		start0, end0 = span.First, span.Last
	}
	var err error
	if from != "" {
		if start0, startFrac, err = parseJD(from); err != nil {
			return 0, 0, 0, 0, err
		}
	}
	if to != "" {
		if end0, endFrac, err = parseJD(to); err != nil {
			return 0, 0, 0, 0, err
		}
	}
	if end0+endFrac <= start0+startFrac {
		return 0, 0, 0, 0, fmt.Errorf("empty interval: JD %.6f to %.6f", start0+startFrac, end0+endFrac)
	}
	return start0, startFrac, end0, endFrac, nil
}
