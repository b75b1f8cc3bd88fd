// ./cmd/calceph/constants.go
package main

/*
Command calceph lists the constants of an ephemeris file.

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
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newConstantCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "constant [name]...",
		Short: "values of named constants",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eph, err := a.open()
			if err != nil {
				return err
			}
			defer eph.Close()

			for _, name := range args {
				v, err := eph.Constant(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", name, formatValue(v))
			}
			return nil
		},
	}
}

func newConstantsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "constants",
		Short: "list every constant of the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eph, err := a.open()
			if err != nil {
				return err
			}
			defer eph.Close()

			all, err := eph.Constants()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tVALUE")
			for _, c := range all {
				fmt.Fprintf(w, "%s\t%s\n", c.Name, formatValue(c.Value))
			}
			return w.Flush()
		},
	}
}

// formatValue prints the shortest representation that reads back to v.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
