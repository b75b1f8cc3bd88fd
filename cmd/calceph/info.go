// ./cmd/calceph/info.go
package main

/*
Command calceph describes an ephemeris file.

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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mshafiee/calceph"
)

var (
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ccff"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Width(18)

	missingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff4444"))
)

func field(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "%s %v\n", labelStyle.Render(label), value)
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "describe the dataset and the available bindings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, headingStyle.Render("Bindings"))
			for _, b := range calceph.Backends() {
				status := b.Version
				if !b.Available {
					status = missingStyle.Render("unavailable")
				}
				field(out, b.Name, status)
			}
			if len(a.cfg.Ephemeris) == 0 {
				return nil
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, headingStyle.Render("Files"))
			for _, p := range a.cfg.Ephemeris {
				st, err := os.Stat(p)
				if err != nil {
					field(out, p, missingStyle.Render(err.Error()))
					continue
				}
				field(out, p, fmt.Sprintf("%s, modified %s", humanize.IBytes(uint64(st.Size())), humanize.Time(st.ModTime())))
			}

			eph, err := a.open()
			if err != nil {
				return err
			}
			defer eph.Close()

			fmt.Fprintln(out)
			fmt.Fprintln(out, headingStyle.Render("Dataset"))
			field(out, "backend", eph.Backend())
			if v, err := eph.FileVersion(); err == nil {
				field(out, "version", v)
			}
			ts, err := eph.Timescale()
			var unknown *calceph.UnknownTimescaleError
			switch {
			case errors.As(err, &unknown):
				field(out, "timescale", missingStyle.Render(err.Error()))
			case err != nil:
				return err
			default:
				field(out, "timescale", ts)
			}
			span, err := eph.TimeSpan()
			if err != nil {
				return err
			}
			field(out, "first JD", fmt.Sprintf("%.1f", span.First))
			field(out, "last JD", fmt.Sprintf("%.1f", span.Last))
			field(out, "days", humanize.CommafWithDigits(span.Last-span.First, 1))
			field(out, "continuity", span.Continuity)
			if all, err := eph.Constants(); err == nil {
				field(out, "constants", humanize.Comma(int64(len(all))))
			}
			return nil
		},
	}
}
