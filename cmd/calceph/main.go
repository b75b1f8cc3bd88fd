// ./cmd/calceph/main.go

// Command calceph queries planetary ephemeris files.
package main

/*
Command calceph wires its subcommands, configuration and logging.

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
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mshafiee/calceph"
	"github.com/mshafiee/calceph/internal/config"
	"github.com/mshafiee/calceph/internal/logging"
)

// app carries the settings shared by every subcommand.
type app struct {
	configFile string
	files      []string
	backend    string
	prefetch   bool
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:               "calceph",
		Short:             "planetary and lunar ephemeris queries",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file path (yaml)")
	flags.StringSliceVarP(&a.files, "ephemeris", "e", nil, "ephemeris file; repeat for a multi-file dataset")
	flags.StringVar(&a.backend, "backend", "", "native binding: auto, calceph, calceph-dynamic, jplde")
	flags.BoolVar(&a.prefetch, "prefetch", false, "load the whole dataset before querying")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newComputeCmd(a),
		newConstantCmd(a),
		newConstantsCmd(a),
		newInfoCmd(a),
		newPlotCmd(a),
		newBatchCmd(a),
		newReportCmd(a),
		newConfigCmd(a),
	)
	return rootCmd
}

// setup loads the configuration and lets flags override it.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("ephemeris") {
		cfg.Ephemeris = a.files
	}
	if flags.Changed("backend") {
		cfg.Backend = a.backend
	}
	if flags.Changed("prefetch") {
		cfg.Prefetch = a.prefetch
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})
	calceph.SetLogger(a.logger)
	return nil
}

var errNoEphemeris = errors.New("no ephemeris file: use --ephemeris or " + config.EnvEphemeris)

func (a *app) openOptions() []calceph.Option {
	return append(a.cfg.OpenOptions(), calceph.WithLogger(a.logger))
}

// open opens the configured dataset.
func (a *app) open() (*calceph.Ephemeris, error) {
	if len(a.cfg.Ephemeris) == 0 {
		return nil, errNoEphemeris
	}
	eph, err := calceph.OpenFiles(a.cfg.Ephemeris, a.openOptions()...)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("dataset ready", "backend", eph.Backend(), "files", a.cfg.Ephemeris)
	return eph, nil
}

// openShared opens a prefetched copy of the configured dataset.
func (a *app) openShared() (*calceph.Shared, error) {
	if len(a.cfg.Ephemeris) == 0 {
		return nil, errNoEphemeris
	}
	return calceph.OpenShared(a.cfg.Ephemeris, a.openOptions()...)
}

// units returns the configured units, overridden by non-empty flag values.
func (a *app) units(pos, tim string) (calceph.PositionUnit, calceph.TimeUnit, error) {
	pu, tu, err := a.cfg.Units()
	if err != nil {
		return 0, 0, err
	}
	if pos != "" {
		if pu, err = calceph.ParsePositionUnit(pos); err != nil {
			return 0, 0, err
		}
	}
	if tim != "" {
		if tu, err = calceph.ParseTimeUnit(tim); err != nil {
			return 0, 0, err
		}
	}
	return pu, tu, nil
}

func unitLabels(pu calceph.PositionUnit, tu calceph.TimeUnit) (string, string) {
	return pu.String(), fmt.Sprintf("%s/%s", pu, tu)
}
