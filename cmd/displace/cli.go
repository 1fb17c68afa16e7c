/*
 * cli.go, part of alkali.
 *
 * Copyright 2024 The alkali authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/rmera/alkali"
	"github.com/rmera/alkali/crystal"
	"github.com/spf13/cobra"
)

//newLogger creates a logger with timestamps as "HH:MM:SS.ms".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

//options are the command line flags of the main command.
type options struct {
	configFile string
	method     string
	nodir      bool
	load       bool
	save       bool
	find       bool
	savefile   string
	crystal    string
	literature bool
	data       string
	qe         bool
	plot       string
	out        string
}

func newRootCommand(in io.Reader, out, errw io.Writer) *cobra.Command {
	var verbose bool
	var o options
	root := &cobra.Command{
		Use:   "displace",
		Short: "displace builds displaced structures for finite-difference ab-initio calculations",
		Long: `displace reads a crystal structure (a Quantum Espresso input, or an entry of the
alkali-halide database), asks which atom to move and the parameters of a displacement
pattern, and writes one structure file per displacement.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(errw, level)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configure(cmd, &o)
			if err != nil {
				return err
			}
			r := &runner{cfg: cfg, opts: o, in: in, out: out, log: loggerFromContext(cmd.Context())}
			return r.run(cmd.Context())
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errw)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	f := root.Flags()
	f.StringVar(&o.configFile, "config", "", "TOML configuration file (default "+DefaultConfigFile+" if present)")
	f.StringVarP(&o.method, "method", "m", "", "displacement pattern, see 'displace methods'")
	f.BoolVarP(&o.nodir, "nodir", "n", false, "don't create a directory per displacement, prefix the files instead")
	f.BoolVarP(&o.load, "load", "l", false, "load the previous run from the save file instead of asking")
	f.BoolVarP(&o.save, "save", "s", false, "save the run to the save file")
	f.BoolVarP(&o.find, "find", "f", false, "choose the input among the files in the current directory")
	f.StringVar(&o.savefile, "savefile", "", "state file for --load and --save")
	f.StringVar(&o.crystal, "crystal", "", "start from this crystal of the database instead of a Quantum Espresso file")
	f.BoolVar(&o.literature, "literature", false, "with --crystal, use the literature lattice constant")
	f.StringVar(&o.data, "data", "", "directory with the crystal tables")
	f.BoolVar(&o.qe, "qe", false, "also write a Quantum Espresso input per displacement")
	f.StringVar(&o.plot, "plot", "", "plot the displacements to this file (png, svg or pdf)")
	f.StringVarP(&o.out, "out", "o", "", "output directory")
	root.MarkFlagsMutuallyExclusive("load", "save")
	root.MarkFlagsMutuallyExclusive("crystal", "find")

	root.AddCommand(newMethodsCommand(out))
	root.AddCommand(newCrystalsCommand(out))
	return root
}

//configure reads the configuration file and applies the flags that were set over it.
func configure(cmd *cobra.Command, o *options) (*Config, error) {
	name, required := o.configFile, true
	if name == "" {
		name, required = DefaultConfigFile, false
	}
	cfg, err := LoadConfig(name, required)
	if err != nil {
		return nil, err
	}
	f := cmd.Flags()
	if f.Changed("method") {
		cfg.Method = o.method
	}
	if f.Changed("nodir") {
		cfg.NoDir = o.nodir
	}
	if f.Changed("savefile") {
		cfg.SaveFile = o.savefile
	}
	if f.Changed("data") {
		cfg.DataDir = o.data
	}
	if f.Changed("qe") {
		cfg.QEDecks = o.qe
	}
	if f.Changed("plot") {
		cfg.Plot = o.plot
	}
	if f.Changed("out") {
		cfg.Out = o.out
	}
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	loggerFromContext(cmd.Context()).Debug("configuration", "settings", cfg.String())
	return cfg, nil
}

var (
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36")).Padding(0, 1)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
	styleBorder = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func render(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			return styleCell
		}).
		Render()
}

func newMethodsCommand(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List the displacement patterns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rows [][]string
			for i, p := range alkali.Patterns() {
				name := p.Name
				if i == 0 {
					name += " (default)"
				}
				rows = append(rows, []string{name, p.Help})
			}
			_, err := fmt.Fprintln(out, render([]string{"Method", "Description"}, rows))
			return err
		},
	}
}

func newCrystalsCommand(out io.Writer) *cobra.Command {
	data := "data"
	cmd := &cobra.Command{
		Use:   "crystals",
		Short: "List the crystals in the alkali-halide database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := crystal.LoadDir(data)
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("database loaded", "dir", data, "crystals", db.Len())
			var rows [][]string
			for _, name := range db.Names() {
				C, _ := db.Crystal(name)
				structure := C.Set.Structure
				if C.UseLiteratureStructure || structure == "" {
					structure = C.Lit.Structure
				}
				rows = append(rows, []string{name, structure, num(C.Lit.A0), num(C.Calc.A0), num(C.Lit.Eg), num(C.Calc.Eg), strconv.Itoa(C.Set.NBnd)})
			}
			_, err = fmt.Fprintln(out, render([]string{"Crystal", "Structure", "a0 lit (Å)", "a0 calc (Å)", "Eg lit (eV)", "Eg calc (eV)", "nbnd"}, rows))
			return err
		},
	}
	cmd.Flags().StringVar(&data, "data", data, "directory with the crystal tables")
	return cmd
}

//num formats a table value, leaving missing (zero) values blank.
func num(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
