/*
 * run.go, part of alkali.
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
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/rmera/alkali"
	"github.com/rmera/alkali/chemjson"
	"github.com/rmera/alkali/crystal"
	"github.com/rmera/alkali/prompt"
	"github.com/rmera/alkali/qm"
	"github.com/rmera/alkali/report"
	"github.com/rmera/alkali/state"
	v3 "github.com/rmera/alkali/v3"
)

//runner carries out one displacement run.
type runner struct {
	cfg  *Config
	opts options
	in   io.Reader
	out  io.Writer
	log  *log.Logger
	term *prompt.Terminal
	deck *qm.Deck //nil unless the structure comes from a Quantum Espresso file
}

func (r *runner) run(ctx context.Context) error {
	r.term = prompt.NewTerminalContext(ctx, r.in, r.out)
	var st *state.State
	var dis *v3.Matrix
	var err error
	if r.opts.load {
		st, dis, err = r.loaded()
	} else {
		st, dis, err = r.generate(ctx)
	}
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.opts.save {
		if err := state.Save(r.cfg.SaveFile, st); err != nil {
			return err
		}
		r.log.Info("state saved", "file", r.cfg.SaveFile, "id", st.ID)
	}
	files, err := r.pipeline().Run(st.Request, dis)
	if err != nil {
		return err
	}
	summary := filepath.Join(r.cfg.Out, r.cfg.Summary)
	if err := report.WriteSummary(summary, st, files); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Written user input to %s\n", summary)
	if r.cfg.Plot != "" {
		plots, err := report.Plot(filepath.Join(r.cfg.Out, r.cfg.Plot), dis, st.Request.Basis)
		if err != nil {
			return err
		}
		r.log.Info("displacements plotted", "files", strings.Join(plots, ", "))
	}
	return nil
}

//loaded returns the state saved by a previous run. No question is asked.
func (r *runner) loaded() (*state.State, *v3.Matrix, error) {
	st, err := state.Load(r.cfg.SaveFile)
	if err != nil {
		return nil, nil, err
	}
	dis, err := st.Displacement()
	if err != nil {
		return nil, nil, err
	}
	r.log.Info("state loaded", "file", r.cfg.SaveFile, "id", st.ID, "pattern", st.Pattern, "steps", dis.NVecs())
	if r.cfg.QEDecks {
		if r.deck, err = qm.ReadDeck(st.Request.Source); err != nil {
			r.log.Warn("no Quantum Espresso template for the saved structure, decks won't be written", "source", st.Request.Source)
		}
	}
	return st, dis, nil
}

//generate asks for the structure, the atom and the pattern parameters, and builds the displacements.
func (r *runner) generate(ctx context.Context) (*state.State, *v3.Matrix, error) {
	R, err := r.base(ctx)
	if err != nil {
		return nil, nil, err
	}
	fmt.Fprintln(r.out, prompt.AtomTable(R.Species, R.Coords))
	idx, err := alkali.AskInt(r.term, "Choose atom index to displace.")
	if err != nil {
		return nil, nil, err
	}
	R = R.WithIndex(idx)
	if err := R.Check(); err != nil {
		return nil, nil, err
	}
	rec := prompt.NewRecorder(r.term)
	dis, err := alkali.Generate(r.cfg.Method, R, rec)
	if err != nil {
		return nil, nil, err
	}
	r.log.Debug("displacements generated", "pattern", r.cfg.Method, "steps", dis.NVecs())
	return state.New(r.cfg.Method, rec.Answers(), R, dis), dis, nil
}

//base returns the structure to displace, from the database or from a Quantum Espresso file.
func (r *runner) base(ctx context.Context) (*alkali.Request, error) {
	if r.opts.crystal != "" {
		db, err := crystal.LoadDir(r.cfg.DataDir)
		if err != nil {
			return nil, err
		}
		C, err := db.Crystal(r.opts.crystal)
		if err != nil {
			return nil, err
		}
		r.log.Debug("crystal from database", "name", C.Name, "pseudos", strings.Join(C.Pseudos(), " "))
		return C.Base(r.opts.literature)
	}
	name, err := r.inputFile(ctx)
	if err != nil {
		return nil, err
	}
	r.deck, err = qm.ReadDeck(name)
	if err != nil {
		return nil, err
	}
	r.log.Debug("deck read", "file", name, "atoms", len(r.deck.Species), "positions", r.deck.PosUnits)
	return r.deck.Request(0), nil
}

func (r *runner) inputFile(ctx context.Context) (string, error) {
	if !r.opts.find {
		name, err := r.term.Ask("Enter Quantum Espresso file.")
		if err != nil {
			return "", alkali.WrapIO(err, "", "runner.inputFile")
		}
		return strings.TrimSpace(name), nil
	}
	files, err := filepath.Glob(r.cfg.FindGlob)
	if err != nil {
		return "", alkali.NewError(alkali.Validation, "", "runner.inputFile", "%s", err.Error())
	}
	sort.Strings(files)
	name, err := prompt.SelectContext(ctx, files, r.in, r.out)
	if errors.Is(err, context.Canceled) {
		return "", err
	}
	if err != nil {
		return "", alkali.NewError(alkali.Validation, "", "runner.inputFile", "%s: %s", r.cfg.FindGlob, err.Error())
	}
	return name, nil
}

func (r *runner) pipeline() *alkali.Pipeline {
	P := &alkali.Pipeline{
		Writers: []alkali.Writer{chemjson.Writer{}},
		Subdirs: !r.cfg.NoDir,
		OutDir:  r.cfg.Out,
		Logger:  r.log,
	}
	if r.cfg.QEDecks && r.deck != nil {
		P.Writers = append(P.Writers, &qm.DeckWriter{H: qm.NewEspressoHandle(r.deck)})
	}
	return P
}
