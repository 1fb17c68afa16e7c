/*
 * state.go, part of alkali.
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

//Package state saves a displacement run (the base structure, the chosen pattern,
//the answers given and the displacements generated) so it can be reloaded
//without asking anything again, or replayed.
package state

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/rmera/alkali"
	"github.com/rmera/alkali/prompt"
	v3 "github.com/rmera/alkali/v3"
)

//DefaultFile is the default name of the state file.
const DefaultFile = "displace.bin"

//Version of the state format.
const Version = 1

//State is a displacement run.
type State struct {
	Version       int             `json:"version"`
	ID            uuid.UUID       `json:"id"`
	Created       time.Time       `json:"created"`
	Pattern       string          `json:"pattern"`
	Answers       []string        `json:"answers"` //the answers given to the pattern's questions, in order.
	Request       *alkali.Request `json:"request"`
	Displacements [][]float64     `json:"displacements"` //lattice coordinates
}

//New returns a state for a run that generated dis with the given pattern and answers.
func New(pattern string, answers []string, R *alkali.Request, dis *v3.Matrix) *State {
	st := &State{
		Version: Version,
		ID:      uuid.New(),
		Created: time.Now().UTC(),
		Pattern: pattern,
		Answers: append([]string(nil), answers...),
		Request: R,
	}
	if dis != nil {
		st.Displacements = dis.Vecs()
	}
	return st
}

//Check returns an error if the state can't be used.
func (st *State) Check() error {
	if st.Version != Version {
		return alkali.NewError(alkali.Validation, "", "State.Check", "unsupported state version %d", st.Version)
	}
	if st.Request == nil {
		return alkali.NewError(alkali.Validation, "", "State.Check", "no structure in state")
	}
	if err := st.Request.Check(); err != nil {
		return errDecorate(err, "State.Check")
	}
	if len(st.Displacements) == 0 {
		return alkali.NewError(alkali.Validation, "", "State.Check", "no displacements in state")
	}
	return nil
}

//Displacement returns the stored displacements, as they were generated.
func (st *State) Displacement() (*v3.Matrix, error) {
	dis, err := v3.FromVecs(st.Displacements)
	if err != nil {
		return nil, alkali.NewError(alkali.Validation, "", "State.Displacement", "%s", err.Error())
	}
	return dis, nil
}

//Replay generates the displacements again, from the stored pattern and answers.
func (st *State) Replay() (*v3.Matrix, error) {
	dis, err := alkali.Generate(st.Pattern, st.Request, prompt.NewScript(st.Answers...))
	if err != nil {
		return nil, errDecorate(err, "State.Replay")
	}
	return dis, nil
}

type zstdReadCloser struct {
	*zstd.Decoder
}

//*zstd.Decoder's Close doesn't return an error
func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

//compressed returns false for files that are stored as plain JSON.
func compressed(name string) bool {
	return strings.ToLower(filepath.Ext(name)) != ".json"
}

//Save writes st to the file name. The file is zstd-compressed JSON, unless
//name has a .json extension.
func Save(name string, st *State) error {
	const funcname = "state.Save"
	fout, err := os.Create(name)
	if err != nil {
		return alkali.WrapIO(err, name, funcname)
	}
	defer fout.Close()
	var w io.WriteCloser = nopCloser{fout}
	if compressed(name) {
		w, err = zstd.NewWriter(fout, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return alkali.WrapIO(err, name, funcname)
		}
	}
	if err := json.NewEncoder(w).Encode(st); err != nil {
		w.Close()
		return alkali.WrapIO(err, name, funcname)
	}
	if err := w.Close(); err != nil {
		return alkali.WrapIO(err, name, funcname)
	}
	if err := fout.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return alkali.WrapIO(err, name, funcname)
	}
	return nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

//Load reads a state written by Save, and checks it.
func Load(name string) (*State, error) {
	const funcname = "state.Load"
	fin, err := os.Open(name)
	if err != nil {
		return nil, alkali.WrapIO(err, name, funcname)
	}
	defer fin.Close()
	var r io.ReadCloser = io.NopCloser(fin)
	if compressed(name) {
		d, err := zstd.NewReader(fin)
		if err != nil {
			return nil, alkali.WrapIO(err, name, funcname)
		}
		r = zstdReadCloser{d}
	}
	defer r.Close()
	st := new(State)
	if err := json.NewDecoder(r).Decode(st); err != nil {
		return nil, alkali.NewError(alkali.Validation, name, funcname, "corrupted state file: %s", err.Error())
	}
	if err := st.Check(); err != nil {
		var e *alkali.Error
		if errors.As(err, &e) {
			e.InFile(name)
		}
		return nil, errDecorate(err, funcname)
	}
	return st, nil
}

func errDecorate(err error, caller string) error {
	var d alkali.Decorated
	if errors.As(err, &d) {
		d.Decorate(caller)
	}
	return err
}
