/*
 * json.go, part of alkali.
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

package chemjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/rmera/alkali"
	v3 "github.com/rmera/alkali/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//An easily JSON-serializable error type,
type Error struct {
	deco     []string
	err      error
	IsError  bool //If this is false (no error) all the other fields will be at their zero-values.
	InRead   bool //Was it while reading a structure?
	InWrite  bool //Was it while writing one?
	File     string
	Site     int    //Which site, if relevant.
	Function string //which go function gave the error
	Message  string //the error itself
}

//Error implements the error interface
func (J *Error) Error() string {
	if J.File != "" {
		return fmt.Sprintf("%s: %s", J.File, J.Message)
	}
	return J.Message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (J *Error) Decorate(dec string) []string {
	if dec == "" {
		return J.deco
	}
	J.deco = append(J.deco, dec)
	return J.deco
}

//Unwrap returns the error that caused this one.
func (J *Error) Unwrap() error { return J.err }

//Serializes the error. Panics on failure.
func (J *Error) Marshal() []byte {
	ret, err2 := json.Marshal(J)
	if err2 != nil {
		panic(strings.Join([]string{J.Error(), err2.Error()}, " - "))
	}
	return ret
}

//Takes an error and some additional info to create a json-marshal-ble error.
//where is "read" or "write".
func NewError(where, function, file string, err error) *Error {
	jerr := &Error{IsError: true, Function: function, File: file, Message: err.Error(), err: err, Site: -1}
	switch where {
	case "read":
		jerr.InRead = true
	case "write":
		jerr.InWrite = true
	}
	jerr.deco = []string{function}
	return jerr
}

//Species is an element with its occupancy.
type Species struct {
	Element string  `json:"element"`
	Occu    float64 `json:"occu"`
}

//Site is one atom of a structure.
type Site struct {
	Species    []Species      `json:"species"`
	ABC        []float64      `json:"abc"`
	XYZ        []float64      `json:"xyz"`
	Label      string         `json:"label"`
	Properties map[string]any `json:"properties"`
}

//Lattice is the periodic cell of a structure.
type Lattice struct {
	Matrix [][]float64 `json:"matrix"`
	PBC    [3]bool     `json:"pbc"`
	A      float64     `json:"a"`
	B      float64     `json:"b"`
	C      float64     `json:"c"`
	Alpha  float64     `json:"alpha"`
	Beta   float64     `json:"beta"`
	Gamma  float64     `json:"gamma"`
	Volume float64     `json:"volume"`
}

//Structure is the pymatgen dictionary representation of a periodic structure.
type Structure struct {
	Module     string         `json:"@module"`
	Class      string         `json:"@class"`
	Charge     float64        `json:"charge"`
	Lattice    Lattice        `json:"lattice"`
	Properties map[string]any `json:"properties"`
	Sites      []Site         `json:"sites"`
}

//angle returns the angle between a and b in degrees.
func angle(a, b []float64) float64 {
	c := floats.Dot(a, b) / (floats.Norm(a, 2) * floats.Norm(b, 2))
	c = math.Max(-1, math.Min(1, c))
	return math.Acos(c) * 180 / math.Pi
}

//NewLattice builds the lattice of a basis with one lattice vector per row.
func NewLattice(basis *v3.Matrix) Lattice {
	vecs := basis.Vecs()
	return Lattice{
		Matrix: vecs,
		PBC:    [3]bool{true, true, true},
		A:      floats.Norm(vecs[0], 2),
		B:      floats.Norm(vecs[1], 2),
		C:      floats.Norm(vecs[2], 2),
		Alpha:  angle(vecs[1], vecs[2]),
		Beta:   angle(vecs[0], vecs[2]),
		Gamma:  angle(vecs[0], vecs[1]),
		Volume: math.Abs(mat.Det(basis.Dense)),
	}
}

//NewStructure converts a displaced structure into its pymatgen representation.
func NewStructure(S *alkali.Structure) (*Structure, *Error) {
	const funcname = "NewStructure"
	xyz, err := S.Cartesian()
	if err != nil {
		return nil, NewError("write", funcname, "", err)
	}
	ret := &Structure{
		Module:     "pymatgen.core.structure",
		Class:      "Structure",
		Lattice:    NewLattice(S.Basis),
		Properties: map[string]any{},
		Sites:      make([]Site, len(S.Species)),
	}
	for i, s := range S.Species {
		ret.Sites[i] = Site{
			Species:    []Species{{Element: element(s), Occu: 1}},
			ABC:        S.Coords.RawRowView(i),
			XYZ:        xyz.RawRowView(i),
			Label:      s,
			Properties: map[string]any{},
		}
	}
	return ret, nil
}

//element returns the element symbol of an atom label, i.e., Li for Li1.
func element(label string) string {
	return strings.TrimRight(label, "0123456789+-_")
}

//Encode writes S to out as a single JSON document.
func Encode(S *alkali.Structure, out io.Writer) *Error {
	const funcname = "Encode"
	st, err := NewStructure(S)
	if err != nil {
		err.Decorate(funcname)
		return err
	}
	if err := json.NewEncoder(out).Encode(st); err != nil {
		var uv *json.UnsupportedValueError
		if errors.As(err, &uv) {
			return NewError("write", funcname, "", alkali.NewError(alkali.Validation, "", funcname, "%s", err.Error()))
		}
		return NewError("write", funcname, "", alkali.WrapIO(err, "", funcname))
	}
	return nil
}

//Decode reads a structure written by Encode (or by pymatgen).
func Decode(in io.Reader) (*Structure, *Error) {
	ret := new(Structure)
	if err := json.NewDecoder(in).Decode(ret); err != nil {
		return nil, NewError("read", "Decode", "", err)
	}
	return ret, nil
}

//Writer writes each displaced structure to a JSON file. It implements alkali.Writer.
type Writer struct{}

//WriteStructure writes S to the file name, and returns name. If S can't be
//written, no file is left behind.
func (W Writer) WriteStructure(name string, S *alkali.Structure) (string, error) {
	const funcname = "Writer.WriteStructure"
	fout, err := os.Create(name)
	if err != nil {
		return "", NewError("write", funcname, name, alkali.WrapIO(err, name, funcname))
	}
	if jerr := Encode(S, fout); jerr != nil {
		fout.Close()
		os.Remove(name)
		var e *alkali.Error
		if errors.As(jerr, &e) {
			e.InFile(name)
		}
		jerr.File = name
		jerr.Decorate(funcname)
		return "", jerr
	}
	if err := fout.Close(); err != nil {
		os.Remove(name)
		return "", NewError("write", funcname, name, alkali.WrapIO(err, name, funcname))
	}
	return name, nil
}

//ReadStructure reads a JSON structure file.
func ReadStructure(name string) (*Structure, error) {
	const funcname = "ReadStructure"
	fin, err := os.Open(name)
	if err != nil {
		return nil, NewError("read", funcname, name, alkali.WrapIO(err, name, funcname))
	}
	defer fin.Close()
	st, jerr := Decode(fin)
	if jerr != nil {
		jerr.File = name
		jerr.Decorate(funcname)
		return nil, jerr
	}
	return st, nil
}

//ReadSite returns the Cartesian coordinates of the site index of the structure in the file name.
func ReadSite(name string, index int) ([]float64, error) {
	st, err := ReadStructure(name)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(st.Sites) {
		jerr := NewError("read", "ReadSite", name, fmt.Errorf("site %d out of range [0, %d)", index, len(st.Sites)))
		jerr.Site = index
		return nil, jerr
	}
	if len(st.Sites[index].XYZ) != 3 {
		jerr := NewError("read", "ReadSite", name, fmt.Errorf("site %d has no Cartesian coordinates", index))
		jerr.Site = index
		return nil, jerr
	}
	return st.Sites[index].XYZ, nil
}

//Frame returns the species, basis and lattice coordinates of st, as an alkali structure.
func (st *Structure) Frame() (*alkali.Structure, error) {
	basis, err := v3.FromVecs(st.Lattice.Matrix)
	if err != nil {
		return nil, NewError("read", "Structure.Frame", "", err)
	}
	species := make([]string, len(st.Sites))
	abc := make([][]float64, len(st.Sites))
	for i, s := range st.Sites {
		species[i] = s.Label
		abc[i] = s.ABC
	}
	coords, err := v3.FromVecs(abc)
	if err != nil {
		return nil, NewError("read", "Structure.Frame", "", err)
	}
	return &alkali.Structure{Species: species, Basis: basis, Coords: coords}, nil
}
