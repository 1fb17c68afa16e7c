/*
 * espresso.go, part of alkali.
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

package qm

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rmera/alkali"
	v3 "github.com/rmera/alkali/v3"
)

//Bohr is the Bohr radius in Angstrom.
const Bohr = 0.529177210903

//Deck is a Quantum Espresso pw.x input. The cell and the atomic positions are parsed,
//everything else is kept verbatim.
type Deck struct {
	FileName  string
	Lines     []string
	CellUnits string     //option of the CELL_PARAMETERS card
	PosUnits  string     //option of the ATOMIC_POSITIONS card, as read
	Basis     *v3.Matrix //one lattice vector per row
	Species   []string
	Coords    *v3.Matrix //crystal (lattice) coordinates
	extra     [][]string //fields after the coordinates, such as the if_pos flags
}

//ReadDeck reads the cell and the atomic positions from a pw.x input file.
//Positions given in Cartesian units are converted to crystal coordinates, which
//requires the cell to be given in compatible units.
func ReadDeck(filename string) (*Deck, error) {
	fin, err := os.Open(filename)
	if err != nil {
		return nil, alkali.WrapIO(err, filename, "ReadDeck")
	}
	defer fin.Close()
	var lines []string
	s := bufio.NewScanner(fin)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, alkali.WrapIO(err, filename, "ReadDeck")
	}
	D, err := ParseDeck(lines)
	if err != nil {
		var e *alkali.Error
		if errors.As(err, &e) {
			e.InFile(filename)
		}
		return nil, errDecorate(err, "ReadDeck")
	}
	D.FileName = filename
	return D, nil
}

//ParseDeck parses the lines of a pw.x input.
func ParseDeck(lines []string) (*Deck, error) {
	D := &Deck{Lines: lines}
	D.CellUnits = CardOption(lines, "CELL_PARAMETERS")
	D.PosUnits = CardOption(lines, "ATOMIC_POSITIONS")
	cell := Card(lines, "CELL_PARAMETERS")
	if len(cell) != 3 {
		return nil, alkali.NewError(alkali.Validation, "", "ParseDeck", "CELL_PARAMETERS: expected 3 lattice vectors, got %d lines", len(cell))
	}
	bvecs := make([][]float64, 3)
	for i, l := range cell {
		f := strings.Fields(l)
		if len(f) != 3 {
			return nil, alkali.NewError(alkali.Validation, "", "ParseDeck", "CELL_PARAMETERS: %q is not a vector", l)
		}
		v, err := parseFloats(f)
		if err != nil {
			return nil, alkali.NewError(alkali.Validation, "", "ParseDeck", "CELL_PARAMETERS: %s", err.Error())
		}
		bvecs[i] = v
	}
	D.Basis, _ = v3.FromVecs(bvecs)

	pos := Card(lines, "ATOMIC_POSITIONS")
	if len(pos) == 0 {
		return nil, alkali.NewError(alkali.Validation, "", "ParseDeck", "no ATOMIC_POSITIONS in deck")
	}
	cvecs := make([][]float64, len(pos))
	D.Species = make([]string, len(pos))
	D.extra = make([][]string, len(pos))
	for i, l := range pos {
		f := strings.Fields(l)
		if len(f) < 4 {
			return nil, alkali.NewError(alkali.Validation, "", "ParseDeck", "ATOMIC_POSITIONS: %q needs a label and 3 coordinates", l)
		}
		v, err := parseFloats(f[1:4])
		if err != nil {
			return nil, alkali.NewError(alkali.Validation, "", "ParseDeck", "ATOMIC_POSITIONS: %s", err.Error())
		}
		D.Species[i] = f[0]
		cvecs[i] = v
		D.extra[i] = f[4:]
	}
	coords, _ := v3.FromVecs(cvecs)
	var err error
	D.Coords, err = toCrystal(coords, D.Basis, D.PosUnits, D.CellUnits)
	if err != nil {
		return nil, errDecorate(err, "ParseDeck")
	}
	return D, nil
}

func parseFloats(fields []string) ([]float64, error) {
	ret := make([]float64, len(fields))
	for i, f := range fields {
		//Fortran double precision exponents
		v, err := strconv.ParseFloat(strings.NewReplacer("d", "e", "D", "e").Replace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", f)
		}
		ret[i] = v
	}
	return ret, nil
}

//toCrystal converts positions given in units pos to crystal coordinates.
//pw.x uses alat when no units are given.
func toCrystal(coords, basis *v3.Matrix, pos, cell string) (*v3.Matrix, error) {
	if pos == "crystal" {
		return coords, nil
	}
	if pos == "" {
		pos = "alat"
	}
	if cell == "" {
		cell = "alat"
	}
	var factor float64
	switch {
	case pos == cell && (pos == "alat" || pos == "angstrom" || pos == "bohr"):
		factor = 1
	case pos == "bohr" && cell == "angstrom":
		factor = Bohr
	case pos == "angstrom" && cell == "bohr":
		factor = 1 / Bohr
	default:
		return nil, alkali.NewError(alkali.Validation, "", "toCrystal", "can't convert ATOMIC_POSITIONS in %q to crystal coordinates with CELL_PARAMETERS in %q", pos, cell)
	}
	cart := v3.Zeros(coords.NVecs())
	cart.Scale(factor, coords.Dense)
	ret, err := alkali.ToLattice(cart, basis)
	if err != nil {
		return nil, errDecorate(err, "toCrystal")
	}
	return ret, nil
}

//Request returns a request to displace the atom index of the deck.
func (D *Deck) Request(index int) *alkali.Request {
	return &alkali.Request{Source: D.FileName, Index: index, Basis: D.Basis, Species: D.Species, Coords: D.Coords}
}

//WithPositions returns the lines of the deck with the ATOMIC_POSITIONS card replaced
//by the given species and crystal coordinates. Any flags after the coordinates of an atom
//in the template deck are kept.
func (D *Deck) WithPositions(species []string, coords *v3.Matrix) ([]string, error) {
	if coords == nil || coords.NVecs() != len(species) {
		return nil, alkali.NewError(alkali.Validation, D.FileName, "Deck.WithPositions", "species and coordinates don't match")
	}
	h := cardHeader(D.Lines, "ATOMIC_POSITIONS")
	if h < 0 {
		return nil, alkali.NewError(alkali.Validation, D.FileName, "Deck.WithPositions", "no ATOMIC_POSITIONS in deck")
	}
	end := cardEnd(D.Lines, h)
	ret := make([]string, 0, len(D.Lines)-(end-h)+len(species)+1)
	ret = append(ret, D.Lines[:h]...)
	ret = append(ret, "ATOMIC_POSITIONS crystal")
	for i, s := range species {
		l := fmt.Sprintf("%-4s %14.10f %14.10f %14.10f", s, coords.At(i, 0), coords.At(i, 1), coords.At(i, 2))
		if i < len(D.extra) && len(D.extra[i]) > 0 {
			l += " " + strings.Join(D.extra[i], " ")
		}
		ret = append(ret, l)
	}
	ret = append(ret, D.Lines[end:]...)
	return ret, nil
}

//EspressoHandle writes pw.x inputs based on a template deck.
type EspressoHandle struct {
	deck      *Deck
	inputname string
}

//NewEspressoHandle returns a handle that uses D as template.
func NewEspressoHandle(D *Deck) *EspressoHandle {
	return &EspressoHandle{deck: D, inputname: "displaced"}
}

//SetName sets the name of the next input. Any extension is replaced by ".in".
func (E *EspressoHandle) SetName(name string) {
	E.inputname = strings.TrimSuffix(name, filepath.Ext(name))
}

//BuildInput writes the template deck with the positions of S.
func (E *EspressoHandle) BuildInput(S *alkali.Structure) (string, error) {
	lines, err := E.deck.WithPositions(S.Species, S.Coords)
	if err != nil {
		return "", errDecorate(err, "EspressoHandle.BuildInput")
	}
	name := E.inputname + ".in"
	if filepath.Clean(name) == filepath.Clean(E.deck.FileName) {
		return "", alkali.NewError(alkali.Validation, name, "EspressoHandle.BuildInput", "refusing to overwrite the template deck")
	}
	fout, err := os.Create(name)
	if err != nil {
		return "", alkali.WrapIO(err, name, "EspressoHandle.BuildInput")
	}
	defer fout.Close()
	w := bufio.NewWriter(fout)
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return "", alkali.WrapIO(err, name, "EspressoHandle.BuildInput")
		}
	}
	if err := w.Flush(); err != nil {
		return "", alkali.WrapIO(err, name, "EspressoHandle.BuildInput")
	}
	return name, nil
}
