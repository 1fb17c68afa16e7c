/*
 * qm_test.go, part of alkali.
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
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/rmera/alkali"
	v3 "github.com/rmera/alkali/v3"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestCard(Te *testing.T) {
	lines := []string{"&SYSTEM", "  nat = 2", "/", "ATOMIC_SPECIES", " Li 6.9 Li.upf", "F 19.0 F.upf", "K_POINTS gamma", "", "CELL_PARAMETERS"}
	if d := cmp.Diff([]string{"Li 6.9 Li.upf", "F 19.0 F.upf"}, Card(lines, "ATOMIC_SPECIES")); d != "" {
		Te.Error(d)
	}
	if c := Card(lines, "K_POINTS"); len(c) != 0 {
		Te.Errorf("K_POINTS should be empty, got %v", c)
	}
	if c := Card(lines, "HUBBARD"); c != nil {
		Te.Errorf("missing card should be nil, got %v", c)
	}
	if o := CardOption(lines, "K_POINTS"); o != "gamma" {
		Te.Errorf("wrong option %q", o)
	}
}

func TestReadDeck(Te *testing.T) {
	D, err := ReadDeck("testdata/LiF.in")
	if err != nil {
		Te.Fatal(err)
	}
	if D.CellUnits != "angstrom" || D.PosUnits != "crystal" {
		Te.Errorf("wrong units %q %q", D.CellUnits, D.PosUnits)
	}
	if d := cmp.Diff([]string{"Li", "F"}, D.Species); d != "" {
		Te.Error(d)
	}
	if d := cmp.Diff([][]float64{{0, 2.015, 2.015}, {2.015, 0, 2.015}, {2.015, 2.015, 0}}, D.Basis.Vecs(), approx); d != "" {
		Te.Error(d)
	}
	if d := cmp.Diff([][]float64{{0, 0, 0}, {0.5, 0.5, 0.5}}, D.Coords.Vecs(), approx); d != "" {
		Te.Error(d)
	}
	R := D.Request(1)
	if err := R.Check(); err != nil {
		Te.Error(err)
	}
	if R.Source != "testdata/LiF.in" {
		Te.Errorf("wrong source %q", R.Source)
	}
}

func TestReadDeckAngstrom(Te *testing.T) {
	D, err := ReadDeck("testdata/LiF_angstrom.in")
	if err != nil {
		Te.Fatal(err)
	}
	if d := cmp.Diff([][]float64{{0, 0, 0}, {0.5, 0.5, 0.5}}, D.Coords.Vecs(), approx); d != "" {
		Te.Error(d)
	}
}

func TestReadDeckErrors(Te *testing.T) {
	_, err := ReadDeck("testdata/LiF_alat.in")
	if k, ok := alkali.KindOf(err); !ok || k != alkali.Validation {
		Te.Errorf("alat positions with an angstrom cell should be a validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "LiF_alat.in") {
		Te.Errorf("the error should name the file: %v", err)
	}
	_, err = ReadDeck("testdata/nothere.in")
	if k, ok := alkali.KindOf(err); !ok || k != alkali.IO {
		Te.Errorf("a missing file should be an IO error, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		Te.Errorf("the IO error should wrap the OS error: %v", err)
	}
	_, err = ParseDeck([]string{"CELL_PARAMETERS", "1 0 0", "0 1 0"})
	if k, _ := alkali.KindOf(err); k != alkali.Validation {
		Te.Errorf("a short cell should be a validation error, got %v", err)
	}
}

func TestWithPositions(Te *testing.T) {
	D, err := ReadDeck("testdata/LiF.in")
	if err != nil {
		Te.Fatal(err)
	}
	c, _ := v3.NewMatrix([]float64{0.01, 0, 0, 0.5, 0.5, 0.5})
	lines, err := D.WithPositions(D.Species, c)
	if err != nil {
		Te.Fatal(err)
	}
	if len(lines) != len(D.Lines) {
		Te.Errorf("the deck changed length: %d to %d", len(D.Lines), len(lines))
	}
	D2, err := ParseDeck(lines)
	if err != nil {
		Te.Fatal(err)
	}
	if d := cmp.Diff(c.Vecs(), D2.Coords.Vecs(), approx); d != "" {
		Te.Error(d)
	}
	if d := cmp.Diff(Card(D.Lines, "K_POINTS"), Card(lines, "K_POINTS")); d != "" {
		Te.Error(d)
	}
	if !strings.HasSuffix(Card(lines, "ATOMIC_POSITIONS")[1], "1 1 0") {
		Te.Errorf("if_pos flags lost: %v", Card(lines, "ATOMIC_POSITIONS"))
	}
	if _, err := D.WithPositions([]string{"Li"}, c); err == nil {
		Te.Error("mismatched species and coordinates accepted")
	}
}

func TestDeckWriter(Te *testing.T) {
	D, err := ReadDeck("testdata/LiF.in")
	if err != nil {
		Te.Fatal(err)
	}
	dir := Te.TempDir()
	w := &DeckWriter{H: NewEspressoHandle(D)}
	S := &alkali.Structure{Species: D.Species, Basis: D.Basis, Coords: D.Coords}
	name, err := w.WriteStructure(filepath.Join(dir, "D0", "LiF.json"), S)
	if err == nil {
		Te.Error("writing to a missing directory should fail")
	}
	name, err = w.WriteStructure(filepath.Join(dir, "D0-LiF.json"), S)
	if err != nil {
		Te.Fatal(err)
	}
	if name != filepath.Join(dir, "D0-LiF.in") {
		Te.Errorf("wrong file name %q", name)
	}
	D2, err := ReadDeck(name)
	if err != nil {
		Te.Fatal(err)
	}
	if d := cmp.Diff(D.Coords.Vecs(), D2.Coords.Vecs(), approx); d != "" {
		Te.Error(d)
	}
	_, err = w.WriteStructure("testdata/LiF.json", S)
	if k, _ := alkali.KindOf(err); k != alkali.Validation {
		Te.Errorf("overwriting the template should be refused, got %v", err)
	}
}
