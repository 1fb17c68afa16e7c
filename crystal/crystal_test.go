/*
 * crystal_test.go, part of alkali.
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

package crystal

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/rmera/alkali"
)

func TestLoadDir(Te *testing.T) {
	D, err := LoadDir("testdata")
	if err != nil {
		Te.Fatal(err)
	}
	//calculated.csv is read first
	if d := cmp.Diff([]string{"LiF", "NaCl", "CsCl"}, D.Names()); d != "" {
		Te.Error(d)
	}
	C, err := D.Crystal("NaCl")
	if err != nil {
		Te.Fatal(err)
	}
	want := &Crystal{
		Name: "NaCl", Alkali: "Na", Halide: "Cl", Valence: 8,
		Lit:                    Literature{Structure: "fcc", A0: 5.64, Eg: 8.75, E1s: 7.96, Eps0: 5.9, EpsInf: 2.34},
		Calc:                   Calculated{A0: 5.69, EpsInf: 2.30, Eg: 8.5},
		Conv:                   Convergence{Pressure: 0.1, Eps: 1e-4, TotalEnergy: -90.5},
		Set:                    Settings{Structure: "fcc", NBnd: 80, EcutWfc: 70, KPointsSCF: 8, KPointsCo: 4, KPointsFi: 12, FFT: 60, EcutEps: 15, ScreenedCutoff: 15},
		UseLiteratureStructure: true,
	}
	if d := cmp.Diff(want, C); d != "" {
		Te.Error(d)
	}
	if d := cmp.Diff([]string{"Na.upf", "Cl.upf"}, C.Pseudos()); d != "" {
		Te.Error(d)
	}
	_, err = D.Crystal("KBr")
	if k, _ := alkali.KindOf(err); k != alkali.Validation || !strings.Contains(err.Error(), "LiF, NaCl, CsCl") {
		Te.Errorf("unexpected error for a missing crystal: %v", err)
	}
}

func TestLoadErrors(Te *testing.T) {
	_, err := LoadTables("testdata/literature.csv", "testdata/broken.csv")
	if k, _ := alkali.KindOf(err); k != alkali.Validation || !strings.Contains(err.Error(), "lattice_constant") {
		Te.Errorf("unknown column accepted: %v", err)
	}
	_, err = LoadTables("testdata/nothere.csv")
	if k, _ := alkali.KindOf(err); k != alkali.IO {
		Te.Errorf("expected an IO error, got %v", err)
	}
	_, err = LoadDir(Te.TempDir())
	if k, _ := alkali.KindOf(err); k != alkali.IO {
		Te.Errorf("expected an IO error, got %v", err)
	}
}

func TestBase(Te *testing.T) {
	D, err := LoadDir("testdata")
	if err != nil {
		Te.Fatal(err)
	}
	C, _ := D.Crystal("LiF")
	R, err := C.Base(false)
	if err != nil {
		Te.Fatal(err)
	}
	if err := R.Check(); err != nil {
		Te.Error(err)
	}
	h := 4.07 / 2
	approx := cmpopts.EquateApprox(0, 1e-12)
	if d := cmp.Diff([][]float64{{0, h, h}, {h, 0, h}, {h, h, 0}}, R.Basis.Vecs(), approx); d != "" {
		Te.Error(d)
	}
	if d := cmp.Diff([][]float64{{0, 0, 0}, {0.5, 0.5, 0.5}}, R.Coords.Vecs()); d != "" {
		Te.Error(d)
	}
	if R.Source != "LiF" || R.Species[1] != "F" {
		Te.Errorf("wrong request %s %v", R.Source, R.Species)
	}
	R, err = C.Base(true)
	if err != nil || R.Basis.At(0, 1) != 4.03/2 {
		Te.Errorf("literature lattice constant not used: %v", err)
	}
	//CsCl has no calculated values, and no settings
	Cs, _ := D.Crystal("CsCl")
	if _, err := Cs.Base(false); err == nil {
		Te.Error("crystal without settings structure accepted")
	}
	Cs.UseLiteratureStructure = true
	if _, err := Cs.Base(false); err == nil {
		Te.Error("crystal without calculated lattice constant accepted")
	}
	R, err = Cs.Base(true)
	if err != nil {
		Te.Fatal(err)
	}
	if d := cmp.Diff([][]float64{{4.12, 0, 0}, {0, 4.12, 0}, {0, 0, 4.12}}, R.Basis.Vecs()); d != "" {
		Te.Error(d)
	}
}
