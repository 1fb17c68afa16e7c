/*
 * json_test.go, part of alkali.
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
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/rmera/alkali"
	v3 "github.com/rmera/alkali/v3"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func lif() *alkali.Structure {
	basis, _ := v3.NewMatrix([]float64{0, 2.015, 2.015, 2.015, 0, 2.015, 2.015, 2.015, 0})
	coords, _ := v3.NewMatrix([]float64{0.1, 0, 0, 0.5, 0.5, 0.5})
	return &alkali.Structure{Species: []string{"Li", "F"}, Basis: basis, Coords: coords}
}

func TestNewStructure(Te *testing.T) {
	st, err := NewStructure(lif())
	if err != nil {
		Te.Fatal(err)
	}
	if st.Module != "pymatgen.core.structure" || st.Class != "Structure" {
		Te.Errorf("wrong header %s %s", st.Module, st.Class)
	}
	l := st.Lattice
	if d := cmp.Diff([]float64{60, 60, 60}, []float64{l.Alpha, l.Beta, l.Gamma}, approx); d != "" {
		Te.Error(d)
	}
	//fcc primitive cell: a^3/4 with a=4.03
	if d := cmp.Diff(4.03*4.03*4.03/4, l.Volume, approx); d != "" {
		Te.Error(d)
	}
	if d := cmp.Diff([]float64{0, 0.2015, 0.2015}, st.Sites[0].XYZ, approx); d != "" {
		Te.Error(d)
	}
	if st.Sites[1].Species[0].Element != "F" || st.Sites[1].Species[0].Occu != 1 {
		Te.Errorf("wrong species %v", st.Sites[1].Species)
	}
}

func TestKeys(Te *testing.T) {
	var b bytes.Buffer
	if err := Encode(lif(), &b); err != nil {
		Te.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(b.Bytes(), &raw); err != nil {
		Te.Fatal(err)
	}
	for _, k := range []string{"@module", "@class", "charge", "lattice", "sites", "properties"} {
		if _, ok := raw[k]; !ok {
			Te.Errorf("key %s missing", k)
		}
	}
	site := raw["sites"].([]any)[0].(map[string]any)
	for _, k := range []string{"species", "abc", "xyz", "label", "properties"} {
		if _, ok := site[k]; !ok {
			Te.Errorf("site key %s missing", k)
		}
	}
}

func TestWriteRead(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "D0-LiF.json")
	S := lif()
	got, err := Writer{}.WriteStructure(name, S)
	if err != nil {
		Te.Fatal(err)
	}
	if got != name {
		Te.Errorf("wrong name %s", got)
	}
	xyz, err := ReadSite(name, 0)
	if err != nil {
		Te.Fatal(err)
	}
	if d := cmp.Diff([]float64{0, 0.2015, 0.2015}, xyz, approx); d != "" {
		Te.Error(d)
	}
	st, err := ReadStructure(name)
	if err != nil {
		Te.Fatal(err)
	}
	S2, err := st.Frame()
	if err != nil {
		Te.Fatal(err)
	}
	//the lattice coordinates must survive the round trip bit for bit
	if d := cmp.Diff(S.Coords.Vecs(), S2.Coords.Vecs()); d != "" {
		Te.Error(d)
	}
	if _, err := ReadSite(name, 2); err == nil {
		Te.Error("out of range site accepted")
	}
}

func TestErrors(Te *testing.T) {
	_, err := ReadSite(filepath.Join(Te.TempDir(), "nothere.json"), 0)
	if !errors.Is(err, fs.ErrNotExist) {
		Te.Errorf("expected a wrapped not-exist error, got %v", err)
	}
	if k, ok := alkali.KindOf(err); !ok || k != alkali.IO {
		Te.Errorf("expected an IO error, got %v", err)
	}
	var jerr *Error
	if !errors.As(err, &jerr) || !jerr.InRead {
		Te.Fatalf("expected a chemjson read error, got %v", err)
	}
	var back Error
	if err := json.Unmarshal(jerr.Marshal(), &back); err != nil || back.Function != "ReadStructure" {
		Te.Errorf("error didn't serialize: %v %+v", err, back)
	}
	_, err = Writer{}.WriteStructure(filepath.Join(Te.TempDir(), "no", "dir.json"), lif())
	if k, _ := alkali.KindOf(err); k != alkali.IO {
		Te.Errorf("expected an IO error, got %v", err)
	}
}

func TestWriteNonFinite(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "D1-LiF.json")
	S := lif()
	S.Coords.Set(0, 1, math.NaN())
	_, err := Writer{}.WriteStructure(name, S)
	if err == nil {
		Te.Fatal("structure with NaN coordinates written")
	}
	if k, ok := alkali.KindOf(err); !ok || k != alkali.Validation {
		Te.Errorf("expected a validation error, got %v", err)
	}
	var jerr *Error
	if !errors.As(err, &jerr) || !jerr.InWrite || jerr.File != name {
		Te.Errorf("expected a chemjson write error for %s, got %v", name, err)
	}
	if _, err := os.Stat(name); !errors.Is(err, fs.ErrNotExist) {
		Te.Errorf("partial file left behind: %v", err)
	}
}
