/*
 * report_test.go, part of alkali.
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

package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rmera/alkali"
	"github.com/rmera/alkali/chemjson"
	"github.com/rmera/alkali/prompt"
	"github.com/rmera/alkali/state"
	v3 "github.com/rmera/alkali/v3"
)

func run(Te *testing.T) (*state.State, *v3.Matrix) {
	basis, _ := v3.NewMatrix([]float64{0, 2.82, 2.82, 2.82, 0, 2.82, 2.82, 2.82, 0})
	coords, _ := v3.NewMatrix([]float64{0, 0, 0, 0.5, 0.5, 0.5})
	R := &alkali.Request{Source: "NaCl.in", Index: 1, Basis: basis, Species: []string{"Na", "Cl"}, Coords: coords}
	dis, err := alkali.Generate("line", R, prompt.NewScript("1 0 0", "0 0.02 3"))
	if err != nil {
		Te.Fatal(err)
	}
	return state.New("line", []string{"1 0 0", "0 0.02 3"}, R, dis), dis
}

func TestSummary(Te *testing.T) {
	st, _ := run(Te)
	var b bytes.Buffer
	if err := Summary(&b, st, [][]float64{{2.82, 2.82, 2.82}, {2.82, 2.8482, 2.8482}, {2.82, 2.8764, 2.8764}}); err != nil {
		Te.Fatal(err)
	}
	out := b.String()
	for _, s := range []string{"USER INPUT\nInput file:\n\tNaCl.in\n", "Moved atom:\n\t[1] Cl\n", "Steps:\n\t3\n",
		"Atom positions [abc]:\n", "Displacement [abc]:\n[[ 0.00000000  0.00000000  0.00000000]\n [ 0.01000000", "Displacement [xyz]:\n"} {
		if !strings.Contains(out, s) {
			Te.Errorf("%q missing from summary:\n%s", s, out)
		}
	}
}

func TestWriteSummary(Te *testing.T) {
	st, dis := run(Te)
	dir := Te.TempDir()
	P := &alkali.Pipeline{Writers: []alkali.Writer{chemjson.Writer{}}, Subdirs: true, OutDir: dir}
	files, err := P.Run(st.Request, dis)
	if err != nil {
		Te.Fatal(err)
	}
	name := filepath.Join(dir, DefaultFile)
	if err := WriteSummary(name, st, files); err != nil {
		Te.Fatal(err)
	}
	raw, err := os.ReadFile(name)
	if err != nil {
		Te.Fatal(err)
	}
	//Cl at the cell centre, (2.82, 2.82, 2.82), moved 0.01 along a
	want := FormatVecs([][]float64{{2.82, 2.82, 2.82}, {2.82, 2.8482, 2.8482}, {2.82, 2.8764, 2.8764}})
	if !strings.HasSuffix(string(raw), "Displacement [xyz]:\n"+want+"\n") {
		Te.Errorf("wrong Cartesian displacements in:\n%s", raw)
	}
}

func TestPlot(Te *testing.T) {
	st, dis := run(Te)
	file := filepath.Join(Te.TempDir(), "dis.png")
	names, err := Plot(file, dis, st.Request.Basis)
	if err != nil {
		Te.Fatal(err)
	}
	if d := cmp.Diff(PlotNames(file), names); d != "" {
		Te.Error(d)
	}
	for _, n := range names {
		if fi, err := os.Stat(n); err != nil || fi.Size() == 0 {
			Te.Errorf("plot %s not written: %v", n, err)
		}
	}
	if d := cmp.Diff([]string{"a/b_xy.png", "a/b_xz.png", "a/b_yz.png"}, PlotNames("a/b")); d != "" {
		Te.Error(d)
	}
}
