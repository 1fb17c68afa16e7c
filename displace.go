/*
 * displace.go, part of alkali.
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

package alkali

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	v3 "github.com/rmera/alkali/v3"
	"gonum.org/v1/gonum/floats"
)

//Structure is one displaced structure: the base structure with one atom moved.
type Structure struct {
	Species []string
	Basis   *v3.Matrix
	Coords  *v3.Matrix //lattice coordinates
}

//Cartesian returns the Cartesian coordinates of the atoms in S.
func (S *Structure) Cartesian() (*v3.Matrix, error) {
	return ToCartesian(S.Coords, S.Basis)
}

//Generate checks the request, and runs the pattern with the given name on it.
func Generate(name string, R *Request, p Prompter) (*v3.Matrix, error) {
	pat, err := LookupPattern(name)
	if err != nil {
		return nil, errDecorate(err, "Generate")
	}
	if err := R.Check(); err != nil {
		return nil, errDecorate(err, "Generate")
	}
	dis, err := pat.Generate(R, p)
	if err != nil {
		return nil, errDecorate(err, "Generate")
	}
	return dis, nil
}

//Displace returns one structure per displacement in dis. Structure i is the base
//structure of R with the atom R.Index moved by dis[i]. The base coordinates are not modified.
func Displace(R *Request, dis *v3.Matrix) ([]*Structure, error) {
	if err := R.Check(); err != nil {
		return nil, errDecorate(err, "Displace")
	}
	if dis == nil {
		return nil, NewError(Validation, R.Source, "Displace", "no displacements given")
	}
	for i := 0; i < dis.NVecs(); i++ {
		if !finite(dis.RawRowView(i)...) {
			return nil, NewError(Validation, R.Source, "Displace", "displacement %d is not finite: %v", i, dis.RawRowView(i))
		}
	}
	ret := make([]*Structure, dis.NVecs())
	for i := range ret {
		c := v3.Zeros(R.Coords.NVecs())
		c.Copy(R.Coords.Dense)
		floats.Add(c.RawRowView(R.Index), dis.RawRowView(i))
		ret[i] = &Structure{Species: R.Species, Basis: R.Basis, Coords: c}
	}
	return ret, nil
}

//LeadingZeros returns the number of digits needed to write the indexes of n items,
//i.e. floor(log10(n))+1. n=0 is treated as n=1.
func LeadingZeros(n int) int {
	if n <= 0 {
		n = 1
	}
	return int(math.Log10(float64(n))) + 1
}

//OutputName returns the name for the ith structure file generated from source.
//The index is zero-padded to width. If subdirs is true, the file is placed in a
//directory named after the index, otherwise the index is used as a prefix.
//A ".in" extension in source is replaced by ".json".
func OutputName(source string, i, width int, subdirs bool) string {
	base := filepath.Base(source)
	if strings.HasSuffix(base, ".in") {
		base = strings.TrimSuffix(base, ".in") + ".json"
	} else if filepath.Ext(base) == "" {
		base += ".json"
	}
	dir := fmt.Sprintf("D%0*d", width, i)
	if subdirs {
		return filepath.Join(dir, base)
	}
	return dir + "-" + base
}

//Pipeline writes the displaced structures with each of its writers.
type Pipeline struct {
	Writers []Writer //the files written by the first one are returned by Run.
	Subdirs bool     //one directory per displacement
	OutDir  string   //all the output goes here. Empty means the current directory.
	Logger  *log.Logger
}

func (P *Pipeline) logger() *log.Logger {
	if P.Logger == nil {
		return log.Default()
	}
	return P.Logger
}

//Run builds one structure per displacement and persists them. All the structures
//are built before anything is written, so an invalid request leaves no files behind.
//A failed write stops the pipeline.
func (P *Pipeline) Run(R *Request, dis *v3.Matrix) ([]string, error) {
	if len(P.Writers) == 0 {
		return nil, NewError(Validation, "", "Pipeline.Run", "no writers given")
	}
	structs, err := Displace(R, dis)
	if err != nil {
		return nil, errDecorate(err, "Pipeline.Run")
	}
	l := P.logger()
	width := LeadingZeros(len(structs))
	files := make([]string, len(structs))
	for i, S := range structs {
		name := filepath.Join(P.OutDir, OutputName(R.Source, i, width, P.Subdirs))
		if dir := filepath.Dir(name); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return files[:i], WrapIO(err, dir, "Pipeline.Run")
			}
		}
		for j, w := range P.Writers {
			written, err := w.WriteStructure(name, S)
			if err != nil {
				return files[:i], errDecorate(err, "Pipeline.Run")
			}
			if j == 0 {
				files[i] = written
			}
			l.Debug("wrote structure", "index", i, "file", written)
		}
	}
	l.Info("displaced structures written", "atom", R.Index, "label", R.Species[R.Index], "count", len(files))
	return files, nil
}
