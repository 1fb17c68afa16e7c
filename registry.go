/*
 * registry.go, part of alkali.
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
	"strings"

	v3 "github.com/rmera/alkali/v3"
)

//Pattern is a named displacement pattern. Generate collects the parameters it needs
//through the Prompter and returns the displacements in lattice coordinates.
type Pattern struct {
	Name     string
	Help     string
	Generate func(R *Request, p Prompter) (*v3.Matrix, error)
}

const rangeLabel = "Enter displacement range. (Start Stop Number)"

//The order matters: the first pattern is the default, and the names are
//listed in this order in errors and help messages.
var patterns = []Pattern{
	{"line", "displacements along a vector in cell coordinates", func(R *Request, p Prompter) (*v3.Matrix, error) {
		return askLine(R, p, false, false)
	}},
	{"line-cart", "displacements along a vector in Cartesian coordinates", func(R *Request, p Prompter) (*v3.Matrix, error) {
		return askLine(R, p, true, false)
	}},
	{"mag", "unit direction in cell coordinates times a magnitude", func(R *Request, p Prompter) (*v3.Matrix, error) {
		return askLine(R, p, false, true)
	}},
	{"mag-cart", "unit direction in Cartesian coordinates times a magnitude", func(R *Request, p Prompter) (*v3.Matrix, error) {
		return askLine(R, p, true, true)
	}},
	{"zero", "no displacement, converts the input to a structure file", func(R *Request, p Prompter) (*v3.Matrix, error) {
		return Zero(), nil
	}},
	{"plane", "grid on the plane spanned by 2 vectors", func(R *Request, p Prompter) (*v3.Matrix, error) {
		return askGrid(p, 2)
	}},
	{"volume", "grid on the volume spanned by 3 vectors", func(R *Request, p Prompter) (*v3.Matrix, error) {
		return askGrid(p, 3)
	}},
	{"step", "zero plus one step along each lattice vector", func(R *Request, p Prompter) (*v3.Matrix, error) {
		step, err := AskFloat(p, "Step size in alat:")
		if err != nil {
			return nil, err
		}
		return StepCell(step), nil
	}},
	{"step-cart", "zero plus one step along each Cartesian axis", func(R *Request, p Prompter) (*v3.Matrix, error) {
		step, err := AskFloat(p, "Step size in Angstrom:")
		if err != nil {
			return nil, err
		}
		return StepCartesian(R.Basis, step)
	}},
	{"shell", "cube projected on a sphere, radius in cell units", func(R *Request, p Prompter) (*v3.Matrix, error) {
		return askShell(R, p, false, false)
	}},
	{"shell-cart", "cube projected on a sphere, radius in Angstrom", func(R *Request, p Prompter) (*v3.Matrix, error) {
		return askShell(R, p, true, false)
	}},
	{"shell-cart-oct", "positive octant of shell-cart", func(R *Request, p Prompter) (*v3.Matrix, error) {
		return askShell(R, p, true, true)
	}},
	{"shell-oct", "positive octant of shell", func(R *Request, p Prompter) (*v3.Matrix, error) {
		return askShell(R, p, false, true)
	}},
}

//PatternNames returns the names of all the patterns, the default one first.
func PatternNames() []string {
	ret := make([]string, len(patterns))
	for i, v := range patterns {
		ret[i] = v.Name
	}
	return ret
}

//Patterns returns a copy of the pattern registry.
func Patterns() []Pattern {
	return append([]Pattern(nil), patterns...)
}

//LookupPattern returns the pattern with the given name. Case and surrounding
//spaces are ignored, and an empty name gives the default pattern.
func LookupPattern(name string) (Pattern, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return patterns[0], nil
	}
	for _, v := range patterns {
		if v.Name == name {
			return v, nil
		}
	}
	return Pattern{}, NewError(Validation, "", "LookupPattern", "option %s is not a valid option. Please choose from: %s", name, strings.Join(PatternNames(), ", "))
}

func frame(cart bool) string {
	if cart {
		return "xyz"
	}
	return "abc"
}

func askLine(R *Request, p Prompter, cart, mag bool) (*v3.Matrix, error) {
	var dis *v3.Matrix
	var err error
	if mag {
		var v []float64
		v, err = AskFloats(p, fmt.Sprintf("Enter displacement vector [%s m].", frame(cart)), 4, nil)
		if err != nil {
			return nil, errDecorate(err, "askLine")
		}
		var r Range
		if r, err = AskRange(p, rangeLabel, nil); err != nil {
			return nil, errDecorate(err, "askLine")
		}
		dis, err = Magnitude(v[:3], v[3], r)
	} else {
		var v []float64
		v, err = AskFloats(p, fmt.Sprintf("Enter displacement vector [%s].", frame(cart)), 3, nil)
		if err != nil {
			return nil, errDecorate(err, "askLine")
		}
		var r Range
		if r, err = AskRange(p, rangeLabel, nil); err != nil {
			return nil, errDecorate(err, "askLine")
		}
		dis, err = Line(v, r)
	}
	if err != nil {
		return nil, errDecorate(err, "askLine")
	}
	if !cart {
		return dis, nil
	}
	dis, err = ToLattice(dis, R.Basis)
	if err != nil {
		return nil, errDecorate(err, "askLine")
	}
	return dis, nil
}

//askGrid asks for n directions and then for n ranges. A blank answer to any range
//but the first reuses the first range.
func askGrid(p Prompter, n int) (*v3.Matrix, error) {
	dirs := make([][]float64, n)
	ranges := make([]Range, n)
	var err error
	for i := range dirs {
		label := fmt.Sprintf("V%d", i+1)
		if i == 0 {
			label = "Enter displacement vectors.\n" + label
		}
		if dirs[i], err = AskFloats(p, label, 3, nil); err != nil {
			return nil, errDecorate(err, "askGrid")
		}
	}
	for i := range ranges {
		if i == 0 {
			ranges[i], err = AskRange(p, rangeLabel+"\nV1", nil)
		} else {
			ranges[i], err = AskRange(p, fmt.Sprintf("V%d [previous]", i+1), &ranges[0])
		}
		if err != nil {
			return nil, errDecorate(err, "askGrid")
		}
	}
	ret, err := Grid(dirs, ranges)
	if err != nil {
		return nil, errDecorate(err, "askGrid")
	}
	return ret, nil
}

func askShell(R *Request, p Prompter, cart, octant bool) (*v3.Matrix, error) {
	units := "alat"
	if cart {
		units = "Angstrom"
	}
	radius, err := AskFloat(p, fmt.Sprintf("Shell size in %s:", units))
	if err != nil {
		return nil, errDecorate(err, "askShell")
	}
	n, err := AskCount(p, "Number of points per axis:")
	if err != nil {
		return nil, errDecorate(err, "askShell")
	}
	if cart {
		return ShellCartesian(R.Basis, radius, n, octant)
	}
	return Shell(radius, n, octant)
}
