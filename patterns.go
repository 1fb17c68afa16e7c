/*
 * patterns.go, part of alkali.
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
	"math"

	v3 "github.com/rmera/alkali/v3"
	"gonum.org/v1/gonum/floats"
)

//This file contains the pure grid builders. None of them does any I/O. The
//vectors returned are in whatever coordinates the directions were given, the
//Cartesian patterns in registry.go take care of the conversion.

//Line returns the displacements dir*m for each multiplier m in r.
func Line(dir []float64, r Range) (*v3.Matrix, error) {
	mult, err := r.Values()
	if err != nil {
		return nil, errDecorate(err, "Line")
	}
	ret, err := Axis(dir, mult)
	if err != nil {
		return nil, errDecorate(err, "Line")
	}
	return ret, nil
}

//Magnitude returns the displacements along the unit vector of dir, scaled by mag
//and by each multiplier in r.
func Magnitude(dir []float64, mag float64, r Range) (*v3.Matrix, error) {
	if len(dir) != 3 {
		return nil, NewError(Validation, "", "Magnitude", "a direction needs 3 components, got %d", len(dir))
	}
	if !finite(dir...) || !finite(mag) {
		return nil, NewError(Validation, "", "Magnitude", "non-finite direction %v or magnitude %g", dir, mag)
	}
	norm := floats.Norm(dir, 2)
	if norm == 0 {
		return nil, NewError(Domain, "", "Magnitude", "can't normalize a zero-length direction")
	}
	u := make([]float64, 3)
	floats.ScaleTo(u, mag/norm, dir)
	ret, err := Line(u, r)
	if err != nil {
		return nil, errDecorate(err, "Magnitude")
	}
	return ret, nil
}

//Zero returns a single zero displacement.
func Zero() *v3.Matrix {
	return v3.Zeros(1)
}

//Grid returns the combination of one line per direction, each with its own range.
//Plane and Volume are Grid with 2 and 3 directions.
func Grid(dirs [][]float64, ranges []Range) (*v3.Matrix, error) {
	if len(dirs) == 0 || len(dirs) != len(ranges) {
		return nil, NewError(Validation, "", "Grid", "%d directions but %d ranges", len(dirs), len(ranges))
	}
	axes := make([]*v3.Matrix, len(dirs))
	for i, d := range dirs {
		a, err := Line(d, ranges[i])
		if err != nil {
			return nil, errDecorate(err, "Grid")
		}
		axes[i] = a
	}
	ret, err := CombineAll(axes...)
	if err != nil {
		return nil, errDecorate(err, "Grid")
	}
	return ret, nil
}

//Plane returns the displacements on the plane spanned by 2 directions.
func Plane(dirs [2][]float64, ranges [2]Range) (*v3.Matrix, error) {
	return Grid(dirs[:], ranges[:])
}

//Volume returns the displacements on the volume spanned by 3 directions.
func Volume(dirs [3][]float64, ranges [3]Range) (*v3.Matrix, error) {
	return Grid(dirs[:], ranges[:])
}

//StepCell returns 4 displacements: no displacement, and one step along each
//of the lattice vectors.
func StepCell(step float64) *v3.Matrix {
	steps := v3.Eye()
	steps.Scale(step, steps.Dense)
	return concat(Zero(), steps)
}

//StepCartesian returns 4 displacements, in lattice coordinates: no displacement, and one step
//along each of the Cartesian axes. The steps are the rows of the inverse basis, scaled.
func StepCartesian(basis *v3.Matrix, step float64) (*v3.Matrix, error) {
	steps, err := InverseBasis(basis)
	if err != nil {
		return nil, errDecorate(err, "StepCartesian")
	}
	steps.Scale(step, steps.Dense)
	return concat(Zero(), steps), nil
}

//Shell projects the faces of a cube onto a sphere of the given radius.
//Each face is sampled with an n x n grid from 0 to 1 along both in-plane axes, and
//offset by the unit vector of the third axis. The full shell uses both signs of that
//offset (6 faces, 6n² points), the octant only the positive one (3 faces, 3n² points).
//The points are not evenly distributed on the sphere: they are denser close to the
//cube edges. This is intended.
func Shell(radius float64, n int, octant bool) (*v3.Matrix, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, NewError(Validation, "", "Shell", "the shell radius must be positive and finite, got %g", radius)
	}
	mult, err := Linspace(0, 1, n)
	if err != nil {
		return nil, errDecorate(err, "Shell")
	}
	e := v3.Eye().Vecs()
	axes := make([]*v3.Matrix, 3)
	for i := range axes {
		axes[i], _ = Axis(e[i], mult) //can't fail, e[i] has 3 elements and mult is not empty.
	}
	xy, _ := Combine(axes[0], axes[1])
	xz, _ := Combine(axes[0], axes[2])
	yz, _ := Combine(axes[1], axes[2])
	var faces []*v3.Matrix
	if octant {
		faces = []*v3.Matrix{face(xy, e[2], 1), face(xz, e[1], 1), face(yz, e[0], 1)}
	} else {
		faces = []*v3.Matrix{face(xy, e[2], -1), face(xy, e[2], 1),
			face(xz, e[1], -1), face(xz, e[1], 1),
			face(yz, e[0], -1), face(yz, e[0], 1)}
	}
	ret := concat(faces...)
	for i := 0; i < ret.NVecs(); i++ {
		row := ret.RawRowView(i)
		floats.Scale(radius/floats.Norm(row, 2), row) //norm is at least 1, every point lies on a cube face.
	}
	return ret, nil
}

//face returns the grid displaced by sign*offset.
func face(grid *v3.Matrix, offset []float64, sign float64) *v3.Matrix {
	off := v3.Zeros(1)
	floats.ScaleTo(off.RawRowView(0), sign, offset)
	ret := v3.Zeros(grid.NVecs())
	ret.AddVec(grid, off)
	return ret
}

//ShellCartesian is Shell with the radius in Cartesian units. The points are
//projected onto the sphere in Cartesian space and then converted to lattice
//coordinates.
func ShellCartesian(basis *v3.Matrix, radius float64, n int, octant bool) (*v3.Matrix, error) {
	cart, err := Shell(radius, n, octant)
	if err != nil {
		return nil, errDecorate(err, "ShellCartesian")
	}
	ret, err := ToLattice(cart, basis)
	if err != nil {
		return nil, errDecorate(err, "ShellCartesian")
	}
	return ret, nil
}
