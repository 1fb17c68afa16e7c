/*
 * cell.go, part of alkali.
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
	"gonum.org/v1/gonum/mat"
)

//singularTol is relative to the Hadamard bound of the basis, i.e. the
//product of the norms of its rows, so it doesn't depend on the units.
const singularTol = 1e-10

//CheckBasis returns an error if basis is not a valid primitive cell, i.e.
//if it is not 3x3 or if it is singular.
func CheckBasis(basis *v3.Matrix) error {
	if basis == nil {
		return NewError(Validation, "", "CheckBasis", "nil cell basis")
	}
	r, c := basis.Dims()
	if r != 3 || c != 3 {
		return NewError(Validation, "", "CheckBasis", "cell basis must be 3x3, got %dx%d", r, c)
	}
	bound := 1.0
	for i := 0; i < 3; i++ {
		if !finite(basis.RawRowView(i)...) {
			return NewError(Validation, "", "CheckBasis", "cell vector %d is not finite: %v", i, basis.RawRowView(i))
		}
		bound *= floats.Norm(basis.RawRowView(i), 2)
	}
	det := mat.Det(basis.Dense)
	if bound == 0 || math.Abs(det) <= singularTol*bound {
		return NewError(Domain, "", "CheckBasis", "singular cell basis (det=%g)", det)
	}
	return nil
}

//InverseBasis returns the inverse of the cell basis. Its rows are the
//lattice coordinates of unit steps along the Cartesian axes.
func InverseBasis(basis *v3.Matrix) (*v3.Matrix, error) {
	if err := CheckBasis(basis); err != nil {
		return nil, errDecorate(err, "InverseBasis")
	}
	inv := v3.Zeros(3)
	if err := inv.Inverse(basis.Dense); err != nil {
		return nil, NewError(Domain, "", "InverseBasis", "can't invert cell basis: %s", err.Error())
	}
	return inv, nil
}

//ToLattice returns the Cartesian vectors cart expressed in lattice (cell) coordinates,
//i.e. cart right-multiplied by the inverse of the basis.
func ToLattice(cart, basis *v3.Matrix) (*v3.Matrix, error) {
	inv, err := InverseBasis(basis)
	if err != nil {
		return nil, errDecorate(err, "ToLattice")
	}
	ret := v3.Zeros(cart.NVecs())
	ret.Mul(cart.Dense, inv.Dense)
	return ret, nil
}

//ToCartesian returns the lattice vectors lat expressed in Cartesian coordinates, i.e.
//lat right-multiplied by the basis. It is the inverse operation of ToLattice.
func ToCartesian(lat, basis *v3.Matrix) (*v3.Matrix, error) {
	if err := CheckBasis(basis); err != nil {
		return nil, errDecorate(err, "ToCartesian")
	}
	ret := v3.Zeros(lat.NVecs())
	ret.Mul(lat.Dense, basis.Dense)
	return ret, nil
}
