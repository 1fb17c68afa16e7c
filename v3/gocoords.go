/*
 * gocoords.go, part of alkali.
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

package v3

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

//Eye returns the 3x3 identity.
func Eye() *Matrix {
	A := Zeros(3)
	for i := 0; i < 3; i++ {
		A.Set(i, i, 1.0)
	}
	return A
}

//FromVecs builds a Matrix from a slice of 3-element vectors. The data is copied.
func FromVecs(vecs [][]float64) (*Matrix, error) {
	data := make([]float64, 0, 3*len(vecs))
	for i, v := range vecs {
		if len(v) != 3 {
			return nil, Error{fmt.Sprintf("vector %d has %d elements, 3 expected", i, len(v)), []string{"FromVecs"}, true}
		}
		data = append(data, v...)
	}
	return NewMatrix(data)
}

//METHODS

//NVecs returns the number of vecs in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//Vecs returns a copy of the vectors in F as a slice of slices.
func (F *Matrix) Vecs() [][]float64 {
	ret := make([][]float64, F.NVecs())
	for i := range ret {
		ret[i] = mat.Row(nil, i, F.Dense)
	}
	return ret
}

//AddVec adds the vector vec to each vector of the matrix A, putting the result on the receiver.
//Panics if matrices are mismatched.
func (F *Matrix) AddVec(A, vec *Matrix) {
	ar, ac := A.Dims()
	rr, rc := vec.Dims()
	fr, fc := F.Dims()
	if ac != rc || rr != 1 || ac != fc || ar != fr {
		panic(ErrShape)
	}
	v := vec.RawRowView(0)
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			F.Set(i, j, A.At(i, j)+v[j])
		}
	}
}

//String returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	r, c := F.Dims()
	v := make([]string, r+2)
	v[0] = "\n["
	v[len(v)-1] = " ]"
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, F.Dense) //now row has a slice with the row i
		if i == 0 {
			v[i+1] = fmt.Sprintf("%11.6f %11.6f %11.6f\n", row[0], row[1], row[2])
			continue
		} else if i == r-1 {
			v[i+1] = fmt.Sprintf(" %11.6f %11.6f %11.6f", row[0], row[1], row[2])
			continue
		} else {
			v[i+1] = fmt.Sprintf(" %11.6f %11.6f %11.6f\n", row[0], row[1], row[2])
		}
	}
	v[len(v)-2] = strings.Replace(v[len(v)-2], "\n", "", 1)
	return strings.Join(v, "")
}
