/*
 * grid.go, part of alkali.
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

//Range is a set of Count evenly spaced multipliers from Start to Stop, both included.
type Range struct {
	Start float64
	Stop  float64
	Count int
}

//NewRange builds a Range from the 3 numbers "start stop count", as they are
//typed by the user. The count must be a positive integer, although it can
//be given as a float with no fractional part.
func NewRange(ssn []float64) (Range, error) {
	if len(ssn) != 3 {
		return Range{}, NewError(Validation, "", "NewRange", "a range needs 3 numbers (start stop count), got %d", len(ssn))
	}
	if !finite(ssn[0], ssn[1]) {
		return Range{}, NewError(Validation, "", "NewRange", "the range limits must be finite, got %g %g", ssn[0], ssn[1])
	}
	n := ssn[2]
	if n < 1 || n != math.Trunc(n) || math.IsInf(n, 0) {
		return Range{}, NewError(Validation, "", "NewRange", "the number of points must be a positive integer, got %g", n)
	}
	return Range{Start: ssn[0], Stop: ssn[1], Count: int(n)}, nil
}

//Values returns the multipliers of the range.
func (R Range) Values() ([]float64, error) {
	return Linspace(R.Start, R.Stop, R.Count)
}

//Linspace returns n evenly spaced numbers over [start, stop], both included.
//n=1 returns just start.
func Linspace(start, stop float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, NewError(Validation, "", "Linspace", "the number of points must be positive, got %d", n)
	}
	ret := make([]float64, n)
	if n == 1 {
		ret[0] = start
		return ret, nil
	}
	return floats.Span(ret, start, stop), nil
}

//Axis returns the vectors dir*m for each m in mult, one per row.
//dir is used as given, it is not normalized.
func Axis(dir []float64, mult []float64) (*v3.Matrix, error) {
	if len(dir) != 3 {
		return nil, NewError(Validation, "", "Axis", "a direction needs 3 components, got %d", len(dir))
	}
	if len(mult) == 0 {
		return nil, NewError(Validation, "", "Axis", "no multipliers given")
	}
	if !finite(dir...) || !finite(mult...) {
		return nil, NewError(Validation, "", "Axis", "non-finite direction %v or multipliers", dir)
	}
	ret := v3.Zeros(len(mult))
	for i, m := range mult {
		floats.ScaleTo(ret.RawRowView(i), m, dir)
	}
	return ret, nil
}

//Combine returns all the pairwise sums of the vectors of A and B. The order is
//row-major over A: the vector i*K+j of the result is A[i]+B[j], where K is
//the number of vectors in B. File names depend on this order, don't change it.
func Combine(A, B *v3.Matrix) (*v3.Matrix, error) {
	if A == nil || B == nil {
		return nil, NewError(Validation, "", "Combine", "can't combine empty displacement sets")
	}
	M, K := A.NVecs(), B.NVecs()
	ret := v3.Zeros(M * K)
	for i := 0; i < M; i++ {
		a := A.RawRowView(i)
		for j := 0; j < K; j++ {
			floats.AddTo(ret.RawRowView(i*K+j), a, B.RawRowView(j))
		}
	}
	return ret, nil
}

//CombineAll folds Combine from the left over the given sets. The result is
//always a new matrix, even for a single set.
func CombineAll(sets ...*v3.Matrix) (*v3.Matrix, error) {
	if len(sets) == 0 || sets[0] == nil {
		return nil, NewError(Validation, "", "CombineAll", "no displacement sets given")
	}
	ret := v3.Zeros(sets[0].NVecs())
	ret.Copy(sets[0].Dense)
	var err error
	for _, s := range sets[1:] {
		ret, err = Combine(ret, s)
		if err != nil {
			return nil, errDecorate(err, "CombineAll")
		}
	}
	return ret, nil
}

//concat stacks all the given sets, in order.
func concat(sets ...*v3.Matrix) *v3.Matrix {
	ret := sets[0]
	for _, s := range sets[1:] {
		st := v3.Zeros(ret.NVecs() + s.NVecs())
		st.Stack(ret, s)
		ret = st
	}
	return ret
}
