/*
 * v3_test.go, part of alkali.
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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewMatrix(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		Te.Fatal(err)
	}
	if A.NVecs() != 2 {
		Te.Errorf("expected 2 vectors, got %d", A.NVecs())
	}
	if _, err := NewMatrix([]float64{1, 2, 3, 4}); err == nil {
		Te.Error("a slice not divisible by 3 should be rejected")
	}
	if _, err := NewMatrix(nil); err == nil {
		Te.Error("an empty slice should be rejected")
	}
	if _, err := FromVecs([][]float64{{1, 2, 3}, {1, 2}}); err == nil {
		Te.Error("a short vector should be rejected")
	}
}

func TestViewAndAdd(Te *testing.T) {
	A, err := FromVecs([][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
	if err != nil {
		Te.Fatal(err)
	}
	View := A.VecView(1)
	View.Set(0, 0, 100)
	if A.At(1, 0) != 100 {
		Te.Errorf("changes in the view should be reflected in the matrix: %v", A)
	}
	row, _ := NewMatrix([]float64{10, 20, 30})
	B := Zeros(3)
	B.AddVec(A, row)
	want := [][]float64{{11, 22, 33}, {110, 25, 36}, {17, 28, 39}}
	if d := cmp.Diff(want, B.Vecs()); d != "" {
		Te.Errorf("AddVec mismatch (-want +got):\n%s", d)
	}
	fmt.Println("AddVec result", B)
}

func TestStack(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 1, 1})
	B, _ := NewMatrix([]float64{2, 2, 2, 3, 3, 3})
	F := Zeros(3)
	F.Stack(A, B)
	want := [][]float64{{1, 1, 1}, {2, 2, 2}, {3, 3, 3}}
	if d := cmp.Diff(want, F.Vecs()); d != "" {
		Te.Errorf("Stack mismatch (-want +got):\n%s", d)
	}
	if d := cmp.Diff([][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, Eye().Vecs()); d != "" {
		Te.Errorf("Eye mismatch (-want +got):\n%s", d)
	}
}

func TestVecsAndString(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	v := A.Vecs()
	v[0][0] = 100
	if A.At(0, 0) != 1 {
		Te.Error("Vecs should return a copy of the vectors")
	}
	s := A.String()
	for _, want := range []string{"1.000000", "6.000000"} {
		if !strings.Contains(s, want) {
			Te.Errorf("%q missing from %q", want, s)
		}
	}
	if strings.Count(s, "\n") != 2 {
		Te.Errorf("expected one line per vector, got %q", s)
	}
}
