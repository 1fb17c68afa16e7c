/*
 * request.go, part of alkali.
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
	"encoding/json"

	v3 "github.com/rmera/alkali/v3"
)

//Request contains everything needed to displace one atom of a structure.
//It should not be modified once built.
type Request struct {
	Source  string     //the file (or database entry) the structure was read from.
	Index   int        //the atom to be displaced.
	Basis   *v3.Matrix //the primitive cell, one lattice vector per row, in Cartesian units.
	Species []string
	Coords  *v3.Matrix //lattice coordinates of all the atoms, aligned with Species.
}

//Check returns an error if the request is not consistent.
func (R *Request) Check() error {
	if err := CheckBasis(R.Basis); err != nil {
		return errDecorate(err, "Request.Check")
	}
	if R.Coords == nil || len(R.Species) == 0 {
		return NewError(Validation, R.Source, "Request.Check", "no atoms in structure")
	}
	if n := R.Coords.NVecs(); n != len(R.Species) {
		return NewError(Validation, R.Source, "Request.Check", "%d species but %d coordinates", len(R.Species), n)
	}
	for i := 0; i < R.Coords.NVecs(); i++ {
		if !finite(R.Coords.RawRowView(i)...) {
			return NewError(Validation, R.Source, "Request.Check", "coordinates of atom %d are not finite", i)
		}
	}
	if R.Index < 0 || R.Index >= len(R.Species) {
		return NewError(Validation, R.Source, "Request.Check", "atom index %d out of range [0, %d)", R.Index, len(R.Species))
	}
	return nil
}

//WithIndex returns a copy of R that displaces atom i. The matrices are shared, as they
//are never modified.
func (R *Request) WithIndex(i int) *Request {
	ret := *R
	ret.Index = i
	return &ret
}

type jsonRequest struct {
	Source  string      `json:"source"`
	Index   int         `json:"index"`
	Basis   [][]float64 `json:"basis"`
	Species []string    `json:"species"`
	Coords  [][]float64 `json:"coords"`
}

func (R *Request) MarshalJSON() ([]byte, error) {
	j := jsonRequest{Source: R.Source, Index: R.Index, Species: R.Species}
	if R.Basis != nil {
		j.Basis = R.Basis.Vecs()
	}
	if R.Coords != nil {
		j.Coords = R.Coords.Vecs()
	}
	return json.Marshal(j)
}

func (R *Request) UnmarshalJSON(b []byte) error {
	var j jsonRequest
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	basis, err := v3.FromVecs(j.Basis)
	if err != nil {
		return NewError(Validation, j.Source, "Request.UnmarshalJSON", "basis: %s", err.Error())
	}
	coords, err := v3.FromVecs(j.Coords)
	if err != nil {
		return NewError(Validation, j.Source, "Request.UnmarshalJSON", "coordinates: %s", err.Error())
	}
	R.Source = j.Source
	R.Index = j.Index
	R.Basis = basis
	R.Species = j.Species
	R.Coords = coords
	return nil
}
