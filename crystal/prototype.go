/*
 * prototype.go, part of alkali.
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

package crystal

//Prototype is a crystal structure type with two atoms in the primitive cell.
type Prototype struct {
	Name             string
	RPrim            [3][3]float64 //primitive vectors, in units of BasicToPrimitive*a0
	Coords           [][3]float64  //lattice coordinates of the alkali and the halide
	BasicToPrimitive float64
	HighSymmetry     map[string][3]float64 //reciprocal lattice coordinates
}

//Prototypes contains the structures of the alkali halides: rock salt (fcc) and
//cesium chloride (bcc, given as its simple cubic primitive cell).
var Prototypes = map[string]*Prototype{
	"fcc": {
		Name:             "fcc",
		RPrim:            [3][3]float64{{0, 1, 1}, {1, 0, 1}, {1, 1, 0}},
		Coords:           [][3]float64{{0, 0, 0}, {0.5, 0.5, 0.5}},
		BasicToPrimitive: 0.5,
		HighSymmetry: map[string][3]float64{
			"G":  {0.000, 0.000, 0.000},
			"K":  {0.375, 0.375, 0.750},
			"L":  {0.500, 0.500, 0.500},
			"U":  {0.625, 0.250, 0.625},
			"W":  {0.500, 0.250, 0.750},
			"W2": {0.750, 0.250, 0.500},
			"X":  {0.500, 0.000, 0.500},
		},
	},
	"bcc": {
		Name:             "bcc",
		RPrim:            [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		Coords:           [][3]float64{{0, 0, 0}, {0.5, 0.5, 0.5}},
		BasicToPrimitive: 1,
		HighSymmetry: map[string][3]float64{
			"G": {0.0, 0.0, 0.0},
			"X": {0.0, 0.5, 0.0},
			"M": {0.5, 0.5, 0.0},
			"R": {0.5, 0.5, 0.5},
		},
	},
}
