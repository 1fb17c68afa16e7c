/*
 * doc.go, part of alkali.
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

/*
Package alkali is the main package of the alkali library. It builds families of displaced
structures of a crystal, to be used as inputs for finite-difference derivatives, phonon-like
scans or convergence tests with ab-initio programs.


	**alkali Capabilities**


    Converts sets of vectors between Cartesian and lattice (cell) coordinates.

    Combines displacement axes into grids (row-major over the first axis).

    Generates displacement patterns:
        line, line-cart: a vector scaled by evenly spaced multipliers.
        mag, mag-cart: a unit direction times a magnitude, scaled likewise.
        zero: no displacement at all.
        plane, volume: grids spanned by 2 or 3 vectors.
        step, step-cart: one step along each lattice vector or Cartesian axis.
        shell, shell-cart, shell-oct, shell-cart-oct: the faces of a cube projected
        on a sphere (the whole sphere or its positive octant).

    Displaces one atom of a structure by each vector of a pattern and writes one
    structure file per displacement.

The parameters of each pattern are collected through a Prompter, so the patterns can be
driven by a terminal, a script or a saved state. The subpackages deal with
file formats (qm: Quantum Espresso decks, chemjson: structure files), the saved
state (state), the audit report (report), user input (prompt) and the
alkali-halide parameter tables (crystal).

Displacements are always returned in lattice coordinates.
*/
package alkali
