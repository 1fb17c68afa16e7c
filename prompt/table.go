/*
 * table.go, part of alkali.
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

package prompt

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	v3 "github.com/rmera/alkali/v3"
)

var styleHeader = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
var styleCell = lipgloss.NewStyle().Padding(0, 1)

//AtomTable renders the atoms of a structure, one per row, with their index,
//label and lattice coordinates, so the user can choose the atom to displace.
func AtomTable(species []string, coords *v3.Matrix) string {
	rows := make([][]string, 0, len(species))
	for i, s := range species {
		row := []string{strconv.Itoa(i), s, "", "", ""}
		if coords != nil && i < coords.NVecs() {
			for j := 0; j < 3; j++ {
				row[2+j] = fmt.Sprintf("%.6f", coords.At(i, j))
			}
		}
		rows = append(rows, row)
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleDim).
		Headers("#", "Atom", "A", "B", "C").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			return styleCell
		})
	return t.Render()
}
