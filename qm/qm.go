/*
 * qm.go, part of alkali.
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

package qm

import (
	"errors"
	"strings"

	"github.com/rmera/alkali"
)

//Handle builds inputs for an ab-initio program from displaced structures.
type Handle interface {

	//Sets the name for the job, used for the input
	//file. The extention will depend on the program.
	SetName(name string)

	//BuildInput writes an input for the displaced structure S, and
	//returns the name of the file written.
	BuildInput(S *alkali.Structure) (string, error)
}

//DeckWriter writes one input deck per displaced structure, using a Handle.
//It implements alkali.Writer.
type DeckWriter struct {
	H Handle
}

func (D *DeckWriter) WriteStructure(name string, S *alkali.Structure) (string, error) {
	D.H.SetName(name)
	return D.H.BuildInput(S)
}

//CardNames contains the namelists and cards of a pw.x input.
var CardNames = []string{"&CONTROL", "&SYSTEM", "&ELECTRONS", "&IONS", "&CELL", "&FCP", "&RISM",
	"ATOMIC_SPECIES", "ATOMIC_POSITIONS", "K_POINTS", "ADDITIONAL_K_POINTS", "CELL_PARAMETERS",
	"CONSTRAINTS", "OCCUPATIONS", "ATOMIC_VELOCITIES", "ATOMIC_FORCES", "SOLVENTS", "HUBBARD"}

//startsCard returns true if line begins a namelist or a card.
func startsCard(line string) bool {
	line = strings.ToUpper(strings.TrimSpace(line))
	for _, c := range CardNames {
		if strings.HasPrefix(line, c) {
			return true
		}
	}
	return false
}

//isComment returns true for pw.x comment lines.
func isComment(line string) bool {
	line = strings.TrimSpace(line)
	return strings.HasPrefix(line, "!") || strings.HasPrefix(line, "#")
}

//cardHeader returns the index of the first line containing the card name, or -1.
func cardHeader(lines []string, name string) int {
	name = strings.ToUpper(name)
	for i, l := range lines {
		if isComment(l) {
			continue
		}
		if strings.Contains(strings.ToUpper(l), name) {
			return i
		}
	}
	return -1
}

//cardEnd returns the index of the line after the last one of the card
//with its header at h.
func cardEnd(lines []string, h int) int {
	i := h + 1
	for ; i < len(lines); i++ {
		l := strings.TrimSpace(lines[i])
		if l == "" || startsCard(l) {
			break
		}
	}
	return i
}

//Card returns the trimmed lines of a card: those after the first line containing
//name, up to a blank line or a line that begins another card. Comment lines are skipped.
//It returns nil if there is no such card.
func Card(lines []string, name string) []string {
	h := cardHeader(lines, name)
	if h < 0 {
		return nil
	}
	var ret []string
	for _, l := range lines[h+1 : cardEnd(lines, h)] {
		if isComment(l) {
			continue
		}
		ret = append(ret, strings.TrimSpace(l))
	}
	return ret
}

//CardOption returns the option of a card, in lower case, as given in its header
//(i.e. "angstrom" for "CELL_PARAMETERS {angstrom}"). It returns an empty string
//if the card has no option or is not present.
func CardOption(lines []string, name string) string {
	h := cardHeader(lines, name)
	if h < 0 {
		return ""
	}
	f := strings.Fields(lines[h])
	if len(f) < 2 {
		return ""
	}
	return strings.ToLower(strings.Trim(f[1], "{}()"))
}

//errDecorate decorates err with the caller's name, if err implements alkali.Decorated,
//and returns it.
func errDecorate(err error, caller string) error {
	var d alkali.Decorated
	if errors.As(err, &d) {
		d.Decorate(caller)
	}
	return err
}
