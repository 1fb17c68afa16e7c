/*
 * report.go, part of alkali.
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

//Package report writes the audit trail of a displacement run: a plain-text
//summary of the user input and the results, and plots of the displacements.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rmera/alkali"
	"github.com/rmera/alkali/chemjson"
	"github.com/rmera/alkali/state"
)

//DefaultFile is the default name of the summary file.
const DefaultFile = "displace.out"

//FormatVecs writes a set of vectors, one per line, in brackets.
func FormatVecs(vecs [][]float64) string {
	var b strings.Builder
	b.WriteString("[")
	for i, v := range vecs {
		if i > 0 {
			b.WriteString("\n ")
		}
		b.WriteString("[")
		for j, f := range v {
			if j > 0 {
				b.WriteString(" ")
			}
			fmt.Fprintf(&b, "% .8f", f)
		}
		b.WriteString("]")
	}
	b.WriteString("]")
	return b.String()
}

//Summary writes the summary of the run in st to w. xyz contains the Cartesian
//coordinates of the moved atom in each displaced structure.
func Summary(w io.Writer, st *state.State, xyz [][]float64) error {
	R := st.Request
	if R == nil || R.Index < 0 || R.Index >= len(R.Species) {
		return alkali.NewError(alkali.Validation, "", "report.Summary", "no valid structure in state")
	}
	out := bufio.NewWriter(w)
	fmt.Fprintf(out, "USER INPUT\n")
	fmt.Fprintf(out, "Input file:\n\t%s\n", R.Source)
	fmt.Fprintf(out, "Moved atom:\n\t[%d] %s\n", R.Index, R.Species[R.Index])
	fmt.Fprintf(out, "Atom positions [abc]:\n%s\n", FormatVecs(R.Coords.Vecs()))
	fmt.Fprintf(out, "Steps:\n\t%d\n", len(st.Displacements))
	fmt.Fprintf(out, "Displacement [abc]:\n%s\n", FormatVecs(st.Displacements))
	fmt.Fprintf(out, "Displacement [xyz]:\n%s\n", FormatVecs(xyz))
	if err := out.Flush(); err != nil {
		return alkali.WrapIO(err, "", "report.Summary")
	}
	return nil
}

//WriteSummary writes the summary of a run to the file name. The Cartesian coordinates of
//the moved atom are read back from the structure files written by the run.
func WriteSummary(name string, st *state.State, files []string) error {
	const funcname = "report.WriteSummary"
	if st.Request == nil {
		return alkali.NewError(alkali.Validation, name, funcname, "no structure in state")
	}
	xyz := make([][]float64, len(files))
	for i, f := range files {
		v, err := chemjson.ReadSite(f, st.Request.Index)
		if err != nil {
			return err
		}
		xyz[i] = v
	}
	fout, err := os.Create(name)
	if err != nil {
		return alkali.WrapIO(err, name, funcname)
	}
	defer fout.Close()
	if err := Summary(fout, st, xyz); err != nil {
		return err
	}
	if err := fout.Close(); err != nil {
		return alkali.WrapIO(err, name, funcname)
	}
	return nil
}
