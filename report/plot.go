/*
 * plot.go, part of alkali.
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

package report

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/rmera/alkali"
	v3 "github.com/rmera/alkali/v3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

//Projections are the Cartesian planes the displacements are plotted on.
var Projections = [3]struct {
	Name string
	X, Y int
}{{"xy", 0, 1}, {"xz", 0, 2}, {"yz", 1, 2}}

var axisNames = [3]string{"x", "y", "z"}

//PlotNames returns the files Plot writes for file.
func PlotNames(file string) []string {
	ext := filepath.Ext(file)
	if ext == "" {
		ext = ".png"
	}
	base := strings.TrimSuffix(file, filepath.Ext(file))
	ret := make([]string, len(Projections))
	for i, p := range Projections {
		ret[i] = fmt.Sprintf("%s_%s%s", base, p.Name, ext)
	}
	return ret
}

//Plot writes scatter plots of the Cartesian displacements dis (given in lattice coordinates
//of basis) projected on the xy, xz and yz planes. The format is given by the extension
//of file (png if none). It returns the names of the files written.
func Plot(file string, dis, basis *v3.Matrix) ([]string, error) {
	const funcname = "report.Plot"
	cart, err := alkali.ToCartesian(dis, basis)
	if err != nil {
		return nil, err
	}
	names := PlotNames(file)
	for i, proj := range Projections {
		p := plot.New()
		p.Title.Text = fmt.Sprintf("Displacements (%s)", proj.Name)
		p.X.Label.Text = axisNames[proj.X] + " (Å)"
		p.Y.Label.Text = axisNames[proj.Y] + " (Å)"
		pts := make(plotter.XYs, cart.NVecs())
		for j := range pts {
			pts[j].X = cart.At(j, proj.X)
			pts[j].Y = cart.At(j, proj.Y)
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return names[:i], alkali.NewError(alkali.Validation, names[i], funcname, "%s", err.Error())
		}
		s.GlyphStyle.Radius = vg.Points(2)
		s.GlyphStyle.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
		origin, err := plotter.NewScatter(plotter.XYs{{X: 0, Y: 0}})
		if err != nil {
			return names[:i], alkali.NewError(alkali.Validation, names[i], funcname, "%s", err.Error())
		}
		origin.GlyphStyle.Shape = draw.CrossGlyph{}
		origin.GlyphStyle.Radius = vg.Points(4)
		origin.GlyphStyle.Color = color.RGBA{R: 214, G: 39, B: 40, A: 255}
		p.Add(plotter.NewGrid(), s, origin)
		p.Legend.Add("displaced", s)
		p.Legend.Add("base", origin)
		if err := p.Save(5*vg.Inch, 5*vg.Inch, names[i]); err != nil {
			return names[:i], alkali.WrapIO(err, names[i], funcname)
		}
	}
	return names, nil
}
