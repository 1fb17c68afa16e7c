/*
 * crystal.go, part of alkali.
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

//Package crystal keeps the parameters of the alkali halides: literature and calculated
//properties, convergence results and the ab-initio settings used for each crystal. They
//are read from semicolon-separated tables, and can be used to build the starting
//structure of a displacement run.
package crystal

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rmera/alkali"
	v3 "github.com/rmera/alkali/v3"
)

//DefaultTables are the tables LoadDir looks for. Rows for the same crystal in
//different tables are merged.
var DefaultTables = []string{"calculated.csv", "settings.csv", "literature.csv"}

//Literature contains the experimental values of a crystal.
type Literature struct {
	Structure string
	A0        float64 //lattice constant of the conventional cell, Å
	Eg        float64 //band gap, eV
	E1s       float64 //first exciton peak, eV
	Eps0      float64
	EpsInf    float64
}

//Calculated contains the values obtained in our own calculations.
type Calculated struct {
	A0     float64
	Eps0   float64
	EpsInf float64
	Eg     float64
	E1s    float64
}

//Convergence contains the thresholds the settings were converged to.
type Convergence struct {
	Pressure    float64
	Eps         float64
	TotalEnergy float64
}

//Settings are the parameters for the ab-initio calculations. The k-point grids and
//the FFT grid are the same along the 3 axes.
type Settings struct {
	Structure      string
	NBnd           int
	EcutWfc        float64
	KPointsSCF     int
	KPointsCo      int
	KPointsFi      int
	FFT            int
	EcutEps        float64
	ScreenedCutoff float64
}

//Crystal is an alkali halide.
type Crystal struct {
	Name                   string
	Alkali                 string
	Halide                 string
	Valence                int
	Lit                    Literature
	Calc                   Calculated
	Conv                   Convergence
	Set                    Settings
	UseLiteratureStructure bool
}

//Species returns the alkali and the halide, in that order.
func (C *Crystal) Species() []string {
	return []string{C.Alkali, C.Halide}
}

//Pseudos returns the pseudopotential files for the crystal.
func (C *Crystal) Pseudos() []string {
	return []string{C.Alkali + ".upf", C.Halide + ".upf"}
}

//Prototype returns the structure prototype of the crystal, taken from the settings
//or, if UseLiteratureStructure is set, from the literature.
func (C *Crystal) Prototype() (*Prototype, error) {
	code := C.Set.Structure
	if C.UseLiteratureStructure {
		code = C.Lit.Structure
	}
	if code == "" {
		return nil, alkali.NewError(alkali.Validation, C.Name, "Crystal.Prototype", "structure of %s is not defined", C.Name)
	}
	p, ok := Prototypes[strings.ToLower(code)]
	if !ok {
		return nil, alkali.NewError(alkali.Validation, C.Name, "Crystal.Prototype", "unknown structure %q for %s", code, C.Name)
	}
	return p, nil
}

//Base returns a request to displace the first atom (the alkali) of the primitive cell of the crystal.
//The lattice constant is the literature one if useLiterature is true, and the calculated one otherwise.
func (C *Crystal) Base(useLiterature bool) (*alkali.Request, error) {
	p, err := C.Prototype()
	if err != nil {
		return nil, err
	}
	a0 := C.Calc.A0
	if useLiterature {
		a0 = C.Lit.A0
	}
	if !(a0 > 0) {
		return nil, alkali.NewError(alkali.Validation, C.Name, "Crystal.Base", "no lattice constant for %s", C.Name)
	}
	basis := v3.Zeros(3)
	for i, v := range p.RPrim {
		for j := range v {
			basis.Set(i, j, a0*p.BasicToPrimitive*v[j])
		}
	}
	coords := v3.Zeros(len(p.Coords))
	for i, v := range p.Coords {
		coords.SetRow(i, v[:])
	}
	return &alkali.Request{Source: C.Name, Index: 0, Basis: basis, Species: C.Species(), Coords: coords}, nil
}

//setters assign a table column to a crystal.
var setters = map[string]func(C *Crystal, v string) error{
	"alkali":                   func(C *Crystal, v string) error { C.Alkali = v; return nil },
	"halide":                   func(C *Crystal, v string) error { C.Halide = v; return nil },
	"valence":                  intField(func(C *Crystal) *int { return &C.Valence }),
	"lit_structure":            func(C *Crystal, v string) error { C.Lit.Structure = v; return nil },
	"lit_a0":                   floatField(func(C *Crystal) *float64 { return &C.Lit.A0 }),
	"lit_eg":                   floatField(func(C *Crystal) *float64 { return &C.Lit.Eg }),
	"lit_e1s":                  floatField(func(C *Crystal) *float64 { return &C.Lit.E1s }),
	"lit_eps0":                 floatField(func(C *Crystal) *float64 { return &C.Lit.Eps0 }),
	"lit_epsinf":               floatField(func(C *Crystal) *float64 { return &C.Lit.EpsInf }),
	"calc_a0":                  floatField(func(C *Crystal) *float64 { return &C.Calc.A0 }),
	"calc_eps0":                floatField(func(C *Crystal) *float64 { return &C.Calc.Eps0 }),
	"calc_epsinf":              floatField(func(C *Crystal) *float64 { return &C.Calc.EpsInf }),
	"calc_eg":                  floatField(func(C *Crystal) *float64 { return &C.Calc.Eg }),
	"calc_e1s":                 floatField(func(C *Crystal) *float64 { return &C.Calc.E1s }),
	"conv_pressure":            floatField(func(C *Crystal) *float64 { return &C.Conv.Pressure }),
	"conv_eps":                 floatField(func(C *Crystal) *float64 { return &C.Conv.Eps }),
	"conv_total_energy":        floatField(func(C *Crystal) *float64 { return &C.Conv.TotalEnergy }),
	"set_structure":            func(C *Crystal, v string) error { C.Set.Structure = v; return nil },
	"set_nbnd":                 intField(func(C *Crystal) *int { return &C.Set.NBnd }),
	"set_ecutwfc":              floatField(func(C *Crystal) *float64 { return &C.Set.EcutWfc }),
	"set_kpoints_scf":          intField(func(C *Crystal) *int { return &C.Set.KPointsSCF }),
	"set_kpoints_co":           intField(func(C *Crystal) *int { return &C.Set.KPointsCo }),
	"set_kpoints_fi":           intField(func(C *Crystal) *int { return &C.Set.KPointsFi }),
	"set_fft":                  intField(func(C *Crystal) *int { return &C.Set.FFT }),
	"set_ecuteps":              floatField(func(C *Crystal) *float64 { return &C.Set.EcutEps }),
	"set_screened_cutoff":      floatField(func(C *Crystal) *float64 { return &C.Set.ScreenedCutoff }),
	"use_literature_structure": boolField(func(C *Crystal) *bool { return &C.UseLiteratureStructure }),
}

//Blank cells leave the field unchanged.

func floatField(f func(*Crystal) *float64) func(*Crystal, string) error {
	return func(C *Crystal, v string) error {
		if v == "" {
			return nil
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		*f(C) = x
		return nil
	}
}

func intField(f func(*Crystal) *int) func(*Crystal, string) error {
	return func(C *Crystal, v string) error {
		if v == "" {
			return nil
		}
		x, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*f(C) = x
		return nil
	}
}

func boolField(f func(*Crystal) *bool) func(*Crystal, string) error {
	return func(C *Crystal, v string) error {
		if v == "" {
			return nil
		}
		x, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*f(C) = x
		return nil
	}
}

//Database is a set of crystals, in the order they were first read.
type Database struct {
	names    []string
	crystals map[string]*Crystal
}

//NewDatabase returns an empty database.
func NewDatabase() *Database {
	return &Database{crystals: make(map[string]*Crystal)}
}

//Names returns the names of the crystals in the database.
func (D *Database) Names() []string {
	return append([]string(nil), D.names...)
}

//Len returns the number of crystals in the database.
func (D *Database) Len() int { return len(D.names) }

//Crystal returns the crystal with the given name, i.e. "LiF".
func (D *Database) Crystal(name string) (*Crystal, error) {
	C, ok := D.crystals[name]
	if !ok {
		return nil, alkali.NewError(alkali.Validation, "", "Database.Crystal", "crystal %q not in database (available: %s)", name, strings.Join(D.names, ", "))
	}
	return C, nil
}

func (D *Database) get(name string) *Crystal {
	C, ok := D.crystals[name]
	if !ok {
		C = &Crystal{Name: name}
		D.crystals[name] = C
		D.names = append(D.names, name)
	}
	return C
}

//Read adds the rows of a table to the database. The first line of the table is the header,
//the second gives the data types (it is not used) and the rest are data rows keyed by
//their first column. Rows with an empty key are ignored.
func (D *Database) Read(r io.Reader, name string) error {
	const funcname = "Database.Read"
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return alkali.NewError(alkali.Validation, name, funcname, "empty table")
		}
		return alkali.NewError(alkali.Validation, name, funcname, "%s", err.Error())
	}
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(h))
		if i == 0 {
			continue
		}
		if _, ok := setters[header[i]]; !ok {
			return alkali.NewError(alkali.Validation, name, funcname, "unknown column %q", h)
		}
	}
	if _, err := cr.Read(); err != nil && !errors.Is(err, io.EOF) {
		return alkali.NewError(alkali.Validation, name, funcname, "%s", err.Error())
	}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return alkali.NewError(alkali.Validation, name, funcname, "%s", err.Error())
		}
		key := strings.TrimSpace(row[0])
		if key == "" {
			continue
		}
		if len(row) > len(header) {
			return alkali.NewError(alkali.Validation, name, funcname, "row %s has %d fields, the header has %d", key, len(row), len(header))
		}
		C := D.get(key)
		for i := 1; i < len(row); i++ {
			if err := setters[header[i]](C, strings.TrimSpace(row[i])); err != nil {
				return alkali.NewError(alkali.Validation, name, funcname, "%s, %s: %s", key, header[i], err.Error())
			}
		}
	}
	return nil
}

//LoadTables reads the given tables into a new database.
func LoadTables(paths ...string) (*Database, error) {
	D := NewDatabase()
	for _, p := range paths {
		fin, err := os.Open(p)
		if err != nil {
			return nil, alkali.WrapIO(err, p, "LoadTables")
		}
		err = D.Read(fin, p)
		fin.Close()
		if err != nil {
			return nil, err
		}
	}
	return D, nil
}

//LoadDir reads the DefaultTables present in dir. At least one of them must be there.
func LoadDir(dir string) (*Database, error) {
	var paths []string
	for _, t := range DefaultTables {
		p := filepath.Join(dir, t)
		if _, err := os.Stat(p); err == nil {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return nil, alkali.NewError(alkali.IO, dir, "LoadDir", "none of %s found", strings.Join(DefaultTables, ", "))
	}
	return LoadTables(paths...)
}
