/*
 * ask.go, part of alkali.
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
	"strconv"
	"strings"
)

//AskFloats asks p for exactly n whitespace-separated numbers. If the answer is blank
//and def is not nil, def is returned instead.
func AskFloats(p Prompter, label string, n int, def []float64) ([]float64, error) {
	ans, err := p.Ask(label)
	if err != nil {
		return nil, WrapIO(err, "", "AskFloats")
	}
	fields := strings.Fields(ans)
	if len(fields) == 0 && def != nil {
		return append([]float64(nil), def...), nil
	}
	if len(fields) != n {
		return nil, NewError(Validation, "", "AskFloats", "%q: expected %d numbers, got %d", ans, n, len(fields))
	}
	ret := make([]float64, n)
	for i, f := range fields {
		ret[i], err = strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, NewError(Validation, "", "AskFloats", "%q is not a number", f)
		}
		if !finite(ret[i]) {
			return nil, NewError(Validation, "", "AskFloats", "%q is not a finite number", f)
		}
	}
	return ret, nil
}

//AskInt asks p for a single positive integer.
func AskInt(p Prompter, label string) (int, error) {
	ans, err := p.Ask(label)
	if err != nil {
		return 0, WrapIO(err, "", "AskInt")
	}
	ans = strings.TrimSpace(ans)
	i, err := strconv.Atoi(ans)
	if err != nil {
		return 0, NewError(Validation, "", "AskInt", "%q is not an integer", ans)
	}
	return i, nil
}

//AskCount is like AskInt but requires a positive number.
func AskCount(p Prompter, label string) (int, error) {
	i, err := AskInt(p, label)
	if err != nil {
		return 0, errDecorate(err, "AskCount")
	}
	if i < 1 {
		return 0, NewError(Validation, "", "AskCount", "expected a positive integer, got %d", i)
	}
	return i, nil
}

//AskRange asks p for a "start stop count" range. If prev is not nil, a blank
//answer gives prev.
func AskRange(p Prompter, label string, prev *Range) (Range, error) {
	var def []float64
	if prev != nil {
		def = []float64{prev.Start, prev.Stop, float64(prev.Count)}
	}
	ssn, err := AskFloats(p, label, 3, def)
	if err != nil {
		return Range{}, errDecorate(err, "AskRange")
	}
	r, err := NewRange(ssn)
	if err != nil {
		return Range{}, errDecorate(err, "AskRange")
	}
	return r, nil
}

//AskFloat asks p for one finite number.
func AskFloat(p Prompter, label string) (float64, error) {
	f, err := AskFloats(p, label, 1, nil)
	if err != nil {
		return 0, errDecorate(err, "AskFloat")
	}
	return f[0], nil
}

func finite(f ...float64) bool {
	for _, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
