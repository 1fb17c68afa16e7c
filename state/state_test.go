/*
 * state_test.go, part of alkali.
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

package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rmera/alkali"
	"github.com/rmera/alkali/prompt"
	v3 "github.com/rmera/alkali/v3"
)

func request() *alkali.Request {
	basis, _ := v3.NewMatrix([]float64{0, 2.82, 2.82, 2.82, 0, 2.82, 2.82, 2.82, 0})
	coords, _ := v3.NewMatrix([]float64{0, 0, 0, 0.5, 0.5, 0.5})
	return &alkali.Request{Source: "NaCl.in", Index: 1, Basis: basis, Species: []string{"Na", "Cl"}, Coords: coords}
}

func generate(Te *testing.T, pattern string, answers ...string) *State {
	R := request()
	rec := prompt.NewRecorder(prompt.NewScript(answers...))
	dis, err := alkali.Generate(pattern, R, rec)
	if err != nil {
		Te.Fatal(err)
	}
	return New(pattern, rec.Answers(), R, dis)
}

func TestSaveLoad(Te *testing.T) {
	dir := Te.TempDir()
	for _, name := range []string{DefaultFile, "state.json"} {
		//1/3 has no exact binary representation
		st := generate(Te, "shell-cart", "0.1", "3")
		name = filepath.Join(dir, name)
		if err := Save(name, st); err != nil {
			Te.Fatal(err)
		}
		st2, err := Load(name)
		if err != nil {
			Te.Fatal(err)
		}
		if d := cmp.Diff(st.Displacements, st2.Displacements); d != "" {
			Te.Errorf("displacements changed after loading %s: %s", name, d)
		}
		if st.ID != st2.ID || !st.Created.Equal(st2.Created) || st2.Pattern != "shell-cart" {
			Te.Errorf("metadata changed: %v %v", st, st2)
		}
		if d := cmp.Diff(st.Request.Coords.Vecs(), st2.Request.Coords.Vecs()); d != "" {
			Te.Error(d)
		}
	}
	raw, _ := os.ReadFile(filepath.Join(dir, DefaultFile))
	if len(raw) > 0 && raw[0] == '{' {
		Te.Error("the default state file should be compressed")
	}
}

func TestReplay(Te *testing.T) {
	for _, c := range []struct {
		pattern string
		answers []string
	}{
		{"line", []string{"1 0 0", "-0.1 0.1 5"}},
		{"mag-cart", []string{"1 1 0 0.05", "-1 1 3"}},
		{"volume", []string{"1 0 0", "0 1 0", "0 0 1", "0 0.1 2", "", ""}},
		{"shell-oct", []string{"0.2", "4"}},
		{"step-cart", []string{"0.01"}},
	} {
		st := generate(Te, c.pattern, c.answers...)
		dis, err := st.Replay()
		if err != nil {
			Te.Fatal(err)
		}
		if d := cmp.Diff(st.Displacements, dis.Vecs()); d != "" {
			Te.Errorf("%s is not deterministic: %s", c.pattern, d)
		}
		if d := cmp.Diff(c.answers, st.Answers); d != "" {
			Te.Errorf("%s: answers not recorded: %s", c.pattern, d)
		}
	}
}

func TestLoadErrors(Te *testing.T) {
	dir := Te.TempDir()
	_, err := Load(filepath.Join(dir, "nothere.bin"))
	if k, ok := alkali.KindOf(err); !ok || k != alkali.IO {
		Te.Errorf("expected an IO error, got %v", err)
	}
	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{\"version\": 1}"), 0644)
	_, err = Load(bad)
	if k, ok := alkali.KindOf(err); !ok || k != alkali.Validation {
		Te.Errorf("expected a validation error, got %v", err)
	}
	garbage := filepath.Join(dir, "garbage.bin")
	os.WriteFile(garbage, []byte("not zstd at all"), 0644)
	if _, err = Load(garbage); err == nil {
		Te.Error("garbage state accepted")
	}
}
