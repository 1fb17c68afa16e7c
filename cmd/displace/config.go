/*
 * config.go, part of alkali.
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

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rmera/alkali"
	"github.com/rmera/alkali/report"
	"github.com/rmera/alkali/state"
)

//DefaultConfigFile is read, if present, when no configuration file is given.
const DefaultConfigFile = "displace.toml"

//Config contains the settings of a run. The command line flags override them.
type Config struct {
	SaveFile string `toml:"savefile"`
	Method   string `toml:"method"`
	NoDir    bool   `toml:"nodir"`
	FindGlob string `toml:"find_glob"`
	Out      string `toml:"out"`
	QEDecks  bool   `toml:"qe_decks"`
	Plot     string `toml:"plot"`
	Summary  string `toml:"summary"`
	DataDir  string `toml:"data_dir"`
}

//DefaultConfig returns the settings used when nothing else is given.
func DefaultConfig() *Config {
	return &Config{
		SaveFile: state.DefaultFile,
		Method:   alkali.PatternNames()[0],
		FindGlob: "*.in",
		Summary:  report.DefaultFile,
		DataDir:  "data",
	}
}

//LoadConfig reads the TOML file name over the defaults. If required is false,
//a missing file just gives the defaults. Unknown keys are an error.
func LoadConfig(name string, required bool) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(name, cfg)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return nil, alkali.WrapIO(err, name, "LoadConfig")
		}
		return nil, alkali.NewError(alkali.Validation, name, "LoadConfig", "%s", err.Error())
	}
	if und := md.Undecoded(); len(und) > 0 {
		keys := make([]string, len(und))
		for i, k := range und {
			keys[i] = k.String()
		}
		return nil, alkali.NewError(alkali.Validation, name, "LoadConfig", "unknown keys: %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}

//Check returns an error if any setting is not valid.
func (c *Config) Check() error {
	if _, err := alkali.LookupPattern(c.Method); err != nil {
		return err
	}
	if c.SaveFile == "" {
		return alkali.NewError(alkali.Validation, "", "Config.Check", "savefile can't be empty")
	}
	if c.Summary == "" {
		return alkali.NewError(alkali.Validation, "", "Config.Check", "summary can't be empty")
	}
	if _, err := filepath.Match(c.FindGlob, ""); err != nil {
		return alkali.NewError(alkali.Validation, "", "Config.Check", "find_glob %q: %s", c.FindGlob, err.Error())
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf("method=%s savefile=%s nodir=%t out=%q qe_decks=%t plot=%q summary=%s", c.Method, c.SaveFile, c.NoDir, c.Out, c.QEDecks, c.Plot, c.Summary)
}
