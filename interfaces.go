/*
 * interfaces.go, part of alkali.
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

//Prompter collects the parameters of a pattern. Ask shows label to whoever is
//answering and returns the raw answer, without the trailing newline.
//A blank answer is not an error at this level.
type Prompter interface {
	Ask(label string) (string, error)
}

//Writer persists one generated structure. name is the file name suggested by the
//pipeline (see OutputName). The writer may change the extension, and returns the
//path actually written.
type Writer interface {
	WriteStructure(name string, S *Structure) (string, error)
}
