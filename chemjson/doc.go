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

//Package chemjson implements serialization and unserialization of
//displaced structures as JSON documents compatible with the Structure
//dictionaries of pymatgen, so the structures can be read by
//programs written in other languages. Errors are themselves
//JSON-serializable.
package chemjson
