/*
 * errors.go, part of alkali.
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
	"errors"
	"fmt"
	"strings"
)

//Kind classifies the errors returned by this library.
type Kind int

const (
	Validation Kind = iota //bad user input: unknown pattern, malformed numbers, index out of range.
	Domain                 //geometrically undefined operation: singular basis, zero-length direction.
	IO                     //missing input file or unwritable output.
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Domain:
		return "domain"
	case IO:
		return "io"
	}
	return "unknown"
}

//Error is the error type returned by the alkali packages. It fullfills the Decorated interface.
//None of the errors is recoverable inside the pipeline, so they are all critical, but the method is
//kept for consistency with the rest of the error types.
type Error struct {
	message  string
	kind     Kind
	filename string //the file that has problems, or empty string if none.
	deco     []string
	critical bool
	err      error //the underlying error, if any
}

//NewError returns a critical error of the given kind. filename can be empty.
func NewError(kind Kind, filename, caller string, format string, args ...any) *Error {
	return &Error{message: fmt.Sprintf(format, args...), kind: kind, filename: filename, deco: []string{caller}, critical: true}
}

//WrapIO returns an IO error wrapping err. filename can be empty.
func WrapIO(err error, filename, caller string) *Error {
	return &Error{message: err.Error(), kind: IO, filename: filename, deco: []string{caller}, critical: true, err: err}
}

func (err *Error) Error() string {
	if err.filename != "" {
		return fmt.Sprintf("%s error (%s): %s", err.kind, err.filename, err.message)
	}
	return fmt.Sprintf("%s error: %s", err.kind, err.message)
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//InFile sets the file associated to the error, unless it already has one, and returns the error.
func (err *Error) InFile(filename string) *Error {
	if err.filename == "" {
		err.filename = filename
	}
	return err
}

//Kind returns the class of the error
func (err *Error) Kind() Kind { return err.kind }

//FileName returns the file associated to the error, if any.
func (err *Error) FileName() string { return err.filename }

//Critical returns true if the error is critical, false otherwise
func (err *Error) Critical() bool { return err.critical }

//Unwrap returns the underlying error, if any.
func (err *Error) Unwrap() error { return err.err }

//Trace returns the decoration slice, joined, with the innermost caller first.
func (err *Error) Trace() string { return strings.Join(err.deco, " <- ") }

//KindOf returns the kind of err, and false if err is not (and doesn't wrap) an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.kind, true
	}
	return 0, false
}

//Decorated is the interface for errors that allow to add information about the
//calling stack as they are passed up.
type Decorated interface {
	error
	Decorate(string) []string
}

//errDecorate decorates err with the caller's name, if err implements Decorated,
//and returns it.
func errDecorate(err error, caller string) error {
	var d Decorated
	if errors.As(err, &d) {
		d.Decorate(caller)
	}
	return err
}
