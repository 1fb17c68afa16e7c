/*
 * prompt.go, part of alkali.
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

//Package prompt collects user input for the displacement patterns: from a terminal,
//from a script of answers, or through a selection menu.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

//Asker is satisfied by alkali.Prompter.
type Asker interface {
	Ask(label string) (string, error)
}

//ErrNoMoreAnswers is returned by a Script that ran out of answers.
var ErrNoMoreAnswers = errors.New("prompt: no more answers in script")

//Terminal asks questions on an io.Writer and reads the answers, one per line, from an io.Reader.
type Terminal struct {
	in    *bufio.Reader
	out   io.Writer
	ctx   context.Context
	lines chan readResult
	err   error //sticky read error
}

type readResult struct {
	s   string
	err error
}

//NewTerminal returns a Terminal reading from in and writing the labels to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

//NewTerminalContext is like NewTerminal, but Ask returns ctx's error as soon
//as ctx is done, even while waiting for an answer.
func NewTerminalContext(ctx context.Context, in io.Reader, out io.Writer) *Terminal {
	T := NewTerminal(in, out)
	T.ctx = ctx
	return T
}

//readLines sends the lines of the input, one at a time, until a read fails.
func (T *Terminal) readLines() {
	for {
		s, err := T.in.ReadString('\n')
		T.lines <- readResult{s, err}
		if err != nil {
			close(T.lines)
			return
		}
	}
}

func (T *Terminal) readLine() (string, error) {
	if T.ctx == nil {
		return T.in.ReadString('\n')
	}
	if T.err != nil {
		return "", T.err
	}
	if T.lines == nil {
		T.lines = make(chan readResult)
		go T.readLines()
	}
	select {
	case <-T.ctx.Done():
		return "", T.ctx.Err()
	case l := <-T.lines:
		T.err = l.err
		return l.s, l.err
	}
}

//Ask prints the label followed by the ">>> " prompt and reads one line.
//The last line of the input doesn't need to end in a newline.
func (T *Terminal) Ask(label string) (string, error) {
	if T.ctx != nil && T.ctx.Err() != nil {
		return "", T.ctx.Err()
	}
	if _, err := fmt.Fprintf(T.out, "%s\n>>> ", label); err != nil {
		return "", err
	}
	line, err := T.readLine()
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

//Script gives a fixed list of answers, in order, whatever the question.
type Script struct {
	answers []string
	next    int
}

//NewScript returns a Script with the given answers.
func NewScript(answers ...string) *Script {
	return &Script{answers: answers}
}

func (S *Script) Ask(label string) (string, error) {
	if S.next >= len(S.answers) {
		return "", fmt.Errorf("%w (question: %q)", ErrNoMoreAnswers, label)
	}
	S.next++
	return S.answers[S.next-1], nil
}

//Remaining returns the number of answers not yet given.
func (S *Script) Remaining() int {
	return len(S.answers) - S.next
}

//Recorder passes the questions to another Asker and keeps the answers, so
//they can be saved and replayed with a Script.
type Recorder struct {
	A       Asker
	answers []string
}

//NewRecorder returns a Recorder around a.
func NewRecorder(a Asker) *Recorder {
	return &Recorder{A: a}
}

func (R *Recorder) Ask(label string) (string, error) {
	ans, err := R.A.Ask(label)
	if err != nil {
		return ans, err
	}
	R.answers = append(R.answers, ans)
	return ans, nil
}

//Answers returns a copy of the answers recorded so far.
func (R *Recorder) Answers() []string {
	return append([]string(nil), R.answers...)
}
