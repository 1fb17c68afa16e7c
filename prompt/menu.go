/*
 * menu.go, part of alkali.
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

package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

//PageSize is the number of items shown per page in the selection menu.
const PageSize = 20

//ErrEmptyList is returned when there is nothing to select from.
var ErrEmptyList = errors.New("prompt: empty list, nothing to select")

//ErrNoSelection is returned when the menu is closed without choosing an item.
var ErrNoSelection = errors.New("prompt: no item selected")

var (
	colorCyan = lipgloss.Color("36")
	colorRed  = lipgloss.Color("167")
	colorDim  = lipgloss.Color("240")

	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleSelected = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleNormal   = lipgloss.NewStyle()
	styleDim      = lipgloss.NewStyle().Foreground(colorDim)
	styleError    = lipgloss.NewStyle().Foreground(colorRed)
)

//SelectModel is the bubbletea model for the paginated selection menu.
//An item is chosen either by moving the cursor and pressing enter, or
//by typing its index and pressing enter.
type SelectModel struct {
	Items    []string
	Cursor   int //absolute index of the highlighted item
	Typed    string
	Selected int //-1 until an item is chosen
	msg      string
}

//NewSelectModel returns a menu for items.
func NewSelectModel(items []string) SelectModel {
	return SelectModel{Items: items, Selected: -1}
}

//Page returns the current page (from 0) and the total number of pages.
func (m SelectModel) Page() (int, int) {
	pages := (len(m.Items) + PageSize - 1) / PageSize
	return m.Cursor / PageSize, pages
}

func (m SelectModel) Init() tea.Cmd {
	return nil
}

func (m SelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.msg = ""
	switch s := key.String(); s {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Items)-1 {
			m.Cursor++
		}
	case "right", "l", "pgdown":
		if m.Cursor+PageSize < len(m.Items) {
			m.Cursor += PageSize
		} else {
			m.Cursor = len(m.Items) - 1
		}
	case "left", "h", "pgup":
		if m.Cursor >= PageSize {
			m.Cursor -= PageSize
		} else {
			m.Cursor = 0
		}
	case "backspace":
		if len(m.Typed) > 0 {
			m.Typed = m.Typed[:len(m.Typed)-1]
		}
	case "enter":
		if m.Typed == "" {
			m.Selected = m.Cursor
			return m, tea.Quit
		}
		i, err := strconv.Atoi(m.Typed)
		if err != nil || i < 0 || i >= len(m.Items) {
			m.msg = fmt.Sprintf("no item with index %s", m.Typed)
			m.Typed = ""
			return m, nil
		}
		m.Typed = ""
		m.Selected = i
		return m, tea.Quit
	default:
		if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
			m.Typed += s
		}
	}
	return m, nil
}

func (m SelectModel) View() string {
	var b strings.Builder
	page, pages := m.Page()
	width := int(math.Log10(float64(max(len(m.Items), 1)))) + 1
	b.WriteString(styleTitle.Render("Please select an item."))
	b.WriteString("\n")
	b.WriteString(styleDim.Render(fmt.Sprintf("PAGE %d/%d", page+1, pages)))
	b.WriteString("\n")
	end := min((page+1)*PageSize, len(m.Items))
	for i := page * PageSize; i < end; i++ {
		line := fmt.Sprintf("[%0*d] \t%s", width, i, m.Items[i])
		if i == m.Cursor {
			b.WriteString(styleSelected.Render("> " + line))
		} else {
			b.WriteString(styleNormal.Render("  " + line))
		}
		b.WriteString("\n")
	}
	if m.msg != "" {
		b.WriteString(styleError.Render(m.msg))
		b.WriteString("\n")
	}
	b.WriteString(styleDim.Render("arrows: navigate  type an index or press enter: select  q: quit"))
	b.WriteString("\n>>> " + m.Typed)
	return b.String()
}

//Select lets the user pick one of items. A single item is returned without asking.
func Select(items []string, in io.Reader, out io.Writer) (string, error) {
	return SelectContext(context.Background(), items, in, out)
}

//SelectContext is Select, but the menu is closed with ctx's error when ctx is done.
func SelectContext(ctx context.Context, items []string, in io.Reader, out io.Writer) (string, error) {
	switch len(items) {
	case 0:
		return "", ErrEmptyList
	case 1:
		return items[0], nil
	}
	p := tea.NewProgram(NewSelectModel(items), tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(SelectModel)
	if !ok || m.Selected < 0 {
		return "", ErrNoSelection
	}
	return m.Items[m.Selected], nil
}
