/*
Copyright (C) 2026  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package console

import (
	"fmt"
	"io"
	"strings"
)

type Declaration struct {
	Name         string
	Desc         string
	MinParameter int
	MaxParameter int // -1: unbounded
	Params       []DeclarationParameter
	Fn           func(c *Console, args []string) error
}

type DeclarationParameter struct {
	Name string
	Type string // site | kind | value | int | file | string
	Desc string
}

var declarationTitles []string
var declarations = make(map[string]*Declaration)

func DeclareTitle(title string) {
	declarationTitles = append(declarationTitles, "#"+title)
}

func Declare(def *Declaration) {
	declarationTitles = append(declarationTitles, def.Name)
	declarations[def.Name] = def
}

func (d *Declaration) checkArity(n int) error {
	if n < d.MinParameter || (d.MaxParameter >= 0 && n > d.MaxParameter) {
		return fmt.Errorf("%s: expected %s parameters, got %d", d.Name, d.arity(), n)
	}
	return nil
}

func (d *Declaration) arity() string {
	switch {
	case d.MaxParameter < 0:
		return fmt.Sprintf("at least %d", d.MinParameter)
	case d.MinParameter == d.MaxParameter:
		return fmt.Sprint(d.MinParameter)
	}
	return fmt.Sprintf("%d-%d", d.MinParameter, d.MaxParameter)
}

// Help lists all commands, or explains one.
func Help(w io.Writer, topic string) error {
	if topic == "" {
		fmt.Fprintln(w, "Available commands:")
		for _, title := range declarationTitles {
			if title[0] == '#' {
				fmt.Fprintln(w, "")
				fmt.Fprintln(w, "-- "+title[1:]+" --")
			} else {
				fmt.Fprintln(w, "  "+title+": "+strings.Split(declarations[title].Desc, "\n")[0])
			}
		}
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "get further information by typing help <command>")
		return nil
	}
	def, ok := declarations[topic]
	if !ok {
		return fmt.Errorf("unknown command: %s", topic)
	}
	fmt.Fprintln(w, "Help for: "+def.Name)
	fmt.Fprintln(w, "===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, def.Desc)
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Allowed no of parameters:", def.arity())
	fmt.Fprintln(w, "")
	for _, p := range def.Params {
		fmt.Fprintln(w, " - "+p.Name+" ("+p.Type+"): "+p.Desc)
	}
	fmt.Fprintln(w, "")
	return nil
}
