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

	"github.com/chzyer/readline"
)

const newprompt = "\033[32m>\033[0m "
const errprompt = "\033[31m!\033[0m "

// Repl reads commands until EOF or ^C on an empty line.
func (c *Console) Repl(historyFile string) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:            newprompt,
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
		AutoComplete:      completer(),
	})
	if err != nil {
		return err
	}
	defer l.Close()
	l.CaptureExitSignal()

	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if err := c.Exec(line); err != nil {
			fmt.Fprintln(c.out, errprompt+err.Error())
		}
	}
}

func completer() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(declarations))
	for _, title := range declarationTitles {
		if title[0] != '#' {
			items = append(items, readline.PcItem(title))
		}
	}
	return readline.NewPrefixCompleter(items...)
}
