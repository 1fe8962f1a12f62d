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
package profile

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/launix-de/go-mysqlstack/xlog"
)

var logger atomic.Pointer[xlog.Log]

func init() {
	logger.Store(xlog.NewStdLog(xlog.Level(xlog.INFO)))
}

func newLogger(level string) (*xlog.Log, error) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return xlog.NewStdLog(xlog.Level(xlog.DEBUG)), nil
	case "", "INFO":
		return xlog.NewStdLog(xlog.Level(xlog.INFO)), nil
	case "WARNING", "WARN":
		return xlog.NewStdLog(xlog.Level(xlog.WARNING)), nil
	case "ERROR":
		return xlog.NewStdLog(xlog.Level(xlog.ERROR)), nil
	}
	return nil, fmt.Errorf("unknown log level %q", level)
}

// Logger is the logger of the profile engine and its tools.
func Logger() *xlog.Log { return logger.Load() }

func SetLogger(l *xlog.Log) { logger.Store(l) }

var tracePrint atomic.Bool

// noteTransition runs whenever a call changed the tag of a profile.
// Transitions are rare (at most two per profile between resets), so this
// is allowed to format and to take the trace lock.
func noteTransition(kind Kind, p fmt.Stringer, from, to Tag) {
	countTransition(to)
	Logger().Debug("profile %v: %s -> %s", p, from, to)
	if tracePrint.Load() {
		fmt.Println("profile", p.String(), from.String(), "->", to.String())
	}
	if t := currentTrace(); t != nil {
		t.Transition(p.String(), kind, from, to)
	}
}
