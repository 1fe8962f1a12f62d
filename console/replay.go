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
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/launix-de/speculate/profile"
	"github.com/ulikunitz/xz"
)

// Replay feeds an observation stream into the console. Each line is
// either a command (new, reset, ...) or an observation "<site> <value>".
// Blank lines and lines starting with # are skipped.
func (c *Console) Replay(name string, r io.Reader) (observations int, err error) {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		args, err := tokenize(line)
		if err != nil {
			return observations, fmt.Errorf("%s:%d: %w", name, lineNo, err)
		}
		if _, isCommand := declarations[args[0]]; isCommand {
			if err := c.Exec(line); err != nil {
				return observations, fmt.Errorf("%s:%d: %w", name, lineNo, err)
			}
			continue
		}
		if len(args) != 2 {
			return observations, fmt.Errorf("%s:%d: expected <site> <value>, got %d fields", name, lineNo, len(args))
		}
		if err := c.Observe(args[0], args[1]); err != nil {
			return observations, fmt.Errorf("%s:%d: %w", name, lineNo, err)
		}
		observations++
	}
	if err := scanner.Err(); err != nil {
		return observations, fmt.Errorf("%s: %w", name, err)
	}
	return observations, nil
}

// ReplayFile replays a stream from disk; files ending in .xz are
// decompressed on the fly.
func (c *Console) ReplayFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		if r, err = xz.NewReader(f); err != nil {
			return 0, fmt.Errorf("%s: %w", path, err)
		}
	}
	n, err := c.Replay(path, r)
	if err == nil {
		profile.Logger().Info("replayed %d observations from %s", n, path)
	}
	return n, err
}

func init() {
	DeclareTitle("Streams")
	Declare(&Declaration{
		"replay", "replays observation streams\nOne observation per line: <site> <value>. Lines may also hold commands like new or reset. Files ending in .xz are decompressed.",
		1, -1,
		[]DeclarationParameter{
			{"file...", "file", "stream files"},
		},
		func(c *Console, args []string) error {
			for _, path := range args {
				n, err := c.ReplayFile(path)
				if err != nil {
					return err
				}
				c.printf("%s: %d observations\n", path, n)
			}
			return nil
		},
	})
}
