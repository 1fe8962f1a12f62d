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
	"os"
	"strings"

	"github.com/launix-de/speculate/profile"
	"github.com/pierrec/lz4/v4"
)

// Dump writes a JSON snapshot of all sites. An empty path or "-" writes
// to the console output; paths ending in .lz4 are compressed.
func (c *Console) Dump(path string) error {
	if path == "" || path == "-" {
		return c.Registry.WriteSnapshot(c.out)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	var zw *lz4.Writer
	var w io.Writer = f
	if strings.HasSuffix(path, ".lz4") {
		zw = lz4.NewWriter(f)
		w = zw
	}
	err = c.Registry.WriteSnapshot(w)
	if err == nil && zw != nil {
		err = zw.Close()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("dump %s: %w", path, err)
	}
	profile.Logger().Info("snapshot of %d sites written to %s", c.Registry.Len(), path)
	return nil
}

func init() {
	Declare(&Declaration{
		"dump", "writes a JSON snapshot of all sites (stdout, a file, or file.lz4)",
		0, 1,
		[]DeclarationParameter{
			{"file", "file", "target file, - for stdout"},
		},
		func(c *Console, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return c.Dump(path)
		},
	})
}
