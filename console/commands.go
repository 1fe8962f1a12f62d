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
	"sync"

	"github.com/google/uuid"
	"github.com/launix-de/NonLockingReadMap"
	packrat "github.com/launix-de/go-packrat/v2"
	"github.com/launix-de/speculate/profile"
)

// Console drives named profile sites from text commands. Commands may be
// issued from several goroutines; only site creation is serialized.
type Console struct {
	ID       uuid.UUID
	Registry *profile.Registry
	out      io.Writer
	sites    NonLockingReadMap.NonLockingReadMap[site, string]
	mu       sync.Mutex
	hosts    []*host
}

func New(out io.Writer) *Console {
	return &Console{
		ID:       uuid.New(),
		Registry: profile.NewRegistry(),
		out:      out,
		sites:    NonLockingReadMap.New[site, string](),
	}
}

// Exec runs one command line. Panics inside a command are returned as
// errors, so a bad line never takes down the session.
func (c *Console) Exec(line string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' {
		return nil
	}
	args, err := tokenize(line)
	if err != nil {
		return err
	}
	def, ok := declarations[args[0]]
	if !ok {
		return fmt.Errorf("unknown command: %s (try help)", args[0])
	}
	if err := def.checkArity(len(args) - 1); err != nil {
		return err
	}
	return def.Fn(c, args[1:])
}

// commandLine is the grammar of one console line: whitespace separated
// words where quoted literals and [lists] stay in one piece.
var commandLine = packrat.NewAndParser(
	packrat.NewKleeneParser(packrat.NewOrParser(
		packrat.NewRegexParser(`"(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'`, false, true),
		packrat.NewRegexParser(`\[(?:"(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'|[^\]"'])*\]`, false, true),
		packrat.NewRegexParser(`[^\s"'\[\]]+`, false, true),
	), packrat.NewEmptyParser()),
	packrat.NewEndParser(true),
)

func tokenize(line string) ([]string, error) {
	scanner := packrat.NewScanner(line, packrat.SkipWhitespaceAndCommentsRegex)
	node, err := packrat.Parse(commandLine, scanner)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %q: %w", line, err)
	}
	if node == nil || len(node.Children) == 0 {
		return nil, fmt.Errorf("cannot parse %q: unterminated literal or list", line)
	}
	words := node.Children[0]
	result := make([]string, 0, len(words.Children)/2+1)
	// kleene children alternate between item and separator
	for i := 0; i < len(words.Children); i += 2 {
		word := words.Children[i]
		if len(word.Children) > 0 { // the alternative that matched
			word = word.Children[0]
		}
		result = append(result, strings.TrimSpace(word.Matched))
	}
	return result, nil
}

func (c *Console) lookup(name string) (*site, error) {
	s := c.sites.Get(name)
	if s == nil {
		return nil, fmt.Errorf("unknown site: %s (create it with new)", name)
	}
	return s, nil
}

// NewSite creates (or replaces) a named profile site.
func (c *Console) NewSite(name string, kind profile.Kind, inline bool) (profile.Site, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var s *site
	if inline {
		slot, st := c.reserve(kind)
		s = newInlinedSite(name, kind, slot, st)
	} else {
		s = newOwnedSite(name, kind)
	}
	if s == nil {
		return nil, fmt.Errorf("cannot create a %s site", kind)
	}
	c.sites.Set(s)
	if prev := c.Registry.Register(name, s.Site); prev != nil {
		profile.Logger().Info("site %s replaced (%v)", name, prev)
	}
	return s.Site, nil
}

// Observe feeds one literal into a site.
func (c *Console) Observe(name string, literal string) error {
	s, err := c.lookup(name)
	if err != nil {
		return err
	}
	fn, err := s.prepare(literal)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	fn()
	return nil
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func init() {
	DeclareTitle("Profiles")
	Declare(&Declaration{
		"new", "creates a named profile site\nInlined sites share state words with the other inlined sites of the session.",
		2, 3,
		[]DeclarationParameter{
			{"site", "site", "name of the site"},
			{"kind", "kind", "exacttype | bool | byte | short | int | long | float | double"},
			{"storage", "string", "owned (default) or inline"},
		},
		cmdNew,
	})
	Declare(&Declaration{
		"profile", "records observations at a site and prints the resulting state",
		2, -1,
		[]DeclarationParameter{
			{"site", "site", "name of the site"},
			{"value...", "value", "literals of the site's kind"},
		},
		cmdProfile,
	})
	Declare(&Declaration{
		"describe", "prints the state of sites (all sites if none are given)",
		0, -1,
		[]DeclarationParameter{
			{"site...", "site", "names of the sites"},
		},
		cmdDescribe,
	})
	Declare(&Declaration{
		"cached", "prints the value a compiler could speculate on",
		1, 1,
		[]DeclarationParameter{
			{"site", "site", "name of the site"},
		},
		cmdCached,
	})
	Declare(&Declaration{
		"disable", "moves sites to the generic state",
		1, -1,
		[]DeclarationParameter{
			{"site...", "site", "names of the sites"},
		},
		func(c *Console, args []string) error { return c.each(args, profile.Site.Disable) },
	})
	Declare(&Declaration{
		"reset", "moves sites back to the uninitialized state",
		1, -1,
		[]DeclarationParameter{
			{"site...", "site", "names of the sites"},
		},
		func(c *Console, args []string) error { return c.each(args, profile.Site.Reset) },
	})
	Declare(&Declaration{
		"layout", "shows how inlined sites are packed into state words",
		0, 0,
		nil,
		cmdLayout,
	})

	DeclareTitle("Session")
	Declare(&Declaration{
		"stats", "prints transition counters",
		0, 0,
		nil,
		cmdStats,
	})
	Declare(&Declaration{
		"settings", "lists all settings or changes one",
		0, 2,
		[]DeclarationParameter{
			{"name", "string", "setting to change"},
			{"value", "string", "new value"},
		},
		cmdSettings,
	})
	Declare(&Declaration{
		"help", "lists all commands or prints help for one",
		0, 1,
		[]DeclarationParameter{
			{"command", "string", "command to explain"},
		},
		func(c *Console, args []string) error {
			if len(args) == 0 {
				return Help(c.out, "")
			}
			return Help(c.out, args[0])
		},
	})
}

func cmdNew(c *Console, args []string) error {
	kind, err := profile.ParseKind(args[1])
	if err != nil {
		return err
	}
	inline := false
	if len(args) > 2 {
		switch args[2] {
		case "inline", "inlined":
			inline = true
		case "owned":
		default:
			return fmt.Errorf("unknown storage %q (owned or inline)", args[2])
		}
	}
	s, err := c.NewSite(args[0], kind, inline)
	if err != nil {
		return err
	}
	c.printf("%s = %v\n", args[0], s)
	return nil
}

func cmdProfile(c *Console, args []string) error {
	for _, v := range args[1:] {
		if err := c.Observe(args[0], v); err != nil {
			return err
		}
	}
	s, _ := c.lookup(args[0])
	c.printf("%s = %v\n", args[0], s.Site)
	return nil
}

func cmdDescribe(c *Console, args []string) error {
	if len(args) == 0 {
		args = c.Registry.Names()
	}
	for _, name := range args {
		s, err := c.lookup(name)
		if err != nil {
			return err
		}
		storage := "owned"
		if s.inlined {
			storage = "inline"
		}
		c.printf("%s [%s, %s] %v\n", name, s.kind, storage, s.Site)
	}
	return nil
}

func cmdCached(c *Console, args []string) error {
	s, err := c.lookup(args[0])
	if err != nil {
		return err
	}
	v, err := s.cached()
	if err != nil {
		return err
	}
	c.printf("%s\n", v)
	return nil
}

func (c *Console) each(names []string, fn func(profile.Site)) error {
	for _, name := range names {
		s, err := c.lookup(name)
		if err != nil {
			return err
		}
		fn(s.Site)
		c.printf("%s = %v\n", name, s.Site)
	}
	return nil
}

func cmdLayout(c *Console, args []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.hosts) == 0 {
		c.printf("no inlined sites\n")
	}
	for i, h := range c.hosts {
		c.printf("host %d: %v in %v\n", i, h.layout, h.state)
	}
	return nil
}

func cmdStats(c *Console, args []string) error {
	st := profile.ReadStats()
	c.printf("session %s: %d sites, %d known types\n", c.ID, c.Registry.Len(), profile.KnownTypes())
	c.printf("transitions: %d to exact, %d to generic, %d resets\n", st.Exact, st.Generic, st.Resets)
	return nil
}

func cmdSettings(c *Console, args []string) error {
	switch len(args) {
	case 0:
		for _, s := range profile.SettingsList() {
			c.printf("%s\n", s)
		}
		return nil
	case 1:
		return fmt.Errorf("settings: missing value for %s", args[0])
	}
	return profile.ChangeSetting(args[0], args[1])
}
