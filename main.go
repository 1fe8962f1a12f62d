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
/*
	speculate: lock-free speculation profiles for adaptive compilers

	profiles record what a program point has seen (one exact value or
	type, or "anything"), so a compiler can emit guarded fast paths
*/
package main

import "os"
import "fmt"
import "flag"
import "time"
import "syscall"
import "os/signal"
import "crypto/rand"
import "runtime/pprof"
import "github.com/google/uuid"
import "github.com/fsnotify/fsnotify"
import "github.com/launix-de/speculate/console"
import "github.com/launix-de/speculate/profile"

type arrayFlags []string

func (i *arrayFlags) String() string {
	return "dummy"
}

func (i *arrayFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}

// watchSettings re-applies the settings file whenever it changes on disk.
// A broken file is logged and the previous settings stay in effect.
func watchSettings(filename string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	go func() {
		for {
			select {
			case _, ok := <-watcher.Events:
				if !ok {
					return
				}
				for {
					time.Sleep(10 * time.Millisecond) // delay a bit, so we don't read empty files
					select {
					case <-watcher.Events:
					default:
						goto reread
					}
				}
			reread:
				if err := profile.LoadSettings(filename); err != nil {
					profile.Logger().Warning("settings reload failed, keeping previous settings: %v", err)
				} else {
					profile.Logger().Info("settings reloaded from %s", filename)
				}
				watcher.Add(filename) // text editors rename, so we have to rewatch
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				profile.Logger().Warning("settings watch: %v", err)
			}
		}
	}()
	return watcher.Add(filename)
}

func main() {
	fmt.Print(`speculate Copyright (C) 2026   Carl-Philip Hänsch
    This program comes with ABSOLUTELY NO WARRANTY;
    This is free software, and you are welcome to redistribute it
    under certain conditions;

`)

	// init random generator for UUIDs
	uuid.SetRand(rand.Reader)

	// parse command line options
	var commands arrayFlags
	flag.Var(&commands, "c", "Execute console command (repeatable)")

	settingsFile := ""
	flag.StringVar(&settingsFile, "settings", "", "YAML settings file, reloaded on change")

	dump := ""
	flag.StringVar(&dump, "dump", "", "Write a snapshot of all sites after replay (- for stdout, .lz4 to compress)")

	history := ".speculate-history.tmp"
	flag.StringVar(&history, "history", history, "REPL history file")

	batch := false
	flag.BoolVar(&batch, "batch", false, "Exit after replay and commands instead of starting the REPL")

	cpuprofile := ""
	flag.StringVar(&cpuprofile, "cpuprofile", "", "Write a CPU profile of the session to this file")

	flag.Parse()
	replays := flag.Args()

	if settingsFile != "" {
		if err := profile.LoadSettings(settingsFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		if err := watchSettings(settingsFile); err != nil {
			profile.Logger().Warning("cannot watch %s: %v", settingsFile, err)
		}
	} else if err := profile.InitSettings(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if cpuprofile != "" {
		f, err := os.Create(cpuprofile)
		if err != nil {
			panic(err)
		}
		defer f.Close()
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	c := console.New(os.Stdout)
	failed := false
	for _, path := range replays {
		fmt.Println("Replaying " + path + " ...")
		n, err := c.ReplayFile(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			failed = true
			break
		}
		fmt.Println(n, "observations")
	}
	for _, command := range commands {
		if failed {
			break
		}
		fmt.Println("Executing " + command + " ...")
		if err := c.Exec(command); err != nil {
			fmt.Fprintln(os.Stderr, err)
			failed = true
		}
	}
	if dump != "" {
		if err := c.Dump(dump); err != nil {
			fmt.Fprintln(os.Stderr, err)
			failed = true
		}
	}

	if batch {
		exitroutine()
		if failed {
			os.Exit(1)
		}
		return
	}

	// install exit handler
	cancelChan := make(chan os.Signal, 1)
	signal.Notify(cancelChan, syscall.SIGTERM)
	go (func() {
		<-cancelChan
		exitroutine()
		os.Exit(1)
	})()

	fmt.Print(`
    Type help to show help

`)
	if err := c.Repl(history); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	// normal shutdown
	exitroutine()
}

func exitroutine() {
	pprof.StopCPUProfile()
	if err := profile.SetTrace(false); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
