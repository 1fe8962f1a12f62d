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
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dc0d/onexit"
	"gopkg.in/yaml.v3"
)

type SettingsT struct {
	Enabled    bool   `yaml:"enabled"`     // false: Create*/Inline* hand out uncached profiles
	LogLevel   string `yaml:"log_level"`   // DEBUG | INFO | WARNING | ERROR
	Trace      bool   `yaml:"trace"`       // write state transitions to a chrome trace file
	TracePrint bool   `yaml:"trace_print"` // also print transitions to stdout
	TraceDir   string `yaml:"trace_dir"`
}

// settings is swapped as a whole; readers never see a half applied
// change. Writers are serialized by settingsMu.
var settings atomic.Pointer[SettingsT]
var settingsMu sync.Mutex

var profilingEnabled atomic.Bool
var exitHook sync.Once

func init() {
	settings.Store(&SettingsT{true, "INFO", false, false, ""})
	profilingEnabled.Store(true)
}

// CurrentSettings returns a copy of the settings in effect.
func CurrentSettings() SettingsT { return *settings.Load() }

// ProfilingEnabled is read on every Create* call, so it is kept apart
// from the settings struct.
func ProfilingEnabled() bool { return profilingEnabled.Load() }

// InitSettings applies the current settings: logger, profiling switch and
// trace file. Call it once at startup.
func InitSettings() error {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	return apply(CurrentSettings())
}

// ApplySettings replaces all settings at once.
func ApplySettings(next SettingsT) error {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	return apply(next)
}

// apply must be called with settingsMu held.
func apply(next SettingsT) error {
	log, err := newLogger(next.LogLevel)
	if err != nil {
		return err
	}
	settings.Store(&next)
	SetLogger(log)
	profilingEnabled.Store(next.Enabled)
	tracePrint.Store(next.TracePrint)
	if err := SetTrace(next.Trace); err != nil {
		return err
	}
	exitHook.Do(func() {
		onexit.Register(func() { SetTrace(false) }) // close trace file on exit
	})
	return nil
}

// LoadSettings reads a YAML settings file over the current settings and
// applies the result. Keys missing from the file keep their value.
func LoadSettings(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}
	settingsMu.Lock()
	defer settingsMu.Unlock()
	next := CurrentSettings()
	if err := yaml.Unmarshal(data, &next); err != nil {
		return fmt.Errorf("parse settings %s: %w", path, err)
	}
	if _, err := newLogger(next.LogLevel); err != nil {
		return fmt.Errorf("parse settings %s: %w", path, err)
	}
	return apply(next)
}

// ChangeSetting sets one setting by name and applies it.
func ChangeSetting(name string, value string) error {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	next := CurrentSettings()
	parseBool := func() (bool, error) {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("setting %s: %w", name, err)
		}
		return b, nil
	}
	var err error
	switch strings.ToLower(name) {
	case "enabled":
		next.Enabled, err = parseBool()
	case "loglevel", "log_level":
		next.LogLevel = strings.ToUpper(value)
		_, err = newLogger(next.LogLevel)
	case "trace":
		next.Trace, err = parseBool()
	case "traceprint", "trace_print":
		next.TracePrint, err = parseBool()
	case "tracedir", "trace_dir":
		next.TraceDir = value
	default:
		return fmt.Errorf("unknown setting: %s", name)
	}
	if err != nil {
		return err
	}
	return apply(next)
}

// SettingsList renders all settings as name=value pairs.
func SettingsList() []string {
	s := CurrentSettings()
	return []string{
		"Enabled=" + strconv.FormatBool(s.Enabled),
		"LogLevel=" + s.LogLevel,
		"Trace=" + strconv.FormatBool(s.Trace),
		"TracePrint=" + strconv.FormatBool(s.TracePrint),
		"TraceDir=" + s.TraceDir,
	}
}
