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
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/jtolds/gls"
)

// keepSettings restores the global settings after a test changed them.
func keepSettings(t *testing.T) {
	t.Helper()
	saved := CurrentSettings()
	t.Cleanup(func() {
		if err := ApplySettings(saved); err != nil {
			t.Errorf("restore settings: %v", err)
		}
	})
}

func TestLoadSettings(t *testing.T) {
	keepSettings(t)
	path := filepath.Join(t.TempDir(), "profile.yaml")
	data := "enabled: false\nlog_level: warning\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	if err := LoadSettings(path); err != nil {
		t.Fatalf("load settings: %v", err)
	}
	s := CurrentSettings()
	if s.Enabled || s.LogLevel != "warning" || ProfilingEnabled() {
		t.Errorf("settings not applied: %+v", s)
	}
	if s.Trace {
		t.Errorf("missing key changed its value")
	}
	if p := CreateLongProfile(); !p.Equal(UncachedLong()) {
		t.Errorf("disabled profiling created %v", p)
	}
}

func TestLoadSettingsRejectsBadInput(t *testing.T) {
	keepSettings(t)
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("enabled: [\n"), 0644)
	if err := LoadSettings(bad); err == nil {
		t.Errorf("malformed yaml accepted")
	}
	level := filepath.Join(dir, "level.yaml")
	os.WriteFile(level, []byte("log_level: chatty\n"), 0644)
	if err := LoadSettings(level); err == nil {
		t.Errorf("unknown log level accepted")
	}
	if CurrentSettings().LogLevel == "chatty" {
		t.Errorf("rejected settings were kept")
	}
	if err := LoadSettings(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Errorf("missing file accepted")
	}
}

func TestChangeSetting(t *testing.T) {
	keepSettings(t)
	if err := ChangeSetting("enabled", "false"); err != nil {
		t.Fatal(err)
	}
	if ProfilingEnabled() {
		t.Errorf("profiling still enabled")
	}
	if err := ChangeSetting("LogLevel", "debug"); err != nil || CurrentSettings().LogLevel != "DEBUG" {
		t.Errorf("log level not changed: %v %q", err, CurrentSettings().LogLevel)
	}
	if err := ChangeSetting("enabled", "maybe"); err == nil {
		t.Errorf("invalid bool accepted")
	}
	if err := ChangeSetting("colour", "blue"); err == nil {
		t.Errorf("unknown setting accepted")
	}
	if err := ChangeSetting("enabled", "true"); err != nil || !ProfilingEnabled() {
		t.Errorf("profiling not re-enabled: %v", err)
	}
	found := false
	for _, s := range SettingsList() {
		if s == "LogLevel=DEBUG" {
			found = true
		}
	}
	if !found {
		t.Errorf("settings list does not show the change: %v", SettingsList())
	}
}

func TestTraceSetting(t *testing.T) {
	keepSettings(t)
	dir := t.TempDir()
	if err := ChangeSetting("trace_dir", dir); err != nil {
		t.Fatal(err)
	}
	if err := ChangeSetting("trace", "true"); err != nil {
		t.Fatalf("enable trace: %v", err)
	}
	p := NewByteProfile()
	p.Profile(1)
	p.Profile(2)
	if err := ChangeSetting("trace", "false"); err != nil {
		t.Fatal(err)
	}
	files, _ := filepath.Glob(filepath.Join(dir, "profile_trace_*.json"))
	if len(files) != 1 {
		t.Fatalf("expected one trace file, got %v", files)
	}
	events := readTrace(t, files[0])
	if len(events) < 2 {
		t.Errorf("expected at least two events, got %d", len(events))
	}
}

func TestSettingsConcurrentAccess(t *testing.T) {
	keepSettings(t)
	const writers = 4
	done := make(chan struct{}, writers+1)
	startSignal := make(chan struct{})
	for i := 0; i < writers; i++ {
		gls.Go(func(i int) func() {
			return func() {
				defer func() { done <- struct{}{} }()
				<-startSignal
				for j := 0; j < 50; j++ {
					ChangeSetting("trace_print", strconv.FormatBool((i+j)%2 == 0))
				}
			}
		}(i))
	}
	var torn atomic.Value
	gls.Go(func() {
		defer func() { done <- struct{}{} }()
		<-startSignal
		for j := 0; j < 200; j++ {
			list := SettingsList()
			if len(list) != 5 || list[1] != "LogLevel="+CurrentSettings().LogLevel {
				torn.Store(list)
			}
		}
	})
	close(startSignal)
	for i := 0; i < writers+1; i++ {
		<-done
	}
	if v := torn.Load(); v != nil {
		t.Errorf("inconsistent settings list %v", v)
	}
	// every writer holds the lock across read, modify and store
	if err := ChangeSetting("log_level", "warning"); err != nil {
		t.Fatal(err)
	}
	if err := ChangeSetting("enabled", "false"); err != nil {
		t.Fatal(err)
	}
	if s := CurrentSettings(); s.LogLevel != "WARNING" || s.Enabled {
		t.Errorf("second change lost the first: %+v", s)
	}
}
