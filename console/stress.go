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
	"runtime/debug"
	"strconv"
	"time"

	"github.com/jtolds/gls"
	"github.com/launix-de/speculate/profile"
)

type StressResult struct {
	Workers      int
	Observations int
	Duration     time.Duration
	Final        string
}

func (r StressResult) String() string {
	perSec := float64(r.Observations) / r.Duration.Seconds()
	return fmt.Sprintf("%d observations on %d workers in %v (%.0f/s): %s", r.Observations, r.Workers, r.Duration, perSec, r.Final)
}

// Stress lets workers race on one site. Worker i observes
// values[(i+n) % len(values)] in its n-th iteration, so a single value
// must keep the site exact and several values must end generic.
func (c *Console) Stress(name string, workers, iterations int, values []string) (StressResult, error) {
	s, err := c.lookup(name)
	if err != nil {
		return StressResult{}, err
	}
	if workers < 1 || iterations < 1 || len(values) == 0 {
		return StressResult{}, fmt.Errorf("stress: need at least one worker, iteration and value")
	}
	observations := make([]func(), len(values))
	for i, v := range values {
		if observations[i], err = s.prepare(v); err != nil {
			return StressResult{}, fmt.Errorf("%s: %w", name, err)
		}
	}

	start := time.Now()
	done := make(chan error, workers)
	for w := 0; w < workers; w++ {
		gls.Go(func(w int) func() {
			return func() {
				defer func() {
					if r := recover(); r != nil {
						profile.Logger().Debug("stress worker %d: %v\n%s", w, r, debug.Stack())
						done <- fmt.Errorf("stress worker %d: %v", w, r)
					}
				}()
				for n := 0; n < iterations; n++ {
					observations[(w+n)%len(observations)]()
				}
				done <- nil
			}
		}(w))
	}
	for w := 0; w < workers; w++ {
		if e := <-done; e != nil && err == nil {
			err = e
		}
	}
	if err != nil {
		return StressResult{}, err
	}
	return StressResult{
		Workers:      workers,
		Observations: workers * iterations,
		Duration:     time.Since(start),
		Final:        s.Site.String(),
	}, nil
}

func init() {
	Declare(&Declaration{
		"stress", "lets concurrent workers observe values at one site",
		4, -1,
		[]DeclarationParameter{
			{"site", "site", "name of the site"},
			{"workers", "int", "number of goroutines"},
			{"iterations", "int", "observations per worker"},
			{"value...", "value", "values the workers cycle through"},
		},
		func(c *Console, args []string) error {
			workers, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("stress: bad worker count %q", args[1])
			}
			iterations, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("stress: bad iteration count %q", args[2])
			}
			result, err := c.Stress(args[0], workers, iterations, args[3:])
			if err != nil {
				return err
			}
			c.printf("%v\n", result)
			return nil
		},
	})
}
