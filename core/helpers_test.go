package core

import (
	"io"
	"testing"

	"github.com/signalsfoundry/station-journal/model"
)

// scriptedRand returns queued values from IntN and never reorders on Shuffle.
type scriptedRand struct {
	ints []int
	next int
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 || r.next >= len(r.ints) {
		return 0
	}
	v := r.ints[r.next]
	r.next++
	return v % n
}

func (r *scriptedRand) Shuffle(int, func(i, j int)) {}

func (r *scriptedRand) queue(vals ...int) {
	r.ints = append(r.ints, vals...)
}

// firstChoice always picks the first option and records every prompt.
type firstChoice struct {
	titles  []string
	options [][]string
}

func (c *firstChoice) Choose(title string, options []string) (int, error) {
	c.titles = append(c.titles, title)
	c.options = append(c.options, options)
	return 0, nil
}

func noneInstalled() map[model.CategoryKind]model.InstallBounds {
	b := make(map[model.CategoryKind]model.InstallBounds)
	for _, k := range model.CategoryKinds {
		b[k] = model.InstallBounds{Min: 0, Max: 0}
	}
	return b
}

// commsOnlyStation installs every comms section and nothing else.
func commsOnlyStation(t *testing.T, r Rand, w io.Writer, opts ...StationOption) *Station {
	t.Helper()
	bounds := noneInstalled()
	bounds[model.CategoryComms] = model.InstallBounds{Min: model.UnlimitedSections, Max: model.UnlimitedSections}
	base := []StationOption{
		WithRand(r),
		WithBounds(bounds),
		WithIdentity("Akira", 7),
		WithTransmitter(w),
	}
	return NewStation(append(base, opts...)...)
}

// assertConsistent checks the cached counters at every level.
func assertConsistent(t *testing.T, s *Station) {
	t.Helper()
	stationActive := 0
	stationTotal := 0
	for _, c := range s.Categories() {
		catActive := 0
		catTotal := 0
		for _, sec := range c.Sections() {
			secActive := 0
			for _, m := range sec.Modules() {
				if m.Active() {
					secActive++
				}
			}
			if sec.ActiveModules() != secActive {
				t.Fatalf("%s ActiveModules = %d, want %d", sec.Name(), sec.ActiveModules(), secActive)
			}
			if secActive < 0 || secActive > sec.TotalModules() {
				t.Fatalf("%s active %d out of range [0,%d]", sec.Name(), secActive, sec.TotalModules())
			}
			if !sec.Installed() && secActive != 0 {
				t.Fatalf("uninstalled %s has %d active modules", sec.Name(), secActive)
			}
			catActive += secActive
			if sec.Installed() {
				catTotal += sec.TotalModules()
			}
		}
		if c.ActiveModules() != catActive {
			t.Fatalf("%s ActiveModules = %d, want %d", c.Name(), c.ActiveModules(), catActive)
		}
		if c.TotalModules() != catTotal {
			t.Fatalf("%s TotalModules = %d, want %d", c.Name(), c.TotalModules(), catTotal)
		}
		stationActive += catActive
		stationTotal += catTotal
	}
	if s.ActiveModules() != stationActive {
		t.Fatalf("station ActiveModules = %d, want %d", s.ActiveModules(), stationActive)
	}
	if s.TotalModules() != stationTotal {
		t.Fatalf("station TotalModules = %d, want %d", s.TotalModules(), stationTotal)
	}
	if s.ActiveModules() == 0 && !s.IsDisabled() {
		t.Fatalf("station has no active modules but is not disabled")
	}
}
