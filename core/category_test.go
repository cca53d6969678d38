package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/signalsfoundry/station-journal/model"
)

func TestNewCategoryInstallation(t *testing.T) {
	tests := []struct {
		name          string
		kind          model.CategoryKind
		bounds        model.InstallBounds
		wantInstalled int
		wantModules   int
	}{
		{"comms all installed", model.CategoryComms, model.InstallBounds{Min: 3, Max: 3}, 3, 3},
		{"comms none installed", model.CategoryComms, model.InstallBounds{Min: 0, Max: 0}, 0, 0},
		{"power all installed", model.CategoryPower, model.InstallBounds{Min: 100, Max: 100}, 5, 11},
		{"crew forced", model.CategoryCrew, model.InstallBounds{Min: 1, Max: 100}, 1, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCategory(model.Catalog(tt.kind), tt.bounds, NewRand(11))
			if c.InstalledSections() != tt.wantInstalled {
				t.Fatalf("InstalledSections = %d, want %d", c.InstalledSections(), tt.wantInstalled)
			}
			if c.TotalModules() != tt.wantModules {
				t.Fatalf("TotalModules = %d, want %d", c.TotalModules(), tt.wantModules)
			}
			if c.ActiveModules() != tt.wantModules {
				t.Fatalf("ActiveModules = %d, want %d", c.ActiveModules(), tt.wantModules)
			}
			if c.TotalSections() != len(model.Catalog(tt.kind).Sections) {
				t.Fatalf("TotalSections = %d", c.TotalSections())
			}
		})
	}
}

func TestCategoryRandomInstallationWithinBounds(t *testing.T) {
	r := NewRand(5)
	for range 100 {
		c := NewCategory(model.Catalog(model.CategoryPower), model.InstallBounds{Min: 2, Max: 3}, r)
		if n := c.InstalledSections(); n < 2 || n > 3 {
			t.Fatalf("InstalledSections = %d, want 2..3", n)
		}
	}
}

func TestCategoryBreakPropagatesNotInstalled(t *testing.T) {
	c := NewCategory(model.Catalog(model.CategoryComms), model.InstallBounds{}, NewRand(1))
	if _, err := c.BreakSomething(NewRand(2)); !errors.Is(err, ErrNotInstalled) {
		t.Fatalf("BreakSomething error = %v, want ErrNotInstalled", err)
	}
	if c.Repairable() {
		t.Fatalf("uninstalled category should not be repairable")
	}
	if _, err := c.Repair(&firstChoice{}); !errors.Is(err, ErrNoRepairableCandidates) {
		t.Fatalf("Repair error = %v, want ErrNoRepairableCandidates", err)
	}
}

func TestCategoryBreakAndRepair(t *testing.T) {
	r := &scriptedRand{}
	c := NewCategory(model.Catalog(model.CategoryPower), model.InstallBounds{Min: 5, Max: 5}, r)

	// Nuclear Power Section, Nuclear Reactor.
	r.queue(2, 1)
	name, err := c.BreakSomething(r)
	if err != nil || name != "Nuclear Reactor" {
		t.Fatalf("BreakSomething = (%q, %v), want Nuclear Reactor", name, err)
	}
	if c.ActiveModules() != 10 || !c.Repairable() {
		t.Fatalf("after break active = %d repairable = %v", c.ActiveModules(), c.Repairable())
	}
	if got := c.RepairCandidates(); len(got) != 1 || got[0] != "Nuclear Power Section (3/4)" {
		t.Fatalf("RepairCandidates = %v", got)
	}

	ch := &firstChoice{}
	name, err = c.Repair(ch)
	if err != nil || name != "Nuclear Reactor" {
		t.Fatalf("Repair = (%q, %v), want Nuclear Reactor", name, err)
	}
	if len(ch.titles) != 2 || ch.titles[0] != "Select section to repair:" || ch.titles[1] != "Select module to repair:" {
		t.Fatalf("prompt titles = %v", ch.titles)
	}
	if c.ActiveModules() != 11 {
		t.Fatalf("ActiveModules after repair = %d, want 11", c.ActiveModules())
	}
}

func TestCategoryPowerDown(t *testing.T) {
	c := NewCategory(model.Catalog(model.CategoryResearch), model.InstallBounds{Min: 3, Max: 3}, NewRand(3))
	c.PowerDown()
	c.PowerDown()
	if c.ActiveModules() != 0 || c.TotalModules() != 8 {
		t.Fatalf("after PowerDown counts = (%d,%d), want (0,8)", c.ActiveModules(), c.TotalModules())
	}
	if got := c.RepairDisplay(); got != "Research Category (0/8)" {
		t.Fatalf("RepairDisplay = %q", got)
	}
}

func TestCategoryStatusListsInstalledSectionsOnly(t *testing.T) {
	c := NewCategory(model.Catalog(model.CategoryComms), model.InstallBounds{Min: 0, Max: 0}, NewRand(1))
	want := "(category\n" +
		"    :name \"Comms Category\"\n" +
		"    :installed-sections 0\n" +
		"    :total-modules 0\n" +
		"    :active-modules 0\n" +
		"    :sections (\n" +
		"    )\n" +
		")\n"
	if got := c.Status(0); got != want {
		t.Fatalf("Status =\n%s\nwant\n%s", got, want)
	}

	full := NewCategory(model.Catalog(model.CategoryComms), model.InstallBounds{Min: 3, Max: 3}, NewRand(1))
	status := full.Status(1)
	if n := strings.Count(status, "(section\n"); n != 3 {
		t.Fatalf("rendered %d sections, want 3:\n%s", n, status)
	}
	if !strings.HasPrefix(status, "    (category\n") {
		t.Fatalf("status not indented:\n%s", status)
	}
	if !strings.Contains(status, "            (section\n") {
		t.Fatalf("sections not nested two units deeper:\n%s", status)
	}
}
