package core

import (
	"fmt"

	"github.com/signalsfoundry/station-journal/model"
)

// Category is a fixed group of sections, some of which were installed when the
// category was built.
type Category struct {
	kind     model.CategoryKind
	name     string
	sections []*Section

	installedSections int
	totalModules      int
	activeModules     int
}

var _ Component = (*Category)(nil)

// NewCategory builds a category from its catalog entry, installing between
// bounds.Min and bounds.Max of its sections. Which sections get installed is
// randomised and frozen from then on.
func NewCategory(spec model.CategorySpec, bounds model.InstallBounds, r Rand) *Category {
	installation := RandomBools(r, len(spec.Sections), bounds.Min, bounds.Max)

	c := &Category{
		kind:     spec.Kind,
		name:     spec.Name,
		sections: make([]*Section, 0, len(spec.Sections)),
	}
	for i, s := range spec.Sections {
		section := NewSection(s, installation[i])
		c.sections = append(c.sections, section)
		if section.Installed() {
			c.installedSections++
			c.totalModules += section.TotalModules()
		}
	}
	c.onChildMutated()
	return c
}

func (c *Category) Kind() model.CategoryKind { return c.kind }
func (c *Category) Name() string             { return c.name }
func (c *Category) TotalSections() int       { return len(c.sections) }
func (c *Category) InstalledSections() int   { return c.installedSections }

// TotalModules counts modules of installed sections only.
func (c *Category) TotalModules() int  { return c.totalModules }
func (c *Category) ActiveModules() int { return c.activeModules }

// Sections returns the category's sections in dispatch order.
func (c *Category) Sections() []*Section {
	return append([]*Section(nil), c.sections...)
}

// onChildMutated recomputes the cached active-module count. Uninstalled
// sections contribute zero because their modules were built inactive and
// refuse every mutation except PowerDown.
func (c *Category) onChildMutated() {
	c.activeModules = activeSum(c.sections)
}

// Status renders the category and each installed section.
func (c *Category) Status(indent int) string {
	var inner []string
	for _, s := range c.sections {
		if s.Installed() {
			inner = append(inner, s.Status(indent+2))
		}
	}
	return block{
		header:     "category",
		showFields: true,
		fields: []field{
			{key: ":name", value: quoted(c.name)},
			{key: ":installed-sections", value: fmt.Sprint(c.installedSections)},
			{key: ":total-modules", value: fmt.Sprint(c.totalModules)},
			{key: ":active-modules", value: fmt.Sprint(c.activeModules)},
		},
		showInner: true,
		innerKey:  ":sections",
		inner:     inner,
	}.render(indent)
}

// BreakSomething forwards to one uniformly chosen section and returns its
// result unchanged.
func (c *Category) BreakSomething(r Rand) (string, error) {
	defer c.onChildMutated()

	if len(c.sections) == 0 {
		return "", fmt.Errorf("%s: %w", c.name, ErrNotInstalled)
	}
	return c.sections[pick(r, len(c.sections))-1].BreakSomething(r)
}

// Repairable reports whether any installed module of the category is broken.
func (c *Category) Repairable() bool {
	return c.activeModules < c.totalModules
}

// RepairDisplay is the menu label for this category.
func (c *Category) RepairDisplay() string {
	return repairDisplay(c.name, c.activeModules, c.totalModules)
}

// RepairCandidates lists the labels of the sections Repair would offer.
func (c *Category) RepairCandidates() []string {
	var out []string
	for _, s := range c.sections {
		if s.Repairable() {
			out = append(out, s.RepairDisplay())
		}
	}
	return out
}

// Repair offers the repairable sections to ch and forwards to the chosen one.
func (c *Category) Repair(ch Chooser) (string, error) {
	defer c.onChildMutated()

	labels := make([]string, len(c.sections))
	for i, s := range c.sections {
		labels[i] = s.RepairDisplay()
	}
	return repairAmong(ch, "Select section to repair:", c.sections, labels)
}

// PowerDown forwards to every section.
func (c *Category) PowerDown() {
	for _, s := range c.sections {
		s.PowerDown()
	}
	c.onChildMutated()
}
