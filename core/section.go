package core

import (
	"fmt"

	"github.com/signalsfoundry/station-journal/model"
)

// Section is a fixed group of modules that is either installed or absent for
// the whole life of the station.
type Section struct {
	name      string
	installed bool
	modules   []*Module

	activeModules int
}

var _ Component = (*Section)(nil)

// NewSection builds a section from its catalog entry. Every module starts
// active when the section is installed and inactive otherwise.
func NewSection(spec model.SectionSpec, installed bool) *Section {
	s := &Section{
		name:      spec.Name,
		installed: installed,
		modules:   make([]*Module, 0, len(spec.Modules)),
	}
	for _, name := range spec.Modules {
		s.modules = append(s.modules, NewModule(name, installed))
	}
	s.onChildMutated()
	return s
}

func (s *Section) Name() string    { return s.name }
func (s *Section) Installed() bool { return s.installed }

// TotalModules is the section's fixed module count, installed or not.
func (s *Section) TotalModules() int { return len(s.modules) }

func (s *Section) ActiveModules() int { return s.activeModules }

// Modules returns the section's modules in dispatch order.
func (s *Section) Modules() []*Module {
	return append([]*Module(nil), s.modules...)
}

// onChildMutated recomputes the cached active-module count; every mutating
// method ends with it.
func (s *Section) onChildMutated() {
	s.activeModules = activeSum(s.modules)
}

// Status renders the section header and each of its modules.
func (s *Section) Status(indent int) string {
	inner := make([]string, 0, len(s.modules))
	for _, m := range s.modules {
		inner = append(inner, m.Status(indent+2))
	}
	return block{
		header:     "section",
		showFields: true,
		fields: []field{
			{key: ":name", value: quoted(s.name)},
			{key: ":total-modules", value: fmt.Sprint(s.TotalModules())},
			{key: ":active-modules", value: fmt.Sprint(s.activeModules)},
		},
		showInner: true,
		innerKey:  ":modules",
		inner:     inner,
	}.render(indent)
}

// BreakSomething deactivates one uniformly chosen module and returns its name.
func (s *Section) BreakSomething(r Rand) (string, error) {
	if !s.installed {
		return "", fmt.Errorf("%s: %w", s.name, ErrNotInstalled)
	}
	if len(s.modules) == 0 {
		return "", fmt.Errorf("%s: %w", s.name, ErrNoEffect)
	}
	defer s.onChildMutated()

	return s.modules[pick(r, len(s.modules))-1].BreakSomething(r)
}

// Repairable reports whether the section is installed and not fully active.
func (s *Section) Repairable() bool {
	return s.installed && s.activeModules < s.TotalModules()
}

// RepairDisplay is the menu label for this section.
func (s *Section) RepairDisplay() string {
	return repairDisplay(s.name, s.activeModules, s.TotalModules())
}

// RepairCandidates lists the labels of the modules Repair would offer.
func (s *Section) RepairCandidates() []string {
	if !s.installed {
		return nil
	}
	var out []string
	for _, m := range s.modules {
		if m.Repairable() {
			out = append(out, m.RepairDisplay())
		}
	}
	return out
}

// Repair offers the inactive modules to ch and activates the chosen one.
func (s *Section) Repair(ch Chooser) (string, error) {
	if !s.installed {
		return "", fmt.Errorf("%s: %w", s.name, ErrNotInstalled)
	}
	defer s.onChildMutated()

	labels := make([]string, len(s.modules))
	for i, m := range s.modules {
		labels[i] = m.RepairDisplay()
	}
	return repairAmong(ch, "Select module to repair:", s.modules, labels)
}

// PowerDown deactivates every module.
func (s *Section) PowerDown() {
	for _, m := range s.modules {
		m.PowerDown()
	}
	s.onChildMutated()
}
