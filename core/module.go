package core

import "fmt"

// Module is the smallest unit of the station: a named on/off switch. Whether
// it is installed is decided by the owning Section.
type Module struct {
	name   string
	active bool
}

var _ Component = (*Module)(nil)

// NewModule constructs a module with the given initial state.
func NewModule(name string, active bool) *Module {
	return &Module{name: name, active: active}
}

func (m *Module) Name() string { return m.name }
func (m *Module) Active() bool { return m.active }
func (m *Module) Activate()    { m.active = true }
func (m *Module) Deactivate()  { m.active = false }

// TotalModules is always one for a leaf.
func (m *Module) TotalModules() int { return 1 }

// ActiveModules is one when the module is active, zero otherwise.
func (m *Module) ActiveModules() int {
	if m.active {
		return 1
	}
	return 0
}

// Status renders the module on a single line.
func (m *Module) Status(indent int) string {
	status := SymbolOK
	if !m.active {
		status = SymbolInactive
	}
	return block{
		header:     "module",
		showFields: true,
		fields: []field{
			{key: ":name", value: quoted(m.name)},
			{key: ":status", value: status},
		},
	}.render(indent)
}

// BreakSomething deactivates the module. Breaking an inactive module reports
// ErrNoEffect and leaves it unchanged.
func (m *Module) BreakSomething(Rand) (string, error) {
	if !m.active {
		return m.name, fmt.Errorf("%w: %s", ErrNoEffect, m.name)
	}
	m.Deactivate()
	return m.name, nil
}

// Repairable reports whether the module is currently broken.
func (m *Module) Repairable() bool { return !m.active }

// Repair activates the module. There is nothing further to choose at this level.
func (m *Module) Repair(Chooser) (string, error) {
	if m.active {
		return "", ErrNoRepairableCandidates
	}
	m.Activate()
	return m.name, nil
}

// RepairDisplay is the menu label for this module.
func (m *Module) RepairDisplay() string { return m.name }

// PowerDown deactivates the module unconditionally.
func (m *Module) PowerDown() { m.Deactivate() }
