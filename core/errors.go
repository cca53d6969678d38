package core

import "errors"

// Sentinel errors returned by the station tree.
var (
	// ErrNotInstalled indicates a break or repair targeted a section that was
	// not installed when its category was built.
	ErrNotInstalled = errors.New("not installed")
	// ErrNoEffect indicates a break landed on a module that was already inactive.
	ErrNoEffect = errors.New("module already inactive")
	// ErrNoRepairableCandidates indicates repair was requested while nothing
	// installed is broken.
	ErrNoRepairableCandidates = errors.New("no repairable candidates")
	// ErrInvalidChoice indicates a chooser returned an index outside the
	// candidate list it was offered.
	ErrInvalidChoice = errors.New("invalid choice")
	// ErrStationDisabled indicates the station has shut down; shut-down is terminal.
	ErrStationDisabled = errors.New("station disabled")
)
