package core

import "fmt"

// Component is the contract every level of the station tree implements.
type Component interface {
	Name() string
	TotalModules() int
	ActiveModules() int
	Status(indent int) string
	BreakSomething(r Rand) (string, error)
	Repairable() bool
	Repair(ch Chooser) (string, error)
	PowerDown()
}

// Chooser picks one of the options presented by Repair and returns its index.
type Chooser interface {
	Choose(title string, options []string) (int, error)
}

// ChooserFunc adapts a function to Chooser.
type ChooserFunc func(title string, options []string) (int, error)

// Choose implements Chooser.
func (f ChooserFunc) Choose(title string, options []string) (int, error) {
	return f(title, options)
}

type activeCounter interface {
	ActiveModules() int
}

// activeSum is the single aggregation rule used at every level.
func activeSum[T activeCounter](children []T) int {
	total := 0
	for _, c := range children {
		total += c.ActiveModules()
	}
	return total
}

type repairTarget interface {
	Name() string
	Repairable() bool
	Repair(ch Chooser) (string, error)
}

// repairDisplay renders a repair menu label for an aggregate.
func repairDisplay(name string, active, total int) string {
	return fmt.Sprintf("%s (%d/%d)", name, active, total)
}

// chooseAmong offers the repairable children to ch and returns the chosen
// one. labels must be parallel to children.
func chooseAmong[T repairTarget](ch Chooser, title string, children []T, labels []string) (T, error) {
	var (
		zero       T
		candidates []T
		options    []string
	)
	for i, c := range children {
		if c.Repairable() {
			candidates = append(candidates, c)
			options = append(options, labels[i])
		}
	}
	if len(candidates) == 0 {
		return zero, ErrNoRepairableCandidates
	}
	if ch == nil {
		return zero, fmt.Errorf("%s: nil chooser", title)
	}

	idx, err := ch.Choose(title, options)
	if err != nil {
		return zero, err
	}
	if idx < 0 || idx >= len(candidates) {
		return zero, fmt.Errorf("%w: %d of %d", ErrInvalidChoice, idx, len(candidates))
	}
	return candidates[idx], nil
}

// repairAmong chooses a repairable child and forwards the repair to it.
func repairAmong[T repairTarget](ch Chooser, title string, children []T, labels []string) (string, error) {
	chosen, err := chooseAmong(ch, title, children, labels)
	if err != nil {
		return "", err
	}
	return chosen.Repair(ch)
}
