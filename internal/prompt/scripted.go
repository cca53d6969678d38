package prompt

import (
	"fmt"

	"github.com/signalsfoundry/station-journal/core"
)

// Scripted answers prompts from fixed queues. Select answers are matched by
// option label; an exhausted queue aborts.
type Scripted struct {
	Choices []string
	Texts   []string

	// Titles records every prompt title in order.
	Titles []string
}

// Select returns the index of the next scripted label in options.
func (s *Scripted) Select(title string, options []string) (int, error) {
	s.Titles = append(s.Titles, title)
	if len(options) == 0 {
		return -1, fmt.Errorf("%s: %w", title, ErrNoOptions)
	}
	if len(s.Choices) == 0 {
		return -1, fmt.Errorf("%s: script exhausted: %w", title, ErrAborted)
	}
	want := s.Choices[0]
	s.Choices = s.Choices[1:]
	for i, opt := range options {
		if opt == want {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%s: %q not among %q: %w", title, want, options, core.ErrInvalidChoice)
}

// Text returns the next scripted line.
func (s *Scripted) Text(title string) (string, error) {
	s.Titles = append(s.Titles, title)
	if len(s.Texts) == 0 {
		return "", fmt.Errorf("%s: script exhausted: %w", title, ErrAborted)
	}
	text := s.Texts[0]
	s.Texts = s.Texts[1:]
	return text, nil
}

// Auto answers without a player: Select picks uniformly at random and Text
// asks Log for the entry.
type Auto struct {
	Rand core.Rand
	Log  func(title string) string
}

// Select picks a uniformly random option.
func (a *Auto) Select(title string, options []string) (int, error) {
	if len(options) == 0 {
		return -1, fmt.Errorf("%s: %w", title, ErrNoOptions)
	}
	if a.Rand == nil {
		return 0, nil
	}
	return a.Rand.IntN(len(options)), nil
}

// Text returns Log(title), or a fixed entry when Log is nil.
func (a *Auto) Text(title string) (string, error) {
	if a.Log == nil {
		return "autopilot engaged", nil
	}
	return a.Log(title), nil
}
