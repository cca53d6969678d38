// Package prompt asks the player for menu choices and log entries.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/signalsfoundry/station-journal/core"
	"github.com/signalsfoundry/station-journal/internal/ui"
)

var (
	// ErrAborted is returned when the player cancels a prompt or a script
	// runs out of answers.
	ErrAborted = errors.New("prompt aborted")
	// ErrNoOptions is returned by Select when there is nothing to choose.
	ErrNoOptions = errors.New("prompt has no options")
)

// Prompter asks for one menu choice or one line of text.
type Prompter interface {
	Select(title string, options []string) (int, error)
	Text(title string) (string, error)
}

// AsChooser adapts p so it can drive core repair menus.
func AsChooser(p Prompter) core.Chooser {
	return core.ChooserFunc(p.Select)
}

// Terminal prompts interactively with bubbletea programs.
type Terminal struct {
	In     io.Reader
	Out    io.Writer
	Styles ui.Styles
}

// NewTerminal prompts on stdin and stdout.
func NewTerminal() *Terminal {
	return &Terminal{In: os.Stdin, Out: os.Stdout, Styles: ui.DefaultStyles()}
}

func (t *Terminal) programOptions() []tea.ProgramOption {
	var opts []tea.ProgramOption
	if t.In != nil {
		opts = append(opts, tea.WithInput(t.In))
	}
	if t.Out != nil {
		opts = append(opts, tea.WithOutput(t.Out))
	}
	return opts
}

// Select shows options as a cursor menu and returns the chosen index.
func (t *Terminal) Select(title string, options []string) (int, error) {
	if len(options) == 0 {
		return -1, fmt.Errorf("%s: %w", title, ErrNoOptions)
	}
	final, err := tea.NewProgram(newSelectModel(title, options, t.Styles), t.programOptions()...).Run()
	if err != nil {
		return -1, fmt.Errorf("run select: %w", err)
	}
	m, ok := final.(selectModel)
	if !ok || m.aborted {
		return -1, ErrAborted
	}
	return m.chosen, nil
}

// Text reads one line of input.
func (t *Terminal) Text(title string) (string, error) {
	final, err := tea.NewProgram(newTextModel(title, t.Styles), t.programOptions()...).Run()
	if err != nil {
		return "", fmt.Errorf("run text input: %w", err)
	}
	m, ok := final.(textModel)
	if !ok || m.aborted {
		return "", ErrAborted
	}
	return m.input.Value(), nil
}
