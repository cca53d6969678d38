package prompt

import (
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/signalsfoundry/station-journal/core"
	"github.com/signalsfoundry/station-journal/internal/ui"
)

func plainStyles() ui.Styles {
	return ui.NewStyles(lipgloss.NewRenderer(io.Discard))
}

func update(t *testing.T, m tea.Model, msgs ...tea.Msg) (tea.Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestSelectModelNavigation(t *testing.T) {
	m := newSelectModel("MENU", []string{"NEW DAY", "STATUS", "POWERDOWN"}, plainStyles())

	got, cmd := update(t, m,
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyUp},
	)
	sm := got.(selectModel)
	if sm.cursor != 2 {
		t.Fatalf("cursor = %d, want 2 after wrapping", sm.cursor)
	}
	if isQuit(cmd) {
		t.Fatalf("navigation quit the program")
	}

	got, cmd = update(t, sm, tea.KeyMsg{Type: tea.KeyEnter})
	sm = got.(selectModel)
	if sm.chosen != 2 || !isQuit(cmd) {
		t.Fatalf("chosen = %d quit = %v, want 2 and quit", sm.chosen, isQuit(cmd))
	}
	if view := sm.View(); !strings.Contains(view, "POWERDOWN") {
		t.Fatalf("final view = %q", view)
	}
}

func TestSelectModelDigitShortcut(t *testing.T) {
	m := newSelectModel("MENU", []string{"REPAIR", "SCIENCE"}, plainStyles())
	got, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	if sm := got.(selectModel); sm.chosen != 1 || !isQuit(cmd) {
		t.Fatalf("chosen = %d, want 1", sm.chosen)
	}

	got, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'9'}})
	if sm := got.(selectModel); sm.chosen != -1 {
		t.Fatalf("out-of-range digit chose %d", sm.chosen)
	}
}

func TestSelectModelAbort(t *testing.T) {
	m := newSelectModel("MENU", []string{"REPAIR"}, plainStyles())
	got, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if sm := got.(selectModel); !sm.aborted || sm.chosen != -1 || !isQuit(cmd) {
		t.Fatalf("esc did not abort: %+v", sm)
	}
}

func TestSelectModelView(t *testing.T) {
	m := newSelectModel("Select category to repair:", []string{"Comms Category (2/3)", "Power Category (5/6)"}, plainStyles())
	m.cursor = 1
	view := m.View()
	if !strings.Contains(view, "  Comms Category (2/3)\n") || !strings.Contains(view, "> Power Category (5/6)") {
		t.Fatalf("view = %q", view)
	}
}

func TestTextModel(t *testing.T) {
	m := newTextModel("Enter your log:", plainStyles())
	got, _ := update(t, m,
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("all quiet")},
	)
	got, cmd := update(t, got, tea.KeyMsg{Type: tea.KeyEnter})
	tm := got.(textModel)
	if !tm.done || !isQuit(cmd) {
		t.Fatalf("enter did not finish input")
	}
	if tm.input.Value() != "all quiet" {
		t.Fatalf("value = %q, want %q", tm.input.Value(), "all quiet")
	}

	got, _ = update(t, newTextModel("Enter your log:", plainStyles()), tea.KeyMsg{Type: tea.KeyCtrlC})
	if !got.(textModel).aborted {
		t.Fatalf("ctrl+c did not abort")
	}
}

func TestScripted(t *testing.T) {
	s := &Scripted{Choices: []string{"STATUS", "WARP"}, Texts: []string{"hello"}}

	if idx, err := s.Select("MENU", []string{"NEW DAY", "STATUS"}); err != nil || idx != 1 {
		t.Fatalf("Select = (%d, %v), want 1", idx, err)
	}
	if _, err := s.Select("MENU", []string{"NEW DAY"}); !errors.Is(err, core.ErrInvalidChoice) {
		t.Fatalf("unknown label error = %v, want ErrInvalidChoice", err)
	}
	if _, err := s.Select("MENU", []string{"NEW DAY"}); !errors.Is(err, ErrAborted) {
		t.Fatalf("exhausted Select error = %v, want ErrAborted", err)
	}
	if text, err := s.Text("Enter your log:"); err != nil || text != "hello" {
		t.Fatalf("Text = (%q, %v)", text, err)
	}
	if _, err := s.Text("Enter your log:"); !errors.Is(err, ErrAborted) {
		t.Fatalf("exhausted Text error = %v, want ErrAborted", err)
	}
	if len(s.Titles) != 5 {
		t.Fatalf("recorded %d titles, want 5", len(s.Titles))
	}
}

type fixedRand struct{ n int }

func (r fixedRand) IntN(n int) int              { return r.n % n }
func (r fixedRand) Shuffle(int, func(i, j int)) {}

func TestAuto(t *testing.T) {
	a := &Auto{Rand: fixedRand{n: 4}, Log: func(title string) string { return "log for " + title }}
	if idx, err := a.Select("MENU", []string{"a", "b", "c"}); err != nil || idx != 1 {
		t.Fatalf("Select = (%d, %v), want 1", idx, err)
	}
	if _, err := a.Select("MENU", nil); !errors.Is(err, ErrNoOptions) {
		t.Fatalf("empty Select error = %v, want ErrNoOptions", err)
	}
	if text, _ := a.Text("day 3"); text != "log for day 3" {
		t.Fatalf("Text = %q", text)
	}
	if text, _ := (&Auto{}).Text("x"); text == "" {
		t.Fatalf("default Text is empty")
	}
}

func TestAsChooserDrivesRepair(t *testing.T) {
	ch := AsChooser(&Scripted{Choices: []string{"b"}})
	idx, err := ch.Choose("Select module to repair:", []string{"a", "b"})
	if err != nil || idx != 1 {
		t.Fatalf("Choose = (%d, %v), want 1", idx, err)
	}
}
