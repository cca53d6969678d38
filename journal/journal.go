package journal

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/signalsfoundry/station-journal/core"
)

// DefaultHeader is the header printed above the journal title.
const DefaultHeader = "STATION LOG"

// ruleWidth is the width of the dashed separator lines in Print.
const ruleWidth = 80

// ErrEmptyEntry is returned when a log entry has no text.
var ErrEmptyEntry = errors.New("journal entry is empty")

// EntryKind distinguishes crew log entries from recorded station events.
type EntryKind int

const (
	EntryLog EntryKind = iota
	EntryEvent
)

// Entry is one line of the journal.
type Entry struct {
	Kind       EntryKind
	MissionDay uint16
	Text       string
}

// String renders the entry the way Print writes it.
func (e Entry) String() string {
	if e.Kind == EntryEvent {
		return fmt.Sprintf("[day %d] %s", e.MissionDay, e.Text)
	}
	return e.Text
}

// Journal is an in-memory, thread-safe station log.
type Journal struct {
	mu sync.RWMutex

	id      uuid.UUID
	header  string
	title   string
	entries []Entry

	subs   map[int]func(Entry)
	nextID int
}

// New constructs an empty journal. An empty header falls back to
// DefaultHeader.
func New(header, title string) *Journal {
	if header == "" {
		header = DefaultHeader
	}
	return &Journal{
		id:     uuid.New(),
		header: header,
		title:  title,
		subs:   make(map[int]func(Entry)),
	}
}

// ID identifies this journal's run in logs and traces.
func (j *Journal) ID() uuid.UUID { return j.id }

func (j *Journal) Header() string { return j.header }
func (j *Journal) Title() string  { return j.title }

// AddEntry appends a crew log entry for the given mission day.
func (j *Journal) AddEntry(day uint16, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyEntry
	}
	j.append(Entry{Kind: EntryLog, MissionDay: day, Text: text})
	return nil
}

// RecordEvent appends a station event. Events that carry nothing worth
// reading later (commissioning, new days, misses) are ignored and false is
// returned.
func (j *Journal) RecordEvent(ev core.Event) bool {
	var text string
	switch ev.Type {
	case core.EventModuleFailure:
		text = fmt.Sprintf("module failure: %s (%s)", ev.Module, ev.Category)
	case core.EventModuleRepaired:
		text = fmt.Sprintf("module repaired: %s (%s)", ev.Module, ev.Category)
	case core.EventPowerDown:
		text = "station powered down"
	case core.EventEndTransmission:
		text = "end of transmission"
	default:
		return false
	}
	j.append(Entry{Kind: EntryEvent, MissionDay: ev.MissionDay, Text: text})
	return true
}

func (j *Journal) append(e Entry) {
	j.mu.Lock()
	j.entries = append(j.entries, e)
	subs := make([]func(Entry), 0, len(j.subs))
	for id := 0; id < j.nextID; id++ {
		if fn, ok := j.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	j.mu.Unlock()

	// Notify outside the lock so subscribers may read the journal.
	for _, fn := range subs {
		fn(e)
	}
}

// Entries returns a snapshot of every entry in insertion order.
func (j *Journal) Entries() []Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return append([]Entry(nil), j.entries...)
}

// Len returns the number of entries.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.entries)
}

// Subscribe registers a callback for appended entries. It returns an
// unsubscribe function.
func (j *Journal) Subscribe(fn func(Entry)) (unsubscribe func()) {
	j.mu.Lock()
	defer j.mu.Unlock()
	id := j.nextID
	j.nextID++
	j.subs[id] = fn

	return func() {
		j.mu.Lock()
		defer j.mu.Unlock()
		delete(j.subs, id)
	}
}

// Print writes the framed journal: a rule, "HEADER: title", a rule, then
// every entry followed by a rule.
func (j *Journal) Print(w io.Writer) error {
	j.mu.RLock()
	defer j.mu.RUnlock()

	rule := strings.Repeat("-", ruleWidth) + "\n"
	var sb strings.Builder
	sb.WriteString(rule)
	fmt.Fprintf(&sb, "%s: %s\n", j.header, j.title)
	sb.WriteString(rule)
	for _, e := range j.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
		sb.WriteString(rule)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
