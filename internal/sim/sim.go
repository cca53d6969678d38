// Package sim runs the station game loop, interactively or on autopilot.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/signalsfoundry/station-journal/core"
	"github.com/signalsfoundry/station-journal/internal/logging"
	"github.com/signalsfoundry/station-journal/internal/observability"
	"github.com/signalsfoundry/station-journal/internal/prompt"
	"github.com/signalsfoundry/station-journal/journal"
	"github.com/signalsfoundry/station-journal/timectrl"
)

// Menu entries.
const (
	MenuNewDay    = "NEW DAY"
	MenuStatus    = "STATUS"
	MenuPowerDown = "POWERDOWN"
	MenuRepair    = "REPAIR"
	MenuScience   = "SCIENCE"
)

// Prompt titles.
const (
	TitleLog  = "Enter your log:"
	TitleMenu = "MENU"
)

// Run modes used as metric labels.
const (
	ModePlay      = "play"
	ModeAutopilot = "autopilot"
)

var (
	dayMenu    = []string{MenuNewDay, MenuStatus, MenuPowerDown}
	actionMenu = []string{MenuRepair, MenuScience}
)

// Simulation drives one station through its days and keeps its journal.
type Simulation struct {
	station  *core.Station
	journal  *journal.Journal
	prompter prompt.Prompter
	out      io.Writer
	log      logging.Logger
	loop     *observability.LoopCollector
	tracer   trace.Tracer
	clock    timectrl.SimClock

	unsubscribe func()
}

// Option customises a Simulation.
type Option func(*Simulation)

// WithPrompter sets where log entries and menu choices come from.
func WithPrompter(p prompt.Prompter) Option {
	return func(s *Simulation) {
		if p != nil {
			s.prompter = p
		}
	}
}

// WithTransmitter sets where loop transmissions, status trees and the final
// journal are written. It should match the station's transmitter.
func WithTransmitter(w io.Writer) Option {
	return func(s *Simulation) {
		if w != nil {
			s.out = w
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.log = l
		}
	}
}

// WithLoopMetrics attaches game-loop metrics.
func WithLoopMetrics(c *observability.LoopCollector) Option {
	return func(s *Simulation) { s.loop = c }
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(s *Simulation) {
		if t != nil {
			s.tracer = t
		}
	}
}

// New wires a simulation around station and records every station event in
// j. Close detaches the journal again.
func New(station *core.Station, j *journal.Journal, opts ...Option) *Simulation {
	s := &Simulation{
		station:  station,
		journal:  j,
		prompter: prompt.NewTerminal(),
		out:      os.Stdout,
		log:      logging.Noop(),
		tracer:   observability.Tracer(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.clock = stationClock{station}
	s.unsubscribe = station.Subscribe(func(ev core.Event) { j.RecordEvent(ev) })
	return s
}

// Close stops recording station events.
func (s *Simulation) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

func (s *Simulation) Station() *core.Station    { return s.station }
func (s *Simulation) Journal() *journal.Journal { return s.journal }

func (s *Simulation) transmit(format string, args ...any) {
	if _, err := fmt.Fprintf(s.out, format+"\n", args...); err != nil {
		s.log.Warn(context.Background(), "transmission failed", logging.Err(err))
	}
}

// context tags ctx with the journal's run id and a logger carrying it.
func (s *Simulation) context(ctx context.Context) context.Context {
	id := s.journal.ID().String()
	if logging.RunIDFromContext(ctx) == id && logging.LoggerFromContext(ctx) != nil {
		return ctx
	}
	ctx, _ = logging.WithRunLogger(logging.ContextWithRunID(ctx, id), s.log)
	return ctx
}

// logger returns the run logger stored on ctx.
func (s *Simulation) logger(ctx context.Context) logging.Logger {
	if l := logging.LoggerFromContext(ctx); l != nil {
		return l
	}
	return s.log
}

func (s *Simulation) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("run_id", s.journal.ID().String()),
		attribute.Int("mission_day", int(s.clock.MissionDay())),
		attribute.String("sim_time", s.clock.Now().UTC().Format(time.RFC3339)),
		attribute.Int("active_modules", s.station.ActiveModules()),
	))
}

// stationClock reads simulation time off the station itself.
type stationClock struct {
	station *core.Station
}

func (c stationClock) Now() time.Time     { return c.station.SimTime() }
func (c stationClock) MissionDay() uint16 { return c.station.MissionDay() }

// Day plays one interactive day and reports whether the run continues. A
// shut-down station only sends its end-of-transmission notice.
func (s *Simulation) Day(ctx context.Context) (bool, error) {
	ctx, span := s.startSpan(s.context(ctx), "station.day")
	defer span.End()
	started := time.Now()
	defer func() { s.loop.ObserveDay(ModePlay, time.Since(started)) }()

	if s.station.IsShutDown() {
		s.station.EndTransmission()
		return false, nil
	}

	text, err := s.prompter.Text(TitleLog)
	if err != nil {
		return false, s.promptFailed(ctx, span, err)
	}
	s.addLogEntry(ctx, text)

	choice, err := s.choose(TitleMenu, dayMenu)
	if err != nil {
		return false, s.promptFailed(ctx, span, err)
	}
	s.loop.IncMenuChoice("day", choice)
	span.SetAttributes(attribute.String("choice", choice))

	switch choice {
	case MenuNewDay:
		s.station.NewDay()
		if s.station.IsShutDown() {
			return true, nil
		}
		action, err := s.choose(TitleMenu, actionMenu)
		if err != nil {
			return false, s.promptFailed(ctx, span, err)
		}
		s.loop.IncMenuChoice("action", action)
		if action == MenuRepair {
			if err := s.repair(ctx, prompt.AsChooser(s.prompter)); err != nil {
				return false, s.promptFailed(ctx, span, err)
			}
		} else {
			s.science(ctx)
		}
	case MenuStatus:
		if _, err := io.WriteString(s.out, s.station.Status(0)); err != nil {
			s.logger(ctx).Warn(ctx, "status report failed", logging.Err(err))
		}
	case MenuPowerDown:
		s.station.PowerDown()
		s.station.EndTransmission()
		s.logger(ctx).Info(ctx, "station powered down", logging.Int("mission_day", int(s.station.MissionDay())))
		return false, nil
	}
	return true, nil
}

func (s *Simulation) choose(title string, menu []string) (string, error) {
	idx, err := s.prompter.Select(title, menu)
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(menu) {
		return "", fmt.Errorf("%w: %d of %d", core.ErrInvalidChoice, idx, len(menu))
	}
	return menu[idx], nil
}

func (s *Simulation) promptFailed(ctx context.Context, span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if errors.Is(err, prompt.ErrAborted) {
		s.logger(ctx).Info(ctx, "prompt aborted")
	} else {
		s.logger(ctx).Error(ctx, "prompt failed", logging.Err(err))
	}
	return err
}

func (s *Simulation) addLogEntry(ctx context.Context, text string) {
	if err := s.journal.AddEntry(s.station.MissionDay(), text); err != nil {
		s.transmit("(journal-entry-status %s %q)", core.SymbolError, err.Error())
		s.logger(ctx).Debug(ctx, "journal entry rejected", logging.Err(err))
		return
	}
	s.loop.IncJournalEntries()
	s.transmit("(journal-entry-status %s)", core.SymbolSaved)
}

// repair asks ch for a module to repair. Only prompt failures are returned;
// an empty candidate list or an invalid choice is transmitted instead.
func (s *Simulation) repair(ctx context.Context, ch core.Chooser) error {
	ctx, span := s.startSpan(ctx, "station.repair")
	defer span.End()

	if len(s.station.RepairCandidates()) == 0 {
		s.loop.IncRepairsUnavailable()
		s.transmit("(section-to-repair %s)", core.SymbolNone)
		return nil
	}

	name, err := s.station.Repair(ch)
	switch {
	case err == nil:
		span.SetAttributes(attribute.String("module", name))
		s.logger(ctx).Debug(ctx, "repair complete", logging.String("module", name))
	case errors.Is(err, core.ErrInvalidChoice):
		s.transmit("(section-to-repair %s)", core.SymbolInvalid)
		s.logger(ctx).Warn(ctx, "invalid repair choice", logging.Err(err))
	default:
		span.RecordError(err)
		return err
	}
	return nil
}

func (s *Simulation) science(ctx context.Context) {
	ctx, span := s.startSpan(ctx, "station.science")
	defer span.End()

	name, err := s.station.Science()
	if err != nil {
		span.SetAttributes(attribute.String("outcome", err.Error()))
		return
	}
	span.SetAttributes(attribute.String("module", name))
	s.logger(ctx).Debug(ctx, "experiment damaged module", logging.String("module", name))
}

// Run plays days until the station stops transmitting, the player powers
// down or aborts, or ctx is cancelled, then prints the journal. An aborted
// prompt ends the run without an error.
func (s *Simulation) Run(ctx context.Context) error {
	ctx = s.context(ctx)
	s.logger(ctx).Info(ctx, "run started", logging.String("station", s.station.NameDisplay()))

	var runErr error
	for ctx.Err() == nil {
		more, err := s.Day(ctx)
		if err != nil {
			if !errors.Is(err, prompt.ErrAborted) {
				runErr = err
			}
			break
		}
		if !more {
			break
		}
	}

	if err := s.journal.Print(s.out); err != nil && runErr == nil {
		runErr = fmt.Errorf("print journal: %w", err)
	}
	s.logger(ctx).Info(ctx, "run finished",
		logging.Int("mission_day", int(s.station.MissionDay())),
		logging.Int("journal_entries", s.journal.Len()),
	)
	return runErr
}

// Autopilot advances one day per controller tick without a player. Each day
// it writes a log entry, starts the new day, and repairs when anything is
// repairable or runs an experiment otherwise. It stops when the station
// shuts down, after maxDays (zero for no limit), or when ctx is cancelled,
// and then prints the journal.
func (s *Simulation) Autopilot(ctx context.Context, dc *timectrl.DayController, maxDays int) error {
	ctx = s.context(ctx)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.clock = dc
	defer func() { s.clock = stationClock{s.station} }()

	s.logger(ctx).Info(ctx, "autopilot engaged",
		logging.String("station", s.station.NameDisplay()),
		logging.String("mode", dc.Mode.String()),
		logging.Int("max_days", maxDays),
	)

	var runErr error
	if !s.station.IsShutDown() {
		dc.AddListener(func(day uint16, simTime time.Time) {
			if err := s.autopilotDay(ctx, simTime); err != nil {
				runErr = err
				cancel()
				return
			}
			if s.station.IsShutDown() {
				cancel()
			}
		})
		<-dc.Start(ctx, maxDays)
	}
	s.station.EndTransmission()

	if err := s.journal.Print(s.out); err != nil && runErr == nil {
		runErr = fmt.Errorf("print journal: %w", err)
	}
	s.logger(ctx).Info(context.WithoutCancel(ctx), "autopilot disengaged",
		logging.Int("mission_day", int(s.station.MissionDay())),
		logging.Bool("shut_down", s.station.IsShutDown()),
	)
	return runErr
}

func (s *Simulation) autopilotDay(ctx context.Context, simTime time.Time) error {
	ctx, span := s.startSpan(ctx, "station.autopilot_day")
	defer span.End()
	started := time.Now()
	defer func() { s.loop.ObserveDay(ModeAutopilot, time.Since(started)) }()

	text, err := s.prompter.Text(fmt.Sprintf("Day %d", s.station.MissionDay()+1))
	if err != nil {
		return s.promptFailed(ctx, span, err)
	}
	s.addLogEntry(ctx, text)

	s.station.NewDay()
	s.logger(ctx).Debug(ctx, "autopilot day",
		logging.Int("mission_day", int(s.station.MissionDay())),
		logging.String("sim_time", simTime.Format(time.RFC3339)),
		logging.Int("active_modules", s.station.ActiveModules()),
	)
	if s.station.IsShutDown() {
		return nil
	}

	if len(s.station.RepairCandidates()) > 0 {
		s.loop.IncMenuChoice("action", MenuRepair)
		return s.repair(ctx, prompt.AsChooser(s.prompter))
	}
	s.loop.IncMenuChoice("action", MenuScience)
	s.science(ctx)
	return nil
}
