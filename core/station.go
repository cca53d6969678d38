package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/signalsfoundry/station-journal/internal/logging"
	"github.com/signalsfoundry/station-journal/model"
)

// Station is the root of the component tree. It owns the mission-day counter
// and the disabled flag, which becomes true the moment no module is active and
// never resets.
type Station struct {
	name       string
	version    uint8
	versionSet bool
	missionDay uint16
	disabled   bool
	endSent    bool

	categories []*Category

	totalSections     int
	installedSections int
	totalModules      int
	activeModules     int

	bounds  map[model.CategoryKind]model.InstallBounds
	rng     Rand
	out     io.Writer
	log     logging.Logger
	metrics StationMetricsRecorder
	orbit   Orbit
	epoch   time.Time

	subs   []subscription
	nextID int
}

// StationOption customises Station construction.
type StationOption func(*Station)

// WithRand sets the randomness used for installation, naming and failures.
func WithRand(r Rand) StationOption {
	return func(s *Station) {
		if r != nil {
			s.rng = r
		}
	}
}

// WithBounds overrides installation bounds per category. Categories missing
// from b keep their defaults.
func WithBounds(b map[model.CategoryKind]model.InstallBounds) StationOption {
	return func(s *Station) {
		for k, v := range b {
			s.bounds[k] = v
		}
	}
}

// WithIdentity fixes the station name and version instead of drawing them.
func WithIdentity(name string, version uint8) StationOption {
	return func(s *Station) {
		WithName(name)(s)
		WithVersion(version)(s)
	}
}

// WithName fixes the station name. An empty name is drawn from the pool.
func WithName(name string) StationOption {
	return func(s *Station) { s.name = name }
}

// WithVersion fixes the station version.
func WithVersion(version uint8) StationOption {
	return func(s *Station) {
		s.version = version
		s.versionSet = true
	}
}

// WithTransmitter sets where transmissions and status reports are written.
func WithTransmitter(w io.Writer) StationOption {
	return func(s *Station) {
		if w != nil {
			s.out = w
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(l logging.Logger) StationOption {
	return func(s *Station) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetricsRecorder attaches a recorder that receives counters after every
// mutation.
func WithMetricsRecorder(m StationMetricsRecorder) StationOption {
	return func(s *Station) {
		s.metrics = m
	}
}

// WithOrbit attaches an orbit; epoch is the simulation time of mission day 0.
func WithOrbit(o Orbit, epoch time.Time) StationOption {
	return func(s *Station) {
		s.orbit = o
		s.epoch = epoch
	}
}

// NewStation builds every category, sums the station-wide counters and
// transmits an initial status report.
func NewStation(opts ...StationOption) *Station {
	s := &Station{
		bounds: model.DefaultBounds(),
		out:    io.Discard,
		log:    logging.Noop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.rng == nil {
		s.rng = NewRand(0)
	}
	if s.name == "" {
		s.name = model.StationNames[s.rng.IntN(len(model.StationNames))]
	}
	if !s.versionSet {
		s.version = uint8(s.rng.IntN(math.MaxUint8 + 1))
	}

	for _, kind := range model.CategoryKinds {
		c := NewCategory(model.Catalog(kind), s.bounds[kind], s.rng)
		s.categories = append(s.categories, c)
		s.totalSections += c.TotalSections()
		s.installedSections += c.InstalledSections()
		s.totalModules += c.TotalModules()
	}
	s.onChildMutated()

	s.log.Info(context.Background(), "station commissioned",
		logging.String("station", s.NameDisplay()),
		logging.Int("installed_sections", s.installedSections),
		logging.Int("total_modules", s.totalModules),
	)
	s.emit(Event{Type: EventCommissioned})
	s.transmit(s.StatusView(0, true, false))
	return s
}

func (s *Station) Name() string       { return s.name }
func (s *Station) Version() uint8     { return s.version }
func (s *Station) MissionDay() uint16 { return s.missionDay }

// NameDisplay renders the station's identity line.
func (s *Station) NameDisplay() string {
	return fmt.Sprintf("Station %q v%d", s.name, s.version)
}

// IsDisabled reports whether the station has shut down.
func (s *Station) IsDisabled() bool { return s.disabled }

// IsShutDown is an alias of IsDisabled.
func (s *Station) IsShutDown() bool { return s.disabled }

func (s *Station) TotalSections() int     { return s.totalSections }
func (s *Station) InstalledSections() int { return s.installedSections }
func (s *Station) TotalModules() int      { return s.totalModules }
func (s *Station) ActiveModules() int     { return s.activeModules }

// Categories returns the categories in dispatch order.
func (s *Station) Categories() []*Category {
	return append([]*Category(nil), s.categories...)
}

// Counts snapshots the aggregate counters.
func (s *Station) Counts() StationCounts {
	return StationCounts{
		MissionDay:        s.missionDay,
		TotalSections:     s.totalSections,
		InstalledSections: s.installedSections,
		TotalModules:      s.totalModules,
		ActiveModules:     s.activeModules,
		Disabled:          s.disabled,
	}
}

// SimTime is the simulation time of the current mission day.
func (s *Station) SimTime() time.Time {
	return s.epoch.Add(time.Duration(s.missionDay) * 24 * time.Hour)
}

// Subscribe registers a callback for station events. It returns an
// unsubscribe function.
func (s *Station) Subscribe(fn func(Event)) (unsubscribe func()) {
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscription{id: id, fn: fn})

	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// onChildMutated recomputes the active-module cache and the disabled flag and
// pushes counters to the metrics recorder.
func (s *Station) onChildMutated() {
	s.activeModules = activeSum(s.categories)
	if s.activeModules == 0 {
		s.disabled = true
	}
	if s.metrics != nil {
		s.metrics.SetStationCounts(s.Counts())
	}
}

func (s *Station) emit(ev Event) {
	ev.MissionDay = s.missionDay
	ev.Counts = s.Counts()
	for _, sub := range append([]subscription(nil), s.subs...) {
		sub.fn(ev)
	}
}

func (s *Station) transmit(text string) {
	if len(text) == 0 || text[len(text)-1] != '\n' {
		text += "\n"
	}
	if _, err := io.WriteString(s.out, text); err != nil {
		s.log.Warn(context.Background(), "transmission failed", logging.String("error", err.Error()))
	}
}

// NewDay advances the mission by one day and injects one failure. A disabled
// station only transmits its end-of-transmission notice, once.
func (s *Station) NewDay() {
	if s.disabled {
		s.EndTransmission()
		return
	}

	if s.missionDay < math.MaxUint16 {
		s.missionDay++
	}
	s.emit(Event{Type: EventNewDay})
	s.transmit(fmt.Sprintf("(mission-day %d)", s.missionDay))
	s.transmit(s.StatusView(0, true, false))

	_, _ = s.BreakSomething()

	s.transmit(fmt.Sprintf("(until-final-transmission %d)", s.activeModules))
}

// EndTransmission transmits the end-of-transmission notice the first time it
// is called on a disabled station and does nothing otherwise.
func (s *Station) EndTransmission() {
	if !s.disabled || s.endSent {
		return
	}
	s.endSent = true
	s.transmit("(end-transmission)")
	s.log.Info(context.Background(), "end of transmission",
		logging.String("station", s.NameDisplay()),
		logging.Int("mission_day", int(s.missionDay)),
	)
	s.emit(Event{Type: EventEndTransmission})
}

// BreakSomething forwards a failure to one uniformly chosen category. A miss
// on an uninstalled section or an already broken module stays silent unless
// nothing at all is broken, in which case the station reports all sections ok.
// A disabled station returns ErrStationDisabled and transmits nothing.
func (s *Station) BreakSomething() (string, error) {
	if s.disabled {
		return "", ErrStationDisabled
	}
	c := s.categories[pick(s.rng, len(s.categories))-1]
	name, err := c.BreakSomething(s.rng)
	s.onChildMutated()

	ctx := context.Background()
	switch {
	case err == nil:
		s.transmit(fmt.Sprintf("(section-failure %q)", name))
		s.log.Debug(ctx, "module failure",
			logging.String("category", c.Kind().String()),
			logging.String("module", name),
		)
		s.emit(Event{Type: EventModuleFailure, Category: c.Kind().String(), Module: name})
	case s.activeModules == s.totalModules:
		s.transmit(fmt.Sprintf("(sections %s)", SymbolOK))
	default:
		s.log.Debug(ctx, "failure missed",
			logging.String("category", c.Kind().String()),
			logging.String("reason", err.Error()),
		)
		if errors.Is(err, ErrNoEffect) {
			s.emit(Event{Type: EventNoEffect, Category: c.Kind().String(), Module: name})
		}
	}
	return name, err
}

// Science runs an experiment, which always risks a failure.
func (s *Station) Science() (string, error) {
	return s.BreakSomething()
}

// Repairable reports whether Repair currently has anything to offer.
func (s *Station) Repairable() bool {
	return !s.disabled && s.activeModules < s.totalModules
}

// RepairCandidates lists the labels of the categories Repair would offer. An
// empty list means repair is unavailable this turn.
func (s *Station) RepairCandidates() []string {
	if s.disabled {
		return nil
	}
	var out []string
	for _, c := range s.categories {
		if c.Repairable() {
			out = append(out, c.RepairDisplay())
		}
	}
	return out
}

// Repair walks ch down the tree (category, section, module) and activates the
// chosen module. With nothing repairable it returns ErrNoRepairableCandidates
// and changes nothing.
func (s *Station) Repair(ch Chooser) (string, error) {
	if s.disabled {
		return "", ErrStationDisabled
	}

	labels := make([]string, len(s.categories))
	for i, c := range s.categories {
		labels[i] = c.RepairDisplay()
	}

	chosen, err := chooseAmong(ch, "Select category to repair:", s.categories, labels)
	if err != nil {
		return "", err
	}
	name, err := chosen.Repair(ch)
	s.onChildMutated()
	if err != nil {
		return "", err
	}

	category := chosen.Kind().String()
	s.log.Debug(context.Background(), "module repaired",
		logging.String("category", category),
		logging.String("module", name),
	)
	s.emit(Event{Type: EventModuleRepaired, Category: category, Module: name})
	return name, nil
}

// PowerDown deactivates every module on the station, which shuts it down.
func (s *Station) PowerDown() {
	for _, c := range s.categories {
		c.PowerDown()
	}
	s.onChildMutated()
	s.emit(Event{Type: EventPowerDown})
}

// Status renders the full tree.
func (s *Station) Status(indent int) string {
	return s.StatusView(indent, true, true)
}

// StatusView renders the station block. showFields toggles the station's own
// fields and showInner toggles each category's nested block.
func (s *Station) StatusView(indent int, showFields, showInner bool) string {
	fields := []field{
		{key: ":name", value: quoted(s.name)},
		{key: ":version", value: fmt.Sprint(s.version)},
		{key: ":mission-day", value: fmt.Sprint(s.missionDay)},
		{key: ":installed-sections", value: fmt.Sprint(s.installedSections)},
		{key: ":total-modules", value: fmt.Sprint(s.totalModules)},
		{key: ":active-modules", value: fmt.Sprint(s.activeModules)},
	}
	if s.orbit != nil {
		alt := AltitudeKm(s.orbit.PositionAt(s.SimTime()))
		fields = append(fields, field{key: ":altitude-km", value: fmt.Sprintf("%.1f", alt)})
	}

	var inner []string
	if showInner {
		for _, c := range s.categories {
			inner = append(inner, c.Status(indent+2))
		}
	}
	return block{
		header:     "station",
		showFields: showFields,
		fields:     fields,
		showInner:  showInner,
		innerKey:   ":categories",
		inner:      inner,
	}.render(indent)
}
