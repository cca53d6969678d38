package observability

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/signalsfoundry/station-journal/core"
)

// StationCollector bundles Prometheus metrics for one station: gauges mirror
// the station counters and counters tally station events by category.
type StationCollector struct {
	gatherer prometheus.Gatherer

	MissionDay        prometheus.Gauge
	SectionsTotal     prometheus.Gauge
	SectionsInstalled prometheus.Gauge
	ModulesTotal      prometheus.Gauge
	ModulesActive     prometheus.Gauge
	Disabled          prometheus.Gauge

	Failures       *prometheus.CounterVec
	Repairs        *prometheus.CounterVec
	MissedFailures *prometheus.CounterVec
}

var _ core.StationMetricsRecorder = (*StationCollector)(nil)

// NewStationCollector registers station metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewStationCollector(reg prometheus.Registerer) (*StationCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &StationCollector{gatherer: gatherer}
	gauges := []struct {
		dst  *prometheus.Gauge
		name string
		help string
	}{
		{&c.MissionDay, "station_mission_day", "Current mission day."},
		{&c.SectionsTotal, "station_sections", "Number of catalogued sections, installed or not."},
		{&c.SectionsInstalled, "station_sections_installed", "Number of installed sections."},
		{&c.ModulesTotal, "station_modules", "Number of modules in installed sections."},
		{&c.ModulesActive, "station_modules_active", "Number of currently active modules."},
		{&c.Disabled, "station_disabled", "1 once the station has shut down, 0 otherwise."},
	}
	for _, g := range gauges {
		gauge, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
			Name: g.name,
			Help: g.help,
		}), g.name)
		if err != nil {
			return nil, err
		}
		*g.dst = gauge
	}

	counters := []struct {
		dst  **prometheus.CounterVec
		name string
		help string
	}{
		{&c.Failures, "station_module_failures_total", "Modules deactivated by failures, labeled by category."},
		{&c.Repairs, "station_module_repairs_total", "Modules reactivated by repairs, labeled by category."},
		{&c.MissedFailures, "station_failures_missed_total", "Failures that hit an already broken module, labeled by category."},
	}
	for _, cv := range counters {
		vec, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: cv.name,
			Help: cv.help,
		}, []string{"category"}), cv.name)
		if err != nil {
			return nil, err
		}
		*cv.dst = vec
	}

	return c, nil
}

// SetStationCounts satisfies core.StationMetricsRecorder so the station can
// drive gauge values directly from its mutators.
func (c *StationCollector) SetStationCounts(counts core.StationCounts) {
	if c == nil {
		return
	}
	c.MissionDay.Set(float64(counts.MissionDay))
	c.SectionsTotal.Set(float64(counts.TotalSections))
	c.SectionsInstalled.Set(float64(counts.InstalledSections))
	c.ModulesTotal.Set(float64(counts.TotalModules))
	c.ModulesActive.Set(float64(counts.ActiveModules))
	disabled := 0.0
	if counts.Disabled {
		disabled = 1
	}
	c.Disabled.Set(disabled)
}

// ObserveEvent updates the event counters. Subscribe it to a station with
// station.Subscribe(collector.ObserveEvent).
func (c *StationCollector) ObserveEvent(ev core.Event) {
	if c == nil {
		return
	}
	switch ev.Type {
	case core.EventModuleFailure:
		c.Failures.WithLabelValues(ev.Category).Inc()
	case core.EventModuleRepaired:
		c.Repairs.WithLabelValues(ev.Category).Inc()
	case core.EventNoEffect:
		c.MissedFailures.WithLabelValues(ev.Category).Inc()
	case core.EventNewDay:
		c.MissionDay.Set(float64(ev.MissionDay))
	}
}

// WriteMetrics writes every gathered metric family in the Prometheus text
// exposition format.
func (c *StationCollector) WriteMetrics(w io.Writer) error {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return WriteText(w, gatherer)
}

// WriteText gathers g and writes it in the Prometheus text format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// DumpFile writes the text exposition to path, or to stdout when path is "-".
func DumpFile(path string, g prometheus.Gatherer) (err error) {
	if path == "" {
		return errors.New("metrics output path is empty")
	}
	if path == "-" {
		return WriteText(os.Stdout, g)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create metrics file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return WriteText(f, g)
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
