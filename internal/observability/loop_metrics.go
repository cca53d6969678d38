package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LoopCollector exposes game-loop metrics: how long each day took, which
// menu entries were chosen and how many journal entries were written.
type LoopCollector struct {
	gatherer prometheus.Gatherer

	DayDuration        *prometheus.HistogramVec
	MenuChoices        *prometheus.CounterVec
	JournalEntries     prometheus.Counter
	RepairsUnavailable prometheus.Counter
}

// NewLoopCollector registers game-loop metrics against the provided registerer.
func NewLoopCollector(reg prometheus.Registerer) (*LoopCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	dayDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "station_day_duration_seconds",
		Help:    "Wall-clock duration of one simulated day, labeled by run mode.",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 5, 15, 60, 300},
	}, []string{"mode"})
	dayDuration, err := registerHistogramVec(reg, dayDuration, "station_day_duration_seconds")
	if err != nil {
		return nil, err
	}

	choices := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "station_menu_choices_total",
		Help: "Menu selections, labeled by menu and choice.",
	}, []string{"menu", "choice"})
	choices, err = registerCounterVec(reg, choices, "station_menu_choices_total")
	if err != nil {
		return nil, err
	}

	entries, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "station_journal_entries_total",
		Help: "Crew log entries written to the journal.",
	}), "station_journal_entries_total")
	if err != nil {
		return nil, err
	}

	unavailable, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "station_repairs_unavailable_total",
		Help: "Repair requests made while nothing was repairable.",
	}), "station_repairs_unavailable_total")
	if err != nil {
		return nil, err
	}

	return &LoopCollector{
		gatherer:           gatherer,
		DayDuration:        dayDuration,
		MenuChoices:        choices,
		JournalEntries:     entries,
		RepairsUnavailable: unavailable,
	}, nil
}

// Gatherer returns the Prometheus gatherer associated with the collector.
func (c *LoopCollector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// ObserveDay records the duration of one day.
func (c *LoopCollector) ObserveDay(mode string, d time.Duration) {
	if c == nil || c.DayDuration == nil {
		return
	}
	c.DayDuration.WithLabelValues(mode).Observe(d.Seconds())
}

// IncMenuChoice counts one selection from a menu.
func (c *LoopCollector) IncMenuChoice(menu, choice string) {
	if c == nil || c.MenuChoices == nil {
		return
	}
	c.MenuChoices.WithLabelValues(menu, choice).Inc()
}

// IncJournalEntries counts one journal entry.
func (c *LoopCollector) IncJournalEntries() {
	if c == nil || c.JournalEntries == nil {
		return
	}
	c.JournalEntries.Inc()
}

// IncRepairsUnavailable counts a repair request with no candidates.
func (c *LoopCollector) IncRepairsUnavailable() {
	if c == nil || c.RepairsUnavailable == nil {
		return
	}
	c.RepairsUnavailable.Inc()
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}
