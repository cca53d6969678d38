package timectrl

import (
	"context"
	"math"
	"sync"
	"time"
)

// Day is the simulated length of one mission day.
const Day = 24 * time.Hour

// SimClock gives read access to simulation time without depending on the
// concrete controller.
type SimClock interface {
	// Now returns the current simulation time.
	Now() time.Time
	// MissionDay returns the number of days advanced so far.
	MissionDay() uint16
}

// Mode describes how the DayController paces mission days.
type Mode int

const (
	// RealTime waits Tick of wall-clock time between days.
	RealTime Mode = iota
	// Accelerated advances as quickly as the listeners return.
	Accelerated
)

// String returns the configuration name of the mode.
func (m Mode) String() string {
	if m == Accelerated {
		return "accelerated"
	}
	return "realtime"
}

// ParseMode maps a configuration value to a Mode. Unknown values fall back
// to RealTime.
func ParseMode(s string) Mode {
	if s == "accelerated" {
		return Accelerated
	}
	return RealTime
}

// Listener is invoked once per advanced day with the new day number and its
// simulation time.
type Listener func(day uint16, simTime time.Time)

// DayController advances mission days and notifies registered listeners.
// It implements SimClock.
type DayController struct {
	mu        sync.RWMutex
	StartTime time.Time
	Tick      time.Duration
	Mode      Mode

	day       uint16
	listeners []Listener
}

// NewDayController constructs a controller positioned at day 0.
func NewDayController(start time.Time, tick time.Duration, mode Mode) *DayController {
	return &DayController{
		StartTime: start,
		Tick:      tick,
		Mode:      mode,
	}
}

// Now returns the simulation time of the current day.
func (dc *DayController) Now() time.Time {
	dc.mu.RLock()
	defer dc.mu.RUnlock()
	return dc.StartTime.Add(time.Duration(dc.day) * Day)
}

// MissionDay returns the current day.
func (dc *DayController) MissionDay() uint16 {
	dc.mu.RLock()
	defer dc.mu.RUnlock()
	return dc.day
}

// AddListener registers a callback invoked on every advanced day.
func (dc *DayController) AddListener(fn Listener) {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	dc.listeners = append(dc.listeners, fn)
}

// Start advances up to maxDays days in a separate goroutine; maxDays of zero
// runs until ctx is cancelled. It returns a channel that is closed when the
// controller finishes.
func (dc *DayController) Start(ctx context.Context, maxDays int) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)

		var tick <-chan time.Time
		if dc.Mode == RealTime && dc.Tick > 0 {
			ticker := time.NewTicker(dc.Tick)
			defer ticker.Stop()
			tick = ticker.C
		}

		for advanced := 0; maxDays <= 0 || advanced < maxDays; advanced++ {
			if ctx.Err() != nil {
				return
			}
			if tick != nil {
				select {
				case <-ctx.Done():
					return
				case <-tick:
				}
			}
			if !dc.step() {
				return
			}
		}
	}()
	return done
}

// step advances one day and calls the listeners. It reports false once the
// day counter cannot advance any further.
func (dc *DayController) step() bool {
	dc.mu.Lock()
	if dc.day == math.MaxUint16 {
		dc.mu.Unlock()
		return false
	}
	dc.day++
	day := dc.day
	now := dc.StartTime.Add(time.Duration(day) * Day)
	listeners := append([]Listener(nil), dc.listeners...)
	dc.mu.Unlock()

	for _, fn := range listeners {
		fn(day, now)
	}
	return true
}
