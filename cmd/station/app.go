package main

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/signalsfoundry/station-journal/core"
	"github.com/signalsfoundry/station-journal/internal/config"
	"github.com/signalsfoundry/station-journal/internal/logging"
	"github.com/signalsfoundry/station-journal/internal/observability"
	"github.com/signalsfoundry/station-journal/internal/prompt"
	"github.com/signalsfoundry/station-journal/internal/sim"
	"github.com/signalsfoundry/station-journal/journal"
	"github.com/signalsfoundry/station-journal/model"
)

// app holds everything one run needs and tears it down in close.
type app struct {
	cfg      config.Config
	log      logging.Logger
	registry *prometheus.Registry
	station  *core.Station
	journal  *journal.Journal
	sim      *sim.Simulation

	shutdownTracing func(context.Context) error
}

// newApp builds the station, its journal, metrics and tracing from cfg.
// Transmissions and the journal are written to out.
func newApp(ctx context.Context, cfg config.Config, log logging.Logger, out io.Writer, p prompt.Prompter) (*app, error) {
	if log == nil {
		log = logging.Noop()
	}

	shutdown, err := observability.InitTracing(ctx, cfg.Tracing.Observability(), log)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	reg := prometheus.NewRegistry()
	stationMetrics, err := observability.NewStationCollector(reg)
	if err != nil {
		return nil, fmt.Errorf("station metrics: %w", err)
	}
	loopMetrics, err := observability.NewLoopCollector(reg)
	if err != nil {
		return nil, fmt.Errorf("loop metrics: %w", err)
	}

	st := newStation(cfg, log, out, core.WithMetricsRecorder(stationMetrics))
	st.Subscribe(stationMetrics.ObserveEvent)

	j := journal.New(cfg.Journal.Header, st.NameDisplay())
	a := &app{
		cfg:             cfg,
		log:             log,
		registry:        reg,
		station:         st,
		journal:         j,
		shutdownTracing: shutdown,
	}
	a.sim = sim.New(st, j,
		sim.WithPrompter(p),
		sim.WithTransmitter(out),
		sim.WithLogger(log),
		sim.WithLoopMetrics(loopMetrics),
	)
	return a, nil
}

// newStation builds a station from the station section of cfg.
func newStation(cfg config.Config, log logging.Logger, out io.Writer, extra ...core.StationOption) *core.Station {
	orbit := model.DefaultOrbit()
	opts := []core.StationOption{
		core.WithRand(core.NewRand(cfg.Station.Seed)),
		core.WithBounds(cfg.Station.InstallBounds()),
		core.WithName(cfg.Station.Name),
		core.WithTransmitter(out),
		core.WithLogger(log),
		core.WithOrbit(core.NewSGP4Orbit(orbit.TLELine1, orbit.TLELine2), orbit.Epoch),
	}
	if v := cfg.Station.Version; v >= 0 && v <= math.MaxUint8 {
		opts = append(opts, core.WithVersion(uint8(v)))
	}
	return core.NewStation(append(opts, extra...)...)
}

// close dumps metrics, flushes spans and syncs the logger.
func (a *app) close(ctx context.Context) error {
	a.sim.Close()

	var dumpErr error
	if a.cfg.Metrics.Output != "" {
		if err := observability.DumpFile(a.cfg.Metrics.Output, a.registry); err != nil {
			dumpErr = fmt.Errorf("dump metrics: %w", err)
			a.log.Error(ctx, "metrics dump failed", logging.Err(err))
		}
	}
	observability.ShutdownWithTimeout(ctx, a.shutdownTracing, a.log)
	_ = logging.Sync(a.log)
	return dumpErr
}
