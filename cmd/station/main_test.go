package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/signalsfoundry/station-journal/internal/prompt"
)

func testViper(t *testing.T, values map[string]any) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.Set("log.level", "error")
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestRunConfigPrintsTOML(t *testing.T) {
	v := testViper(t, map[string]any{"journal.header": "CAPTAIN LOG"})

	var out bytes.Buffer
	if err := runConfig(v, &out); err != nil {
		t.Fatalf("runConfig error = %v", err)
	}
	for _, want := range []string{"[station]", "[autopilot]", "[journal]", "CAPTAIN LOG"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("config output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunConfigRejectsInvalidMode(t *testing.T) {
	v := testViper(t, map[string]any{"autopilot.mode": "warp"})
	if err := runConfig(v, &bytes.Buffer{}); err == nil {
		t.Fatalf("runConfig accepted autopilot.mode warp")
	}
}

func TestRunStatusPrintsFullTree(t *testing.T) {
	v := testViper(t, map[string]any{
		"station.name":    "Akira",
		"station.version": 3,
		"station.seed":    uint64(42),
	})

	var out bytes.Buffer
	if err := runStatus(context.Background(), v, &out); err != nil {
		t.Fatalf("runStatus error = %v", err)
	}
	got := out.String()
	if !strings.HasPrefix(got, "Station \"Akira\" v3\n(station\n") {
		t.Fatalf("status output starts with %q", got[:min(len(got), 40)])
	}
	if n := strings.Count(got, "(category\n"); n != 6 {
		t.Fatalf("status output has %d category blocks, want 6", n)
	}
	if !strings.Contains(got, ":altitude-km") {
		t.Fatalf("status output missing altitude:\n%s", got)
	}
}

func TestRunStatusIsDeterministicForSeed(t *testing.T) {
	render := func() string {
		v := testViper(t, map[string]any{"station.seed": uint64(9)})
		var out bytes.Buffer
		if err := runStatus(context.Background(), v, &out); err != nil {
			t.Fatalf("runStatus error = %v", err)
		}
		return out.String()
	}
	if a, b := render(), render(); a != b {
		t.Fatalf("same seed rendered different stations:\n%s\n---\n%s", a, b)
	}
}

func TestRunPlayPowerDownPrintsJournal(t *testing.T) {
	metricsPath := filepath.Join(t.TempDir(), "station.prom")
	v := testViper(t, map[string]any{
		"station.seed":   uint64(3),
		"metrics.output": metricsPath,
	})
	p := &prompt.Scripted{
		Texts:   []string{"first entry", "second entry"},
		Choices: []string{"STATUS", "POWERDOWN"},
	}

	var out bytes.Buffer
	if err := runPlay(context.Background(), v, &out, p); err != nil {
		t.Fatalf("runPlay error = %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"(journal-entry-status 'saved)",
		"(end-transmission)",
		"STATION LOG",
		"first entry",
		"second entry",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("play output missing %q:\n%s", want, got)
		}
	}
	if strings.Count(got, "(end-transmission)") != 1 {
		t.Fatalf("end-transmission sent more than once:\n%s", got)
	}

	data, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	for _, want := range []string{"station_disabled 1", "station_menu_choices_total"} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("metrics missing %q:\n%s", want, data)
		}
	}
}

func TestRunPlayAbortEndsWithoutError(t *testing.T) {
	v := testViper(t, map[string]any{"station.seed": uint64(5)})

	var out bytes.Buffer
	if err := runPlay(context.Background(), v, &out, &prompt.Scripted{}); err != nil {
		t.Fatalf("runPlay error = %v, want nil on abort", err)
	}
	if !strings.Contains(out.String(), "STATION LOG") {
		t.Fatalf("journal not printed after abort:\n%s", out.String())
	}
}

func TestRunAutopilotStopsAfterDays(t *testing.T) {
	v := testViper(t, map[string]any{
		"station.seed":   uint64(11),
		"autopilot.days": 3,
		"autopilot.mode": "accelerated",
	})

	var out bytes.Buffer
	if err := runAutopilot(context.Background(), v, &out); err != nil {
		t.Fatalf("runAutopilot error = %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "(mission-day 1)") {
		t.Fatalf("autopilot never started a day:\n%s", got)
	}
	if strings.Contains(got, "(mission-day 4)") {
		t.Fatalf("autopilot ran past its day limit:\n%s", got)
	}
	if !strings.Contains(got, "Day 1: ") {
		t.Fatalf("autopilot log entry missing from journal:\n%s", got)
	}
}

func TestRunAutopilotRejectsNegativeTick(t *testing.T) {
	v := testViper(t, map[string]any{"autopilot.tick": "-1s"})
	if err := runAutopilot(context.Background(), v, &bytes.Buffer{}); err == nil {
		t.Fatalf("runAutopilot accepted a negative tick")
	}
}
