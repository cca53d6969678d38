package core

import (
	"testing"
	"time"

	"github.com/signalsfoundry/station-journal/model"
)

func TestSGP4OrbitAltitude(t *testing.T) {
	def := model.DefaultOrbit()
	orbit := NewSGP4Orbit(def.TLELine1, def.TLELine2)

	for _, offset := range []time.Duration{0, 90 * time.Minute, 24 * time.Hour} {
		alt := AltitudeKm(orbit.PositionAt(def.Epoch.Add(offset)))
		if alt < 300 || alt > 550 {
			t.Fatalf("altitude at +%s = %.1f km, want low Earth orbit", offset, alt)
		}
	}
}

func TestAltitudeKm(t *testing.T) {
	if got := AltitudeKm(model.Position{X: EarthRadiusKm + 400}); got != 400 {
		t.Fatalf("AltitudeKm = %v, want 400", got)
	}
}
