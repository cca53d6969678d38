package core

import (
	"math"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/signalsfoundry/station-journal/model"
)

// EarthRadiusKm is the mean Earth radius used to derive altitude.
const EarthRadiusKm = 6371.0

// Orbit reports where the station is at a given simulation time.
type Orbit interface {
	PositionAt(simTime time.Time) model.Position
}

// SGP4Orbit propagates a TLE with SGP4.
type SGP4Orbit struct {
	sat satellite.Satellite
}

// NewSGP4Orbit constructs an orbit from TLE lines.
func NewSGP4Orbit(line1, line2 string) *SGP4Orbit {
	return &SGP4Orbit{sat: satellite.TLEToSat(line1, line2, satellite.GravityWGS72)}
}

// PositionAt propagates the satellite to simTime and returns its ECEF position.
func (o *SGP4Orbit) PositionAt(simTime time.Time) model.Position {
	simTime = simTime.UTC()
	year, month, day := simTime.Date()
	hour, min, sec := simTime.Clock()

	posECI, _ := satellite.Propagate(o.sat, year, int(month), day, hour, min, sec)
	jd := satellite.JDay(year, int(month), day, hour, min, sec)
	gmst := satellite.ThetaG_JD(jd)
	posECEF := satellite.ECIToECEF(posECI, gmst)

	return model.Position{X: posECEF.X, Y: posECEF.Y, Z: posECEF.Z}
}

// AltitudeKm approximates altitude above a spherical Earth.
func AltitudeKm(p model.Position) float64 {
	return math.Sqrt(p.X*p.X+p.Y*p.Y+p.Z*p.Z) - EarthRadiusKm
}
