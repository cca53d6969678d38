package model

import "time"

// Position represents a position in ECEF kilometres.
type Position struct {
	X float64
	Y float64
	Z float64
}

// OrbitDefinition describes the station's orbit as a two-line element set
// and the wall-clock instant mission day 0 corresponds to.
type OrbitDefinition struct {
	TLELine1 string
	TLELine2 string
	Epoch    time.Time
}

// DefaultOrbit is a low Earth orbit close to the ISS.
func DefaultOrbit() OrbitDefinition {
	return OrbitDefinition{
		TLELine1: "1 25544U 98067A   21275.59097222  .00000204  00000-0  10270-4 0  9990",
		TLELine2: "2 25544  51.6459 115.9059 0001817  61.3028  35.9198 15.49370953257760",
		Epoch:    time.Date(2021, time.October, 2, 14, 11, 0, 0, time.UTC),
	}
}
