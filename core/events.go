package core

import "fmt"

// EventType indicates what happened to the station.
type EventType int

const (
	EventCommissioned EventType = iota
	EventNewDay
	EventModuleFailure
	EventNoEffect
	EventModuleRepaired
	EventPowerDown
	EventEndTransmission
)

func (t EventType) String() string {
	switch t {
	case EventCommissioned:
		return "commissioned"
	case EventNewDay:
		return "new-day"
	case EventModuleFailure:
		return "module-failure"
	case EventNoEffect:
		return "no-effect"
	case EventModuleRepaired:
		return "module-repaired"
	case EventPowerDown:
		return "power-down"
	case EventEndTransmission:
		return "end-transmission"
	default:
		return fmt.Sprintf("event(%d)", int(t))
	}
}

// Event is emitted to subscribers after every station mutation.
type Event struct {
	Type       EventType
	MissionDay uint16
	// Category is the configuration key of the category involved, if any.
	Category string
	// Module is the name of the module that failed or was repaired.
	Module string
	Counts StationCounts
}

// StationCounts is a snapshot of the station's aggregate counters.
type StationCounts struct {
	MissionDay        uint16
	TotalSections     int
	InstalledSections int
	TotalModules      int
	ActiveModules     int
	Disabled          bool
}

// StationMetricsRecorder receives the station's counters after every mutation.
type StationMetricsRecorder interface {
	SetStationCounts(StationCounts)
}

type subscription struct {
	id int
	fn func(Event)
}
