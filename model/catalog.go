package model

import "fmt"

// CategoryKind identifies one of the station's fixed categories. The numeric
// order is the station's dispatch order.
type CategoryKind int

const (
	CategoryComms CategoryKind = iota
	CategoryCrew
	CategoryManeuver
	CategoryMisc
	CategoryPower
	CategoryResearch
)

// CategoryKinds lists every category in dispatch order.
var CategoryKinds = []CategoryKind{
	CategoryComms,
	CategoryCrew,
	CategoryManeuver,
	CategoryMisc,
	CategoryPower,
	CategoryResearch,
}

// String returns the lower-case key used in configuration and metric labels.
func (k CategoryKind) String() string {
	switch k {
	case CategoryComms:
		return "comms"
	case CategoryCrew:
		return "crew"
	case CategoryManeuver:
		return "maneuver"
	case CategoryMisc:
		return "misc"
	case CategoryPower:
		return "power"
	case CategoryResearch:
		return "research"
	default:
		return fmt.Sprintf("category(%d)", int(k))
	}
}

// ParseCategoryKind maps a configuration key back to its kind.
func ParseCategoryKind(s string) (CategoryKind, error) {
	for _, k := range CategoryKinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// SectionSpec describes a section type: its display name and the modules it
// owns, in dispatch order.
type SectionSpec struct {
	Name    string
	Modules []string
}

// CategorySpec describes a category type and its sections in dispatch order.
type CategorySpec struct {
	Kind     CategoryKind
	Name     string
	Sections []SectionSpec
}

// Module names shared across several section types.
const (
	ModuleAirlock               = "Airlock"
	ModuleDockingSystem         = "Docking System"
	ModuleMainframe             = "Mainframe"
	ModuleReactionControlSystem = "Reaction Control System"
	ModuleSteamTurbineGenerator = "Steam Turbine Generator"
	ModuleTemperatureControl    = "Temperature Control"
)

var catalog = map[CategoryKind]CategorySpec{
	CategoryComms: {
		Kind: CategoryComms,
		Name: "Comms Category",
		Sections: []SectionSpec{
			{Name: "Antenna Section", Modules: []string{"Antenna"}},
			{Name: "Tracking Section", Modules: []string{"Tracking"}},
			{Name: "Transponder Section", Modules: []string{"Transponder"}},
		},
	},
	CategoryCrew: {
		Kind: CategoryCrew,
		Name: "Crew Category",
		Sections: []SectionSpec{
			{Name: "Crew Module Section", Modules: []string{
				ModuleAirlock,
				"Command Module",
				"Galley",
				"Life Support",
				"Sleeping Pods",
				"Space Suits",
				ModuleTemperatureControl,
				"Water Reclamation",
			}},
		},
	},
	CategoryManeuver: {
		Kind: CategoryManeuver,
		Name: "Maneuver Category",
		Sections: []SectionSpec{
			{Name: "Basic Maneuver Section", Modules: []string{ModuleReactionControlSystem}},
			{Name: "Maneuver With Docking Section", Modules: []string{ModuleReactionControlSystem, ModuleDockingSystem}},
		},
	},
	CategoryMisc: {
		Kind: CategoryMisc,
		Name: "Misc Category",
		Sections: []SectionSpec{
			{Name: "Cargo Bay Section", Modules: []string{ModuleAirlock, "Cargo Bay", ModuleDockingSystem}},
		},
	},
	CategoryPower: {
		Kind: CategoryPower,
		Name: "Power Category",
		Sections: []SectionSpec{
			{Name: "Fossil Power Section", Modules: []string{"Combustion Turbine Generator", "Fossil Fuel Storage"}},
			{Name: "Fusion Power Section", Modules: []string{"Fusion Reactor", ModuleSteamTurbineGenerator, "Fusion Component Storage"}},
			{Name: "Nuclear Power Section", Modules: []string{"Nuclear Fuel Storage", "Nuclear Reactor", ModuleSteamTurbineGenerator, "Nuclear Waste Storage"}},
			{Name: "Radiation Power Section", Modules: []string{"Radiation Mirrors"}},
			{Name: "Solar Power Section", Modules: []string{"Solar Panels"}},
		},
	},
	CategoryResearch: {
		Kind: CategoryResearch,
		Name: "Research Category",
		Sections: []SectionSpec{
			{Name: "Astronomy Section", Modules: []string{"Astronomy Lab", ModuleMainframe}},
			{Name: "Greenhouse Section", Modules: []string{"Greenhouse", ModuleMainframe, ModuleAirlock, ModuleTemperatureControl}},
			{Name: "Weather Observation Section", Modules: []string{"Weather Observation", ModuleMainframe}},
		},
	},
}

// Catalog returns the fixed definition of a category. The returned spec
// shares no slices with the package-level table.
func Catalog(kind CategoryKind) CategorySpec {
	spec, ok := catalog[kind]
	if !ok {
		return CategorySpec{Kind: kind, Name: kind.String()}
	}
	sections := make([]SectionSpec, len(spec.Sections))
	for i, s := range spec.Sections {
		sections[i] = SectionSpec{Name: s.Name, Modules: append([]string(nil), s.Modules...)}
	}
	spec.Sections = sections
	return spec
}

// InstallBounds caps how many sections of a category get installed.
// Neither field is validated against the category's section count.
type InstallBounds struct {
	Min int `mapstructure:"min" toml:"min"`
	Max int `mapstructure:"max" toml:"max"`
}

// UnlimitedSections is the default upper bound; it exceeds every category's
// section count.
const UnlimitedSections = 100

// DefaultBounds returns the station-wide installation defaults: at least one
// comms, maneuver and power section, everything else optional.
func DefaultBounds() map[CategoryKind]InstallBounds {
	return map[CategoryKind]InstallBounds{
		CategoryComms:    {Min: 1, Max: UnlimitedSections},
		CategoryCrew:     {Min: 0, Max: UnlimitedSections},
		CategoryManeuver: {Min: 1, Max: UnlimitedSections},
		CategoryMisc:     {Min: 0, Max: UnlimitedSections},
		CategoryPower:    {Min: 1, Max: UnlimitedSections},
		CategoryResearch: {Min: 0, Max: UnlimitedSections},
	}
}
