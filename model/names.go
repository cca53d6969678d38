package model

// StationNames is the pool a station's name is drawn from.
var StationNames = []string{
	// manga / cyberpunk
	"Akira", "Avalon", "Babylon", "Chrysalis", "Eden", "Ronin",
	// U.S. states
	"Alabama", "Alaska", "Arkansas", "California", "Carolina", "Colorado",
	"Connecticut", "Dakota", "Delaware", "Florida", "Georgia", "Hawaii",
	"Hampshire", "Idaho", "Illinois", "Indiana", "Iowa", "Jersey", "Kansas",
	"Kentucky", "Louisiana", "Maine", "Maryland", "Massachusetts", "Michigan",
	"Minnesota", "Mississippi", "Missouri", "Montana", "Nebraska", "Nevada",
	"Ohio", "Oklahoma", "Oregon", "Pennsylvania", "Tennessee", "Texas", "Utah",
	"Vermont", "Virginia", "Washington", "Wisconsin", "Wyoming",
	// cities
	"York",
	// greek mythology
	"Aether", "Artemis", "Athena", "Atlas", "Daedalus", "Helios", "Hemera",
	"Hermes", "Orion", "Talos", "Titan", "Uranus",
	// other
	"Eisenberg",
	// adjectives
	"Dauntless", "Intrepid", "Reliant", "Resolute", "Serene", "Valiant",
	// Shakespeare
	"Aaron", "Alice", "Angus", "Ariel", "Beadle", "Bishop", "Caius", "Ceres",
	"Corin", "Diana", "Duncan", "Helena", "Julia", "Marcus", "Miranda",
	"Oliver", "Percy", "Provost", "Robin", "Sentinel", "Sentry", "Titus", "Viola",
	// astronomy
	"Nova", "Pulsar",
	// astronomers
	"Copernicus", "Galilei", "Kepler", "Newton", "Sagan", "Tyson",
	// computer scientists
	"Babbage", "Backus", "Conway", "Dijkstra", "Hamilton", "Hopper",
	"Kernighan", "Knuth", "Liskov", "Rivest", "Romero", "Rossum", "Shamir",
	// authors
	"Asimov", "Atwood", "Bachman", "Bradbury", "Clarke", "Herbert", "Huxley", "Shelley",
}
