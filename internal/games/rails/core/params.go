package core

// TerrainParams controls procedural map generation.
type TerrainParams struct {
	MinMountains int     // Minimum number of mountain blobs
	MaxMountains int     // Maximum number of mountain blobs (inclusive)
	MinRadius    int     // Minimum blob radius in cells
	MaxRadius    int     // Maximum blob radius in cells (inclusive)
	CoreRatio    float64 // Fraction of the radius that is always mountain
}

// Params holds every tunable of a session.
type Params struct {
	Rows     int
	Cols     int
	CellSize float64

	Terrain TerrainParams

	InitialPoints  int
	TrainCost      int
	WagonCost      int
	DeliveryReward int
	CrashBase      int
	CrashPerWagon  int

	TrainSpeed    float64 // Cells per second
	DwellSeconds  float64 // Time per load/unload action while docked
	MaxWagons     int
	SeatsPerWagon int
	SpawnTrail    int // Trail length after spawning
	BounceTrail   int // Trail length after a dead-end reversal
	MaxTrail      int

	StationCapacity   int     // Waiting passengers at which a station is full
	FullnessTolerance float64 // Seconds a station may stay full
	StationInterval   float64 // Seconds between station spawn attempts
	PassengerInterval float64 // Seconds between passenger spawn rounds
	StationSpacing    float64 // Minimum distance between stations, in cells
	PlacementAttempts int
	InitialStations   int
}

// DefaultParams returns the standard game tuning.
func DefaultParams() Params {
	return Params{
		Rows:     16,
		Cols:     16,
		CellSize: 1.0,
		Terrain: TerrainParams{
			MinMountains: 1,
			MaxMountains: 5,
			MinRadius:    3,
			MaxRadius:    6,
			CoreRatio:    0.6,
		},
		InitialPoints:     15,
		TrainCost:         15,
		WagonCost:         5,
		DeliveryReward:    1,
		CrashBase:         10,
		CrashPerWagon:     5,
		TrainSpeed:        2.0,
		DwellSeconds:      0.5,
		MaxWagons:         5,
		SeatsPerWagon:     6,
		SpawnTrail:        20,
		BounceTrail:       30,
		MaxTrail:          500,
		StationCapacity:   10,
		FullnessTolerance: 30,
		StationInterval:   30,
		PassengerInterval: 8,
		StationSpacing:    2.0,
		PlacementAttempts: 100,
		InitialStations:   2,
	}
}
