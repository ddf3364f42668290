package config

import (
	_ "embed"
)

//go:embed defaults/rails.yaml
var defaultRailsYAML []byte

// DefaultRailsConfig returns the default rails configuration.
func DefaultRailsConfig() RailsConfig {
	return RailsConfig{
		Grid: GridConfig{
			Rows:     16,
			Cols:     16,
			CellSize: 1.0,
		},
		Terrain: TerrainConfig{
			MinMountains: 1,
			MaxMountains: 5,
			MinRadius:    3,
			MaxRadius:    6,
			CoreRatio:    0.6,
		},
		Economy: EconomyConfig{
			InitialPoints:  15,
			TrainCost:      15,
			WagonCost:      5,
			DeliveryReward: 1,
			CrashBase:      10,
			CrashPerWagon:  5,
		},
		Trains: TrainsConfig{
			Speed:         2.0,
			DwellSeconds:  0.5,
			MaxWagons:     5,
			SeatsPerWagon: 6,
			SpawnTrail:    20,
			BounceTrail:   30,
			MaxTrail:      500,
		},
		Stations: StationsConfig{
			Capacity:          10,
			FullnessTolerance: 30,
			StationInterval:   30,
			PassengerInterval: 8,
			Spacing:           2.0,
			PlacementAttempts: 100,
			Initial:           2,
		},
	}
}
