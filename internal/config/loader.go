package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-rails/internal/games/rails/core"
)

const railsFile = "rails.yaml"

// LoadRails loads the rails configuration.
// Search order: customPath -> ~/.rails/configs/rails.yaml -> ./configs/rails.yaml -> embedded default
// Values missing from a file keep their defaults.
func LoadRails(customPath string) (RailsConfig, error) {
	cfg := DefaultRailsConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath(railsFile); userCfgPath != "" {
		if loaded, ok := tryLoad(userCfgPath, cfg); ok {
			return loaded, nil
		}
	}

	// Try local configs directory
	if loaded, ok := tryLoad(filepath.Join("configs", railsFile), cfg); ok {
		return loaded, nil
	}

	// Use embedded default YAML
	embedded := cfg
	if err := yaml.Unmarshal(defaultRailsYAML, &embedded); err != nil {
		return DefaultRailsConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// tryLoad reads an optional config file. Unreadable or invalid files are
// skipped so the next source in the search order can be used.
func tryLoad(path string, base RailsConfig) (RailsConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, false
	}
	if err := yaml.Unmarshal(data, &base); err != nil {
		return base, false
	}
	if base.Validate() != nil {
		return base, false
	}
	return base, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rails", "configs", filename)
}

// ApplyRailsPreset modifies the config based on a difficulty preset.
func ApplyRailsPreset(cfg *RailsConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Stations.FullnessTolerance = 45
		cfg.Stations.PassengerInterval = 10
	case DifficultyHard:
		cfg.Stations.FullnessTolerance = 20
		cfg.Stations.PassengerInterval = 6
	}
}

// Validate reports the first setting that would make the game unplayable.
func (c RailsConfig) Validate() error {
	var errs []error
	if c.Grid.Rows < 3 || c.Grid.Cols < 3 {
		errs = append(errs, fmt.Errorf("grid must be at least 3x3, got %dx%d", c.Grid.Rows, c.Grid.Cols))
	}
	if c.Grid.CellSize <= 0 {
		errs = append(errs, errors.New("grid.cell_size must be positive"))
	}
	if c.Terrain.MinMountains < 0 || c.Terrain.MaxMountains < c.Terrain.MinMountains {
		errs = append(errs, fmt.Errorf("terrain mountain range %d..%d is invalid", c.Terrain.MinMountains, c.Terrain.MaxMountains))
	}
	if c.Terrain.MinRadius < 1 || c.Terrain.MaxRadius < c.Terrain.MinRadius {
		errs = append(errs, fmt.Errorf("terrain radius range %d..%d is invalid", c.Terrain.MinRadius, c.Terrain.MaxRadius))
	}
	if c.Economy.TrainCost < 0 || c.Economy.WagonCost < 0 {
		errs = append(errs, errors.New("economy costs must not be negative"))
	}
	if c.Trains.Speed <= 0 || c.Trains.DwellSeconds <= 0 {
		errs = append(errs, errors.New("trains.speed and trains.dwell_seconds must be positive"))
	}
	if c.Trains.MaxWagons < 1 || c.Trains.SeatsPerWagon < 1 {
		errs = append(errs, errors.New("trains need at least one wagon with one seat"))
	}
	if c.Trains.MaxTrail < c.Trains.BounceTrail || c.Trains.MaxTrail < c.Trains.SpawnTrail {
		errs = append(errs, errors.New("trains.max_trail must cover spawn_trail and bounce_trail"))
	}
	if c.Stations.Capacity < 1 || c.Stations.FullnessTolerance <= 0 {
		errs = append(errs, errors.New("stations.capacity and stations.fullness_tolerance must be positive"))
	}
	if c.Stations.StationInterval <= 0 || c.Stations.PassengerInterval <= 0 {
		errs = append(errs, errors.New("station and passenger intervals must be positive"))
	}
	return errors.Join(errs...)
}

// ToParams converts the configuration into session parameters.
func (c RailsConfig) ToParams() core.Params {
	return core.Params{
		Rows:     c.Grid.Rows,
		Cols:     c.Grid.Cols,
		CellSize: c.Grid.CellSize,
		Terrain: core.TerrainParams{
			MinMountains: c.Terrain.MinMountains,
			MaxMountains: c.Terrain.MaxMountains,
			MinRadius:    c.Terrain.MinRadius,
			MaxRadius:    c.Terrain.MaxRadius,
			CoreRatio:    c.Terrain.CoreRatio,
		},
		InitialPoints:     c.Economy.InitialPoints,
		TrainCost:         c.Economy.TrainCost,
		WagonCost:         c.Economy.WagonCost,
		DeliveryReward:    c.Economy.DeliveryReward,
		CrashBase:         c.Economy.CrashBase,
		CrashPerWagon:     c.Economy.CrashPerWagon,
		TrainSpeed:        c.Trains.Speed,
		DwellSeconds:      c.Trains.DwellSeconds,
		MaxWagons:         c.Trains.MaxWagons,
		SeatsPerWagon:     c.Trains.SeatsPerWagon,
		SpawnTrail:        c.Trains.SpawnTrail,
		BounceTrail:       c.Trains.BounceTrail,
		MaxTrail:          c.Trains.MaxTrail,
		StationCapacity:   c.Stations.Capacity,
		FullnessTolerance: c.Stations.FullnessTolerance,
		StationInterval:   c.Stations.StationInterval,
		PassengerInterval: c.Stations.PassengerInterval,
		StationSpacing:    c.Stations.Spacing,
		PlacementAttempts: c.Stations.PlacementAttempts,
		InitialStations:   c.Stations.Initial,
	}
}
