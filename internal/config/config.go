// Package config provides YAML-based configuration loading and difficulty
// presets for the rails game.
package config

import (
	"fmt"
	"strings"
)

// RailsConfig contains all configuration for the rails game.
type RailsConfig struct {
	Grid     GridConfig     `yaml:"grid"`
	Terrain  TerrainConfig  `yaml:"terrain"`
	Economy  EconomyConfig  `yaml:"economy"`
	Trains   TrainsConfig   `yaml:"trains"`
	Stations StationsConfig `yaml:"stations"`
}

// GridConfig defines the map dimensions.
type GridConfig struct {
	Rows     int     `yaml:"rows"`
	Cols     int     `yaml:"cols"`
	CellSize float64 `yaml:"cell_size"`
}

// TerrainConfig defines mountain blob generation.
type TerrainConfig struct {
	MinMountains int     `yaml:"min_mountains"`
	MaxMountains int     `yaml:"max_mountains"`
	MinRadius    int     `yaml:"min_radius"`
	MaxRadius    int     `yaml:"max_radius"`
	CoreRatio    float64 `yaml:"core_ratio"` // Fraction of the radius that is always mountain
}

// EconomyConfig defines point costs and rewards.
type EconomyConfig struct {
	InitialPoints  int `yaml:"initial_points"`
	TrainCost      int `yaml:"train_cost"`
	WagonCost      int `yaml:"wagon_cost"`
	DeliveryReward int `yaml:"delivery_reward"`
	CrashBase      int `yaml:"crash_base"`      // Refund per removed train
	CrashPerWagon  int `yaml:"crash_per_wagon"` // Extra refund per wagon of a removed train
}

// TrainsConfig defines train movement and capacity.
type TrainsConfig struct {
	Speed         float64 `yaml:"speed"`         // Cells per second
	DwellSeconds  float64 `yaml:"dwell_seconds"` // Time per passenger action while docked
	MaxWagons     int     `yaml:"max_wagons"`
	SeatsPerWagon int     `yaml:"seats_per_wagon"`
	SpawnTrail    int     `yaml:"spawn_trail"`
	BounceTrail   int     `yaml:"bounce_trail"`
	MaxTrail      int     `yaml:"max_trail"`
}

// StationsConfig defines station and passenger spawning.
type StationsConfig struct {
	Capacity          int     `yaml:"capacity"`
	FullnessTolerance float64 `yaml:"fullness_tolerance"` // Seconds a station may stay full
	StationInterval   float64 `yaml:"station_interval"`
	PassengerInterval float64 `yaml:"passenger_interval"`
	Spacing           float64 `yaml:"spacing"`
	PlacementAttempts int     `yaml:"placement_attempts"`
	Initial           int     `yaml:"initial"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the difficulty presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParsePreset converts a user-supplied name into a preset. The empty string
// maps to normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Presets() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", name)
}

// Description returns a short human-readable summary of the preset.
func (p DifficultyPreset) Description() string {
	switch p {
	case DifficultyEasy:
		return "Stations tolerate crowds longer, passengers arrive slower"
	case DifficultyHard:
		return "Short fuse on full stations, frequent passengers"
	case DifficultyFixed:
		return "Exactly the configured values"
	default:
		return "Standard tuning"
	}
}
