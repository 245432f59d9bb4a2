package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MarceloDChagas/Respira/internal/catalog"
	"github.com/MarceloDChagas/Respira/internal/economy"
)

type Config struct {
	Server   ServerConfig       `yaml:"server" json:"server"`
	Player   PlayerConfig       `yaml:"player" json:"player"`
	Levels   []catalog.LevelDef `yaml:"levels" json:"levels"`
	Missions MissionsConfig     `yaml:"missions" json:"missions"`
}

type ServerConfig struct {
	Addr        string `yaml:"addr" json:"addr"`
	CalcBaseURL string `yaml:"calc_base_url" json:"calc_base_url"`
	DataDir     string `yaml:"data_dir" json:"data_dir"`
}

type PlayerConfig struct {
	Name           string `yaml:"name" json:"name"`
	StartingPoints *int   `yaml:"starting_points" json:"starting_points"`
}

type MissionsConfig struct {
	Targets      map[string]int     `yaml:"targets" json:"targets"`
	CO2Reduction map[string]float64 `yaml:"co2_reduction" json:"co2_reduction"`
}

// Default returns the launch configuration: catalog balance values, local
// server address, no calc service and no persistence.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Levels: catalog.DefaultLevels(),
		Missions: MissionsConfig{
			Targets:      catalog.MissionTargets(),
			CO2Reduction: catalog.MissionCO2Reduction(),
		},
	}
}

// StartingPoints resolves the configured starting balance, falling back to
// the catalog default.
func (c *Config) StartingPoints() int {
	if c.Player.StartingPoints != nil {
		return *c.Player.StartingPoints
	}
	return catalog.StartingPoints
}

// ApplyDefaults fills zero values so a sparse yaml file still yields a
// complete config.
func (c *Config) ApplyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if len(c.Levels) == 0 {
		c.Levels = catalog.DefaultLevels()
	}
	if c.Missions.Targets == nil {
		c.Missions.Targets = catalog.MissionTargets()
	}
	if c.Missions.CO2Reduction == nil {
		c.Missions.CO2Reduction = catalog.MissionCO2Reduction()
	}
}

// Validate rejects configs the store cannot safely run on.
func (c *Config) Validate() error {
	if err := economy.ValidateLevels(c.Levels); err != nil {
		return fmt.Errorf("levels: %w", err)
	}
	if c.Player.StartingPoints != nil && *c.Player.StartingPoints < 0 {
		return fmt.Errorf("player.starting_points must be non-negative")
	}
	for id, target := range c.Missions.Targets {
		if target < 1 {
			return fmt.Errorf("missions.targets[%s] must be >= 1", id)
		}
	}
	for id, kg := range c.Missions.CO2Reduction {
		if kg < 0 {
			return fmt.Errorf("missions.co2_reduction[%s] must be non-negative", id)
		}
	}
	return nil
}

// Load reads and validates a yaml config file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
