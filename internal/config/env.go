package config

import (
	"os"
	"strconv"
)

// FromEnv applies environment overrides on top of a config, for deployments
// where editing the yaml file is inconvenient.
func FromEnv(c *Config) *Config {
	if v := os.Getenv("RESPIRA_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("RESPIRA_CALC_URL"); v != "" {
		c.Server.CalcBaseURL = v
	}
	if v := os.Getenv("RESPIRA_DATA_DIR"); v != "" {
		c.Server.DataDir = v
	}
	if v := getEnvInt("RESPIRA_STARTING_POINTS"); v != nil && *v >= 0 {
		c.Player.StartingPoints = v
	}
	if v := os.Getenv("RESPIRA_PLAYER_NAME"); v != "" {
		c.Player.Name = v
	}
	return c
}

func getEnvInt(key string) *int {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return nil
	}
	return &num
}
