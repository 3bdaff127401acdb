package main

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// config is the demo server's runtime configuration, loaded from the
// environment via viper — grounded on noah-isme-sma-adp-api's
// pkg/config.Load (SetDefault per key, AutomaticEnv, no required config
// file).
type config struct {
	Port          int
	LogFormat     string
	LogLevel      string
	SolverTimeout time.Duration
	GAGenerations int
	GAPopSize     int
}

func loadConfig() config {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("PORT", 8080)
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SOLVER_TIMEOUT_SECONDS", 10)
	v.SetDefault("GA_GENERATIONS", 40)
	v.SetDefault("GA_POP_SIZE", 60)

	return config{
		Port:          v.GetInt("PORT"),
		LogFormat:     v.GetString("LOG_FORMAT"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		SolverTimeout: time.Duration(v.GetInt("SOLVER_TIMEOUT_SECONDS")) * time.Second,
		GAGenerations: v.GetInt("GA_GENERATIONS"),
		GAPopSize:     v.GetInt("GA_POP_SIZE"),
	}
}
