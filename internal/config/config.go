// Package config loads the sandbox app settings from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the app configuration. Every knob has a default so a bare
// environment runs the sandbox as shipped.
type Config struct {
	WindowWidth  int32 `env:"PLATFORM3D_WINDOW_WIDTH" envDefault:"1280"`
	WindowHeight int32 `env:"PLATFORM3D_WINDOW_HEIGHT" envDefault:"720"`
	TargetFPS    int32 `env:"PLATFORM3D_TARGET_FPS" envDefault:"120"`

	// LevelPath selects a level file on disk and enables hot reload on it.
	// Empty runs the embedded sandbox level.
	LevelPath string `env:"PLATFORM3D_LEVEL"`

	// DisableGPU keeps the collision event query on the CPU grid even when
	// a compute adapter is available.
	DisableGPU bool `env:"PLATFORM3D_DISABLE_GPU"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	return cfg, nil
}
