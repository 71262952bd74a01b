package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads values tagged with `env:"..."` from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
