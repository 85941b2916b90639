package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadEnv loads KEY=VALUE pairs from path into the process environment.
// Variables already set win. A missing file is not an error.
func LoadEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides SimConfig fields from TUGSIM_* variables.
func ApplyEnv(c *SimConfig) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"TUGSIM_MAX_TICKS", &c.MaxTicks},
		{"TUGSIM_MAX_ENTITIES", &c.MaxEntities},
		{"TUGSIM_STEP_MS", &c.StepMs},
	}
	for _, v := range ints {
		raw := os.Getenv(v.key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s: invalid value %q", v.key, raw)
		}
		*v.dst = n
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"TUGSIM_ARENA_WIDTH", &c.ArenaWidth},
		{"TUGSIM_ARENA_HEIGHT", &c.ArenaHeight},
		{"TUGSIM_BUCKET_SIZE", &c.BucketSize},
		{"TUGSIM_CORE_HP", &c.CoreHpStart},
	}
	for _, v := range floats {
		raw := os.Getenv(v.key)
		if raw == "" {
			continue
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("%s: invalid value %q", v.key, raw)
		}
		*v.dst = f
	}
	return nil
}
