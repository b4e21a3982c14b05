package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

func Addr() string {
	addr, ok := os.LookupEnv("APP_ADDR")
	if !ok {
		return ":8080"
	}
	return addr
}

// LogFile is the path of the rotated log file, if one is configured.
func LogFile() (string, bool) {
	return os.LookupEnv("LOG_FILE")
}

type Limits struct {
	MaxWidth   int
	MaxHeight  int
	MaxSteps   int
	SessionTTL time.Duration
}

func intEnv(name string, fallback int) (int, error) {
	s, ok := os.LookupEnv(name)
	if !ok {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unable to convert %s to int: %w", name, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", name, v)
	}
	return v, nil
}

func NewLimits() (*Limits, error) {
	maxWidth, err := intEnv("MAZE_MAX_WIDTH", 200)
	if err != nil {
		return nil, err
	}
	maxHeight, err := intEnv("MAZE_MAX_HEIGHT", 200)
	if err != nil {
		return nil, err
	}
	maxSteps, err := intEnv("MAZE_MAX_STEPS", 10000)
	if err != nil {
		return nil, err
	}

	ttl := 30 * time.Minute
	if s, ok := os.LookupEnv("SESSION_TTL"); ok {
		ttl, err = time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("unable to parse SESSION_TTL: %w", err)
		}
		if ttl < time.Second {
			return nil, fmt.Errorf("SESSION_TTL must be at least 1s, got %s", ttl)
		}
	}

	limits := &Limits{
		MaxWidth:   maxWidth,
		MaxHeight:  maxHeight,
		MaxSteps:   maxSteps,
		SessionTTL: ttl,
	}

	return limits, nil
}
