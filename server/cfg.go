package server

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/IoannouAndreas/CV-Os/model"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Port     string
	Settings model.Settings
	// FPS is how often a session loop runs a frame.
	FPS      int
	Timeout  time.Duration
	LogLevel log.Level
}

func DefaultConfig() Config {
	return Config{
		Port:     "8080",
		Settings: model.DefaultSettings(),
		FPS:      30,
		Timeout:  200 * time.Millisecond,
		LogLevel: log.InfoLevel,
	}
}

func (c Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.FPS)
}

// LoadConfig starts from the defaults, applies the file named by TRON_CONFIG
// and then the environment.
func LoadConfig(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()
	pairs := make(map[string]string)
	if path := getenv("TRON_CONFIG"); path != "" {
		file, err := os.Open(path)
		if err != nil {
			return cfg, errors.Wrap(err, "opening config")
		}
		defer file.Close()
		pairs, err = model.ReadPairs(file)
		if err != nil {
			return cfg, errors.Wrapf(err, "config %s", path)
		}
	}
	for key, env := range map[string]string{
		"port":      "PORT",
		"preset":    "TRON_PRESET",
		"speed":     "TRON_SPEED",
		"fps":       "TRON_FPS",
		"timeout":   "TRON_TIMEOUT",
		"log_level": "LOG_LEVEL",
	} {
		if v := getenv(env); v != "" {
			pairs[key] = v
		}
	}
	err := cfg.Apply(pairs)
	return cfg, err
}

func (c *Config) Apply(pairs map[string]string) error {
	if err := c.Settings.Apply(pairs); err != nil {
		return err
	}
	for key, v := range pairs {
		switch key {
		case "port":
			c.Port = v
		case "fps":
			fps, err := strconv.Atoi(v)
			if err != nil || fps <= 0 {
				return errors.Errorf("fps %q must be a positive number", v)
			}
			c.FPS = fps
		case "timeout":
			d, err := time.ParseDuration(v)
			if err != nil {
				return errors.Wrapf(err, "timeout %q", v)
			}
			c.Timeout = d
		case "log_level":
			level, err := log.ParseLevel(strings.ToLower(v))
			if err != nil {
				return errors.Wrap(err, "log_level")
			}
			c.LogLevel = level
		default:
			log.Warnf("config key %q ignored", key)
		}
	}
	return nil
}
