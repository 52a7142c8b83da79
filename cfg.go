package main

import (
	"io"
	"os"
	"strconv"

	"github.com/IoannouAndreas/CV-Os/model"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const configFile = "tron.cfg"

type ClientConfig struct {
	Settings model.Settings
	// Width and Height is the space the host gives the arena window.
	Width, Height int
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Settings: model.DefaultSettings(),
		Width:    960,
		Height:   540,
	}
}

func Load() (ClientConfig, error) {
	cfg := DefaultClientConfig()
	file, err := ebitenutil.OpenFile(configFile)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("no %s, using defaults", configFile)
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "opening %s", configFile)
	}
	defer file.Close()
	return read(file, cfg)
}

func read(reader io.Reader, cfg ClientConfig) (ClientConfig, error) {
	pairs, err := model.ReadPairs(reader)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Settings.Apply(pairs); err != nil {
		return cfg, err
	}
	for key, v := range pairs {
		switch key {
		case "width", "height":
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return cfg, errors.Errorf("%s %q must be a positive number", key, v)
			}
			if key == "width" {
				cfg.Width = n
			} else {
				cfg.Height = n
			}
		default:
			log.Warnf("%s: key %q ignored", configFile, key)
		}
	}
	return cfg, nil
}
