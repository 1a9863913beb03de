// pkg/ceremony/config.go
// Copyright(c) 2025 watersalute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ceremony

import (
	"encoding/json"
	"io"
	"os"
	"path"

	"github.com/avfx/watersalute/pkg/log"
)

// Config is the persisted configuration record. Loaded at startup with
// per-field defaults for anything missing or out of range, saved at
// shutdown.
type Config struct {
	Version      int
	SoundEnabled bool
	SoundVolume  int // 0-100
	AutoStart    bool
	CruiseSpeed  float32 // m/s
	JetHeight    float32 // meters

	// RoutingFiles are searched in order for a ground network near the
	// aircraft; the first file with an airport in range wins.
	RoutingFiles []string
}

const configVersion = 1

func DefaultConfig() *Config {
	return &Config{
		Version:      configVersion,
		SoundEnabled: true,
		SoundVolume:  80,
		AutoStart:    false,
		CruiseSpeed:  8,
		JetHeight:    8,
	}
}

// ConfigFilePath returns the default config location under the user's
// config directory, creating the directory as needed.
func ConfigFilePath(lg *log.Logger) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		lg.Errorf("Unable to find user config dir: %v", err)
		dir = "."
	}

	dir = path.Join(dir, "WaterSalute")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		lg.Errorf("%s: unable to make directory for config file: %v", dir, err)
	}

	return path.Join(dir, "config.json")
}

// LoadOrMakeDefaultConfig reads the config at fn, replacing any missing
// or implausible field with its default. A missing or unreadable file
// yields the defaults without error; the ceremony must run regardless.
func LoadOrMakeDefaultConfig(fn string, lg *log.Logger) *Config {
	cfg := DefaultConfig()

	b, err := os.ReadFile(fn)
	if err != nil {
		lg.Infof("%s: no config file, using defaults: %v", fn, err)
		return cfg
	}
	if err := json.Unmarshal(b, cfg); err != nil {
		lg.Errorf("%s: unable to parse config, using defaults: %v", fn, err)
		return DefaultConfig()
	}

	cfg.Version = configVersion
	def := DefaultConfig()
	if cfg.SoundVolume < 0 || cfg.SoundVolume > 100 {
		lg.Warnf("config: sound volume %d out of range, using %d", cfg.SoundVolume, def.SoundVolume)
		cfg.SoundVolume = def.SoundVolume
	}
	if cfg.CruiseSpeed <= 0 || cfg.CruiseSpeed > 30 {
		lg.Warnf("config: cruise speed %f out of range, using %f", cfg.CruiseSpeed, def.CruiseSpeed)
		cfg.CruiseSpeed = def.CruiseSpeed
	}
	if cfg.JetHeight <= 0 || cfg.JetHeight > 25 {
		lg.Warnf("config: jet height %f out of range, using %f", cfg.JetHeight, def.JetHeight)
		cfg.JetHeight = def.JetHeight
	}

	return cfg
}

func (c *Config) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(c)
}

func (c *Config) Save(fn string, lg *log.Logger) error {
	lg.Infof("Saving config to: %s", fn)
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	return c.Encode(f)
}
