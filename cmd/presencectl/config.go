package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

var errClientIDRequired = errors.New("client_id is required (config file or --client-id)")

// cliConfig is the resolved runtime configuration: config file first, then
// flag overrides.
type cliConfig struct {
	ClientID   string
	Details    string
	State      string
	LargeImage string
	LargeText  string
	SmallImage string
	SmallText  string
}

// presencectl config.toml key mapping.
type fileConfig struct {
	ClientID   string `toml:"client_id"`
	Details    string `toml:"details"`
	State      string `toml:"state"`
	LargeImage string `toml:"large_image"`
	LargeText  string `toml:"large_text"`
	SmallImage string `toml:"small_image"`
	SmallText  string `toml:"small_text"`
}

func loadConfig(path string) (cliConfig, error) {
	var cfg cliConfig

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return cliConfig{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("client_id") {
		cfg.ClientID = strings.TrimSpace(raw.ClientID)
	}
	if meta.IsDefined("details") {
		cfg.Details = raw.Details
	}
	if meta.IsDefined("state") {
		cfg.State = raw.State
	}
	if meta.IsDefined("large_image") {
		cfg.LargeImage = strings.TrimSpace(raw.LargeImage)
	}
	if meta.IsDefined("large_text") {
		cfg.LargeText = raw.LargeText
	}
	if meta.IsDefined("small_image") {
		cfg.SmallImage = strings.TrimSpace(raw.SmallImage)
	}
	if meta.IsDefined("small_text") {
		cfg.SmallText = raw.SmallText
	}

	return cfg, nil
}

func (c cliConfig) validate() error {
	if strings.TrimSpace(c.ClientID) == "" {
		return errClientIDRequired
	}
	return nil
}
