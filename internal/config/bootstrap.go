package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default returns the built-in configuration used when no config.yml is
// shipped next to the binary.
func Default() Config {
	var cfg Config
	cfg.App.Port = 38520
	cfg.App.DataDir = "."

	cfg.API.BaseURL = "https://api.hh.ru"
	cfg.API.UserAgent = "hhscout-engine/1.0"
	cfg.API.TimeoutSeconds = 30
	cfg.API.RequestsPerSecond = 2
	cfg.API.MaxPages = 10
	cfg.API.PerPage = 100

	cfg.Analysis.MinWordLength = 3
	cfg.Analysis.MinFrequency = 2
	cfg.Analysis.TopKeywords = 50

	cfg.Export.Dir = "exports"
	cfg.Export.KeepDays = 30
	return cfg
}

// EnsureUserConfig makes sure dataDir holds an editable config.yml:
// an existing one wins, otherwise the shipped default file is copied,
// otherwise the built-in defaults are written out.
func EnsureUserConfig(dataDir string, defaultPath string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	src, err := os.Open(defaultPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		b, err := yaml.Marshal(Default())
		if err != nil {
			return "", err
		}
		if err := os.WriteFile(userPath, b, 0o644); err != nil {
			return "", err
		}
		return userPath, nil
	}
	defer src.Close()

	dst, err := os.Create(userPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return userPath, nil
}
