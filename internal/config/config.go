package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	API struct {
		BaseURL           string  `yaml:"base_url" json:"base_url"`
		UserAgent         string  `yaml:"user_agent" json:"user_agent"`
		TimeoutSeconds    int     `yaml:"timeout_seconds" json:"timeout_seconds"`
		RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
		MaxPages          int     `yaml:"max_pages" json:"max_pages"`
		PerPage           int     `yaml:"per_page" json:"per_page"`
	} `yaml:"api" json:"api"`

	Analysis struct {
		MinWordLength int      `yaml:"min_word_length" json:"min_word_length"`
		MinFrequency  int      `yaml:"min_frequency" json:"min_frequency"`
		TopKeywords   int      `yaml:"top_keywords" json:"top_keywords"`
		StopWords     []string `yaml:"stop_words" json:"stop_words"`
	} `yaml:"analysis" json:"analysis"`

	Export struct {
		Dir      string `yaml:"dir" json:"dir"`
		KeepDays int    `yaml:"keep_days" json:"keep_days"`
	} `yaml:"export" json:"export"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
