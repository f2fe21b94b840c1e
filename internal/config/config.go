// Package config loads run and engine settings for the command line tools.
//
// Settings are layered, lowest priority first:
//  1. gsea.DefaultConfig and the engine defaults
//  2. an optional YAML file
//  3. GSEA_* environment variables, including those set in a .env file
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/discochess/gsea"
)

// Config holds everything a tool needs to build an engine and run it.
type Config struct {
	Run    gsea.Config `yaml:"run"`
	Engine Engine      `yaml:"engine"`
}

// Engine holds engine options. Zero values keep the engine defaults.
type Engine struct {
	Workers          int  `yaml:"workers" validate:"gte=0"`
	ChunkSize        int  `yaml:"chunk_size" validate:"gte=0"`
	RankingCacheSize int  `yaml:"ranking_cache_size" validate:"gte=0"`
	Verbose          bool `yaml:"verbose"`
}

// Options converts the settings to engine options.
func (e Engine) Options() []gsea.Option {
	var opts []gsea.Option
	if e.Workers > 0 {
		opts = append(opts, gsea.WithWorkers(e.Workers))
	}
	if e.ChunkSize > 0 {
		opts = append(opts, gsea.WithChunkSize(e.ChunkSize))
	}
	if e.RankingCacheSize > 0 {
		opts = append(opts, gsea.WithRankingCacheSize(e.RankingCacheSize))
	}
	return opts
}

var validate = validator.New()

// Load reads path, if not empty, then .env from the working directory and
// the environment.
func Load(path string) (*Config, error) {
	return LoadFiles(path, ".env")
}

// LoadFiles is Load with an explicit env file. A missing env file is not an
// error.
func LoadFiles(path, envFile string) (*Config, error) {
	cfg := &Config{Run: gsea.DefaultConfig()}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Run.Validate(); err != nil {
		return nil, err
	}
	if err := validate.Struct(cfg.Engine); err != nil {
		return nil, fmt.Errorf("%w: engine: %v", gsea.ErrInvalidParameter, err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	var mode, permType string
	str("GSEA_MODE", &mode)
	str("GSEA_PERMUTATION_TYPE", &permType)
	str("GSEA_METHOD", &cfg.Run.Method)
	if mode != "" {
		cfg.Run.Mode = gsea.Mode(mode)
	}
	if permType != "" {
		cfg.Run.PermutationType = gsea.PermutationType(permType)
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"GSEA_PERMUTATIONS", &cfg.Run.Permutations},
		{"GSEA_WORKERS", &cfg.Engine.Workers},
		{"GSEA_CHUNK_SIZE", &cfg.Engine.ChunkSize},
		{"GSEA_RANKING_CACHE_SIZE", &cfg.Engine.RankingCacheSize},
	}
	for _, e := range ints {
		if v, ok := os.LookupEnv(e.key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", e.key, err)
			}
			*e.dst = n
		}
	}

	if v, ok := os.LookupEnv("GSEA_WEIGHTED_SCORE_TYPE"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("GSEA_WEIGHTED_SCORE_TYPE: %w", err)
		}
		cfg.Run.WeightedScoreType = f
	}
	if v, ok := os.LookupEnv("GSEA_SEED"); ok {
		s, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("GSEA_SEED: %w", err)
		}
		cfg.Run.Seed = &s
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"GSEA_ASCENDING", &cfg.Run.Ascending},
		{"GSEA_SCALE", &cfg.Run.Scale},
		{"GSEA_VERBOSE", &cfg.Engine.Verbose},
	}
	for _, e := range bools {
		if v, ok := os.LookupEnv(e.key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", e.key, err)
			}
			*e.dst = b
		}
	}
	return nil
}
