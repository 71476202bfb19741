// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/reword/pkg/rule"
)

const (
	// DefaultOutput is the directory results are written to when none is configured
	DefaultOutput = "reword-out"
	// DefaultConcurrency bounds how many files are processed at once
	DefaultConcurrency = 4
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔄 RuleConfig is one substitution rule as written in a config file
type RuleConfig struct {
	Search        string `json:"search" yaml:"search" hcl:"search"`
	Replacement   string `json:"replacement" yaml:"replacement" hcl:"replacement,optional"`
	CaseSensitive bool   `json:"case_sensitive,omitempty" yaml:"case_sensitive,omitempty" hcl:"case_sensitive,optional"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Rules       []RuleConfig `json:"rules" yaml:"rules" hcl:"rule,block"`
	Include     []string     `json:"include,omitempty" yaml:"include,omitempty" hcl:"include,optional"`
	Exclude     []string     `json:"exclude,omitempty" yaml:"exclude,omitempty" hcl:"exclude,optional"`
	Output      string       `json:"output,omitempty" yaml:"output,omitempty" hcl:"output,optional"`
	Archive     string       `json:"archive,omitempty" yaml:"archive,omitempty" hcl:"archive,optional"`
	Concurrency int          `json:"concurrency,omitempty" yaml:"concurrency,omitempty" hcl:"concurrency,optional"`
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	logger.Debug().Int("rules", len(cfg.Rules)).Str("output", cfg.Output).Msg("loaded configuration")
	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid and fills in defaults
func (cfg *Config) Validate() error {
	for _, pattern := range append(append([]string{}, cfg.Include...), cfg.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid glob pattern %q", pattern)
		}
	}

	if cfg.Concurrency < 0 {
		return errors.Errorf("concurrency must not be negative, got %d", cfg.Concurrency)
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = DefaultConcurrency
	}

	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	cfg.Output = filepath.Clean(cfg.Output)

	if cfg.Archive != "" {
		cfg.Archive = filepath.Clean(cfg.Archive)
		if !strings.EqualFold(filepath.Ext(cfg.Archive), ".zip") {
			return errors.Errorf("archive must be a .zip file, got %q", cfg.Archive)
		}
	}

	return nil
}

// RuleSet converts the configured rules in order
func (cfg *Config) RuleSet() []rule.Rule {
	rules := make([]rule.Rule, 0, len(cfg.Rules))
	for _, r := range cfg.Rules {
		rules = append(rules, rule.Rule{
			Search:        r.Search,
			Replacement:   r.Replacement,
			CaseSensitive: r.CaseSensitive,
		})
	}
	return rules
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	dest := cfg.Output
	if cfg.Archive != "" {
		dest = cfg.Archive
	}
	return fmt.Sprintf("%d rules -> %s", len(cfg.Rules), dest)
}
