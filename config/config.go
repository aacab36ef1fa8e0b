// Copyright 2025 Poiesic Systems
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


// Package config loads the webdex service configuration.
//
// The source list is ordered: its position defines each partition's
// priority when query results from overlapping sources are merged.
// Adding a data source is a configuration change, not a code change.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Source names one data source. Each source gets its own partition in
// the vector store.
type Source struct {
	// Name identifies the partition. Must be unique.
	Name string `yaml:"name"`

	// URLFile optionally points to a newline-separated list of URLs to
	// crawl into this source.
	URLFile string `yaml:"url_file,omitempty"`
}

// AI configures the model endpoints.
type AI struct {
	EmbeddingHost   string `yaml:"embedding_host"`
	SummarizerHost  string `yaml:"summarizer_host"`
	EmbeddingModel  string `yaml:"embedding_model"`
	SummarizerModel string `yaml:"summarizer_model"`
}

// Duration wraps time.Duration for YAML decoding of values like "2s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config is the webdex service configuration.
type Config struct {
	// DataDir is the BadgerDB database directory.
	DataDir string `yaml:"data_dir"`

	// Sources lists the data sources in merge-priority order.
	Sources []Source `yaml:"sources"`

	// TopK is the per-partition candidate count for queries.
	TopK int `yaml:"top_k,omitempty"`

	// MinContentLength is the minimum cleaned-text length for ingestion.
	MinContentLength int `yaml:"min_content_length,omitempty"`

	// PartitionTimeout bounds each partition's query independently.
	// Zero means no timeout.
	PartitionTimeout Duration `yaml:"partition_timeout,omitempty"`

	// PoolSize is the ingestion worker pool size. Zero picks a default
	// from the CPU count.
	PoolSize int `yaml:"pool_size,omitempty"`

	AI AI `yaml:"ai"`
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for completeness.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("config: data_dir is required")
	}
	if len(c.Sources) == 0 {
		return errors.New("config: at least one source is required")
	}

	names := make(map[string]bool, len(c.Sources))
	for _, source := range c.Sources {
		if source.Name == "" {
			return errors.New("config: source name cannot be empty")
		}
		if names[source.Name] {
			return fmt.Errorf("config: duplicate source name %q", source.Name)
		}
		names[source.Name] = true
	}

	if c.TopK < 0 {
		return errors.New("config: top_k cannot be negative")
	}
	if c.MinContentLength < 0 {
		return errors.New("config: min_content_length cannot be negative")
	}
	return nil
}

// SourceNames returns the configured source names in priority order.
func (c *Config) SourceNames() []string {
	names := make([]string, len(c.Sources))
	for i, source := range c.Sources {
		names[i] = source.Name
	}
	return names
}
