package config

import (
	"fmt"
	"strconv"
)

// Config represents the persistent coachlens configuration stored as
// config.toml in the .coachlens/ directory. The TOML layout uses sections
// for logical grouping. All values are read once at startup; nothing is
// revalidated mid-run.
type Config struct {
	Version     int               `toml:"version"`
	Storage     StorageConfig     `toml:"storage"`
	VectorStore VectorStoreConfig `toml:"vector_store"`
	Embedding   EmbeddingConfig   `toml:"embedding"`
	Extraction  ExtractionConfig  `toml:"extraction"`
	API         APIConfig         `toml:"api"`
	Client      ClientConfig      `toml:"client"`
	Search      SearchConfig      `toml:"search"`
}

// StorageConfig holds the JSON document paths for transcripts, extracted
// insights, and the local embedding record set.
type StorageConfig struct {
	TranscriptsPath string `toml:"transcripts_path,omitempty"`
	InsightsPath    string `toml:"insights_path,omitempty"`
	EmbeddingsPath  string `toml:"embeddings_path,omitempty"`
}

// VectorStoreConfig holds vector backend settings.
type VectorStoreConfig struct {
	// Provider selects the backend: "local" or "qdrant".
	Provider string `toml:"provider,omitempty"`

	// Target is the Qdrant gRPC address (e.g. "localhost:6334").
	Target string `toml:"target,omitempty"`

	Collection string `toml:"collection,omitempty"`
	BatchSize  int    `toml:"batch_size,omitempty"`

	// Payload truncation limits for the remote backend, in runes.
	TextLimit    int `toml:"text_limit,omitempty"`
	MindsetLimit int `toml:"mindset_limit,omitempty"`
	SummaryLimit int `toml:"summary_limit,omitempty"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Provider   string `toml:"provider,omitempty"`
	Target     string `toml:"target,omitempty"`
	Model      string `toml:"model,omitempty"`
	Dimensions int    `toml:"dimensions,omitempty"`
}

// ExtractionConfig holds insight-extraction provider settings.
type ExtractionConfig struct {
	Provider string `toml:"provider,omitempty"`
	Target   string `toml:"target,omitempty"`
	Model    string `toml:"model,omitempty"`
}

// APIConfig holds API server settings.
type APIConfig struct {
	Listen string `toml:"listen,omitempty"`
}

// ClientConfig holds settings for CLI commands that connect to a running
// API server. Values are full URLs (scheme + host + port).
type ClientConfig struct {
	APITarget string `toml:"api_target,omitempty"`
}

// SearchConfig holds search defaults.
type SearchConfig struct {
	TopK int `toml:"top_k,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func intKey(get func(c *Config) int, set func(c *Config, v int)) configKeyInfo {
	return configKeyInfo{
		get: func(c *Config) string {
			if get(c) == 0 {
				return ""
			}
			return strconv.Itoa(get(c))
		},
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid integer value %q: %w", v, err)
			}
			set(c, n)
			return nil
		},
	}
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"storage.transcripts_path": {
		get: func(c *Config) string { return c.Storage.TranscriptsPath },
		set: func(c *Config, v string) error { c.Storage.TranscriptsPath = v; return nil },
	},
	"storage.insights_path": {
		get: func(c *Config) string { return c.Storage.InsightsPath },
		set: func(c *Config, v string) error { c.Storage.InsightsPath = v; return nil },
	},
	"storage.embeddings_path": {
		get: func(c *Config) string { return c.Storage.EmbeddingsPath },
		set: func(c *Config, v string) error { c.Storage.EmbeddingsPath = v; return nil },
	},
	"vector_store.provider": {
		get: func(c *Config) string { return c.VectorStore.Provider },
		set: func(c *Config, v string) error { c.VectorStore.Provider = v; return nil },
	},
	"vector_store.target": {
		get: func(c *Config) string { return c.VectorStore.Target },
		set: func(c *Config, v string) error { c.VectorStore.Target = v; return nil },
	},
	"vector_store.collection": {
		get: func(c *Config) string { return c.VectorStore.Collection },
		set: func(c *Config, v string) error { c.VectorStore.Collection = v; return nil },
	},
	"vector_store.batch_size": intKey(
		func(c *Config) int { return c.VectorStore.BatchSize },
		func(c *Config, v int) { c.VectorStore.BatchSize = v },
	),
	"vector_store.text_limit": intKey(
		func(c *Config) int { return c.VectorStore.TextLimit },
		func(c *Config, v int) { c.VectorStore.TextLimit = v },
	),
	"vector_store.mindset_limit": intKey(
		func(c *Config) int { return c.VectorStore.MindsetLimit },
		func(c *Config, v int) { c.VectorStore.MindsetLimit = v },
	),
	"vector_store.summary_limit": intKey(
		func(c *Config) int { return c.VectorStore.SummaryLimit },
		func(c *Config, v int) { c.VectorStore.SummaryLimit = v },
	),
	"embedding.provider": {
		get: func(c *Config) string { return c.Embedding.Provider },
		set: func(c *Config, v string) error { c.Embedding.Provider = v; return nil },
	},
	"embedding.target": {
		get: func(c *Config) string { return c.Embedding.Target },
		set: func(c *Config, v string) error { c.Embedding.Target = v; return nil },
	},
	"embedding.model": {
		get: func(c *Config) string { return c.Embedding.Model },
		set: func(c *Config, v string) error { c.Embedding.Model = v; return nil },
	},
	"embedding.dimensions": intKey(
		func(c *Config) int { return c.Embedding.Dimensions },
		func(c *Config, v int) { c.Embedding.Dimensions = v },
	),
	"extraction.provider": {
		get: func(c *Config) string { return c.Extraction.Provider },
		set: func(c *Config, v string) error { c.Extraction.Provider = v; return nil },
	},
	"extraction.target": {
		get: func(c *Config) string { return c.Extraction.Target },
		set: func(c *Config, v string) error { c.Extraction.Target = v; return nil },
	},
	"extraction.model": {
		get: func(c *Config) string { return c.Extraction.Model },
		set: func(c *Config, v string) error { c.Extraction.Model = v; return nil },
	},
	"api.listen": {
		get: func(c *Config) string { return c.API.Listen },
		set: func(c *Config, v string) error { c.API.Listen = v; return nil },
	},
	"client.api_target": {
		get: func(c *Config) string { return c.Client.APITarget },
		set: func(c *Config, v string) error { c.Client.APITarget = v; return nil },
	},
	"search.top_k": intKey(
		func(c *Config) int { return c.Search.TopK },
		func(c *Config, v int) { c.Search.TopK = v },
	),
}
