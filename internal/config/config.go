// Copyright 2025 Certen Protocol
//
// Config - policy configuration for the verify engine
//
// YAML with ${VAR_NAME} / ${VAR_NAME:-default} environment substitution,
// following the teacher's pkg/config/anchor_config.go loader.

package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// EngineConfig holds the verify engine's policy knobs.
type EngineConfig struct {
	Verification VerificationSettings `yaml:"verification"`
	Batch        BatchSettings        `yaml:"batch"`
}

// VerificationSettings controls per-proof policy checks.
type VerificationSettings struct {
	MaxProofAge    Duration `yaml:"max_proof_age"`
	MinThreshold   uint16   `yaml:"min_threshold"`
	BlacklistRoot  string   `yaml:"blacklist_root"` // hex-encoded 32 bytes, optional
	VKPath         string   `yaml:"vk_path"`
}

// BatchSettings controls batch verification behavior.
type BatchSettings struct {
	MaxBatchSize int `yaml:"max_batch_size"`
}

// Duration is time.Duration with YAML string support ("1h", "30s"),
// mirroring the teacher's own Duration wrapper type.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

const defaultMaxBatchSize = 1024

func (c *EngineConfig) applyDefaults() {
	if c.Batch.MaxBatchSize == 0 {
		c.Batch.MaxBatchSize = defaultMaxBatchSize
	}
}

// BlacklistRootBytes decodes the configured hex blacklist root, or the
// zero root if none is configured (an empty exclusion set).
func (c *EngineConfig) BlacklistRootBytes() ([32]byte, error) {
	var out [32]byte
	if c.Verification.BlacklistRoot == "" {
		return out, nil
	}
	decoded, err := hex.DecodeString(c.Verification.BlacklistRoot)
	if err != nil {
		return out, fmt.Errorf("config: blacklist_root: %w", err)
	}
	if len(decoded) != 32 {
		return out, fmt.Errorf("config: blacklist_root must decode to 32 bytes, got %d", len(decoded))
	}
	copy(out[:], decoded)
	return out, nil
}

// envVarPattern matches ${VAR_NAME} or ${VAR_NAME:-default}.
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		varName := groups[1]
		defaultValue := ""
		if len(groups) >= 4 {
			defaultValue = groups[3]
		}
		if value := os.Getenv(varName); value != "" {
			return value
		}
		return defaultValue
	})
}

// Load reads and parses an EngineConfig from a YAML file at path, with
// ${VAR} environment substitution and defaults applied.
func Load(path string) (*EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	expanded := substituteEnvVars(string(data))

	var cfg EngineConfig
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}
