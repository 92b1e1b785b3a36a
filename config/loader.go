package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"
)

// configSchema validates the shape of a JSON generator config file
// before it is decoded: every field is optional (LoadJSON starts from
// Default() and overlays whatever the file sets), but fields that are
// present must have the right type and, for the repetition bounds,
// a sane minimum.
const configSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "terminals_limit": {"type": "integer", "minimum": 0},
    "rule_expand_limit": {"type": "integer", "minimum": 0},
    "soft_limit": {"type": "integer", "minimum": 1},
    "hard_limit": {"type": "integer", "minimum": 1},
    "limit_depth_level": {"type": "integer", "minimum": 1},
    "text_expand_limit": {"type": "string"},
    "upper_bound_zero_or_more_repetition": {"type": "integer", "minimum": 0},
    "upper_bound_one_or_more_repetition": {"type": "integer", "minimum": 0},
    "upper_bound_at_least_repetition": {"type": "integer", "minimum": 0},
    "max_attempts_negation": {"type": "integer", "minimum": 1}
  }
}`

var configSchema = func() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("config.schema.json", bytes.NewReader([]byte(configSchemaJSON))); err != nil {
		panic(fmt.Sprintf("config: invalid embedded schema: %v", err))
	}
	return c.MustCompile("config.schema.json")
}()

// fileConfig is the wire shape of a JSON or YAML generator config
// file; every field is a pointer so "absent" and "explicit zero" are
// distinguishable when overlaying onto Default().
type fileConfig struct {
	TerminalsLimit                 *uint64 `json:"terminals_limit,omitempty" yaml:"terminals_limit,omitempty"`
	RuleExpandLimit                *uint64 `json:"rule_expand_limit,omitempty" yaml:"rule_expand_limit,omitempty"`
	SoftLimit                      *uint64 `json:"soft_limit,omitempty" yaml:"soft_limit,omitempty"`
	HardLimit                      *uint64 `json:"hard_limit,omitempty" yaml:"hard_limit,omitempty"`
	LimitDepthLevel                *uint64 `json:"limit_depth_level,omitempty" yaml:"limit_depth_level,omitempty"`
	TextExpandLimit                *string `json:"text_expand_limit,omitempty" yaml:"text_expand_limit,omitempty"`
	UpperBoundZeroOrMoreRepetition *uint64 `json:"upper_bound_zero_or_more_repetition,omitempty" yaml:"upper_bound_zero_or_more_repetition,omitempty"`
	UpperBoundOneOrMoreRepetition  *uint64 `json:"upper_bound_one_or_more_repetition,omitempty" yaml:"upper_bound_one_or_more_repetition,omitempty"`
	UpperBoundAtLeastRepetition    *uint64 `json:"upper_bound_at_least_repetition,omitempty" yaml:"upper_bound_at_least_repetition,omitempty"`
	MaxAttemptsNegation            *uint64 `json:"max_attempts_negation,omitempty" yaml:"max_attempts_negation,omitempty"`
}

func (fc fileConfig) overlay() GeneratorConfig {
	cfg := Default()
	if fc.TerminalsLimit != nil {
		cfg = cfg.WithTerminalsLimit(*fc.TerminalsLimit)
	}
	if fc.RuleExpandLimit != nil {
		cfg = cfg.WithRuleExpandLimit(*fc.RuleExpandLimit)
	}
	if fc.SoftLimit != nil {
		cfg.SoftLimit = *fc.SoftLimit
	}
	if fc.HardLimit != nil {
		cfg.HardLimit = *fc.HardLimit
	}
	if fc.LimitDepthLevel != nil {
		cfg.LimitDepthLevel = *fc.LimitDepthLevel
	}
	if fc.TextExpandLimit != nil {
		cfg.TextExpandLimit = *fc.TextExpandLimit
	}
	if fc.UpperBoundZeroOrMoreRepetition != nil {
		cfg.UpperBoundZeroOrMoreRepetition = *fc.UpperBoundZeroOrMoreRepetition
	}
	if fc.UpperBoundOneOrMoreRepetition != nil {
		cfg.UpperBoundOneOrMoreRepetition = *fc.UpperBoundOneOrMoreRepetition
	}
	if fc.UpperBoundAtLeastRepetition != nil {
		cfg.UpperBoundAtLeastRepetition = *fc.UpperBoundAtLeastRepetition
	}
	if fc.MaxAttemptsNegation != nil {
		cfg.MaxAttemptsNegation = *fc.MaxAttemptsNegation
	}
	return cfg
}

// LoadJSON reads a generator config file, validates it against the
// embedded JSON Schema, and overlays it onto Default().
func LoadJSON(path string) (*GeneratorConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var raw interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("config: %s is not valid JSON: %w", path, err)
	}
	if err := configSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("config: %s failed schema validation: %w", path, err)
	}

	var fc fileConfig
	if err := json.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	cfg := fc.overlay()
	return &cfg, nil
}

// LoadYAML reads a YAML generator config file and overlays it onto
// Default(). YAML configs are not run through the JSON Schema (the
// schema is expressed in JSON Schema terms and jsonschema validates
// decoded JSON-ish values; yaml.v3 decodes straight into the same
// fileConfig wire shape instead, matching this pack's lighter
// YAML-config precedent).
func LoadYAML(path string) (*GeneratorConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	cfg := fc.overlay()
	return &cfg, nil
}

// SeedFromLabel derives a deterministic int64 RNG seed from an
// arbitrary string label, so two invocations given the same label
// produce the same stream of samples regardless of machine or time.
func SeedFromLabel(label string) int64 {
	sum := blake2b.Sum256([]byte(label))
	var seed int64
	for i := 0; i < 8; i++ {
		seed = seed<<8 | int64(sum[i])
	}
	if seed < 0 {
		seed = -seed
	}
	return seed
}
