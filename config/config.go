// Package config defines the derivation engine's tunable convergence
// bounds and the ambient loaders around them: JSON/YAML config files
// and deterministic seed derivation.
package config

// GeneratorConfig holds every option the derivation engine consults.
type GeneratorConfig struct {
	// TerminalsLimit stops generation after this many appended
	// terminal units. It is consulted only when HasTerminalsLimit is
	// true.
	TerminalsLimit    uint64
	HasTerminalsLimit bool

	// RuleExpandLimit stops expanding identifiers after this many
	// expansions. It is consulted only when HasRuleExpandLimit is true.
	RuleExpandLimit    uint64
	HasRuleExpandLimit bool

	// SoftLimit is the work-stack watermark past which Rep/RepOnce
	// collapse to degenerate ranges.
	SoftLimit uint64

	// HardLimit caps the number of nodes popped from the work stack.
	HardLimit uint64

	// LimitDepthLevel caps per-frame identifier-expansion depth.
	LimitDepthLevel uint64

	// TextExpandLimit is substituted wherever a limit fires.
	TextExpandLimit string

	UpperBoundZeroOrMoreRepetition uint64
	UpperBoundOneOrMoreRepetition  uint64
	UpperBoundAtLeastRepetition    uint64

	// MaxAttemptsNegation bounds retries per `!A ~ B`.
	MaxAttemptsNegation uint64
}

// Default returns the documented default configuration.
func Default() GeneratorConfig {
	return GeneratorConfig{
		SoftLimit:                      10000,
		HardLimit:                      25000,
		LimitDepthLevel:                200,
		TextExpandLimit:                "",
		UpperBoundZeroOrMoreRepetition: 5,
		UpperBoundOneOrMoreRepetition:  5,
		UpperBoundAtLeastRepetition:    10,
		MaxAttemptsNegation:            100,
	}
}

// WithTerminalsLimit returns a copy of cfg with TerminalsLimit set.
func (cfg GeneratorConfig) WithTerminalsLimit(n uint64) GeneratorConfig {
	cfg.TerminalsLimit = n
	cfg.HasTerminalsLimit = true
	return cfg
}

// WithRuleExpandLimit returns a copy of cfg with RuleExpandLimit set.
func (cfg GeneratorConfig) WithRuleExpandLimit(n uint64) GeneratorConfig {
	cfg.RuleExpandLimit = n
	cfg.HasRuleExpandLimit = true
	return cfg
}

// saturatingSubU64 computes a-b without underflowing past zero,
// mirroring Rust's saturating_sub: a child negation invocation must
// never wrap a uint64 budget negative.
func saturatingSubU64(a, b uint64) uint64 {
	if b >= a {
		return 0
	}
	return a - b
}

// forNegationAttempt derives the tightened child config a single
// Negation Evaluator attempt runs with: a fixed small soft limit, the
// hard limit reduced by nodes already spent, and the
// rule-expand limit (if any) reduced by idents already expanded — all
// via saturating subtraction so a generous child never goes negative.
func (cfg GeneratorConfig) forNegationAttempt(nodesAlreadyProcessed, identsAlreadyExpanded uint64) GeneratorConfig {
	child := cfg
	child.SoftLimit = 20
	child.HardLimit = saturatingSubU64(cfg.HardLimit, nodesAlreadyProcessed)
	if cfg.HasRuleExpandLimit {
		child.RuleExpandLimit = saturatingSubU64(cfg.RuleExpandLimit, identsAlreadyExpanded)
	}
	return child
}

// ForNegationAttempt is the exported form of forNegationAttempt, used
// by the engine package's Negation Evaluator.
func (cfg GeneratorConfig) ForNegationAttempt(nodesAlreadyProcessed, identsAlreadyExpanded uint64) GeneratorConfig {
	return cfg.forNegationAttempt(nodesAlreadyProcessed, identsAlreadyExpanded)
}
