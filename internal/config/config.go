// Package config implements WindowAnchor's layered configuration: a
// zero-value RawConfig per source is merged pointer-field by
// pointer-field into a single effective Config (spec's external
// configuration is deliberately out of core scope). Bootstrap loads the
// result into App.Config; the core engines take no values from it, and
// the file resolver uses its own fixed pool sizes of 50 and 30.
package config

// Jumplist pool-size defaults, named directly after the spec §4.3/§4.3.1
// figures: 50 for the Tier 1.5 exact-match pool, 30 for Tier 2's
// inference pool, 5 as a default query max. GetRecentFilesForApp has no
// default max of its own; every caller passes one explicitly.
const (
	DefaultExactMatchPoolSize = 50
	DefaultInferencePoolSize  = 30
	DefaultQueryMax           = 5
)

const defaultLogLevel = "info"

// JumplistConfig holds the resolved candidate-pool sizes. FileResolver
// does not read them; its pools are fixed at the default values.
type JumplistConfig struct {
	ExactMatchPoolSize int
	InferencePoolSize  int
	DefaultQueryMax    int
}

// Config is the fully-resolved, non-pointer configuration held in
// App.Config.
type Config struct {
	DefaultWorkspace     string
	MonitorAliases       map[string]string
	SaveWithFilesDefault bool
	Jumplist             JumplistConfig
	LogLevel             string
}

// DefaultConfig returns the configuration used when no layer overrides a
// setting.
func DefaultConfig() *Config {
	return &Config{
		DefaultWorkspace:     "",
		MonitorAliases:       map[string]string{},
		SaveWithFilesDefault: true,
		Jumplist: JumplistConfig{
			ExactMatchPoolSize: DefaultExactMatchPoolSize,
			InferencePoolSize:  DefaultInferencePoolSize,
			DefaultQueryMax:    DefaultQueryMax,
		},
		LogLevel: defaultLogLevel,
	}
}

// BuildEffectiveConfig overlays raw onto DefaultConfig, producing the
// resolved Config.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if raw.DefaultWorkspace != nil {
		cfg.DefaultWorkspace = *raw.DefaultWorkspace
	}
	if raw.MonitorAliases != nil {
		cfg.MonitorAliases = raw.MonitorAliases
	}
	if raw.SaveWithFilesDefault != nil {
		cfg.SaveWithFilesDefault = *raw.SaveWithFilesDefault
	}
	if raw.Jumplist != nil {
		if raw.Jumplist.ExactMatchPoolSize != nil {
			cfg.Jumplist.ExactMatchPoolSize = *raw.Jumplist.ExactMatchPoolSize
		}
		if raw.Jumplist.InferencePoolSize != nil {
			cfg.Jumplist.InferencePoolSize = *raw.Jumplist.InferencePoolSize
		}
		if raw.Jumplist.DefaultQueryMax != nil {
			cfg.Jumplist.DefaultQueryMax = *raw.Jumplist.DefaultQueryMax
		}
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}

	return cfg
}
