package config

// RawJumplistConfig carries the three tier-specific candidate-pool sizes,
// each independently overridable in the config file (the FileResolver
// pipeline itself uses fixed pools and does not read these)
// (spec §4.3/§4.3.1: Tier 1.5 searches "a pool of up to 50 entries",
// Tier 2 "collect up to 30 candidate paths", and 5 as a default query
// max; GetRecentFilesForApp itself takes its max from each caller).
type RawJumplistConfig struct {
	ExactMatchPoolSize    *int `yaml:"exact_match_pool_size"`
	InferencePoolSize     *int `yaml:"inference_pool_size"`
	DefaultQueryMax       *int `yaml:"default_query_max"`
}

// RawConfig is the on-disk configuration shape: every field is optional
// so a layer can leave a setting untouched, following the pointer-merge
// pattern used throughout this codebase's layered configuration.
type RawConfig struct {
	DefaultWorkspace     *string           `yaml:"default_workspace"`
	MonitorAliases       map[string]string `yaml:"monitor_aliases"`
	SaveWithFilesDefault *bool             `yaml:"save_with_files_default"`
	Jumplist             *RawJumplistConfig `yaml:"jumplist"`
	LogLevel             *string           `yaml:"log_level"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.DefaultWorkspace != nil {
		out.DefaultWorkspace = overlay.DefaultWorkspace
	}
	if overlay.MonitorAliases != nil {
		if out.MonitorAliases == nil {
			out.MonitorAliases = make(map[string]string, len(overlay.MonitorAliases))
		}
		for k, v := range overlay.MonitorAliases {
			out.MonitorAliases[k] = v
		}
	}
	if overlay.SaveWithFilesDefault != nil {
		out.SaveWithFilesDefault = overlay.SaveWithFilesDefault
	}
	if overlay.Jumplist != nil {
		if out.Jumplist == nil {
			out.Jumplist = &RawJumplistConfig{}
		}
		if overlay.Jumplist.ExactMatchPoolSize != nil {
			out.Jumplist.ExactMatchPoolSize = overlay.Jumplist.ExactMatchPoolSize
		}
		if overlay.Jumplist.InferencePoolSize != nil {
			out.Jumplist.InferencePoolSize = overlay.Jumplist.InferencePoolSize
		}
		if overlay.Jumplist.DefaultQueryMax != nil {
			out.Jumplist.DefaultQueryMax = overlay.Jumplist.DefaultQueryMax
		}
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}

	return out
}
