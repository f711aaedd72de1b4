package config

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Vision: VisionCfg{
			Type:              "openai",
			Model:             "gpt-4o-mini",
			APIKey:            "${OPENAI_API_KEY}",
			TimeoutSeconds:    60,
			MaxRetries:        3,
			RetryDelaySeconds: 2,
		},
		Presets: PresetsCfg{
			OverridePath: "",
			Watch:        false,
		},
		Defaults: DefaultsCfg{
			Category: "pattern",
			Preset:   "auto",
		},
	}
}
