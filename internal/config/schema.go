package config

// Config holds easel configuration.
// Loaded from ./config.yaml or ~/.easel/config.yaml.
type Config struct {
	Vision   VisionCfg   `mapstructure:"vision" yaml:"vision"`
	Presets  PresetsCfg  `mapstructure:"presets" yaml:"presets"`
	Defaults DefaultsCfg `mapstructure:"defaults" yaml:"defaults"`
}

// VisionCfg configures the vision-analysis provider.
type VisionCfg struct {
	Type              string `mapstructure:"type" yaml:"type"`     // "openai"
	Model             string `mapstructure:"model" yaml:"model"`   // vision-capable model name
	APIKey            string `mapstructure:"api_key" yaml:"api_key"` // supports ${ENV_VAR} syntax
	BaseURL           string `mapstructure:"base_url" yaml:"base_url,omitempty"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	MaxRetries        int    `mapstructure:"max_retries" yaml:"max_retries"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" yaml:"retry_delay_seconds"`
}

// PresetsCfg configures the style preset registry.
type PresetsCfg struct {
	// OverridePath points at a YAML file merged over the embedded styles.
	OverridePath string `mapstructure:"override_path" yaml:"override_path,omitempty"`
	// Watch reloads the override file on change.
	Watch bool `mapstructure:"watch" yaml:"watch"`
}

// DefaultsCfg specifies default request values for the CLI.
type DefaultsCfg struct {
	Category string `mapstructure:"category" yaml:"category"` // "pattern" or "product"
	Preset   string `mapstructure:"preset" yaml:"preset"`     // preset id, "auto" for none
}
