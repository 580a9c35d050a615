package config

// Sources names the file locations configuration is read from. Empty paths
// skip their layer.
type Sources struct {
	// ProfilePath is the TOML profile file.
	ProfilePath string

	// SettingsPath is the VS Code-style settings.json.
	SettingsPath string
}

// Load assembles the effective configuration from all layers and validates
// it. On any error the built-in defaults are returned alongside it, so
// callers always get a usable config.
func Load(sources Sources) (Config, error) {
	cfg := Default()

	if sources.ProfilePath != "" {
		if err := applyTOML(&cfg, sources.ProfilePath); err != nil {
			return Default(), err
		}
	}
	if sources.SettingsPath != "" {
		if err := applySettingsJSON(&cfg, sources.SettingsPath); err != nil {
			return Default(), err
		}
	}
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}
