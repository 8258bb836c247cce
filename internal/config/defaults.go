package config

// applyDefaults fills in default values for unset configuration fields.
func applyDefaults(cfg *Config) {
	for name, target := range cfg.Targets {
		// Default cwd is the project root
		if target.Cwd == "" {
			target.Cwd = "."
		}
		cfg.Targets[name] = target
	}
}
