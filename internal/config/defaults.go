package config

const defaultBind = "0.0.0.0:5500"

// defaultConfig returns a Config populated with every default value, used
// as the unmarshal target so a config file only needs to name what it
// overrides.
func defaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills unset fields with MXD's defaults. Called after
// unmarshalling a config file and environment overrides, so zero values
// left behind are genuinely unset, not the user's choice of zero.
func ApplyDefaults(cfg *Config) {
	if cfg.Bind == "" {
		cfg.Bind = defaultBind
	}
	cfg.Database.ApplyDefaults()
	applyArgon2Defaults(&cfg.Argon2)
	applyLoggingDefaults(&cfg.Logging)
	applyMetricsDefaults(&cfg.Metrics)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyBannerDefaults(&cfg.Banner)
}

func applyArgon2Defaults(cfg *Argon2Config) {
	if cfg.MCost == 0 {
		cfg.MCost = 64 * 1024
	}
	if cfg.TCost == 0 {
		cfg.TCost = 1
	}
	if cfg.PCost == 0 {
		cfg.PCost = 4
	}
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	if cfg.Format == "" {
		cfg.Format = "text"
	}
}

func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Bind == "" {
		cfg.Bind = "127.0.0.1:9090"
	}
}

func applyTelemetryDefaults(cfg *TelemetryConfig) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:4317"
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 1.0
	}
}

func applyBannerDefaults(cfg *BannerConfig) {
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
}
