package config

// DefaultTranslateEndpoint is the public Google translate endpoint the
// translation client talks to.
const DefaultTranslateEndpoint = "https://translate.googleapis.com/translate_a/single"

// DefaultConfig returns a Config with sensible defaults. The JWT secret and
// admin credentials have no defaults on purpose; Validate rejects a config
// without them.
func DefaultConfig() *Config {
	return &Config{
		Port:            8080,
		DataDir:         "data",
		TokenTTLHours:   168,
		DefaultLanguage: "English",
		Translate: TranslateConfig{
			Enabled:        true,
			Endpoint:       DefaultTranslateEndpoint,
			TimeoutSeconds: 5,
		},
	}
}
