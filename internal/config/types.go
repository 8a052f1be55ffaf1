package config

// Config is the top-level wellbot configuration, corresponding to wellbot.yml.
type Config struct {
	Port            int    `yaml:"port" koanf:"port"`
	DataDir         string `yaml:"data_dir" koanf:"data_dir"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`

	JWTSecret     string `yaml:"jwt_secret" koanf:"jwt_secret"`
	TokenTTLHours int    `yaml:"token_ttl_hours" koanf:"token_ttl_hours"`

	AdminEmail    string `yaml:"admin_email" koanf:"admin_email"`
	AdminPassword string `yaml:"admin_password" koanf:"admin_password"`

	DefaultLanguage string `yaml:"default_language" koanf:"default_language"`

	Translate TranslateConfig `yaml:"translate" koanf:"translate"`
}

// TranslateConfig holds settings for the external translation call.
type TranslateConfig struct {
	Enabled        bool   `yaml:"enabled" koanf:"enabled"`
	Endpoint       string `yaml:"endpoint" koanf:"endpoint"`
	TimeoutSeconds int    `yaml:"timeout_seconds" koanf:"timeout_seconds"`
}
