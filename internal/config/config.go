package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	GitHub   GitHubConfig   `mapstructure:"github"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	// JWTSecret is the HMAC signing secret. Short secrets weaken every token,
	// so 32 characters is the enforced minimum.
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// TokenLifetimeMinutes is how long issued tokens stay valid.
	// Defaults to 6000 minutes (100 hours).
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// GitHubConfig contains settings for the GitHub repo-listing collaborator.
// The token is optional; without it requests run against the unauthenticated
// rate limit.
type GitHubConfig struct {
	APIURL string `mapstructure:"api_url" validate:"required,url"`
	Token  string `mapstructure:"token"`
}
