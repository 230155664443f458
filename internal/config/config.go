package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"  validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"      validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
	BCryptCost                  int    `mapstructure:"bcrypt_cost"                    validate:"gte=0,lte=31"`
}

// SchedulerConfig contains the notification scheduler settings: the
// polling cadence, the scan window width, the dispatch concurrency bound,
// and the per-notify timeout.
type SchedulerConfig struct {
	PollIntervalSeconds   int `mapstructure:"poll_interval_seconds"   validate:"required,gt=0"`
	WindowSeconds         int `mapstructure:"window_seconds"          validate:"required,gt=0"`
	MaxConcurrentDispatch int `mapstructure:"max_concurrent_dispatch" validate:"required,gt=0"`
	NotifyTimeoutSeconds  int `mapstructure:"notify_timeout_seconds"  validate:"required,gt=0"`
}
