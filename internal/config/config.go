package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"      validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database"    validate:"required"`
	Auth        AuthConfig        `mapstructure:"auth"        validate:"required"`
	LLM         LLMConfig         `mapstructure:"llm"`
	Quota       QuotaConfig       `mapstructure:"quota"       validate:"required"`
	Progression ProgressionConfig `mapstructure:"progression"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error fatal"`
}

// Supported database drivers
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig selects and locates the persistence backend.
// URL is a postgres connection URL or a sqlite file path; it is ignored by
// the memory driver.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=memory postgres sqlite"`
	URL    string `mapstructure:"url"    validate:"required_unless=Driver memory"`
}

// AuthConfig contains the settings used to verify bearer tokens.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lt=44640"` // Max 31 days
}

// LLMConfig contains the AI coaching settings. With Enabled false (or no
// API key) the coach falls back to a static advisor.
type LLMConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required_if=Enabled true"`
	ModelName    string `mapstructure:"model_name"     validate:"required"`

	// Retry settings for transient API failures
	MaxRetries        int `mapstructure:"max_retries"         validate:"gte=0,lte=5"`
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds" validate:"gte=0,lte=60"`
}

// QuotaConfig holds the free-tier limits enforced by the usage accountant.
type QuotaConfig struct {
	FreeWorkoutLimit    int    `mapstructure:"free_workout_limit"     validate:"gte=0"`
	DailyAIRequestLimit int    `mapstructure:"daily_ai_request_limit" validate:"gte=0"`
	Timezone            string `mapstructure:"timezone"               validate:"required,timezone"`
}

// ProgressionConfig overrides the thresholds of the load progression rule.
type ProgressionConfig struct {
	LowEffortRPE      float64 `mapstructure:"low_effort_rpe"      validate:"gt=0,lte=10"`
	DefaultTargetReps int     `mapstructure:"default_target_reps" validate:"gt=0"`
}
