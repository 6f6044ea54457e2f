package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
	Escalation EscalationConfig `yaml:"escalation"`
	Assignment AssignmentConfig `yaml:"assignment"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds bearer-token validation settings. Tokens are issued by
// the identity service; this service only verifies them.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	JWTIssuer string        `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"grievance"`
	Leeway    time.Duration `yaml:"leeway"     env:"AUTH_LEEWAY"     env-default:"30s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// EscalationConfig holds escalation scan settings.
type EscalationConfig struct {
	// Schedule is a cron expression for the periodic scan. "off" disables it.
	Schedule        string        `yaml:"schedule"          env:"ESCALATION_SCHEDULE"          env-default:"*/15 * * * *"`
	Cooldown        time.Duration `yaml:"cooldown"          env:"ESCALATION_COOLDOWN"          env-default:"0s"`
	NotifyOnFailure bool          `yaml:"notify_on_failure" env:"ESCALATION_NOTIFY_ON_FAILURE" env-default:"false"`
	ScanTimeout     time.Duration `yaml:"scan_timeout"      env:"ESCALATION_SCAN_TIMEOUT"      env-default:"5m"`
}

// AssignmentConfig holds case routing settings.
type AssignmentConfig struct {
	// ManualOnly turns off routing of new cases to the submitter's department.
	ManualOnly bool `yaml:"manual_only" env:"ASSIGNMENT_MANUAL_ONLY" env-default:"false"`
}

// ScheduleDisabled is the schedule value that turns the periodic scan off.
// An empty value cannot be used from YAML or ENV because cleanenv replaces
// it with the default.
const ScheduleDisabled = "off"

// ScheduleEnabled reports whether the periodic scan should run.
func (c EscalationConfig) ScheduleEnabled() bool {
	s := strings.ToLower(strings.TrimSpace(c.Schedule))
	return s != "" && s != ScheduleDisabled && s != "-"
}
