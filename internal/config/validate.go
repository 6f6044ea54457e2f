package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.Leeway < 0 {
		return fmt.Errorf("auth.leeway must be >= 0 (got %v)", c.Auth.Leeway)
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	if err := c.Escalation.validate(); err != nil {
		return fmt.Errorf("escalation: %w", err)
	}

	return nil
}

func (e *EscalationConfig) validate() error {
	e.Schedule = strings.TrimSpace(e.Schedule)
	if e.ScheduleEnabled() {
		if _, err := ParseSchedule(e.Schedule); err != nil {
			return fmt.Errorf("schedule: %w", err)
		}
	}
	if e.Cooldown < 0 {
		return fmt.Errorf("cooldown must be >= 0 (got %v)", e.Cooldown)
	}
	if e.ScanTimeout <= 0 {
		return fmt.Errorf("scan_timeout must be > 0 (got %v)", e.ScanTimeout)
	}
	return nil
}

// ParseSchedule parses a standard 5-field cron expression or a descriptor
// such as "@hourly" or "@every 10m".
func ParseSchedule(spec string) (cron.Schedule, error) {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}
	return sched, nil
}
