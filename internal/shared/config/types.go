package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	Timezone       string   `mapstructure:"timezone"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`

	// Per client IP; zero disables the window. Requires Redis.
	RateLimitPerMinute int `mapstructure:"rate_limit_per_minute"`
	RateLimitPerHour   int `mapstructure:"rate_limit_per_hour"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	Path            string `mapstructure:"path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=true&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	Issuer           string `mapstructure:"issuer"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// CacheConfig selects the analytics/overdue cache backend:
// "redis", "memory" (badger in-memory) or "none".
type CacheConfig struct {
	Backend string `mapstructure:"backend"`
}

type PermissionConfig struct {
	// PersistPolicies stores the role table through the casbin gorm adapter.
	PersistPolicies bool `mapstructure:"persist_policies"`
}

type HelpdeskConfig struct {
	OverdueThresholdHours int `mapstructure:"overdue_threshold_hours"`
	OverdueCacheSeconds   int `mapstructure:"overdue_cache_seconds"`
	StatsWindowDays       int `mapstructure:"stats_window_days"`
	StatsRefreshMinutes   int `mapstructure:"stats_refresh_minutes"`
	DefaultPageSize       int `mapstructure:"default_page_size"`
	EventBufferSize       int `mapstructure:"event_buffer_size"`
}

func (h *HelpdeskConfig) OverdueThreshold() time.Duration {
	return time.Duration(h.OverdueThresholdHours) * time.Hour
}

func (h *HelpdeskConfig) OverdueCacheTTL() time.Duration {
	return time.Duration(h.OverdueCacheSeconds) * time.Second
}

func (h *HelpdeskConfig) StatsRefreshInterval() time.Duration {
	return time.Duration(h.StatsRefreshMinutes) * time.Minute
}
