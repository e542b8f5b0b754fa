// Package config defines the typed configuration structs shared across layers.
package config

import "fmt"

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

func (c *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	// TokenExpireHours is the natural lifetime of an issued token.
	TokenExpireHours int `mapstructure:"token_expire_hours"`
	// RefreshWindowMinutes: a request arriving within this window of expiry
	// gets a replacement token attached to the response.
	RefreshWindowMinutes int `mapstructure:"refresh_window_minutes"`
	// GraceTTLSeconds: how long a retired token keeps working after its
	// replacement was minted, so in-flight clients can swap without failing.
	GraceTTLSeconds int `mapstructure:"grace_ttl_seconds"`
	BcryptCost      int `mapstructure:"bcrypt_cost"`
	// IDSecret keys the opaque id codec; changing it invalidates every
	// id previously handed to clients.
	IDSecret string `mapstructure:"id_secret"`
}

type EmailConfig struct {
	SMTPHost       string `mapstructure:"smtp_host"`
	SMTPPort       int    `mapstructure:"smtp_port"`
	SMTPUser       string `mapstructure:"smtp_user"`
	SMTPPassword   string `mapstructure:"smtp_password"`
	FromAddress    string `mapstructure:"from_address"`
	FromName       string `mapstructure:"from_name"`
	SendTimeoutSec int    `mapstructure:"send_timeout_sec"`
}

type SMSConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	AppKey   string `mapstructure:"app_key"`
	Secret   string `mapstructure:"secret"`
	// WindowSeconds is the per-equipment issuance window; a second captcha
	// request inside the window is rejected as too frequent.
	WindowSeconds int `mapstructure:"window_seconds"`
}

type WeChatConfig struct {
	CorpID string `mapstructure:"corp_id"`
	Secret string `mapstructure:"secret"`
}

type SchedulerConfig struct {
	// PatrolSweepSpec is a 5-field cron expression for the nightly
	// sweep that cancels overdue patrol plans.
	PatrolSweepSpec string `mapstructure:"patrol_sweep_spec"`
}
