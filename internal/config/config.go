package config

import (
	"time"

	"github.com/netobserve/location-audit/internal/log"
	"github.com/netobserve/location-audit/internal/reporting/json"
	"github.com/netobserve/location-audit/internal/reporting/text"
)

type Config struct {
	Settings  SettingsConfig  `mapstructure:"settings"`
	Workbook  WorkbookConfig  `mapstructure:"workbook"`
	Audit     AuditConfig     `mapstructure:"audit"`
	Inventory InventoryConfig `mapstructure:"inventory"`
	DNS       DNSConfig       `mapstructure:"dns"`
}

type SettingsConfig struct {
	LogLevel     log.Level       `mapstructure:"log_level"`
	LogFormat    log.Format      `mapstructure:"log_format"`
	Concurrency  int             `mapstructure:"concurrency" validate:"gte=0"`
	ReporterType string          `mapstructure:"reporter" validate:"oneof=text json"`
	Reporter     ReporterConfigs `mapstructure:"reporter_config"`
}

type WorkbookConfig struct {
	Path         string `mapstructure:"path" validate:"required"`
	DeviceColumn int    `mapstructure:"device_column" validate:"gte=0"`
}

type AuditConfig struct {
	// LocationFormat builds the expected location from column references,
	// e.g. "$B.$C.$D.$E".
	LocationFormat string `mapstructure:"location_format"`
	DomainSuffix   string `mapstructure:"domain_suffix"`
}

type InventoryConfig struct {
	APIURL       string        `mapstructure:"api_url" validate:"required,url"`
	APIToken     string        `mapstructure:"api_token" validate:"required"`
	VerifyTLS    bool          `mapstructure:"verify_tls"`
	Timeout      time.Duration `mapstructure:"timeout"`
	RateLimitRPS int           `mapstructure:"rate_limit_rps" validate:"gte=0"`
}

type DNSConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type ReporterConfigs struct {
	Text *text.Config `mapstructure:"text,omitempty"`
	JSON *json.Config `mapstructure:"json,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Settings: SettingsConfig{
			LogLevel:     log.LevelInfo,
			LogFormat:    log.FormatText,
			Concurrency:  5,
			ReporterType: text.ReporterTypeText,
			Reporter: ReporterConfigs{
				Text: &text.Config{NoColor: false},
			},
		},
		Workbook: WorkbookConfig{
			DeviceColumn: 0,
		},
		Audit: AuditConfig{
			LocationFormat: "$B.$C.$D.$E",
			DomainSuffix:   ".sac.ragingwire.net",
		},
		Inventory: InventoryConfig{
			VerifyTLS:    false,
			Timeout:      30 * time.Second,
			RateLimitRPS: 10,
		},
		DNS: DNSConfig{
			Timeout: 5 * time.Second,
		},
	}
}
