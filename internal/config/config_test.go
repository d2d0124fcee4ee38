package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netobserve/location-audit/internal/config"
	"github.com/netobserve/location-audit/internal/log"
	"github.com/netobserve/location-audit/internal/reporting/text"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	assert.Equal(t, log.LevelInfo, cfg.Settings.LogLevel)
	assert.Equal(t, log.FormatText, cfg.Settings.LogFormat)
	assert.Equal(t, 5, cfg.Settings.Concurrency)
	assert.Equal(t, text.ReporterTypeText, cfg.Settings.ReporterType)
	require.NotNil(t, cfg.Settings.Reporter.Text)

	assert.Equal(t, 0, cfg.Workbook.DeviceColumn)
	assert.Empty(t, cfg.Workbook.Path)

	assert.Equal(t, "$B.$C.$D.$E", cfg.Audit.LocationFormat)
	assert.Equal(t, ".sac.ragingwire.net", cfg.Audit.DomainSuffix)

	assert.False(t, cfg.Inventory.VerifyTLS)
	assert.Equal(t, 30*time.Second, cfg.Inventory.Timeout)
	assert.Equal(t, 10, cfg.Inventory.RateLimitRPS)

	assert.Equal(t, 5*time.Second, cfg.DNS.Timeout)
}
