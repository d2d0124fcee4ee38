package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/netobserve/location-audit/internal/adapters/dns"
	"github.com/netobserve/location-audit/internal/adapters/inventory/librenms"
	"github.com/netobserve/location-audit/internal/adapters/workbook/xlsx"
	"github.com/netobserve/location-audit/internal/config"
	"github.com/netobserve/location-audit/internal/core/classify"
	"github.com/netobserve/location-audit/internal/core/ports"
	"github.com/netobserve/location-audit/internal/core/service"
	"github.com/netobserve/location-audit/internal/errors"
	"github.com/netobserve/location-audit/internal/log"
	jsonreport "github.com/netobserve/location-audit/internal/reporting/json"
	"github.com/netobserve/location-audit/internal/reporting/text"
)

// BuildApplicationFromViper wires config, logger, adapters and engine.
// A .env file in the working directory is honored so the API token can
// stay out of config files.
func BuildApplicationFromViper(ctx context.Context, v *viper.Viper) (*Application, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env file: %v\n", err)
	}

	cfg := config.DefaultConfig()
	err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
	)))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigParseError, "failed to unmarshal configuration")
	}

	logCfg := log.Config{Level: cfg.Settings.LogLevel, Format: cfg.Settings.LogFormat}
	logger, err := log.NewLogger(logCfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "logger initialization failed")
	}
	logger.Infof(ctx, "Logger initialized (Level: %s, Format: %s)", cfg.Settings.LogLevel, cfg.Settings.LogFormat)
	if v.ConfigFileUsed() != "" {
		logger.Debugf(ctx, "Using configuration file: %s", v.ConfigFileUsed())
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(ctx, cfg); err != nil {
		var details strings.Builder
		details.WriteString("Configuration validation failed:")
		for _, fe := range err.(validator.ValidationErrors) {
			details.WriteString(fmt.Sprintf("\n - Field '%s': failed on '%s' validation (value: '%v')", fe.Namespace(), fe.Tag(), fe.Value()))
		}
		wrappedErr := errors.NewUserFacing(errors.CodeConfigValidation, details.String(), "Please check your configuration file or flags.")
		logger.Errorf(ctx, wrappedErr, "Configuration validation failed")
		return nil, wrappedErr
	}
	logger.Debugf(ctx, "Configuration validated successfully")

	wbLog := logger.WithFields(map[string]any{"component": "workbook"})
	workbook, err := xlsx.Open(cfg.Workbook.Path, wbLog)
	if err != nil {
		return nil, err
	}
	wbLog.Infof(ctx, "Using workbook: %s", cfg.Workbook.Path)

	invLog := logger.WithFields(map[string]any{"component": "inventory"})
	inventory, err := librenms.NewClient(librenms.Config{
		APIURL:       cfg.Inventory.APIURL,
		APIToken:     cfg.Inventory.APIToken,
		VerifyTLS:    cfg.Inventory.VerifyTLS,
		Timeout:      cfg.Inventory.Timeout,
		RateLimitRPS: cfg.Inventory.RateLimitRPS,
	}, invLog)
	if err != nil {
		return nil, err
	}
	invLog.Infof(ctx, "Using inventory API at %s (TLS verification: %t)", cfg.Inventory.APIURL, cfg.Inventory.VerifyTLS)

	resolver := dns.NewResolver(dns.Config{Timeout: cfg.DNS.Timeout},
		logger.WithFields(map[string]any{"component": "dns"}))

	classifier := classify.New(cfg.Audit.DomainSuffix, resolver,
		logger.WithFields(map[string]any{"component": "classifier"}))

	var reporter ports.Reporter
	switch cfg.Settings.ReporterType {
	case text.ReporterTypeText:
		textCfg := cfg.Settings.Reporter.Text
		if textCfg == nil {
			textCfg = config.DefaultConfig().Settings.Reporter.Text
		}
		reporter, err = text.NewReporter(*textCfg,
			logger.WithFields(map[string]any{"component": "reporter", "type": text.ReporterTypeText}))
	case jsonreport.ReporterTypeJSON:
		reporter, err = jsonreport.NewReporter(jsonreport.Config{},
			logger.WithFields(map[string]any{"component": "reporter", "type": jsonreport.ReporterTypeJSON}))
	default:
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("unsupported reporter type: %s", cfg.Settings.ReporterType), "Supported: text, json")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize reporter")
	}

	engine, err := service.NewAuditEngine(
		workbook, workbook, inventory, classifier, reporter,
		logger.WithFields(map[string]any{"component": "engine"}),
		cfg.Audit.LocationFormat,
		cfg.Workbook.DeviceColumn,
		cfg.Settings.Concurrency,
	)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize audit engine")
	}

	logger.Infof(ctx, "Application bootstrap complete")
	return NewApplication(engine, logger), nil
}
