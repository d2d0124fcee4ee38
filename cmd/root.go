package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/netobserve/location-audit/internal/app"
	apperrors "github.com/netobserve/location-audit/internal/errors"
)

var (
	cfgFile        string
	workbookPath   string
	logLevel       string
	logFormat      string
	locationFormat string
	domainSuffix   string
	deviceColumn   int
)

var rootCmd = &cobra.Command{
	Use:   "locaudit",
	Short: "Audits device locations in an Excel workbook against the inventory API.",
	Long: `locaudit reads device names from a multi-sheet Excel workbook, queries the
device inventory API for each one, annotates every row with live inventory data
and a location-compliance verdict, and appends a per-sheet summary. Devices the
inventory does not know are checked against DNS as a fallback.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		application, bootstrapErr := app.BuildApplicationFromViper(cmd.Context(), viper.GetViper())
		if bootstrapErr != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Application initialization failed: %v\n", bootstrapErr)
			var appErr *apperrors.AppError
			if errors.As(bootstrapErr, &appErr) && appErr.IsUserFacing {
				fmt.Fprintf(os.Stderr, "Error Details: %s\n", appErr.Message)
				if appErr.SuggestedAction != "" {
					fmt.Fprintf(os.Stderr, "Suggestion: %s\n", appErr.SuggestedAction)
				}
			}
			return bootstrapErr
		}

		runErr := application.Run(cmd.Context())
		if runErr != nil {
			userMsg, suggestion, _ := apperrors.GetUserFacingMessage(runErr)
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", userMsg)
			if suggestion != "" {
				fmt.Fprintf(os.Stderr, "Suggestion: %s\n", suggestion)
			}
			return runErr
		}

		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path (default is .locaudit.yaml)")
	rootCmd.PersistentFlags().StringVar(&workbookPath, "workbook", "", "Path to the Excel workbook to audit")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Override log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&locationFormat, "location-format", "", "Expected-location template with column references (e.g. '$B.$C.$D.$E')")
	rootCmd.PersistentFlags().StringVar(&domainSuffix, "domain-suffix", "", "Domain suffix appended to bare device names")
	rootCmd.PersistentFlags().IntVar(&deviceColumn, "device-column", 0, "Zero-based index of the column containing device names")

	viper.BindPFlag("workbook.path", rootCmd.PersistentFlags().Lookup("workbook"))
	viper.BindPFlag("workbook.device_column", rootCmd.PersistentFlags().Lookup("device-column"))
	viper.BindPFlag("settings.log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("settings.log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("audit.location_format", rootCmd.PersistentFlags().Lookup("location-format"))
	viper.BindPFlag("audit.domain_suffix", rootCmd.PersistentFlags().Lookup("domain-suffix"))

	viper.SetEnvPrefix("LOCAUDIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

func initializeConfig(cmd *cobra.Command) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(".locaudit")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using configuration file:", viper.ConfigFileUsed())
	} else {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Fprintln(os.Stderr, "Config file not found, using defaults and environment variables.")
		} else {
			return apperrors.Wrap(err, apperrors.CodeConfigReadError, "failed to read config file")
		}
	}

	return nil
}
