package text

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/netobserve/location-audit/internal/core/domain"
	"github.com/netobserve/location-audit/internal/core/ports"
)

const ReporterTypeText = "text"

type Config struct {
	NoColor bool `mapstructure:"no_color"`
}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
}

func NewReporter(cfg Config, logger ports.Logger) (*Reporter, error) {
	if cfg.NoColor || !isTerminal(os.Stdout) {
		color.NoColor = true
	}

	return &Reporter{
		config: cfg,
		writer: os.Stdout,
		logger: logger,
	}, nil
}

func isTerminal(f *os.File) bool {
	stat, _ := f.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func (r *Reporter) Report(ctx context.Context, report domain.RunReport) error {
	if len(report.Sheets) == 0 && len(report.Skipped) == 0 {
		fmt.Fprintln(r.writer, "No sheets found or processed.")
		return nil
	}

	tw := tabwriter.NewWriter(r.writer, 0, 8, 2, ' ', 0)
	defer tw.Flush()

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintln(tw, "Location Audit Report")
	fmt.Fprintln(tw, "=====================")
	fmt.Fprintln(tw, "Sheet\tDevices\tFound\tNot Found\tCompliant\tNon-Compliant")
	fmt.Fprintln(tw, "-----\t-------\t-----\t---------\t---------\t-------------")

	for _, s := range report.Sheets {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%s\n",
			s.SheetName, s.TotalDevices, s.FoundCount,
			yellow(s.NotFoundCount), green(s.CompliantCount), red(s.NonCompliantCount))
	}

	t := report.Total
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
		bold(t.SheetName), bold(t.TotalDevices), bold(t.FoundCount),
		yellow(t.NotFoundCount), green(t.CompliantCount), red(t.NonCompliantCount))

	if len(report.Skipped) > 0 {
		fmt.Fprintln(tw, "\nSkipped sheets:")
		for _, s := range report.Skipped {
			fmt.Fprintf(tw, "%s\t%s\n", yellow(s.SheetName), s.Reason)
		}
	}

	return nil
}
