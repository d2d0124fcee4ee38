package json

import (
	"context"
	"io"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/netobserve/location-audit/internal/core/domain"
	"github.com/netobserve/location-audit/internal/core/ports"
	"github.com/netobserve/location-audit/internal/errors"
)

const ReporterTypeJSON = "json"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Config struct{}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
}

func NewReporter(cfg Config, logger ports.Logger) (*Reporter, error) {
	return &Reporter{
		config: cfg,
		writer: os.Stdout,
		logger: logger,
	}, nil
}

type jsonReport struct {
	Sheets  []jsonSheet   `json:"sheets"`
	Total   jsonSheet     `json:"total"`
	Skipped []jsonSkipped `json:"skipped_sheets,omitempty"`
}

type jsonSheet struct {
	SheetName       string `json:"sheet_name"`
	TotalDevices    int    `json:"total_devices"`
	DevicesFound    int    `json:"devices_found"`
	DevicesNotFound int    `json:"devices_not_found"`
	Compliant       int    `json:"compliant_locations"`
	NonCompliant    int    `json:"non_compliant_locations"`
	ProcessedDate   string `json:"processed_date,omitempty"`
}

type jsonSkipped struct {
	SheetName string `json:"sheet_name"`
	Reason    string `json:"reason"`
}

func (r *Reporter) Report(ctx context.Context, report domain.RunReport) error {
	out := jsonReport{
		Sheets: make([]jsonSheet, 0, len(report.Sheets)),
		Total:  toJSONSheet(report.Total),
	}
	for _, s := range report.Sheets {
		if ctx.Err() != nil {
			r.logger.Warnf(ctx, "JSON report generation cancelled")
			return ctx.Err()
		}
		out.Sheets = append(out.Sheets, toJSONSheet(s))
	}
	for _, s := range report.Skipped {
		out.Skipped = append(out.Skipped, jsonSkipped{SheetName: s.SheetName, Reason: s.Reason})
	}

	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(err, errors.CodeReportError, "failed encoding JSON report")
	}
	return nil
}

func toJSONSheet(s domain.SheetSummary) jsonSheet {
	out := jsonSheet{
		SheetName:       s.SheetName,
		TotalDevices:    s.TotalDevices,
		DevicesFound:    s.FoundCount,
		DevicesNotFound: s.NotFoundCount,
		Compliant:       s.CompliantCount,
		NonCompliant:    s.NonCompliantCount,
	}
	if !s.ProcessedAt.IsZero() {
		out.ProcessedDate = s.ProcessedAt.Format(time.DateTime)
	}
	return out
}
