package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/netobserve/location-audit/internal/core/classify"
	"github.com/netobserve/location-audit/internal/core/domain"
	"github.com/netobserve/location-audit/internal/core/ports"
	"github.com/netobserve/location-audit/internal/core/template"
	"github.com/netobserve/location-audit/internal/errors"
)

// AuditEngine drives the audit: sheets sequentially, rows within a sheet
// through a bounded worker pool with results restored to row order.
type AuditEngine struct {
	source         ports.WorkbookSource
	sink           ports.WorkbookSink
	inventory      ports.InventoryClient
	classifier     *classify.Classifier
	reporter       ports.Reporter
	logger         ports.Logger
	locationFormat string
	deviceColumn   int
	concurrency    int
	now            func() time.Time
}

func NewAuditEngine(
	source ports.WorkbookSource,
	sink ports.WorkbookSink,
	inventory ports.InventoryClient,
	classifier *classify.Classifier,
	reporter ports.Reporter,
	logger ports.Logger,
	locationFormat string,
	deviceColumn int,
	concurrency int,
) (*AuditEngine, error) {
	if source == nil || sink == nil {
		return nil, errors.New(errors.CodeConfigValidation, "workbook source and sink cannot be nil")
	}
	if inventory == nil {
		return nil, errors.New(errors.CodeConfigValidation, "inventory client cannot be nil")
	}
	if classifier == nil {
		return nil, errors.New(errors.CodeConfigValidation, "classifier cannot be nil")
	}
	if reporter == nil {
		return nil, errors.New(errors.CodeConfigValidation, "reporter cannot be nil")
	}
	if deviceColumn < 0 {
		return nil, errors.New(errors.CodeConfigValidation, "device column index cannot be negative")
	}
	if concurrency <= 0 {
		concurrency = 5
	}

	return &AuditEngine{
		source:         source,
		sink:           sink,
		inventory:      inventory,
		classifier:     classifier,
		reporter:       reporter,
		logger:         logger,
		locationFormat: locationFormat,
		deviceColumn:   deviceColumn,
		concurrency:    concurrency,
		now:            time.Now,
	}, nil
}

func (e *AuditEngine) Run(ctx context.Context) error {
	tmpl := template.Compile(e.locationFormat)
	if tmpl.Empty() {
		e.logger.Warnf(ctx, "No location format configured, every found device will be non-compliant against an empty expectation")
	}

	sheetNames := e.source.SheetNames()
	if len(sheetNames) == 0 {
		return errors.NewUserFacing(errors.CodeSheetStructure, "workbook has no sheets to audit", "Check that the workbook path points at the audit file.")
	}
	e.logger.Infof(ctx, "Found %d sheets in the workbook: %s", len(sheetNames), strings.Join(sheetNames, ", "))

	var summaries []domain.SheetSummary
	var skipped []domain.SkippedSheet

	for i, name := range sheetNames {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		e.logger.Infof(ctx, "Processing sheet %d/%d: %q", i+1, len(sheetNames), name)

		summary, err := e.processSheet(ctx, name, tmpl)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			// A bad sheet is scoped to itself; the run continues.
			e.logger.Errorf(ctx, err, "Skipping sheet %q", name)
			skipped = append(skipped, domain.SkippedSheet{SheetName: name, Reason: err.Error()})
			continue
		}
		summaries = append(summaries, *summary)
	}

	total := domain.Total(summaries)

	if err := e.sink.WriteSummary(ctx, summaries, total); err != nil {
		return errors.Wrap(err, errors.CodeWorkbookWriteError, "failed writing summary sheet")
	}
	if err := e.sink.Save(ctx); err != nil {
		return errors.Wrap(err, errors.CodeWorkbookWriteError, "failed saving workbook")
	}

	report := domain.RunReport{Sheets: summaries, Total: total, Skipped: skipped}
	if err := e.reporter.Report(ctx, report); err != nil {
		return errors.Wrap(err, errors.CodeReportError, "failed to generate final report")
	}

	e.logger.Infof(ctx, "Audit run finished: %d devices across %d sheets (%d skipped)",
		total.TotalDevices, len(summaries), len(skipped))
	return nil
}

func (e *AuditEngine) processSheet(ctx context.Context, name string, tmpl template.Compiled) (*domain.SheetSummary, error) {
	sheet, err := e.source.ReadSheet(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(sheet.Header) == 0 {
		return nil, errors.New(errors.CodeSheetStructure, "sheet has no columns")
	}

	deviceCol := e.deviceColumn
	if deviceCol >= len(sheet.Header) {
		e.logger.Warnf(ctx, "Device column index %d is out of range for sheet %q (%d columns), using first column",
			e.deviceColumn, name, len(sheet.Header))
		deviceCol = 0
	}
	e.logger.Debugf(ctx, "Using column %q for device names", sheet.Header[deviceCol])

	type job struct {
		rowIndex int
		device   string
	}
	var jobs []job
	for i, row := range sheet.Rows {
		if deviceCol >= len(row) {
			continue
		}
		device := strings.TrimSpace(row[deviceCol])
		if device == "" {
			continue
		}
		jobs = append(jobs, job{rowIndex: i, device: device})
	}
	e.logger.Infof(ctx, "Processing %d devices on sheet %q", len(jobs), name)

	// Results are written at the job's own slot, so output order matches
	// row order no matter how the workers interleave.
	results := make([]domain.RowResult, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for ji, jb := range jobs {
		ji, jb := ji, jb
		g.Go(func() error {
			row := sheet.Rows[jb.rowIndex]
			expected := tmpl.Build(row, len(sheet.Header), func(ref string, index int) {
				e.logger.Warnf(gctx, "Template reference %s (index %d) is out of range on sheet %q row %d, available columns: %d",
					ref, index, name, jb.rowIndex+2, len(sheet.Header))
			})

			hostname := e.classifier.Hostname(jb.device)
			e.logger.Debugf(gctx, "Querying inventory for device: %s", hostname)

			info, lookupErr := e.inventory.Lookup(gctx, hostname)
			if lookupErr != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				// Transport trouble is indistinguishable from absence here.
				e.logger.Warnf(gctx, "Inventory lookup failed for %s, treating as not found: %v", hostname, lookupErr)
				info = nil
			}

			results[ji] = domain.RowResult{
				RowIndex: jb.rowIndex,
				Record:   e.classifier.Classify(gctx, jb.device, info, expected),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]domain.Record, len(results))
	for i, r := range results {
		records[i] = r.Record
	}
	summary := domain.Summarize(name, records, e.now())

	if err := e.sink.WriteResults(ctx, sheet, results); err != nil {
		return nil, err
	}

	e.logger.Infof(ctx, "Sheet %q: %d processed, %d found, %d not found, %d compliant, %d non-compliant",
		name, summary.TotalDevices, summary.FoundCount, summary.NotFoundCount,
		summary.CompliantCount, summary.NonCompliantCount)
	return &summary, nil
}
