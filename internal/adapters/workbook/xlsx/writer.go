package xlsx

import (
	"context"

	"github.com/xuri/excelize/v2"

	"github.com/netobserve/location-audit/internal/core/domain"
	"github.com/netobserve/location-audit/internal/errors"
)

// resultColumns are written aligned to each input row, reusing a column
// when the sheet already has one of that name (reruns), appending it
// otherwise.
var resultColumns = []string{
	"hostname", "ip", "sysDescr", "hardware", "os", "version",
	"last_polled", "location", "Expected_Location", "Compliant",
	"Status", "DNS_IP", "DNS_Status",
}

var summaryColumns = []string{
	"Sheet Name", "Total Devices", "Devices Found", "Devices Not Found",
	"Compliant Locations", "Non-Compliant Locations", "Processed Date",
}

const timestampLayout = "2006-01-02 15:04:05"

func (w *Workbook) WriteResults(ctx context.Context, sheet *domain.Sheet, results []domain.RowResult) error {
	if err := w.styles.init(w.f); err != nil {
		return err
	}

	// Map result column names to zero-based sheet columns.
	existing := make(map[string]int, len(sheet.Header))
	for i, h := range sheet.Header {
		existing[h] = i
	}
	columnCount := len(sheet.Header)
	colIndex := make(map[string]int, len(resultColumns))
	for _, name := range resultColumns {
		if i, ok := existing[name]; ok {
			colIndex[name] = i
			continue
		}
		colIndex[name] = columnCount
		columnCount++
	}

	widths := newWidthTracker(columnCount)
	for i, h := range sheet.Header {
		widths.observe(i, h)
	}
	for _, row := range sheet.Rows {
		for i, cell := range row {
			widths.observe(i, cell)
		}
	}

	// Header cells for appended columns, then a uniform header style.
	for _, name := range resultColumns {
		col := colIndex[name]
		if col >= len(sheet.Header) {
			if err := w.setCell(sheet.Name, col, 0, name); err != nil {
				return err
			}
		}
		widths.observe(col, name)
	}
	if err := w.styleRange(sheet.Name, 0, columnCount-1, 0, w.styles.header); err != nil {
		return err
	}

	for _, res := range results {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := w.writeRecord(sheet.Name, colIndex, columnCount, res, widths); err != nil {
			return err
		}
	}

	return w.applyWidths(sheet.Name, widths)
}

func (w *Workbook) writeRecord(sheetName string, colIndex map[string]int, columnCount int, res domain.RowResult, widths *widthTracker) error {
	rec := res.Record
	values := map[string]string{
		"Expected_Location": rec.ExpectedLocation,
		"Status":            string(rec.Status),
	}
	if rec.Info != nil {
		values["hostname"] = rec.Info.Hostname
		values["ip"] = rec.Info.IP
		values["sysDescr"] = rec.Info.SysDescr
		values["hardware"] = rec.Info.Hardware
		values["os"] = rec.Info.OS
		values["version"] = rec.Info.Version
		values["last_polled"] = rec.Info.LastPolled
		values["location"] = rec.Info.Location
	}
	if rec.Compliance != domain.ComplianceNotApplicable {
		values["Compliant"] = string(rec.Compliance)
	}
	if rec.DNS != nil {
		values["DNS_IP"] = rec.DNS.IP
		values["DNS_Status"] = string(rec.DNS.Status)
	}

	row := res.RowIndex + 1 // below the header
	for name, value := range values {
		if value == "" {
			continue
		}
		col := colIndex[name]
		if err := w.setCell(sheetName, col, row, value); err != nil {
			return err
		}
		widths.observe(col, value)
	}

	switch {
	case rec.Status == domain.StatusNotFound:
		if err := w.styleRange(sheetName, 0, columnCount-1, row, w.styles.notFound); err != nil {
			return err
		}
	case rec.Compliance == domain.ComplianceYes:
		if err := w.styleRange(sheetName, colIndex["Compliant"], colIndex["Compliant"], row, w.styles.compliant); err != nil {
			return err
		}
	case rec.Compliance == domain.ComplianceNo:
		if err := w.styleRange(sheetName, colIndex["Compliant"], colIndex["Compliant"], row, w.styles.nonCompliant); err != nil {
			return err
		}
	}
	return nil
}

func (w *Workbook) WriteSummary(ctx context.Context, summaries []domain.SheetSummary, total domain.SheetSummary) error {
	if err := w.styles.init(w.f); err != nil {
		return err
	}

	if idx, _ := w.f.GetSheetIndex(SummarySheetName); idx >= 0 {
		if err := w.f.DeleteSheet(SummarySheetName); err != nil {
			return errors.Wrap(err, errors.CodeWorkbookWriteError, "failed replacing summary sheet")
		}
	}
	if _, err := w.f.NewSheet(SummarySheetName); err != nil {
		return errors.Wrap(err, errors.CodeWorkbookWriteError, "failed creating summary sheet")
	}

	widths := newWidthTracker(len(summaryColumns))
	for i, name := range summaryColumns {
		if err := w.setCell(SummarySheetName, i, 0, name); err != nil {
			return err
		}
		widths.observe(i, name)
	}
	if err := w.styleRange(SummarySheetName, 0, len(summaryColumns)-1, 0, w.styles.header); err != nil {
		return err
	}

	// TOTAL is stamped at write time; the aggregator leaves it zero.
	total.ProcessedAt = w.now()
	rows := append(append([]domain.SheetSummary{}, summaries...), total)
	for i, s := range rows {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		cells := []any{
			s.SheetName, s.TotalDevices, s.FoundCount, s.NotFoundCount,
			s.CompliantCount, s.NonCompliantCount, s.ProcessedAt.Format(timestampLayout),
		}
		for col, v := range cells {
			if err := w.setCellValue(SummarySheetName, col, i+1, v); err != nil {
				return err
			}
			widths.observeValue(col, v)
		}
	}
	if err := w.styleRange(SummarySheetName, 0, len(summaryColumns)-1, len(rows), w.styles.total); err != nil {
		return err
	}

	w.logger.Debugf(ctx, "Summary sheet written with %d sheet rows", len(summaries))
	return w.applyWidths(SummarySheetName, widths)
}

func (w *Workbook) setCell(sheetName string, col, row int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return errors.Wrap(err, errors.CodeWorkbookWriteError, "invalid cell coordinates")
	}
	if err := w.f.SetCellStr(sheetName, cell, value); err != nil {
		return errors.Wrap(err, errors.CodeWorkbookWriteError, "failed writing cell "+cell)
	}
	return nil
}

func (w *Workbook) setCellValue(sheetName string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return errors.Wrap(err, errors.CodeWorkbookWriteError, "invalid cell coordinates")
	}
	if err := w.f.SetCellValue(sheetName, cell, value); err != nil {
		return errors.Wrap(err, errors.CodeWorkbookWriteError, "failed writing cell "+cell)
	}
	return nil
}

func (w *Workbook) styleRange(sheetName string, fromCol, toCol, row int, styleID int) error {
	from, err := excelize.CoordinatesToCellName(fromCol+1, row+1)
	if err != nil {
		return errors.Wrap(err, errors.CodeWorkbookWriteError, "invalid cell coordinates")
	}
	to, err := excelize.CoordinatesToCellName(toCol+1, row+1)
	if err != nil {
		return errors.Wrap(err, errors.CodeWorkbookWriteError, "invalid cell coordinates")
	}
	if err := w.f.SetCellStyle(sheetName, from, to, styleID); err != nil {
		return errors.Wrap(err, errors.CodeWorkbookWriteError, "failed styling cells")
	}
	return nil
}

func (w *Workbook) applyWidths(sheetName string, widths *widthTracker) error {
	for col, max := range widths.max {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return errors.Wrap(err, errors.CodeWorkbookWriteError, "invalid column number")
		}
		if err := w.f.SetColWidth(sheetName, name, name, widthFor(max)); err != nil {
			return errors.Wrap(err, errors.CodeWorkbookWriteError, "failed setting column width")
		}
	}
	return nil
}
