package xlsx

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/netobserve/location-audit/internal/core/domain"
	"github.com/netobserve/location-audit/internal/errors"
	"github.com/netobserve/location-audit/internal/log"
)

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "devices.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "IDF-1"))
	rows := [][]string{
		{"Device Name", "Site", "Room", "Row", "Rack"},
		{"sw-1", "DC1", "MDF", "01", "RK3"},
		{"sw-2", "DC2", "IDF", "02", "RK9"},
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellStr("IDF-1", cell, v))
		}
	}
	_, err := f.NewSheet("Summary")
	require.NoError(t, err)
	_, err = f.NewSheet("Empty")
	require.NoError(t, err)
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func openFixture(t *testing.T) *Workbook {
	t.Helper()
	w, err := Open(writeFixture(t), log.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { w.f.Close() })
	return w
}

func TestOpen(t *testing.T) {
	t.Run("Creates Backup", func(t *testing.T) {
		path := writeFixture(t)
		w, err := Open(path, log.NewNop())
		require.NoError(t, err)
		defer w.f.Close()

		original, err := os.ReadFile(path)
		require.NoError(t, err)
		backup, err := os.ReadFile(path + ".bak")
		require.NoError(t, err)
		assert.Equal(t, original, backup)
	})

	t.Run("Missing File Is User Facing", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "nope.xlsx"), log.NewNop())
		require.Error(t, err)
		var appErr *errors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.True(t, appErr.IsUserFacing)
		assert.Equal(t, errors.CodeWorkbookReadError, appErr.Code)
	})
}

func TestSheetNames_ExcludesSummary(t *testing.T) {
	w := openFixture(t)
	assert.Equal(t, []string{"IDF-1", "Empty"}, w.SheetNames())
}

func TestReadSheet(t *testing.T) {
	ctx := context.Background()
	w := openFixture(t)

	t.Run("Header And Rows", func(t *testing.T) {
		sheet, err := w.ReadSheet(ctx, "IDF-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"Device Name", "Site", "Room", "Row", "Rack"}, sheet.Header)
		require.Len(t, sheet.Rows, 2)
		assert.Equal(t, "sw-1", sheet.Rows[0][0])
	})

	t.Run("Empty Sheet", func(t *testing.T) {
		_, err := w.ReadSheet(ctx, "Empty")
		require.Error(t, err)
		assert.Equal(t, errors.CodeSheetStructure, errors.GetCode(err))
	})

	t.Run("Unknown Sheet", func(t *testing.T) {
		_, err := w.ReadSheet(ctx, "Nope")
		require.Error(t, err)
		assert.Equal(t, errors.CodeWorkbookReadError, errors.GetCode(err))
	})
}

func TestWriteResults(t *testing.T) {
	ctx := context.Background()
	w := openFixture(t)

	sheet, err := w.ReadSheet(ctx, "IDF-1")
	require.NoError(t, err)

	results := []domain.RowResult{
		{
			RowIndex: 0,
			Record: domain.Record{
				DeviceName:      "sw-1",
				QueriedHostname: "sw-1.test.net",
				Info: &domain.DeviceInfo{
					Hostname: "sw-1.test.net", IP: "10.0.0.5",
					Hardware: "C9300-48P", Location: "DC1.MDF.01.RK3",
				},
				ExpectedLocation: "DC1.MDF.01.RK3",
				Compliance:       domain.ComplianceYes,
				Status:           domain.StatusFound,
			},
		},
		{
			RowIndex: 1,
			Record: domain.Record{
				DeviceName:       "sw-2",
				QueriedHostname:  "sw-2.test.net",
				ExpectedLocation: "DC2.IDF.02.RK9",
				Compliance:       domain.ComplianceNotApplicable,
				Status:           domain.StatusNotFound,
				DNS:              &domain.DNSResult{IP: "10.9.9.9", Status: domain.DNSFound},
			},
		},
	}
	require.NoError(t, w.WriteResults(ctx, sheet, results))

	get := func(cell string) string {
		v, err := w.f.GetCellValue("IDF-1", cell)
		require.NoError(t, err)
		return v
	}

	// Result columns are appended after the five input columns: hostname
	// lands in F, Expected_Location in N, Compliant in O, Status in P.
	assert.Equal(t, "hostname", get("F1"))
	assert.Equal(t, "Status", get("P1"))

	assert.Equal(t, "sw-1.test.net", get("F2"))
	assert.Equal(t, "10.0.0.5", get("G2"))
	assert.Equal(t, "DC1.MDF.01.RK3", get("N2"))
	assert.Equal(t, "Yes", get("O2"))
	assert.Equal(t, string(domain.StatusFound), get("P2"))

	assert.Equal(t, "", get("F3"))
	assert.Equal(t, "", get("O3"))
	assert.Equal(t, string(domain.StatusNotFound), get("P3"))
	assert.Equal(t, "10.9.9.9", get("Q3"))
	assert.Equal(t, string(domain.DNSFound), get("R3"))

	// Original input cells are untouched.
	assert.Equal(t, "sw-1", get("A2"))
	assert.Equal(t, "RK9", get("E3"))
}

func TestWriteResults_ReusesExistingColumns(t *testing.T) {
	ctx := context.Background()
	w := openFixture(t)

	sheet := &domain.Sheet{
		Name:   "IDF-1",
		Header: []string{"Device Name", "Status", "Site", "Room", "Row"},
		Rows:   [][]string{{"sw-1", "stale", "DC1", "MDF", "01"}},
	}
	results := []domain.RowResult{{
		RowIndex: 0,
		Record:   domain.Record{DeviceName: "sw-1", Status: domain.StatusFound, Compliance: domain.ComplianceNo, ExpectedLocation: "x"},
	}}
	require.NoError(t, w.WriteResults(ctx, sheet, results))

	v, err := w.f.GetCellValue("IDF-1", "B2")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusFound), v)
}

func TestWriteSummary(t *testing.T) {
	ctx := context.Background()
	w := openFixture(t)
	stamp := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	w.now = func() time.Time { return stamp }

	summaries := []domain.SheetSummary{{
		SheetName: "IDF-1", TotalDevices: 2, FoundCount: 1, NotFoundCount: 1,
		CompliantCount: 1, NonCompliantCount: 0, ProcessedAt: stamp,
	}}
	total := domain.Total(summaries)

	require.NoError(t, w.WriteSummary(ctx, summaries, total))

	get := func(cell string) string {
		v, err := w.f.GetCellValue(SummarySheetName, cell)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Sheet Name", get("A1"))
	assert.Equal(t, "Processed Date", get("G1"))

	assert.Equal(t, "IDF-1", get("A2"))
	assert.Equal(t, "2", get("B2"))
	assert.Equal(t, "1", get("C2"))

	assert.Equal(t, domain.TotalSheetName, get("A3"))
	assert.Equal(t, "2", get("B3"))
	assert.Equal(t, "2025-03-14 09:30:00", get("G3"))

	t.Run("Rerun Replaces Sheet", func(t *testing.T) {
		require.NoError(t, w.WriteSummary(ctx, summaries, total))
		count := 0
		for _, name := range w.f.GetSheetList() {
			if name == SummarySheetName {
				count++
			}
		}
		assert.Equal(t, 1, count)
		assert.Equal(t, "IDF-1", get("A2"))
	})
}

func TestSave_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := writeFixture(t)
	w, err := Open(path, log.NewNop())
	require.NoError(t, err)

	sheet, err := w.ReadSheet(ctx, "IDF-1")
	require.NoError(t, err)
	results := []domain.RowResult{{
		RowIndex: 0,
		Record:   domain.Record{DeviceName: "sw-1", Status: domain.StatusFound, Compliance: domain.ComplianceYes, ExpectedLocation: "x"},
	}}
	require.NoError(t, w.WriteResults(ctx, sheet, results))
	require.NoError(t, w.Save(ctx))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue("IDF-1", "O2")
	require.NoError(t, err)
	assert.Equal(t, "Yes", v)
}
