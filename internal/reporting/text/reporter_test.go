package text

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netobserve/location-audit/internal/core/domain"
	"github.com/netobserve/location-audit/internal/log"
)

func newBufferedReporter(t *testing.T) (*Reporter, *bytes.Buffer) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	buf := &bytes.Buffer{}
	return &Reporter{writer: buf, logger: log.NewNop()}, buf
}

func TestReport(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty Run", func(t *testing.T) {
		r, buf := newBufferedReporter(t)
		require.NoError(t, r.Report(ctx, domain.RunReport{}))
		assert.Equal(t, "No sheets found or processed.\n", buf.String())
	})

	t.Run("Sheets And Total", func(t *testing.T) {
		r, buf := newBufferedReporter(t)
		report := domain.RunReport{
			Sheets: []domain.SheetSummary{
				{SheetName: "IDF-1", TotalDevices: 10, FoundCount: 8, NotFoundCount: 2, CompliantCount: 7, NonCompliantCount: 1},
				{SheetName: "IDF-2", TotalDevices: 5, FoundCount: 5, CompliantCount: 5},
			},
			Total: domain.SheetSummary{
				SheetName: domain.TotalSheetName, TotalDevices: 15, FoundCount: 13,
				NotFoundCount: 2, CompliantCount: 12, NonCompliantCount: 1,
			},
		}
		require.NoError(t, r.Report(ctx, report))

		out := buf.String()
		assert.Contains(t, out, "Location Audit Report")
		assert.Contains(t, out, "IDF-1")
		assert.Contains(t, out, "IDF-2")
		assert.Contains(t, out, "TOTAL")
		assert.Contains(t, out, "15")
		assert.NotContains(t, out, "Skipped sheets")
	})

	t.Run("Skipped Sheets Listed", func(t *testing.T) {
		r, buf := newBufferedReporter(t)
		report := domain.RunReport{
			Sheets: []domain.SheetSummary{{SheetName: "IDF-1", TotalDevices: 1, FoundCount: 1, CompliantCount: 1}},
			Total:  domain.SheetSummary{SheetName: domain.TotalSheetName, TotalDevices: 1, FoundCount: 1, CompliantCount: 1},
			Skipped: []domain.SkippedSheet{
				{SheetName: "Broken", Reason: "sheet Broken is empty"},
			},
		}
		require.NoError(t, r.Report(ctx, report))

		out := buf.String()
		assert.Contains(t, out, "Skipped sheets:")
		assert.Contains(t, out, "Broken")
		assert.Contains(t, out, "sheet Broken is empty")
	})
}
