package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/netobserve/location-audit/internal/errors"
)

// Fill colors match the audited workbooks: blue headers, green/red
// compliance verdicts, a yellow wash over not-found rows, and a tinted
// bold TOTAL row.
const (
	headerFillColor       = "4F81BD"
	compliantFillColor    = "C6EFCE"
	nonCompliantFillColor = "FFC7CE"
	notFoundFillColor     = "FFEB9C"
	totalFillColor        = "DCE6F1"
)

type styleSet struct {
	ready        bool
	header       int
	compliant    int
	nonCompliant int
	notFound     int
	total        int
}

func (s *styleSet) init(f *excelize.File) error {
	if s.ready {
		return nil
	}

	var err error
	s.header, err = f.NewStyle(&excelize.Style{
		Fill: solidFill(headerFillColor),
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
	})
	if err != nil {
		return wrapStyleErr(err)
	}
	s.compliant, err = f.NewStyle(&excelize.Style{Fill: solidFill(compliantFillColor)})
	if err != nil {
		return wrapStyleErr(err)
	}
	s.nonCompliant, err = f.NewStyle(&excelize.Style{Fill: solidFill(nonCompliantFillColor)})
	if err != nil {
		return wrapStyleErr(err)
	}
	s.notFound, err = f.NewStyle(&excelize.Style{Fill: solidFill(notFoundFillColor)})
	if err != nil {
		return wrapStyleErr(err)
	}
	s.total, err = f.NewStyle(&excelize.Style{
		Fill: solidFill(totalFillColor),
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return wrapStyleErr(err)
	}

	s.ready = true
	return nil
}

func solidFill(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}
}

func wrapStyleErr(err error) error {
	return errors.Wrap(err, errors.CodeWorkbookWriteError, "failed creating cell style")
}

// widthTracker records the longest cell per column so the sink can size
// columns to content afterwards.
type widthTracker struct {
	max []int
}

func newWidthTracker(columns int) *widthTracker {
	return &widthTracker{max: make([]int, columns)}
}

func (t *widthTracker) observe(col int, value string) {
	if col >= len(t.max) {
		grown := make([]int, col+1)
		copy(grown, t.max)
		t.max = grown
	}
	if len(value) > t.max[col] {
		t.max[col] = len(value)
	}
}

func (t *widthTracker) observeValue(col int, value any) {
	t.observe(col, fmt.Sprintf("%v", value))
}

// widthFor pads the longest content slightly; excelize rejects widths
// beyond 255.
func widthFor(maxLen int) float64 {
	width := float64(maxLen + 2)
	if width > 255 {
		width = 255
	}
	return width
}
