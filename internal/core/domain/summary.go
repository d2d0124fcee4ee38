package domain

import "time"

const TotalSheetName = "TOTAL"

type SheetSummary struct {
	SheetName         string
	TotalDevices      int
	FoundCount        int
	NotFoundCount     int
	CompliantCount    int
	NonCompliantCount int
	ProcessedAt       time.Time
}

type SkippedSheet struct {
	SheetName string
	Reason    string
}

type RunReport struct {
	Sheets  []SheetSummary
	Total   SheetSummary
	Skipped []SkippedSheet
}

// Summarize folds a sheet's classified records into counts.
// Rows with Compliance N/A contribute to neither compliance bucket.
func Summarize(sheetName string, records []Record, now time.Time) SheetSummary {
	s := SheetSummary{
		SheetName:    sheetName,
		TotalDevices: len(records),
		ProcessedAt:  now,
	}
	for _, r := range records {
		if r.Status == StatusFound {
			s.FoundCount++
		}
		switch r.Compliance {
		case ComplianceYes:
			s.CompliantCount++
		case ComplianceNo:
			s.NonCompliantCount++
		}
	}
	s.NotFoundCount = s.TotalDevices - s.FoundCount
	return s
}

// Total sums all numeric fields across sheet summaries. The timestamp is
// left zero; the sink stamps the TOTAL row itself.
func Total(summaries []SheetSummary) SheetSummary {
	t := SheetSummary{SheetName: TotalSheetName}
	for _, s := range summaries {
		t.TotalDevices += s.TotalDevices
		t.FoundCount += s.FoundCount
		t.NotFoundCount += s.NotFoundCount
		t.CompliantCount += s.CompliantCount
		t.NonCompliantCount += s.NonCompliantCount
	}
	return t
}
