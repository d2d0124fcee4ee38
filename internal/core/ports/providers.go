package ports

import (
	"context"

	"github.com/netobserve/location-audit/internal/core/domain"
)

// WorkbookSource yields the sheets of the audited workbook in their
// original order.
type WorkbookSource interface {
	SheetNames() []string
	ReadSheet(ctx context.Context, name string) (*domain.Sheet, error)
}

// WorkbookSink writes annotated results back, aligned to the input rows.
// Nothing is persisted until Save.
type WorkbookSink interface {
	WriteResults(ctx context.Context, sheet *domain.Sheet, results []domain.RowResult) error
	WriteSummary(ctx context.Context, summaries []domain.SheetSummary, total domain.SheetSummary) error
	Save(ctx context.Context) error
}

// InventoryClient looks a device up by its fully qualified hostname.
// A nil result with a nil error means the device is not registered.
type InventoryClient interface {
	Lookup(ctx context.Context, hostname string) (*domain.DeviceInfo, error)
}

// Resolver is the DNS fallback capability. All outcomes, including
// resolution failures, are values on the returned result.
type Resolver interface {
	Resolve(ctx context.Context, hostname string) domain.DNSResult
}
