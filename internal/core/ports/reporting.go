package ports

import (
	"context"

	"github.com/netobserve/location-audit/internal/core/domain"
)

type Reporter interface {
	Report(ctx context.Context, report domain.RunReport) error
}
