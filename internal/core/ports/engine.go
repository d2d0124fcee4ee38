package ports

import "context"

type AuditEngine interface {
	Run(ctx context.Context) error
}
