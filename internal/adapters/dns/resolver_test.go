package dns

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/netobserve/location-audit/internal/core/domain"
	"github.com/netobserve/location-audit/internal/log"
)

func newTestResolver(lookup func(ctx context.Context, host string) ([]string, error)) *Resolver {
	r := NewResolver(Config{Timeout: time.Second}, log.NewNop())
	r.lookupHost = lookup
	return r
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("Prefers IPv4", func(t *testing.T) {
		r := newTestResolver(func(ctx context.Context, host string) ([]string, error) {
			return []string{"fe80::1", "10.1.2.3"}, nil
		})
		res := r.Resolve(ctx, "sw-core-01.sac.ragingwire.net")
		assert.Equal(t, domain.DNSFound, res.Status)
		assert.Equal(t, "10.1.2.3", res.IP)
	})

	t.Run("IPv6 Only Falls Back To First Address", func(t *testing.T) {
		r := newTestResolver(func(ctx context.Context, host string) ([]string, error) {
			return []string{"fe80::1"}, nil
		})
		res := r.Resolve(ctx, "host")
		assert.Equal(t, domain.DNSFound, res.Status)
		assert.Equal(t, "fe80::1", res.IP)
	})

	t.Run("Not Found", func(t *testing.T) {
		r := newTestResolver(func(ctx context.Context, host string) ([]string, error) {
			return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
		})
		res := r.Resolve(ctx, "missing")
		assert.Equal(t, domain.DNSNotFound, res.Status)
		assert.Empty(t, res.IP)
	})

	t.Run("Resolution Error Is A Value", func(t *testing.T) {
		r := newTestResolver(func(ctx context.Context, host string) ([]string, error) {
			return nil, errors.New("connection refused")
		})
		res := r.Resolve(ctx, "host")
		assert.Equal(t, domain.DNSError, res.Status)
		assert.Contains(t, res.Message, "connection refused")
	})

	t.Run("Empty Answer Is Not Found", func(t *testing.T) {
		r := newTestResolver(func(ctx context.Context, host string) ([]string, error) {
			return nil, nil
		})
		res := r.Resolve(ctx, "host")
		assert.Equal(t, domain.DNSNotFound, res.Status)
	})
}
