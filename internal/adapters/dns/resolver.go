// Package dns is the fallback resolver used for devices the inventory
// does not know about.
package dns

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/netobserve/location-audit/internal/core/domain"
	"github.com/netobserve/location-audit/internal/core/ports"
)

const defaultTimeout = 5 * time.Second

type Config struct {
	Timeout time.Duration
}

type Resolver struct {
	timeout time.Duration
	logger  ports.Logger

	// swappable for tests
	lookupHost func(ctx context.Context, host string) ([]string, error)
}

func NewResolver(cfg Config, logger ports.Logger) *Resolver {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Resolver{
		timeout:    timeout,
		logger:     logger,
		lookupHost: net.DefaultResolver.LookupHost,
	}
}

// Resolve never fails: not-found and resolution errors are both returned
// as result values so a broken resolver cannot abort a row.
func (r *Resolver) Resolve(ctx context.Context, hostname string) domain.DNSResult {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	addrs, err := r.lookupHost(ctx, hostname)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return domain.DNSResult{Status: domain.DNSNotFound}
		}
		return domain.DNSResult{Status: domain.DNSError, Message: err.Error()}
	}
	if len(addrs) == 0 {
		return domain.DNSResult{Status: domain.DNSNotFound}
	}

	return domain.DNSResult{Status: domain.DNSFound, IP: pickAddress(addrs)}
}

// pickAddress prefers the first IPv4 address, falling back to whatever
// came first.
func pickAddress(addrs []string) string {
	for _, a := range addrs {
		if ip := net.ParseIP(a); ip != nil && ip.To4() != nil {
			return a
		}
	}
	return addrs[0]
}
