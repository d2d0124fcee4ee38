// Package classify turns one row's device name, inventory lookup result
// and expected location into a fully annotated record.
package classify

import (
	"context"
	"strings"

	"github.com/netobserve/location-audit/internal/core/domain"
	"github.com/netobserve/location-audit/internal/core/ports"
)

type Classifier struct {
	domainSuffix string
	resolver     ports.Resolver
	logger       ports.Logger
}

func New(domainSuffix string, resolver ports.Resolver, logger ports.Logger) *Classifier {
	return &Classifier{
		domainSuffix: domainSuffix,
		resolver:     resolver,
		logger:       logger,
	}
}

// Hostname returns the fully qualified hostname used for the inventory
// lookup: the device name unchanged if it already carries the domain
// suffix (case-insensitive), otherwise name plus suffix.
func (c *Classifier) Hostname(deviceName string) string {
	return QualifiedHostname(deviceName, c.domainSuffix)
}

func QualifiedHostname(deviceName, domainSuffix string) string {
	if domainSuffix == "" {
		return deviceName
	}
	if strings.HasSuffix(strings.ToLower(deviceName), strings.ToLower(domainSuffix)) {
		return deviceName
	}
	return deviceName + domainSuffix
}

// Classify never fails: every input produces a populated record, with
// absence and resolution errors represented as field values. The DNS
// fallback fires only when the inventory has no entry for the device.
func (c *Classifier) Classify(ctx context.Context, deviceName string, info *domain.DeviceInfo, expectedLocation string) domain.Record {
	rec := domain.Record{
		DeviceName:       deviceName,
		QueriedHostname:  c.Hostname(deviceName),
		Info:             info,
		ExpectedLocation: expectedLocation,
	}

	if info != nil {
		rec.Status = domain.StatusFound
		if strings.TrimSpace(info.Location) == strings.TrimSpace(expectedLocation) {
			rec.Compliance = domain.ComplianceYes
		} else {
			rec.Compliance = domain.ComplianceNo
		}
		return rec
	}

	rec.Status = domain.StatusNotFound
	rec.Compliance = domain.ComplianceNotApplicable

	dns := c.resolver.Resolve(ctx, rec.QueriedHostname)
	rec.DNS = &dns

	switch dns.Status {
	case domain.DNSFound:
		c.logger.Debugf(ctx, "DNS fallback resolved %s to %s", rec.QueriedHostname, dns.IP)
	case domain.DNSError:
		c.logger.Warnf(ctx, "DNS fallback failed for %s: %s", rec.QueriedHostname, dns.Message)
	default:
		c.logger.Debugf(ctx, "DNS fallback found no record for %s", rec.QueriedHostname)
	}

	return rec
}
