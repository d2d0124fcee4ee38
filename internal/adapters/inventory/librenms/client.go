// Package librenms implements the inventory lookup against a LibreNMS
// compatible device API.
package librenms

import (
	"context"
	"crypto/tls"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"

	"github.com/netobserve/location-audit/internal/core/domain"
	"github.com/netobserve/location-audit/internal/core/ports"
	"github.com/netobserve/location-audit/internal/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	defaultTimeout      = 30 * time.Second
	defaultRateLimitRPS = 10
	authHeader          = "X-Auth-Token"
)

type Config struct {
	APIURL       string
	APIToken     string
	VerifyTLS    bool
	Timeout      time.Duration
	RateLimitRPS int
}

type Client struct {
	cfg     Config
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  ports.Logger
}

func NewClient(cfg Config, logger ports.Logger) (*Client, error) {
	if cfg.APIURL == "" {
		return nil, errors.New(errors.CodeConfigValidation, "inventory API URL cannot be empty")
	}
	if cfg.APIToken == "" {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			"inventory API token is not set",
			"Set inventory.api_token in the config file or the LOCAUDIT_INVENTORY_API_TOKEN environment variable.")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	rps := cfg.RateLimitRPS
	if rps <= 0 {
		rps = defaultRateLimitRPS
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	// The API commonly runs on a self-signed certificate; verification
	// stays opt-in.
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: !cfg.VerifyTLS}

	return &Client{
		cfg:     cfg,
		baseURL: strings.TrimRight(cfg.APIURL, "/"),
		http: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
		logger:  logger,
	}, nil
}

type devicePayload struct {
	Hostname   string `json:"hostname"`
	IP         string `json:"ip"`
	SysDescr   string `json:"sysDescr"`
	Hardware   string `json:"hardware"`
	OS         string `json:"os"`
	Version    string `json:"version"`
	LastPolled string `json:"last_polled"`
	Location   string `json:"location"`
}

type deviceResponse struct {
	Status  string          `json:"status"`
	Devices []devicePayload `json:"devices"`
}

// Lookup fetches a device by hostname. A device the API does not know,
// an auth failure, or any non-200 answer all come back as (nil, nil):
// the caller only cares about absence. Transport failures are returned
// as errors so they can be logged distinctly, but carry no device either.
func (c *Client) Lookup(ctx context.Context, hostname string) (*domain.DeviceInfo, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/api/v0/devices/" + url.PathEscape(hostname)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInventoryAPIError, "failed building inventory request")
	}
	req.Header.Set(authHeader, c.cfg.APIToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInventoryAPIError, "inventory API request failed")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		c.logger.Debugf(ctx, "Device %s not found in inventory", hostname)
		return nil, nil
	case http.StatusUnauthorized:
		c.logger.Warnf(ctx, "Inventory API rejected the token for %s, check your API token", hostname)
		return nil, nil
	default:
		c.logger.Warnf(ctx, "Inventory API returned status %d for %s", resp.StatusCode, hostname)
		return nil, nil
	}

	var payload deviceResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrap(err, errors.CodeInventoryAPIError, "failed decoding inventory response")
	}
	if payload.Status != "ok" || len(payload.Devices) == 0 {
		c.logger.Debugf(ctx, "Inventory API returned no device data for %s", hostname)
		return nil, nil
	}

	d := payload.Devices[0]
	return &domain.DeviceInfo{
		Hostname:   d.Hostname,
		IP:         d.IP,
		SysDescr:   d.SysDescr,
		Hardware:   d.Hardware,
		OS:         d.OS,
		Version:    d.Version,
		LastPolled: d.LastPolled,
		Location:   d.Location,
	}, nil
}
