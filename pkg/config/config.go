// Package config provides the configuration surface for the tap.
// Options map one-to-one onto LeadByte REST API query parameters; the
// mapping rules themselves live with the parameter builder, this package
// only carries validated values.
package config

import (
	"fmt"
	"time"

	"github.com/casesondemand/tap-leadbyte/pkg/taperrors"
)

const (
	// DefaultDomain is the tenant used when none is configured
	DefaultDomain = "casesondemand"
	// DefaultAPIVersion is the REST API version used when none is configured
	DefaultAPIVersion = "v1.2"
)

// Config is the full tap configuration. All fields are read-only once
// validated; streams share a single instance.
type Config struct {
	// Credentials and endpoint selection
	APIKey     string `yaml:"api_key" json:"api_key"`
	Domain     string `yaml:"domain" json:"domain"`
	APIVersion string `yaml:"api_version" json:"api_version"`
	UserAgent  string `yaml:"user_agent" json:"user_agent"`

	// Date window for report endpoints
	StartDate string `yaml:"start_date" json:"start_date"`
	EndDate   string `yaml:"end_date" json:"end_date"`

	// Optional ID filters
	CampaignIDs  []string `yaml:"campaign_ids" json:"campaign_ids"`
	SupplierIDs  []string `yaml:"supplier_ids" json:"supplier_ids"`
	ResponderIDs []string `yaml:"responder_ids" json:"responder_ids"`
	BuyerIDs     []string `yaml:"buyer_ids" json:"buyer_ids"`

	// Report options. Pointers distinguish "unset" from "false"; an unset
	// option produces no query parameter at all.
	Debug                   *bool  `yaml:"debug" json:"debug"`
	GroupBy                 string `yaml:"group_by" json:"group_by"`
	DatePreset              string `yaml:"date_preset" json:"date_preset"`
	IncludeNonSupplierLeads *bool  `yaml:"include_non_supplier_leads" json:"include_non_supplier_leads"`
	LeadTypeAPI             *bool  `yaml:"lead_type_api" json:"lead_type_api"`
	LeadTypeImport          *bool  `yaml:"lead_type_import" json:"lead_type_import"`
	ShowSupplier            *bool  `yaml:"show_supplier" json:"show_supplier"`
	ShowBuyer               *bool  `yaml:"show_buyer" json:"show_buyer"`
	ShowSSID                *bool  `yaml:"show_ssid" json:"show_ssid"`
	ShowCampaign            *bool  `yaml:"show_campaign" json:"show_campaign"`
	ShowData                *bool  `yaml:"show_data" json:"show_data"`

	// Master-data status filters
	CampaignStatus string `yaml:"campaign_status" json:"campaign_status"`
	DeliveryStatus string `yaml:"delivery_status" json:"delivery_status"`
	BuyerStatus    string `yaml:"buyer_status" json:"buyer_status"`

	// Reliability settings for the HTTP collaborator
	Reliability ReliabilityConfig `yaml:"reliability" json:"reliability"`

	// Observability settings
	Observability ObservabilityConfig `yaml:"observability" json:"observability"`

	// Output sink settings
	Output OutputConfig `yaml:"output" json:"output"`

	startTime time.Time
	endTime   *time.Time
}

// ReliabilityConfig contains retry settings consumed by the HTTP client
type ReliabilityConfig struct {
	// RetryAttempts sets maximum attempts for a single request
	RetryAttempts int `yaml:"retry_attempts" json:"retry_attempts"`
	// RetryDelay is the initial delay between retries
	RetryDelay time.Duration `yaml:"retry_delay" json:"retry_delay"`
	// RequestTimeout bounds a single HTTP request
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout"`
}

// ObservabilityConfig contains logging settings
type ObservabilityConfig struct {
	// LogLevel sets logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level" json:"log_level"`
	// Development switches to a human-readable console encoder
	Development bool `yaml:"development" json:"development"`
}

// OutputConfig controls where record messages are written
type OutputConfig struct {
	// Path of the output file; empty writes to stdout
	Path string `yaml:"path" json:"path"`
}

// New returns a configuration populated with defaults
func New() *Config {
	return &Config{
		Domain:     DefaultDomain,
		APIVersion: DefaultAPIVersion,
		Reliability: ReliabilityConfig{
			RetryAttempts:  5,
			RetryDelay:     time.Second,
			RequestTimeout: 30 * time.Second,
		},
		Observability: ObservabilityConfig{
			LogLevel: "info",
		},
	}
}

// timestampLayouts are the accepted start_date/end_date formats,
// most specific first.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a configured date value in any accepted layout.
// Values without an explicit zone are interpreted as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

// Validate checks required options and parses date values. It must succeed
// before any request is issued; a failure here is fatal for the whole run.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return taperrors.New(taperrors.ErrorTypeConfig, "api_key is required")
	}
	if c.StartDate == "" {
		return taperrors.New(taperrors.ErrorTypeConfig, "start_date is required")
	}

	start, err := ParseTimestamp(c.StartDate)
	if err != nil {
		return taperrors.Wrap(err, taperrors.ErrorTypeConfig, "invalid start_date")
	}
	c.startTime = start

	if c.EndDate != "" {
		end, err := ParseTimestamp(c.EndDate)
		if err != nil {
			return taperrors.Wrap(err, taperrors.ErrorTypeConfig, "invalid end_date")
		}
		if end.Before(start) {
			return taperrors.New(taperrors.ErrorTypeConfig, "end_date precedes start_date")
		}
		c.endTime = &end
	}

	if c.Domain == "" {
		c.Domain = DefaultDomain
	}
	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
	if c.Reliability.RetryAttempts <= 0 {
		c.Reliability.RetryAttempts = 5
	}
	if c.Reliability.RetryDelay <= 0 {
		c.Reliability.RetryDelay = time.Second
	}
	if c.Reliability.RequestTimeout <= 0 {
		c.Reliability.RequestTimeout = 30 * time.Second
	}
	if c.Observability.LogLevel == "" {
		c.Observability.LogLevel = "info"
	}

	return nil
}

// StartTime returns the parsed start_date. Validate must have succeeded.
func (c *Config) StartTime() time.Time {
	return c.startTime
}

// EndTime returns the parsed end_date, or now when none was configured.
func (c *Config) EndTime(now time.Time) time.Time {
	if c.endTime != nil {
		return *c.endTime
	}
	return now.UTC()
}

// BaseURL returns the API URL root for the configured tenant and version
func (c *Config) BaseURL() string {
	return fmt.Sprintf("http://%s.leadbyte.com/restapi/%s", c.Domain, c.APIVersion)
}
