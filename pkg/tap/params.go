package tap

import (
	"net/url"
	"strings"
	"time"

	"github.com/casesondemand/tap-leadbyte/pkg/config"
)

// TimestampFormat is the second-precision UTC form report endpoints expect
const TimestampFormat = "2006-01-02T15:04:05Z"

// AllCampaigns is the sentinel sent when no campaign filter is configured
const AllCampaigns = "all"

// Now is the clock used for default date bounds. Overridable in tests.
var Now = time.Now

// yesNo serializes a display flag. The API rejects native booleans; the
// literal strings are a wire-format requirement.
func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// setFlag adds a Yes/No parameter when the option was configured at all
func setFlag(params url.Values, name string, v *bool) {
	if v != nil {
		params.Set(name, yesNo(*v))
	}
}

// setValue adds a parameter when the option is non-empty
func setValue(params url.Values, name, v string) {
	if v != "" {
		params.Set(name, v)
	}
}

// setIDs adds a comma-joined ID filter when any IDs are configured
func setIDs(params url.Values, name string, ids []string) {
	if len(ids) > 0 {
		params.Set(name, strings.Join(ids, ","))
	}
}

// ReportParams is the shared parameter builder for report endpoints. When a
// date preset is configured it replaces the explicit from/to bounds; the
// campaign filter always appears, defaulting to the "all" sentinel.
func ReportParams(cfg *config.Config) (url.Values, error) {
	params := url.Values{}

	if cfg.DatePreset != "" {
		params.Set("datePreset", cfg.DatePreset)
	} else {
		params.Set("from", cfg.StartTime().UTC().Format(TimestampFormat))
		params.Set("to", cfg.EndTime(Now()).UTC().Format(TimestampFormat))
	}

	if len(cfg.CampaignIDs) > 0 {
		params.Set("campaignId", strings.Join(cfg.CampaignIDs, ","))
	} else {
		params.Set("campaignId", AllCampaigns)
	}
	setIDs(params, "supplierId", cfg.SupplierIDs)
	setIDs(params, "responderId", cfg.ResponderIDs)
	setIDs(params, "buyerId", cfg.BuyerIDs)

	setValue(params, "groupBy", cfg.GroupBy)
	setFlag(params, "debug", cfg.Debug)
	setFlag(params, "includeNonSupplierLeads", cfg.IncludeNonSupplierLeads)
	setFlag(params, "leadTypeApi", cfg.LeadTypeAPI)
	setFlag(params, "leadTypeImport", cfg.LeadTypeImport)

	return params, nil
}

// LeadActivityParams extends the report parameters with the display flags
// the lead activity endpoint understands.
func LeadActivityParams(cfg *config.Config) (url.Values, error) {
	params, err := ReportParams(cfg)
	if err != nil {
		return nil, err
	}

	setFlag(params, "showSupplier", cfg.ShowSupplier)
	setFlag(params, "showBuyer", cfg.ShowBuyer)
	setFlag(params, "showSsid", cfg.ShowSSID)
	setFlag(params, "showCampaign", cfg.ShowCampaign)
	setFlag(params, "showData", cfg.ShowData)

	return params, nil
}

// CampaignsParams filters the campaign list by status when configured
func CampaignsParams(cfg *config.Config) (url.Values, error) {
	params := url.Values{}
	setValue(params, "campaignStatus", cfg.CampaignStatus)
	return params, nil
}

// DeliveriesParams filters deliveries by status when configured
func DeliveriesParams(cfg *config.Config) (url.Values, error) {
	params := url.Values{}
	setValue(params, "status", cfg.DeliveryStatus)
	return params, nil
}

// BuyersParams filters buyers by status when configured
func BuyersParams(cfg *config.Config) (url.Values, error) {
	params := url.Values{}
	setValue(params, "status", cfg.BuyerStatus)
	return params, nil
}
