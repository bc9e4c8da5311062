package streams

import (
	"github.com/casesondemand/tap-leadbyte/pkg/tap"
)

// Report streams share the report parameter builder: date window (or
// preset), ID filters with the campaignId=all sentinel, and Yes/No report
// options. Primary keys use the flattened-field convention throughout;
// the flattening post-processors below are what make those fields exist.

// EmailReports returns the email push report stream
func EmailReports() *tap.Stream {
	fields := []tap.Field{
		object("campaign", integer("id"), str("name"), str("reference")),
		object("responder", integer("id"), str("reference")),
		object("supplier", integer("id"), str("name"), str("sid")),
		object("push", integer("id"), str("name")),
		object("advertiser", integer("id"), str("name")),
	}
	fields = append(fields, strs("sent", "delivered", "opened", "clicks", "conversions",
		"bounced", "unsubscribed", "cost", "revenue", "profit", "currency")...)
	fields = append(fields,
		integer("campaign_id"), integer("responder_id"), integer("supplier_id"), integer("push_id"))

	return &tap.Stream{
		Name:        "email_reports",
		Path:        "/reports/email",
		PrimaryKeys: []string{"campaign_id", "responder_id", "supplier_id", "push_id"},
		Schema:      &tap.Schema{Fields: fields},
		Paginate:    true,
		Params:      tap.ReportParams,
		PostProcess: flattenKeys(pushKeys),
	}
}

// SmsReports returns the SMS push report stream
func SmsReports() *tap.Stream {
	fields := []tap.Field{
		object("campaign", integer("id"), str("name"), str("reference")),
		object("responder", integer("id"), str("reference")),
		object("supplier", integer("id"), str("name"), str("sid")),
		object("push", integer("id"), str("name"), str("redirect")),
		object("advertiser", integer("id"), str("name")),
	}
	fields = append(fields, strs("sent", "pending", "undelivered", "delivered", "clicks",
		"conversions", "cost", "revenue", "profit", "currency")...)
	fields = append(fields,
		integer("campaign_id"), integer("responder_id"), integer("supplier_id"), integer("push_id"))

	return &tap.Stream{
		Name:        "sms_reports",
		Path:        "/reports/sms",
		PrimaryKeys: []string{"campaign_id", "responder_id", "supplier_id", "push_id"},
		Schema:      &tap.Schema{Fields: fields},
		Paginate:    true,
		Params:      tap.ReportParams,
		PostProcess: flattenKeys(pushKeys),
	}
}

// BulkEmailReports returns the bulk email report stream
func BulkEmailReports() *tap.Stream {
	stream := EmailReports()
	stream.Name = "bulk_email_reports"
	stream.Path = "/reports/bulkemail"
	return stream
}

// BulkSmsReports returns the bulk SMS report stream
func BulkSmsReports() *tap.Stream {
	stream := SmsReports()
	stream.Name = "bulk_sms_reports"
	stream.Path = "/reports/bulksms"
	return stream
}

// SupplierReports returns the per-supplier performance report stream
func SupplierReports() *tap.Stream {
	fields := []tap.Field{
		object("campaign", str("id"), str("name"), str("reference")),
		object("supplier", str("id"), str("name"), str("sid")),
		integer("leads"), integer("valid"), integer("invalid"), number("validCR"),
		integer("pending"), integer("rejected"), integer("payable"), integer("sold"),
		integer("returns"), number("payableCR"), number("payout"),
		number("emailCost"), number("smsCost"), number("validationCost"),
		number("revenue"), number("profit"), number("eCPL"), number("eRPL"),
		number("payoutAdjusted"), number("revenueAdjusted"), number("profitAdjusted"),
		number("eCPLAdjusted"), number("eRPLAdjusted"),
		str("currency"),
		str("campaign_id"), str("supplier_id"),
	}

	return &tap.Stream{
		Name:        "supplier_reports",
		Path:        "/reports/supplier",
		PrimaryKeys: []string{"campaign_id", "supplier_id"},
		Schema:      &tap.Schema{Fields: fields},
		Paginate:    true,
		Params:      tap.ReportParams,
		PostProcess: flattenKeys([]keyField{
			{flat: "campaign_id", object: "campaign", field: "id"},
			{flat: "supplier_id", object: "supplier", field: "id"},
		}),
	}
}

// BuyerReports returns the per-buyer performance report stream. The
// supplier object is optional on this endpoint; its flattened id falls
// back to the empty-string sentinel rather than failing the stream.
func BuyerReports() *tap.Stream {
	fields := []tap.Field{
		object("campaign", str("id"), str("name"), str("reference")),
		object("supplier", str("id"), str("name"), str("sid")),
		object("buyer", str("id"), str("name"), str("bid")),
		integer("posted"), integer("accepted"), integer("sold"), integer("rejected"),
		number("approvedCR"), integer("returned"), number("returnedPercent"),
		number("revenue"), number("RPL"), number("RPS"),
		str("currency"),
		str("campaign_id"), str("buyer_id"), str("supplier_id"),
	}

	return &tap.Stream{
		Name:        "buyer_reports",
		Path:        "/reports/buyer",
		PrimaryKeys: []string{"campaign_id", "buyer_id"},
		Schema:      &tap.Schema{Fields: fields},
		Paginate:    true,
		Params:      tap.ReportParams,
		PostProcess: func(row map[string]interface{}) (map[string]interface{}, error) {
			campaignID, err := requireNested(row, "campaign", "id")
			if err != nil {
				return nil, err
			}
			buyerID, err := requireNested(row, "buyer", "id")
			if err != nil {
				return nil, err
			}
			supplierID, err := optionalNested(row, "supplier", "id", "")
			if err != nil {
				return nil, err
			}
			row["campaign_id"] = campaignID
			row["buyer_id"] = buyerID
			row["supplier_id"] = supplierID
			return row, nil
		},
	}
}

// CampaignReports returns the per-campaign daily report stream
func CampaignReports() *tap.Stream {
	fields := []tap.Field{
		object("campaign", str("id"), str("name"), str("reference")),
		object("supplier", str("id"), str("name"), str("sid")),
		str("date"),
		integer("leads"), integer("valid"), integer("invalid"), integer("pending"),
		integer("rejections"), integer("payable"), integer("sold"), integer("returns"),
		number("payout"), number("emailCost"), number("smsCost"), number("validationCost"),
		number("revenue"), number("profit"),
		str("currency"),
		str("campaign_id"),
	}

	return &tap.Stream{
		Name:        "campaign_reports",
		Path:        "/reports/campaign",
		PrimaryKeys: []string{"campaign_id", "date"},
		Schema:      &tap.Schema{Fields: fields},
		Paginate:    true,
		Params:      tap.ReportParams,
		PostProcess: flattenKeys([]keyField{
			{flat: "campaign_id", object: "campaign", field: "id"},
		}),
	}
}

// LeadActivityReports returns the lead activity report stream. It is the
// one report endpoint that honors the show* display options.
func LeadActivityReports() *tap.Stream {
	fields := []tap.Field{
		object("campaign", integer("id"), str("name"), str("reference")),
		object("supplier", str("id"), str("name"), str("sid")),
		str("date"),
		integer("count"),
		integer("campaign_id"),
	}

	return &tap.Stream{
		Name:        "lead_activity_reports",
		Path:        "/reports/leadactivity",
		PrimaryKeys: []string{"campaign_id", "date"},
		Schema:      &tap.Schema{Fields: fields},
		Paginate:    true,
		Params:      tap.LeadActivityParams,
		PostProcess: flattenKeys([]keyField{
			{flat: "campaign_id", object: "campaign", field: "id"},
		}),
	}
}
