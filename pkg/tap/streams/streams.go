// Package streams declares the LeadByte stream catalog: one descriptor per
// supported endpoint, with its schema, primary keys, records path and
// parameter builder.
package streams

import (
	"github.com/casesondemand/tap-leadbyte/pkg/tap"
)

// All returns every supported stream in sync order
func All() []*tap.Stream {
	return []*tap.Stream{
		EmailReports(),
		SmsReports(),
		BulkEmailReports(),
		BulkSmsReports(),
		SupplierReports(),
		BuyerReports(),
		CampaignReports(),
		LeadActivityReports(),
		Campaigns(),
		Deliveries(),
		Responders(),
		Buyers(),
	}
}

// Lookup returns the named stream, or nil when unknown
func Lookup(name string) *tap.Stream {
	for _, stream := range All() {
		if stream.Name == name {
			return stream
		}
	}
	return nil
}

// Campaigns returns the campaign master-data stream. The endpoint responds
// with a bare array, so its records path selects the top level directly.
func Campaigns() *tap.Stream {
	return &tap.Stream{
		Name:        "campaigns",
		Path:        "/campaigns",
		PrimaryKeys: []string{"id"},
		RecordsPath: "$[*]",
		Schema: &tap.Schema{Fields: strs(
			"id", "name", "reference", "description", "currency", "country",
			"sms_field", "active", "sup_visible", "archived",
		)},
		Paginate: true,
		Params:   tap.CampaignsParams,
	}
}

// Deliveries returns the delivery master-data stream
func Deliveries() *tap.Stream {
	return &tap.Stream{
		Name:        "deliveries",
		Path:        "/deliveries",
		PrimaryKeys: []string{"id"},
		RecordsPath: "$.deliveries[*]",
		Schema: &tap.Schema{Fields: []tap.Field{
			str("id"), str("reference"), str("status"),
			object("campaign", str("id"), str("name"), str("reference")),
			str("deliver_to"),
			object("remote_system"),
		}},
		Paginate: true,
		Params:   tap.DeliveriesParams,
	}
}

// Responders returns the responder master-data stream
func Responders() *tap.Stream {
	pushFields := []tap.Field{
		str("push_id"), str("name"), str("type"), str("advertiser"),
		str("marketing_category"), str("sent"),
		integer("pending"), integer("undelivered"), integer("delivered"),
		str("opened"), str("clicks"), str("conversions"), str("bounced"),
		str("unsubscribed"), str("cost"), str("revenue"),
		number("profit"),
		str("currency"), str("active"), str("link"),
	}

	return &tap.Stream{
		Name:        "responders",
		Path:        "/responders",
		PrimaryKeys: []string{"id"},
		Schema: &tap.Schema{Fields: []tap.Field{
			str("id"), str("reference"), str("status"),
			object("campaign", str("id"), str("name"), str("reference")),
			object("suppression", str("id"), str("name"), str("reference")),
			str("supplier"), str("pause_from"), str("pause_to"),
			array("pushes", pushFields...),
		}},
		Paginate: true,
	}
}

// Buyers returns the buyer master-data stream. Buyers have no numeric id;
// the company name is the closest thing the endpoint offers to a key.
func Buyers() *tap.Stream {
	return &tap.Stream{
		Name:        "buyers",
		Path:        "/buyers",
		PrimaryKeys: []string{"company"},
		RecordsPath: "$.buyers[*]",
		Schema: &tap.Schema{Fields: strs(
			"company", "street1", "towncity", "county", "country", "postcode",
			"phone", "external_ref", "external_ref_2", "status",
			"credit_amount", "credit_balance",
		)},
		Paginate: true,
		Params:   tap.BuyersParams,
	}
}
