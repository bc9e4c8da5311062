// Package tapleadbyte provides a data extraction connector (tap) for the
// LeadByte marketing automation REST API. It syncs report and master-data
// endpoints as full-table streams and writes newline-delimited JSON
// messages: one SCHEMA message per stream followed by its RECORD messages.
//
// # Quick Start
//
// Run a sync with a YAML configuration file:
//
//	tap-leadbyte run --config config.yaml
//	tap-leadbyte run --config config.yaml --streams email_reports,campaigns
//	tap-leadbyte streams
//
// A minimal configuration:
//
//	api_key: ${LEADBYTE_API_KEY}
//	domain: acme
//	start_date: "2024-01-01"
//
// Environment variables are supported with ${VAR_NAME} syntax.
//
// # Key Packages
//
//	pkg/tap          - Parameter building, pagination, extraction, fetch loop
//	pkg/tap/streams  - Stream catalog: schemas, primary keys, post-processing
//	pkg/singer       - SCHEMA/RECORD message encoding
//	pkg/clients      - Retrying HTTP client
//	pkg/config       - Configuration loading and validation
//	pkg/taperrors    - Structured error handling
//	pkg/logger       - Structured logging
//	internal/sync    - Stream-by-stream sync orchestration
//
// # Streams
//
// Report streams share a date window (from/to, or a datePreset that
// replaces it), optional campaign/supplier/responder/buyer ID filters and
// Yes/No report options:
//   - email_reports, sms_reports, bulk_email_reports, bulk_sms_reports
//   - supplier_reports, buyer_reports, campaign_reports
//   - lead_activity_reports
//
// Master-data streams take only status filters:
//   - campaigns, deliveries, responders, buyers
//
// All streams paginate through the API's next_page protocol and replicate
// full tables on every run.
package tapleadbyte
