// Package models provides the data structures records flow through.
package models

import (
	"time"
)

// RecordMetadata carries provenance for a record. All fields are optional
// and travel alongside the data, never inside it.
type RecordMetadata struct {
	// Source identifies the origin system
	Source string `json:"source,omitempty"`
	// SyncID correlates every record of one tap invocation
	SyncID string `json:"sync_id,omitempty"`
	// ExtractedAt is when the record was pulled from the API
	ExtractedAt time.Time `json:"extracted_at"`
}

// Record is one row of a stream: an unordered mapping of field name to
// value shaped by the stream's schema. Ownership is transient; a record is
// produced, optionally transformed, then handed to the output sink.
type Record struct {
	// Stream names the stream this record belongs to
	Stream string `json:"stream"`
	// Data holds the field values
	Data map[string]interface{} `json:"data"`
	// Metadata holds provenance information
	Metadata RecordMetadata `json:"metadata"`
}

// NewRecord creates a record for a stream
func NewRecord(stream string, data map[string]interface{}) *Record {
	if data == nil {
		data = make(map[string]interface{})
	}
	return &Record{
		Stream: stream,
		Data:   data,
		Metadata: RecordMetadata{
			Source:      "leadbyte",
			ExtractedAt: time.Now().UTC(),
		},
	}
}

// SetData sets a single field value
func (r *Record) SetData(key string, value interface{}) {
	r.Data[key] = value
}

// GetData returns a single field value
func (r *Record) GetData(key string) (interface{}, bool) {
	v, ok := r.Data[key]
	return v, ok
}
