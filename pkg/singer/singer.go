// Package singer encodes the tap's output as Singer-style messages: one
// SCHEMA message per stream followed by a RECORD message per row, each on
// its own line.
package singer

import (
	"io"
	"time"

	gojson "github.com/goccy/go-json"

	"github.com/casesondemand/tap-leadbyte/pkg/models"
	"github.com/casesondemand/tap-leadbyte/pkg/tap"
	"github.com/casesondemand/tap-leadbyte/pkg/taperrors"
)

// Message is one line of tap output
type Message struct {
	Type          string                 `json:"type"`
	Stream        string                 `json:"stream,omitempty"`
	Record        map[string]interface{} `json:"record,omitempty"`
	Schema        interface{}            `json:"schema,omitempty"`
	KeyProperties []string               `json:"key_properties,omitempty"`
	TimeExtracted *time.Time             `json:"time_extracted,omitempty"`
}

// Writer emits messages to a sink. It is not safe for concurrent use;
// streams are synced serially so no locking is needed.
type Writer struct {
	w io.Writer
}

// NewWriter creates a message writer
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteSchema emits a stream's SCHEMA message
func (w *Writer) WriteSchema(stream *tap.Stream) error {
	return w.write(Message{
		Type:          "SCHEMA",
		Stream:        stream.Name,
		Schema:        SchemaDocument(stream.Schema),
		KeyProperties: stream.PrimaryKeys,
	})
}

// WriteRecord emits one RECORD message
func (w *Writer) WriteRecord(record *models.Record) error {
	extracted := record.Metadata.ExtractedAt
	return w.write(Message{
		Type:          "RECORD",
		Stream:        record.Stream,
		Record:        record.Data,
		TimeExtracted: &extracted,
	})
}

func (w *Writer) write(msg Message) error {
	data, err := gojson.Marshal(msg)
	if err != nil {
		return taperrors.Wrap(err, taperrors.ErrorTypeData, "failed to encode message")
	}
	data = append(data, '\n')
	if _, err := w.w.Write(data); err != nil {
		return taperrors.Wrap(err, taperrors.ErrorTypeConnection, "failed to write message")
	}
	return nil
}

// SchemaDocument renders a stream schema as a JSON-schema object
func SchemaDocument(schema *tap.Schema) map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": properties(schema.Fields),
	}
}

func properties(fields []tap.Field) map[string]interface{} {
	props := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		props[f.Name] = fieldDocument(f)
	}
	return props
}

func fieldDocument(f tap.Field) map[string]interface{} {
	doc := map[string]interface{}{}

	switch f.Type {
	case tap.FieldTypeObject:
		doc["type"] = typeList("object", f.Nullable)
		if len(f.Fields) > 0 {
			doc["properties"] = properties(f.Fields)
		}
	case tap.FieldTypeArray:
		doc["type"] = typeList("array", f.Nullable)
		if len(f.Fields) > 0 {
			doc["items"] = map[string]interface{}{
				"type":       "object",
				"properties": properties(f.Fields),
			}
		}
	case tap.FieldTypeInt:
		doc["type"] = typeList("integer", f.Nullable)
	case tap.FieldTypeFloat:
		doc["type"] = typeList("number", f.Nullable)
	case tap.FieldTypeBool:
		doc["type"] = typeList("boolean", f.Nullable)
	default:
		doc["type"] = typeList("string", f.Nullable)
	}

	return doc
}

func typeList(base string, nullable bool) interface{} {
	if nullable {
		return []string{base, "null"}
	}
	return base
}
