package tap

import (
	gojson "github.com/goccy/go-json"
	"github.com/theory/jsonpath"
	"go.uber.org/zap"

	"github.com/casesondemand/tap-leadbyte/pkg/taperrors"
)

// statusSuccess is the body value signalling a usable response
const statusSuccess = "Success"

// Extractor locates record rows in decoded response bodies using a
// stream's JSONPath expression.
type Extractor struct {
	stream string
	path   *jsonpath.Path
	logger *zap.Logger
}

// NewExtractor compiles a records path for a stream
func NewExtractor(stream, expr string, logger *zap.Logger) (*Extractor, error) {
	path, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, taperrors.Wrapf(err, taperrors.ErrorTypeData,
			"invalid records path %q for stream %s", expr, stream)
	}
	return &Extractor{
		stream: stream,
		path:   path,
		logger: logger,
	}, nil
}

// DecodeBody decodes a raw response body
func DecodeBody(body []byte) (interface{}, error) {
	var doc interface{}
	if err := gojson.Unmarshal(body, &doc); err != nil {
		return nil, taperrors.Wrap(err, taperrors.ErrorTypeData, "failed to decode response body")
	}
	return doc, nil
}

// Extract decodes a body and returns its record rows
func (e *Extractor) Extract(body []byte) ([]map[string]interface{}, error) {
	doc, err := DecodeBody(body)
	if err != nil {
		return nil, err
	}
	return e.ExtractDecoded(doc), nil
}

// ExtractDecoded returns the record rows of a decoded body in document
// order. A failure status in the body is logged and yields no rows; it is
// an API-level condition, not a transport error, so no error is returned.
// A path that matches nothing yields zero rows.
func (e *Extractor) ExtractDecoded(doc interface{}) []map[string]interface{} {
	if body, ok := doc.(map[string]interface{}); ok {
		if status, ok := body["status"].(string); ok && status != statusSuccess {
			message, _ := body["message"].(string)
			if message == "" {
				message = "unknown error"
			}
			e.logger.Error("API error", zap.String("message", message))
			return nil
		}
	}

	nodes := e.path.Select(doc)
	rows := make([]map[string]interface{}, 0, len(nodes))
	for _, node := range nodes {
		row, ok := node.(map[string]interface{})
		if !ok {
			e.logger.Debug("skipping non-object node", zap.Any("node", node))
			continue
		}
		rows = append(rows, row)
	}
	return rows
}
