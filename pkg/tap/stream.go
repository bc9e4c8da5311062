// Package tap implements the request-iteration core of the LeadByte
// connector: parameter building, pagination, JSONPath record extraction
// and the fetch loop that ties them together.
package tap

import (
	"net/url"

	"go.uber.org/zap"

	"github.com/casesondemand/tap-leadbyte/pkg/config"
)

// DefaultRecordsPath selects every element of the top-level data array,
// which is where most endpoints put their records.
const DefaultRecordsPath = "$.data[*]"

// ParamsFunc builds the stream-specific query parameters for one request.
// It must be a pure function of the configuration.
type ParamsFunc func(cfg *config.Config) (url.Values, error)

// PostProcessFunc transforms one extracted row before it leaves the core.
// Returning nil, nil drops the row from output.
type PostProcessFunc func(row map[string]interface{}) (map[string]interface{}, error)

// Stream describes one endpoint: where its records live, how to ask for
// them and what shape they have. Instances are immutable once declared;
// there is exactly one per supported endpoint.
type Stream struct {
	// Name is the stream identifier in output and logs
	Name string
	// Path is the request path relative to the API root
	Path string
	// PrimaryKeys lists the key field names, flattened convention only
	PrimaryKeys []string
	// RecordsPath is the JSONPath locating records in a response body;
	// empty means DefaultRecordsPath
	RecordsPath string
	// Schema declares the record shape
	Schema *Schema
	// Paginate enables the next_page protocol; a non-paginating stream
	// fetches exactly one page
	Paginate bool
	// Params builds stream-specific parameters; nil means key-only
	Params ParamsFunc
	// PostProcess is the optional per-record transform
	PostProcess PostProcessFunc
}

func (s *Stream) recordsPath() string {
	if s.RecordsPath == "" {
		return DefaultRecordsPath
	}
	return s.RecordsPath
}

// BuildParams produces the full query parameters for one request: the
// stream parameters, the API key and finally the pagination token, whose
// pairs may override anything built before them.
func (s *Stream) BuildParams(cfg *config.Config, token Token) (url.Values, error) {
	params := url.Values{}
	if s.Params != nil {
		var err error
		params, err = s.Params(cfg)
		if err != nil {
			return nil, err
		}
	}

	params.Set("key", cfg.APIKey)

	for k, v := range token {
		params.Set(k, v)
	}

	return params, nil
}

func (s *Stream) postProcess(row map[string]interface{}) (map[string]interface{}, error) {
	if s.PostProcess == nil {
		return row, nil
	}
	return s.PostProcess(row)
}

// pageContext is the scoped pagination resource for one stream invocation.
// Acquired once per sync, released exactly once on every exit path. Tokens
// pass through it so each is consumed exactly once.
type pageContext struct {
	paginate bool
	started  bool
	done     bool
	token    Token
	released bool
	logger   *zap.Logger
}

func acquirePageContext(s *Stream, logger *zap.Logger) *pageContext {
	logger.Debug("pagination context acquired", zap.Bool("paginate", s.Paginate))
	return &pageContext{
		paginate: s.Paginate,
		logger:   logger,
	}
}

// Next returns the token for the next fetch. The first call always allows
// one fetch with a nil token; later calls allow a fetch only while a token
// is pending.
func (p *pageContext) Next() (Token, bool) {
	if p.released || p.done {
		return nil, false
	}
	if !p.started {
		p.started = true
		return nil, true
	}
	if !p.paginate || p.token == nil {
		p.done = true
		return nil, false
	}
	token := p.token
	p.token = nil
	return token, true
}

// Advance records the token computed from the latest response. Called after
// the response is fully parsed, never before.
func (p *pageContext) Advance(doc interface{}) {
	if !p.paginate {
		return
	}
	p.token = NextToken(doc)
}

// Release returns the context. Idempotent.
func (p *pageContext) Release() {
	if p.released {
		return
	}
	p.released = true
	p.token = nil
	p.logger.Debug("pagination context released")
}
