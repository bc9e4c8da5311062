package tap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/casesondemand/tap-leadbyte/pkg/clients"
	"github.com/casesondemand/tap-leadbyte/pkg/config"
	"github.com/casesondemand/tap-leadbyte/pkg/logger"
	"github.com/casesondemand/tap-leadbyte/pkg/metrics"
	"github.com/casesondemand/tap-leadbyte/pkg/models"
	"github.com/casesondemand/tap-leadbyte/pkg/taperrors"
)

// RecordStream is the lazy record sequence of one stream sync. Records is
// closed when the stream is exhausted; Errors carries at most one fatal
// error and is closed with it. Consumers read Records to completion, then
// check Errors.
type RecordStream struct {
	Records <-chan *models.Record
	Errors  <-chan error
}

// Runner drives the fetch/extract/paginate loop. One runner serves every
// stream of a sync; streams are read strictly one at a time.
type Runner struct {
	cfg    *config.Config
	client *clients.Client
	syncID string
	logger *zap.Logger
}

// NewRunner creates a runner for one tap invocation
func NewRunner(cfg *config.Config, client *clients.Client, syncID string) *Runner {
	return &Runner{
		cfg:    cfg,
		client: client,
		syncID: syncID,
		logger: logger.Get().With(zap.String("sync_id", syncID)),
	}
}

// Read starts one stream sync and returns its lazy record sequence.
// Records become available as pages arrive, so a consumer can begin
// processing before the final page is fetched. Cancelling ctx stops the
// loop; remaining pages are never requested.
func (r *Runner) Read(ctx context.Context, stream *Stream) *RecordStream {
	records := make(chan *models.Record)
	errs := make(chan error, 1)

	go func() {
		defer close(records)
		defer close(errs)
		if err := r.requestRecords(ctx, stream, records); err != nil {
			errs <- err
		}
	}()

	return &RecordStream{Records: records, Errors: errs}
}

// requestRecords is the core loop: build parameters, fetch, extract,
// decide. Requests are strictly sequential; the token for page N+1 is
// computed only after page N's response is fully parsed.
func (r *Runner) requestRecords(ctx context.Context, stream *Stream, out chan<- *models.Record) error {
	log := r.logger.With(zap.String("stream", stream.Name))

	extractor, err := NewExtractor(stream.Name, stream.recordsPath(), log)
	if err != nil {
		return err
	}

	pc := acquirePageContext(stream, log)
	defer pc.Release()

	pages := 0
	for {
		token, ok := pc.Next()
		if !ok {
			break
		}

		params, err := stream.BuildParams(r.cfg, token)
		if err != nil {
			return err
		}

		body, err := r.client.Get(ctx, stream.Path, params)
		if err != nil {
			return err
		}

		doc, err := DecodeBody(body)
		if err != nil {
			return err
		}

		rows := extractor.ExtractDecoded(doc)
		if len(rows) > 0 {
			pages++
			metrics.PagesFetched.WithLabelValues(stream.Name).Inc()
		}

		for _, row := range rows {
			processed, err := stream.postProcess(row)
			if err != nil {
				return taperrors.Wrapf(err, taperrors.ErrorTypeData,
					"post-processing failed for stream %s", stream.Name)
			}
			if processed == nil {
				metrics.RecordsDropped.WithLabelValues(stream.Name).Inc()
				continue
			}

			record := models.NewRecord(stream.Name, processed)
			record.Metadata.SyncID = r.syncID

			select {
			case out <- record:
				metrics.RecordsExtracted.WithLabelValues(stream.Name).Inc()
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		pc.Advance(doc)
	}

	if pages == 0 {
		log.Info(fmt.Sprintf("Finished syncing %s. No pages received.", stream.Name))
	} else {
		log.Info(fmt.Sprintf("Finished syncing %s. %d pages received.", stream.Name, pages))
	}

	return nil
}
