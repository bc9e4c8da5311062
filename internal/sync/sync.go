// Package sync orchestrates a tap invocation: it syncs the selected
// streams one after another and hands every record to the output writer.
package sync

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/casesondemand/tap-leadbyte/pkg/clients"
	"github.com/casesondemand/tap-leadbyte/pkg/config"
	"github.com/casesondemand/tap-leadbyte/pkg/logger"
	"github.com/casesondemand/tap-leadbyte/pkg/singer"
	"github.com/casesondemand/tap-leadbyte/pkg/tap"
	"github.com/casesondemand/tap-leadbyte/pkg/taperrors"
)

// Syncer runs full-table syncs for a set of streams
type Syncer struct {
	cfg    *config.Config
	runner *tap.Runner
	writer *singer.Writer
	syncID string
	logger *zap.Logger
}

// New creates a syncer. Every record produced by this syncer carries the
// same sync run ID.
func New(cfg *config.Config, client *clients.Client, writer *singer.Writer) *Syncer {
	syncID := uuid.New().String()
	return &Syncer{
		cfg:    cfg,
		runner: tap.NewRunner(cfg, client, syncID),
		writer: writer,
		syncID: syncID,
		logger: logger.Get().With(zap.String("sync_id", syncID)),
	}
}

// Run syncs the given streams in order. A failing stream is logged and
// does not stop the remaining streams; if any stream failed, Run returns
// an error after the last one finishes.
func (s *Syncer) Run(ctx context.Context, streams []*tap.Stream) error {
	start := time.Now()
	s.logger.Info("Starting sync",
		zap.Int("streams", len(streams)))

	failed := 0
	for _, stream := range streams {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.syncStream(ctx, stream); err != nil {
			failed++
			s.logger.Error("Stream sync failed",
				zap.String("stream", stream.Name),
				zap.Error(err))
		}
	}

	s.logger.Info("Sync finished",
		zap.Int("streams", len(streams)),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(start)))

	if failed > 0 {
		return taperrors.Newf(taperrors.ErrorTypeData, "%d of %d streams failed", failed, len(streams))
	}
	return nil
}

func (s *Syncer) syncStream(ctx context.Context, stream *tap.Stream) error {
	log := s.logger.With(zap.String("stream", stream.Name))
	log.Info("Syncing stream")

	if err := s.writer.WriteSchema(stream); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rs := s.runner.Read(ctx, stream)

	written := 0
	for record := range rs.Records {
		if err := s.writer.WriteRecord(record); err != nil {
			// Unblock the producer before bailing out.
			cancel()
			for range rs.Records {
			}
			<-rs.Errors
			return err
		}
		written++
	}
	if err := <-rs.Errors; err != nil {
		return err
	}

	log.Info("Stream synced", zap.Int("records", written))
	return nil
}
