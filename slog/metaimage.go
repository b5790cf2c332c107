// Package slog provides logging decorators for relcards services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/relcards"
)

// Ensure LoggingMetaImages implements relcards.MetaImageService.
var _ relcards.MetaImageService = (*LoggingMetaImages)(nil)

// LoggingMetaImages wraps a MetaImageService with outcome logging. The
// serialized payload collapses failed and absent lookups to an empty
// string; the log line is where the distinction stays observable.
type LoggingMetaImages struct {
	next   relcards.MetaImageService
	logger *slog.Logger
}

// NewLoggingMetaImages creates a new LoggingMetaImages.
func NewLoggingMetaImages(next relcards.MetaImageService, logger *slog.Logger) *LoggingMetaImages {
	return &LoggingMetaImages{next: next, logger: logger}
}

// MetaImage delegates to the wrapped service and logs the outcome.
func (s *LoggingMetaImages) MetaImage(ctx context.Context, pageURL string) relcards.ImageResult {
	begin := time.Now()
	res := s.next.MetaImage(ctx, pageURL)

	outcome := "found"
	switch {
	case res.Err != nil:
		outcome = "failed"
	case res.URL == "":
		outcome = "absent"
	}

	s.logger.Info("meta image lookup",
		"url", pageURL,
		"outcome", outcome,
		"duration", time.Since(begin),
		"err", res.Err,
	)
	return res
}
