package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"vodframes/internal/core/domain"
	"vodframes/internal/core/ports"
)

// Config carries the run parameters the pipeline needs.
type Config struct {
	Channel     string
	OutputRoot  string
	ScratchDir  string
	FetchWindow int
}

// Pipeline coordinates one poll-and-process cycle: resolve the channel, list
// recent videos, drop the already-handled ones, then download and
// frame-sample the rest strictly one at a time.
type Pipeline struct {
	cfg       Config
	catalog   ports.Catalog
	acquirer  ports.Acquirer
	extractor ports.FrameExtractor
	ledger    ports.Ledger
	report    ports.ReportWriter
	logger    zerolog.Logger
}

// New creates a Pipeline. The report writer may be nil.
func New(
	cfg Config,
	catalog ports.Catalog,
	acquirer ports.Acquirer,
	extractor ports.FrameExtractor,
	ledger ports.Ledger,
	report ports.ReportWriter,
	logger zerolog.Logger,
) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		catalog:   catalog,
		acquirer:  acquirer,
		extractor: extractor,
		ledger:    ledger,
		report:    report,
		logger:    logger,
	}
}

// Run executes one full cycle. A degraded run (API unreachable) returns a
// summary and a nil error; the retry is simply the next scheduled invocation.
// A non-nil error means the run aborted and nothing more will happen.
func (p *Pipeline) Run(ctx context.Context) (*domain.RunSummary, error) {
	runID := uuid.New().String()
	logger := p.logger.With().Str("run_id", runID).Logger()

	summary := &domain.RunSummary{
		RunID:     runID,
		Channel:   p.cfg.Channel,
		StartedAt: time.Now().UTC(),
	}
	logger.Info().Str("event", "run.start").Str("channel", p.cfg.Channel).Msg("starting poll cycle")

	if err := os.MkdirAll(p.cfg.OutputRoot, 0755); err != nil {
		return nil, fmt.Errorf("create output root %s: %w", p.cfg.OutputRoot, err)
	}
	if err := os.MkdirAll(p.cfg.ScratchDir, 0755); err != nil {
		return nil, fmt.Errorf("create scratch dir %s: %w", p.cfg.ScratchDir, err)
	}

	seen, err := p.ledger.Load()
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	logger.Info().Str("event", "ledger.loaded").Int("known_ids", seen.Len()).Msg("ledger loaded")

	channelID, err := p.catalog.ResolveChannel(ctx, p.cfg.Channel)
	if err != nil {
		if errors.Is(err, domain.ErrAPIUnavailable) {
			logger.Warn().Err(err).Str("event", "run.degraded").Msg("channel lookup unavailable, ending run")
			return p.finish(logger, summary), nil
		}
		return nil, fmt.Errorf("resolve channel %q: %w", p.cfg.Channel, err)
	}
	summary.ChannelID = channelID

	videos, err := p.catalog.ListVideos(ctx, channelID, p.cfg.FetchWindow)
	if err != nil {
		// any listing failure degrades to an empty worklist
		logger.Warn().Err(err).Str("event", "run.degraded").Msg("video listing unavailable, ending run")
		return p.finish(logger, summary), nil
	}
	summary.Listed = len(videos)

	work := domain.FilterUnseen(videos, seen)
	summary.New = len(work)
	logger.Info().
		Str("event", "worklist.built").
		Int("listed", len(videos)).
		Int("new", len(work)).
		Int("skipped", len(videos)-len(work)).
		Msg("worklist built")

	for _, video := range work {
		select {
		case <-ctx.Done():
			logger.Warn().Str("event", "run.cancelled").Msg("cancelled, stopping before next video")
			summary.FinishedAt = time.Now().UTC()
			return summary, ctx.Err()
		default:
		}

		outcome, localPath := p.processVideo(ctx, logger, video)
		if outcome.Success {
			if err := p.ledger.Record(video.ID); err != nil {
				// an unwritable ledger would break dedup on every later run
				summary.FinishedAt = time.Now().UTC()
				return summary, fmt.Errorf("record %s in ledger: %w", video.ID, err)
			}
			p.removeScratch(logger, video.ID, localPath)
			summary.Succeeded++
		} else {
			summary.Failed++
		}
		summary.Items = append(summary.Items, outcome)
	}

	return p.finish(logger, summary), nil
}

// processVideo runs the acquire and extract stages for one video. It returns
// the outcome and, when a download happened, the scratch file path.
func (p *Pipeline) processVideo(ctx context.Context, logger zerolog.Logger, video domain.Video) (domain.ItemOutcome, string) {
	itemLog := logger.With().Str("video_id", video.ID).Logger()
	outcome := domain.ItemOutcome{VideoID: video.ID, Title: video.Title}

	itemLog.Info().
		Str("event", "item.start").
		Str("title", video.Title).
		Time("created_at", video.CreatedAt).
		Msg("processing video")

	localPath, err := p.acquirer.Acquire(ctx, video, p.cfg.ScratchDir)
	if err != nil {
		itemLog.Error().Err(err).Str("event", "item.acquire_failed").Msg("download failed, will be re-attempted next run")
		outcome.Stage = domain.StageAcquire
		outcome.Error = err.Error()
		outcome.CompletedAt = time.Now().UTC()
		return outcome, ""
	}
	itemLog.Info().Str("event", "item.acquired").Str("path", localPath).Msg("download complete")

	if err := p.extractor.ExtractFrames(ctx, localPath, video.ID, p.cfg.OutputRoot); err != nil {
		itemLog.Error().Err(err).Str("event", "item.extract_failed").Str("path", localPath).Msg("frame extraction failed, media kept for inspection")
		outcome.Stage = domain.StageExtract
		outcome.Error = err.Error()
		outcome.CompletedAt = time.Now().UTC()
		return outcome, localPath
	}

	outcome.Success = true
	outcome.FrameDir = filepath.Join(p.cfg.OutputRoot, video.ID)
	outcome.CompletedAt = time.Now().UTC()
	itemLog.Info().Str("event", "item.done").Str("frame_dir", outcome.FrameDir).Msg("frames extracted")
	return outcome, localPath
}

// removeScratch deletes the working copy after its ID is safely in the
// ledger. Failure to delete never undoes the commit.
func (p *Pipeline) removeScratch(logger zerolog.Logger, id, localPath string) {
	if err := os.Remove(localPath); err != nil {
		logger.Warn().Err(err).
			Str("event", "item.cleanup_failed").
			Str("video_id", id).
			Str("path", localPath).
			Msg("could not remove scratch file")
	}
}

// finish stamps the summary, writes the manifest and logs the closing counts.
func (p *Pipeline) finish(logger zerolog.Logger, summary *domain.RunSummary) *domain.RunSummary {
	summary.FinishedAt = time.Now().UTC()

	if p.report != nil {
		if err := p.report.Write(summary); err != nil {
			logger.Warn().Err(err).Str("event", "report.write_failed").Msg("could not write run manifest")
		}
	}

	logger.Info().
		Str("event", "run.done").
		Int("listed", summary.Listed).
		Int("new", summary.New).
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Msg("poll cycle finished")
	return summary
}
