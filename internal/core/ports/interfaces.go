package ports

import (
	"context"

	"vodframes/internal/core/domain"
)

// Catalog defines the contract for looking up a channel and its recorded videos.
type Catalog interface {
	// ResolveChannel maps a channel login name to its opaque channel ID.
	ResolveChannel(ctx context.Context, login string) (string, error)

	// ListVideos returns up to limit of the channel's most recent archived
	// broadcasts, newest first, in the order the platform reports them.
	ListVideos(ctx context.Context, channelID string, limit int) ([]domain.Video, error)
}

// Acquirer defines the contract for fetching a video onto local disk.
type Acquirer interface {
	// Acquire downloads the video into scratchDir and returns the local path.
	Acquire(ctx context.Context, video domain.Video, scratchDir string) (string, error)
}

// FrameExtractor defines the contract for sampling stills from local media.
type FrameExtractor interface {
	// ExtractFrames writes the frame set for videoID under outputRoot.
	ExtractFrames(ctx context.Context, localPath, videoID, outputRoot string) error
}

// Ledger defines the contract for the durable record of handled video IDs.
type Ledger interface {
	// Load reads every recorded ID into memory, treating a missing ledger as empty.
	Load() (domain.SeenSet, error)

	// Record durably appends one ID; it must not return before the entry is flushed.
	Record(id string) error
}

// ReportWriter defines the contract for persisting a run summary.
type ReportWriter interface {
	Write(summary *domain.RunSummary) error
}
