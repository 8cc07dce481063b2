package ytdlp

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/lrstanley/go-ytdlp"
	"github.com/rs/zerolog"

	"vodframes/internal/core/domain"
)

// watchURLPrefix is the canonical VOD page; the download URL is always built
// from the video ID, not from whatever URL the catalog reported.
const watchURLPrefix = "https://www.twitch.tv/videos/"

// Config points the downloader at a yt-dlp binary.
type Config struct {
	BinPath string
}

// Downloader drives the external yt-dlp binary to fetch one VOD at a time.
type Downloader struct {
	binPath string
	logger  zerolog.Logger
}

// New creates a Downloader. An empty BinPath resolves yt-dlp from PATH.
func New(cfg Config, logger zerolog.Logger) *Downloader {
	bin := cfg.BinPath
	if bin == "" {
		bin = "yt-dlp"
	}
	return &Downloader{binPath: bin, logger: logger}
}

// Acquire downloads the video into scratchDir and returns the local file
// path. The file keeps whatever extension yt-dlp chose.
func (d *Downloader) Acquire(ctx context.Context, video domain.Video, scratchDir string) (string, error) {
	if err := os.MkdirAll(scratchDir, 0755); err != nil {
		return "", fmt.Errorf("create scratch dir %s: %w", scratchDir, err)
	}

	bin, err := exec.LookPath(d.binPath)
	if err != nil {
		return "", &domain.ToolError{Sentinel: domain.ErrToolMissing, Tool: d.binPath, Err: err}
	}

	dl := ytdlp.New().
		SetExecutable(bin).
		NoPlaylist().
		RestrictFilenames().
		Output(filepath.Join(scratchDir, video.ID+".%(ext)s"))

	res, err := dl.Run(ctx, watchURLPrefix+video.ID)
	if err != nil {
		toolErr := &domain.ToolError{Sentinel: domain.ErrToolFailed, Tool: "yt-dlp", Err: err}
		if res != nil {
			toolErr.ExitCode = res.ExitCode
			toolErr.Stderr = strings.TrimSpace(res.Stderr)
		}
		return "", toolErr
	}
	if res != nil && strings.TrimSpace(res.Stdout) != "" {
		d.logger.Debug().Str("event", "acquire.tool_output").Str("video_id", video.ID).Msg(strings.TrimSpace(res.Stdout))
	}

	return findDownload(scratchDir, video.ID)
}

// findDownload locates the file yt-dlp wrote for the given ID. The extension
// is chosen by yt-dlp, so match on the ID prefix; in-progress .part files
// don't count as output.
func findDownload(dir, id string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("scan scratch dir %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, id+".") && !strings.HasSuffix(name, ".part") {
			return filepath.Join(dir, name), nil
		}
	}
	return "", &domain.ToolError{
		Sentinel: domain.ErrToolNoOutput,
		Tool:     "yt-dlp",
		Err:      fmt.Errorf("no file with prefix %s in %s", id, dir),
	}
}
