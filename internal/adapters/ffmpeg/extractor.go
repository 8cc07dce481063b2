package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"vodframes/internal/core/domain"
)

// frameRate keeps one frame every two seconds.
const frameRate = "1/2"

// Config points the extractor at the ffmpeg and ffprobe binaries.
type Config struct {
	BinPath   string
	ProbePath string
}

// Extractor samples still frames from downloaded media via the external
// ffmpeg binary.
type Extractor struct {
	binPath   string
	probePath string
	logger    zerolog.Logger
}

// New creates an Extractor. Empty paths resolve the tools from PATH.
func New(cfg Config, logger zerolog.Logger) *Extractor {
	bin := cfg.BinPath
	if bin == "" {
		bin = "ffmpeg"
	}
	probe := cfg.ProbePath
	if probe == "" {
		probe = "ffprobe"
	}
	return &Extractor{binPath: bin, probePath: probe, logger: logger}
}

// ExtractFrames writes {id}_frame_NNNNNN.jpg files under outputRoot/{id}.
// Success is the ffmpeg exit status alone; frames are not counted afterwards.
func (e *Extractor) ExtractFrames(ctx context.Context, localPath, videoID, outputRoot string) error {
	if _, err := os.Stat(localPath); err != nil {
		return &domain.ToolError{
			Sentinel: domain.ErrToolFailed,
			Tool:     "ffmpeg",
			Err:      fmt.Errorf("media file missing: %w", err),
		}
	}

	frameDir := filepath.Join(outputRoot, videoID)
	if err := os.MkdirAll(frameDir, 0755); err != nil {
		return fmt.Errorf("create frame dir %s: %w", frameDir, err)
	}

	if dur, err := e.probeDuration(ctx, localPath); err == nil {
		e.logger.Debug().
			Str("event", "extract.probed").
			Str("video_id", videoID).
			Float64("duration_s", dur).
			Float64("expected_frames", dur/2).
			Msg("media duration probed")
	}

	bin, err := exec.LookPath(e.binPath)
	if err != nil {
		return &domain.ToolError{Sentinel: domain.ErrToolMissing, Tool: e.binPath, Err: err}
	}

	args := buildArgs(localPath, frameDir, videoID)
	cmd := exec.CommandContext(ctx, bin, args...) // #nosec G204

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		toolErr := &domain.ToolError{
			Sentinel: domain.ErrToolFailed,
			Tool:     "ffmpeg",
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			toolErr.ExitCode = exitErr.ExitCode()
		}
		return toolErr
	}

	// ffmpeg writes its progress report to stderr even on success
	if s := strings.TrimSpace(stderr.String()); s != "" {
		e.logger.Debug().Str("event", "extract.tool_output").Str("video_id", videoID).Msg(s)
	}
	return nil
}

// buildArgs assembles the ffmpeg invocation for one media file. Split out so
// the argument vector is testable without ffmpeg installed.
func buildArgs(localPath, frameDir, videoID string) []string {
	pattern := filepath.Join(frameDir, videoID+"_frame_%06d.jpg")
	return []string{
		"-hide_banner",
		"-i", localPath,
		"-vf", "fps=" + frameRate,
		pattern,
	}
}

// probeDuration asks ffprobe for the media duration in seconds. Callers treat
// any failure as "unknown"; the extraction itself never depends on it.
func (e *Extractor) probeDuration(ctx context.Context, localPath string) (float64, error) {
	bin, err := exec.LookPath(e.probePath)
	if err != nil {
		return 0, err
	}

	cmd := exec.CommandContext(ctx, bin,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		localPath) // #nosec G204

	out, err := cmd.Output()
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
}
