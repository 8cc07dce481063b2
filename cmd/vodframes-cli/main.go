package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"vodframes/internal/adapters/ffmpeg"
	"vodframes/internal/adapters/ledger"
	"vodframes/internal/adapters/manifest"
	"vodframes/internal/adapters/twitch"
	"vodframes/internal/adapters/ytdlp"
	"vodframes/internal/core/domain"
	"vodframes/internal/platform/config"
	"vodframes/internal/platform/logging"
	"vodframes/internal/service"
)

func main() {
	// Load .env if present; variables may also come from the process environment.
	envLoaded := godotenv.Load() == nil

	channelFlag := flag.String("channel", "", "Twitch login to poll (overrides TWITCH_CHANNEL)")
	outputFlag := flag.String("output-dir", "", "Directory for extracted frames (overrides OUTPUT_DIR)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}
	if *channelFlag != "" {
		cfg.Channel = *channelFlag
	}
	if *outputFlag != "" {
		cfg.OutputDir = *outputFlag
	}

	logger, closeLogs, err := logging.Setup(logging.Options{
		Level:    cfg.LogLevel,
		FilePath: cfg.LogFile,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging setup error:", err)
		os.Exit(1)
	}
	defer closeLogs()

	if !envLoaded {
		logger.Debug().Str("event", "env.no_dotenv").Msg("no .env file found, using process environment")
	}

	logger.Info().
		Str("event", "boot").
		Str("channel", cfg.Channel).
		Str("output_dir", cfg.OutputDir).
		Str("ledger", cfg.LedgerPath).
		Int("fetch_window", cfg.FetchWindow).
		Msg("vodframes starting")

	if err := cfg.Validate(); err != nil {
		logger.Error().Err(err).Str("event", "config.invalid").Msg("rejecting run")
		fmt.Fprintln(os.Stderr, "\nSet TWITCH_CHANNEL, TWITCH_CLIENT_ID and TWITCH_APP_ACCESS_TOKEN in the")
		fmt.Fprintln(os.Stderr, "process environment or a .env file. Run with -h for the flag overrides.")
		closeLogs()
		os.Exit(1)
	}

	catalog := twitch.New(twitch.Config{
		BaseURL:     cfg.APIBaseURL,
		ClientID:    cfg.ClientID,
		AccessToken: cfg.AccessToken,
		Timeout:     cfg.HTTPTimeout,
	}, logging.WithComponent(logger, "twitch"))

	acquirer := ytdlp.New(ytdlp.Config{BinPath: cfg.YtdlpPath}, logging.WithComponent(logger, "ytdlp"))
	extractor := ffmpeg.New(ffmpeg.Config{
		BinPath:   cfg.FfmpegPath,
		ProbePath: cfg.FfprobePath,
	}, logging.WithComponent(logger, "ffmpeg"))
	seen := ledger.New(cfg.LedgerPath)
	report := manifest.New(filepath.Join(cfg.OutputDir, "last_run.json"))

	pipeline := service.New(service.Config{
		Channel:     cfg.Channel,
		OutputRoot:  cfg.OutputDir,
		ScratchDir:  cfg.ScratchDir(),
		FetchWindow: cfg.FetchWindow,
	}, catalog, acquirer, extractor, seen, report, logging.WithComponent(logger, "pipeline"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cancel the run on interrupt; anything not yet committed is retried next run.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Warn().Str("event", "signal").Msg("interrupt received, cancelling")
		cancel()
	}()

	summary, err := pipeline.Run(ctx)
	if err != nil {
		logger.Error().Err(err).Str("event", "run.failed").Msg("run aborted")
		closeLogs()
		os.Exit(1)
	}

	printSummary(summary)
}

func printSummary(s *domain.RunSummary) {
	fmt.Println("\n=== Run Summary ===")
	fmt.Printf("Run ID:     %s\n", s.RunID)
	fmt.Printf("Channel:    %s\n", s.Channel)
	fmt.Printf("Listed:     %d\n", s.Listed)
	fmt.Printf("New:        %d\n", s.New)
	if s.Succeeded > 0 {
		color.New(color.FgHiGreen).Printf("Succeeded:  %d\n", s.Succeeded)
	} else {
		fmt.Printf("Succeeded:  %d\n", s.Succeeded)
	}
	if s.Failed > 0 {
		color.New(color.FgHiRed, color.Bold).Printf("Failed:     %d\n", s.Failed)
	} else {
		fmt.Printf("Failed:     %d\n", s.Failed)
	}
	fmt.Printf("Finished:   %s\n", s.FinishedAt.Format("2006-01-02 15:04:05 UTC"))
}
