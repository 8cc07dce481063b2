package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"vodframes/internal/core/domain"
)

// Placeholder values shipped in .env templates; they gate the whole run.
const (
	placeholderChannel  = "YOUR_STREAMER_USERNAME_HERE"
	placeholderClientID = "YOUR_TWITCH_CLIENT_ID"
	placeholderToken    = "YOUR_TWITCH_APP_ACCESS_TOKEN"
)

// Config is the full runtime configuration, read from the environment.
type Config struct {
	Channel     string        `env:"TWITCH_CHANNEL" env-default:""`
	ClientID    string        `env:"TWITCH_CLIENT_ID" env-default:""`
	AccessToken string        `env:"TWITCH_APP_ACCESS_TOKEN" env-default:""`
	APIBaseURL  string        `env:"TWITCH_API_URL" env-default:"https://api.twitch.tv/helix"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" env-default:"30s"`

	OutputDir  string `env:"OUTPUT_DIR" env-default:"twitch_clips"`
	LedgerPath string `env:"LEDGER_FILE" env-default:"processed_videos.txt"`
	LogFile    string `env:"LOG_FILE" env-default:"vodframes.log"`
	LogLevel   string `env:"LOG_LEVEL" env-default:"info"`

	FetchWindow int `env:"FETCH_WINDOW" env-default:"5"`

	YtdlpPath   string `env:"YTDLP_PATH" env-default:"yt-dlp"`
	FfmpegPath  string `env:"FFMPEG_PATH" env-default:"ffmpeg"`
	FfprobePath string `env:"FFPROBE_PATH" env-default:"ffprobe"`
}

// Load reads the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	return cfg, nil
}

// Validate rejects missing or still-placeholder credentials before any
// ledger or network activity happens.
func (c Config) Validate() error {
	switch {
	case c.Channel == "" || c.Channel == placeholderChannel:
		return fmt.Errorf("%w: TWITCH_CHANNEL", domain.ErrConfig)
	case c.ClientID == "" || c.ClientID == placeholderClientID:
		return fmt.Errorf("%w: TWITCH_CLIENT_ID", domain.ErrConfig)
	case c.AccessToken == "" || c.AccessToken == placeholderToken:
		return fmt.Errorf("%w: TWITCH_APP_ACCESS_TOKEN", domain.ErrConfig)
	}
	if c.FetchWindow < 1 || c.FetchWindow > 100 {
		return fmt.Errorf("%w: FETCH_WINDOW must be between 1 and 100", domain.ErrConfig)
	}
	return nil
}

// ScratchDir is where in-flight downloads live until their frames are extracted.
func (c Config) ScratchDir() string {
	return filepath.Join(c.OutputDir, "temp")
}
