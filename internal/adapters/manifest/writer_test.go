package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vodframes/internal/core/domain"
)

func TestWriteAndReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last_run.json")
	w := New(path)

	summary := &domain.RunSummary{
		RunID:      "8b7f3c0a-run",
		Channel:    "somestreamer",
		ChannelID:  "141981764",
		StartedAt:  time.Date(2024, 5, 17, 10, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2024, 5, 17, 10, 12, 0, 0, time.UTC),
		Listed:     5,
		New:        2,
		Succeeded:  1,
		Failed:     1,
		Items: []domain.ItemOutcome{
			{VideoID: "335921245", Title: "Friday VOD", Success: true, FrameDir: "twitch_clips/335921245"},
			{VideoID: "335921300", Title: "Untitled Video", Stage: domain.StageAcquire, Error: "yt-dlp: tool: non-zero exit"},
		},
	}
	require.NoError(t, w.Write(summary))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got domain.RunSummary
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "somestreamer", got.Channel)
	assert.Equal(t, 2, got.New)
	assert.Len(t, got.Items, 2)
	assert.True(t, got.Items[0].Success)
	assert.Equal(t, domain.StageAcquire, got.Items[1].Stage)
}

func TestWriteReplacesPreviousManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last_run.json")
	w := New(path)

	require.NoError(t, w.Write(&domain.RunSummary{RunID: "first"}))
	require.NoError(t, w.Write(&domain.RunSummary{RunID: "second"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "second")
	assert.NotContains(t, string(data), "first")
}

func TestWriteFailsWhenDirMissing(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing", "last_run.json"))
	err := w.Write(&domain.RunSummary{RunID: "x"})
	require.Error(t, err)
}
