package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/google/renameio/v2"

	"vodframes/internal/core/domain"
)

// Writer persists the last-run summary as JSON next to the output artifacts.
// Writes are atomic and fsynced, so readers never observe a torn manifest.
type Writer struct {
	path string
}

// New creates a Writer targeting the given file path.
func New(path string) *Writer {
	return &Writer{path: path}
}

// Write replaces the manifest with the given summary.
func (w *Writer) Write(summary *domain.RunSummary) error {
	pending, err := renameio.NewPendingFile(w.path)
	if err != nil {
		return fmt.Errorf("create pending manifest: %w", err)
	}
	defer func() {
		_ = pending.Cleanup()
	}()

	enc := json.NewEncoder(pending)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace manifest: %w", err)
	}
	return nil
}
