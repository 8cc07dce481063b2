package ledger

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"vodframes/internal/core/domain"
)

// FileLedger keeps the processed-video record in a newline-delimited text
// file. The file is append-only; nothing ever rewrites or reorders it.
type FileLedger struct {
	path string
}

// New creates a FileLedger for the given path. The file itself is created
// lazily on first Load or Record.
func New(path string) *FileLedger {
	return &FileLedger{path: path}
}

// Load reads every recorded ID into memory. A missing ledger is created
// empty so the first run starts from a clean file.
func (l *FileLedger) Load() (domain.SeenSet, error) {
	seen := domain.NewSeenSet()

	f, err := os.Open(l.path)
	if errors.Is(err, os.ErrNotExist) {
		if err := l.create(); err != nil {
			return nil, err
		}
		return seen, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open ledger %s: %w", l.path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		id := strings.TrimSpace(sc.Text())
		if id == "" {
			continue
		}
		seen.Add(id)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read ledger %s: %w", l.path, err)
	}
	return seen, nil
}

// Record appends one ID and flushes it to disk before returning, so a crash
// right after a successful item cannot lose the entry.
func (l *FileLedger) Record(id string) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open ledger %s: %w", l.path, err)
	}
	if _, err := f.WriteString(id + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("append %s to ledger: %w", id, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync ledger: %w", err)
	}
	return f.Close()
}

// Path returns the ledger file location.
func (l *FileLedger) Path() string {
	return l.path
}

func (l *FileLedger) create() error {
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create ledger directory %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("create ledger %s: %w", l.path, err)
	}
	return f.Close()
}
