// Package fs provides file-based persistence for extraction snapshots.
package fs

import (
	"context"
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/relcards"
)

// SnapshotPath converts a source URL to a relative file name for its
// snapshot. Example: https://www.example.org/news → www.example.org.json
func SnapshotPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", relcards.Errorf(relcards.EINVALID, "source URL %q has no host", rawURL)
	}
	host := strings.ReplaceAll(u.Host, ":", "-")
	return host + ".json", nil
}

// Ensure Writer implements relcards.SnapshotWriter at compile time.
var _ relcards.SnapshotWriter = (*Writer)(nil)

// Writer writes snapshots as JSON files to a directory, one file per
// source host.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteSnapshot writes a snapshot to disk as an indented JSON document.
// An empty item list is serialized as [], never null.
func (w *Writer) WriteSnapshot(ctx context.Context, snapshot *relcards.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}

	relPath, err := SnapshotPath(snapshot.SourceURL)
	if err != nil {
		return err
	}

	// A nil item list would serialize as null; the payload contract is [].
	out := *snapshot
	if out.Items == nil {
		out.Items = []relcards.Card{}
	}

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, append(data, '\n'), 0644)
}
