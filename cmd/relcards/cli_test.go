package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/relcards"
	main "github.com/fwojciec/relcards/cmd/relcards"
	"github.com/fwojciec/relcards/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDeps(stdout, stderr *bytes.Buffer) *main.Dependencies {
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Renderer: &mock.Renderer{
			RenderFn: func(_ context.Context, _ string) (string, error) { return "<html></html>", nil },
			CloseFn:  func() error { return nil },
		},
		Extractor: &mock.CardExtractor{
			ExtractFn: func(_, _, _ string) ([]relcards.Card, error) {
				return []relcards.Card{{Title: "A", URL: "https://example.org/a"}}, nil
			},
		},
		MetaImages: &mock.MetaImageService{
			MetaImageFn: func(_ context.Context, _ string) relcards.ImageResult {
				return relcards.ImageResult{}
			},
		},
		Writer: &mock.SnapshotWriter{
			WriteSnapshotFn: func(_ context.Context, _ *relcards.Snapshot) error { return nil },
		},
	}
}

func TestScrapeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes snapshot and reports count", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		deps := testDeps(&stdout, &stderr)

		var written *relcards.Snapshot
		deps.Writer = &mock.SnapshotWriter{
			WriteSnapshotFn: func(_ context.Context, s *relcards.Snapshot) error {
				written = s
				return nil
			},
		}

		cmd := &main.ScrapeCmd{URL: "https://example.org/news", Heading: "Related"}
		require.NoError(t, cmd.Run(deps))

		require.NotNil(t, written)
		assert.Equal(t, "https://example.org/news", written.SourceURL)
		assert.Contains(t, stdout.String(), "Extracted 1 cards")
	})

	t.Run("records history when a snapshot service is wired", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		deps := testDeps(&stdout, &stderr)

		var recorded bool
		deps.Snapshots = &mock.SnapshotService{
			CreateSnapshotFn: func(_ context.Context, _ *relcards.Snapshot) error {
				recorded = true
				return nil
			},
		}

		cmd := &main.ScrapeCmd{URL: "https://example.org", Heading: "Related"}
		require.NoError(t, cmd.Run(deps))
		assert.True(t, recorded)
	})

	t.Run("render failure surfaces as an error", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		deps := testDeps(&stdout, &stderr)
		deps.Renderer = &mock.Renderer{
			RenderFn: func(_ context.Context, _ string) (string, error) {
				return "", errors.New("browser crashed")
			},
			CloseFn: func() error { return nil },
		}

		cmd := &main.ScrapeCmd{URL: "https://example.org", Heading: "Related"}
		require.Error(t, cmd.Run(deps))
	})

	t.Run("writer failure surfaces as an error", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		deps := testDeps(&stdout, &stderr)
		deps.Writer = &mock.SnapshotWriter{
			WriteSnapshotFn: func(_ context.Context, _ *relcards.Snapshot) error {
				return errors.New("disk full")
			},
		}

		cmd := &main.ScrapeCmd{URL: "https://example.org", Heading: "Related"}
		require.Error(t, cmd.Run(deps))
		assert.Contains(t, stderr.String(), "error writing snapshot")
	})
}
