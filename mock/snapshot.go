package mock

import (
	"context"

	"github.com/fwojciec/relcards"
)

var _ relcards.SnapshotWriter = (*SnapshotWriter)(nil)

// SnapshotWriter is a mock implementation of relcards.SnapshotWriter.
type SnapshotWriter struct {
	WriteSnapshotFn func(ctx context.Context, snapshot *relcards.Snapshot) error
}

func (w *SnapshotWriter) WriteSnapshot(ctx context.Context, snapshot *relcards.Snapshot) error {
	return w.WriteSnapshotFn(ctx, snapshot)
}

var _ relcards.SnapshotService = (*SnapshotService)(nil)

// SnapshotService is a mock implementation of relcards.SnapshotService.
type SnapshotService struct {
	CreateSnapshotFn   func(ctx context.Context, snapshot *relcards.Snapshot) error
	FindSnapshotByIDFn func(ctx context.Context, id string) (*relcards.Snapshot, error)
	FindSnapshotsFn    func(ctx context.Context, filter relcards.SnapshotFilter) ([]*relcards.Snapshot, error)
	DeleteSnapshotFn   func(ctx context.Context, id string) error
}

func (s *SnapshotService) CreateSnapshot(ctx context.Context, snapshot *relcards.Snapshot) error {
	return s.CreateSnapshotFn(ctx, snapshot)
}

func (s *SnapshotService) FindSnapshotByID(ctx context.Context, id string) (*relcards.Snapshot, error) {
	return s.FindSnapshotByIDFn(ctx, id)
}

func (s *SnapshotService) FindSnapshots(ctx context.Context, filter relcards.SnapshotFilter) ([]*relcards.Snapshot, error) {
	return s.FindSnapshotsFn(ctx, filter)
}

func (s *SnapshotService) DeleteSnapshot(ctx context.Context, id string) error {
	return s.DeleteSnapshotFn(ctx, id)
}
