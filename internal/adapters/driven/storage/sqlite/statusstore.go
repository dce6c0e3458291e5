package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/textprep/internal/core/domain"
	"github.com/custodia-labs/textprep/internal/core/ports/driven"
)

// statusStore implements driven.StatusStore.
type statusStore struct {
	store *Store
}

var _ driven.StatusStore = (*statusStore)(nil)

// MarkProcessing records the start of a run, resetting any earlier outcome.
func (s *statusStore) MarkProcessing(ctx context.Context, documentID, runID string) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO document_status (document_id, run_id, state, attempts, chunk_count, error, updated_at)
		VALUES (?, ?, ?, 0, 0, '', ?)
		ON CONFLICT(document_id) DO UPDATE SET
			run_id = excluded.run_id,
			state = excluded.state,
			attempts = 0,
			chunk_count = 0,
			error = '',
			updated_at = excluded.updated_at
	`, documentID, runID, domain.StateProcessing, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("marking processing: %w", err)
	}
	return nil
}

// MarkCompleted records a successful run.
func (s *statusStore) MarkCompleted(ctx context.Context, documentID string, attempts, chunkCount int) error {
	return s.finish(ctx, documentID, domain.StateCompleted, attempts, chunkCount, "")
}

// MarkFailed records an exhausted run.
func (s *statusStore) MarkFailed(ctx context.Context, documentID string, attempts int, reason string) error {
	return s.finish(ctx, documentID, domain.StateFailed, attempts, 0, reason)
}

func (s *statusStore) finish(ctx context.Context, documentID string, state domain.ProcessingState,
	attempts, chunkCount int, reason string) error {
	res, err := s.store.db.ExecContext(ctx, `
		UPDATE document_status
		SET state = ?, attempts = ?, chunk_count = ?, error = ?, updated_at = ?
		WHERE document_id = ?
	`, state, attempts, chunkCount, reason, time.Now().UTC(), documentID)
	if err != nil {
		return fmt.Errorf("marking %s: %w", state, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("marking %s: %w", state, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Get retrieves the status of a document.
func (s *statusStore) Get(ctx context.Context, documentID string) (*domain.DocumentStatus, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT document_id, run_id, state, attempts, chunk_count, error, updated_at
		FROM document_status WHERE document_id = ?
	`, documentID)

	var st domain.DocumentStatus
	var state string
	if err := row.Scan(&st.DocumentID, &st.RunID, &state, &st.Attempts,
		&st.ChunkCount, &st.Error, &st.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning status: %w", err)
	}
	st.State = domain.ProcessingState(state)
	st.UpdatedAt = st.UpdatedAt.UTC()
	return &st, nil
}
