package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/textprep/internal/core/domain"
	"github.com/custodia-labs/textprep/internal/core/ports/driven"
)

// chunkStore implements driven.ChunkStore.
type chunkStore struct {
	store *Store
}

var _ driven.ChunkStore = (*chunkStore)(nil)

const chunkColumns = `document_id, id, run_id, text, sentences, token_start, token_end,
	metadata, sentiment_label, sentiment_polarity, text_hash, embedding,
	business_id, business_region, subscription_type, data_type, file_format, timestamp`

// SaveChunks replaces the chunks of every document present in chunks.
func (s *chunkStore) SaveChunks(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	cleared := make(map[string]bool)
	for _, chunk := range chunks {
		if cleared[chunk.DocumentID] {
			continue
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE document_id = ?", chunk.DocumentID); err != nil {
			return fmt.Errorf("clearing chunks: %w", err)
		}
		cleared[chunk.DocumentID] = true
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO chunks (`+chunkColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		sentencesJSON, err := json.Marshal(chunk.Sentences)
		if err != nil {
			return fmt.Errorf("marshalling sentences: %w", err)
		}
		metadataJSON, err := json.Marshal(chunk.Metadata)
		if err != nil {
			return fmt.Errorf("marshalling chunk metadata: %w", err)
		}

		if _, err := stmt.ExecContext(ctx,
			chunk.DocumentID, chunk.ID, chunk.RunID, chunk.Text, string(sentencesJSON),
			chunk.TokenSpan.Start, chunk.TokenSpan.End, string(metadataJSON),
			string(chunk.Sentiment.Label), chunk.Sentiment.Polarity, chunk.TextHash,
			encodeVector(chunk.Embedding),
			chunk.BusinessID, chunk.BusinessRegion, chunk.SubscriptionType,
			chunk.DataType, chunk.FileFormat, chunk.Timestamp.UTC(),
		); err != nil {
			return fmt.Errorf("saving chunk %d: %w", chunk.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetChunks retrieves all chunks for a document ordered by ID.
func (s *chunkStore) GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT `+chunkColumns+` FROM chunks WHERE document_id = ? ORDER BY id`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, *chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}
	if len(chunks) == 0 {
		return nil, domain.ErrNotFound
	}

	return chunks, nil
}

// scanChunk scans a chunk from *sql.Rows.
func scanChunk(rows *sql.Rows) (*domain.Chunk, error) {
	var (
		chunk                       domain.Chunk
		sentencesJSON, metadataJSON string
		label                       string
		embeddingBlob               []byte
		timestamp                   sql.NullTime
	)

	if err := rows.Scan(&chunk.DocumentID, &chunk.ID, &chunk.RunID, &chunk.Text, &sentencesJSON,
		&chunk.TokenSpan.Start, &chunk.TokenSpan.End, &metadataJSON,
		&label, &chunk.Sentiment.Polarity, &chunk.TextHash, &embeddingBlob,
		&chunk.BusinessID, &chunk.BusinessRegion, &chunk.SubscriptionType,
		&chunk.DataType, &chunk.FileFormat, &timestamp); err != nil {
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}

	if err := json.Unmarshal([]byte(sentencesJSON), &chunk.Sentences); err != nil {
		return nil, fmt.Errorf("unmarshaling sentences: %w", err)
	}
	if err := json.Unmarshal([]byte(metadataJSON), &chunk.Metadata); err != nil {
		return nil, fmt.Errorf("unmarshaling chunk metadata: %w", err)
	}

	chunk.Sentiment.Label = domain.SentimentLabel(label)
	chunk.Embedding = decodeVector(embeddingBlob)
	if timestamp.Valid {
		chunk.Timestamp = timestamp.Time.UTC()
	}

	return &chunk, nil
}
