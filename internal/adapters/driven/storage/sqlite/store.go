package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/askdoc-labs/askdoc-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
	"github.com/askdoc-labs/askdoc-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all metadata store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.askdoc/data/askdoc.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".askdoc", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "askdoc.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys so chunk rows cascade with their document
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// QueryStore returns a QueryStore interface backed by this store.
func (s *Store) QueryStore() driven.QueryStore {
	return &queryStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// InsertDocument stores a new document record.
func (s *documentStore) InsertDocument(ctx context.Context, doc *domain.Document) error {
	metadataJSON, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("marshalling metadata: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO documents
			(id, filename, content_type, status, uploaded_at, chunk_count, file_size, processing_time, error, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Filename, doc.ContentType, string(doc.Status), doc.UploadedAt,
		doc.ChunkCount, doc.FileSize, doc.ProcessingTime, doc.Error, string(metadataJSON))

	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}
	return nil
}

// InsertChunks stores a chunk batch in a single transaction. The batch
// also updates the owning document's chunk count, so a document never
// reports a count its chunks table cannot back.
func (s *documentStore) InsertChunks(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, document_id, content, position, metadata)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content = excluded.content,
			position = excluded.position,
			metadata = excluded.metadata
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		metadataJSON, err := json.Marshal(chunk.Metadata)
		if err != nil {
			return fmt.Errorf("marshalling chunk metadata: %w", err)
		}

		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.DocumentID, chunk.Content,
			chunk.Position, string(metadataJSON)); err != nil {
			return fmt.Errorf("inserting chunk: %w", err)
		}
	}

	docID := chunks[0].DocumentID
	if _, err := tx.ExecContext(ctx,
		"UPDATE documents SET chunk_count = ? WHERE id = ?", len(chunks), docID); err != nil {
		return fmt.Errorf("updating chunk count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// UpdateDocumentStatus transitions a document's status. The current
// status is read and checked inside the same transaction, so two
// concurrent transitions cannot both succeed.
func (s *documentStore) UpdateDocumentStatus(ctx context.Context, id string, status domain.DocumentStatus, errMsg string, seconds float64) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var current string
	row := tx.QueryRowContext(ctx, "SELECT status FROM documents WHERE id = ?", id)
	if err := row.Scan(&current); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("reading status: %w", err)
	}

	if !domain.DocumentStatus(current).CanTransitionTo(status) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStatusTransition, current, status)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE documents
		SET status = ?, error = ?,
			processing_time = CASE WHEN ? > 0 THEN ? ELSE processing_time END
		WHERE id = ?
	`, string(status), errMsg, seconds, seconds, id); err != nil {
		return fmt.Errorf("updating status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *documentStore) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, filename, content_type, status, uploaded_at, chunk_count, file_size, processing_time, error, metadata
		FROM documents WHERE id = ?
	`, id)

	doc, err := scanDocument(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// GetChunks retrieves all chunks for a document ordered by position.
func (s *documentStore) GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, document_id, content, position, metadata
		FROM chunks WHERE document_id = ?
		ORDER BY position
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	return collectChunks(rows)
}

// ListDocuments returns all documents, most recent upload first.
func (s *documentStore) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, filename, content_type, status, uploaded_at, chunk_count, file_size, processing_time, error, metadata
		FROM documents
		ORDER BY uploaded_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// AllChunks enumerates every chunk in the store, grouped by document
// and ordered by position. This is the rebuild source for the index.
func (s *documentStore) AllChunks(ctx context.Context) ([]domain.Chunk, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, document_id, content, position, metadata
		FROM chunks
		ORDER BY document_id, position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	return collectChunks(rows)
}

// DeleteDocument removes a document and its chunks.
func (s *documentStore) DeleteDocument(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ==================== Query Store ====================

// queryStore implements driven.QueryStore.
type queryStore struct {
	store *Store
}

var _ driven.QueryStore = (*queryStore)(nil)

// InsertQuery stores a query record.
func (s *queryStore) InsertQuery(ctx context.Context, q *domain.Query) error {
	sourcesJSON, err := json.Marshal(q.Sources)
	if err != nil {
		return fmt.Errorf("marshalling sources: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO queries
			(id, question, answer, confidence, sources, sources_used, processing_time, model_used, max_results, context_filter, temperature, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, q.ID, q.Question, q.Answer, q.Confidence, string(sourcesJSON), q.SourcesUsed,
		q.ProcessingTime, q.ModelUsed, q.MaxResults, q.ContextFilter, q.Temperature, q.Timestamp)

	if err != nil {
		return fmt.Errorf("inserting query: %w", err)
	}
	return nil
}

// ListQueries returns recent queries, newest first.
func (s *queryStore) ListQueries(ctx context.Context, limit, offset int) ([]domain.Query, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, question, answer, confidence, sources, sources_used, processing_time, model_used, max_results, context_filter, temperature, created_at
		FROM queries
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying queries: %w", err)
	}
	defer rows.Close()

	var queries []domain.Query //nolint:prealloc // size unknown from query
	for rows.Next() {
		var q domain.Query
		var sourcesJSON string
		var createdAt sql.NullTime
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.Confidence, &sourcesJSON,
			&q.SourcesUsed, &q.ProcessingTime, &q.ModelUsed, &q.MaxResults,
			&q.ContextFilter, &q.Temperature, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning query: %w", err)
		}

		if err := json.Unmarshal([]byte(sourcesJSON), &q.Sources); err != nil {
			return nil, fmt.Errorf("unmarshaling sources: %w", err)
		}
		if createdAt.Valid {
			q.Timestamp = createdAt.Time
		}
		queries = append(queries, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating queries: %w", err)
	}

	return queries, nil
}

// ==================== Helper Functions ====================

// scanDocument scans one document row through the given Scan function,
// shared between *sql.Row and *sql.Rows.
func scanDocument(scan func(dest ...any) error) (*domain.Document, error) {
	var doc domain.Document
	var status, metadataJSON string
	var uploadedAt sql.NullTime

	if err := scan(&doc.ID, &doc.Filename, &doc.ContentType, &status, &uploadedAt,
		&doc.ChunkCount, &doc.FileSize, &doc.ProcessingTime, &doc.Error, &metadataJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.Status = domain.DocumentStatus(status)
	if uploadedAt.Valid {
		doc.UploadedAt = uploadedAt.Time
	}

	if metadataJSON != "" {
		if err := json.Unmarshal([]byte(metadataJSON), &doc.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshaling metadata: %w", err)
		}
	}

	return &doc, nil
}

// collectChunks scans all chunk rows.
func collectChunks(rows *sql.Rows) ([]domain.Chunk, error) {
	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		var chunk domain.Chunk
		var metadataJSON string
		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Content,
			&chunk.Position, &metadataJSON); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}

		if metadataJSON != "" {
			if err := json.Unmarshal([]byte(metadataJSON), &chunk.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshaling chunk metadata: %w", err)
			}
		}
		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, nil
}
