package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/numstat/internal/model"
)

// DBFileName is the SQLite file created inside the database directory.
const DBFileName = "numstat.db"

// HistoryDB provides SQLite-based storage for analyses.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, DBFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else if err := os.MkdirAll(dbDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Path returns the database file path.
func (h *HistoryDB) Path() string {
	return h.dbPath
}

// Close closes the database connection.
func (h *HistoryDB) Close() error {
	return h.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (h *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS analyses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		analyzed_at TEXT NOT NULL,
		input TEXT NOT NULL,
		count INTEGER NOT NULL,
		error_count INTEGER NOT NULL,
		average REAL,
		analysis_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_analyses_analyzed_at ON analyses(analyzed_at);
	`

	_, err := h.db.ExecContext(context.Background(), schema)
	return err
}

// SaveAnalysis stores the analysis and sets its ID.
func (h *HistoryDB) SaveAnalysis(ctx context.Context, analysis *model.Analysis) (int64, error) {
	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize analysis: %w", err)
	}

	var average sql.NullFloat64
	if analysis.Summary != nil {
		average = sql.NullFloat64{Float64: analysis.Summary.Average, Valid: true}
	}

	query := `
	INSERT INTO analyses (analyzed_at, input, count, error_count, average, analysis_json)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := h.db.ExecContext(ctx, query,
		analysis.AnalyzedAt.UTC().Format(time.RFC3339Nano),
		analysis.Input,
		analysis.Count(),
		len(analysis.Errors),
		average,
		string(analysisJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save analysis: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read analysis id: %w", err)
	}

	analysis.ID = id
	return id, nil
}

// GetAnalysisByID retrieves a stored analysis.
// It returns ErrAnalysisNotFound when the ID does not exist.
func (h *HistoryDB) GetAnalysisByID(ctx context.Context, id int64) (*model.Analysis, error) {
	query := `SELECT id, analysis_json FROM analyses WHERE id = ?`

	var analysisJSON string
	var storedID int64
	err := h.db.QueryRowContext(ctx, query, id).Scan(&storedID, &analysisJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrAnalysisNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	return decodeAnalysis(storedID, analysisJSON)
}

// GetLatestAnalyses returns up to n analyses, newest first.
func (h *HistoryDB) GetLatestAnalyses(ctx context.Context, n int) ([]*model.Analysis, error) {
	query := `
	SELECT id, analysis_json FROM analyses
	ORDER BY id DESC
	LIMIT ?
	`

	rows, err := h.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("failed to get analyses: %w", err)
	}
	defer rows.Close()

	var analyses []*model.Analysis
	for rows.Next() {
		var id int64
		var analysisJSON string
		if err := rows.Scan(&id, &analysisJSON); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}

		a, err := decodeAnalysis(id, analysisJSON)
		if err != nil {
			continue // Skip malformed rows
		}
		analyses = append(analyses, a)
	}

	return analyses, rows.Err()
}

// AnalysisMetadata summarizes a stored analysis without loading its numbers.
type AnalysisMetadata struct {
	// ID is the unique identifier of the analysis in the database.
	ID int64

	// AnalyzedAt is when the analysis was performed.
	AnalyzedAt time.Time

	// Input is the raw input string.
	Input string

	// Count is the number of parsed values.
	Count int

	// ErrorCount is the number of rejected tokens.
	ErrorCount int

	// Average is the mean, invalid when nothing was parsed.
	Average sql.NullFloat64
}

// ListAnalyses returns metadata for up to limit analyses, newest first.
// A non-positive limit lists everything.
func (h *HistoryDB) ListAnalyses(ctx context.Context, limit int) ([]AnalysisMetadata, error) {
	query := `
	SELECT id, analyzed_at, input, count, error_count, average
	FROM analyses
	ORDER BY id DESC
	LIMIT ?
	`
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := h.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var results []AnalysisMetadata
	for rows.Next() {
		var meta AnalysisMetadata
		var analyzedAt string
		if err := rows.Scan(&meta.ID, &analyzedAt, &meta.Input, &meta.Count, &meta.ErrorCount, &meta.Average); err != nil {
			return nil, fmt.Errorf("failed to scan metadata: %w", err)
		}
		meta.AnalyzedAt = parseTimestamp(analyzedAt)
		results = append(results, meta)
	}

	return results, rows.Err()
}

// CountAnalyses returns the number of stored analyses.
func (h *HistoryDB) CountAnalyses(ctx context.Context) (int, error) {
	var count int
	if err := h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM analyses`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count analyses: %w", err)
	}
	return count, nil
}

// decodeAnalysis unmarshals a stored analysis and restores its ID.
func decodeAnalysis(id int64, analysisJSON string) (*model.Analysis, error) {
	var a model.Analysis
	if err := json.Unmarshal([]byte(analysisJSON), &a); err != nil {
		return nil, fmt.Errorf("failed to parse analysis: %w", err)
	}
	a.ID = id
	return &a, nil
}

// timestampFormats contains the timestamp formats the database may hold.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseTimestamp parses s with each known format, returning zero time if none match.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
