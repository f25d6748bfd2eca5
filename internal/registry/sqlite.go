package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bensonrodney/homeassistant-discord/internal/webhook"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// SQLiteRegistry persists entries in a SQLite database.
type SQLiteRegistry struct {
	db     *sql.DB
	logger zerolog.Logger
	now    func() time.Time
}

// NewSQLiteRegistry opens (or creates) the database at dataSourceName and ensures the schema.
func NewSQLiteRegistry(dataSourceName string, logger zerolog.Logger) (*SQLiteRegistry, error) {
	logger = logger.With().Str("module", "SQLiteRegistry").Logger()
	logger.Info().Str("db_path", dataSourceName).Msg("Opening webhook registry database")

	dbDir := filepath.Dir(dataSourceName)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error().Err(err).Str("directory", dbDir).Msg("Failed to create registry database directory")
		return nil, fmt.Errorf("failed to create registry database directory %s: %w", dbDir, err)
	}

	dbInstance, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		logger.Error().Err(err).Str("db_path", dataSourceName).Msg("Failed to open registry database")
		return nil, fmt.Errorf("sql.Open failed for %s: %w", dataSourceName, err)
	}
	// SQLite allows a single writer; one connection avoids SQLITE_BUSY between goroutines.
	dbInstance.SetMaxOpenConns(1)

	r := &SQLiteRegistry{
		db:     dbInstance,
		logger: logger,
		now:    time.Now,
	}

	if err := r.initSchema(); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info().Str("db_path", dataSourceName).Msg("Webhook registry database ready")
	return r, nil
}

func (r *SQLiteRegistry) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS webhook_entries (
		id TEXT PRIMARY KEY,
		webhook_url TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL,
		username TEXT,
		avatar_url TEXT,
		tts_default INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	);
	`
	if _, err := r.db.Exec(query); err != nil {
		r.logger.Error().Err(err).Msg("Failed to create webhook_entries table")
		return err
	}
	return nil
}

func (r *SQLiteRegistry) Register(ctx context.Context, cfg webhook.WebhookConfig) (Entry, error) {
	entry := Entry{ID: newEntryID(), Config: cfg, CreatedAt: r.now().UTC()}

	query := `INSERT INTO webhook_entries (id, webhook_url, display_name, username, avatar_url, tts_default, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		cfg.WebhookURL,
		cfg.DisplayName,
		nullString(cfg.Username),
		nullString(cfg.AvatarURL),
		cfg.TTSDefault,
		entry.CreatedAt.UnixNano(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return Entry{}, ErrAlreadyRegistered
		}
		r.logger.Error().Err(err).Str("webhook_name", cfg.DisplayName).Msg("Failed to insert webhook entry")
		return Entry{}, fmt.Errorf("failed to insert webhook entry: %w", err)
	}

	r.logger.Debug().Str("entry_id", entry.ID).Str("webhook_name", cfg.DisplayName).Msg("Registered webhook entry")
	return entry, nil
}

func (r *SQLiteRegistry) Deregister(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM webhook_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete webhook entry %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

const selectColumns = `SELECT id, webhook_url, display_name, username, avatar_url, tts_default, created_at FROM webhook_entries`

func (r *SQLiteRegistry) List(ctx context.Context) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list webhook entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate webhook entries: %w", err)
	}
	return entries, nil
}

func (r *SQLiteRegistry) Get(ctx context.Context, id string) (Entry, error) {
	return r.queryOne(ctx, selectColumns+` WHERE id = ?`, id)
}

func (r *SQLiteRegistry) FindByURL(ctx context.Context, webhookURL string) (Entry, error) {
	return r.queryOne(ctx, selectColumns+` WHERE webhook_url = ?`, webhookURL)
}

// Close closes the database connection.
func (r *SQLiteRegistry) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRegistry) queryOne(ctx context.Context, query string, arg any) (Entry, error) {
	entry, err := scanEntry(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	return entry, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var (
		entry     Entry
		username  sql.NullString
		avatarURL sql.NullString
		createdAt int64
	)
	err := row.Scan(
		&entry.ID,
		&entry.Config.WebhookURL,
		&entry.Config.DisplayName,
		&username,
		&avatarURL,
		&entry.Config.TTSDefault,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("failed to scan webhook entry: %w", err)
	}
	if username.Valid {
		entry.Config.Username = &username.String
	}
	if avatarURL.Valid {
		entry.Config.AvatarURL = &avatarURL.String
	}
	entry.CreatedAt = time.Unix(0, createdAt).UTC()
	return entry, nil
}

func nullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
