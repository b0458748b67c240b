package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLStore is a KeyValueStore backed by database/sql with dialect support
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

// OpenSQL opens a connection for the given dialect and ensures the key-value
// table exists.
func OpenSQL(dialect Dialect, config DialectConfig) (*SQLStore, error) {
	db, err := sql.Open(dialect.DriverName(), dialect.DSN(config))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Apply dialect-specific configuration
	if err := dialect.ConfigureConnection(db); err != nil {
		return nil, fmt.Errorf("failed to configure connection: %w", err)
	}

	if _, err := db.Exec(dialect.CreateTableQuery()); err != nil {
		return nil, fmt.Errorf("failed to create key-value table: %w", err)
	}

	return &SQLStore{db: db, dialect: dialect}, nil
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := s.dialect.RewriteQuery(`SELECT entry_value FROM kv_entries WHERE entry_key = ?`)

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	query := s.dialect.RewriteQuery(s.dialect.UpsertQuery())
	_, err := s.db.ExecContext(ctx, query, key, string(value))
	return err
}

func (s *SQLStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	query := s.dialect.RewriteQuery(
		fmt.Sprintf(`DELETE FROM kv_entries WHERE entry_key IN (%s)`, placeholders))

	args := make([]any, len(keys))
	for i, key := range keys {
		args[i] = key
	}
	_, err := s.db.ExecContext(ctx, query, args...)
	return err
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	return s.db.Close()
}
