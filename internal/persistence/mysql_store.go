package persistence

import (
	"context"
	"database/sql"
	"fmt"
)

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	kind       VARCHAR(32)  NOT NULL PRIMARY KEY,
	payload    LONGTEXT     NOT NULL,
	updated_at DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// MySQLStore keeps one row per record list in the snapshots table.
type MySQLStore struct {
	DB *sql.DB
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{DB: db}
}

// EnsureSchema creates the snapshots table if it does not exist yet.
func (s *MySQLStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, snapshotSchema); err != nil {
		return fmt.Errorf("create snapshots table: %w", err)
	}
	return nil
}

func (s *MySQLStore) Save(ctx context.Context, snap *Snapshot) error {
	parts, err := snap.Encode()
	if err != nil {
		return err
	}
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	const q = `INSERT INTO snapshots (kind, payload) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE payload = VALUES(payload)`
	for _, kind := range Kinds {
		if _, err := tx.ExecContext(ctx, q, kind, string(parts[kind])); err != nil {
			return fmt.Errorf("save %s: %w", kind, err)
		}
	}
	return tx.Commit()
}

func (s *MySQLStore) Load(ctx context.Context) (*Snapshot, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT kind, payload FROM snapshots`)
	if err != nil {
		return nil, fmt.Errorf("load snapshots: %w", err)
	}
	defer rows.Close()

	parts := make(map[string][]byte, len(Kinds))
	for rows.Next() {
		var kind, payload string
		if err := rows.Scan(&kind, &payload); err != nil {
			return nil, err
		}
		parts[kind] = []byte(payload)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return nil, ErrNoSnapshot
	}
	return Decode(parts)
}
