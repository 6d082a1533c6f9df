package cart

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/domain"
)

// SQLiteStore keeps cart snapshots in an embedded database, one row
// per buyer with the serialized line array as payload. This is the
// durable local storage boundary: it must tolerate the row being
// absent, emptied externally, or containing invalid JSON.
type SQLiteStore struct {
	db  *sql.DB
	log *zap.Logger
}

func NewSQLiteStore(dbPath string, log *zap.Logger) (*SQLiteStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &SQLiteStore{db: db, log: log}, nil
}

func (s *SQLiteStore) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, buyerID string) ([]domain.CartLine, error) {
	var payload string
	row := s.db.QueryRowContext(ctx,
		`SELECT payload FROM cart_snapshots WHERE buyer_id = $1`, buyerID)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to load cart snapshot: %w", err)
	}

	var lines []domain.CartLine
	if err := json.Unmarshal([]byte(payload), &lines); err != nil {
		// Corrupt snapshots degrade to an empty cart, telemetry only.
		s.log.Warn("discarding corrupt cart snapshot",
			zap.String("buyer_id", buyerID), zap.Error(err))
		return nil, ErrSnapshotNotFound
	}
	return lines, nil
}

func (s *SQLiteStore) Save(ctx context.Context, buyerID string, lines []domain.CartLine) error {
	payload, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart lines failed: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO cart_snapshots (buyer_id, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT(buyer_id) DO UPDATE SET payload = $2, updated_at = $3`,
		buyerID, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save cart snapshot: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, buyerID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM cart_snapshots WHERE buyer_id = $1`, buyerID)
	if err != nil {
		return fmt.Errorf("failed to delete cart snapshot: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
