package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mintworks/impression/internal/models"

	_ "github.com/lib/pq"
)

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(connStr string) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStorage{db: db}

	if err := s.initTables(); err != nil {
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}

	return s, nil
}

// SaveUserStats implements Storage.
func (s *PostgresStorage) SaveUserStats(ctx context.Context, stats *models.UserStats) error {
	query := `
        INSERT INTO user_stats (
            address, handle, total, social_age, social_identity_bonus,
            activity_points, asset_points, tier, updated_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9
        )
        ON CONFLICT (address) DO UPDATE SET
            handle = EXCLUDED.handle,
            total = EXCLUDED.total,
            social_age = EXCLUDED.social_age,
            social_identity_bonus = EXCLUDED.social_identity_bonus,
            activity_points = EXCLUDED.activity_points,
            asset_points = EXCLUDED.asset_points,
            tier = EXCLUDED.tier,
            updated_at = EXCLUDED.updated_at
    `

	_, err := s.db.ExecContext(ctx, query,
		stats.Address,
		stats.Handle,
		stats.Total,
		stats.Breakdown.SocialAge,
		stats.Breakdown.SocialIdentityBonus,
		stats.Breakdown.ActivityPoints,
		stats.Breakdown.AssetPoints,
		string(stats.Tier),
		stats.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save user stats: %w", err)
	}

	return nil
}

// GetUserStats implements Storage.
func (s *PostgresStorage) GetUserStats(ctx context.Context, address string) (*models.UserStats, error) {
	query := `
        SELECT address, handle, total, social_age, social_identity_bonus,
               activity_points, asset_points, tier, updated_at
        FROM user_stats
        WHERE address = $1
    `

	var stats models.UserStats
	var tier string

	err := s.db.QueryRowContext(ctx, query, address).Scan(
		&stats.Address,
		&stats.Handle,
		&stats.Total,
		&stats.Breakdown.SocialAge,
		&stats.Breakdown.SocialIdentityBonus,
		&stats.Breakdown.ActivityPoints,
		&stats.Breakdown.AssetPoints,
		&tier,
		&stats.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no stats found for address: %s", address)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user stats: %w", err)
	}

	stats.Tier = models.Tier(tier)
	return &stats, nil
}

// SaveSupplySnapshot implements Storage.
func (s *PostgresStorage) SaveSupplySnapshot(ctx context.Context, snapshot map[models.Tier]int) error {
	query := `
        INSERT INTO supply_ledger (tier, remaining_count, updated_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (tier) DO UPDATE SET
            remaining_count = EXCLUDED.remaining_count,
            updated_at = EXCLUDED.updated_at
    `

	now := time.Now()
	for tier, count := range snapshot {
		if _, err := s.db.ExecContext(ctx, query, string(tier), count, now); err != nil {
			return fmt.Errorf("failed to save supply for tier %s: %w", tier, err)
		}
	}

	return nil
}

// LoadSupplySnapshot implements Storage.
func (s *PostgresStorage) LoadSupplySnapshot(ctx context.Context) (map[models.Tier]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT tier, remaining_count FROM supply_ledger`)
	if err != nil {
		return nil, fmt.Errorf("failed to query supply ledger: %w", err)
	}
	defer rows.Close()

	snapshot := make(map[models.Tier]int)
	for rows.Next() {
		var tier string
		var count int
		if err := rows.Scan(&tier, &count); err != nil {
			return nil, fmt.Errorf("failed to scan supply row: %w", err)
		}
		snapshot[models.Tier(tier)] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating supply rows: %w", err)
	}

	return snapshot, nil
}

func (s *PostgresStorage) initTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS user_stats (
			address VARCHAR(100) PRIMARY KEY,
			handle VARCHAR(100),
			total INT NOT NULL,
			social_age INT NOT NULL,
			social_identity_bonus INT NOT NULL,
			activity_points INT NOT NULL,
			asset_points INT NOT NULL,
			tier VARCHAR(20) NOT NULL,
			updated_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS supply_ledger (
			tier VARCHAR(20) PRIMARY KEY,
			remaining_count INT NOT NULL CHECK (remaining_count >= 0),
			updated_at TIMESTAMP DEFAULT NOW()
		)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}
