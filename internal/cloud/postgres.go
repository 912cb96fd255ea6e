package cloud

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/havenlab/haven/internal/record"
	"github.com/havenlab/haven/internal/weights"
)

// PostgresClient stores one snapshot row per user in home_decision_lab_data.
type PostgresClient struct {
	pool *pgxpool.Pool
}

// NewPostgresClient connects to the remote store and verifies the connection.
func NewPostgresClient(ctx context.Context, databaseURL string) (*PostgresClient, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to sync store: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping sync store: %w", err)
	}
	c := &PostgresClient{pool: pool}
	if err := c.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return c, nil
}

func (c *PostgresClient) ensureSchema(ctx context.Context) error {
	_, err := c.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS home_decision_lab_data (
			user_id TEXT PRIMARY KEY,
			properties JSONB,
			raw_weights JSONB,
			updated_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (c *PostgresClient) Close() error {
	c.pool.Close()
	return nil
}

func (c *PostgresClient) Fetch(ctx context.Context, userID string) (*RemoteSnapshot, error) {
	var propertiesJSON, weightsJSON []byte
	var updatedAt time.Time
	err := c.pool.QueryRow(ctx, `
		SELECT properties, raw_weights, updated_at
		FROM home_decision_lab_data WHERE user_id = $1`, userID,
	).Scan(&propertiesJSON, &weightsJSON, &updatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}

	remote := &RemoteSnapshot{UpdatedAt: updatedAt}
	if propertiesJSON != nil {
		props, err := record.DecodeProperties(propertiesJSON)
		if err != nil {
			return nil, fmt.Errorf("decode remote properties: %w", err)
		}
		remote.Snapshot.Properties = props
	}
	if weightsJSON != nil {
		stored, err := record.DecodeRawWeights(weightsJSON)
		if err != nil {
			return nil, fmt.Errorf("decode remote weights: %w", err)
		}
		remote.Snapshot.RawWeights = weights.Hydrate(stored)
	}
	remote.Snapshot.UpdatedAt = updatedAt
	return remote, nil
}

// Upsert writes the full snapshot for the user, replacing any previous row.
// Ordering at the store is last-write-wins on user_id.
func (c *PostgresClient) Upsert(ctx context.Context, userID string, snap record.Snapshot) error {
	propertiesJSON, err := json.Marshal(snap.Properties)
	if err != nil {
		return fmt.Errorf("encode properties: %w", err)
	}
	weightsJSON, err := json.Marshal(snap.RawWeights)
	if err != nil {
		return fmt.Errorf("encode weights: %w", err)
	}

	_, err = c.pool.Exec(ctx, `
		INSERT INTO home_decision_lab_data (user_id, properties, raw_weights, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			properties = EXCLUDED.properties,
			raw_weights = EXCLUDED.raw_weights,
			updated_at = EXCLUDED.updated_at`,
		userID, propertiesJSON, weightsJSON, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}
