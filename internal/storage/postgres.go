package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"rug-quote/internal/calculator"
	"rug-quote/pkg/redis"
)

var ErrQuoteNotFound = errors.New("quote not found")

const (
	StatusQuoted     = "quoted"
	StatusInCart     = "in_cart"
	StatusCartFailed = "cart_failed"
	StatusOrdered    = "ordered"
	StatusCancelled  = "cancelled"

	materialsCacheKey = "materials"
	materialsCacheTTL = time.Hour
)

func ValidStatus(s string) bool {
	switch s {
	case StatusQuoted, StatusInCart, StatusCartFailed, StatusOrdered, StatusCancelled:
		return true
	}
	return false
}

type Config struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

func (c Config) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, sslMode,
	)
}

// Cache is the subset of the redis client used for read-through caching.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

var _ Cache = (*redis.Client)(nil)

type PostgresStorage struct {
	db     *sqlx.DB
	cache  Cache
	logger *zap.Logger
}

type QuoteRecord struct {
	ID          int64         `db:"id"`
	Reference   string        `db:"reference"`
	UserID      int64         `db:"user_id"`
	Shape       string        `db:"shape"`
	WidthFt     float64       `db:"width_ft"`
	LengthFt    float64       `db:"length_ft"`
	Material    string        `db:"material"`
	Protection  bool          `db:"protection"`
	PadType     string        `db:"pad_type"`
	AreaSqFt    float64       `db:"area_sqft"`
	RawPrice    float64       `db:"raw_price"`
	FinalPrice  float64       `db:"final_price"`
	DisplaySize string        `db:"display_size"`
	Status      string        `db:"status"`
	CartLineID  sql.NullInt64 `db:"cart_line_id"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
}

// NewQuoteRecord snapshots a priced selection for the quote log.
func NewQuoteRecord(userID int64, sel calculator.Selection, q calculator.Quote, now time.Time) QuoteRecord {
	padType := ""
	if sel.IncludePad {
		padType = sel.PadType
	}
	return QuoteRecord{
		Reference:   uuid.NewString(),
		UserID:      userID,
		Shape:       string(sel.Shape),
		WidthFt:     sel.Width(),
		LengthFt:    sel.Length(),
		Material:    sel.Material,
		Protection:  sel.IncludeProtection,
		PadType:     padType,
		AreaSqFt:    q.Area,
		RawPrice:    q.RawPrice,
		FinalPrice:  q.FinalPrice,
		DisplaySize: sel.DisplaySize(),
		Status:      StatusQuoted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func NewPostgresStorage(ctx context.Context, cfg Config, cache Cache, logger *zap.Logger) (*PostgresStorage, error) {
	const operation = "storage.NewPostgresStorage"

	var db *sqlx.DB
	var err error

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = 2 * time.Minute
	retryPolicy.MaxInterval = 15 * time.Second

	logger.Info("Connecting to PostgreSQL...")

	err = backoff.RetryNotify(
		func() error {
			db, err = sqlx.ConnectContext(ctx, "postgres", cfg.DSN())
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}

			if err = db.PingContext(ctx); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
			return nil
		},
		backoff.WithContext(retryPolicy, ctx),
		func(err error, duration time.Duration) {
			logger.Warn("PostgreSQL connection failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", duration))
		},
	)

	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect after retries: %w", operation, err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	logger.Info("Successfully connected to PostgreSQL")
	return &PostgresStorage{
		db:     db,
		cache:  cache,
		logger: logger,
	}, nil
}

// DB exposes the underlying handle for migrations.
func (s *PostgresStorage) DB() *sql.DB {
	return s.db.DB
}

// GetMaterialMultipliers returns active materials, cached in redis.
func (s *PostgresStorage) GetMaterialMultipliers(ctx context.Context) (map[string]float64, error) {
	const operation = "storage.GetMaterialMultipliers"

	// Try Redis first
	if cached, err := s.cache.Get(ctx, materialsCacheKey); err == nil {
		var materials map[string]float64
		if err := json.Unmarshal(cached, &materials); err == nil {
			return materials, nil
		}
	}

	// Fall back to Postgres
	var rows []struct {
		Name       string  `db:"name"`
		Multiplier float64 `db:"multiplier"`
	}
	const query = `SELECT name, multiplier FROM materials WHERE active = TRUE`
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("%s: failed to get materials: %w", operation, err)
	}

	materials := make(map[string]float64, len(rows))
	for _, r := range rows {
		materials[r.Name] = r.Multiplier
	}

	// Cache the result
	if data, err := json.Marshal(materials); err == nil {
		if err := s.cache.Set(ctx, materialsCacheKey, data, materialsCacheTTL); err != nil {
			s.logger.Warn("Failed to cache materials", zap.Error(err))
		}
	}

	return materials, nil
}

func (s *PostgresStorage) UpsertMaterial(ctx context.Context, name string, multiplier float64) error {
	const operation = "storage.UpsertMaterial"

	if !calculator.ValidFactor(multiplier) {
		return fmt.Errorf("%s: multiplier must be a positive number, got %v", operation, multiplier)
	}

	const query = `
        INSERT INTO materials (name, multiplier, active, updated_at)
        VALUES ($1, $2, TRUE, NOW())
        ON CONFLICT (name) DO UPDATE
        SET multiplier = EXCLUDED.multiplier, active = TRUE, updated_at = NOW()
    `
	if _, err := s.db.ExecContext(ctx, query, name, multiplier); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}

	// Invalidate materials cache
	if err := s.cache.Del(ctx, materialsCacheKey); err != nil {
		s.logger.Warn("Failed to invalidate materials cache", zap.Error(err))
	}
	return nil
}

func (s *PostgresStorage) SaveQuote(ctx context.Context, q QuoteRecord) (int64, error) {
	const operation = "storage.SaveQuote"

	const query = `
        INSERT INTO quotes (
            reference, user_id, shape, width_ft, length_ft, material,
            protection, pad_type, area_sqft, raw_price, final_price,
            display_size, status, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
        RETURNING id
    `

	var id int64
	err := s.db.QueryRowContext(ctx, query,
		q.Reference,
		q.UserID,
		q.Shape,
		q.WidthFt,
		q.LengthFt,
		q.Material,
		q.Protection,
		q.PadType,
		q.AreaSqFt,
		q.RawPrice,
		q.FinalPrice,
		q.DisplaySize,
		q.Status,
		q.CreatedAt,
		q.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to save quote: %w", operation, err)
	}

	return id, nil
}

func (s *PostgresStorage) GetQuoteByReference(ctx context.Context, reference string) (*QuoteRecord, error) {
	const operation = "storage.GetQuoteByReference"

	const query = `SELECT * FROM quotes WHERE reference = $1`
	var q QuoteRecord
	if err := s.db.GetContext(ctx, &q, query, reference); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", operation, ErrQuoteNotFound)
		}
		return nil, fmt.Errorf("%s: failed to get quote: %w", operation, err)
	}
	return &q, nil
}

func (s *PostgresStorage) ListQuotes(ctx context.Context, since time.Time, limit int) ([]QuoteRecord, error) {
	const operation = "storage.ListQuotes"

	const query = `
        SELECT * FROM quotes
        WHERE created_at >= $1
        ORDER BY created_at DESC
        LIMIT $2
    `
	var quotes []QuoteRecord
	if err := s.db.SelectContext(ctx, &quotes, query, since, limit); err != nil {
		return nil, fmt.Errorf("%s: failed to fetch quotes: %w", operation, err)
	}
	return quotes, nil
}

func (s *PostgresStorage) UpdateQuoteStatus(ctx context.Context, reference, status string, cartLineID *int64) error {
	const operation = "storage.UpdateQuoteStatus"

	if !ValidStatus(status) {
		return fmt.Errorf("%s: invalid status %q", operation, status)
	}

	const query = `
        UPDATE quotes
        SET status = $1, cart_line_id = COALESCE($2::BIGINT, cart_line_id), updated_at = NOW()
        WHERE reference = $3
    `
	var lineID sql.NullInt64
	if cartLineID != nil {
		lineID = sql.NullInt64{Int64: *cartLineID, Valid: true}
	}

	res, err := s.db.ExecContext(ctx, query, status, lineID, reference)
	if err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", operation, ErrQuoteNotFound)
	}
	return nil
}

func (s *PostgresStorage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
