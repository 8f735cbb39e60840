package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sea-route-service/internal/domain"
	"sea-route-service/internal/platform/obs"
	"strings"
	"time"
)

// Dialect selects the SQL flavour of the persistent tier.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
)

// DialectForDriver maps a database/sql driver name onto a Dialect.
func DialectForDriver(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "pgx", "postgres":
		return DialectPostgres, nil
	case "mysql":
		return DialectMySQL, nil
	}
	return "", fmt.Errorf("unsupported sql driver %q", driver)
}

// SQLRouteCache is the persistent tier backed by reference_route_cache.
// Rows older than ttl are treated as misses; a zero ttl keeps rows forever.
type SQLRouteCache struct {
	DB      *sql.DB
	dialect Dialect
	ttl     time.Duration
	now     func() time.Time
}

func NewSQLRouteCache(db *sql.DB, dialect Dialect, ttl time.Duration) *SQLRouteCache {
	return &SQLRouteCache{DB: db, dialect: dialect, ttl: ttl, now: time.Now}
}

func (s *SQLRouteCache) Get(ctx context.Context, key string) (_ []domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.sql.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("route cache: db is nil")
	}
	if key == "" {
		return nil, false, errors.New("get route cache: key must not be empty")
	}

	q := `SELECT payload, created_at FROM reference_route_cache WHERE route_key = $1;`
	if s.dialect == DialectMySQL {
		q = `SELECT payload, created_at FROM reference_route_cache WHERE route_key = ?;`
	}

	var (
		payload   []byte
		createdAt time.Time
	)
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&payload, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get route cache: query reference_route_cache: %w", err)
	}

	if s.ttl > 0 && s.now().Sub(createdAt) > s.ttl {
		return nil, false, nil
	}

	route, err := decodeRoute(payload)
	if err != nil {
		return nil, false, fmt.Errorf("get route cache key=%q: %w", key, err)
	}
	return route, true, nil
}

func (s *SQLRouteCache) Put(ctx context.Context, key string, route []domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}
	if key == "" {
		return errors.New("insert route cache: key must not be empty")
	}

	payload, err := encodeRoute(route)
	if err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	q := `
	INSERT INTO reference_route_cache (route_key, payload, point_count, created_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (route_key) DO UPDATE
	SET payload = EXCLUDED.payload,
		point_count = EXCLUDED.point_count,
		created_at = EXCLUDED.created_at;
	`
	if s.dialect == DialectMySQL {
		q = `
		INSERT INTO reference_route_cache (route_key, payload, point_count, created_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			payload = VALUES(payload),
			point_count = VALUES(point_count),
			created_at = VALUES(created_at);
		`
	}

	if _, err := s.DB.ExecContext(ctx, q, key, payload, len(route), s.now().UTC()); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}
	return nil
}
