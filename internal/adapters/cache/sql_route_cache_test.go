package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"sea-route-service/internal/domain"
	"sea-route-service/internal/platform/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectForDriver(t *testing.T) {
	d, err := DialectForDriver("pgx")
	require.NoError(t, err)
	assert.Equal(t, DialectPostgres, d)

	d, err = DialectForDriver("MySQL")
	require.NoError(t, err)
	assert.Equal(t, DialectMySQL, d)

	_, err = DialectForDriver("sqlite")
	assert.Error(t, err)
}

func TestSQLRouteCache_NilDB(t *testing.T) {
	c := NewSQLRouteCache(nil, DialectPostgres, time.Hour)

	_, _, err := c.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.Error(t, c.Put(context.Background(), "k", nil))
}

// Runs against a real database when TEST_DATABASE_URL is set.
func TestSQLRouteCache_Integration(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	driver := os.Getenv("TEST_DB_DRIVER")
	if driver == "" {
		driver = "pgx"
	}

	ctx := context.Background()
	conn, err := db.Open(driver, url)
	require.NoError(t, err)
	defer conn.Close()

	dialect, err := DialectForDriver(driver)
	require.NoError(t, err)
	require.NoError(t, InitSchema(ctx, conn, dialect))

	c := NewSQLRouteCache(conn, dialect, time.Hour)
	key := "test:" + t.Name()
	route := []domain.Coordinates{{Lon: 1, Lat: 2}, {Lon: 3, Lat: 4}}

	require.NoError(t, c.Put(ctx, key, route))
	require.NoError(t, c.Put(ctx, key, route))

	got, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, route, got)

	// Rows past the TTL are misses.
	c.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, ok, err = c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := PurgeExpired(ctx, conn, dialect, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, int64(1))
}
