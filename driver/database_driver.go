package driver

import (
	"context"
	"fmt"
	"os"

	"site-search/logger"
	"site-search/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBPool is the subset of pgxpool.Pool the driver uses, declared as an
// interface so tests can substitute a mock pool.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// collectionTables maps a logical collection to its table and the column
// used as the result excerpt.
var collectionTables = map[port.Collection]struct {
	table   string
	excerpt string
}{
	port.CollectionPages:      {table: "pages", excerpt: "excerpt"},
	port.CollectionArticles:   {table: "posts", excerpt: "excerpt"},
	port.CollectionProducts:   {table: "products", excerpt: "short_description"},
	port.CollectionGoods:      {table: "goods", excerpt: "description"},
	port.CollectionPositions:  {table: "positions", excerpt: "summary"},
	port.CollectionCategories: {table: "categories", excerpt: "description"},
}

type DatabaseDriver struct {
	pool DBPool
}

func NewDatabaseDriver(pool DBPool) *DatabaseDriver {
	return &DatabaseDriver{
		pool: pool,
	}
}

// NewDatabaseDriverFromConfig creates a new DatabaseDriver with database connection
// constructed from environment variables
func NewDatabaseDriverFromConfig(ctx context.Context) (*DatabaseDriver, error) {
	pool, err := initDatabasePool(ctx)
	if err != nil {
		return nil, err
	}

	return &DatabaseDriver{
		pool: pool,
	}, nil
}

// initDatabasePool initializes the database connection pool
func initDatabasePool(ctx context.Context) (*pgxpool.Pool, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		// Construct DATABASE_URL from individual environment variables
		dbHost := os.Getenv("DB_HOST")
		dbPort := os.Getenv("DB_PORT")
		dbName := os.Getenv("DB_NAME")
		dbUser := os.Getenv("SITE_SEARCH_DB_USER")
		dbPassword := os.Getenv("SITE_SEARCH_DB_PASSWORD")

		if dbHost == "" || dbPort == "" || dbName == "" || dbUser == "" || dbPassword == "" {
			return nil, &DriverError{
				Op:  "initDatabasePool",
				Err: "database connection parameters are not set. Required: DB_HOST, DB_PORT, DB_NAME, SITE_SEARCH_DB_USER, SITE_SEARCH_DB_PASSWORD",
			}
		}

		dbURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPassword, dbHost, dbPort, dbName)
	}

	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, &DriverError{
			Op:  "initDatabasePool",
			Err: "failed to parse database URL: " + err.Error(),
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, &DriverError{
			Op:  "initDatabasePool",
			Err: "failed to create database pool: " + err.Error(),
		}
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, &DriverError{
			Op:  "initDatabasePool",
			Err: "failed to ping database: " + err.Error(),
		}
	}

	logger.Logger.Info("Database connected successfully")
	return pool, nil
}

// FindContent returns rows from the collection's table whose title or
// slug matches any of the ILIKE patterns, restricted to one locale. The
// excerpt column rides along for result descriptions but is not matched.
func (d *DatabaseDriver) FindContent(ctx context.Context, collection port.Collection, locale string, patterns []string, limit int) ([]ContentRow, error) {
	target, ok := collectionTables[collection]
	if !ok {
		return nil, &DriverError{
			Op:  "FindContent",
			Err: "unknown collection: " + string(collection),
		}
	}
	if len(patterns) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT id, slug, title, %s
		FROM %s
		WHERE locale = $1
		  AND (title ILIKE ANY($2) OR slug ILIKE ANY($2))
		ORDER BY id
		LIMIT $3
	`, target.excerpt, target.table)

	rows, err := d.pool.Query(ctx, query, locale, patterns, limit)
	if err != nil {
		return nil, &DriverError{
			Op:  "FindContent",
			Err: "query " + target.table + " failed: " + err.Error(),
		}
	}
	defer rows.Close()

	var results []ContentRow
	for rows.Next() {
		var row ContentRow
		if err := rows.Scan(&row.ID, &row.Slug, &row.Title, &row.Excerpt); err != nil {
			return nil, &DriverError{
				Op:  "FindContent",
				Err: "scan " + target.table + " row failed: " + err.Error(),
			}
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &DriverError{
			Op:  "FindContent",
			Err: "read " + target.table + " rows failed: " + err.Error(),
		}
	}

	return results, nil
}

// Close closes the database connection pool
func (d *DatabaseDriver) Close() {
	if d.pool != nil {
		d.pool.Close()
	}
}
