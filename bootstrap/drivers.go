package bootstrap

import (
	"context"
	"fmt"

	"site-search/driver"
)

// initDatabaseDriver creates and returns the database driver.
func initDatabaseDriver(ctx context.Context) (*driver.DatabaseDriver, error) {
	dbDriver, err := driver.NewDatabaseDriverFromConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("database init: %w", err)
	}
	return dbDriver, nil
}
