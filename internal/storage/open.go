// Package storage picks the table sink named by DB_DRIVER.
package storage

import (
	"context"

	"vienna_etl/internal/domain"
	"vienna_etl/internal/shared"
	"vienna_etl/internal/storage/mongostore"
	"vienna_etl/internal/storage/sqlstore"
)

// Open connects to the configured database. On failure the returned store is
// nil (never a typed nil).
func Open(ctx context.Context, cfg shared.DBConfig) (domain.Store, error) {
	if cfg.Driver == "mongo" {
		r, err := mongostore.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	r, err := sqlstore.Engine(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Opener binds cfg for repeated use by the loader.
func Opener(cfg shared.DBConfig) func(context.Context) (domain.Store, error) {
	return func(ctx context.Context) (domain.Store, error) { return Open(ctx, cfg) }
}
