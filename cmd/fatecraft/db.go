package main

import (
	"context"
	"fmt"

	"fatecraft/internal/config"
	"fatecraft/internal/store"
	"fatecraft/internal/store/postgres"
	"fatecraft/internal/store/sqlite"
)

func openStore(ctx context.Context, cfg *config.ProjectConfig) (store.Store, error) {
	if cfg == nil || cfg.Database.Driver == "" {
		return nil, fmt.Errorf("no database configured; set database.driver in %s", configFile)
	}

	var (
		db  store.Store
		err error
	)
	switch cfg.Database.Driver {
	case "sqlite":
		db, err = sqlite.New(ctx, cfg.Database.DSN)
	case "postgres":
		db, err = postgres.New(ctx, cfg.Database.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := db.EnsureSchema(ctx); err != nil {
		db.Close(ctx)
		return nil, err
	}
	return db, nil
}
