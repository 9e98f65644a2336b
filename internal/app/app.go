// Package app wires a daynight.Repository from configuration for the
// command line programs.
package app

import (
	"fmt"

	txStdLib "github.com/Thiht/transactor/stdlib"

	"github.com/teteukt/daynight"
	"github.com/teteukt/daynight/memory"
	"github.com/teteukt/daynight/sqlite"
)

// OpenRepository builds the repository for cfg. The returned close func
// releases the backend and must be called once the repository is done.
func OpenRepository(cfg daynight.Config, logger daynight.Logger) (daynight.Repository, func() error, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	var store daynight.TimeScheduleRepo
	closeFn := func() error { return nil }
	switch cfg.Backend {
	case daynight.BackendMemory:
		store = memory.NewStore()
	case daynight.BackendSQLite:
		conn, err := sqlite.Open()
		if err != nil {
			return nil, nil, err
		}
		var db daynight.Database = conn
		if err := db.Migrate(sqlite.Migrations); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed migration: %w", err)
		}
		tx, dbGetter := txStdLib.NewTransactor(db.DB(), txStdLib.NestedTransactionsSavepoints)
		store = sqlite.NewTimeScheduleRepo(tx, dbGetter, logger)
		closeFn = db.Close
	}
	logger.Debug("opened store", "backend", cfg.Backend)

	return daynight.NewRepository(store, logger, daynight.RepositoryOptions{
		Strict: cfg.StrictCreate,
	}), closeFn, nil
}
