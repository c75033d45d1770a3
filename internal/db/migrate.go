package db

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"

	"dealflow/db/migrations"
)

// Migrate brings the schema at addr to migrations.Version. A database left
// dirty by a failed run is reported and left untouched, as is a database
// already ahead of the binary.
func Migrate(addr string, logger *slog.Logger) error {
	src, err := migrations.Source()
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	defer src.Close()

	mg, err := migrate.NewWithSourceInstance("iofs", src, addr)
	if err != nil {
		return err
	}
	defer mg.Close()

	from, dirty, err := mg.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		from = 0
	case err != nil:
		return err
	case dirty:
		return fmt.Errorf("database is in dirty state at version %d", from)
	case from > migrations.Version:
		return fmt.Errorf("database schema %d is newer than supported %d", from, migrations.Version)
	}

	if err = mg.Migrate(migrations.Version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	logger.Info("schema up to date",
		slog.Uint64("from", uint64(from)),
		slog.Uint64("to", uint64(migrations.Version)))
	return nil
}
