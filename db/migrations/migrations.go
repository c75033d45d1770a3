package migrations

import (
	"embed"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed *.sql
var files embed.FS

// Version is the schema version the service expects. Bump it together with
// every new pair of migration files.
const Version uint = 1

// Source opens the embedded SQL files as a golang-migrate source driver.
func Source() (source.Driver, error) {
	return iofs.New(files, ".")
}
