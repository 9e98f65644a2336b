package daynight

import (
	"database/sql"
	"embed"
)

// Database is a SQL backend that can bring its schema up to date.
type Database interface {
	DB() *sql.DB
	Close() error
	Migrate(embed.FS) error
}
