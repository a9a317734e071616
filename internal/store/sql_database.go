package store

import (
	"database/sql"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/migrations"
)

// DB is the PostgreSQL connection pool shared by all repositories.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate() error {
	db.logger.Info().Str("func", "DB.Migrate").Msg("applying database migrations")
	return migrations.Migrate(db.DB)
}
