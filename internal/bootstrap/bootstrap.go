// Package bootstrap builds the adapters the binaries share from a Config.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"hotel_allocation/internal/adapters/cms"
	"hotel_allocation/internal/domain"
	"hotel_allocation/internal/shared"
	"hotel_allocation/internal/storage/file"
	mysqlrepo "hotel_allocation/internal/storage/mysql"
)

// OpenMySQL opens and pings the database.
func OpenMySQL(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetConnMaxLifetime(5 * time.Minute)

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.Ping: %w", err)
	}
	log.Info().Msg("database connection ok")
	return db, nil
}

// ConstraintRepository selects the configuration source named by
// CONSTRAINT_SOURCE. The returned close func is never nil.
func ConstraintRepository(ctx context.Context, cfg shared.Config) (domain.ConstraintRepository, func() error, error) {
	noop := func() error { return nil }
	switch cfg.ConstraintSource {
	case shared.SourceMySQL:
		db, err := OpenMySQL(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, noop, err
		}
		return mysqlrepo.New(db), db.Close, nil
	case shared.SourceCMS:
		c, err := cms.New(cfg.CMSBase, cfg.CMSKey, cfg.CMSRPS)
		if err != nil {
			return nil, noop, err
		}
		return c, noop, nil
	case shared.SourceFile:
		return file.New(cfg.ConstraintsFile), noop, nil
	}
	return nil, noop, fmt.Errorf("unknown constraint source %q", cfg.ConstraintSource)
}
