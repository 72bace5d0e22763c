package database

import (
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/trezcool/goose"

	"github.com/sciencewithkalana/portal/core"
)

var gooseRunFunc = goose.RunFS // mockable

func Open(conf *core.Config) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", conf.Storage.DatabaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err = ping(db); err != nil {
		return nil, err
	}
	return db, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sqlx.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

// Run executes an arbitrary goose command against the embedded migrations.
func Run(db *sqlx.DB, command string, args ...string) error {
	if err := gooseRunFunc(command, db.DB, migrationsFS, "migrations", args...); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}

func Migrate(db *sqlx.DB) error {
	return Run(db, "up")
}
