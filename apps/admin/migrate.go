package main

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/sciencewithkalana/portal/database"
)

var migrateRunFunc = database.Run // mockable

var errPostgresOnly = errors.New("migrate requires the postgres storage backend")

func newMigrateFunc(db *sqlx.DB) func(args []string) error {
	return func(args []string) error {
		if db == nil {
			return errPostgresOnly
		}
		arguments := make([]string, 0)
		if len(args) > 1 {
			arguments = append(arguments, args[1:]...)
		}
		return migrateRunFunc(db, args[0], arguments...)
	}
}
