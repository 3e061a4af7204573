package main

import (
	"github.com/pkg/errors"

	"github.com/trezcool/phoebuz/storage/database"
)

var (
	gooseRunFunc       = database.RunMigrations    // mockable
	createIfNotExistFn = database.CreateIfNotExist // mockable
)

func (cli *commandLine) migrate(args []string) error {
	db, err := cli.openDB(cli.conf)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return gooseRunFunc(args[0], db.DB, args[1:]...)
}

// createDB creates the app role and database when missing, then brings the schema up to date.
func (cli *commandLine) createDB() error {
	if err := createIfNotExistFn(cli.conf); err != nil {
		return errors.Wrap(err, "creating database")
	}
	return cli.migrate([]string{"up"})
}
