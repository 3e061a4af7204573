package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/trezcool/phoebuz/core"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf   *core.Config
	openDB func(conf *core.Config) (*sqlx.DB, error)
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS...] - run a goose command (up, down, status...) over the app migrations")
	fmt.Println("  createdb - create the app role and database, then migrate it")
	fmt.Println("  token -user ID [-email EMAIL] - issue an API token for a student")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	tokenCmd := flag.NewFlagSet("token", flag.ContinueOnError)
	tokenUser := tokenCmd.String("user", "", "The student's identifier.")
	tokenEmail := tokenCmd.String("email", "", "The student's email address, where reminders are sent.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "createdb":
		if cli.conf.Database.AdminPassword == "" {
			fmt.Printf("Enter password of %s:", cli.conf.Database.AdminUser)
			pwd, err := readPasswordFunc(int(syscall.Stdin))
			fmt.Println()
			if err != nil {
				return err
			}
			cli.conf.Database.AdminPassword = string(pwd)
		}
		return cli.createDB()
	case "token":
		if err := tokenCmd.Parse(args[2:]); err != nil {
			return err
		}
		if core.CleanString(*tokenUser) == "" {
			tokenCmd.Usage()
			return errHelp
		}
		token, err := cli.token(*tokenUser, *tokenEmail)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	default:
		cli.printUsage()
		return errHelp
	}
}
