package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var errHelp = errors.New("help provided")

type sessionPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

type commandLine struct {
	db    *sqlx.DB
	store sessionPurger
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - manage DB migrations. COMMAND: up|up-by-one|up-to|down|down-to|redo|reset|status|version|create|fix")
	fmt.Println("  purgesessions - delete expired sessions")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "purgesessions":
		return cli.purgeSessions()
	default:
		cli.printUsage()
		return errHelp
	}
}
