package main

import (
	"log"
	"os"

	"github.com/Kings001-stack/SMS/core"
	"github.com/Kings001-stack/SMS/storage/session/sqlxstore"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up DB
	db, err := sqlxstore.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(sqlxstore.Ping(db))

	// start CLI
	cli := commandLine{
		db:    db,
		store: sqlxstore.New(db, conf.Session.TTL),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
