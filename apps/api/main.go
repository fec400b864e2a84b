package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Kings001-stack/SMS/apps/api/echo"
	"github.com/Kings001-stack/SMS/core"
	"github.com/Kings001-stack/SMS/core/session"
	logsvc "github.com/Kings001-stack/SMS/services/logger"
	"github.com/Kings001-stack/SMS/services/schoolapi"
	"github.com/Kings001-stack/SMS/storage/session/inmem"
	"github.com/Kings001-stack/SMS/storage/session/redisstore"
	"github.com/Kings001-stack/SMS/storage/session/sqlxstore"
)

func main() {
	conf := core.NewConfig()

	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var appLogger core.Logger
	if conf.Debug || conf.TestMode {
		appLogger = logsvc.NewConsoleLogger(std)
	} else {
		appLogger = logsvc.NewRollbarLogger(std, conf)
	}

	// set up the session store
	var store session.Store
	switch conf.Session.Store {
	case "redis":
		rstore, err := redisstore.Open(context.Background(), conf)
		errAndDie(appLogger, err)
		defer rstore.Close()
		store = rstore
	case "postgres":
		db, err := sqlxstore.Open(conf)
		errAndDie(appLogger, err)
		defer db.Close()
		errAndDie(appLogger, sqlxstore.Ping(db))
		store = sqlxstore.New(db, conf.Session.TTL)
	default:
		store = inmemstore.New()
	}

	// set up services
	api := schoolapi.NewClient(conf, appLogger)
	sessSvc := session.NewService(store, api, conf.SchoolAPI.LogoutTimeout, appLogger)
	validate, translator := core.NewValidator()

	app := echoapi.NewServer(
		&echoapi.Options{
			Addr:       conf.ServerAddress(),
			Conf:       conf,
			Logger:     appLogger,
			SessionSvc: sessSvc,
			API:        api,
			Validate:   validate,
			Translator: translator,
		},
	)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			appLogger.Error("shutting down server", err)
		}
	}()

	appLogger.Info("starting API server", "addr", conf.ServerAddress(), "store", conf.Session.Store)
	app.Start()
}

func errAndDie(logger core.Logger, err error) {
	if err != nil {
		logger.Fatal(err.Error())
	}
}
