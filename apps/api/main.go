package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/trezcool/darasa/apps/api/echo"
	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/room"
	"github.com/trezcool/darasa/core/schedule"
	"github.com/trezcool/darasa/services/logger"
	"github.com/trezcool/darasa/storage/database"
	"github.com/trezcool/darasa/storage/database/sqlx"
)

func main() {
	logger := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	errAndDie(logger, err)

	// set up logging service
	var logSvc core.Logger
	if conf.Debug {
		logSvc = logsvc.NewConsoleLogger(logger)
	} else {
		logSvc = logsvc.NewRollbarLogger(logger, conf)
	}

	// set up DB
	db, err := database.Open(conf)
	errAndDie(logger, err)
	defer func() { _ = db.Close() }()
	errAndDie(logger, database.Ping(db))

	// set up services
	roomRepo := sqlxrepos.NewRoomRepository(db)
	sessionRepo := sqlxrepos.NewSessionRepository(db)
	roomSvc := room.NewService(roomRepo)
	scheduleSvc := schedule.NewService(sessionRepo, roomRepo)

	validate, translator := core.NewValidators()
	schedule.RegisterValidators(validate, translator)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Address:     conf.Server.Address(),
			Debug:       conf.Debug,
			TestMode:    conf.TestMode,
			Logger:      logSvc,
			RoomSvc:     roomSvc,
			ScheduleSvc: scheduleSvc,
			Validate:    validate,
			Translator:  translator,
			Shutdown:    shutdown,
		},
	)
	go app.Start()
	logger.Printf("API server listening on %s", conf.Server.Address())

	<-shutdown
	ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	}
}

func errAndDie(logger *log.Logger, err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
