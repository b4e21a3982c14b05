package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/maze-server/internal/app"
	"github.com/vancomm/maze-server/internal/config"
	"github.com/vancomm/maze-server/internal/database"
	"github.com/vancomm/maze-server/internal/maze"
	"github.com/vancomm/maze-server/internal/session"
)

var log = logrus.New()

func setupLogging() {
	logLevel := logrus.InfoLevel
	if config.Development() {
		logLevel = logrus.DebugLevel
	}

	for _, l := range []*logrus.Logger{log, maze.Log, session.Log} {
		l.SetLevel(logLevel)
		l.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	}

	logFile, ok := config.LogFile()
	if !ok {
		return
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   logFile,
		MaxSize:    50,
		MaxBackups: 3,
		MaxAge:     28,
		Level:      logLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		log.Fatal("unable to open log file: ", err)
	}
	for _, l := range []*logrus.Logger{log, maze.Log, session.Log} {
		l.AddHook(hook)
	}
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn("unable to load .env: ", err)
	}

	setupLogging()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	log.WithField("development", config.Development()).Info("starting up")

	if err := app.New(log, database.Migrations).Start(ctx); err != nil {
		log.Fatal("exit reason: ", err)
	}
	log.Info("bye")
}
