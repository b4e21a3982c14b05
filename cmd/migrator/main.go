package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/maze-server/internal/config"
	"github.com/vancomm/maze-server/internal/database"
)

// setupLogging loads .env first so DEVELOPMENT may come from there.
func setupLogging() *logrus.Logger {
	envErr := godotenv.Load()

	log := logrus.New()
	if config.Development() {
		log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	if envErr != nil && !os.IsNotExist(envErr) {
		log.Warn("unable to load .env: ", envErr)
	}
	return log
}

func main() {
	log := setupLogging()

	url, err := config.DbURL()
	if err != nil {
		log.WithError(err).Fatal("no database to migrate")
	}

	version, err := database.Migrate(url, database.Migrations)
	if err != nil {
		log.WithError(err).Fatal("failed to migrate")
	}
	log.WithField("version", version).Info("migration successful")
}
