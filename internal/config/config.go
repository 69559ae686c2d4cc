package config

import (
	"os"
	"path/filepath"
	"sync"

	"fjacquet/paycheck-planner/internal/logging"

	"github.com/joho/godotenv"
)

var once sync.Once

// LoadEnv loads environment variables from a .env file if one exists in the
// current or parent directory. Variables already set are not overridden.
func LoadEnv() {
	once.Do(func() {
		log := logging.GetLogger()

		envFile := ".env"
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			envFile = filepath.Join("..", ".env")
			if _, err := os.Stat(envFile); os.IsNotExist(err) {
				log.Debug("No .env file found, using environment variables")
				return
			}
		}

		if err := godotenv.Load(envFile); err != nil {
			log.WithError(err).Warn("Error loading .env file")
			return
		}
		log.Debug("Loaded environment variables", logging.Field{Key: logging.FieldFile, Value: envFile})
	})
}
