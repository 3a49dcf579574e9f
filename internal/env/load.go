package env

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Load reads a .env file from the working directory when one exists.
// Variables already set in the environment win.
func Load(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		log.Println("No .env file found, assuming environment variables are set directly.")
	}
}

// Get returns the value of key, or def when it is unset or empty.
func Get(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
