package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv reads .env into the process environment. Missing file is fine
// (production reads real env vars).
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		if os.IsNotExist(err) {
			return
		}
		log.Printf("config: .env not loaded: %v", err)
	}
}
