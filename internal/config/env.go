package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFile loads environment variables from the first .env/.env.local file
// that exists. Existing process variables are not overwritten. It returns the
// file loaded, or "" when none exists.
func loadEnvFile() (string, error) {
	for _, path := range envFiles {
		err := godotenv.Load(path)
		if err == nil {
			return path, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return "", err
	}
	return "", nil
}
