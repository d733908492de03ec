// Package config captures the process environment once into an
// immutable value passed to the components that need it.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const dbname = "filedrop.db"

// A Config holds the process-wide settings, read-only after startup.
type Config struct {
	// BaseURL is the public URL of the server, used by the client to
	// build the upload endpoint and the resolved file URLs.
	BaseURL string
	// AccessKey is the shared secret carried by the ACCESS-KEY header.
	AccessKey string
	// Port is the server's listen port.
	Port string
	// UploadDir is the server-side storage root.
	UploadDir string
	// RecordsPath is the client-side provenance document.
	RecordsPath string
	// DatabasePath is the server-side index database.
	DatabasePath string
	// LogPath is the server-side line-oriented log file.
	LogPath string
	// MaxUploadSize caps the whole request body (echo BodyLimit syntax).
	MaxUploadSize string
}

// Load reads an optional .env file and captures the environment.
func Load() Config {
	godotenv.Load()

	return Config{
		BaseURL:       os.Getenv("BASE_URL"),
		AccessKey:     os.Getenv("ACCESS_KEY"),
		Port:          os.Getenv("PORT"),
		UploadDir:     os.Getenv("UPLOAD_DIR"),
		RecordsPath:   envORdefault("RECORDS_PATH", "records.json"),
		DatabasePath:  nameWithEnv("DATABASE_PATH", dbname),
		LogPath:       envORdefault("LOG_PATH", "server.log"),
		MaxUploadSize: envORdefault("MAX_UPLOAD_SIZE", "5G"),
	}
}

// ValidateServer checks the settings the server cannot run without.
func (c Config) ValidateServer() error {
	switch {
	case c.AccessKey == "":
		return errors.New("ACCESS_KEY undefined")
	case c.UploadDir == "":
		return errors.New("UPLOAD_DIR undefined")
	case c.Port == "":
		return errors.New("Server port undefined")
	}
	return nil
}

// ValidateClient checks the settings the client cannot run without.
func (c Config) ValidateClient() error {
	switch {
	case c.BaseURL == "":
		return errors.New("BASE_URL undefined")
	case c.AccessKey == "":
		return errors.New("ACCESS_KEY undefined")
	}
	return nil
}

func nameWithEnv(env, name string) string {
	p := os.Getenv(env)
	if len(p) == 0 {
		return name
	}
	return filepath.Join(p, name)
}

func envORdefault(name, fallback string) string {
	p := os.Getenv(name)
	if len(p) == 0 {
		return fallback
	}
	return p
}
