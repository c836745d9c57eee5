package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/gymfox/gymfox/internal/pkg/database"
	"github.com/gymfox/gymfox/internal/pkg/env"
)

// schema is the part of *migrate.Migrate the commands need.
type schema interface {
	Up() error
	Steps(n int) error
	Version() (uint, bool, error)
}

func main() {
	env.SetupEnvFile()

	if len(os.Args) != 2 || !known(os.Args[1]) {
		printUsage()
		os.Exit(1)
	}

	dir := env.GetEnv("MIGRATIONS_DIR", "migrations")
	m, err := migrate.New("file://"+dir, database.MigrationURL())
	if err != nil {
		log.Fatalf("[Migrate] Failed to open %s: %v", dir, err)
	}
	defer func() {
		if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
			log.Printf("[Migrate] Failed to close: %v, %v", sourceErr, dbErr)
		}
	}()

	msg, err := run(m, os.Args[1])
	if err != nil {
		log.Fatalf("[Migrate] %s: %v", os.Args[1], err)
	}
	log.Printf("[Migrate] %s", msg)
}

func known(command string) bool {
	switch command {
	case "up", "down", "status":
		return true
	}
	return false
}

// run executes command against s and describes the resulting schema state.
func run(s schema, command string) (string, error) {
	switch command {
	case "up":
		err := s.Up()
		if errors.Is(err, migrate.ErrNoChange) {
			return "plan schema is up to date", nil
		}
		if err != nil {
			return "", err
		}
	case "down":
		if err := s.Steps(-1); err != nil {
			return "", err
		}
	case "status":
	default:
		return "", fmt.Errorf("unknown command %q", command)
	}
	return describe(s)
}

func describe(s schema) (string, error) {
	version, dirty, err := s.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return "no migrations applied", nil
	}
	if err != nil {
		return "", err
	}
	if dirty {
		return fmt.Sprintf("plan schema at version %d (dirty, fix and force before continuing)", version), nil
	}
	return fmt.Sprintf("plan schema at version %d", version), nil
}

func printUsage() {
	fmt.Println("Usage: migrate up|down|status")
	fmt.Println("  up     - apply pending plan schema migrations")
	fmt.Println("  down   - roll back the latest migration")
	fmt.Println("  status - show the schema version")
	fmt.Println("Reads DB_* like the server; MIGRATIONS_DIR defaults to ./migrations.")
}
