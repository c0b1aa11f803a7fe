package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/yourusername/trivia-questions-api/internal/config"
)

// Ручное управление миграциями:
//
//	migrate -cmd up
//	migrate -cmd down -steps 1
//	migrate -cmd force -version 1   # сброс dirty состояния после неудачной миграции
//	migrate -cmd version
func main() {
	configPath := flag.String("config", "config/config.yaml", "путь к файлу конфигурации")
	command := flag.String("cmd", "up", "up | down | force | version")
	steps := flag.Int("steps", 0, "количество шагов для down (0 - откатить все)")
	version := flag.Int("version", -1, "версия для force")
	flag.Parse()

	config.LoadDotEnv(".env")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Database.PostgresURL())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal(err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+cfg.Database.MigrationsPath, "postgres", driver)
	if err != nil {
		log.Fatal(err)
	}

	if err := run(m, *command, *steps, *version); err != nil {
		log.Printf("Migration command %q failed: %v", *command, err)
		os.Exit(1)
	}
}

func run(m *migrate.Migrate, command string, steps, version int) error {
	switch command {
	case "up":
		return ignoreNoChange(m.Up())
	case "down":
		if steps > 0 {
			return ignoreNoChange(m.Steps(-steps))
		}
		return ignoreNoChange(m.Down())
	case "force":
		if version < 0 {
			return errors.New("force requires -version")
		}
		fmt.Printf("Forcing migration version to %d to clean dirty state...\n", version)
		return m.Force(version)
	case "version":
		v, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("No migrations applied")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("Version: %d, dirty: %t\n", v, dirty)
		return nil
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Println("No change")
		return nil
	}
	if err == nil {
		fmt.Println("Success!")
	}
	return err
}
