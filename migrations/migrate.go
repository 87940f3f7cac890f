package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path"

	"financialamigo/src/config"
	"financialamigo/src/database"

	"github.com/google/subcommands"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

const migrationsDir = "./migrations"

type gooseCmd struct {
	name     string
	synopsis string
	run      func(db *sql.DB, dir string) error
	settings string
}

func (c *gooseCmd) Name() string     { return c.name }
func (c *gooseCmd) Synopsis() string { return c.synopsis }
func (c *gooseCmd) Usage() string {
	return fmt.Sprintf("migrate %s [-settings <dir>]\n\n  %s\n", c.name, c.synopsis)
}

func (c *gooseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.settings, "settings", "./settings", "Directory holding appsettings.yaml.")
}

func (c *gooseCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.LoadConfig(c.settings, os.Getenv("ENV"))
	if err != nil {
		log.Printf("Error loading config for environment: %v", err)
		return subcommands.ExitFailure
	}
	if cfg.Databases.SQL.Driver != "postgres" {
		log.Printf("Migrations target postgres, configured driver is %q", cfg.Databases.SQL.Driver)
		return subcommands.ExitFailure
	}

	pool, err := database.SetupPool(ctx, cfg.Databases.SQL)
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		return subcommands.ExitFailure
	}
	defer pool.Close()

	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Printf("Failed to set goose dialect: %v", err)
		return subcommands.ExitFailure
	}
	if err := c.run(sqlDB, migrationsDir); err != nil {
		log.Printf("Failed to run %s: %v", c.name, err)
		return subcommands.ExitFailure
	}

	log.Printf("Database %s completed successfully", c.name)
	return subcommands.ExitSuccess
}

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(&gooseCmd{name: "up", synopsis: "apply every pending migration", run: func(db *sql.DB, dir string) error { return goose.Up(db, dir) }}, "")
	commander.Register(&gooseCmd{name: "down", synopsis: "roll back the latest migration", run: func(db *sql.DB, dir string) error { return goose.Down(db, dir) }}, "")
	commander.Register(&gooseCmd{name: "status", synopsis: "print the state of each migration", run: func(db *sql.DB, dir string) error { return goose.Status(db, dir) }}, "")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
