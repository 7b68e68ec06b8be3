package main

import (
	"fmt"
	"os"
	"time"

	"github.com/damoang/angple-press/internal/config"
	"github.com/damoang/angple-press/internal/migration"
	"github.com/damoang/angple-press/pkg/database"
	pkglogger "github.com/damoang/angple-press/pkg/logger"
	"github.com/spf13/pflag"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	env := config.AppEnv()

	var configPath, seedPath string
	var dryRun, verbose bool

	flagSet := pflag.NewFlagSet("migrate", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", config.PathFor(env), "config file path")
	flagSet.StringVar(&seedPath, "seed", "", "YAML file with categories and tags to insert")
	flagSet.BoolVar(&dryRun, "dry-run", false, "parse the seed file and print it without touching the database")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "verbose SQL logging")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	config.LoadDotEnv(env)
	pkglogger.InitStructured(env)

	var seed *migration.SeedFile
	if seedPath != "" {
		var err error
		if seed, err = migration.LoadSeedFile(seedPath); err != nil {
			return err
		}
	}

	if dryRun {
		if seed == nil {
			fmt.Println("[dry-run] schema migration only")
			return nil
		}
		for _, c := range seed.Categories {
			fmt.Printf("[dry-run] category %q\n", c.Name)
		}
		for _, t := range seed.Tags {
			fmt.Printf("[dry-run] tag %q\n", t.Name)
		}
		return nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	level := gormlogger.Warn
	if verbose {
		level = gormlogger.Info
	}
	db, err := database.OpenMySQL(database.Options{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    2,
		ConnMaxLifetime: time.Minute,
		LogLevel:        level,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	start := time.Now()
	if err := migration.Run(db); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	pkglogger.Info("schema migrated in %s", time.Since(start))

	if seed != nil {
		n, err := migration.Seed(db, seed)
		if err != nil {
			return err
		}
		pkglogger.Info("seeded %d new rows from %s", n, seedPath)
	}
	return nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `migrate creates or updates the schema and optionally seeds reference data.

Usage:
  migrate [flags]

Examples:
  # Schema only, config chosen by APP_ENV
  migrate

  # Schema plus categories and tags
  migrate --seed configs/seed.yaml

Flags:
%s`, flagSet.FlagUsages())
}
