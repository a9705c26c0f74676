package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/conorfennell/drill/internal/config"
	"github.com/conorfennell/drill/internal/storage"
)

const usageText = `drill - spaced-repetition exercises in the terminal

Usage: drill [flags] <command> [args]

Commands:
  init                 create the database schema
  drop                 remove the database schema (asks first)
  import <file>        preview and import exercises from a YAML file
  list                 list all exercises by due date
  grep <query>         search exercises by content or id
  show <id>            print one exercise in full
  export <id> [path]   write an exercise to a YAML file for editing
  update <file>        apply an edited exercise file
  add-source <path>    register a local directory or git URL of exercises
  sources              list registered sources
  sync                 pull sources and import new exercises
  review               review the due exercises
  count                print the number of stored exercises

Flags:
`

func main() {
	flags := pflag.NewFlagSet("drill", pflag.ContinueOnError)
	configPath := flags.String("config", "config.yaml", "Path to the config file")
	flags.String("db", config.Default().DB, "Path to the SQLite database file")
	flags.Int("timebox", config.Default().TimeBox, "Review time box in minutes")
	flags.String("export-dir", config.Default().ExportDir, "Directory for exported exercise files")
	flags.String("repos-dir", config.Default().ReposDir, "Directory for git source checkouts")
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usageText)
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		os.Exit(2)
	}

	args := flags.Args()
	if len(args) == 0 {
		flags.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath, flags)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DB)
	if err != nil {
		slog.Error("failed to open database", "path", cfg.DB, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := dispatch(db, cfg, args[0], args[1:]); err != nil {
		slog.Error("command failed", "command", args[0], "error", err)
		os.Exit(1)
	}
}
