package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/conorfennell/drill/internal/config"
	"github.com/conorfennell/drill/internal/domain"
	"github.com/conorfennell/drill/internal/menu"
	"github.com/conorfennell/drill/internal/parser"
	"github.com/conorfennell/drill/internal/review"
	"github.com/conorfennell/drill/internal/scheduler"
	"github.com/conorfennell/drill/internal/storage"
	"github.com/conorfennell/drill/internal/sync"
)

func dispatch(db *storage.DB, cfg config.Config, command string, args []string) error {
	switch command {
	case "init":
		return cmdInit(db)
	case "drop":
		return cmdDrop(db)
	case "import":
		if len(args) != 1 {
			return fmt.Errorf("usage: drill import <file>")
		}
		return cmdImport(db, args[0])
	case "list":
		return cmdList(db)
	case "grep":
		if len(args) != 1 {
			return fmt.Errorf("usage: drill grep <query>")
		}
		return cmdGrep(db, args[0])
	case "show":
		if len(args) != 1 {
			return fmt.Errorf("usage: drill show <id>")
		}
		return cmdShow(db, args[0])
	case "export":
		if len(args) < 1 || len(args) > 2 {
			return fmt.Errorf("usage: drill export <id> [path]")
		}
		return cmdExport(db, cfg, args)
	case "update":
		if len(args) != 1 {
			return fmt.Errorf("usage: drill update <file>")
		}
		return cmdUpdate(db, args[0])
	case "add-source":
		if len(args) != 1 {
			return fmt.Errorf("usage: drill add-source <path|url>")
		}
		return cmdAddSource(db, args[0])
	case "sources":
		return cmdSources(db)
	case "sync":
		return sync.Run(db, cfg.ReposDir, time.Now())
	case "review":
		return cmdReview(db, cfg)
	case "count":
		return cmdCount(db)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func cmdInit(db *storage.DB) error {
	// Open already applied the schema; confirm it took.
	loaded, err := db.SchemaIsLoaded()
	if err != nil {
		return err
	}
	if !loaded {
		return fmt.Errorf("schema did not load")
	}
	fmt.Println("Database ready.")
	return nil
}

func cmdDrop(db *storage.DB) error {
	n, err := db.Count()
	if err != nil {
		return err
	}
	fmt.Printf("Drop the schema and lose %d exercises?\n", n)

	choice, ok, err := menu.Select([]menu.Option{
		{Label: "Cancel", Shortcut: 'c'},
		{Label: "Drop everything", Shortcut: 'd'},
	})
	fmt.Println()
	if err != nil {
		return err
	}
	if !ok || choice == 0 {
		fmt.Println("Nothing dropped.")
		return nil
	}

	if err := db.Drop(); err != nil {
		return err
	}
	fmt.Println("Schema dropped.")
	return nil
}

func cmdImport(db *storage.DB, path string) error {
	exercises, err := parser.ParseFile(path, time.Now())
	if err != nil {
		return err
	}
	if len(exercises) == 0 {
		fmt.Println("No exercises found in file.")
		return nil
	}

	fmt.Printf("Found %d exercises in %s:\n\n", len(exercises), path)
	for i, ex := range exercises {
		fmt.Printf("%d. %s\n", i+1, firstLine(ex.Description))
	}
	fmt.Println()

	choice, ok, err := menu.Select([]menu.Option{
		{Label: "Import", Shortcut: 'y'},
		{Label: "Cancel", Shortcut: 'n'},
	})
	fmt.Println()
	if err != nil {
		return err
	}
	if !ok || choice != 0 {
		fmt.Println("Nothing imported.")
		return nil
	}

	if err := db.InsertAll(exercises); err != nil {
		return err
	}
	fmt.Printf("Imported %d exercises.\n", len(exercises))
	return nil
}

func cmdList(db *storage.DB) error {
	exercises, err := db.All()
	if err != nil {
		return err
	}
	printExerciseTable(exercises)
	return nil
}

func cmdGrep(db *storage.DB, query string) error {
	exercises, err := db.Grep(query)
	if err != nil {
		return err
	}
	printExerciseTable(exercises)
	return nil
}

func cmdShow(db *storage.DB, rawID string) error {
	ex, err := lookup(db, rawID)
	if err != nil {
		return err
	}

	fmt.Printf("ID:       %d\n", ex.DisplayID())
	fmt.Printf("Created:  %s\n", ex.CreatedAt.Format("2006-01-02"))
	fmt.Printf("Due:      %s\n", ex.DueAt.Format("2006-01-02"))
	fmt.Printf("Interval: %dd, streak %d\n\n", ex.UpdateInterval, ex.ConsecutiveSuccessfulReviews)
	fmt.Println(ex.Description)
	fmt.Println()
	fmt.Println("Answer:")
	fmt.Println(ex.ReferenceAnswer)
	fmt.Println()
	fmt.Printf("Source: %s\n", ex.Source)
	return nil
}

func cmdExport(db *storage.DB, cfg config.Config, args []string) error {
	ex, err := lookup(db, args[0])
	if err != nil {
		return err
	}

	path := filepath.Join(cfg.ExportDir, fmt.Sprintf("exercise_%d.yaml", ex.DisplayID()))
	if len(args) == 2 {
		path = args[1]
	}

	if err := parser.Export(ex, path); err != nil {
		return err
	}
	fmt.Printf("Exported exercise %d to %s.\n", ex.DisplayID(), path)
	return nil
}

func cmdUpdate(db *storage.DB, path string) error {
	update, err := parser.ParseUpdateFile(path)
	if err != nil {
		return err
	}

	ex, err := db.ByID(update.ID)
	if err != nil {
		return err
	}
	if ex == nil {
		return fmt.Errorf("no exercise with id %d", update.ID)
	}

	ex.ApplyUpdate(update)
	if err := db.Update(ex); err != nil {
		return err
	}
	fmt.Printf("Updated exercise %d.\n", update.ID)
	return nil
}

// sourceKind classifies a source argument as a git URL or a local
// directory.
func sourceKind(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") ||
		strings.HasSuffix(path, ".git") || strings.Contains(path, "@") {
		return "git"
	}
	return "local"
}

func cmdAddSource(db *storage.DB, path string) error {
	kind := sourceKind(path)
	if kind == "local" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		path = abs
	}

	id, err := db.InsertSource(kind, path)
	if err != nil {
		return err
	}
	fmt.Printf("Registered %s source %d: %s\n", kind, id, path)
	return nil
}

func cmdSources(db *storage.DB) error {
	sources, err := db.Sources()
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		fmt.Println("No sources registered.")
		return nil
	}
	for _, s := range sources {
		synced := "never"
		if s.LastSynced.Valid {
			synced = s.LastSynced.Time.Format(time.RFC3339)
		}
		fmt.Printf("%d  %-5s  %s  (synced: %s)\n", s.ID, s.Kind, s.Path, synced)
	}
	return nil
}

func cmdReview(db *storage.DB, cfg config.Config) error {
	runner := &review.Runner{
		Store:     db,
		Params:    scheduler.DefaultParams(),
		Select:    menu.Select,
		Export:    parser.Export,
		ExportDir: cfg.ExportDir,
		Out:       os.Stdout,
		Now:       time.Now,
	}
	return runner.Run(cfg.TimeBox)
}

func cmdCount(db *storage.DB) error {
	n, err := db.Count()
	if err != nil {
		return err
	}
	fmt.Printf("%d exercises.\n", n)
	return nil
}

func lookup(db *storage.DB, rawID string) (*domain.Exercise, error) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid exercise id %q", rawID)
	}
	ex, err := db.ByID(id)
	if err != nil {
		return nil, err
	}
	if ex == nil {
		return nil, fmt.Errorf("no exercise with id %d", id)
	}
	return ex, nil
}

func printExerciseTable(exercises []domain.Exercise) {
	if len(exercises) == 0 {
		fmt.Println("No exercises.")
		return
	}
	fmt.Printf("%-5s %-12s %-7s %s\n", "ID", "DUE", "STREAK", "DESCRIPTION")
	for _, ex := range exercises {
		fmt.Printf("%-5d %-12s %-7d %s\n",
			ex.DisplayID(),
			ex.DueAt.Format("2006-01-02"),
			ex.ConsecutiveSuccessfulReviews,
			firstLine(ex.Description),
		)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}
