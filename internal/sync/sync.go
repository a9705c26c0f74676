// Package sync pulls registered exercise sources and imports any
// exercises that are not yet stored. Review state of existing
// exercises is never touched; a file moving between sources must not
// reset anyone's streak.
package sync

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/conorfennell/drill/internal/domain"
	"github.com/conorfennell/drill/internal/gitsource"
	"github.com/conorfennell/drill/internal/parser"
	"github.com/conorfennell/drill/internal/storage"
)

// Run reconciles every registered source. Per-source failures are
// logged and sync moves on to the next source.
func Run(db *storage.DB, reposDir string, now time.Time) error {
	sources, err := db.Sources()
	if err != nil {
		return fmt.Errorf("failed to load sources: %w", err)
	}
	if len(sources) == 0 {
		slog.Info("no sources configured, add one with add-source")
		return nil
	}

	for _, source := range sources {
		slog.Info("syncing source", "id", source.ID, "kind", source.Kind, "path", source.Path)

		localPath := source.Path
		if source.Kind == "git" {
			localPath, err = localPathForRepo(reposDir, source.Path)
			if err != nil {
				slog.Error("cannot determine checkout path", "url", source.Path, "error", err)
				continue
			}
			if err := gitsource.CloneOrPull(source.Path, localPath); err != nil {
				slog.Error("failed to sync git source", "url", source.Path, "error", err)
				continue
			}
		}

		imported, skipped, err := importDirectory(db, localPath, now)
		if err != nil {
			slog.Error("failed to import source", "path", localPath, "error", err)
			continue
		}

		if err := db.TouchSource(source.ID, now); err != nil {
			slog.Warn("failed to stamp source", "id", source.ID, "error", err)
		}
		slog.Info("source synced", "path", source.Path, "imported", imported, "skipped", skipped)
	}
	return nil
}

// importDirectory walks a directory tree for YAML exercise files and
// inserts the exercises whose descriptions are not stored yet.
func importDirectory(db *storage.DB, dir string, now time.Time) (imported, skipped int, err error) {
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isExerciseFile(d.Name()) {
			return nil
		}

		exercises, err := parser.ParseFile(path, now)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}

		var fresh []domain.Exercise
		for _, ex := range exercises {
			known, err := db.HasDescription(ex.Description)
			if err != nil {
				return fmt.Errorf("checking %s: %w", path, err)
			}
			if known {
				skipped++
				continue
			}
			fresh = append(fresh, ex)
		}

		if len(fresh) > 0 {
			if err := db.InsertAll(fresh); err != nil {
				return fmt.Errorf("saving %s: %w", path, err)
			}
			imported += len(fresh)
		}
		return nil
	})
	if walkErr != nil {
		return 0, 0, walkErr
	}
	return imported, skipped, nil
}

func isExerciseFile(name string) bool {
	name = strings.ToLower(name)
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

// localPathForRepo maps a git URL to a stable checkout directory under
// reposDir. Both https and scp-like ssh URLs are supported.
func localPathForRepo(reposDir, repoURL string) (string, error) {
	parsed, err := url.Parse(repoURL)
	if err == nil && (parsed.Scheme == "https" || parsed.Scheme == "http") {
		return filepath.Join(reposDir, parsed.Host, strings.TrimSuffix(parsed.Path, ".git")), nil
	}

	// git@host:user/repo.git
	if at := strings.Index(repoURL, "@"); at >= 0 {
		if colon := strings.Index(repoURL, ":"); colon > at {
			host := repoURL[at+1 : colon]
			repoPath := strings.TrimSuffix(repoURL[colon+1:], ".git")
			return filepath.Join(reposDir, host, repoPath), nil
		}
	}

	return "", fmt.Errorf("could not parse git URL: %s", repoURL)
}
