package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// Loader resolves an import source (a file, a directory or a git URL) into
// parsed decks.
type Loader struct {
	// CacheDir holds cloned repositories, one directory per host and path.
	CacheDir string
	// Progress receives git clone/pull progress; nil discards it.
	Progress io.Writer

	logger *slog.Logger
}

// NewLoader creates a Loader caching git checkouts under cacheDir.
// A nil logger uses slog.Default().
func NewLoader(cacheDir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		CacheDir: cacheDir,
		logger:   logger.With(slog.String("component", "importer")),
	}
}

// IsGitURL reports whether src names a remote git repository rather than a
// local path.
func IsGitURL(src string) bool {
	if strings.HasPrefix(src, "git@") {
		return true
	}
	u, err := url.Parse(src)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "https", "http", "ssh", "git":
		return u.Host != ""
	}
	return false
}

// Load parses every deck reachable from src. Files that contain no cards are
// skipped when walking a directory; a single file without cards is an error.
func (l *Loader) Load(ctx context.Context, src string) ([]Deck, error) {
	path := src
	if IsGitURL(src) {
		local, err := repoPath(l.CacheDir, src)
		if err != nil {
			return nil, err
		}
		if err := l.sync(ctx, src, local); err != nil {
			return nil, err
		}
		path = local
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("import source %s: %w", src, err)
	}
	if !info.IsDir() {
		deck, err := ParseFile(path)
		if err != nil {
			return nil, err
		}
		return []Deck{*deck}, nil
	}
	return l.walk(ctx, path)
}

func (l *Loader) walk(ctx context.Context, root string) ([]Deck, error) {
	var decks []Deck
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), ".md") {
			return nil
		}

		deck, err := ParseFile(path)
		if errors.Is(err, ErrNoCards) {
			l.logger.Debug("skipping file without cards", slog.String("path", path))
			return nil
		}
		if err != nil {
			return err
		}
		if rel, relErr := filepath.Rel(root, path); relErr == nil {
			deck.Source = rel
		}
		decks = append(decks, *deck)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	if len(decks) == 0 {
		return nil, fmt.Errorf("%s: %w", root, ErrNoCards)
	}

	l.logger.Info("decks parsed", slog.String("root", root), slog.Int("decks", len(decks)))
	return decks, nil
}

// sync clones the repository into local, or pulls when a checkout exists.
func (l *Loader) sync(ctx context.Context, repoURL, local string) error {
	progress := l.Progress
	if progress == nil {
		progress = io.Discard
	}

	_, err := os.Stat(local)
	switch {
	case os.IsNotExist(err):
		l.logger.Info("cloning deck repository", slog.String("url", repoURL))
		_, err := git.PlainCloneContext(ctx, local, false, &git.CloneOptions{
			URL:      repoURL,
			Depth:    1,
			Progress: progress,
		})
		if err != nil {
			return fmt.Errorf("failed to clone repo %s: %w", repoURL, err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("error checking path %s: %w", local, err)
	}

	repo, err := git.PlainOpen(local)
	if err != nil {
		return fmt.Errorf("failed to open existing repo at %s: %w", local, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree for repo at %s: %w", local, err)
	}
	l.logger.Info("pulling deck repository", slog.String("url", repoURL))
	err = worktree.PullContext(ctx, &git.PullOptions{RemoteName: "origin", Progress: progress})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to pull changes for repo at %s: %w", local, err)
	}
	return nil
}

// repoPath maps a git URL to a checkout directory under baseDir:
// https://github.com/a/decks.git and git@github.com:a/decks.git both map
// to baseDir/github.com/a/decks.
func repoPath(baseDir, repoURL string) (string, error) {
	if strings.HasPrefix(repoURL, "git@") {
		hostPath := strings.TrimPrefix(repoURL, "git@")
		host, p, ok := strings.Cut(hostPath, ":")
		if !ok || host == "" || p == "" || strings.Contains(p, "..") || strings.Contains(host, "..") {
			return "", fmt.Errorf("could not parse git URL: %s", repoURL)
		}
		return filepath.Join(baseDir, host, filepath.FromSlash(strings.TrimSuffix(p, ".git"))), nil
	}

	u, err := url.Parse(repoURL)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("could not parse git URL: %s", repoURL)
	}
	p := strings.TrimSuffix(strings.Trim(u.Path, "/"), ".git")
	if p == "" || strings.Contains(p, "..") {
		return "", fmt.Errorf("could not parse git URL: %s", repoURL)
	}
	return filepath.Join(baseDir, u.Hostname(), filepath.FromSlash(p)), nil
}
