// Package github implements the catalog fetcher over the GitHub
// contents API. It walks a repository tree and mirrors the catalog
// files into a local directory that the TOML provider can load.
package github

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/runbook-cli/internal/core/domain"
	"github.com/custodia-labs/runbook-cli/internal/core/ports/driven"
	"github.com/custodia-labs/runbook-cli/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.CatalogFetcher = (*Fetcher)(nil)

const (
	// requestTimeout is the HTTP request timeout.
	requestTimeout = 30 * time.Second

	// requestRate throttles API calls proactively. Unauthenticated
	// clients get 60 requests per hour from GitHub, so bursts are
	// smoothed rather than spent.
	requestRate = 1.2
)

// scriptPerm is the mode for downloaded script files.
const scriptPerm = 0o755

// filePerm is the mode for downloaded catalog definition files.
const filePerm = 0o644

// Fetcher downloads catalog trees from GitHub repositories.
type Fetcher struct {
	gh      *gh.Client
	limiter *rate.Limiter
}

// NewFetcher creates a fetcher. With a token the client authenticates
// through a static oauth2 token source; without one it is anonymous.
func NewFetcher(ctx context.Context, token string) *Fetcher {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
	} else {
		httpClient = &http.Client{}
	}
	httpClient.Timeout = requestTimeout

	return &Fetcher{
		gh:      gh.NewClient(httpClient),
		limiter: rate.NewLimiter(rate.Limit(requestRate), 1),
	}
}

// Fetch downloads the catalog tree from repo ("owner/name") at ref
// into destDir, preserving the repository layout. Only catalog files
// (.toml and .sh) are written. Returns the number of files written.
func (f *Fetcher) Fetch(ctx context.Context, repo, ref, destDir string) (int, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return 0, fmt.Errorf("creating destination %s: %w", destDir, err)
	}

	written, err := f.fetchDir(ctx, owner, name, ref, "", destDir)
	if err != nil {
		return written, err
	}

	logger.Info("Fetched %d catalog files from %s", written, repo)
	return written, nil
}

// fetchDir mirrors one repository directory into destDir, recursing
// into subdirectories.
func (f *Fetcher) fetchDir(ctx context.Context, owner, name, ref, path, destDir string) (int, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.RepositoryContentGetOptions{Ref: ref}
	_, entries, _, err := f.gh.Repositories.GetContents(ctx, owner, name, path, opts)
	if err != nil {
		return 0, fmt.Errorf("listing %s/%s at %q: %w", owner, name, path, err)
	}

	written := 0
	for _, entry := range entries {
		switch entry.GetType() {
		case "dir":
			subDir := filepath.Join(destDir, entry.GetName())
			if err := os.MkdirAll(subDir, 0o755); err != nil {
				return written, fmt.Errorf("creating %s: %w", subDir, err)
			}
			n, err := f.fetchDir(ctx, owner, name, ref, entry.GetPath(), subDir)
			written += n
			if err != nil {
				return written, err
			}

		case "file":
			if !catalogFile(entry.GetName()) {
				continue
			}
			if err := f.fetchFile(ctx, owner, name, ref, entry.GetPath(), filepath.Join(destDir, entry.GetName())); err != nil {
				return written, err
			}
			written++
		}
	}
	return written, nil
}

// fetchFile downloads one repository file to destPath.
func (f *Fetcher) fetchFile(ctx context.Context, owner, name, ref, path, destPath string) error {
	if err := f.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.RepositoryContentGetOptions{Ref: ref}
	content, _, _, err := f.gh.Repositories.GetContents(ctx, owner, name, path, opts)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", path, err)
	}
	if content == nil {
		return fmt.Errorf("fetching %s: path is a directory", path)
	}

	decoded, err := content.GetContent()
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	perm := os.FileMode(filePerm)
	if filepath.Ext(destPath) == ".sh" {
		perm = scriptPerm
	}
	if err := os.WriteFile(destPath, []byte(decoded), perm); err != nil {
		return fmt.Errorf("writing %s: %w", destPath, err)
	}

	logger.Debug("Fetched %s", path)
	return nil
}

// splitRepo parses an "owner/name" repository reference.
func splitRepo(repo string) (string, string, error) {
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("repository must be owner/name, got %q: %w", repo, domain.ErrInvalidInput)
	}
	return parts[0], parts[1], nil
}

// catalogFile reports whether the name is a file the catalog is built
// from.
func catalogFile(name string) bool {
	switch filepath.Ext(name) {
	case ".toml", ".sh":
		return true
	default:
		return false
	}
}
