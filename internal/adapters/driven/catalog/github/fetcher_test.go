package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	gh "github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/runbook-cli/internal/core/domain"
)

// fileJSON renders a contents API file object with base64 content.
func fileJSON(name, path, content string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(content))
	return fmt.Sprintf(`{"type":"file","name":%q,"path":%q,"content":%q,"encoding":"base64"}`,
		name, path, encoded)
}

// newTestFetcher builds a fetcher against a fake contents API serving
// the canonical catalog repository:
//
//	catalog.toml
//	README.md        (not a catalog file)
//	system/
//	├── category.toml
//	└── trim.sh
func newTestFetcher(t *testing.T) *Fetcher {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/custodia-labs/runbooks/contents/":
			fmt.Fprint(w, `[
				{"type":"file","name":"catalog.toml","path":"catalog.toml"},
				{"type":"file","name":"README.md","path":"README.md"},
				{"type":"dir","name":"system","path":"system"}
			]`)
		case "/repos/custodia-labs/runbooks/contents/catalog.toml":
			fmt.Fprint(w, fileJSON("catalog.toml", "catalog.toml", `categories = ["system"]`))
		case "/repos/custodia-labs/runbooks/contents/system":
			fmt.Fprint(w, `[
				{"type":"file","name":"category.toml","path":"system/category.toml"},
				{"type":"file","name":"trim.sh","path":"system/trim.sh"}
			]`)
		case "/repos/custodia-labs/runbooks/contents/system/category.toml":
			fmt.Fprint(w, fileJSON("category.toml", "system/category.toml", `name = "System"`))
		case "/repos/custodia-labs/runbooks/contents/system/trim.sh":
			fmt.Fprint(w, fileJSON("trim.sh", "system/trim.sh", "#!/bin/sh\nfstrim -av\n"))
		default:
			http.NotFound(w, r)
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := gh.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL

	return &Fetcher{gh: client, limiter: rate.NewLimiter(rate.Inf, 0)}
}

func TestNewFetcher(t *testing.T) {
	ctx := context.Background()

	anonymous := NewFetcher(ctx, "")
	authenticated := NewFetcher(ctx, "ghp_testtoken")

	require.NotNil(t, anonymous)
	require.NotNil(t, authenticated)
}

func TestFetcher_FetchMirrorsCatalogTree(t *testing.T) {
	fetcher := newTestFetcher(t)
	destDir := t.TempDir()

	written, err := fetcher.Fetch(context.Background(), "custodia-labs/runbooks", "", destDir)

	require.NoError(t, err)
	assert.Equal(t, 3, written)

	index, err := os.ReadFile(filepath.Join(destDir, "catalog.toml"))
	require.NoError(t, err)
	assert.Equal(t, `categories = ["system"]`, string(index))

	category, err := os.ReadFile(filepath.Join(destDir, "system", "category.toml"))
	require.NoError(t, err)
	assert.Equal(t, `name = "System"`, string(category))

	script, err := os.ReadFile(filepath.Join(destDir, "system", "trim.sh"))
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\nfstrim -av\n", string(script))

	// Non-catalog files stay behind.
	_, err = os.Stat(filepath.Join(destDir, "README.md"))
	assert.True(t, os.IsNotExist(err))
}

func TestFetcher_FetchMarksScriptsExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on Windows")
	}

	fetcher := newTestFetcher(t)
	destDir := t.TempDir()

	_, err := fetcher.Fetch(context.Background(), "custodia-labs/runbooks", "", destDir)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(destDir, "system", "trim.sh"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o100, "scripts must be executable")
}

func TestFetcher_FetchPassesRef(t *testing.T) {
	var sawRef string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		sawRef = r.URL.Query().Get("ref")
		fmt.Fprint(w, `[]`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := gh.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL
	fetcher := &Fetcher{gh: client, limiter: rate.NewLimiter(rate.Inf, 0)}

	_, err = fetcher.Fetch(context.Background(), "custodia-labs/runbooks", "v2", t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, "v2", sawRef)
}

func TestFetcher_FetchInvalidRepo(t *testing.T) {
	fetcher := newTestFetcher(t)

	_, err := fetcher.Fetch(context.Background(), "not-a-repo", "", t.TempDir())

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFetcher_FetchListError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", http.NotFound)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := gh.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL
	fetcher := &Fetcher{gh: client, limiter: rate.NewLimiter(rate.Inf, 0)}

	_, err = fetcher.Fetch(context.Background(), "custodia-labs/runbooks", "", t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing")
}

func TestSplitRepo(t *testing.T) {
	tests := []struct {
		name  string
		repo  string
		owner string
		repo2 string
		ok    bool
	}{
		{"valid", "custodia-labs/runbooks", "custodia-labs", "runbooks", true},
		{"missing name", "custodia-labs/", "", "", false},
		{"missing owner", "/runbooks", "", "", false},
		{"no separator", "runbooks", "", "", false},
		{"too many parts", "a/b/c", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, name, err := splitRepo(tt.repo)
			if !tt.ok {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.owner, owner)
			assert.Equal(t, tt.repo2, name)
		})
	}
}

func TestCatalogFile(t *testing.T) {
	assert.True(t, catalogFile("category.toml"))
	assert.True(t, catalogFile("install.sh"))
	assert.False(t, catalogFile("README.md"))
	assert.False(t, catalogFile("script"))
}
