package driven

import "context"

// CatalogFetcher downloads catalog files from a remote repository into
// a local directory, from which a CatalogProvider can load them.
type CatalogFetcher interface {
	// Fetch downloads the catalog tree from repo ("owner/name") at the
	// given ref (empty means the default branch) into destDir,
	// preserving the directory layout. Returns the number of files
	// written.
	Fetch(ctx context.Context, repo, ref, destDir string) (int, error)
}
