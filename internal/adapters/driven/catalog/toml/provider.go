// Package toml provides the catalog provider backed by a directory of
// TOML files. The directory holds a catalog.toml index naming the
// category subdirectories; each subdirectory holds a category.toml
// describing that category's entry tree and any script files the
// entries reference.
package toml

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/runbook-cli/internal/core/domain"
	"github.com/custodia-labs/runbook-cli/internal/core/ports/driven"
	"github.com/custodia-labs/runbook-cli/internal/logger"
)

// Ensure Provider implements the interface.
var _ driven.CatalogProvider = (*Provider)(nil)

// IndexFile names the catalog index inside the catalog directory.
const IndexFile = "catalog.toml"

// CategoryFile names the category definition inside each subdirectory.
const CategoryFile = "category.toml"

// scriptShell interprets script entries that name no executable.
const scriptShell = "sh"

// Provider loads catalog snapshots from a local directory.
type Provider struct {
	dir string
}

// NewProvider creates a provider reading from the given catalog
// directory.
func NewProvider(dir string) *Provider {
	return &Provider{dir: dir}
}

// catalogIndex mirrors catalog.toml.
type catalogIndex struct {
	Categories []string `toml:"categories"`
}

// categoryFile mirrors category.toml.
type categoryFile struct {
	Name    string      `toml:"name"`
	Entries []entryFile `toml:"entry"`
}

// entryFile is one entry definition, possibly nested.
type entryFile struct {
	Name        string      `toml:"name"`
	Description string      `toml:"description"`
	Tags        []string    `toml:"tags"`
	MultiSelect bool        `toml:"multi_select"`
	Command     string      `toml:"command"`
	Script      string      `toml:"script"`
	Executable  string      `toml:"executable"`
	Args        []string    `toml:"args"`
	Platforms   []string    `toml:"platforms"`
	Entries     []entryFile `toml:"entries"`
}

// Load builds a fresh snapshot from the catalog directory. When
// validate is true, entries whose platforms list excludes the current
// OS are dropped together with their subtrees. A malformed file fails
// the whole load.
func (p *Provider) Load(_ context.Context, validate bool) (*domain.Snapshot, error) {
	index, err := readIndex(p.dir)
	if err != nil {
		return nil, err
	}

	snapshot := &domain.Snapshot{}
	for _, sub := range index.Categories {
		category, err := p.loadCategory(filepath.Join(p.dir, sub), validate)
		if err != nil {
			return nil, err
		}
		snapshot.Categories = append(snapshot.Categories, category)
	}

	logger.Debug("Loaded catalog with %d categories from %s", len(snapshot.Categories), p.dir)
	return snapshot, nil
}

// readIndex parses catalog.toml.
func readIndex(dir string) (catalogIndex, error) {
	path := filepath.Join(dir, IndexFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return catalogIndex{}, fmt.Errorf("reading catalog index %s: %w", path, err)
	}

	var index catalogIndex
	if err := gotoml.Unmarshal(data, &index); err != nil {
		return catalogIndex{}, fmt.Errorf("parsing catalog index %s: %w", path, err)
	}
	return index, nil
}

// loadCategory parses one category subdirectory into an arena-backed
// category tree rooted at a synthetic root node.
func (p *Provider) loadCategory(dir string, validate bool) (domain.Category, error) {
	path := filepath.Join(dir, CategoryFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Category{}, fmt.Errorf("reading category file %s: %w", path, err)
	}

	var file categoryFile
	if err := gotoml.Unmarshal(data, &file); err != nil {
		return domain.Category{}, fmt.Errorf("parsing category file %s: %w", path, err)
	}
	if file.Name == "" {
		return domain.Category{}, fmt.Errorf("category file %s: missing name", path)
	}

	builder := &categoryBuilder{
		dir:      dir,
		path:     path,
		validate: validate,
		nodes:    make(map[string]domain.Node),
	}

	children, err := builder.buildEntries(file.Entries)
	if err != nil {
		return domain.Category{}, err
	}

	rootID := uuid.New().String()
	builder.nodes[rootID] = domain.Node{
		ID:       rootID,
		Name:     file.Name,
		Children: children,
		Command:  domain.NoCommand(),
	}

	return domain.Category{
		Name:   file.Name,
		RootID: rootID,
		Nodes:  builder.nodes,
	}, nil
}

// categoryBuilder accumulates the node arena for one category.
type categoryBuilder struct {
	dir      string
	path     string
	validate bool
	nodes    map[string]domain.Node
}

// buildEntries converts a list of entry definitions to node ids,
// preserving file order. Filtered entries leave no trace.
func (b *categoryBuilder) buildEntries(entries []entryFile) ([]string, error) {
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		id, ok, err := b.buildEntry(entry)
		if err != nil {
			return nil, err
		}
		if ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// buildEntry converts one entry definition to a node in the arena.
// It returns ok=false when the entry is filtered out by platform.
func (b *categoryBuilder) buildEntry(entry entryFile) (string, bool, error) {
	if entry.Name == "" {
		return "", false, fmt.Errorf("category file %s: entry missing name", b.path)
	}
	if b.validate && excludedByPlatform(entry.Platforms) {
		logger.Debug("Skipping entry %q: not supported on %s", entry.Name, runtime.GOOS)
		return "", false, nil
	}

	command, err := b.buildCommand(entry)
	if err != nil {
		return "", false, err
	}

	children, err := b.buildEntries(entry.Entries)
	if err != nil {
		return "", false, err
	}

	id := uuid.New().String()
	b.nodes[id] = domain.Node{
		ID:          id,
		Name:        entry.Name,
		Description: entry.Description,
		Tags:        entry.Tags,
		MultiSelect: entry.MultiSelect,
		Children:    children,
		Command:     command,
	}
	return id, true, nil
}

// buildCommand maps the entry's command fields to a specification.
func (b *categoryBuilder) buildCommand(entry entryFile) (domain.CommandSpec, error) {
	hasCommand := entry.Command != ""
	hasScript := entry.Script != ""

	switch {
	case hasCommand && hasScript:
		return domain.CommandSpec{}, fmt.Errorf("category file %s: entry %q has both command and script", b.path, entry.Name)

	case (hasCommand || hasScript) && len(entry.Entries) > 0:
		return domain.CommandSpec{}, fmt.Errorf("category file %s: entry %q has both a command and nested entries", b.path, entry.Name)

	case hasCommand:
		return domain.RawCommand(entry.Command), nil

	case hasScript:
		abs := filepath.Join(b.dir, entry.Script)
		if entry.Executable != "" {
			return domain.LocalFileCommand(entry.Executable, append(entry.Args, abs), abs), nil
		}
		return domain.LocalFileCommand(scriptShell, []string{"-e", abs}, abs), nil

	default:
		return domain.NoCommand(), nil
	}
}

// excludedByPlatform reports whether a non-empty platforms list leaves
// out the current OS.
func excludedByPlatform(platforms []string) bool {
	if len(platforms) == 0 {
		return false
	}
	for _, platform := range platforms {
		if platform == runtime.GOOS {
			return false
		}
	}
	return true
}
