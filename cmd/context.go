package cmd

import (
	"fmt"

	"github.com/masmgr/topoorder-go/config"
	"github.com/masmgr/topoorder-go/internal/graph"
	"github.com/masmgr/topoorder-go/internal/object"
	"github.com/masmgr/topoorder-go/internal/refs"
	"github.com/urfave/cli/v2"
)

// CommandContext holds common state for command execution.
// It encapsulates the shared setup across commands: configuration loading,
// store opening and reference resolution. Graph building is a separate step
// because the branches command never needs it.
type CommandContext struct {
	Config   *config.Config
	RepoPath string
	Source   object.Source
	Branches []refs.Branch
	Roots    []object.Hash
}

// NewCommandContext creates a context from CLI flags. The returned context
// has already verified every branch tip against the store, so a dangling
// reference fails here, before any traversal.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	repoPath := repoPathFromContext(c)

	backend, err := object.ParseBackend(cfg.Store.Backend)
	if err != nil {
		return nil, err
	}
	source, err := object.NewSource(repoPath, backend)
	if err != nil {
		return nil, err
	}

	gitDir, err := object.GitDir(repoPath)
	if err != nil {
		return nil, err
	}
	branches, err := refs.ListBranches(gitDir, refs.Options{
		Include: cfg.Filters.Include,
		Exclude: cfg.Filters.Exclude,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve references: %w", err)
	}

	roots, err := refs.Roots(branches, source)
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Config:   cfg,
		RepoPath: repoPath,
		Source:   source,
		Branches: branches,
		Roots:    roots,
	}, nil
}

// BuildGraph runs the closure traversal from the resolved roots.
func (ctx *CommandContext) BuildGraph() (*graph.Graph, error) {
	g, err := graph.Build(ctx.Source, ctx.Roots)
	if err != nil {
		return nil, fmt.Errorf("failed to build commit graph: %w", err)
	}
	return g, nil
}

// repoPathFromContext returns the repository path: a positional argument
// wins over the --repo flag, and the working directory is the default.
func repoPathFromContext(c *cli.Context) string {
	if c.NArg() > 0 {
		return c.Args().First()
	}
	if repo := c.String("repo"); repo != "" {
		return repo
	}
	return "."
}
