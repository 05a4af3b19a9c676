package cmd

import (
	"fmt"
	"os"

	"github.com/masmgr/topoorder-go/config"
	"github.com/masmgr/topoorder-go/internal/output"
	"github.com/urfave/cli/v2"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "topoorder",
		Usage:   "Topologically ordered commit history, straight from the Git object store",
		Version: "1.0.0",
		Commands: []*cli.Command{
			OrderCmd(),
			BranchesCmd(),
			CheckCmd(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
		},
		Action: defaultAction,
	}
}

// Common flags shared across commands
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Path to Git repository",
			Value:   ".",
		},
		&cli.StringFlag{
			Name:    "store",
			Aliases: []string{"s"},
			Usage:   "Object store backend (loose, gogit, auto)",
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Branch name globs to include (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Branch name globs to exclude (can be specified multiple times)",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (text, json)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
	}
}

// getOutputFormat parses an output format value.
func getOutputFormat(s string) output.OutputFormat {
	switch s {
	case "json":
		return output.FormatJSON
	case "console":
		return output.FormatConsole
	default:
		return output.FormatText
	}
}

// resolveFormat picks the format from the CLI flag, falling back to the
// configured default.
func resolveFormat(c *cli.Context, cfg *config.Config) output.OutputFormat {
	s := c.String("format")
	if s == "" {
		s = cfg.Output.Format
	}
	return getOutputFormat(s)
}

// loadConfig loads configuration from file or defaults.
func loadConfig(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Apply filter overrides from CLI
	if includes := c.StringSlice("include"); len(includes) > 0 {
		cfg.Filters.Include = includes
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Filters.Exclude = excludes
	}
	if store := c.String("store"); store != "" {
		cfg.Store.Backend = store
	}

	return cfg, nil
}

// defaultAction handles bare invocation: `topoorder` orders the repository
// in the working directory, `topoorder <path>` orders the one at path.
func defaultAction(c *cli.Context) error {
	return orderAction(c)
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
