package cmd

import (
	"github.com/masmgr/topoorder-go/internal/output"
	"github.com/urfave/cli/v2"
)

// BranchesCmd returns the branches command.
func BranchesCmd() *cli.Command {
	return &cli.Command{
		Name:    "branches",
		Aliases: []string{"b"},
		Usage:   "List resolved local branches and their tip commits",
		Flags:   commonFlags(),
		Action:  branchesAction,
	}
}

func branchesAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	report := &output.BranchReport{
		RepoPath: ctx.RepoPath,
		Branches: ctx.Branches,
	}

	format := resolveFormat(c, ctx.Config)
	if format == output.FormatText {
		// The branch table is a console report, not a plain-text protocol.
		format = output.FormatConsole
	}
	writer := output.NewBranchWriter(format)
	return writer.Write(report, output.Options{
		Format:     format,
		OutputPath: c.String("output"),
	})
}
