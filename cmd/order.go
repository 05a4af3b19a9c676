package cmd

import (
	"github.com/masmgr/topoorder-go/internal/output"
	"github.com/masmgr/topoorder-go/internal/refs"
	"github.com/masmgr/topoorder-go/internal/sequence"
	"github.com/urfave/cli/v2"
)

// OrderCmd returns the order command.
func OrderCmd() *cli.Command {
	return &cli.Command{
		Name:    "order",
		Aliases: []string{"o"},
		Usage:   "Print the commit history in deterministic topological order",
		Flags:   commonFlags(),
		Action:  orderAction,
	}
}

func orderAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	g, err := ctx.BuildGraph()
	if err != nil {
		return err
	}

	order, err := sequence.Order(g)
	if err != nil {
		return err
	}

	report := &output.OrderReport{
		RepoPath:    ctx.RepoPath,
		Order:       order,
		Graph:       g,
		TipBranches: refs.TipBranches(ctx.Branches),
	}

	opts := output.Options{
		Format:     resolveFormat(c, ctx.Config),
		OutputPath: c.String("output"),
	}
	writer := output.NewOrderWriter(opts.Format)
	return writer.Write(report, opts)
}
