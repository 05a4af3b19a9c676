package output

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
)

// ConsoleBranchWriter writes the resolved branch table to the console.
type ConsoleBranchWriter struct{}

// Write outputs the branch report to the console.
func (w *ConsoleBranchWriter) Write(report *BranchReport, options Options) error {
	color.Green("Local Branches")
	fmt.Printf("Repository: %s\n", report.RepoPath)
	fmt.Printf("Total branches: %d\n\n", len(report.Branches))

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Name\tTip\tVia")
	for _, b := range report.Branches {
		via := b.Via
		if via == "" {
			via = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Name, b.Tip, via)
	}
	return tw.Flush()
}

// ConsoleCheckWriter writes the verification summary to the console.
type ConsoleCheckWriter struct{}

// Write outputs the check report to the console.
func (w *ConsoleCheckWriter) Write(report *CheckReport, options Options) error {
	color.Green("History Verification")
	fmt.Printf("Repository: %s\n", report.RepoPath)
	fmt.Printf("Branches: %d (%d distinct tips)\n", report.Branches, report.Roots)
	fmt.Printf("Commits: %d\n", report.Commits)
	fmt.Printf("Parent edges: %d\n", report.Edges)
	color.Green("OK: history is closed and acyclic")
	return nil
}
