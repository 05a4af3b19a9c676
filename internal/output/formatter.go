package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/masmgr/topoorder-go/internal/object"
)

// TextOrderWriter renders the canonical plain-text ordering, one commit hash
// per line, child before parent.
//
// Rendering convention:
//
//   - A commit that is a branch tip has the sorted branch names appended to
//     its line, space-separated.
//   - When the next line is a direct parent of the current one, the pair is
//     contiguous and nothing extra is printed.
//   - Otherwise the current line is followed by a sticky end (the current
//     commit's parent hashes, sorted ascending, space-separated, with a
//     trailing "="), then one empty line, then a sticky start opening the
//     next run: "=" followed by the sorted, already-emitted children of the
//     next commit.
//   - The very first and very last lines carry no marker on their open end.
//     A seam after a commit with no parents renders its sticky end as a
//     bare "=", and a sticky start for a commit with no emitted children is
//     a bare "=" as well.
//
// The marker lines are unambiguous against bare hash lines: a sticky end
// always ends in "=", a sticky start always begins with one.
type TextOrderWriter struct{}

// Write renders the report to stdout or the configured output file.
func (w *TextOrderWriter) Write(report *OrderReport, options Options) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	return renderText(out, report)
}

func renderText(out io.Writer, report *OrderReport) error {
	g := report.Graph
	for i, h := range report.Order {
		line := string(h)
		if names := report.TipBranches[h]; len(names) > 0 {
			line += " " + strings.Join(names, " ")
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}

		if i == len(report.Order)-1 {
			break
		}
		node := g.Nodes[h]
		next := report.Order[i+1]
		if isParent(node.Parents, next) {
			continue
		}

		// Seam: close the current run and open the next.
		if _, err := fmt.Fprintln(out, joinSorted(node.Parents)+"="); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, "="+joinSorted(g.Children[next])); err != nil {
			return err
		}
	}
	return nil
}

func isParent(parents []object.Hash, h object.Hash) bool {
	for _, p := range parents {
		if p == h {
			return true
		}
	}
	return false
}

func joinSorted(hashes []object.Hash) string {
	sorted := make([]string, len(hashes))
	for i, h := range hashes {
		sorted[i] = string(h)
	}
	sort.Strings(sorted)
	return strings.Join(sorted, " ")
}
