package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/masmgr/topoorder-go/internal/graph"
	"github.com/masmgr/topoorder-go/internal/object"
	"github.com/masmgr/topoorder-go/internal/refs"
)

// Compile-time interface conformance checks.
var (
	_ OrderWriter = (*TextOrderWriter)(nil)
	_ OrderWriter = (*JSONOrderWriter)(nil)

	_ BranchWriter = (*ConsoleBranchWriter)(nil)
	_ BranchWriter = (*JSONBranchWriter)(nil)

	_ CheckWriter = (*ConsoleCheckWriter)(nil)
	_ CheckWriter = (*JSONCheckWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatConsole OutputFormat = "console"
	FormatJSON    OutputFormat = "json"
)

// Options controls output behavior.
type Options struct {
	Format     OutputFormat
	OutputPath string
}

// OrderReport holds everything needed to render a topological ordering.
type OrderReport struct {
	RepoPath    string
	Order       []object.Hash
	Graph       *graph.Graph
	TipBranches map[object.Hash][]string
}

// BranchReport holds the resolved branch table.
type BranchReport struct {
	RepoPath string
	Branches []refs.Branch
}

// CheckReport holds the verification summary.
type CheckReport struct {
	RepoPath string
	Branches int
	Roots    int
	Commits  int
	Edges    int
}

// OrderWriter renders an ordering report.
type OrderWriter interface {
	Write(report *OrderReport, options Options) error
}

// BranchWriter renders a branch report.
type BranchWriter interface {
	Write(report *BranchReport, options Options) error
}

// CheckWriter renders a check report.
type CheckWriter interface {
	Write(report *CheckReport, options Options) error
}

// NewOrderWriter creates an order writer for the specified format.
func NewOrderWriter(format OutputFormat) OrderWriter {
	if format == FormatJSON {
		return &JSONOrderWriter{}
	}
	return &TextOrderWriter{}
}

// NewBranchWriter creates a branch writer for the specified format.
func NewBranchWriter(format OutputFormat) BranchWriter {
	if format == FormatJSON {
		return &JSONBranchWriter{}
	}
	return &ConsoleBranchWriter{}
}

// NewCheckWriter creates a check writer for the specified format.
func NewCheckWriter(format OutputFormat) CheckWriter {
	if format == FormatJSON {
		return &JSONCheckWriter{}
	}
	return &ConsoleCheckWriter{}
}

// openOutputWriter returns the destination stream plus the file to close
// when the output goes to disk instead of stdout.
func openOutputWriter(outputPath string) (io.Writer, *os.File, error) {
	if outputPath == "" {
		return os.Stdout, nil, nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

func writeJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
