package output

// JSONOrderWriter writes the topological ordering as JSON.
type JSONOrderWriter struct{}

// JSONOrderReport is the JSON output structure for an ordering.
type JSONOrderReport struct {
	RepoPath     string          `json:"repo"`
	TotalCommits int             `json:"totalCommits"`
	Items        []JSONOrderItem `json:"items"`
}

// JSONOrderItem is the JSON output structure for a single ordered commit.
type JSONOrderItem struct {
	Hash string `json:"hash"`
	// Branches whose tip this commit is, sorted.
	Branches []string `json:"branches,omitempty"`
	Parents  []string `json:"parents,omitempty"`
	// ContiguousWithNext is true when the following item is a direct
	// parent of this commit. Always false on the last item.
	ContiguousWithNext bool `json:"contiguousWithNext"`
}

// Write outputs the ordering report as JSON.
func (w *JSONOrderWriter) Write(report *OrderReport, options Options) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	items := make([]JSONOrderItem, len(report.Order))
	for i, h := range report.Order {
		node := report.Graph.Nodes[h]
		parents := make([]string, len(node.Parents))
		for j, p := range node.Parents {
			parents[j] = string(p)
		}
		contiguous := false
		if i < len(report.Order)-1 {
			contiguous = isParent(node.Parents, report.Order[i+1])
		}
		items[i] = JSONOrderItem{
			Hash:               string(h),
			Branches:           report.TipBranches[h],
			Parents:            parents,
			ContiguousWithNext: contiguous,
		}
	}

	return writeJSON(out, JSONOrderReport{
		RepoPath:     report.RepoPath,
		TotalCommits: len(report.Order),
		Items:        items,
	})
}

// JSONBranchWriter writes the resolved branch table as JSON.
type JSONBranchWriter struct{}

// JSONBranchReport is the JSON output structure for the branch table.
type JSONBranchReport struct {
	RepoPath      string           `json:"repo"`
	TotalBranches int              `json:"totalBranches"`
	Items         []JSONBranchItem `json:"items"`
}

// JSONBranchItem is the JSON output structure for a single branch.
type JSONBranchItem struct {
	Name string `json:"name"`
	Tip  string `json:"tip"`
	Via  string `json:"via,omitempty"`
}

// Write outputs the branch report as JSON.
func (w *JSONBranchWriter) Write(report *BranchReport, options Options) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	items := make([]JSONBranchItem, len(report.Branches))
	for i, b := range report.Branches {
		items[i] = JSONBranchItem{Name: b.Name, Tip: string(b.Tip), Via: b.Via}
	}
	return writeJSON(out, JSONBranchReport{
		RepoPath:      report.RepoPath,
		TotalBranches: len(report.Branches),
		Items:         items,
	})
}

// JSONCheckWriter writes the verification summary as JSON.
type JSONCheckWriter struct{}

// JSONCheckReport is the JSON output structure for a verification run.
type JSONCheckReport struct {
	RepoPath string `json:"repo"`
	Branches int    `json:"branches"`
	Roots    int    `json:"roots"`
	Commits  int    `json:"commits"`
	Edges    int    `json:"edges"`
	OK       bool   `json:"ok"`
}

// Write outputs the check report as JSON.
func (w *JSONCheckWriter) Write(report *CheckReport, options Options) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	return writeJSON(out, JSONCheckReport{
		RepoPath: report.RepoPath,
		Branches: report.Branches,
		Roots:    report.Roots,
		Commits:  report.Commits,
		Edges:    report.Edges,
		OK:       true,
	})
}
