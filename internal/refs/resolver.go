// Package refs enumerates local branch pointers and resolves them to the
// commit hashes that seed graph traversal.
package refs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/masmgr/topoorder-go/internal/object"
)

// ErrDanglingReference reports a branch pointer whose target cannot be
// resolved: a symbolic reference to a missing ref, an unparsable ref file,
// or a tip hash with no object in the store.
var ErrDanglingReference = errors.New("dangling reference")

// Branch is a named local branch pointer and its resolved tip.
type Branch struct {
	Name string // e.g. "main", "release/1.2"
	Tip  object.Hash
	Via  string // non-empty when resolved through a symbolic reference
}

// Options filters the enumerated branches by name. Patterns use doublestar
// glob syntax ("release/**"). An empty Include list accepts everything;
// Exclude wins over Include.
type Options struct {
	Include []string
	Exclude []string
}

func (o Options) matches(name string) bool {
	for _, pattern := range o.Exclude {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return false
		}
	}
	if len(o.Include) == 0 {
		return true
	}
	for _, pattern := range o.Include {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// ListBranches enumerates every local branch under refs/heads, merging loose
// ref files with packed-refs entries (loose wins). Results are sorted by
// name.
func ListBranches(gitDir string, opts Options) ([]Branch, error) {
	tips, err := packedHeads(gitDir)
	if err != nil {
		return nil, err
	}
	via := make(map[string]string)

	headsDir := filepath.Join(gitDir, "refs", "heads")
	err = filepath.WalkDir(headsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(headsDir, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		tip, target, err := resolveRefFile(gitDir, name, path)
		if err != nil {
			return err
		}
		tips[name] = tip
		via[name] = target
		return nil
	})
	if err != nil {
		return nil, err
	}

	branches := make([]Branch, 0, len(tips))
	for name, tip := range tips {
		if !opts.matches(name) {
			continue
		}
		branches = append(branches, Branch{Name: name, Tip: tip, Via: via[name]})
	}
	sort.Slice(branches, func(i, j int) bool { return branches[i].Name < branches[j].Name })
	return branches, nil
}

// resolveRefFile reads a loose ref file, following at most one level of
// symbolic indirection.
func resolveRefFile(gitDir, name, path string) (object.Hash, string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("%w: refs/heads/%s: %v", ErrDanglingReference, name, err)
	}
	value := strings.TrimSpace(string(content))

	if target, ok := strings.CutPrefix(value, "ref: "); ok {
		target = strings.TrimSpace(target)
		tip, err := readRefTarget(gitDir, target)
		if err != nil {
			return "", "", fmt.Errorf("%w: refs/heads/%s points to %s: %v", ErrDanglingReference, name, target, err)
		}
		return tip, target, nil
	}

	tip, err := object.ParseHash(value)
	if err != nil {
		return "", "", fmt.Errorf("%w: refs/heads/%s: %v", ErrDanglingReference, name, err)
	}
	return tip, "", nil
}

// readRefTarget dereferences a symbolic target exactly once: the target must
// itself contain a plain hash.
func readRefTarget(gitDir, target string) (object.Hash, error) {
	content, err := os.ReadFile(filepath.Join(gitDir, filepath.FromSlash(target)))
	if err != nil {
		if os.IsNotExist(err) {
			// The target may live in packed-refs.
			packed, perr := packedRefs(gitDir)
			if perr != nil {
				return "", perr
			}
			if tip, ok := packed[target]; ok {
				return tip, nil
			}
			return "", fmt.Errorf("no such ref")
		}
		return "", err
	}
	value := strings.TrimSpace(string(content))
	if strings.HasPrefix(value, "ref: ") {
		return "", fmt.Errorf("nested symbolic reference")
	}
	return object.ParseHash(value)
}

// packedHeads returns the refs/heads entries from packed-refs, keyed by
// branch name.
func packedHeads(gitDir string) (map[string]object.Hash, error) {
	all, err := packedRefs(gitDir)
	if err != nil {
		return nil, err
	}
	heads := make(map[string]object.Hash)
	for ref, tip := range all {
		if name, ok := strings.CutPrefix(ref, "refs/heads/"); ok {
			heads[name] = tip
		}
	}
	return heads, nil
}

// packedRefs parses the packed-refs file. Comment lines and peeled-tag
// annotations ("^<hash>") are skipped. A missing file yields an empty map.
func packedRefs(gitDir string) (map[string]object.Hash, error) {
	content, err := os.ReadFile(filepath.Join(gitDir, "packed-refs"))
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]object.Hash{}, nil
		}
		return nil, err
	}

	out := make(map[string]object.Hash)
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' || line[0] == '^' {
			continue
		}
		hexPart, ref, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		tip, err := object.ParseHash(hexPart)
		if err != nil {
			return nil, fmt.Errorf("%w: packed-refs entry %q: %v", ErrDanglingReference, line, err)
		}
		out[ref] = tip
	}
	return out, nil
}

// Roots returns the deduplicated set of branch tips in branch-name order,
// verifying each tip exists in the store before any traversal begins.
func Roots(branches []Branch, src object.Source) ([]object.Hash, error) {
	seen := make(map[object.Hash]bool)
	roots := make([]object.Hash, 0, len(branches))
	for _, b := range branches {
		if seen[b.Tip] {
			continue
		}
		if !src.Contains(b.Tip) {
			return nil, fmt.Errorf("%w: refs/heads/%s points to missing object %s", ErrDanglingReference, b.Name, b.Tip)
		}
		seen[b.Tip] = true
		roots = append(roots, b.Tip)
	}
	return roots, nil
}

// TipBranches maps each tip hash to the sorted names of the branches that
// point at it, for output annotation.
func TipBranches(branches []Branch) map[object.Hash][]string {
	out := make(map[object.Hash][]string)
	for _, b := range branches {
		out[b.Tip] = append(out[b.Tip], b.Name)
	}
	for _, names := range out {
		sort.Strings(names)
	}
	return out
}
