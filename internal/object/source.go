package object

import "fmt"

// Kind identifies the type of a stored Git object.
type Kind string

const (
	KindCommit Kind = "commit"
	KindTree   Kind = "tree"
	KindBlob   Kind = "blob"
	KindTag    Kind = "tag"
)

// Source reads typed objects from a Git object store.
// This abstraction allows the loose-object reader to be swapped for a
// packfile-capable backend without touching the rest of the pipeline.
type Source interface {
	// Contains reports whether an object with the given hash exists.
	Contains(h Hash) bool

	// Read returns the kind and uncompressed payload of the object.
	// The payload excludes the "<kind> <size>\x00" header.
	Read(h Hash) (Kind, []byte, error)
}

// Backend selects the object store implementation.
type Backend int

const (
	// BackendLoose reads individually deflated objects under .git/objects.
	BackendLoose Backend = iota
	// BackendGit reads through go-git's storer, including packfiles.
	BackendGit
	// BackendAuto prefers loose objects and falls back to go-git per object.
	BackendAuto
)

// ParseBackend maps a flag/config value to a Backend.
func ParseBackend(s string) (Backend, error) {
	switch s {
	case "", "loose":
		return BackendLoose, nil
	case "gogit":
		return BackendGit, nil
	case "auto":
		return BackendAuto, nil
	default:
		return 0, fmt.Errorf("unknown store backend %q (want loose, gogit or auto)", s)
	}
}

// NewSource opens an object source for the repository at repoPath using the
// selected backend.
func NewSource(repoPath string, backend Backend) (Source, error) {
	switch backend {
	case BackendGit:
		return NewGitSource(repoPath)
	case BackendAuto:
		loose, err := NewLooseSource(repoPath)
		if err != nil {
			return nil, err
		}
		packed, err := NewGitSource(repoPath)
		if err != nil {
			return nil, err
		}
		return &fallbackSource{primary: loose, fallback: packed}, nil
	default:
		return NewLooseSource(repoPath)
	}
}

// fallbackSource consults a primary source and falls back to a secondary one
// when the primary does not hold the object.
type fallbackSource struct {
	primary  Source
	fallback Source
}

func (s *fallbackSource) Contains(h Hash) bool {
	return s.primary.Contains(h) || s.fallback.Contains(h)
}

func (s *fallbackSource) Read(h Hash) (Kind, []byte, error) {
	if s.primary.Contains(h) {
		return s.primary.Read(h)
	}
	return s.fallback.Read(h)
}

// Compile-time interface conformance checks.
var (
	_ Source = (*LooseSource)(nil)
	_ Source = (*GitSource)(nil)
	_ Source = (*fallbackSource)(nil)
	_ Source = (*MockSource)(nil)
)
