package object

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// GitDir resolves the .git directory for a repository path.
// Both worktree checkouts (path/.git) and bare repositories (path itself)
// are accepted. Walking parent directories to locate the repository root is
// the caller's business, not ours.
func GitDir(repoPath string) (string, error) {
	dotGit := filepath.Join(repoPath, ".git")
	if info, err := os.Stat(dotGit); err == nil && info.IsDir() {
		return dotGit, nil
	}
	if info, err := os.Stat(filepath.Join(repoPath, "objects")); err == nil && info.IsDir() {
		return repoPath, nil
	}
	return "", fmt.Errorf("not a git repository: %s", repoPath)
}

// LooseSource reads individually zlib-deflated objects from .git/objects.
// Packed objects are invisible to it; use GitSource or BackendAuto for
// repositories that have been repacked.
type LooseSource struct {
	gitDir string
}

// NewLooseSource opens a loose object source for the repository at repoPath.
func NewLooseSource(repoPath string) (*LooseSource, error) {
	gitDir, err := GitDir(repoPath)
	if err != nil {
		return nil, err
	}
	return &LooseSource{gitDir: gitDir}, nil
}

func (s *LooseSource) objectPath(h Hash) string {
	return filepath.Join(s.gitDir, "objects", string(h[:2]), string(h[2:]))
}

// Contains reports whether a loose object with the given hash exists.
func (s *LooseSource) Contains(h Hash) bool {
	parsed, err := ParseHash(string(h))
	if err != nil {
		return false
	}
	_, err = os.Stat(s.objectPath(parsed))
	return err == nil
}

// Read locates, decompresses and validates the object named by h.
// The stored form is "<kind> <size>\x00<payload>"; the declared size must
// match the actual payload length.
func (s *LooseSource) Read(h Hash) (Kind, []byte, error) {
	parsed, err := ParseHash(string(h))
	if err != nil {
		return "", nil, err
	}

	compressed, err := os.ReadFile(s.objectPath(parsed))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("%w: %s", ErrObjectNotFound, parsed)
		}
		return "", nil, fmt.Errorf("reading object %s: %w", parsed, err)
	}

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s: %v", ErrCorruptObject, parsed, err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s: %v", ErrCorruptObject, parsed, err)
	}

	kind, payload, err := splitHeader(raw)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s: %v", ErrCorruptObject, parsed, err)
	}
	return kind, payload, nil
}

// splitHeader separates the "<kind> <size>\x00" prefix from the payload and
// checks the declared size against the payload length.
func splitHeader(raw []byte) (Kind, []byte, error) {
	nul := bytes.IndexByte(raw, 0)
	if nul < 0 {
		return "", nil, fmt.Errorf("missing header terminator")
	}
	header := raw[:nul]
	payload := raw[nul+1:]

	sp := bytes.IndexByte(header, ' ')
	if sp < 0 {
		return "", nil, fmt.Errorf("malformed header %q", header)
	}
	kind := Kind(header[:sp])
	size, err := strconv.Atoi(string(header[sp+1:]))
	if err != nil {
		return "", nil, fmt.Errorf("malformed size in header %q", header)
	}
	if size != len(payload) {
		return "", nil, fmt.Errorf("declared size %d, payload is %d bytes", size, len(payload))
	}
	return kind, payload, nil
}
