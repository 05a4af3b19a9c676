package main

import (
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	gogitobj "github.com/go-git/go-git/v5/plumbing/object"
)

// createTestRepo creates a temporary git repository with no commits.
func createTestRepo(t *testing.T) (string, *gogit.Repository) {
	t.Helper()
	tmpDir := t.TempDir()
	repo, err := gogit.PlainInit(tmpDir, false)
	if err != nil {
		t.Fatalf("Failed to initialize git repo: %v", err)
	}
	return tmpDir, repo
}

// writeTree stores an empty tree object and returns its hash. Commit
// ordering never looks at trees, so one shared empty tree is enough.
func writeTree(t *testing.T, repo *gogit.Repository) plumbing.Hash {
	t.Helper()
	obj := repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.TreeObject)
	obj.SetSize(0)
	hash, err := repo.Storer.SetEncodedObject(obj)
	if err != nil {
		t.Fatalf("Failed to store tree: %v", err)
	}
	return hash
}

// writeCommit stores a commit object with exact parents and timestamp,
// which the worktree API cannot express (it cannot create merges or
// disjoint roots).
func writeCommit(t *testing.T, repo *gogit.Repository, tree plumbing.Hash, message string, when time.Time, parents ...plumbing.Hash) plumbing.Hash {
	t.Helper()
	sig := gogitobj.Signature{Name: "Test Author", Email: "test@example.com", When: when}
	commit := &gogitobj.Commit{
		Author:       sig,
		Committer:    sig,
		Message:      message,
		TreeHash:     tree,
		ParentHashes: parents,
	}
	obj := repo.Storer.NewEncodedObject()
	if err := commit.Encode(obj); err != nil {
		t.Fatalf("Failed to encode commit: %v", err)
	}
	hash, err := repo.Storer.SetEncodedObject(obj)
	if err != nil {
		t.Fatalf("Failed to store commit: %v", err)
	}
	return hash
}

// setBranch points refs/heads/<name> at the given commit.
func setBranch(t *testing.T, repo *gogit.Repository, name string, hash plumbing.Hash) {
	t.Helper()
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), hash)
	if err := repo.Storer.SetReference(ref); err != nil {
		t.Fatalf("Failed to set branch %s: %v", name, err)
	}
}
