package object

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Commit is the decoded form of a commit object: its own hash, its parent
// links, and the committer timestamp used for deterministic tie-breaking.
type Commit struct {
	Hash    Hash
	Tree    Hash
	Parents []Hash
	When    time.Time
	Message string // first line only
}

// DecodeCommit parses the raw payload of an object already read from the
// store. Objects of any kind other than commit are rejected with
// ErrUnexpectedObjectKind and never decoded.
//
// A commit payload is a sequence of "keyword value" header lines terminated
// by a blank line, then the free-form message. The mandatory structure is a
// tree reference, zero or more parent lines (duplicates rejected) and a
// committer timestamp (author timestamp accepted as fallback).
func DecodeCommit(h Hash, kind Kind, payload []byte) (*Commit, error) {
	if kind != KindCommit {
		return nil, fmt.Errorf("%w: %s is a %s, not a commit", ErrUnexpectedObjectKind, h, kind)
	}

	c := &Commit{Hash: h}
	seen := make(map[Hash]bool)
	var committerWhen, authorWhen *time.Time

	rest := string(payload)
	for len(rest) > 0 {
		line, tail, _ := strings.Cut(rest, "\n")
		rest = tail
		if line == "" {
			// Header/message boundary.
			c.Message, _, _ = strings.Cut(rest, "\n")
			break
		}
		// Continuation lines (multi-line headers such as gpgsig) start
		// with a space and carry nothing we decode.
		if line[0] == ' ' {
			continue
		}

		keyword, value, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("%w: %s: header line %q", ErrMalformedCommit, h, line)
		}

		switch keyword {
		case "tree":
			tree, err := ParseHash(value)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: bad tree reference %q", ErrMalformedCommit, h, value)
			}
			c.Tree = tree
		case "parent":
			parent, err := ParseHash(value)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: bad parent reference %q", ErrMalformedCommit, h, value)
			}
			if seen[parent] {
				return nil, fmt.Errorf("%w: %s: duplicate parent %s", ErrMalformedCommit, h, parent)
			}
			seen[parent] = true
			c.Parents = append(c.Parents, parent)
		case "author":
			when, err := signatureTime(value)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrMalformedCommit, h, err)
			}
			authorWhen = &when
		case "committer":
			when, err := signatureTime(value)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrMalformedCommit, h, err)
			}
			committerWhen = &when
		}
	}

	if c.Tree == "" {
		return nil, fmt.Errorf("%w: %s: missing tree reference", ErrMalformedCommit, h)
	}
	switch {
	case committerWhen != nil:
		c.When = *committerWhen
	case authorWhen != nil:
		c.When = *authorWhen
	default:
		return nil, fmt.Errorf("%w: %s: missing committer timestamp", ErrMalformedCommit, h)
	}
	return c, nil
}

// signatureTime extracts the timestamp from a "Name <email> <unix> <tz>"
// signature value.
func signatureTime(value string) (time.Time, error) {
	fields := strings.Fields(value)
	if len(fields) < 2 {
		return time.Time{}, fmt.Errorf("bad signature %q", value)
	}
	// The timezone offset is the last field, the epoch seconds the one
	// before it.
	unix, err := strconv.ParseInt(fields[len(fields)-2], 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad timestamp in signature %q", value)
	}
	return time.Unix(unix, 0).UTC(), nil
}
