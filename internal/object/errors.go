package object

import "errors"

// Sentinel errors for the object layer. Callers match them with errors.Is;
// every wrapped instance carries the offending hash in its message.
var (
	// ErrInvalidHash reports a malformed object name (wrong length or alphabet).
	ErrInvalidHash = errors.New("invalid object hash")

	// ErrObjectNotFound reports that no object with the given hash exists
	// in the backing store.
	ErrObjectNotFound = errors.New("object not found")

	// ErrCorruptObject reports a stored object that failed decompression or
	// whose declared length does not match its payload.
	ErrCorruptObject = errors.New("corrupt object")

	// ErrUnexpectedObjectKind reports an object of a kind the caller cannot
	// consume (e.g. a tree where a commit was required).
	ErrUnexpectedObjectKind = errors.New("unexpected object kind")

	// ErrMalformedCommit reports a commit payload whose header structure is
	// missing or unparsable.
	ErrMalformedCommit = errors.New("malformed commit object")
)
