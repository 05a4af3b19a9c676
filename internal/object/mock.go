package object

import "fmt"

// MockObject is a canned object held by MockSource.
type MockObject struct {
	Kind Kind
	Data []byte
}

// MockSource is a test double for Source. It lets tests provide predefined
// objects without needing a real repository on disk.
type MockSource struct {
	Objects map[Hash]MockObject
	Err     error // returned by every Read when set
}

// NewMockSource creates a MockSource with the given objects.
func NewMockSource(objects map[Hash]MockObject) *MockSource {
	return &MockSource{Objects: objects}
}

// Contains reports whether a canned object exists for h.
func (m *MockSource) Contains(h Hash) bool {
	_, ok := m.Objects[h]
	return ok
}

// Read returns the canned object or the configured error.
func (m *MockSource) Read(h Hash) (Kind, []byte, error) {
	if m.Err != nil {
		return "", nil, m.Err
	}
	obj, ok := m.Objects[h]
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrObjectNotFound, h)
	}
	return obj.Kind, obj.Data, nil
}
