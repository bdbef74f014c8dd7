// Package devicefd tracks open device-node file descriptors keyed by
// both fd and basename, enforcing that neither key is ever shared by
// two entries. See spec.md §3/§4.1 for the invariant and the rationale
// (fd reuse across hot-plug, device-node re-creation after suspend).
package devicefd

import (
	"path/filepath"
	"unicode/utf8"
)

// Fd is one tracked open device-node file descriptor.
type Fd struct {
	Fd   int
	Path string
	Name string
}

// New builds an Fd from an open descriptor and the device-node path it
// was opened from. It fails when path has no UTF-8 basename (an empty or
// root path, or a basename that is not valid UTF-8), matching the
// original's `Path::file_name()` check.
func New(fd int, path string) (Fd, bool) {
	name := filepath.Base(path)
	if name == "" || name == "." || name == string(filepath.Separator) || !utf8.ValidString(name) {
		return Fd{}, false
	}
	return Fd{Fd: fd, Path: path, Name: name}, true
}

// Map is an ordered collection of Fds with the joint invariant that no
// two entries share an fd and no two entries share a basename.
type Map struct {
	values []Fd
}

// Insert removes every existing entry whose Fd equals e.Fd or whose Name
// equals e.Name, then appends e. A single insert removes at most two
// pre-existing entries (one by fd, one by name) because the invariant
// already guarantees at most one entry matches each key.
func (m *Map) Insert(e Fd) {
	kept := m.values[:0]
	for _, v := range m.values {
		if v.Fd == e.Fd || v.Name == e.Name {
			continue
		}
		kept = append(kept, v)
	}
	m.values = append(kept, e)
}

// GetByName returns the entry with the given basename, if any. The
// invariant guarantees at most one match.
func (m *Map) GetByName(name string) (Fd, bool) {
	for _, v := range m.values {
		if v.Name == name {
			return v, true
		}
	}
	return Fd{}, false
}

// RemoveByFd removes and returns the entry with the given fd, if any.
func (m *Map) RemoveByFd(fd int) (Fd, bool) {
	for i, v := range m.values {
		if v.Fd == fd {
			m.values = append(m.values[:i], m.values[i+1:]...)
			return v, true
		}
	}
	return Fd{}, false
}

// Len reports how many entries are currently tracked.
func (m *Map) Len() int {
	return len(m.values)
}
