package devicefd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFd(t *testing.T, fd int, path string) Fd {
	t.Helper()
	e, ok := New(fd, path)
	require.True(t, ok)
	return e
}

func TestNewRejectsPathWithoutBasename(t *testing.T) {
	_, ok := New(1, "")
	assert.False(t, ok)

	_, ok = New(1, "/")
	assert.False(t, ok)
}

func TestInsertEvictsByFdAndName(t *testing.T) {
	var m Map

	m.Insert(mustFd(t, 1, "/dev/input/event0"))
	m.Insert(mustFd(t, 2, "/dev/input/event1"))
	require.Equal(t, 2, m.Len())

	got, ok := m.GetByName("event0")
	require.True(t, ok)
	assert.Equal(t, 1, got.Fd)

	// Same name, new fd: evicts the event0 entry, keeps len at 2.
	m.Insert(mustFd(t, 3, "/dev/input/event0"))
	assert.Equal(t, 2, m.Len())
	got, ok = m.GetByName("event0")
	require.True(t, ok)
	assert.Equal(t, 3, got.Fd)

	// Same fd, new name: evicts the fd=3/event0 entry.
	m.Insert(mustFd(t, 3, "/dev/input/event3"))
	assert.Equal(t, 2, m.Len())
	got, ok = m.GetByName("event3")
	require.True(t, ok)
	assert.Equal(t, 3, got.Fd)

	// Collides on both keys at once: removes up to two, inserts one, net -1.
	m.Insert(mustFd(t, 3, "/dev/input/event1"))
	assert.Equal(t, 1, m.Len())
	got, ok = m.GetByName("event1")
	require.True(t, ok)
	assert.Equal(t, 3, got.Fd)
}

func TestGetByName(t *testing.T) {
	var m Map
	m.Insert(mustFd(t, 1, "/dev/input/event0"))

	got, ok := m.GetByName("event0")
	require.True(t, ok)
	assert.Equal(t, 1, got.Fd)

	_, ok = m.GetByName("event9")
	assert.False(t, ok)
}

func TestRemoveByFd(t *testing.T) {
	var m Map
	m.Insert(mustFd(t, 1, "/dev/input/event0"))
	m.Insert(mustFd(t, 2, "/dev/input/event1"))

	got, ok := m.RemoveByFd(1)
	require.True(t, ok)
	assert.Equal(t, "event0", got.Name)

	_, ok = m.RemoveByFd(1)
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())
}

// Scenario #8 from spec.md §8.
func TestScenarioEight(t *testing.T) {
	var m Map
	m.Insert(mustFd(t, 1, "/dev/input/event0"))
	m.Insert(mustFd(t, 2, "/dev/input/event1"))
	m.Insert(mustFd(t, 3, "/dev/input/event0"))

	require.Equal(t, 2, m.Len())
	got, ok := m.GetByName("event0")
	require.True(t, ok)
	assert.Equal(t, 3, got.Fd)
}
