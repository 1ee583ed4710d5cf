package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testEntries() []Entry {
	ts := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.Local)

	return []Entry{
		{App: "chrome.exe", Timestamp: ts, Action: ActionStarted, Purpose: "research"},
		{App: "Chrome.exe", Timestamp: ts.Add(time.Minute), Action: ActionClosedEarly},
		{App: "notepad.exe", Timestamp: ts.Add(2 * time.Minute), Action: ActionStarted, Purpose: "notes"},
	}
}

func TestEntryString(t *testing.T) {
	e := testEntries()[0]

	require.Equal(t, "2024-03-01 10:00:00 - chrome.exe: started (research)", e.String())
}

func TestFilter(t *testing.T) {
	entries := testEntries()

	filtered, err := Filter(entries, "")
	require.NoError(t, err)
	require.Equal(t, entries, filtered)

	filtered, err = Filter(entries, "chrome*")
	require.NoError(t, err)
	require.Equal(t, entries[:2], filtered)

	filtered, err = Filter(entries, "firefox.exe")
	require.NoError(t, err)
	require.Equal(t, []Entry{}, filtered)

	_, err = Filter(entries, "[chrome")
	require.Error(t, err)
}

func TestRecent(t *testing.T) {
	entries := testEntries()

	require.Equal(t, entries, Recent(entries, 10))
	require.Equal(t, entries, Recent(entries, 0))
	require.Equal(t, entries, Recent(entries, -1))
	require.Equal(t, entries[2:], Recent(entries, 1))
	require.Equal(t, []Entry{}, Recent(nil, 10))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore(MemoryConfig{})

	for _, e := range testEntries() {
		require.NoError(t, s.Append(e))
	}

	entries, err := s.ReadRecent(2)
	require.NoError(t, err)
	require.Equal(t, testEntries()[1:], entries)

	s.SetError(fmt.Errorf("disk full"))
	require.Error(t, s.Append(testEntries()[0]))

	s.SetError(nil)
	require.NoError(t, s.Append(testEntries()[0]))

	entries, err = s.ReadRecent(0)
	require.NoError(t, err)
	require.Equal(t, 4, len(entries))
}
