package store

import (
	"fmt"
	"sync"

	"github.com/focusguard/core/log"
)

type MemoryConfig struct {
	Logger log.Logger
}

type memoryStore struct {
	entries []Entry
	err     error
	lock    sync.Mutex

	logger log.Logger
}

// MemoryStore is a Store that keeps the log in memory. Appending can be made
// to fail with SetError.
type MemoryStore interface {
	Store

	// SetError makes every subsequent Append fail with err. A nil err
	// lets Append succeed again.
	SetError(err error)
}

func NewMemoryStore(config MemoryConfig) MemoryStore {
	s := &memoryStore{
		logger: config.Logger,
	}

	if s.logger == nil {
		s.logger = log.New("")
	}

	return s
}

func (s *memoryStore) SetError(err error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.err = err
}

func (s *memoryStore) Append(e Entry) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.err != nil {
		return fmt.Errorf("failed to store entry: %w", s.err)
	}

	s.entries = append(s.entries, e)

	s.logger.Debug().WithFields(log.Fields{
		"app":    e.App,
		"action": e.Action,
	}).Log("Stored entry")

	return nil
}

func (s *memoryStore) ReadRecent(n int) ([]Entry, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	return Recent(s.entries, n), nil
}

// Recent returns a copy of the last n entries. With n <= 0 all
// entries are returned.
func Recent(entries []Entry, n int) []Entry {
	if n <= 0 || n > len(entries) {
		n = len(entries)
	}

	recent := make([]Entry, n)
	copy(recent, entries[len(entries)-n:])

	return recent
}
