package json

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/focusguard/core/encoding/json"
	"github.com/focusguard/core/io/fs"
	"github.com/focusguard/core/log"
	"github.com/focusguard/core/session/store"

	"github.com/lestrrat-go/strftime"
)

const timeFormat = "%Y-%m-%d %H:%M:%S"

type Config struct {
	Filesystem fs.Filesystem
	Filepath   string // Full path to the log file
	Logger     log.Logger
}

// entry is an entry as it is stored in the file
type entry struct {
	App       string `json:"app"`
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
	Purpose   string `json:"purpose"`
}

type jsonStore struct {
	fs       fs.Filesystem
	filepath string
	logger   log.Logger

	formatter *strftime.Strftime

	// Mutex to serialize access to the disk
	lock sync.Mutex
}

// New returns a store that keeps the log as a JSON array in a file.
func New(config Config) (store.Store, error) {
	s := &jsonStore{
		fs:       config.Filesystem,
		filepath: config.Filepath,
		logger:   config.Logger,
	}

	if len(s.filepath) == 0 {
		s.filepath = "/app_usage_log.json"
	}

	if s.fs == nil {
		return nil, fmt.Errorf("no valid filesystem provided")
	}

	if s.logger == nil {
		s.logger = log.New("")
	}

	s.logger = s.logger.WithField("file", s.filepath)

	formatter, err := strftime.New(timeFormat)
	if err != nil {
		return nil, err
	}

	s.formatter = formatter

	return s, nil
}

func (s *jsonStore) Append(e store.Entry) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	entries := s.load()

	entries = append(entries, entry{
		App:       e.App,
		Timestamp: s.formatter.FormatString(e.Timestamp),
		Action:    string(e.Action),
		Purpose:   e.Purpose,
	})

	if err := s.store(entries); err != nil {
		return fmt.Errorf("failed to store entry: %w", err)
	}

	return nil
}

func (s *jsonStore) ReadRecent(n int) ([]store.Entry, error) {
	s.lock.Lock()
	entries := s.load()
	s.lock.Unlock()

	list := make([]store.Entry, 0, len(entries))

	for _, e := range entries {
		ts, err := time.ParseInLocation(store.TimeLayout, e.Timestamp, time.Local)
		if err != nil {
			s.logger.Debug().WithError(err).WithField("timestamp", e.Timestamp).Log("Invalid timestamp")
		}

		list = append(list, store.Entry{
			App:       e.App,
			Timestamp: ts,
			Action:    store.Action(e.Action),
			Purpose:   e.Purpose,
		})
	}

	return store.Recent(list, n), nil
}

func (s *jsonStore) store(entries []entry) error {
	jsondata, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	_, _, err = s.fs.WriteFileSafe(s.filepath, jsondata)
	if err != nil {
		return err
	}

	s.logger.Debug().WithField("entries", len(entries)).Log("Stored log")

	return nil
}

// load reads all entries from the file. A missing, unreadable or corrupt
// file results in an empty log.
func (s *jsonStore) load() []entry {
	entries := []entry{}

	if _, err := s.fs.Stat(s.filepath); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn().WithError(err).Log("Log file is not accessible, starting with an empty log")
		}

		return entries
	}

	jsondata, err := s.fs.ReadFile(s.filepath)
	if err != nil {
		s.logger.Warn().WithError(err).Log("Reading log file failed, starting with an empty log")
		return entries
	}

	if err := json.Unmarshal(jsondata, &entries); err != nil {
		err = json.FormatError(jsondata, err)
		s.logger.Warn().WithError(err).Log("Log file is corrupt, starting with an empty log")
		return []entry{}
	}

	if entries == nil {
		entries = []entry{}
	}

	return entries
}
