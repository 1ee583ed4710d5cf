package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/focusguard/core/log"
)

// MemConfig is the config that is required for creating
// a new memory filesystem.
type MemConfig struct {
	// Name of the filesystem, optional
	Name string

	// For logging, optional
	Logger log.Logger
}

type memFileInfo struct {
	name    string
	size    int64
	dir     bool
	lastMod time.Time
}

func (f *memFileInfo) Name() string {
	return f.name
}

func (f *memFileInfo) Size() int64 {
	return f.size
}

func (f *memFileInfo) ModTime() time.Time {
	return f.lastMod
}

func (f *memFileInfo) IsDir() bool {
	return f.dir
}

type memFile struct {
	data    []byte
	lastMod time.Time
}

type memFilesystem struct {
	name string

	files map[string]*memFile
	dirs  map[string]struct{}
	lock  sync.RWMutex

	logger log.Logger
}

// NewMemFilesystem creates a new filesystem in memory that implements
// the Filesystem interface.
func NewMemFilesystem(config MemConfig) (Filesystem, error) {
	fs := &memFilesystem{
		name:   config.Name,
		files:  map[string]*memFile{},
		dirs:   map[string]struct{}{"/": {}},
		logger: config.Logger,
	}

	if fs.logger == nil {
		fs.logger = log.New("")
	}

	fs.logger = fs.logger.WithField("type", "mem")

	return fs, nil
}

func (fs *memFilesystem) Name() string {
	return fs.name
}

func (fs *memFilesystem) Type() string {
	return "mem"
}

func (fs *memFilesystem) cleanPath(path string) string {
	return filepath.ToSlash(filepath.Clean("/" + path))
}

func (fs *memFilesystem) ReadFile(path string) ([]byte, error) {
	path = fs.cleanPath(path)

	fs.lock.RLock()
	defer fs.lock.RUnlock()

	file, ok := fs.files[path]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrNotExist)
	}

	data := make([]byte, len(file.data))
	copy(data, file.data)

	return data, nil
}

func (fs *memFilesystem) Stat(path string) (FileInfo, error) {
	path = fs.cleanPath(path)

	fs.lock.RLock()
	defer fs.lock.RUnlock()

	if file, ok := fs.files[path]; ok {
		return &memFileInfo{
			name:    path,
			size:    int64(len(file.data)),
			lastMod: file.lastMod,
		}, nil
	}

	if _, ok := fs.dirs[path]; ok {
		return &memFileInfo{
			name: path,
			dir:  true,
		}, nil
	}

	return nil, fmt.Errorf("%s: %w", path, ErrNotExist)
}

func (fs *memFilesystem) WriteFile(path string, data []byte) (int64, bool, error) {
	path = fs.cleanPath(path)

	fs.lock.Lock()
	defer fs.lock.Unlock()

	if _, ok := fs.dirs[path]; ok {
		return -1, false, fmt.Errorf("%s is a directory: %w", path, ErrExist)
	}

	_, replace := fs.files[path]

	file := &memFile{
		data:    make([]byte, len(data)),
		lastMod: time.Now(),
	}
	copy(file.data, data)

	fs.files[path] = file
	fs.mkdirAll(filepath.ToSlash(filepath.Dir(path)))

	fs.logger.Debug().WithFields(log.Fields{
		"path":       path,
		"size_bytes": len(data),
		"replace":    replace,
	}).Log("Wrote file")

	return int64(len(data)), !replace, nil
}

// WriteFileSafe is the same as WriteFile because the file is replaced
// atomically while holding the lock.
func (fs *memFilesystem) WriteFileSafe(path string, data []byte) (int64, bool, error) {
	return fs.WriteFile(path, data)
}

func (fs *memFilesystem) MkdirAll(path string, perm os.FileMode) error {
	path = fs.cleanPath(path)

	fs.lock.Lock()
	defer fs.lock.Unlock()

	if _, ok := fs.files[path]; ok {
		return fmt.Errorf("%s is a file: %w", path, ErrExist)
	}

	fs.mkdirAll(path)

	return nil
}

func (fs *memFilesystem) mkdirAll(path string) {
	for {
		fs.dirs[path] = struct{}{}

		if path == "/" {
			return
		}

		path = filepath.ToSlash(filepath.Dir(path))
		if !strings.HasPrefix(path, "/") {
			return
		}
	}
}

func (fs *memFilesystem) Remove(path string) int64 {
	path = fs.cleanPath(path)

	fs.lock.Lock()
	defer fs.lock.Unlock()

	file, ok := fs.files[path]
	if !ok {
		return -1
	}

	delete(fs.files, path)

	return int64(len(file.data))
}
