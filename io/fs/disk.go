package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/focusguard/core/log"
)

// DiskConfig is the config required to create a new disk
// filesystem.
type DiskConfig struct {
	// Name of the filesystem, optional
	Name string

	// Dir is the base directory. All paths are relative to this
	// directory. If empty, paths are used as they are.
	Dir string

	// For logging, optional
	Logger log.Logger
}

// diskFileInfo implements the FileInfo interface
type diskFileInfo struct {
	name  string
	finfo os.FileInfo
}

func (fi *diskFileInfo) Name() string {
	return fi.name
}

func (fi *diskFileInfo) Size() int64 {
	return fi.finfo.Size()
}

func (fi *diskFileInfo) ModTime() time.Time {
	return fi.finfo.ModTime()
}

func (fi *diskFileInfo) IsDir() bool {
	return fi.finfo.IsDir()
}

// diskFilesystem implements the Filesystem interface
type diskFilesystem struct {
	name string
	dir  string

	logger log.Logger
}

// NewDiskFilesystem returns a new filesystem that is backed by a disk
// that implements the Filesystem interface
func NewDiskFilesystem(config DiskConfig) (Filesystem, error) {
	fs := &diskFilesystem{
		name:   config.Name,
		logger: config.Logger,
	}

	if fs.logger == nil {
		fs.logger = log.New("")
	}

	fs.logger = fs.logger.WithField("type", "disk")

	if len(config.Dir) != 0 {
		dir, err := filepath.Abs(config.Dir)
		if err != nil {
			return nil, err
		}

		finfo, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("the provided base path '%s' doesn't exist", dir)
		}

		if !finfo.IsDir() {
			return nil, fmt.Errorf("the provided base path '%s' must be a directory", dir)
		}

		fs.dir = dir
	}

	return fs, nil
}

func (fs *diskFilesystem) Name() string {
	return fs.name
}

func (fs *diskFilesystem) Type() string {
	return "disk"
}

func (fs *diskFilesystem) cleanPath(path string) string {
	if len(fs.dir) == 0 {
		return filepath.Clean(path)
	}

	return filepath.Join(fs.dir, filepath.Clean("/"+path))
}

func (fs *diskFilesystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(fs.cleanPath(path))
}

func (fs *diskFilesystem) Stat(path string) (FileInfo, error) {
	path = fs.cleanPath(path)

	finfo, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	return &diskFileInfo{
		name:  path,
		finfo: finfo,
	}, nil
}

func (fs *diskFilesystem) WriteFile(path string, data []byte) (int64, bool, error) {
	path = fs.cleanPath(path)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return -1, false, fmt.Errorf("creating file failed: %w", err)
	}

	_, err := os.Stat(path)
	isNew := os.IsNotExist(err)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return -1, false, fmt.Errorf("writing file failed: %w", err)
	}

	return int64(len(data)), isNew, nil
}

func (fs *diskFilesystem) WriteFileSafe(path string, data []byte) (int64, bool, error) {
	path = fs.cleanPath(path)
	dir, filename := filepath.Split(path)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return -1, false, fmt.Errorf("creating file failed: %w", err)
	}

	tmpfile, err := os.CreateTemp(dir, filename+".*.tmp")
	if err != nil {
		return -1, false, fmt.Errorf("creating temporary file failed: %w", err)
	}

	defer os.Remove(tmpfile.Name())

	size, err := tmpfile.Write(data)
	if err != nil {
		tmpfile.Close()
		return -1, false, fmt.Errorf("writing temporary file failed: %w", err)
	}

	if err := tmpfile.Sync(); err != nil {
		tmpfile.Close()
		return -1, false, fmt.Errorf("syncing temporary file failed: %w", err)
	}

	if err := tmpfile.Close(); err != nil {
		return -1, false, fmt.Errorf("closing temporary file failed: %w", err)
	}

	_, err = os.Stat(path)
	isNew := os.IsNotExist(err)

	if err := os.Rename(tmpfile.Name(), path); err != nil {
		return -1, false, fmt.Errorf("renaming temporary file failed: %w", err)
	}

	fs.logger.Debug().WithFields(log.Fields{
		"path":       path,
		"size_bytes": size,
	}).Log("Wrote file")

	return int64(size), isNew, nil
}

func (fs *diskFilesystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(fs.cleanPath(path), perm)
}

func (fs *diskFilesystem) Remove(path string) int64 {
	path = fs.cleanPath(path)

	finfo, err := os.Stat(path)
	if err != nil {
		return -1
	}

	size := finfo.Size()

	if err := os.Remove(path); err != nil {
		return -1
	}

	return size
}
