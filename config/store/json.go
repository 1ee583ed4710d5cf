package store

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/focusguard/core/config"
	"github.com/focusguard/core/encoding/json"
	"github.com/focusguard/core/io/fs"
)

type jsonStore struct {
	fs   fs.Filesystem
	path string

	data map[string]*config.Config
	lock sync.RWMutex

	reloadFn func()
}

// NewJSON will read the JSON config file from the given path. After successfully reading it in, it will be written
// back to the path. The returned error will be nil if everything went fine. If the path doesn't exist, a default JSON
// config file will be written to that path. The returned Store can be used to retrieve or write the config.
func NewJSON(f fs.Filesystem, path string, reloadFn func()) (Store, error) {
	c := &jsonStore{
		fs:       f,
		data:     make(map[string]*config.Config),
		reloadFn: reloadFn,
	}

	if c.fs == nil {
		return nil, fmt.Errorf("no valid filesystem provided")
	}

	if len(path) == 0 {
		path = "/config.json"
	}

	if c.fs.Type() == "disk" {
		abspath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to determine absolute path of '%s': %w", path, err)
		}

		path = abspath
	}

	c.path = path

	c.data["base"] = config.New()

	if err := c.load(c.data["base"]); err != nil {
		return nil, fmt.Errorf("failed to read JSON from '%s': %w", c.path, err)
	}

	if err := c.store(c.data["base"]); err != nil {
		return nil, fmt.Errorf("failed to write JSON to '%s': %w", c.path, err)
	}

	return c, nil
}

func (c *jsonStore) Get() *config.Config {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.data["base"].Clone()
}

func (c *jsonStore) Set(d *config.Config) error {
	if d.HasErrors() {
		return fmt.Errorf("configuration data has errors after validation")
	}

	data := d.Clone()

	c.lock.Lock()
	defer c.lock.Unlock()

	if err := c.store(data); err != nil {
		return fmt.Errorf("failed to write JSON to '%s': %w", c.path, err)
	}

	c.data["base"] = data

	return nil
}

func (c *jsonStore) GetActive() *config.Config {
	c.lock.RLock()
	defer c.lock.RUnlock()

	if x, ok := c.data["merged"]; ok {
		return x.Clone()
	}

	if x, ok := c.data["base"]; ok {
		return x.Clone()
	}

	return nil
}

func (c *jsonStore) SetActive(d *config.Config) error {
	d.Validate(true)

	if d.HasErrors() {
		return fmt.Errorf("configuration data has errors after validation")
	}

	data := d.Clone()

	c.lock.Lock()
	c.data["merged"] = data
	c.lock.Unlock()

	return nil
}

func (c *jsonStore) Reload() error {
	if c.reloadFn == nil {
		return nil
	}

	c.reloadFn()

	return nil
}

func (c *jsonStore) load(cfg *config.Config) error {
	if _, err := c.fs.Stat(c.path); fs.IsNotExist(err) {
		return nil
	}

	jsondata, err := c.fs.ReadFile(c.path)
	if err != nil {
		return err
	}

	if len(jsondata) == 0 {
		return nil
	}

	version := DataVersion{}

	if err := json.Unmarshal(jsondata, &version); err != nil {
		return json.FormatError(jsondata, err)
	}

	if version.Version != cfg.Version {
		return fmt.Errorf("unsupported configuration layout version %d", version.Version)
	}

	if err := json.Unmarshal(jsondata, &cfg.Data); err != nil {
		return json.FormatError(jsondata, err)
	}

	cfg.UpdatedAt = cfg.CreatedAt

	return nil
}

func (c *jsonStore) store(data *config.Config) error {
	jsondata, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return err
	}

	_, _, err = c.fs.WriteFileSafe(c.path, jsondata)

	return err
}
