package store

import (
	"os"
	"path/filepath"
)

// Location returns the path to the config file. If no path is provided,
// different standard location will be probed:
// - os.UserConfigDir() + /focusguard/config.js
// - os.UserHomeDir() + /.config/focusguard/config.js
// - ./config/config.js
// The first existing file wins. If the config doesn't exist in none of
// these locations, it will be assumed at ./config/config.js
func Location(configfile string) string {
	if len(configfile) != 0 {
		return configfile
	}

	for _, path := range candidates() {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}

		configfile = path
		break
	}

	if len(configfile) == 0 {
		configfile = filepath.Join(".", "config", "config.js")
	}

	os.MkdirAll(filepath.Dir(configfile), 0740)

	return configfile
}

func candidates() []string {
	locations := []string{}

	if dir, err := os.UserConfigDir(); err == nil {
		locations = append(locations, filepath.Join(dir, "focusguard", "config.js"))
	}

	if dir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(dir, ".config", "focusguard", "config.js"))
	}

	return append(locations, filepath.Join(".", "config", "config.js"))
}
