// Package testhelper builds the helper programs the tests run as
// watched apps.
package testhelper

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
)

// BuildBinary compiles the helper program with the given name from the directory
// pathprefix/name into that directory and returns the path of the binary.
func BuildBinary(name, pathprefix string) (string, error) {
	dir := filepath.Join(pathprefix, name)
	aout := filepath.Join(dir, name)

	if runtime.GOOS == "windows" {
		aout += ".exe"
	}

	err := exec.Command("go", "build", "-o", aout, dir).Run()
	if err != nil {
		return "", fmt.Errorf("build command: %w", err)
	}

	return aout, nil
}
