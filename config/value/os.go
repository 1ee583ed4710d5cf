package value

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// must directory

type MustDir string

func NewMustDir(p *string, val string) *MustDir {
	*p = val

	return (*MustDir)(p)
}

func (u *MustDir) Set(val string) error {
	*u = MustDir(val)
	return nil
}

func (u *MustDir) String() string {
	return string(*u)
}

func (u *MustDir) Validate() error {
	val := string(*u)

	if len(strings.TrimSpace(val)) == 0 {
		return fmt.Errorf("path name must not be empty")
	}

	finfo, err := os.Stat(val)
	if err != nil {
		return fmt.Errorf("%s does not exist", val)
	}

	if !finfo.IsDir() {
		return fmt.Errorf("%s is not a directory", val)
	}

	return nil
}

func (u *MustDir) IsEmpty() bool {
	return len(string(*u)) == 0
}

// file name without a directory

type Filename string

func NewFilename(p *string, val string) *Filename {
	*p = val

	return (*Filename)(p)
}

func (u *Filename) Set(val string) error {
	*u = Filename(val)
	return nil
}

func (u *Filename) String() string {
	return string(*u)
}

func (u *Filename) Validate() error {
	val := string(*u)

	if len(strings.TrimSpace(val)) == 0 {
		return fmt.Errorf("file name must not be empty")
	}

	if filepath.Base(val) != val || val == "." || val == ".." {
		return fmt.Errorf("%s must be a file name without a directory", val)
	}

	return nil
}

func (u *Filename) IsEmpty() bool {
	return len(string(*u)) == 0
}
