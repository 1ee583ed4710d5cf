package glob

import (
	"strings"

	"github.com/gobwas/glob"
)

type Glob interface {
	Match(name string) bool
	Pattern() string
}

type globber struct {
	pattern string
	fold    bool
	glob    glob.Glob
}

func MustCompile(pattern string, separators ...rune) Glob {
	g := glob.MustCompile(pattern, separators...)

	return &globber{pattern: pattern, glob: g}
}

func Compile(pattern string, separators ...rune) (Glob, error) {
	g, err := glob.Compile(pattern, separators...)
	if err != nil {
		return nil, err
	}

	return &globber{pattern: pattern, glob: g}, nil
}

// CompileFold compiles a pattern that matches names without regard to case,
// e.g. "chrome*" matches "Chrome.exe".
func CompileFold(pattern string, separators ...rune) (Glob, error) {
	g, err := glob.Compile(strings.ToLower(pattern), separators...)
	if err != nil {
		return nil, err
	}

	return &globber{pattern: pattern, fold: true, glob: g}, nil
}

func (g *globber) Match(name string) bool {
	if g.fold {
		name = strings.ToLower(name)
	}

	return g.glob.Match(name)
}

func (g *globber) Pattern() string {
	return g.pattern
}

func IsPattern(pattern string) bool {
	index := strings.IndexAny(pattern, "*?[{")
	return index != -1
}

// Match returns whether the name matches the glob pattern, also considering
// one or several optionnal separator. An error is only returned if the pattern
// is invalid.
func Match(pattern, name string, separators ...rune) (bool, error) {
	g, err := Compile(pattern, separators...)
	if err != nil {
		return false, err
	}

	return g.Match(name), nil
}
