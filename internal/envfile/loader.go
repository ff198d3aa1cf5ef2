package envfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultFileName holds the default (unnamed) environment.
	DefaultFileName = ".env"
	fileSuffix      = ".env"
)

// Loader resolves environments to their variables.
type Loader interface {
	// LoadDefault reads the default environment.
	LoadDefault() (EnvMap, error)
	// Load reads a named environment. Any name, including the empty one,
	// is a named environment.
	Load(name string) (EnvMap, error)
}

// DirLoader loads environment files from a single directory.
type DirLoader struct {
	// Dir is the directory holding the files. When empty, the current
	// working directory at load time is used.
	Dir string
}

// NewDirLoader creates a loader rooted at dir.
func NewDirLoader(dir string) *DirLoader {
	return &DirLoader{Dir: dir}
}

// FileName maps an environment name to ".<name>.env", lowercased.
func FileName(name string) string {
	return "." + strings.ToLower(name) + fileSuffix
}

// Path returns the location of the named environment file.
func (l *DirLoader) Path(name string) (string, error) {
	return l.join(FileName(name))
}

// DefaultPath returns the location of the default environment file.
func (l *DirLoader) DefaultPath() (string, error) {
	return l.join(DefaultFileName)
}

// LoadDefault reads the default environment file.
func (l *DirLoader) LoadDefault() (EnvMap, error) {
	path, err := l.DefaultPath()
	if err != nil {
		return nil, err
	}
	return loadFile(path)
}

// Load reads the named environment file. A missing or unreadable file is an
// error; there is no fallback to an empty map.
func (l *DirLoader) Load(name string) (EnvMap, error) {
	path, err := l.Path(name)
	if err != nil {
		return nil, err
	}
	return loadFile(path)
}

func (l *DirLoader) join(fileName string) (string, error) {
	dir := l.Dir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("%w: resolve working directory: %w", ErrFileAccess, err)
		}
		dir = cwd
	}
	return filepath.Join(dir, fileName), nil
}

func loadFile(path string) (EnvMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	defer f.Close()

	env, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrFileAccess, path, err)
	}
	return env, nil
}
