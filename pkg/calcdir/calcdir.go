// Package calcdir encapsulates all path knowledge for the .calcy/ project
// directory. It provides a Dir value object with accessors for the config
// file and the local (gitignored) runtime directory that holds the log.
package calcdir

import (
	"os"
	"path/filepath"
)

// FallbackConfigName is the config file looked up in the working directory
// when the .calcy/ directory has none.
const FallbackConfigName = "calcy.yaml"

// Dir is a value object that resolves paths within a .calcy/ directory.
type Dir struct {
	root string
}

// New creates a Dir rooted at the given path. The path is converted to an
// absolute path. No I/O is performed; use EnsureStructure to create the
// directory layout.
func New(root string) Dir {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}

	return Dir{root: abs}
}

// Root returns the absolute path to the .calcy/ directory.
func (d Dir) Root() string { return d.root }

// ConfigPath returns the path to the main config file.
func (d Dir) ConfigPath() string { return filepath.Join(d.root, "config.yaml") }

// LocalDir returns the path to the local (gitignored) runtime state directory.
func (d Dir) LocalDir() string { return filepath.Join(d.root, "local") }

// LogPath returns the default log file path inside local/.
func (d Dir) LogPath() string { return filepath.Join(d.root, "local", "calcy.log") }

// GitignorePath returns the path to the .gitignore file inside .calcy/.
func (d Dir) GitignorePath() string { return filepath.Join(d.root, ".gitignore") }

// Exists reports whether the .calcy/ root directory exists on disk.
func (d Dir) Exists() bool {
	info, err := os.Stat(d.root)

	return err == nil && info.IsDir()
}

// ResolveConfigPath picks the config file to load: an explicit path wins,
// then the directory's config.yaml, then calcy.yaml in the working
// directory. It returns "" when none of them exists.
func ResolveConfigPath(explicit string, d Dir) string {
	if explicit != "" {
		return explicit
	}

	for _, p := range []string{d.ConfigPath(), FallbackConfigName} {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}

	return ""
}
