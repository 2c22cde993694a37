package calcdir

import (
	"errors"
	"fmt"
	"os"
)

const gitignoreContent = "local/\n"

// EnsureStructure creates the local/ directory and .gitignore file if they are
// missing. It is safe to call multiple times. It does NOT create the .calcy/
// root itself; the caller decides whether to bootstrap from scratch.
func EnsureStructure(d Dir) error {
	if err := os.MkdirAll(d.LocalDir(), 0o750); err != nil {
		return fmt.Errorf("calcdir: create local dir: %w", err)
	}

	if err := ensureGitignore(d); err != nil {
		return fmt.Errorf("calcdir: gitignore: %w", err)
	}

	return nil
}

// BootstrapWithConfig creates the .calcy/ root and its structure and writes
// config as config.yaml. An existing config file is left untouched.
func BootstrapWithConfig(d Dir, config []byte) error {
	if err := os.MkdirAll(d.Root(), 0o750); err != nil {
		return fmt.Errorf("calcdir: create root: %w", err)
	}

	if err := EnsureStructure(d); err != nil {
		return err
	}

	f, err := os.OpenFile(d.ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, os.ErrExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("calcdir: create config: %w", err)
	}

	if _, err := f.Write(config); err != nil {
		_ = f.Close()
		return fmt.Errorf("calcdir: write config: %w", err)
	}

	return f.Close()
}

// ensureGitignore creates the .gitignore file if it does not exist.
func ensureGitignore(d Dir) error {
	path := d.GitignorePath()

	if _, err := os.Stat(path); err == nil {
		return nil // already exists
	}

	return os.WriteFile(path, []byte(gitignoreContent), 0o600)
}
