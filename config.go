// Package git provides a high-level wrapper over a go-git object store.
// This file contains configuration retrieval with layered precedence.
package git

import (
	"context"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/go-git/go-git/v5/config"
)

// systemConfigPath is the system configuration layer location.
const systemConfigPath = "/etc/gitconfig"

// GlobalConfigPath returns the conventional location of the global
// configuration layer: $XDG_CONFIG_HOME/git/config when present, otherwise
// ~/.gitconfig. The backend resolves the layer it actually reads with its
// own path logic; this helper exists for display and error context.
func GlobalConfigPath() string {
	xdgPath := filepath.Join(xdg.ConfigHome, "git", "config")
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}

	return filepath.Join(xdg.Home, ".gitconfig")
}

// LoadConfig reads the merged repository configuration. Layers are applied
// with standard precedence: the repository's local configuration overrides
// the global layer (see GlobalConfigPath), which overrides the system layer.
// Missing global or system files are not errors; a malformed layer is.
func (r *Repo) LoadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := r.repo.ConfigScoped(config.SystemScope)
	if err != nil {
		return nil, WrapErrorf(ErrConfigInvalid,
			"could not load configuration (local %q, conventional global %q, system %q): %v",
			r.gitDir, GlobalConfigPath(), systemConfigPath, err)
	}

	return cfg, nil
}
