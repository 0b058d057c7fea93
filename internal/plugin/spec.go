package plugin

import (
	"fmt"
	"path"
	"strings"

	"github.com/nvinit-dev/nvinit/internal/config"
)

// Spec is one plugin to keep installed under the Neovim data directory.
type Spec struct {
	// Repo is "owner/name" shorthand or a full git URL.
	Repo string

	// Pin fixes the plugin to a branch or tag. Empty means the default
	// branch.
	Pin string

	// Name overrides the install directory name derived from Repo.
	Name string

	// Opts is the plugin's own configuration table, carried verbatim and
	// never interpreted.
	Opts map[string]any
}

// FromDeclaration converts a config declaration into a Spec.
func FromDeclaration(d config.PluginDeclaration) Spec {
	return Spec{
		Repo: d.Repo,
		Pin:  d.Pin,
		Name: d.Name,
		Opts: d.Opts,
	}
}

// Validate checks the spec is usable.
func (s Spec) Validate() error {
	if strings.TrimSpace(s.Repo) == "" {
		return ErrMissingRepo
	}
	return nil
}

// DirName returns the install directory name: the explicit Name when set,
// otherwise the repository's base name.
func (s Spec) DirName() string {
	if s.Name != "" {
		return s.Name
	}
	base := path.Base(strings.TrimSuffix(s.Repo, ".git"))
	return base
}

// URL returns the clone URL. "owner/name" shorthand expands to GitHub.
func (s Spec) URL() string {
	if strings.Contains(s.Repo, "://") || strings.HasPrefix(s.Repo, "git@") {
		return s.Repo
	}
	return fmt.Sprintf("https://github.com/%s.git", s.Repo)
}

// Merge combines declared specs with specs gathered from Lua files.
// Order is preserved; on a directory-name collision the earlier entry wins,
// so YAML declarations take precedence over Lua specs when decls comes
// first.
func Merge(groups ...[]Spec) []Spec {
	seen := make(map[string]bool)
	var merged []Spec
	for _, group := range groups {
		for _, s := range group {
			name := s.DirName()
			if seen[name] {
				continue
			}
			seen[name] = true
			merged = append(merged, s)
		}
	}
	return merged
}
