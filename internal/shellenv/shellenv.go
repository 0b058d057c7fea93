// Package shellenv renders the shell login profile declared in the config:
// environment exports, PATH assembly, and init lines for the supported
// tool integrations. The rendered file is data for the user's shell; this
// package never executes any of it.
package shellenv

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/nvinit-dev/nvinit/internal/config"
	"github.com/nvinit-dev/nvinit/internal/xfs"
)

// ErrUnknownHook is returned for a hook name with no known init lines.
var ErrUnknownHook = errors.New("unknown shell hook")

const header = "# Generated by nvinit. Do not edit by hand.\n"

// hookLines holds the init lines emitted per tool integration. The tools
// themselves are external; these are the stanzas their installers document.
var hookLines = map[string][]string{
	"fzf": {
		`[ -f "$HOME/.fzf.bash" ] && source "$HOME/.fzf.bash"`,
	},
	"nvm": {
		`export NVM_DIR="$HOME/.nvm"`,
		`[ -s "$NVM_DIR/nvm.sh" ] && \. "$NVM_DIR/nvm.sh"`,
	},
	"pyenv": {
		`export PYENV_ROOT="$HOME/.pyenv"`,
		`[ -d "$PYENV_ROOT/bin" ] && export PATH="$PYENV_ROOT/bin:$PATH"`,
		`command -v pyenv >/dev/null && eval "$(pyenv init -)"`,
	},
	"jenv": {
		`export PATH="$HOME/.jenv/bin:$PATH"`,
		`command -v jenv >/dev/null && eval "$(jenv init -)"`,
	},
}

// Profile is the renderable shell profile.
type Profile struct {
	Exports map[string]string
	Path    []string
	Hooks   []string
	Extra   []string
}

// FromConfig builds a Profile from the shell section of the config.
func FromConfig(cfg config.ShellConfig) Profile {
	return Profile{
		Exports: cfg.Exports,
		Path:    cfg.Path,
		Hooks:   cfg.Hooks,
		Extra:   cfg.Extra,
	}
}

// Render produces the profile text. Exports are sorted so repeated renders
// of the same config are byte-identical.
func (p Profile) Render() (string, error) {
	var b strings.Builder
	b.WriteString(header)

	if len(p.Exports) > 0 {
		b.WriteString("\n")
		keys := make([]string, 0, len(p.Exports))
		for k := range p.Exports {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "export %s=%s\n", k, quote(p.Exports[k]))
		}
	}

	if entries := AssemblePath(p.Path); len(entries) > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "export PATH=\"%s:$PATH\"\n", strings.Join(entries, ":"))
	}

	for _, hook := range p.Hooks {
		lines, ok := hookLines[hook]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownHook, hook)
		}
		b.WriteString("\n# " + hook + "\n")
		for _, line := range lines {
			b.WriteString(line + "\n")
		}
	}

	if len(p.Extra) > 0 {
		b.WriteString("\n")
		for _, line := range p.Extra {
			b.WriteString(line + "\n")
		}
	}

	return b.String(), nil
}

// Write renders the profile and writes it to path atomically.
func (p Profile) Write(path string) error {
	text, err := p.Render()
	if err != nil {
		return err
	}
	if err := xfs.WriteFileAtomic(xfs.ExpandTilde(path), []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}

// AssemblePath normalizes PATH entries: first occurrence wins, duplicates
// and empty entries are dropped, and a leading tilde becomes $HOME so the
// shell expands it at login.
func AssemblePath(entries []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.HasPrefix(entry, "~/") {
			entry = "$HOME/" + entry[2:]
		} else if entry == "~" {
			entry = "$HOME"
		}
		if seen[entry] {
			continue
		}
		seen[entry] = true
		out = append(out, entry)
	}
	return out
}

// quote wraps a value in double quotes, escaping characters the shell
// would otherwise interpret. Values are literal: no expansion survives.
func quote(value string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		`$`, `\$`,
		"`", "\\`",
	)
	return `"` + replacer.Replace(value) + `"`
}
