package config

// Config is the single declarative description of the development
// environment: editor preferences, plugin declarations, and the shell login
// profile. nvinit treats all of it as data; the only mechanism is making
// the declared state true on disk.
type Config struct {
	Version string        `json:"version"           yaml:"version"`
	Storage StorageConfig `json:"storage,omitempty" yaml:"storage,omitempty"`
	Editor  EditorConfig  `json:"editor,omitempty"  yaml:"editor,omitempty"`
	Plugins PluginsConfig `json:"plugins,omitempty" yaml:"plugins,omitempty"`
	Shell   ShellConfig   `json:"shell,omitempty"   yaml:"shell,omitempty"`
}

// StorageConfig holds filesystem locations.
type StorageConfig struct {
	// DataDir overrides the Neovim data directory (stdpath("data")).
	DataDir string `json:"data_dir,omitempty" yaml:"data_dir,omitempty"`
}

// EditorConfig holds declarative editor preferences. nvinit never
// interprets these; they are carried for rendering and inspection only.
type EditorConfig struct {
	Leader  string         `json:"leader,omitempty"  yaml:"leader,omitempty"`
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
	Keymaps []Keymap       `json:"keymaps,omitempty" yaml:"keymaps,omitempty"`
}

// Keymap is one keybinding declaration.
type Keymap struct {
	Mode string `json:"mode"           yaml:"mode"`
	Lhs  string `json:"lhs"            yaml:"lhs"`
	Rhs  string `json:"rhs"            yaml:"rhs"`
	Desc string `json:"desc,omitempty" yaml:"desc,omitempty"`
}

// PluginsConfig holds plugin declarations and where to find Lua spec files.
type PluginsConfig struct {
	// SpecsDir points at a directory of Neovim-style Lua spec files
	// (each returning a plugin spec table) merged with Declarations.
	SpecsDir     string              `json:"specs_dir,omitempty" yaml:"specs_dir,omitempty"`
	Declarations []PluginDeclaration `json:"declarations,omitempty" yaml:"declarations,omitempty"`
}

// PluginDeclaration declares one plugin to keep installed.
type PluginDeclaration struct {
	// Repo is either "owner/name" shorthand or a full git URL.
	Repo string `json:"repo" yaml:"repo"`

	// Pin fixes the plugin to a branch or tag. Empty means the
	// repository's default branch.
	Pin string `json:"pin,omitempty" yaml:"pin,omitempty"`

	// Name overrides the install directory name derived from Repo.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Opts is the plugin's own configuration table, carried verbatim.
	Opts map[string]any `json:"opts,omitempty" yaml:"opts,omitempty"`
}

// ShellConfig describes the rendered shell login profile.
type ShellConfig struct {
	// Profile is the file the rendered login profile is written to.
	Profile string `json:"profile,omitempty" yaml:"profile,omitempty"`

	// Exports are plain environment-variable exports.
	Exports map[string]string `json:"exports,omitempty" yaml:"exports,omitempty"`

	// Path lists PATH entries in priority order.
	Path []string `json:"path,omitempty" yaml:"path,omitempty"`

	// Hooks names tool integrations (fzf, nvm, pyenv, jenv) whose init
	// lines nvinit knows how to emit.
	Hooks []string `json:"hooks,omitempty" yaml:"hooks,omitempty"`

	// Extra holds raw profile lines appended verbatim after everything
	// else.
	Extra []string `json:"extra,omitempty" yaml:"extra,omitempty"`
}
