// Package luaspec evaluates Neovim-style Lua plugin spec files. Each file
// is expected to return either a single spec table or a list of specs, the
// shape lazy.nvim users already write under lua/plugins/. Only declarative
// fields are extracted; configuration callbacks stay opaque and are left
// for the editor to run.
package luaspec

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nvinit-dev/nvinit/internal/plugin"
)

// ErrNotASpec is returned when a Lua file does not return a spec table.
var ErrNotASpec = errors.New("lua file did not return a plugin spec table")

// LoadDir evaluates every .lua file in dir, sorted by name, and returns the
// collected specs. A missing directory yields no specs and no error.
func LoadDir(dir string) ([]plugin.Spec, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read spec directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var specs []plugin.Spec
	for _, name := range names {
		fileSpecs, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		specs = append(specs, fileSpecs...)
	}

	return specs, nil
}

// LoadFile evaluates one Lua file and returns the specs it declares.
func LoadFile(path string) ([]plugin.Spec, error) {
	L := lua.NewState()
	defer L.Close()

	if err := L.DoFile(path); err != nil {
		return nil, fmt.Errorf("failed to evaluate %s: %w", path, err)
	}

	ret := L.Get(-1)
	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: %s returned %s", ErrNotASpec, path, ret.Type())
	}

	specs, err := specsFromTable(tbl)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return specs, nil
}

// specsFromTable interprets a returned table as a single spec or a list.
// A table whose first element is itself a table, or that holds more than
// one positional element, is a list; otherwise it is one spec.
func specsFromTable(tbl *lua.LTable) ([]plugin.Spec, error) {
	first := tbl.RawGetInt(1)

	if _, isTable := first.(*lua.LTable); isTable || tbl.Len() > 1 {
		var specs []plugin.Spec
		var convErr error
		tbl.ForEach(func(key, value lua.LValue) {
			if convErr != nil {
				return
			}
			if _, ok := key.(lua.LNumber); !ok {
				return
			}
			spec, err := specFromValue(value)
			if err != nil {
				convErr = err
				return
			}
			specs = append(specs, spec)
		})
		if convErr != nil {
			return nil, convErr
		}
		return specs, nil
	}

	spec, err := specFromValue(tbl)
	if err != nil {
		return nil, err
	}
	return []plugin.Spec{spec}, nil
}

// specFromValue converts one list entry: a bare repo string or a spec table.
func specFromValue(value lua.LValue) (plugin.Spec, error) {
	switch v := value.(type) {
	case lua.LString:
		return plugin.Spec{Repo: string(v)}, nil

	case *lua.LTable:
		repo, ok := v.RawGetInt(1).(lua.LString)
		if !ok {
			return plugin.Spec{}, fmt.Errorf("%w: spec table has no repository string", ErrNotASpec)
		}

		spec := plugin.Spec{Repo: string(repo)}
		spec.Name = stringField(v, "name")
		spec.Pin = firstNonEmpty(
			stringField(v, "version"),
			stringField(v, "tag"),
			stringField(v, "branch"),
		)
		if opts, ok := v.RawGetString("opts").(*lua.LTable); ok {
			if m, ok := toGoValue(opts).(map[string]any); ok {
				spec.Opts = m
			}
		}
		return spec, nil

	default:
		return plugin.Spec{}, fmt.Errorf("%w: unexpected entry of type %s", ErrNotASpec, value.Type())
	}
}

func stringField(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// toGoValue converts a Lua value to its Go equivalent. Tables with only
// positional keys become slices, everything else becomes a string-keyed
// map. Functions and userdata are dropped.
func toGoValue(value lua.LValue) any {
	switch v := value.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		return float64(v)
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if v.Len() > 0 {
			var list []any
			for i := 1; i <= v.Len(); i++ {
				if item := toGoValue(v.RawGetInt(i)); item != nil {
					list = append(list, item)
				}
			}
			return list
		}
		m := make(map[string]any)
		v.ForEach(func(key, val lua.LValue) {
			ks, ok := key.(lua.LString)
			if !ok {
				return
			}
			if item := toGoValue(val); item != nil {
				m[string(ks)] = item
			}
		})
		return m
	default:
		return nil
	}
}
