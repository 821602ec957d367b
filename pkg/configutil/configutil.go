package configutil

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// localPath turns `dir/name.ext` into `dir/name.local.ext`.
func localPath(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + ".local" + ext
}

func readJson5[T any](path string) (T, bool, error) {
	var out T
	contents, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) || len(contents) == 0 {
		return out, false, nil
	}
	if err != nil {
		return out, false, err
	}
	err = json5.Unmarshal(contents, &out)
	if err != nil {
		return out, false, err
	}
	return out, true, nil
}

// ReadConfig reads a json5 configuration file, `name` should come with a file extension.
// the following files are merged, where a higher number is more prioritized.
//
// 0. `defaults`
// 1. <name>.<ext>
// 2. <name>.local.<ext>
//
// if neither file exists the error wraps os.ErrNotExist and `defaults` is returned.
func ReadConfig[T any](name string, defaults T) (T, error) {
	out := defaults

	base, found, err := readJson5[T](name)
	if err != nil {
		return out, err
	}
	if found {
		err = mergo.Merge(&out, base, mergo.WithOverride)
		if err != nil {
			return out, err
		}
	}

	local := localPath(name)
	override, foundLocal, err := readJson5[T](local)
	if err != nil {
		return out, err
	}
	if foundLocal {
		err = mergo.Merge(&out, override, mergo.WithOverride)
		if err != nil {
			return out, err
		}
		slog.Info("merging config with local overrides", "local", local)
	}

	if !found && !foundLocal {
		return out, &os.PathError{Op: "read config", Path: name, Err: os.ErrNotExist}
	}
	return out, nil
}
