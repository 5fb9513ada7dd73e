// Package assets decides when the Godot project needs a headless import.
package assets

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Norgate-AV/sgb/internal/utils"
	"github.com/Norgate-AV/sgb/internal/workspace"
)

// Entries lists one "<dir base name><relative path>:<mtime seconds>" line
// per regular file under dirs, skipping hidden entries, sorted. A dir that
// is itself a symlink is followed.
func Entries(dirs []string) ([]string, error) {
	var entries []string

	for _, dir := range dirs {
		base := filepath.Base(dir)

		root, err := filepath.EvalSymlinks(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve assets directory %s: %w", dir, err)
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if path != root && utils.IsHidden(d.Name()) {
				if d.IsDir() {
					return filepath.SkipDir
				}

				return nil
			}

			if !d.Type().IsRegular() {
				return nil
			}

			info, err := d.Info()
			if err != nil {
				return err
			}

			rel := filepath.ToSlash(strings.TrimPrefix(path, root))
			entries = append(entries, fmt.Sprintf("%s%s:%d", base, rel, info.ModTime().Unix()))

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan assets in %s: %w", dir, err)
		}
	}

	sort.Strings(entries)

	return entries, nil
}

// Checksum hashes the sorted entries of dirs
func Checksum(dirs []string) (string, error) {
	entries, err := Entries(dirs)
	if err != nil {
		return "", err
	}

	return workspace.StableHash(strings.Join(entries, "\n")), nil
}
