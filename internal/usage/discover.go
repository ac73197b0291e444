package usage

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// jsonlFiles returns every *.jsonl file under root, sorted for a
// deterministic scan order. Walk errors skip the offending entry; a partial
// scan beats no report.
func jsonlFiles(root string) []string {
	return collectFiles(root, func(name string) bool {
		return filepath.Ext(name) == ".jsonl"
	})
}

// rolloutFiles returns Codex session logs (rollout-*.jsonl) under root.
func rolloutFiles(root string) []string {
	return collectFiles(root, func(name string) bool {
		return strings.HasPrefix(name, "rollout-") && filepath.Ext(name) == ".jsonl"
	})
}

func collectFiles(root string, match func(name string) bool) []string {
	var paths []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if match(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	sort.Strings(paths)
	return paths
}
