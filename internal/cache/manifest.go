package cache

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultManifest is the fixed set of static asset paths pre-cached at
// install time, mirroring what the backend serves for the UI shell.
var DefaultManifest = []string{
	"/",
	"/index.html",
	"/manifest.json",
	"/css/**/*.css",
	"/js/**/*.js",
	"/icons/*.png",
}

// ExpandManifest resolves glob entries against the local static
// directory and passes literal entries through. Entries are returned
// sorted and deduplicated.
func ExpandManifest(staticDir string, patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	fsys := os.DirFS(staticDir)
	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[{") {
			add(pattern)
			continue
		}
		matches, err := doublestar.Glob(fsys, strings.TrimPrefix(pattern, "/"))
		if err != nil {
			return nil, fmt.Errorf("expanding manifest pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			add("/" + m)
		}
	}
	sort.Strings(out)
	return out, nil
}
