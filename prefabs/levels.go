package prefabs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// LoadLevel reads and validates a level by name ("tutorial") or file
// ("levels/tutorial.yaml").
func (l *Library) LoadLevel(name string) (LevelSpec, error) {
	clean := cleanLevelPath(name)
	data, err := l.Load(clean)
	if err != nil {
		return LevelSpec{}, fmt.Errorf("prefabs: load %s: %w", clean, err)
	}
	return ParseLevel(clean, data)
}

// LevelNames lists the levels of the pack, on-disk additions included.
func (l *Library) LevelNames() ([]string, error) {
	seen := map[string]bool{}
	matches, err := fs.Glob(l.fsys, "levels/*.yaml")
	if err != nil {
		return nil, err
	}
	for _, m := range matches {
		seen[levelName(m)] = true
	}
	if l.Dir != "" {
		entries, err := os.ReadDir(filepath.Join(l.Dir, "levels"))
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() && isSpecFile(entry.Name()) {
				seen[levelName(entry.Name())] = true
			}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// LoadLevels loads the named levels concurrently and returns them in the
// order given. The first failure cancels the rest.
func (l *Library) LoadLevels(ctx context.Context, names []string) ([]LevelSpec, error) {
	out := make([]LevelSpec, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			spec, err := l.LoadLevel(name)
			if err != nil {
				return err
			}
			out[i] = spec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func levelName(file string) string {
	base := path.Base(filepath.ToSlash(file))
	return strings.TrimSuffix(base, path.Ext(base))
}
