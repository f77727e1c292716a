package prefabs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const smallLevel = `
board: {width: 3, height: 3, colors: 3, seed: 9}
allies: [{x: 0, y: 0}]
enemies:
  - prefab: enemies/blob.yaml
    components:
      location: {x: 2, y: 2}
`

func testLibrary(dir string) *Library {
	return NewLibraryFS(dir, fstest.MapFS{
		"levels/small.yaml":  {Data: []byte(smallLevel)},
		"levels/broken.yaml": {Data: []byte("board: {width: 0}\n")},
		"enemies/blob.yaml": {Data: []byte(`
name: blob
components:
  location: {facing: left}
  dumb_movement: {distance: 1}
`)},
		"scripts/walk.tengo": {Data: []byte(`move = "right"`)},
	})
}

func TestParseLevelValidation(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{"ok", smallLevel, false},
		{"zero_size", "board: {width: 0, height: 3, colors: 3}\nallies: [{x: 0, y: 0}]\n", true},
		{"one_color", "board: {width: 3, height: 3, colors: 1}\nallies: [{x: 0, y: 0}]\n", true},
		{"no_allies", "board: {width: 3, height: 3, colors: 3}\n", true},
		{"stars_reversed", "board: {width: 3, height: 3, colors: 3}\nallies: [{x: 0, y: 0}]\nstars: {three: 5, two: 2}\n", true},
		{"empty_enemy", "board: {width: 3, height: 3, colors: 3}\nallies: [{x: 0, y: 0}]\nenemies: [{}]\n", true},
		{"bad_yaml", "board: [", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			spec, err := ParseLevel("levels/"+c.name+".yaml", []byte(c.yaml))
			if c.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.name, spec.Name, "name falls back to the file name")
		})
	}
}

func TestStarsRate(t *testing.T) {
	s := StarsSpec{Three: 3, Two: 6}
	assert.Equal(t, 3, s.Rate(1))
	assert.Equal(t, 3, s.Rate(3))
	assert.Equal(t, 2, s.Rate(4))
	assert.Equal(t, 1, s.Rate(7))
	assert.Equal(t, 1, StarsSpec{}.Rate(1))
}

func TestMergeComponents(t *testing.T) {
	base := map[string]any{
		"location":      map[string]any{"facing": "left"},
		"dumb_movement": map[string]any{"distance": 1},
	}
	overlay := map[string]any{
		"location":     map[string]any{"x": 2, "y": 2},
		"melee_attack": map[string]any{},
	}
	got := MergeComponents(base, overlay)
	assert.Equal(t, map[string]any{"facing": "left", "x": 2, "y": 2}, got["location"])
	assert.Equal(t, map[string]any{"distance": 1}, got["dumb_movement"])
	assert.Contains(t, got, "melee_attack")
	assert.Equal(t, map[string]any{"facing": "left"}, base["location"], "base untouched")
}

func TestResolveEnemy(t *testing.T) {
	l := testLibrary("")
	spec, err := l.LoadLevel("small")
	require.NoError(t, err)
	require.Len(t, spec.Enemies, 1)

	built, err := l.ResolveEnemy(spec.Enemies[0])
	require.NoError(t, err)
	assert.Equal(t, "blob", built.Name)

	loc, err := DecodeComponentSpec[LocationComponentSpec](built.Components["location"])
	require.NoError(t, err)
	assert.Equal(t, LocationComponentSpec{X: 2, Y: 2, Facing: "left"}, loc)

	_, err = l.ResolveEnemy(EnemySpec{Prefab: "enemies/missing.yaml"})
	assert.Error(t, err)
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "levels"), 0o755))
	override := "name: small\nboard: {width: 4, height: 4, colors: 3}\nallies: [{x: 1, y: 1}]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "levels", "small.yaml"), []byte(override), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "levels", "extra.yml"), []byte(override), 0o644))

	l := testLibrary(dir)
	spec, err := l.LoadLevel("levels/small.yaml")
	require.NoError(t, err)
	assert.Equal(t, 4, spec.Board.Width)

	names, err := l.LevelNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"broken", "extra", "small"}, names)
}

func TestLoadScript(t *testing.T) {
	l := testLibrary("")
	for _, name := range []string{"walk", "walk.tengo", "scripts/walk.tengo", "prefabs/scripts/walk.tengo"} {
		src, err := l.LoadScript(name)
		require.NoError(t, err, name)
		assert.Equal(t, `move = "right"`, string(src))
	}
}

func TestLoadLevels(t *testing.T) {
	l := testLibrary("")
	specs, err := l.LoadLevels(context.Background(), []string{"small", "small"})
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, "small", specs[1].Name)

	_, err = l.LoadLevels(context.Background(), []string{"small", "broken"})
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestShippedPackLoads(t *testing.T) {
	l := NewLibrary("")
	names, err := l.LevelNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)

	specs, err := l.LoadLevels(context.Background(), names)
	require.NoError(t, err)
	for _, spec := range specs {
		for i, e := range spec.Enemies {
			_, err := l.ResolveEnemy(e)
			assert.NoError(t, err, "%s enemy %d", spec.Name, i)
		}
	}
}

func TestWatcherReportsEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewLibraryFS(dir, fstest.MapFS{}).Watch()
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	target := filepath.Join(dir, "level.yaml")
	require.NoError(t, os.WriteFile(target, []byte("name: x\n"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, target, name)
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for the level file")
	}
}
