package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FS holds the shipped level pack, enemy prefabs and movement scripts.
//
//go:embed levels/*.yaml enemies/*.yaml scripts/*.tengo
var FS embed.FS

// Library resolves prefab files. A file found under Dir on disk wins over the
// embedded copy, so levels can be edited without rebuilding.
type Library struct {
	Dir  string
	fsys fs.FS
}

// NewLibrary returns a library over the embedded pack with overrides read
// from dir. An empty dir disables overrides.
func NewLibrary(dir string) *Library {
	return NewLibraryFS(dir, FS)
}

func NewLibraryFS(dir string, fsys fs.FS) *Library {
	return &Library{Dir: dir, fsys: fsys}
}

func (l *Library) Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if l.Dir != "" {
		if data, err := os.ReadFile(l.diskPath(clean)); err == nil {
			return data, nil
		}
	}
	return fs.ReadFile(l.fsys, clean)
}

// LoadScript reads a movement script. "zigzag", "zigzag.tengo" and
// "scripts/zigzag.tengo" name the same file.
func (l *Library) LoadScript(name string) ([]byte, error) {
	return l.Load(cleanScriptPath(name))
}

func (l *Library) diskPath(clean string) string {
	return filepath.Join(l.Dir, filepath.FromSlash(clean))
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}
	s := cleanPrefabPath(path)
	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}
	if filepath.Ext(s) == "" {
		s += ".tengo"
	}
	return "scripts/" + s
}

func cleanLevelPath(name string) string {
	s := cleanPrefabPath(name)
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		s = after
	}
	if !isSpecFile(s) {
		s += ".yaml"
	}
	return "levels/" + s
}
