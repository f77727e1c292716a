package prefabs

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidLevel = errors.New("prefabs: invalid level")

func LoadSpec[T any](l *Library, filename string) (T, error) {
	var zero T
	data, err := l.Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LevelSpec is a level descriptor.
type LevelSpec struct {
	Name    string      `yaml:"name"`
	Board   BoardSpec   `yaml:"board"`
	Stars   StarsSpec   `yaml:"stars"`
	Allies  []PointSpec `yaml:"allies"`
	Enemies []EnemySpec `yaml:"enemies"`
}

type BoardSpec struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Colors int    `yaml:"colors"`
	Seed   uint64 `yaml:"seed"`
}

// StarsSpec holds the move counts a win must stay within to earn three or
// two stars. Zero disables a threshold.
type StarsSpec struct {
	Three int `yaml:"three"`
	Two   int `yaml:"two"`
}

// Rate returns the stars a win in moves earns.
func (s StarsSpec) Rate(moves int) int {
	switch {
	case s.Three > 0 && moves <= s.Three:
		return 3
	case s.Two > 0 && moves <= s.Two:
		return 2
	default:
		return 1
	}
}

type PointSpec struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// EnemySpec is one enemy of a level. Components overlay the ones of Prefab
// when both are given.
type EnemySpec struct {
	Prefab     string         `yaml:"prefab"`
	Components map[string]any `yaml:"components"`
}

// ParseLevel decodes and validates a level descriptor. name is used when the
// descriptor does not carry one.
func ParseLevel(name string, data []byte) (LevelSpec, error) {
	var spec LevelSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return spec, fmt.Errorf("prefabs: unmarshal level %s: %w", name, err)
	}
	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(path.Base(name), path.Ext(name))
	}
	if err := spec.Validate(); err != nil {
		return spec, err
	}
	return spec, nil
}

// Validate checks what can be checked without building the level.
func (s LevelSpec) Validate() error {
	if s.Board.Width <= 0 || s.Board.Height <= 0 {
		return fmt.Errorf("%w: %s: board size %dx%d", ErrInvalidLevel, s.Name, s.Board.Width, s.Board.Height)
	}
	if s.Board.Colors < 2 {
		return fmt.Errorf("%w: %s: need at least 2 colors", ErrInvalidLevel, s.Name)
	}
	if len(s.Allies) == 0 {
		return fmt.Errorf("%w: %s: no allies", ErrInvalidLevel, s.Name)
	}
	if s.Stars.Three < 0 || s.Stars.Two < 0 {
		return fmt.Errorf("%w: %s: negative star threshold", ErrInvalidLevel, s.Name)
	}
	if s.Stars.Three > 0 && s.Stars.Two > 0 && s.Stars.Three > s.Stars.Two {
		return fmt.Errorf("%w: %s: three-star threshold %d above two-star %d", ErrInvalidLevel, s.Name, s.Stars.Three, s.Stars.Two)
	}
	for i, e := range s.Enemies {
		if e.Prefab == "" && len(e.Components) == 0 {
			return fmt.Errorf("%w: %s: enemy %d has neither prefab nor components", ErrInvalidLevel, s.Name, i)
		}
	}
	return nil
}
