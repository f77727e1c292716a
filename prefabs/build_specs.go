package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(l *Library, filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](l, filename)
}

// ResolveEnemy returns the component initializers of e, its prefab merged
// under its own components.
func (l *Library) ResolveEnemy(e EnemySpec) (EntityBuildSpec, error) {
	if e.Prefab == "" {
		return EntityBuildSpec{Components: e.Components}, nil
	}
	base, err := LoadEntityBuildSpec(l, e.Prefab)
	if err != nil {
		return EntityBuildSpec{}, err
	}
	if len(base.Components) == 0 {
		return EntityBuildSpec{}, fmt.Errorf("prefabs: prefab %q does not define components", e.Prefab)
	}
	return EntityBuildSpec{Name: base.Name, Components: MergeComponents(base.Components, e.Components)}, nil
}

// MergeComponents overlays components on base. Fields of a component given
// as a mapping in both are merged one level deep; anything else is replaced.
func MergeComponents(base, overlay map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		bm, okb := out[k].(map[string]any)
		om, oko := v.(map[string]any)
		if !okb || !oko {
			out[k] = v
			continue
		}
		merged := make(map[string]any, len(bm)+len(om))
		for f, fv := range bm {
			merged[f] = fv
		}
		for f, fv := range om {
			merged[f] = fv
		}
		out[k] = merged
	}
	return out
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type LocationComponentSpec struct {
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Facing string `yaml:"facing"`
}

type MovementComponentSpec struct {
	Distance int `yaml:"distance"`
}

type ScriptedMovementComponentSpec struct {
	Script   string `yaml:"script"`
	Distance int    `yaml:"distance"`
}

type RangedOrthoAttackComponentSpec struct {
	Horizontal bool   `yaml:"horizontal"`
	Vertical   bool   `yaml:"vertical"`
	Projectile string `yaml:"projectile"`
}

type IdleComponentSpec struct {
	Sprite       string   `yaml:"sprite"`
	Idle         string   `yaml:"idle"`
	Move         string   `yaml:"move"`
	Attack       string   `yaml:"attack"`
	Death        string   `yaml:"death"`
	Interrupting []string `yaml:"interrupting"`
}

type SnareComponentSpec struct {
	Radius int `yaml:"radius"`
}

type DormantComponentSpec struct {
	Moves int `yaml:"moves"`
}

type HealthComponentSpec struct {
	HP int `yaml:"hp"`
}
