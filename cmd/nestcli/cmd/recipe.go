package cmd

import (
	"fmt"

	"github.com/piwi3910/SlabCut/internal/geom"
	"github.com/piwi3910/SlabCut/internal/model"
)

// recipe describes a nesting job in YAML: the parts to cut and the
// kerf to separate them by. It is the hand-authored alternative to
// importing a CSV/Excel/DXF file or loading a previously saved job.
type recipe struct {
	Kerf  float64      `yaml:"kerf"`
	Seed  int64        `yaml:"seed"`
	Parts []partRecipe `yaml:"parts"`
}

type partRecipe struct {
	Label string         `yaml:"label"`
	Rect  *rectRecipe    `yaml:"rect,omitempty"`
	Outer [][2]float64   `yaml:"outer,omitempty"`
	Holes [][][2]float64 `yaml:"holes,omitempty"`
}

type rectRecipe struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// loadRecipe reads a YAML nesting recipe from path.
func loadRecipe(path string) (recipe, error) {
	var r recipe
	if err := unmarshalYAMLFile(path, &r); err != nil {
		return recipe{}, fmt.Errorf("load recipe %s: %w", path, err)
	}
	return r, nil
}

// parts converts the recipe's part descriptions into model.Parts. Each
// part is either a rect (width/height) or an explicit outer polygon
// with optional hole polygons.
func (r recipe) parts() ([]model.Part, error) {
	out := make([]model.Part, 0, len(r.Parts))
	for i, pr := range r.Parts {
		label := pr.Label
		if label == "" {
			label = fmt.Sprintf("Part %d", i+1)
		}

		switch {
		case pr.Rect != nil:
			if pr.Rect.Width <= 0 || pr.Rect.Height <= 0 {
				return nil, fmt.Errorf("part %q: rect width/height must be positive", label)
			}
			out = append(out, model.NewPart(label, model.NewRectRing(0, 0, pr.Rect.Width, pr.Rect.Height)))
		case len(pr.Outer) >= 3:
			holes := make([]model.Ring, len(pr.Holes))
			for j, h := range pr.Holes {
				if len(h) < 3 {
					return nil, fmt.Errorf("part %q: hole %d has fewer than 3 points", label, j)
				}
				holes[j] = model.NewPolygonRing(toPoints(h))
			}
			out = append(out, model.NewPart(label, model.NewPolygonRing(toPoints(pr.Outer)), holes...))
		default:
			return nil, fmt.Errorf("part %q: must specify either rect or outer (>= 3 points)", label)
		}
	}
	return out, nil
}

func toPoints(pts [][2]float64) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = geom.Point{X: p[0], Y: p[1]}
	}
	return out
}
