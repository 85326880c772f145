package model

import (
	"encoding/json"
	"fmt"

	"github.com/piwi3910/SlabCut/internal/geom"
)

// edgeJSON is the wire representation of the Edge tagged variant: a
// discriminator field plus the union of both variants' data.
type edgeJSON struct {
	Type          string       `json:"type"`
	Start         *geom.Point  `json:"start,omitempty"`
	End           *geom.Point  `json:"end,omitempty"`
	ControlPoints []geom.Point `json:"control_points,omitempty"`
	Knots         []float64    `json:"knots,omitempty"`
}

// MarshalJSON encodes the ring's edges as a tagged-union array.
func (r Ring) MarshalJSON() ([]byte, error) {
	out := make([]edgeJSON, len(r.Edges))
	for i, e := range r.Edges {
		switch v := e.(type) {
		case LineEdge:
			start, end := v.Start, v.End
			out[i] = edgeJSON{Type: "line", Start: &start, End: &end}
		case NurbsEdge:
			out[i] = edgeJSON{Type: "nurbs", ControlPoints: v.ControlPoints, Knots: v.Knots}
		default:
			return nil, fmt.Errorf("model: unknown edge type %T", v)
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a tagged-union array back into the ring's edges.
func (r *Ring) UnmarshalJSON(data []byte) error {
	var in []edgeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	edges := make([]Edge, 0, len(in))
	for _, e := range in {
		switch e.Type {
		case "nurbs":
			edges = append(edges, NurbsEdge{ControlPoints: e.ControlPoints, Knots: e.Knots})
		case "line":
			if e.Start == nil || e.End == nil {
				return fmt.Errorf("model: line edge missing start/end")
			}
			edges = append(edges, LineEdge{Start: *e.Start, End: *e.End})
		default:
			return fmt.Errorf("model: unknown edge type %q", e.Type)
		}
	}
	r.Edges = edges
	return nil
}
