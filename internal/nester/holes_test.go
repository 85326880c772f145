package nester

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/SlabCut/internal/geom"
)

func TestBuildHoleCandidates_TightestFirst(t *testing.T) {
	n := New()
	n.AddPart(rectPartWithHole("host", 10, 10, 1, 1, 8, 8))
	n.AddPart(rectPart("tenant", 2, 2))
	n.cacheGeometry()

	candidates := n.buildHoleCandidates()
	require.Len(t, candidates[1], 1)
	assert.Equal(t, 0, candidates[1][0].HostIndex)
	assert.Equal(t, 0, candidates[1][0].HoleIndex)

	// The host itself has no candidate hole in a part that is not its own.
	assert.Empty(t, candidates[0])
}

func TestBuildHoleCandidates_TooBigIsExcluded(t *testing.T) {
	n := New()
	n.AddPart(rectPartWithHole("host", 10, 10, 1, 1, 3, 3))
	n.AddPart(rectPart("tooBig", 5, 5))
	n.cacheGeometry()

	candidates := n.buildHoleCandidates()
	assert.Empty(t, candidates[1])
}

func TestGreedyPrepass_PlacesTenantInHole(t *testing.T) {
	n := New()
	n.AddPart(rectPartWithHole("host", 10, 10, 1, 1, 8, 8))
	n.AddPart(rectPart("tenant", 2, 2))
	n.SetKerf(0)

	n.cacheGeometry()
	n.placements = n.ComputeInitialPlacement()
	n.placed = make([]geom.Polygon, len(n.parts))
	n.relInHole = make([]geom.Point, len(n.parts))
	for i := range n.parts {
		n.refreshPlaced(i)
	}

	candidates := n.buildHoleCandidates()
	n.greedyPrepass(candidates)

	tenant := n.placements[1]
	assert.Equal(t, 0, tenant.HostPartIndex)
	assert.Equal(t, 0, tenant.HostHoleIndex)
	assert.True(t, n.isValidSingle(1, 0))
}
