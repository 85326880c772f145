package nester

import (
	"math"
	"math/rand"

	"github.com/arl/assertgo"

	"github.com/piwi3910/SlabCut/internal/geom"
	"github.com/piwi3910/SlabCut/internal/model"
)

const annealSeed = 42

const (
	coolingAlpha  = 0.995
	maxOuterIters = 1000
	minInnerSweep = 50
)

// fullSnapshot is a copy of the whole nester state used for best-state
// tracking and for swapping in the best state during progress calls.
type fullSnapshot struct {
	placements []model.Placement
	placed     []geom.Polygon
	relInHole  []geom.Point
}

func (n *Nester) snapshotFull() fullSnapshot {
	return fullSnapshot{
		placements: append([]model.Placement(nil), n.placements...),
		placed:     append([]geom.Polygon(nil), n.placed...),
		relInHole:  append([]geom.Point(nil), n.relInHole...),
	}
}

func (n *Nester) restoreFull(s fullSnapshot) {
	n.placements = append([]model.Placement(nil), s.placements...)
	n.placed = append([]geom.Polygon(nil), s.placed...)
	n.relInHole = append([]geom.Point(nil), s.relInHole...)
}

// moveSnapshot is the pre-move state of one part, used to roll back an
// invalid or rejected move including its cascade.
type moveSnapshot struct {
	idx       int
	placement model.Placement
	placed    geom.Polygon
	relInHole geom.Point
}

func (n *Nester) snapshotMove(indices []int) []moveSnapshot {
	snaps := make([]moveSnapshot, len(indices))
	for i, idx := range indices {
		snaps[i] = moveSnapshot{
			idx:       idx,
			placement: n.placements[idx],
			placed:    n.placed[idx],
			relInHole: n.relInHole[idx],
		}
	}
	return snaps
}

func (n *Nester) restoreMove(snaps []moveSnapshot) {
	for _, s := range snaps {
		assert.True(s.idx >= 0 && s.idx < len(n.placements), "snapshot index %d out of range", s.idx)
		n.placements[s.idx] = s.placement
		n.placed[s.idx] = s.placed
		n.relInHole[s.idx] = s.relInHole
	}
}

// anneal runs the simulated-annealing loop described in the schedule:
// temperature starts at 0.3 x initial energy (skipped entirely if that
// is <= 0, e.g. when no sheet-level part has any geometry), cools
// geometrically, and
// each outer iteration sweeps max(50, 20*N) candidate moves.
func (n *Nester) anneal(candidates [][]holeCandidate) {
	N := len(n.parts)
	e := n.energy()
	if e <= 0 {
		return
	}

	rng := rand.New(rand.NewSource(annealSeed))

	t0 := 0.3 * e
	tmin := t0 * 1e-4
	innerSweeps := 20 * N
	if innerSweeps < minInnerSweep {
		innerSweeps = minInnerSweep
	}

	best := n.snapshotFull()
	bestEnergy := e
	temp := t0

	for outer := 0; outer < maxOuterIters && temp >= tmin; outer++ {
		for sweep := 0; sweep < innerSweeps; sweep++ {
			idx := rng.Intn(N)
			if len(n.polygons[idx]) == 0 {
				continue
			}

			newEnergy, ok := n.tryMove(rng, idx, candidates[idx], temp, t0, e)
			if ok {
				e = newEnergy
				if e < bestEnergy {
					bestEnergy = e
					best = n.snapshotFull()
				}
			}
		}

		keepGoing := true
		if n.progress != nil {
			current := n.snapshotFull()
			n.restoreFull(best)
			keepGoing = n.progress(outer+1, maxOuterIters)
			n.restoreFull(current)
		}
		if !keepGoing {
			break
		}

		temp *= coolingAlpha
	}

	n.restoreFull(best)
}

// tryMove proposes one move on part idx, validates it (and its
// cascaded descendants), and applies the Metropolis acceptance rule.
// It returns the resulting energy and whether the move was accepted;
// on rejection the nester is left exactly as it was.
func (n *Nester) tryMove(rng *rand.Rand, idx int, candidates []holeCandidate, temp, t0, e float64) (float64, bool) {
	affected := append([]int{idx}, n.descendants(idx)...)
	snaps := n.snapshotMove(affected)
	assert.True(len(snaps) == len(affected), "snapshot must cover every affected part before a move is attempted")

	stepFrac := math.Sqrt(temp / t0)
	sigmaTrans := stepFrac * 10.0
	sigmaRot := stepFrac * 180.0

	n.proposeMove(rng, idx, candidates, sigmaTrans, sigmaRot)
	n.cascade(idx)

	if !n.isValidSet(affected, n.kerf) {
		n.restoreMove(snaps)
		return e, false
	}

	newEnergy := n.energy()
	accept := newEnergy <= e || rng.Float64() < math.Exp(-(newEnergy-e)/temp)
	if !accept {
		n.restoreMove(snaps)
		return e, false
	}

	if n.placements[idx].HostPartIndex != model.SheetLevel {
		n.syncRelInHole(idx)
	}
	return newEnergy, true
}

// proposeMove mutates part idx in place according to the move-type
// draw: translate (60%), rotate (25%), or host-toggle (15%, falling
// back to translate when idx has no hole candidates).
func (n *Nester) proposeMove(rng *rand.Rand, idx int, candidates []holeCandidate, sigmaTrans, sigmaRot float64) {
	r := rng.Float64()

	switch {
	case r < 0.60:
		n.placements[idx].X += rng.NormFloat64() * sigmaTrans
		n.placements[idx].Y += rng.NormFloat64() * sigmaTrans
	case r < 0.85:
		n.placements[idx].Angle += rng.NormFloat64() * sigmaRot
	default:
		if len(candidates) == 0 {
			n.placements[idx].X += rng.NormFloat64() * sigmaTrans
			n.placements[idx].Y += rng.NormFloat64() * sigmaTrans
			break
		}
		if n.placements[idx].HostPartIndex == model.SheetLevel {
			c := candidates[rng.Intn(len(candidates))]
			centre := n.holeCentre(c.HostIndex, c.HoleIndex)
			x, y := centeredInHole(n.polygons[idx], n.placements[idx].Angle, centre)
			n.placements[idx].HostPartIndex = c.HostIndex
			n.placements[idx].HostHoleIndex = c.HoleIndex
			n.placements[idx].X = x
			n.placements[idx].Y = y
		} else {
			n.placements[idx].HostPartIndex = model.SheetLevel
			n.placements[idx].HostHoleIndex = 0
		}
	}

	n.refreshPlaced(idx)
}
