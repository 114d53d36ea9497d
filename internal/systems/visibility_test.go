package systems

import (
	"testing"

	"github.com/Viswas-Programs/survivreloaded-server/internal/domain"
)

func TestComputeVisibleRadius(t *testing.T) {
	w, ph := newTestWorld()
	viewer := spawnTestPlayer(w, ph, "viewer", domain.Vec2{X: 100, Y: 100})
	near := spawnTestPlayer(w, ph, "near", domain.Vec2{X: 110, Y: 100})
	far := spawnTestPlayer(w, ph, "far", domain.Vec2{X: 160, Y: 100})
	edge := spawnTestLoot(w, ph, "bandage", 1, domain.Vec2{X: 100 + viewer.ViewRadius, Y: 100})

	vis := ComputeVisible(w, viewer)

	if _, ok := vis[viewer.ID()]; !ok {
		t.Error("Expected viewer to always see itself")
	}
	if _, ok := vis[near.ID()]; !ok {
		t.Error("Expected near player visible")
	}
	if _, ok := vis[far.ID()]; ok {
		t.Error("Expected far player outside the view circle")
	}
	// Objects at the exact radius fall inside the margin
	if _, ok := vis[edge.ID()]; !ok {
		t.Error("Expected object at the radius edge visible")
	}
}

func TestComputeVisibleIsPure(t *testing.T) {
	w, ph := newTestWorld()
	viewer := spawnTestPlayer(w, ph, "viewer", domain.Vec2{X: 100, Y: 100})
	spawnTestPlayer(w, ph, "other", domain.Vec2{X: 105, Y: 100})
	w.ClearTick()

	_ = ComputeVisible(w, viewer)

	if len(w.FullDirty) != 0 || len(w.PartialDirty) != 0 || w.ObjectsChanged {
		t.Error("Expected visibility computation to leave the world untouched")
	}
}

func TestVisRecomputeThreshold(t *testing.T) {
	w, ph := newTestWorld()
	p := spawnTestPlayer(w, ph, "mover", domain.Vec2{X: 100, Y: 100})

	if NeedsVisRecompute(p) {
		t.Error("Expected no recompute before any movement")
	}

	// Accumulated movement crosses the threshold across several ticks
	p.Intent = domain.MoveIntent{Moving: true, Dir: domain.Vec2{X: 1}}
	UpdatePlayers(w)
	for i := 0; i < 2; i++ {
		w.Tick++
		ph.Step(w, tickDt)
	}

	if !NeedsVisRecompute(p) {
		t.Errorf("Expected recompute after %v units moved, threshold %v",
			p.MovedSinceVis, domain.VisMoveThreshold)
	}

	ResetVisMotion(p)
	if NeedsVisRecompute(p) {
		t.Error("Expected accumulator cleared after recompute")
	}
}
