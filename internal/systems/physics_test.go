package systems

import (
	"math"
	"testing"

	"github.com/Viswas-Programs/survivreloaded-server/internal/domain"
)

func spawnTestRock(w *domain.World, ph *Physics, pos domain.Vec2, radius float64) *domain.Obstacle {
	o := &domain.Obstacle{
		ObjectCommon: domain.ObjectCommon{ObjID: w.NextID(), Position: pos},
		Type:         "rock01",
		Shape:        domain.ShapeCircle,
		Radius:       radius,
	}
	w.Register(o)
	ph.AddBody(o)
	return o
}

func TestPlayerPushedOutOfObstacle(t *testing.T) {
	w, ph := newTestWorld()
	p := spawnTestPlayer(w, ph, "walker", domain.Vec2{X: 100, Y: 100})
	rock := spawnTestRock(w, ph, domain.Vec2{X: 103, Y: 100}, 2)

	// Walk straight into the rock for a while
	p.Vel = domain.Vec2{X: domain.PlayerSpeed}
	for i := 0; i < 10; i++ {
		ph.Step(w, tickDt)
	}

	// Separation is exact: distance settles at the sum of radii
	dist := p.Pos().DistanceTo(rock.Pos())
	minDist := domain.PlayerRadius + rock.Radius
	if dist < minDist-1e-6 {
		t.Errorf("Expected player outside the rock (dist >= %v), got %v", minDist, dist)
	}
	if dist > minDist+0.5 {
		t.Errorf("Expected player resting against the rock, got dist %v", dist)
	}
}

func TestPlayerClampedToArena(t *testing.T) {
	w, ph := newTestWorld()
	p := spawnTestPlayer(w, ph, "runner", domain.Vec2{X: 3, Y: 100})

	p.Vel = domain.Vec2{X: -domain.PlayerSpeed}
	for i := 0; i < 30; i++ {
		ph.Step(w, tickDt)
	}

	if p.Pos().X < domain.PlayerRadius {
		t.Errorf("Expected player held inside the arena, got x=%v", p.Pos().X)
	}
}

func TestBulletStoppedByWall(t *testing.T) {
	w, ph := newTestWorld()
	shooter := spawnTestPlayer(w, ph, "gunner", domain.Vec2{X: 5, Y: 100})

	wdef := w.Items.Weapon("m9")
	b := domain.NewProjectile(w.NextID(), shooter, wdef, domain.Vec2{X: 3, Y: 100}, domain.Vec2{X: -1}, 1)
	w.Register(b)
	ph.AddBody(b)

	for i := 0; i < 5; i++ {
		ph.Step(w, tickDt)
	}

	stopped := ph.DrainStopped()
	if len(stopped) != 1 || stopped[0].ID() != b.ID() {
		t.Fatalf("Expected bullet stopped by the arena wall, got %d stopped", len(stopped))
	}
	if len(w.DrainDamage()) != 0 {
		t.Error("Expected no damage record from a wall hit")
	}
}

func TestBulletStoppedByIndestructibleRock(t *testing.T) {
	w, ph := newTestWorld()
	shooter := spawnTestPlayer(w, ph, "gunner", domain.Vec2{X: 100, Y: 100})
	spawnTestRock(w, ph, domain.Vec2{X: 106, Y: 100}, 2)

	wdef := w.Items.Weapon("m9")
	b := domain.NewProjectile(w.NextID(), shooter, wdef, domain.Vec2{X: 102, Y: 100}, domain.Vec2{X: 1}, 1)
	w.Register(b)
	ph.AddBody(b)

	for i := 0; i < 5; i++ {
		ph.Step(w, tickDt)
	}

	if len(ph.DrainStopped()) != 1 {
		t.Error("Expected bullet stopped by the rock")
	}
	if len(w.DrainDamage()) != 0 {
		t.Error("Expected no damage record against an indestructible rock")
	}
}

func TestBulletPassesThroughOtherLayer(t *testing.T) {
	w, ph := newTestWorld()
	shooter := spawnTestPlayer(w, ph, "gunner", domain.Vec2{X: 100, Y: 100})
	below := spawnTestPlayer(w, ph, "cellar", domain.Vec2{X: 106, Y: 100})
	below.ObjLayer = domain.LayerBunker
	ph.RemoveBody(below.ID())
	ph.AddBody(below)

	wdef := w.Items.Weapon("m9")
	b := domain.NewProjectile(w.NextID(), shooter, wdef, domain.Vec2{X: 102, Y: 100}, domain.Vec2{X: 1}, 1)
	w.Register(b)
	ph.AddBody(b)

	for i := 0; i < 5; i++ {
		ph.Step(w, tickDt)
	}

	if len(w.DrainDamage()) != 0 {
		t.Error("Expected no contact across layers")
	}
	if below.Health != domain.MaxHealth {
		t.Errorf("Expected player on another layer untouched, got %v HP", below.Health)
	}
}

func TestBulletNoTunnelingAtHighSpeed(t *testing.T) {
	w, ph := newTestWorld()
	shooter := spawnTestPlayer(w, ph, "gunner", domain.Vec2{X: 100, Y: 100})
	victim := spawnTestPlayer(w, ph, "victim", domain.Vec2{X: 110, Y: 100})

	// A bullet covering ~3 units per tick must still register the hit
	wdef := w.Items.Weapon("ak47")
	b := domain.NewProjectile(w.NextID(), shooter, wdef, domain.Vec2{X: 102, Y: 100}, domain.Vec2{X: 1}, 1)
	w.Register(b)
	ph.AddBody(b)

	for i := 0; i < 6; i++ {
		ph.Step(w, tickDt)
	}

	records := w.DrainDamage()
	if len(records) != 1 {
		t.Fatalf("Expected exactly 1 contact, got %d", len(records))
	}
	if records[0].Target.ID() != victim.ID() {
		t.Errorf("Expected victim hit, got object %d", records[0].Target.ID())
	}
}

func TestLootPilesSeparate(t *testing.T) {
	w, ph := newTestWorld()
	a := spawnTestLoot(w, ph, "bandage", 1, domain.Vec2{X: 100, Y: 100})
	bp := spawnTestLoot(w, ph, "soda", 1, domain.Vec2{X: 100.2, Y: 100})

	for i := 0; i < 60; i++ {
		ph.Step(w, tickDt)
	}

	dist := a.Pos().DistanceTo(bp.Pos())
	if dist < domain.LootRadius*2-1e-6 {
		t.Errorf("Expected piles pushed apart to %v, got %v", domain.LootRadius*2, dist)
	}
}

func TestRemoveBodyIdempotent(t *testing.T) {
	w, ph := newTestWorld()
	p := spawnTestPlayer(w, ph, "ghost", domain.Vec2{X: 100, Y: 100})

	if !ph.HasBody(p.ID()) {
		t.Fatal("Expected body registered")
	}
	ph.RemoveBody(p.ID())
	ph.RemoveBody(p.ID()) // second removal is a no-op
	if ph.HasBody(p.ID()) {
		t.Error("Expected body gone")
	}
}

func TestSegmentCircleHit(t *testing.T) {
	from := domain.Vec2{X: 0, Y: 0}
	to := domain.Vec2{X: 10, Y: 0}

	hit, d := segmentCircleHit(from, to, domain.Vec2{X: 5, Y: 0.5}, 1)
	if !hit {
		t.Fatal("Expected segment to hit the circle")
	}
	if math.Abs(d-5) > 1.5 {
		t.Errorf("Expected contact distance near 5, got %v", d)
	}

	if hit, _ := segmentCircleHit(from, to, domain.Vec2{X: 5, Y: 3}, 1); hit {
		t.Error("Expected clean miss")
	}
}
