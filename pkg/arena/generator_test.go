package arena

import (
	"os"
	"testing"

	"github.com/Viswas-Programs/survivreloaded-server/internal/domain"
	"github.com/Viswas-Programs/survivreloaded-server/internal/systems"
	"github.com/Viswas-Programs/survivreloaded-server/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func generateWorld(seed int64) *domain.World {
	w := domain.NewWorld(seed, 200, domain.DefaultTable())
	ph := systems.NewPhysics(systems.PhysicsConfig{
		MapSize:        200,
		Matrix:         systems.DefaultCollisionMatrix(),
		LootCorrection: 0.2,
		LootDrag:       0.9,
	})
	Generate(w, ph, Params{ObstacleCount: 60, LootSpawns: 30})
	return w
}

func TestGenerateIsDeterministic(t *testing.T) {
	a := generateWorld(7)
	b := generateWorld(7)

	if len(a.Objects) != len(b.Objects) {
		t.Fatalf("Object counts differ: %d vs %d", len(a.Objects), len(b.Objects))
	}

	for id, objA := range a.Objects {
		objB, ok := b.Objects[id]
		if !ok {
			t.Fatalf("Object %d missing in second world", id)
		}
		if objA.Pos() != objB.Pos() {
			t.Errorf("Object %d position differs: %v vs %v", id, objA.Pos(), objB.Pos())
		}
		if objA.Kind() != objB.Kind() {
			t.Errorf("Object %d kind differs", id)
		}
	}
}

func TestGenerateDiffersAcrossSeeds(t *testing.T) {
	a := generateWorld(1)
	b := generateWorld(2)

	same := 0
	for id, objA := range a.Objects {
		if objB, ok := b.Objects[id]; ok && objA.Pos() == objB.Pos() {
			same++
		}
	}
	if same == len(a.Objects) {
		t.Error("Different seeds produced identical arenas")
	}
}

func TestGenerateCounts(t *testing.T) {
	w := generateWorld(7)

	obstacles, loot := 0, 0
	for _, obj := range w.Objects {
		switch obj.Kind() {
		case domain.KindObstacle:
			obstacles++
		case domain.KindLoot:
			loot++
		}
	}
	if obstacles != 60 {
		t.Errorf("Obstacle count = %d, want 60", obstacles)
	}
	if loot != 30 {
		t.Errorf("Loot count = %d, want 30", loot)
	}
}

func TestGeneratedObjectsInsideBounds(t *testing.T) {
	w := generateWorld(7)

	for _, obj := range w.Objects {
		pos := obj.Pos()
		if pos.X < edgeMargin-1e-9 || pos.X > w.MapSize-edgeMargin+1e-9 ||
			pos.Y < edgeMargin-1e-9 || pos.Y > w.MapSize-edgeMargin+1e-9 {
			t.Errorf("Object %d at %v is outside placement margins", obj.ID(), pos)
		}
	}
}

func TestSpawnPointInsideArena(t *testing.T) {
	w := generateWorld(7)

	for i := 0; i < 50; i++ {
		pos := SpawnPoint(w)
		if pos.X < 0 || pos.X > w.MapSize || pos.Y < 0 || pos.Y > w.MapSize {
			t.Fatalf("Spawn point %v outside arena", pos)
		}
	}
}
