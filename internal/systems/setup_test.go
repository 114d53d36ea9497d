package systems

import (
	"os"
	"testing"

	"github.com/Viswas-Programs/survivreloaded-server/internal/domain"
	"github.com/Viswas-Programs/survivreloaded-server/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()

	os.Exit(m.Run())
}

// tickDt is the simulation step used across the system tests (30ms).
const tickDt = 0.030

func newTestWorld() (*domain.World, *Physics) {
	w := domain.NewWorld(42, 200, domain.DefaultTable())
	ph := NewPhysics(PhysicsConfig{
		MapSize:        200,
		Matrix:         DefaultCollisionMatrix(),
		LootCorrection: 0.2,
		LootDrag:       0.9,
	})
	return w, ph
}

func spawnTestPlayer(w *domain.World, ph *Physics, name string, pos domain.Vec2) *domain.Player {
	p := domain.NewPlayer(w.NextID(), name, pos)
	p.ConnID = "conn-" + name
	w.Register(p)
	ph.AddBody(p)
	w.AliveCount++
	return p
}

// advanceTick runs the damage/weapon/player portion of the pipeline for
// one tick, the way the engine drives it.
func advanceTick(w *domain.World, ph *Physics) {
	w.Tick++
	ph.Step(w, tickDt)
	ResolveDamage(w, ph)
	UpdateWeapons(w, ph)
	UpdatePlayers(w)
	w.ClearTick()
}
