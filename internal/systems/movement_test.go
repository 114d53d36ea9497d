package systems

import (
	"math"
	"testing"

	"github.com/Viswas-Programs/survivreloaded-server/internal/domain"
)

func TestIntentToVelocity(t *testing.T) {
	w, ph := newTestWorld()
	p := spawnTestPlayer(w, ph, "runner", domain.Vec2{X: 100, Y: 100})

	p.Intent = domain.MoveIntent{Moving: true, Dir: domain.Vec2{X: 1, Y: 1}}
	UpdatePlayers(w)

	// Diagonal input is normalized: speed stays constant
	if got := p.Vel.Len(); math.Abs(got-domain.PlayerSpeed) > 1e-9 {
		t.Errorf("Expected speed %v, got %v", domain.PlayerSpeed, got)
	}

	// Absence of a new command means "keep going"
	UpdatePlayers(w)
	if p.Vel.Len() == 0 {
		t.Error("Expected intent to persist between ticks")
	}

	p.Intent = domain.MoveIntent{}
	UpdatePlayers(w)
	if p.Vel.Len() != 0 {
		t.Error("Expected velocity zeroed when not moving")
	}
}

func TestActionSlowsMovement(t *testing.T) {
	w, ph := newTestWorld()
	p := spawnTestPlayer(w, ph, "medic", domain.Vec2{X: 100, Y: 100})

	p.Intent = domain.MoveIntent{Moving: true, Dir: domain.Vec2{X: 1}}
	p.Health = 50 // healing at full HP would be rejected
	p.Inventory["bandage"] = 1
	if !StartConsumable(w, p, "bandage") {
		t.Fatal("Expected bandage use to start")
	}

	UpdatePlayers(w)
	want := domain.PlayerSpeed * actionSpeedFactor
	if math.Abs(p.Vel.Len()-want) > 1e-9 {
		t.Errorf("Expected slowed speed %v, got %v", want, p.Vel.Len())
	}
}

func TestBoostDecayThenRegen(t *testing.T) {
	w, ph := newTestWorld()
	p := spawnTestPlayer(w, ph, "boosted", domain.Vec2{X: 100, Y: 100})

	// Boost sits just above a band edge: the band must be read AFTER
	// decay, so this tick regenerates at the tier-1 rate
	p.Boost = domain.BoostTier1Max + domain.BoostDecayPerTick/2
	p.Health = 50

	UpdatePlayers(w)

	wantBoost := domain.BoostTier1Max - domain.BoostDecayPerTick/2
	if math.Abs(p.Boost-wantBoost) > 1e-9 {
		t.Errorf("Expected boost %v after decay, got %v", wantBoost, p.Boost)
	}
	wantHealth := 50 + domain.RegenTier1PerTick
	if math.Abs(p.Health-wantHealth) > 1e-9 {
		t.Errorf("Expected health %v (tier-1 regen), got %v", wantHealth, p.Health)
	}
}

func TestRegenClampsAtMaxHealth(t *testing.T) {
	w, ph := newTestWorld()
	p := spawnTestPlayer(w, ph, "boosted", domain.Vec2{X: 100, Y: 100})

	p.Boost = domain.MaxBoost
	p.Health = domain.MaxHealth - 0.01

	UpdatePlayers(w)

	if p.Health != domain.MaxHealth {
		t.Errorf("Expected health clamped at %v, got %v", domain.MaxHealth, p.Health)
	}
}

func TestBoostNeverNegative(t *testing.T) {
	w, ph := newTestWorld()
	p := spawnTestPlayer(w, ph, "boosted", domain.Vec2{X: 100, Y: 100})

	p.Boost = domain.BoostDecayPerTick / 4
	UpdatePlayers(w)

	if p.Boost != 0 {
		t.Errorf("Expected boost floored at 0, got %v", p.Boost)
	}
}

func TestConsumableAppliesOnceAtEnd(t *testing.T) {
	w, ph := newTestWorld()
	p := spawnTestPlayer(w, ph, "medic", domain.Vec2{X: 100, Y: 100})

	p.Health = 50
	p.Inventory["bandage"] = 2
	def := w.Items.Consumable("bandage")

	w.Tick = 10
	if !StartConsumable(w, p, "bandage") {
		t.Fatal("Expected bandage use to start")
	}

	// Nothing happens before EndTick
	w.Tick = 10 + def.UseTicks - 1
	UpdatePlayers(w)
	if p.Health != 50 {
		t.Errorf("Expected no heal before completion, got %v", p.Health)
	}
	if p.Inventory["bandage"] != 2 {
		t.Errorf("Expected item not consumed before completion, got %d", p.Inventory["bandage"])
	}

	// Effect and consumption land exactly at EndTick
	w.Tick = 10 + def.UseTicks
	UpdatePlayers(w)
	if p.Health != 50+def.Heal {
		t.Errorf("Expected health %v after bandage, got %v", 50+def.Heal, p.Health)
	}
	if p.Inventory["bandage"] != 1 {
		t.Errorf("Expected 1 bandage left, got %d", p.Inventory["bandage"])
	}
	if p.Action.Active {
		t.Error("Expected action cleared after completion")
	}

	// Subsequent ticks do not re-apply
	w.Tick++
	UpdatePlayers(w)
	if p.Health != 50+def.Heal || p.Inventory["bandage"] != 1 {
		t.Error("Expected consumable effect applied exactly once")
	}
}

func TestMedkitFullHeal(t *testing.T) {
	w, ph := newTestWorld()
	p := spawnTestPlayer(w, ph, "medic", domain.Vec2{X: 100, Y: 100})

	p.Health = 1
	p.Inventory["medkit"] = 1
	def := w.Items.Consumable("medkit")

	w.Tick = 1
	if !StartConsumable(w, p, "medkit") {
		t.Fatal("Expected medkit use to start")
	}
	w.Tick = 1 + def.UseTicks
	UpdatePlayers(w)

	if p.Health != domain.MaxHealth {
		t.Errorf("Expected full heal to %v, got %v", domain.MaxHealth, p.Health)
	}
}

func TestStartConsumableRejections(t *testing.T) {
	w, ph := newTestWorld()
	p := spawnTestPlayer(w, ph, "medic", domain.Vec2{X: 100, Y: 100})
	w.Tick = 1

	// No item in inventory
	if StartConsumable(w, p, "bandage") {
		t.Error("Expected start rejected without the item")
	}

	// Healing at full HP
	p.Inventory["bandage"] = 1
	if StartConsumable(w, p, "bandage") {
		t.Error("Expected heal rejected at full HP")
	}

	// Boost at full boost
	p.Inventory["soda"] = 1
	p.Boost = domain.MaxBoost
	if StartConsumable(w, p, "soda") {
		t.Error("Expected boost rejected at full boost")
	}

	// Another action already running
	p.Health = 50
	if !StartConsumable(w, p, "bandage") {
		t.Fatal("Expected bandage use to start")
	}
	p.Boost = 0
	if StartConsumable(w, p, "soda") {
		t.Error("Expected start rejected while another action runs")
	}
}

func TestAnimExpiryMarksFullDirty(t *testing.T) {
	w, ph := newTestWorld()
	p := spawnTestPlayer(w, ph, "puncher", domain.Vec2{X: 100, Y: 100})
	w.ClearTick()

	p.Anim = domain.PlayerAnim{Kind: domain.AnimMelee, EndTick: 5}

	w.Tick = 4
	UpdatePlayers(w)
	if p.Anim.Kind == domain.AnimNone {
		t.Error("Expected animation still running before EndTick")
	}

	w.Tick = 5
	UpdatePlayers(w)
	if p.Anim.Kind != domain.AnimNone {
		t.Error("Expected animation cleared at EndTick")
	}
	if _, ok := w.FullDirty[p.ID()]; !ok {
		t.Error("Expected actor full dirty on animation expiry")
	}
}
