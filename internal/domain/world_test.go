package domain

import "testing"

func newTestWorld() *World {
	return NewWorld(1, 100, DefaultTable())
}

func TestIDAllocatorMonotonic(t *testing.T) {
	w := newTestWorld()

	prev := w.NextID()
	for i := 0; i < 100; i++ {
		id := w.NextID()
		if id <= prev {
			t.Fatalf("ID %d not greater than previous %d", id, prev)
		}
		prev = id
	}
	if w.LastID() != prev {
		t.Errorf("LastID = %d, want %d", w.LastID(), prev)
	}
}

func TestRegisterMarksNew(t *testing.T) {
	w := newTestWorld()
	p := NewPlayer(w.NextID(), "a", Vec2{X: 10, Y: 10})
	w.Register(p)

	if _, ok := w.Objects[p.ID()]; !ok {
		t.Fatal("Object not in registry")
	}
	if _, ok := w.Players[p.ID()]; !ok {
		t.Fatal("Player not in player index")
	}
	if _, ok := w.NewObjects[p.ID()]; !ok {
		t.Error("Registered object should be in NewObjects")
	}
	if !w.ObjectsChanged {
		t.Error("ObjectsChanged should be set")
	}
}

func TestMarkFullSkipsNewAndDeleted(t *testing.T) {
	w := newTestWorld()
	p := NewPlayer(w.NextID(), "a", Vec2{})
	w.Register(p)

	// Новый объект и так уйдет целиком
	w.MarkFull(p)
	if len(w.FullDirty) != 0 {
		t.Error("New object must not be duplicated in FullDirty")
	}

	w.ClearTick()
	w.Unregister(p)
	w.MarkFull(p)
	if len(w.FullDirty) != 0 {
		t.Error("Deleted object must not reappear in FullDirty")
	}
}

func TestMarkPartialIsWeakest(t *testing.T) {
	w := newTestWorld()
	p := NewPlayer(w.NextID(), "a", Vec2{})
	w.Register(p)
	w.ClearTick()

	// full побеждает partial независимо от порядка
	w.MarkPartial(p)
	w.MarkFull(p)
	if _, ok := w.PartialDirty[p.ID()]; ok {
		t.Error("MarkFull should evict the partial mark")
	}
	if _, ok := w.FullDirty[p.ID()]; !ok {
		t.Error("Object should be full dirty")
	}

	w.MarkPartial(p)
	if _, ok := w.PartialDirty[p.ID()]; ok {
		t.Error("MarkPartial must not downgrade a full mark")
	}
}

func TestMarkPartialRaisesObjectsChanged(t *testing.T) {
	w := newTestWorld()
	p := NewPlayer(w.NextID(), "a", Vec2{})
	w.Register(p)
	w.ClearTick()

	// A moving object can enter someone's view radius: even the weakest
	// mark must invalidate visible sets globally
	w.MarkPartial(p)
	if !w.ObjectsChanged {
		t.Error("MarkPartial should set ObjectsChanged")
	}
}

func TestUnregisterIdempotent(t *testing.T) {
	w := newTestWorld()
	p := NewPlayer(w.NextID(), "a", Vec2{})
	w.Register(p)
	w.ClearTick()

	w.MarkFull(p)
	w.Unregister(p)
	w.Unregister(p)

	if _, ok := w.Objects[p.ID()]; ok {
		t.Error("Object still in registry")
	}
	if len(w.FullDirty) != 0 || len(w.PartialDirty) != 0 || len(w.NewObjects) != 0 {
		t.Error("Deleted object must leave all dirty sets")
	}
	if _, ok := w.DeletedObjects[p.ID()]; !ok {
		t.Error("Object should be in DeletedObjects")
	}
}

func TestClearTickEmptiesEverything(t *testing.T) {
	w := newTestWorld()
	p := NewPlayer(w.NextID(), "a", Vec2{})
	w.Register(p)
	q := NewPlayer(w.NextID(), "b", Vec2{})
	w.Register(q)
	w.ClearTick()

	w.MarkFull(p)
	w.MarkPartial(q)
	w.Unregister(q)
	w.Kills = append(w.Kills, KillEvent{VictimID: q.ID()})
	w.AliveDirty = true

	w.ClearTick()

	if len(w.NewObjects)+len(w.FullDirty)+len(w.PartialDirty)+len(w.DeletedObjects) != 0 {
		t.Error("Dirty sets not empty after ClearTick")
	}
	if len(w.Kills) != 0 {
		t.Error("Kill feed not cleared")
	}
	if w.ObjectsChanged || w.AliveDirty {
		t.Error("Tick flags not cleared")
	}

	// Реестр очистка не трогает
	if _, ok := w.Objects[p.ID()]; !ok {
		t.Error("ClearTick must not touch the registry")
	}
}

func TestDecrementAliveNeverNegative(t *testing.T) {
	w := newTestWorld()
	w.AliveCount = 1

	if !w.DecrementAlive() {
		t.Error("First decrement should succeed")
	}
	if w.DecrementAlive() {
		t.Error("Decrement below zero should be refused")
	}
	if w.AliveCount != 0 {
		t.Errorf("AliveCount = %d, want 0", w.AliveCount)
	}
}

func TestDrainDamageEmptiesQueue(t *testing.T) {
	w := newTestWorld()
	p := NewPlayer(w.NextID(), "a", Vec2{})
	w.QueueDamage(DamageRecord{Target: p})
	w.QueueDamage(DamageRecord{Target: p})

	if got := len(w.DrainDamage()); got != 2 {
		t.Errorf("First drain = %d records, want 2", got)
	}
	if got := len(w.DrainDamage()); got != 0 {
		t.Errorf("Second drain = %d records, want 0", got)
	}
}
