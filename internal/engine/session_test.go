package engine

import (
	"encoding/json"
	"testing"

	"github.com/Viswas-Programs/survivreloaded-server/internal/domain"
	"github.com/Viswas-Programs/survivreloaded-server/internal/systems"
	"github.com/Viswas-Programs/survivreloaded-server/pkg/api"
	"github.com/Viswas-Programs/survivreloaded-server/pkg/wire"
)

func TestJoinSendsJoinSequence(t *testing.T) {
	s := newTestSession(t)
	frames := drainFrames(join(t, s, "conn-a", "alice"))

	if len(frames) == 0 {
		t.Fatal("Expected join sequence frame, got none")
	}

	r := wire.NewReader(frames[0])
	if got := r.ReadUint8(); got != wire.MsgJoined {
		t.Fatalf("First message should be JOINED, got %d", got)
	}
	playerID := r.ReadUint32()
	if playerID == 0 {
		t.Error("Player ID should be non-zero")
	}
	r.ReadUint32() // tick
	if name := r.ReadString(); name != "alice" {
		t.Errorf("Expected name alice, got %q", name)
	}

	if s.World.AliveCount != 1 {
		t.Errorf("Alive count = %d, want 1", s.World.AliveCount)
	}
}

func TestJoinRejectedWhenMatchFull(t *testing.T) {
	s := newTestSession(t)
	s.Cfg.MaxPlayers = 1

	join(t, s, "conn-a", "alice")
	join(t, s, "conn-b", "bob")

	if len(s.conns) != 1 {
		t.Fatalf("Expected 1 connection, got %d", len(s.conns))
	}
	// Отклоненное соединение снимается с рассылки
	if s.Hub.HasSubscriber("conn-b") {
		t.Error("Rejected connection should be unsubscribed")
	}
	if s.World.AliveCount != 1 {
		t.Errorf("Alive count = %d, want 1", s.World.AliveCount)
	}
}

func TestCommandsApplyAtTickBoundary(t *testing.T) {
	s := newTestSession(t)
	join(t, s, "conn-a", "alice")

	payload, _ := json.Marshal(api.MovePayload{Dx: 1, Dy: 0})
	s.ProcessCommand("conn-a", api.ClientCommand{Action: "MOVE", Payload: payload})

	p := s.World.Players[s.conns["conn-a"].PlayerID]
	if p.Intent.Moving {
		t.Fatal("Command applied before tick boundary")
	}

	s.runTick()
	if !p.Intent.Moving || p.Intent.Dir.X != 1 {
		t.Errorf("Move intent not applied: %+v", p.Intent)
	}
}

func TestUnknownActionDropped(t *testing.T) {
	s := newTestSession(t)
	join(t, s, "conn-a", "alice")

	s.ProcessCommand("conn-a", api.ClientCommand{Action: "FLY"})
	if len(s.CommandChan) != 0 {
		t.Error("Unknown action should not be buffered")
	}
}

func TestDisconnectWithLootPersistsPlayer(t *testing.T) {
	s := newTestSession(t)
	join(t, s, "conn-a", "alice")

	p := s.World.Players[s.conns["conn-a"].PlayerID]
	p.Inventory["bandage"] = 3
	p.Intent = domain.MoveIntent{Moving: true, Dir: domain.Vec2{X: 1}}
	p.Firing = true

	s.LeaveChan <- "conn-a"
	s.runTick()

	kept, ok := s.World.Players[p.ID()]
	if !ok {
		t.Fatal("Player with loot should stay in the world after disconnect")
	}
	if kept.Connected() {
		t.Error("Persisted player should have no connection")
	}
	if kept.Intent.Moving || kept.Firing {
		t.Error("Input state should be cleared on disconnect")
	}
	if s.World.AliveCount != 1 {
		t.Errorf("Persisted player still counts as alive, got %d", s.World.AliveCount)
	}
}

func TestDisconnectWithEmptyInventoryRemovesPlayer(t *testing.T) {
	s := newTestSession(t)
	join(t, s, "conn-a", "alice")
	id := s.conns["conn-a"].PlayerID

	s.LeaveChan <- "conn-a"
	s.runTick()

	if _, ok := s.World.Players[id]; ok {
		t.Fatal("Player with empty inventory should be removed on disconnect")
	}
	if s.World.AliveCount != 0 {
		t.Errorf("Alive count = %d, want 0", s.World.AliveCount)
	}
}

func TestDirtySetsEmptyAfterEveryTick(t *testing.T) {
	s := newTestSession(t)
	join(t, s, "conn-a", "alice")
	join(t, s, "conn-b", "bob")

	payload, _ := json.Marshal(api.MovePayload{Dx: 1, Dy: 1})
	s.ProcessCommand("conn-a", api.ClientCommand{Action: "MOVE", Payload: payload})

	for i := 0; i < 5; i++ {
		s.runTick()

		w := s.World
		if len(w.NewObjects) != 0 || len(w.FullDirty) != 0 ||
			len(w.PartialDirty) != 0 || len(w.DeletedObjects) != 0 {
			t.Fatalf("Dirty sets not empty after tick %d", w.Tick)
		}
		if w.ObjectsChanged || w.AliveDirty {
			t.Fatalf("Tick flags not reset after tick %d", w.Tick)
		}
	}
}

func TestStationaryWatcherSeesApproachingWalker(t *testing.T) {
	s := newTestSession(t)
	join(t, s, "conn-a", "watcher")
	join(t, s, "conn-b", "walker")

	watcher := s.World.Players[s.conns["conn-a"].PlayerID]
	walker := s.World.Players[s.conns["conn-b"].PlayerID]

	// The walker starts just outside the watcher's view radius
	watcher.SetPos(domain.Vec2{X: 20, Y: 60})
	walker.SetPos(domain.Vec2{X: 20 + domain.DefaultViewRadius + 2, Y: 60})
	s.Physics.SyncPlayer(watcher)
	s.Physics.SyncPlayer(walker)
	watcher.MovedSinceVis = domain.VisMoveThreshold
	walker.MovedSinceVis = domain.VisMoveThreshold
	s.runTick()

	if _, seen := s.conns["conn-a"].Visible[walker.ID()]; seen {
		t.Fatal("Walker should start outside the watcher's view")
	}

	// The watcher never moves and accumulates no dirt of its own;
	// the walker closing the gap must still refresh the watcher's set
	walker.Intent = domain.MoveIntent{Moving: true, Dir: domain.Vec2{X: -1}}
	for i := 0; i < 40; i++ {
		s.runTick()
	}

	if _, seen := s.conns["conn-a"].Visible[walker.ID()]; !seen {
		t.Error("Walker inside the view radius never entered the watcher's visible set")
	}
}

func TestIdleTickStillSendsUpdate(t *testing.T) {
	s := newTestSession(t)
	frames := join(t, s, "conn-a", "alice")
	drainFrames(frames)

	// No movement, no dirt: the owner block still goes out every tick
	for i := 0; i < 3; i++ {
		s.runTick()
		got := drainFrames(frames)
		if len(got) != 1 {
			t.Fatalf("Expected exactly one frame per idle tick, got %d", len(got))
		}
		r := wire.NewReader(got[0])
		if msg := r.ReadUint8(); msg != wire.MsgUpdate {
			t.Fatalf("Expected UPDATE first, got message %d", msg)
		}
		if tick := r.ReadUint32(); tick != uint32(s.World.Tick) {
			t.Errorf("Expected tick %d in the frame, got %d", s.World.Tick, tick)
		}
	}
}

func TestGameOverDeclaresLastAlive(t *testing.T) {
	s := newTestSession(t)
	framesA := join(t, s, "conn-a", "alice")
	join(t, s, "conn-b", "bob")
	drainFrames(framesA)

	bob := s.World.Players[s.conns["conn-b"].PlayerID]
	systems.ApplyDamage(s.World, s.Physics, bob, 1000, nil, "ak47")
	s.runTick()

	if !s.gameOver {
		t.Fatal("Match should be over with one player alive")
	}

	var gameOver []byte
	for _, f := range drainFrames(framesA) {
		if wire.NewReader(f).ReadUint8() == wire.MsgGameOver {
			gameOver = f
		}
	}
	if gameOver == nil {
		t.Fatal("GAME_OVER frame not broadcast")
	}

	r := wire.NewReader(gameOver)
	r.ReadUint8()
	winnerID := r.ReadUint32()
	alice := s.World.Players[s.conns["conn-a"].PlayerID]
	if winnerID != uint32(alice.ID()) {
		t.Errorf("Winner = %d, want %d", winnerID, alice.ID())
	}
	if name := r.ReadString(); name != "alice" {
		t.Errorf("Winner name = %q, want alice", name)
	}
}

func TestSinglePlayerNeverEndsMatch(t *testing.T) {
	s := newTestSession(t)
	join(t, s, "conn-a", "alice")

	for i := 0; i < 10; i++ {
		s.runTick()
	}
	if s.gameOver {
		t.Error("Warmup with a single player must not end the match")
	}
}
