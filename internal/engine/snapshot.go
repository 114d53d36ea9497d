package engine

import (
	"math"

	"github.com/Viswas-Programs/survivreloaded-server/internal/domain"
	"github.com/Viswas-Programs/survivreloaded-server/internal/systems"
	"github.com/Viswas-Programs/survivreloaded-server/pkg/wire"
)

// Максимальный габарит препятствия в протоколе (квантование размеров).
const maxObstacleExtent = 16.0

// broadcastState строит и рассылает кадр текущего тика каждому
// соединению: дельта видимых объектов, затем события в фиксированном
// порядке Update -> AliveCount -> Kill* -> RoleAnnouncement* -> прочее.
func (s *Session) broadcastState() {
	w := s.World

	for connID, conn := range s.conns {
		p, ok := w.Players[conn.PlayerID]
		if !ok {
			continue
		}

		// Вошедшим в этом тике полное состояние уже отправлено.
		if conn.freshJoin {
			conn.freshJoin = false
			continue
		}

		frame := &wire.Writer{}

		vis := conn.Visible
		if w.ObjectsChanged || systems.NeedsVisRecompute(p) {
			vis = systems.ComputeVisible(w, p)
			systems.ResetVisMotion(p)
		}

		s.appendUpdate(frame, conn, p, vis)
		conn.Visible = vis

		if w.AliveDirty {
			s.appendAliveCount(frame)
		}
		for _, ev := range w.Kills {
			appendKill(frame, ev)
		}
		for _, a := range w.Announcements {
			appendRole(frame, a)
		}
		if w.Zone.Dirty {
			s.appendZone(frame)
		}
		for _, res := range w.PickupResults {
			if res.PlayerID == p.ID() {
				appendPickup(frame, res)
			}
		}
		for _, em := range w.Emotes {
			// Эмоции видят только те, у кого автор в наборе видимости.
			if _, seen := vis[em.PlayerID]; seen {
				appendEmote(frame, em)
			}
		}
		for _, ex := range w.Explosions {
			s.appendExplosion(frame, ex)
		}

		s.Hub.SendTo(connID, frame.Bytes())
	}
}

// appendUpdate пишет MsgUpdate: удаления (никогда не фильтруются по
// видимости), полные объекты, частичные дельты, блок владельца.
// Update уходит каждый тик, даже без дельт: блок владельца несет
// статы, а клиент сверяет номер тика по нему.
func (s *Session) appendUpdate(frame *wire.Writer, conn *connState, p *domain.Player, vis map[domain.ObjectID]struct{}) {
	w := s.World

	// Удаления: удаленные из мира плюс вышедшие из круга обзора.
	deleted := make(map[domain.ObjectID]struct{}, len(w.DeletedObjects))
	for id := range w.DeletedObjects {
		deleted[id] = struct{}{}
	}
	for id := range conn.Visible {
		if _, still := vis[id]; !still {
			deleted[id] = struct{}{}
		}
	}

	// Полные объекты: появившиеся в обзоре, новые и сильно измененные.
	full := make(map[domain.ObjectID]domain.GameObject)
	for id := range vis {
		if _, seen := conn.Visible[id]; !seen {
			if obj, ok := w.Objects[id]; ok {
				full[id] = obj
			}
		}
	}
	for id, obj := range w.NewObjects {
		if _, visible := vis[id]; visible {
			full[id] = obj
		}
	}
	for id, obj := range w.FullDirty {
		if _, visible := vis[id]; visible {
			full[id] = obj
		}
	}

	// Частичные дельты: позиция/анимация, если объект не ушел полным.
	partial := make(map[domain.ObjectID]domain.GameObject)
	for id, obj := range w.PartialDirty {
		if _, visible := vis[id]; !visible {
			continue
		}
		if _, sent := full[id]; sent {
			continue
		}
		partial[id] = obj
	}

	frame.WriteUint8(wire.MsgUpdate)
	frame.WriteUint32(uint32(w.Tick))

	frame.WriteUint16(uint16(len(deleted)))
	for id := range deleted {
		frame.WriteUint32(uint32(id))
	}

	frame.WriteUint16(uint16(len(full)))
	for _, obj := range full {
		s.writeFullObject(frame, obj)
	}

	frame.WriteUint16(uint16(len(partial)))
	for _, obj := range partial {
		s.writePartialObject(frame, obj)
	}

	s.writeOwnState(frame, p)
	frame.Align()
}

func (s *Session) writePos(frame *wire.Writer, pos domain.Vec2) {
	frame.WriteFloat(pos.X, 0, s.World.MapSize, wire.PosBits)
	frame.WriteFloat(pos.Y, 0, s.World.MapSize, wire.PosBits)
}

func writeDir(frame *wire.Writer, dir domain.Vec2) {
	frame.WriteFloat(dir.Angle(), -math.Pi, math.Pi, wire.DirBits)
}

// writeFullObject сериализует объект целиком. Формат зависит от вида;
// каждый объект выравнивается на границу байта, чтобы клиент мог
// пропускать неизвестные виды по длине.
func (s *Session) writeFullObject(frame *wire.Writer, obj domain.GameObject) {
	frame.WriteUint32(uint32(obj.ID()))
	frame.WriteBits(uint32(obj.Kind()), 2)
	frame.WriteBits(uint32(obj.Layer()), wire.LayerBits)
	s.writePos(frame, obj.Pos())

	switch o := obj.(type) {
	case *domain.Player:
		frame.WriteString(o.Name)
		writeDir(frame, o.Dir)
		frame.WriteBool(o.Dead)
		frame.WriteBits(uint32(o.Anim.Kind), 2)
		frame.WriteBits(uint32(o.ChestTier), 2)
		frame.WriteBits(uint32(o.HelmetTier), 2)
		frame.WriteBits(uint32(o.BackpackTier), 2)
		frame.Align()
		frame.WriteString(string(o.ActiveWeapon()))

	case *domain.Obstacle:
		frame.WriteString(o.Type)
		frame.WriteBool(o.Shape == domain.ShapeRect)
		frame.WriteBool(o.Dead)
		frame.WriteFloat(o.Radius, 0, maxObstacleExtent, 8)
		frame.WriteFloat(o.HalfW, 0, maxObstacleExtent, 8)
		frame.WriteFloat(o.HalfH, 0, maxObstacleExtent, 8)

	case *domain.Loot:
		frame.WriteString(string(o.Type))
		frame.WriteUint16(uint16(o.Count))
		// Зарезервированные флаги протокола.
		frame.WriteBool(o.IsOld)
		frame.WriteBool(o.Preloaded)
		frame.WriteBool(o.HasOwner)

	case *domain.Projectile:
		frame.WriteString(string(o.Weapon))
		writeDir(frame, o.Dir)
	}
	frame.Align()
}

// writePartialObject - только позиция, для игроков еще взгляд и анимация.
func (s *Session) writePartialObject(frame *wire.Writer, obj domain.GameObject) {
	frame.WriteUint32(uint32(obj.ID()))
	s.writePos(frame, obj.Pos())

	if p, ok := obj.(*domain.Player); ok {
		frame.WriteBool(true)
		writeDir(frame, p.Dir)
		frame.WriteBits(uint32(p.Anim.Kind), 2)
	} else {
		frame.WriteBool(false)
	}
	frame.Align()
}

// writeOwnState - приватный блок владельца соединения: точные статы,
// слоты, инвентарь. Другим игрокам эти данные не уходят.
func (s *Session) writeOwnState(frame *wire.Writer, p *domain.Player) {
	frame.WriteFloat(p.Health, 0, domain.MaxHealth, wire.StatBits)
	frame.WriteFloat(p.Boost, 0, domain.MaxBoost, wire.StatBits)
	frame.WriteUint8(uint8(p.Kills))
	frame.WriteBits(uint32(p.ActiveSlot), 2)
	frame.Align()
	for _, weapon := range p.Weapons {
		frame.WriteString(string(weapon))
	}
	frame.WriteString(string(p.Scope))

	frame.WriteUint8(uint8(len(p.Inventory)))
	for it, n := range p.Inventory {
		frame.WriteString(string(it))
		frame.WriteUint16(uint16(n))
	}

	frame.WriteBool(p.Action.Active)
	if p.Action.Active {
		frame.WriteString(string(p.Action.Item))
		frame.WriteUint32(uint32(p.Action.EndTick))
	}
}

// --- СОБЫТИЯ ---

func (s *Session) appendAliveCount(frame *wire.Writer) {
	frame.WriteUint8(wire.MsgAliveCount)
	frame.WriteUint16(uint16(s.World.AliveCount))
}

func appendKill(frame *wire.Writer, ev domain.KillEvent) {
	frame.WriteUint8(wire.MsgKill)
	frame.WriteUint32(uint32(ev.KillerID))
	frame.WriteUint32(uint32(ev.VictimID))
	frame.WriteString(ev.KillerName)
	frame.WriteString(ev.VictimName)
	frame.WriteString(string(ev.Weapon))
	frame.WriteUint8(uint8(ev.KillCount))
}

func appendRole(frame *wire.Writer, a domain.RoleAnnouncement) {
	frame.WriteUint8(wire.MsgRoleAnnouncement)
	frame.WriteUint32(uint32(a.PlayerID))
	frame.WriteString(a.Name)
	frame.WriteUint8(uint8(a.Role))
	frame.WriteBool(a.Assigned)
	frame.Align()
}

func appendPickup(frame *wire.Writer, res domain.PickupResult) {
	frame.WriteUint8(wire.MsgPickup)
	frame.WriteString(string(res.Item))
	frame.WriteUint16(uint16(res.Count))
	frame.WriteUint8(uint8(res.Status))
}

func appendEmote(frame *wire.Writer, em domain.EmoteEvent) {
	frame.WriteUint8(wire.MsgEmote)
	frame.WriteUint32(uint32(em.PlayerID))
	frame.WriteUint8(em.Type)
}

func (s *Session) appendExplosion(frame *wire.Writer, ex domain.ExplosionEvent) {
	frame.WriteUint8(wire.MsgExplosion)
	s.writePos(frame, ex.Pos)
	frame.WriteUint8(ex.Type)
	frame.Align()
}

func (s *Session) appendZone(frame *wire.Writer) {
	z := &s.World.Zone
	frame.WriteUint8(wire.MsgZone)
	frame.WriteUint8(uint8(z.Mode))
	frame.WriteUint8(uint8(z.Stage))
	s.writePos(frame, z.OldCenter)
	frame.WriteFloat(z.OldRadius, 0, s.World.MapSize, wire.PosBits)
	s.writePos(frame, z.NewCenter)
	frame.WriteFloat(z.NewRadius, 0, s.World.MapSize, wire.PosBits)
	frame.WriteUint32(uint32(z.StageStartTick))
	frame.WriteUint32(uint32(z.StageEndTick))
	frame.Align()
}

// --- ВХОД И КОНЕЦ МАТЧА ---

// sendJoinSequence отправляет вошедшему полное состояние одним буфером:
// подтверждение, карта, все видимые объекты, счетчик живых, зона.
func (s *Session) sendJoinSequence(conn *connState, p *domain.Player) {
	frame := &wire.Writer{}

	frame.WriteUint8(wire.MsgJoined)
	frame.WriteUint32(uint32(p.ID()))
	frame.WriteUint32(uint32(s.World.Tick))
	frame.WriteString(p.Name)

	frame.WriteUint8(wire.MsgMap)
	frame.WriteUint16(uint16(s.World.MapSize))
	frame.WriteUint32(uint32(s.World.Seed))
	frame.WriteUint32(uint32(s.World.Seed >> 32))

	vis := systems.ComputeVisible(s.World, p)
	systems.ResetVisMotion(p)

	frame.WriteUint8(wire.MsgUpdate)
	frame.WriteUint32(uint32(s.World.Tick))
	frame.WriteUint16(0) // удалений при входе не бывает
	frame.WriteUint16(uint16(len(vis)))
	for id := range vis {
		if obj, ok := s.World.Objects[id]; ok {
			s.writeFullObject(frame, obj)
		}
	}
	frame.WriteUint16(0) // частичных дельт при входе не бывает
	s.writeOwnState(frame, p)
	frame.Align()

	s.appendAliveCount(frame)
	if s.World.Zone.Mode != domain.ZoneInactive {
		s.appendZone(frame)
	}

	conn.Visible = vis
	conn.freshJoin = true
	s.Hub.SendTo(conn.ID, frame.Bytes())
}

// findWinner - последний живой игрок (nil при взаимном уничтожении).
func (s *Session) findWinner() *domain.Player {
	for _, p := range s.World.Players {
		if !p.Dead {
			return p
		}
	}
	return nil
}

func (s *Session) broadcastGameOver(winner *domain.Player) {
	frame := &wire.Writer{}
	frame.WriteUint8(wire.MsgGameOver)
	if winner != nil {
		frame.WriteUint32(uint32(winner.ID()))
		frame.WriteString(winner.Name)
		frame.WriteUint8(uint8(winner.Kills))
	} else {
		frame.WriteUint32(0)
		frame.WriteString("")
		frame.WriteUint8(0)
	}
	s.Hub.Broadcast(frame.Bytes())
}
