package engine

import (
	"math"

	"github.com/Viswas-Programs/survivreloaded-server/internal/domain"
	"github.com/Viswas-Programs/survivreloaded-server/internal/systems"
)

// updateZone продвигает опасную зону на один тик: интерполяция границы
// в фазе сжатия, смена стадий по расписанию, урон за границей.
func (s *Session) updateZone() {
	if !s.Cfg.Zone.Enabled {
		return
	}
	z := &s.World.Zone
	tick := s.World.Tick

	switch z.Mode {
	case domain.ZoneInactive:
		// Первая стадия: граница - вся арена, цель - первое сжатие.
		center := domain.Vec2{X: s.World.MapSize / 2, Y: s.World.MapSize / 2}
		z.Mode = domain.ZoneWaiting
		z.Stage = 1
		z.OldCenter = center
		z.OldRadius = s.World.MapSize / 2
		z.CurrentCenter = z.OldCenter
		z.CurrentRadius = z.OldRadius
		s.scheduleShrink(tick)
		z.Dirty = true

	case domain.ZoneWaiting:
		if tick >= z.StageEndTick {
			z.Mode = domain.ZoneMoving
			z.StageStartTick = tick
			z.StageEndTick = tick + s.Cfg.Zone.MoveTicks
			z.Dirty = true
		}

	case domain.ZoneMoving:
		if tick >= z.StageEndTick {
			// Сжатие завершено: новая граница становится старой.
			z.OldCenter = z.NewCenter
			z.OldRadius = z.NewRadius
			z.CurrentCenter = z.NewCenter
			z.CurrentRadius = z.NewRadius
			z.Mode = domain.ZoneWaiting
			z.Stage++
			s.scheduleShrink(tick)
			z.Dirty = true
			break
		}
		// Линейная интерполяция границы от Old к New.
		t := float64(tick-z.StageStartTick) / float64(z.StageEndTick-z.StageStartTick)
		z.CurrentCenter = z.OldCenter.Add(z.NewCenter.Sub(z.OldCenter).Scale(t))
		z.CurrentRadius = z.OldRadius + (z.NewRadius-z.OldRadius)*t
	}

	s.applyZoneDamage()
}

// scheduleShrink выбирает следующую цель сжатия внутри текущей границы.
func (s *Session) scheduleShrink(tick uint64) {
	z := &s.World.Zone
	z.NewRadius = z.OldRadius * s.Cfg.Zone.ShrinkFactor

	// Новый центр - случайная точка, при которой новая граница
	// целиком лежит внутри старой.
	maxShift := z.OldRadius - z.NewRadius
	angle := s.World.Rng.Float64() * 2 * math.Pi
	shift := s.World.Rng.Float64() * maxShift
	z.NewCenter = z.OldCenter.Add(domain.DirFromAngle(angle).Scale(shift))

	z.StageStartTick = tick
	z.StageEndTick = tick + s.Cfg.Zone.WaitTicks

	// Урон растет с каждой стадией.
	z.DamagePerTick = s.Cfg.Zone.BaseDamagePerTick * float64(z.Stage)
}

// applyZoneDamage наносит урон всем живым игрокам за текущей границей.
// Идет через общий путь урона: смерть от зоны попадает в kill feed
// без атакующего.
func (s *Session) applyZoneDamage() {
	z := &s.World.Zone
	if z.Mode == domain.ZoneInactive || z.DamagePerTick <= 0 {
		return
	}
	for _, p := range s.World.Players {
		if p.Dead {
			continue
		}
		if p.Pos().DistanceTo(z.CurrentCenter) > z.CurrentRadius {
			systems.ApplyDamage(s.World, s.Physics, p, z.DamagePerTick, nil, "")
		}
	}
}
