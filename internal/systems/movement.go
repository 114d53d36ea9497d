package systems

import (
	"github.com/sirupsen/logrus"

	"github.com/Viswas-Programs/survivreloaded-server/internal/domain"
	"github.com/Viswas-Programs/survivreloaded-server/pkg/logger"
)

// Замедление при применении расходника.
const actionSpeedFactor = 0.5

// UpdatePlayers - пер-игроковое обновление тика: намерение движения ->
// скорость, распад буста и регенерация, завершение длительных действий,
// истечение анимаций. Вызывается ПОСЛЕ боевой логики.
func UpdatePlayers(w *domain.World) {
	for _, p := range w.Players {
		if p.Dead {
			continue
		}
		applyIntent(p)
		updateVitals(w, p)
		finishAction(w, p)
		expireAnim(w, p)
	}
}

// applyIntent переводит последний принятый ввод в скорость этого тика.
// Ввод НЕ сбрасывается: отсутствие новой команды означает "продолжай".
func applyIntent(p *domain.Player) {
	if !p.Intent.Moving {
		p.Vel = domain.Vec2{}
		return
	}
	speed := domain.PlayerSpeed
	if p.Action.Active {
		speed *= actionSpeedFactor
	}
	p.Vel = p.Intent.Dir.Normalize().Scale(speed)
}

// updateVitals применяет распад буста и регенерацию HP.
// Порядок фиксирован: сначала распад, полоса регенерации читается по
// значению ПОСЛЕ распада, HP зажимается один раз в конце.
func updateVitals(w *domain.World, p *domain.Player) {
	if p.Boost <= 0 {
		return
	}

	p.Boost -= domain.BoostDecayPerTick
	if p.Boost < 0 {
		p.Boost = 0
	}

	var regen float64
	switch {
	case p.Boost <= 0:
		regen = 0
	case p.Boost <= domain.BoostTier1Max:
		regen = domain.RegenTier1PerTick
	case p.Boost <= domain.BoostTier2Max:
		regen = domain.RegenTier2PerTick
	case p.Boost <= domain.BoostTier3Max:
		regen = domain.RegenTier3PerTick
	default:
		regen = domain.RegenTier4PerTick
	}

	if regen > 0 && p.Health < domain.MaxHealth {
		p.Health += regen
		if p.Health > domain.MaxHealth {
			p.Health = domain.MaxHealth
		}
		w.MarkFull(p)
	} else {
		// Сам уровень буста виден владельцу - шлем слабую грязь.
		w.MarkPartial(p)
	}
}

// finishAction завершает длительное действие, когда тик достигает EndTick.
// Эффект применяется ровно один раз; предмет списывается в момент
// завершения, а не начала - прерванное действие ничего не тратит.
func finishAction(w *domain.World, p *domain.Player) {
	if !p.Action.Active || w.Tick < p.Action.EndTick {
		return
	}

	item := p.Action.Item
	p.Action = domain.PlayerAction{}

	def := w.Items.Consumable(item)
	if def == nil {
		logger.Log.WithFields(logrus.Fields{
			"component": "movement_system",
			"player_id": p.ID(),
			"item":      item,
		}).Error("finished action references unknown consumable")
		return
	}
	if p.Inventory[item] <= 0 {
		// Предмет выпал из инвентаря за время применения (смерть, дроп).
		return
	}
	p.Inventory[item]--

	if def.FullHeal {
		p.Health = domain.MaxHealth
	} else if def.Heal > 0 {
		p.Health += def.Heal
		if p.Health > domain.MaxHealth {
			p.Health = domain.MaxHealth
		}
	}
	if def.Boost > 0 {
		p.Boost += def.Boost
		if p.Boost > domain.MaxBoost {
			p.Boost = domain.MaxBoost
		}
	}
	w.MarkFull(p)

	logger.Log.WithFields(logrus.Fields{
		"component": "movement_system",
		"player_id": p.ID(),
		"item":      item,
	}).Debug("Consumable applied")
}

// expireAnim сбрасывает истекшую анимацию и помечает актора full dirty,
// чтобы наблюдатели увидели возврат в базовую позу.
func expireAnim(w *domain.World, p *domain.Player) {
	if p.Anim.Kind == domain.AnimNone || w.Tick < p.Anim.EndTick {
		return
	}
	p.Anim = domain.PlayerAnim{}
	w.MarkFull(p)
}
