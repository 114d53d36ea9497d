package systems

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/Viswas-Programs/survivreloaded-server/internal/domain"
	"github.com/Viswas-Programs/survivreloaded-server/pkg/logger"
	"github.com/Viswas-Programs/survivreloaded-server/pkg/utils"
)

// Снижение урона броней за тир (грудь сильнее шлема).
const (
	chestReductionPerTier  = 0.12
	helmetReductionPerTier = 0.06
)

// ResolveDamage выгребает очередь DamageRecord ровно один раз за тик,
// применяет урон через общий путь и уничтожает отработавшие пули.
// Вызывается ДО обработки намерений игроков.
func ResolveDamage(w *domain.World, ph *Physics) {
	for _, rec := range w.DrainDamage() {
		// Цель могла быть удалена этим же тиком (stale-reference):
		// проверяем присутствие перед любой мутацией.
		if _, live := w.Objects[rec.Target.ID()]; live {
			ApplyDamage(w, ph, rec.Target, rec.Bullet.Damage, rec.Attacker, rec.Bullet.Weapon)
		}
		DestroyBullet(w, ph, rec.Bullet)
	}

	// Пули, остановленные стенами и неразрушаемыми препятствиями.
	for _, b := range ph.DrainStopped() {
		DestroyBullet(w, ph, b)
	}
}

// DestroyBullet убирает пулю из живого набора ровно один раз.
// Повторный вызов для той же пули - no-op (защита от двойного урона).
func DestroyBullet(w *domain.World, ph *Physics, b *domain.Projectile) {
	if _, ok := w.Bullets[b.ID()]; !ok {
		return
	}
	ph.RemoveBody(b.ID())
	w.Unregister(b)
}

// ApplyDamage - единственный путь применения урона: пули, melee, зона.
// attacker может быть nil (урон зоны).
func ApplyDamage(w *domain.World, ph *Physics, target domain.GameObject, dmg float64, attacker *domain.Player, weapon domain.ItemType) {
	switch t := target.(type) {
	case *domain.Player:
		if t.Dead {
			return
		}
		reduction := float64(t.ChestTier)*chestReductionPerTier +
			float64(t.HelmetTier)*helmetReductionPerTier
		if reduction > 0.6 {
			reduction = 0.6
		}
		t.Health -= dmg * (1 - reduction)
		if t.Health <= 0 {
			t.Health = 0
			killPlayer(w, ph, t, attacker, weapon)
			return
		}
		w.MarkFull(t)

	case *domain.Obstacle:
		if t.Dead || !t.Destructible {
			return
		}
		t.Health -= dmg
		if t.Health <= 0 {
			t.Health = 0
			t.Dead = true
			destroyObstacle(w, ph, t)
			return
		}
		w.MarkFull(t)

	default:
		// Инвариантный дефект: урон по объекту, который не бывает целью.
		logger.Log.WithFields(logrus.Fields{
			"component": "combat_system",
			"object_id": target.ID(),
			"kind":      target.Kind().String(),
		}).Error("damage applied to non-damageable kind, skipping")
	}
}

func destroyObstacle(w *domain.World, ph *Physics, o *domain.Obstacle) {
	ph.RemoveBody(o.ID())
	w.Unregister(o)

	// Дроп из разрушенного препятствия (ящики).
	if o.LootDrop != "" && o.LootCount > 0 {
		SpawnLoot(w, ph, o.LootDrop, o.LootCount, o.Pos())
	}
}

// SpawnLoot создает стопку лута и её тело. Общий путь для дропа
// с препятствий, трупов и вытесненной брони.
func SpawnLoot(w *domain.World, ph *Physics, it domain.ItemType, count int, pos domain.Vec2) *domain.Loot {
	loot := domain.NewLoot(w.NextID(), it, count, pos)
	// Небольшой разлёт, чтобы стопки не рождались в одной точке.
	loot.Vel = domain.DirFromAngle(w.Rng.Float64() * 2 * math.Pi).Scale(2.5)
	w.Register(loot)
	ph.AddBody(loot)
	return loot
}

func killPlayer(w *domain.World, ph *Physics, victim *domain.Player, attacker *domain.Player, weapon domain.ItemType) {
	killLogger := logger.Log.WithFields(logrus.Fields{
		"component": "combat_system",
		"victim_id": victim.ID(),
	})

	victim.Dead = true
	victim.Firing = false
	victim.FirePressed = false
	victim.Intent = domain.MoveIntent{}
	victim.Vel = domain.Vec2{}
	victim.Action = domain.PlayerAction{}
	victim.Anim = domain.PlayerAnim{}

	ph.RemoveBody(victim.ID())
	w.MarkFull(victim)

	if !w.DecrementAlive() {
		killLogger.Error("alive count underflow on death, skipping decrement")
	}

	// Труп отдает инвентарь и оружие.
	dropPlayerLoadout(w, ph, victim)

	ev := domain.KillEvent{
		VictimID:   victim.ID(),
		VictimName: victim.Name,
		Weapon:     weapon,
	}
	if attacker != nil && attacker != victim {
		attacker.Kills++
		w.MarkFull(attacker)
		ev.KillerID = attacker.ID()
		ev.KillerName = attacker.Name
		ev.KillCount = attacker.Kills

		if w.UpdateKillLeader(attacker) {
			w.Announcements = append(w.Announcements, domain.RoleAnnouncement{
				PlayerID: attacker.ID(),
				Name:     attacker.Name,
				Role:     domain.RoleKillLeader,
				Assigned: true,
			})
		}
		killLogger = killLogger.WithFields(logrus.Fields{
			"killer_id":  attacker.ID(),
			"kill_count": attacker.Kills,
		})
	}
	w.Kills = append(w.Kills, ev)

	// Смерть действующего kill leader освобождает роль.
	if victim.ID() == w.KillLeaderID {
		w.KillLeaderID = 0
		w.KillLeaderNum = 0
		w.Announcements = append(w.Announcements, domain.RoleAnnouncement{
			PlayerID: victim.ID(),
			Name:     victim.Name,
			Role:     domain.RoleKillLeader,
			Assigned: false,
		})
	}

	killLogger.Info("Player eliminated")
}

// dropPlayerLoadout высыпает инвентарь, оружие и броню трупа на землю.
func dropPlayerLoadout(w *domain.World, ph *Physics, p *domain.Player) {
	for it, n := range p.Inventory {
		if n > 0 {
			SpawnLoot(w, ph, it, n, p.Pos())
		}
	}
	clear(p.Inventory)

	for slot, it := range p.Weapons {
		if it != "" && it != domain.ItemFists {
			SpawnLoot(w, ph, it, 1, p.Pos())
			p.Weapons[slot] = ""
		}
	}
	p.Weapons[domain.MeleeSlot] = domain.ItemFists
	p.ActiveSlot = domain.MeleeSlot
}

// UpdateWeapons обрабатывает огонь всех активных игроков.
// Оружие стреляет один раз на явное нажатие, либо повторно при зажатом
// курке, если оно автоматическое и кулдаун истек.
func UpdateWeapons(w *domain.World, ph *Physics) {
	for _, p := range w.Players {
		if p.Dead || !p.Connected() {
			continue
		}
		wdef := w.Items.Weapon(p.ActiveWeapon())
		if wdef == nil {
			continue
		}

		wantFire := p.FirePressed || (p.Firing && wdef.Auto)
		if !wantFire {
			continue
		}
		if p.LastFireTick != 0 && w.Tick < p.LastFireTick+wdef.CooldownTicks {
			continue
		}
		p.FirePressed = false

		switch wdef.Category {
		case domain.CategoryMelee:
			fireMelee(w, ph, p, wdef)
		case domain.CategoryGun:
			fireGun(w, ph, p, wdef)
		default:
			continue
		}
		p.LastFireTick = w.Tick
	}
}

// fireMelee - мгновенный удар: замах-анимация плюс поиск ближайшей
// пересекаемой цели у точки удара.
func fireMelee(w *domain.World, ph *Physics, p *domain.Player, wdef *domain.WeaponDef) {
	if p.Animating(w.Tick) {
		return
	}

	// Замах считается в тиках; по истечении анимация сбрасывается,
	// а игрок помечается full dirty (см. movement).
	p.Anim = domain.PlayerAnim{Kind: domain.AnimMelee, EndTick: w.Tick + wdef.AnimTicks}
	w.MarkPartial(p)

	dir := p.Dir.Normalize()
	if dir.X == 0 && dir.Y == 0 {
		dir = domain.Vec2{X: 1}
	}
	hitPoint := p.Pos().Add(dir.Scale(wdef.AttackOffset))

	target := closestMeleeTarget(w, p, hitPoint, wdef.AttackRadius)
	if target == nil {
		return
	}
	if target.Damageable() {
		ApplyDamage(w, ph, target, wdef.Damage, p, wdef.Type)
	}
	// Удар по интерактивному объекту срабатывает как взаимодействие:
	// накрытая ударом стопка лута подбирается.
	if loot, ok := target.(*domain.Loot); ok && loot.Interactable() {
		res := TryPickup(w, ph, p, loot)
		w.PickupResults = append(w.PickupResults, res)
	}
}

// closestMeleeTarget перебирает повреждаемые и интерактивные объекты
// и выбирает цель с минимальной дистанцией, пересекающую круг удара.
// Тесты дистанции зависят от формы: круг-круг для игроков и лута,
// круг-круг/прямоугольник для препятствий.
func closestMeleeTarget(w *domain.World, attacker *domain.Player, hitPoint domain.Vec2, radius float64) domain.GameObject {
	var best domain.GameObject
	bestDist := math.MaxFloat64

	for _, obj := range w.Objects {
		if obj.ID() == attacker.ID() {
			continue
		}
		if !obj.Damageable() && !obj.Interactable() {
			continue
		}
		if obj.Layer() != attacker.Layer() {
			continue
		}

		var hit bool
		var dist float64
		switch o := obj.(type) {
		case *domain.Player:
			dist = hitPoint.DistanceTo(o.Pos())
			hit = dist <= radius+domain.PlayerRadius
		case *domain.Loot:
			dist = hitPoint.DistanceTo(o.Pos())
			hit = dist <= radius+domain.LootRadius
		case *domain.Obstacle:
			if o.Shape == domain.ShapeRect {
				push, overlap := circleRectPushOut(hitPoint, radius, o.Pos().X-o.HalfW, o.Pos().Y-o.HalfH, o.HalfW*2, o.HalfH*2)
				hit = overlap
				dist = radius - push.Len()
			} else {
				dist = hitPoint.DistanceTo(o.Pos())
				hit = dist <= radius+o.Radius
			}
		default:
			continue
		}
		if hit && dist < bestDist {
			bestDist = dist
			best = obj
		}
	}
	return best
}

// fireGun спавнит пулю со смещением от ствола и случайным разбросом,
// равномерным в [-spread, +spread] градусов.
func fireGun(w *domain.World, ph *Physics, p *domain.Player, wdef *domain.WeaponDef) {
	dir := p.Dir.Normalize()
	if dir.X == 0 && dir.Y == 0 {
		dir = domain.Vec2{X: 1}
	}

	spawnPos := p.Pos().Add(dir.Scale(wdef.BarrelLength))
	spreadRad := utils.SpreadDegrees(w.Rng, wdef.SpreadDeg) * math.Pi / 180
	dir = dir.Rotate(spreadRad)

	b := domain.NewProjectile(w.NextID(), p, wdef, spawnPos, dir, w.Tick)

	// Пуля попадает и в живой набор (Register), и в набор созданных
	// за этот тик - по нему движок заводит таймер дальности.
	w.Register(b)
	w.SpawnedBullets = append(w.SpawnedBullets, b)
	ph.AddBody(b)
}
