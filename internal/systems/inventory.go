package systems

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Viswas-Programs/survivreloaded-server/internal/domain"
	"github.com/Viswas-Programs/survivreloaded-server/pkg/logger"
)

// Радиус досягаемости подбора от края тела игрока.
const pickupReach = 1.2

// NearestLoot возвращает ближайшую стопку лута в пределах досягаемости
// игрока, либо nil. Используется командой interact без явной цели.
func NearestLoot(w *domain.World, p *domain.Player) *domain.Loot {
	maxDist := domain.PlayerRadius + domain.LootRadius + pickupReach
	var best *domain.Loot
	bestDist := maxDist

	for _, loot := range w.Objects {
		l, ok := loot.(*domain.Loot)
		if !ok || l.Layer() != p.Layer() {
			continue
		}
		if d := p.Pos().DistanceTo(l.Pos()); d <= bestDist {
			bestDist = d
			best = l
		}
	}
	return best
}

// TryPickup - единая точка подбора. Диспетчеризует по категории предмета,
// возвращает типизированный результат для владельца соединения.
// Неуспех - нормальный исход, не ошибка.
func TryPickup(w *domain.World, ph *Physics, p *domain.Player, loot *domain.Loot) domain.PickupResult {
	res := domain.PickupResult{
		PlayerID: p.ID(),
		Item:     loot.Type,
		Count:    loot.Count,
		Status:   domain.PickupSuccess,
	}

	switch w.Items.Category(loot.Type) {
	case domain.CategoryGun:
		res.Status = pickupGun(w, ph, p, loot)
	case domain.CategoryMelee:
		res.Status = pickupMelee(w, ph, p, loot)
	case domain.CategoryChest:
		res.Status = pickupArmor(w, ph, p, loot, domain.SlotChest)
	case domain.CategoryHelmet:
		res.Status = pickupArmor(w, ph, p, loot, domain.SlotHelmet)
	case domain.CategoryBackpack:
		res.Status = pickupArmor(w, ph, p, loot, domain.SlotBackpack)
	case domain.CategoryScope:
		res.Status = pickupScope(w, ph, p, loot)
	case domain.CategoryConsumable:
		var taken int
		res.Status, taken = pickupConsumable(w, ph, p, loot)
		res.Count = taken
	default:
		logger.Log.WithFields(logrus.Fields{
			"component": "inventory_system",
			"item":      loot.Type,
		}).Error("loot with unknown category on the ground")
		res.Status = domain.PickupFull
	}

	if res.Status == domain.PickupSuccess || res.Status == domain.PickupPartial {
		w.MarkFull(p)
	}
	return res
}

// consumeLoot убирает стопку с земли целиком.
func consumeLoot(w *domain.World, ph *Physics, loot *domain.Loot) {
	ph.RemoveBody(loot.ID())
	w.Unregister(loot)
}

// pickupGun кладет ствол в свободный слот. Оба слота заняты - отказ без
// какой-либо мутации; замена делается явным drop + pickup.
func pickupGun(w *domain.World, ph *Physics, p *domain.Player, loot *domain.Loot) domain.PickupStatus {
	for slot := 0; slot < domain.MeleeSlot; slot++ {
		if p.Weapons[slot] == "" {
			p.Weapons[slot] = loot.Type
			p.ActiveSlot = slot
			consumeLoot(w, ph, loot)
			return domain.PickupSuccess
		}
	}
	return domain.PickupFull
}

func pickupMelee(w *domain.World, ph *Physics, p *domain.Player, loot *domain.Loot) domain.PickupStatus {
	if p.Weapons[domain.MeleeSlot] == loot.Type {
		return domain.PickupAlreadyEquipped
	}
	if old := p.Weapons[domain.MeleeSlot]; old != "" && old != domain.ItemFists {
		SpawnLoot(w, ph, old, 1, loot.Pos())
	}
	p.Weapons[domain.MeleeSlot] = loot.Type
	consumeLoot(w, ph, loot)
	return domain.PickupSuccess
}

// pickupArmor - строгая монотонность тира: равный тир уже надет,
// меньший никогда не вытесняет больший.
func pickupArmor(w *domain.World, ph *Physics, p *domain.Player, loot *domain.Loot, slot domain.ArmorSlot) domain.PickupStatus {
	def := w.Items.Armor(loot.Type)
	if def == nil {
		return domain.PickupFull
	}

	var cur *int
	var prefix string
	switch slot {
	case domain.SlotChest:
		cur, prefix = &p.ChestTier, "chest"
	case domain.SlotHelmet:
		cur, prefix = &p.HelmetTier, "helmet"
	case domain.SlotBackpack:
		cur, prefix = &p.BackpackTier, "backpack"
	}

	switch {
	case def.Tier == *cur:
		return domain.PickupAlreadyEquipped
	case def.Tier < *cur:
		return domain.PickupBetterEquipped
	}

	// Прежняя броня падает на место подобранной.
	if *cur > 0 {
		SpawnLoot(w, ph, domain.ItemType(fmt.Sprintf("%s%02d", prefix, *cur)), 1, loot.Pos())
	}
	*cur = def.Tier
	consumeLoot(w, ph, loot)
	return domain.PickupSuccess
}

// pickupScope добавляет оптику в инвентарь; более дальняя сразу
// экипируется и форсирует пересчет видимости.
func pickupScope(w *domain.World, ph *Physics, p *domain.Player, loot *domain.Loot) domain.PickupStatus {
	if p.Inventory[loot.Type] > 0 || p.Scope == loot.Type {
		return domain.PickupAlreadyEquipped
	}
	def := w.Items.Scope(loot.Type)
	if def == nil {
		return domain.PickupFull
	}
	p.Inventory[loot.Type] = 1

	if cur := w.Items.Scope(p.Scope); cur == nil || def.ViewRadius > cur.ViewRadius {
		p.Scope = loot.Type
		p.ViewRadius = def.ViewRadius
		// Радиус обзора изменился - набор видимости устарел целиком.
		p.MovedSinceVis = domain.VisMoveThreshold
	}
	consumeLoot(w, ph, loot)
	return domain.PickupSuccess
}

// pickupConsumable - арифметика переполнения стака. Вместимость C задана
// тиром рюкзака; при c+a > C берется ровно C-c, остаток лежит на земле.
func pickupConsumable(w *domain.World, ph *Physics, p *domain.Player, loot *domain.Loot) (domain.PickupStatus, int) {
	def := w.Items.Consumable(loot.Type)
	if def == nil {
		return domain.PickupFull, 0
	}
	capacity := def.CapacityByBag[p.BackpackTier]
	have := p.Inventory[loot.Type]

	switch {
	case have >= capacity:
		return domain.PickupFull, 0

	case have+loot.Count <= capacity:
		p.Inventory[loot.Type] = have + loot.Count
		consumeLoot(w, ph, loot)
		return domain.PickupSuccess, loot.Count

	default:
		taken := capacity - have
		p.Inventory[loot.Type] = capacity
		loot.Count -= taken
		w.MarkFull(loot)
		return domain.PickupPartial, taken
	}
}

// StartConsumable начинает длительное применение расходника.
// Эффект и списание происходят при завершении (см. finishAction).
func StartConsumable(w *domain.World, p *domain.Player, item domain.ItemType) bool {
	if p.Action.Active || p.Animating(w.Tick) {
		return false
	}
	def := w.Items.Consumable(item)
	if def == nil || p.Inventory[item] <= 0 {
		return false
	}
	// Лечение при полном HP и буст при полном бусте не стартуют.
	if def.Boost > 0 {
		if p.Boost >= domain.MaxBoost {
			return false
		}
	} else if p.Health >= domain.MaxHealth {
		return false
	}

	p.Action = domain.PlayerAction{
		Active:    true,
		Item:      item,
		StartTick: w.Tick,
		EndTick:   w.Tick + def.UseTicks,
	}
	w.MarkPartial(p)
	return true
}

// DropItem выбрасывает count предметов (или весь стак, если count <= 0)
// рядом с игроком, против направления взгляда.
func DropItem(w *domain.World, ph *Physics, p *domain.Player, item domain.ItemType, count int) bool {
	have := p.Inventory[item]

	// Оружие из слота выбрасывается отдельно от стаков.
	if have <= 0 {
		for slot, it := range p.Weapons {
			if it == item && it != domain.ItemFists {
				p.Weapons[slot] = ""
				if slot == domain.MeleeSlot {
					p.Weapons[slot] = domain.ItemFists
				}
				if p.ActiveSlot == slot {
					p.ActiveSlot = domain.MeleeSlot
				}
				SpawnLoot(w, ph, item, 1, dropPos(p))
				w.MarkFull(p)
				return true
			}
		}
		return false
	}

	if count <= 0 || count > have {
		count = have
	}
	p.Inventory[item] = have - count

	// Выброс экипированной оптики откатывает обзор на базовый.
	if p.Scope == item {
		p.Scope = "1xscope"
		p.ViewRadius = domain.DefaultViewRadius
		p.MovedSinceVis = domain.VisMoveThreshold
	}
	// Бросить предмет, который сейчас применяется - действие отменяется.
	if p.Action.Active && p.Action.Item == item && p.Inventory[item] == 0 {
		p.Action = domain.PlayerAction{}
	}

	SpawnLoot(w, ph, item, count, dropPos(p))
	w.MarkFull(p)
	return true
}

func dropPos(p *domain.Player) domain.Vec2 {
	dir := p.Dir.Normalize()
	if dir.X == 0 && dir.Y == 0 {
		dir = domain.Vec2{X: 1}
	}
	return p.Pos().Sub(dir.Scale(domain.PlayerRadius + domain.LootRadius))
}
