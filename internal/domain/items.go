package domain

// ItemType - строковый идентификатор предмета ("m9", "bandage", "chest02").
// Ключ в справочнике предметов и тип стопки лута.
type ItemType string

// ItemCategory определяет, какой веткой логики обрабатывается взаимодействие.
type ItemCategory uint8

const (
	CategoryNone ItemCategory = iota
	CategoryGun
	CategoryMelee
	CategoryConsumable
	CategoryChest
	CategoryHelmet
	CategoryBackpack
	CategoryScope
)

// WeaponDef - статические атрибуты оружия. Ядро читает их по значению
// и никогда не мутирует.
type WeaponDef struct {
	Type     ItemType
	Category ItemCategory // CategoryGun или CategoryMelee
	Damage   float64

	// Cooldown в тиках: оружие стреляет, если с последнего выстрела
	// прошло не меньше CooldownTicks.
	CooldownTicks uint64
	Auto          bool // стреляет само, пока курок зажат

	// Melee.
	AttackRadius float64
	AttackOffset float64
	AnimTicks    uint64

	// Guns.
	SpreadDeg     float64
	BarrelLength  float64
	BulletSpeed   float64 // юнитов в секунду
	LifetimeTicks uint64  // дальность, выраженная временем жизни пули
}

// ArmorSlot - куда надевается броня.
type ArmorSlot uint8

const (
	SlotChest ArmorSlot = iota
	SlotHelmet
	SlotBackpack
)

// ArmorDef - броня и рюкзаки. Tier сравнивается численно:
// подбор строго большего тира вытесняет прежний.
type ArmorDef struct {
	Type ItemType
	Slot ArmorSlot
	Tier int
}

// ConsumableDef - расходники (лечение, буст).
type ConsumableDef struct {
	Type     ItemType
	Heal     float64
	FullHeal bool
	Boost    float64
	UseTicks uint64 // длительность применения

	// Вместимость стака по тиру рюкзака (0..3).
	CapacityByBag [4]int
}

// ScopeDef - оптика, меняет радиус обзора.
type ScopeDef struct {
	Type       ItemType
	Zoom       int
	ViewRadius float64
}

// Table - read-only справочник предметов, общий для всего матча.
// Передается в системы явно; глобального состояния нет.
type Table struct {
	weapons     map[ItemType]*WeaponDef
	armor       map[ItemType]*ArmorDef
	consumables map[ItemType]*ConsumableDef
	scopes      map[ItemType]*ScopeDef
}

func (t *Table) Weapon(it ItemType) *WeaponDef         { return t.weapons[it] }
func (t *Table) Armor(it ItemType) *ArmorDef           { return t.armor[it] }
func (t *Table) Consumable(it ItemType) *ConsumableDef { return t.consumables[it] }
func (t *Table) Scope(it ItemType) *ScopeDef           { return t.scopes[it] }

// Category определяет категорию произвольного предмета (CategoryNone, если неизвестен).
func (t *Table) Category(it ItemType) ItemCategory {
	if w := t.weapons[it]; w != nil {
		return w.Category
	}
	if a := t.armor[it]; a != nil {
		switch a.Slot {
		case SlotChest:
			return CategoryChest
		case SlotHelmet:
			return CategoryHelmet
		case SlotBackpack:
			return CategoryBackpack
		}
	}
	if t.consumables[it] != nil {
		return CategoryConsumable
	}
	if t.scopes[it] != nil {
		return CategoryScope
	}
	return CategoryNone
}

// DefaultTable собирает стандартный набор предметов матча.
// Числа - баланс по умолчанию; тесты опираются на них.
func DefaultTable() *Table {
	t := &Table{
		weapons:     make(map[ItemType]*WeaponDef),
		armor:       make(map[ItemType]*ArmorDef),
		consumables: make(map[ItemType]*ConsumableDef),
		scopes:      make(map[ItemType]*ScopeDef),
	}

	addWeapon := func(w *WeaponDef) { t.weapons[w.Type] = w }
	addArmor := func(a *ArmorDef) { t.armor[a.Type] = a }
	addCons := func(c *ConsumableDef) { t.consumables[c.Type] = c }
	addScope := func(s *ScopeDef) { t.scopes[s.Type] = s }

	// --- MELEE ---
	addWeapon(&WeaponDef{
		Type: ItemFists, Category: CategoryMelee,
		Damage: 24, CooldownTicks: 8,
		AttackRadius: 0.9, AttackOffset: 1.35, AnimTicks: PunchAnimTicks,
	})

	// --- GUNS ---
	addWeapon(&WeaponDef{
		Type: "m9", Category: CategoryGun,
		Damage: 12, CooldownTicks: 4, Auto: false,
		SpreadDeg: 6, BarrelLength: 1.75, BulletSpeed: 85, LifetimeTicks: 40,
	})
	addWeapon(&WeaponDef{
		Type: "mp5", Category: CategoryGun,
		Damage: 11, CooldownTicks: 3, Auto: true,
		SpreadDeg: 5, BarrelLength: 2.1, BulletSpeed: 90, LifetimeTicks: 36,
	})
	addWeapon(&WeaponDef{
		Type: "ak47", Category: CategoryGun,
		Damage: 13.5, CooldownTicks: 3, Auto: true,
		SpreadDeg: 7.5, BarrelLength: 2.4, BulletSpeed: 100, LifetimeTicks: 45,
	})
	addWeapon(&WeaponDef{
		Type: "m870", Category: CategoryGun,
		Damage: 45, CooldownTicks: 30, Auto: false,
		SpreadDeg: 10, BarrelLength: 2.3, BulletSpeed: 65, LifetimeTicks: 18,
	})

	// --- ARMOR / BAGS ---
	addArmor(&ArmorDef{Type: "chest01", Slot: SlotChest, Tier: 1})
	addArmor(&ArmorDef{Type: "chest02", Slot: SlotChest, Tier: 2})
	addArmor(&ArmorDef{Type: "chest03", Slot: SlotChest, Tier: 3})
	addArmor(&ArmorDef{Type: "helmet01", Slot: SlotHelmet, Tier: 1})
	addArmor(&ArmorDef{Type: "helmet02", Slot: SlotHelmet, Tier: 2})
	addArmor(&ArmorDef{Type: "helmet03", Slot: SlotHelmet, Tier: 3})
	addArmor(&ArmorDef{Type: "backpack01", Slot: SlotBackpack, Tier: 1})
	addArmor(&ArmorDef{Type: "backpack02", Slot: SlotBackpack, Tier: 2})
	addArmor(&ArmorDef{Type: "backpack03", Slot: SlotBackpack, Tier: 3})

	// --- CONSUMABLES ---
	addCons(&ConsumableDef{
		Type: "bandage", Heal: 15, UseTicks: 100,
		CapacityByBag: [4]int{5, 10, 15, 30},
	})
	addCons(&ConsumableDef{
		Type: "medkit", FullHeal: true, UseTicks: 200,
		CapacityByBag: [4]int{1, 2, 3, 4},
	})
	addCons(&ConsumableDef{
		Type: "soda", Boost: 25, UseTicks: 100,
		CapacityByBag: [4]int{2, 5, 10, 15},
	})
	addCons(&ConsumableDef{
		Type: "pills", Boost: 50, UseTicks: 167,
		CapacityByBag: [4]int{1, 2, 3, 4},
	})

	// --- SCOPES ---
	addScope(&ScopeDef{Type: "1xscope", Zoom: 1, ViewRadius: DefaultViewRadius})
	addScope(&ScopeDef{Type: "2xscope", Zoom: 2, ViewRadius: 36})
	addScope(&ScopeDef{Type: "4xscope", Zoom: 4, ViewRadius: 48})

	return t
}
