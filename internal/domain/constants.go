package domain

// Известные типы предметов, на которые ссылается логика напрямую.
const (
	ItemFists ItemType = "fists"
)

// Базовые параметры игрока.
const (
	MaxHealth = 100.0
	MaxBoost  = 100.0

	PlayerRadius = 1.0
	PlayerSpeed  = 12.0 // юнитов в секунду

	// Количество слотов оружия: два ствола + melee.
	WeaponSlots    = 3
	MeleeSlot      = 2
	PunchAnimTicks = 8
)

// Буст: распад и полосы регенерации HP.
// Распад применяется ПЕРВЫМ, полоса читается по значению после распада,
// HP зажимается в [0, MaxHealth] один раз в конце под-шага
// (см. DESIGN.md, решение открытого вопроса).
const (
	BoostDecayPerTick = 0.375

	BoostTier1Max = 25.0
	BoostTier2Max = 50.0
	BoostTier3Max = 87.5

	RegenTier1PerTick = 0.03
	RegenTier2PerTick = 0.1125
	RegenTier3PerTick = 0.1425
	RegenTier4PerTick = 0.15
)

// Лут и снаряды.
const (
	LootRadius   = 0.55
	BulletRadius = 0.15
)

// Видимость (interest management).
const (
	DefaultViewRadius = 28.0

	// Накопленное неотправленное перемещение, после которого набор
	// видимых объектов пересчитывается принудительно.
	VisMoveThreshold = 0.65
)

// Кол-во убийств, начиная с которого игрок может стать kill leader.
const KillLeaderMinKills = 3
