package domain

// DamageRecord - эфемерный факт одного тика: кого, кто и какой пулей задел.
// Ставится в очередь из коллбэка контакта физики (сам коллбэк ничего не
// мутирует), выгребается ровно один раз до боевой логики, затем исчезает.
type DamageRecord struct {
	Target   GameObject
	Attacker *Player // может быть nil, если стрелявший уже удален
	Bullet   *Projectile
}

// KillEvent - запись kill feed, рассылается всем в конце тика.
type KillEvent struct {
	KillerID   ObjectID
	VictimID   ObjectID
	KillerName string
	VictimName string
	Weapon     ItemType
	KillCount  int
}

// RoleKind - роли для объявлений.
type RoleKind uint8

const (
	RoleKillLeader RoleKind = 1
)

// RoleAnnouncement - объявление роли (kill leader и т.п.).
type RoleAnnouncement struct {
	PlayerID ObjectID
	Name     string
	Role     RoleKind
	Assigned bool // false = роль потеряна (смерть лидера)
}

// EmoteEvent - эмоция игрока, ретранслируется видящим его.
type EmoteEvent struct {
	PlayerID ObjectID
	Type     uint8
	Pos      Vec2
}

// ExplosionEvent - взрыв (бочка, граната), чистая визуализация для клиента.
type ExplosionEvent struct {
	Pos  Vec2
	Type uint8
}

// PickupStatus - типизированный результат подбора. Неуспех - это не ошибка,
// а нормальный исход, который клиент показывает игроку.
type PickupStatus uint8

const (
	PickupSuccess PickupStatus = iota
	PickupPartial              // стак заполнен до вместимости, остаток лежит
	PickupFull                 // вместимость уже исчерпана / нет слота
	PickupAlreadyEquipped
	PickupBetterEquipped
)

// PickupResult - ответ владельцу соединения на попытку подбора.
type PickupResult struct {
	PlayerID ObjectID
	Item     ItemType
	Count    int
	Status   PickupStatus
}
