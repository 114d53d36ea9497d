package domain

// MoveIntent - последний полученный ввод движения.
// Либо 8-направленный (Dx/Dy из {-1,0,1}), либо тач-вектор; в обоих
// случаях храним уже нормализованное направление.
type MoveIntent struct {
	Moving bool
	Dir    Vec2
}

// AnimKind - анимационное состояние, видимое другим игрокам.
type AnimKind uint8

const (
	AnimNone AnimKind = iota
	AnimMelee
)

// PlayerAnim - таймер анимации в тиках. По истечении сбрасывается,
// игрок помечается full dirty.
type PlayerAnim struct {
	Kind    AnimKind
	EndTick uint64
}

// PlayerAction - длительное действие (бинт, аптечка, буст).
// Эффект применяется ровно один раз, когда текущий тик достигает EndTick.
type PlayerAction struct {
	Active    bool
	Item      ItemType
	StartTick uint64
	EndTick   uint64
}

// Player - игровой объект игрока.
type Player struct {
	ObjectCommon

	Name string

	// ConnID - не-владеющая ссылка на соединение ("" = оффлайн).
	// Реестр мира - единственный владелец объекта.
	ConnID string

	Health float64
	Boost  float64
	Dead   bool
	Kills  int

	Intent MoveIntent
	Vel    Vec2
	Dir    Vec2 // куда смотрит (для melee и ствола)

	// Огонь: FirePressed - одиночное нажатие, еще не обработанное;
	// Firing - курок зажат (для автоматического оружия).
	Firing       bool
	FirePressed  bool
	LastFireTick uint64

	// Слоты оружия: [0],[1] - стволы, [MeleeSlot] - melee. "" = пусто.
	Weapons    [WeaponSlots]ItemType
	ActiveSlot int

	// Броня и рюкзак: хранится численный тир (0 = ничего).
	ChestTier    int
	HelmetTier   int
	BackpackTier int

	Scope      ItemType
	ViewRadius float64

	// Inventory: item-id -> count. Не пуст у отключенного игрока -
	// объект сохраняется в реестре ради корректного kill feed.
	Inventory map[ItemType]int

	Action PlayerAction
	Anim   PlayerAnim

	// Накопленное неотправленное перемещение для пересчета видимости.
	MovedSinceVis float64
}

// NewPlayer создает игрока с кулаками и базовым обзором.
func NewPlayer(id ObjectID, name string, pos Vec2) *Player {
	p := &Player{
		ObjectCommon: ObjectCommon{ObjID: id, Position: pos},
		Name:         name,
		Health:       MaxHealth,
		Dir:          Vec2{X: 1},
		ActiveSlot:   MeleeSlot,
		Scope:        "1xscope",
		ViewRadius:   DefaultViewRadius,
		Inventory:    make(map[ItemType]int),
	}
	p.Weapons[MeleeSlot] = ItemFists
	return p
}

func (p *Player) Kind() ObjectKind { return KindPlayer }

// Damageable: труп больше не цель.
func (p *Player) Damageable() bool { return !p.Dead }

func (p *Player) Interactable() bool { return false }
func (p *Player) IsBullet() bool     { return false }

// Connected сообщает, есть ли у игрока живое соединение.
func (p *Player) Connected() bool { return p.ConnID != "" }

// ActiveWeapon возвращает тип оружия в активном слоте.
func (p *Player) ActiveWeapon() ItemType {
	return p.Weapons[p.ActiveSlot]
}

// Animating: идет ли сейчас анимация (melee удар и т.п.).
func (p *Player) Animating(tick uint64) bool {
	return p.Anim.Kind != AnimNone && tick < p.Anim.EndTick
}

// InventoryEmpty: нечего сохранять после дисконнекта.
func (p *Player) InventoryEmpty() bool {
	for _, n := range p.Inventory {
		if n > 0 {
			return false
		}
	}
	return true
}
