package domain

// Loot - поднимаемая стопка предметов на земле.
type Loot struct {
	ObjectCommon

	Type  ItemType
	Count int

	// Vel - скорость разлёта; гасится физикой, когда стопки расталкиваются.
	Vel Vec2

	// Зарезервированные флаги протокола (см. wire).
	IsOld     bool
	Preloaded bool
	HasOwner  bool
}

// NewLoot создает стопку лута в точке pos.
func NewLoot(id ObjectID, it ItemType, count int, pos Vec2) *Loot {
	return &Loot{
		ObjectCommon: ObjectCommon{ObjID: id, Position: pos},
		Type:         it,
		Count:        count,
	}
}

func (l *Loot) Kind() ObjectKind { return KindLoot }

func (l *Loot) Damageable() bool   { return false }
func (l *Loot) Interactable() bool { return true }
func (l *Loot) IsBullet() bool     { return false }
