package domain

// Projectile - пуля. Живет от спавна до попадания или истечения дальности.
type Projectile struct {
	ObjectCommon

	// ShooterID - не-владеющая ссылка на стрелявшего (для kill feed).
	ShooterID ObjectID
	Weapon    ItemType
	Damage    float64

	Dir   Vec2
	Speed float64 // юнитов в секунду

	SpawnTick     uint64
	LifetimeTicks uint64

	// Spent выставляется при зачете попадания: защита от двойного урона,
	// если физика зарегистрировала несколько контактов за тик.
	Spent bool
}

// NewProjectile создает пулю из параметров выстрела.
func NewProjectile(id ObjectID, shooter *Player, w *WeaponDef, pos, dir Vec2, tick uint64) *Projectile {
	return &Projectile{
		ObjectCommon:  ObjectCommon{ObjID: id, ObjLayer: shooter.Layer(), Position: pos},
		ShooterID:     shooter.ID(),
		Weapon:        w.Type,
		Damage:        w.Damage,
		Dir:           dir,
		Speed:         w.BulletSpeed,
		SpawnTick:     tick,
		LifetimeTicks: w.LifetimeTicks,
	}
}

func (b *Projectile) Kind() ObjectKind { return KindProjectile }

func (b *Projectile) Damageable() bool   { return false }
func (b *Projectile) Interactable() bool { return false }
func (b *Projectile) IsBullet() bool     { return true }

// ExpiryTick - тик, на котором пуля исчерпает дальность.
func (b *Projectile) ExpiryTick() uint64 {
	return b.SpawnTick + b.LifetimeTicks
}
