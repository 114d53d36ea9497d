package domain

// ObjectKind - закрытое множество вариантов игровых объектов.
// Новые виды добавляются только сюда; диспетчеризация везде идет
// через type switch по конкретным типам, без рефлексии.
type ObjectKind uint8

const (
	KindPlayer ObjectKind = iota
	KindObstacle
	KindLoot
	KindProjectile
)

var kindNames = map[ObjectKind]string{
	KindPlayer:     "PLAYER",
	KindObstacle:   "OBSTACLE",
	KindLoot:       "LOOT",
	KindProjectile: "PROJECTILE",
}

func (k ObjectKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// Layer - слой коллизий и видимости (земля, бункер, строение, крыша).
// На проводе занимает 2 бита, поэтому значений не может быть больше четырех.
type Layer uint8

const (
	LayerGround Layer = iota
	LayerBunker
	LayerStructure
	LayerRoof
)

// GameObject - общий контракт всех объектов матча.
// Владелец объекта - реестр мира (World); физические тела, наборы видимости
// и dirty-наборы держат только не-владеющие ссылки.
type GameObject interface {
	ID() ObjectID
	Kind() ObjectKind
	Pos() Vec2
	SetPos(Vec2)
	Layer() Layer

	// Флаги способностей: по ним физика и бой решают,
	// можно ли объект ранить, поднять или это снаряд.
	Damageable() bool
	Interactable() bool
	IsBullet() bool
}

// ObjectCommon - общая часть всех объектов, встраивается в конкретные типы.
type ObjectCommon struct {
	ObjID    ObjectID
	ObjLayer Layer
	Position Vec2
}

func (c *ObjectCommon) ID() ObjectID  { return c.ObjID }
func (c *ObjectCommon) Pos() Vec2     { return c.Position }
func (c *ObjectCommon) SetPos(p Vec2) { c.Position = p }
func (c *ObjectCommon) Layer() Layer  { return c.ObjLayer }
