package domain

// CollisionShape - форма коллизии препятствия.
type CollisionShape uint8

const (
	ShapeCircle CollisionShape = iota
	ShapeRect
)

// Obstacle - статическое препятствие (дерево, ящик, камень).
type Obstacle struct {
	ObjectCommon

	Type string // "tree", "crate", "rock"

	Shape  CollisionShape
	Radius float64 // ShapeCircle
	HalfW  float64 // ShapeRect
	HalfH  float64

	Destructible bool
	Health       float64
	MaxHealth    float64
	Dead         bool

	// LootTable: что выпадает при разрушении ("" = ничего).
	LootDrop  ItemType
	LootCount int
}

func (o *Obstacle) Kind() ObjectKind { return KindObstacle }

func (o *Obstacle) Damageable() bool { return o.Destructible && !o.Dead }

func (o *Obstacle) Interactable() bool { return false }
func (o *Obstacle) IsBullet() bool     { return false }
