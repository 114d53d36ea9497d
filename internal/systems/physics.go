package systems

import (
	"math"

	"github.com/solarlune/resolv"

	"github.com/Viswas-Programs/survivreloaded-server/internal/domain"
	"github.com/Viswas-Programs/survivreloaded-server/pkg/logger"
)

// Теги тел в пространстве resolv: по ним работает broadphase.
const (
	tagPlayer   = "player"
	tagObstacle = "obstacle"
	tagLoot     = "loot"
	tagBullet   = "bullet"
)

// Запас broadphase-AABB с каждой стороны. resolv регистрирует тело в
// ячейках диапазона [X, X+W-1]: тело уже одного юнита при пересечении
// границы ячейки не попадает ни в одну и пропадает из Check. Запас
// держит каждый AABB шире юнита; точную геометрию решает narrowphase.
const broadPad = 1.0

// CollisionMatrix - данные о совместимости видов: matrix[a][b] == true
// означает "вид a сталкивается с видом b". Подается адаптеру при
// конструировании мира - никаких подменяемых предикатов на чужих типах.
type CollisionMatrix map[domain.ObjectKind]map[domain.ObjectKind]bool

// Collides симметричного ответа не требует: матрица уже симметрична по построению.
func (m CollisionMatrix) Collides(a, b domain.ObjectKind) bool {
	if row, ok := m[a]; ok {
		return row[b]
	}
	return false
}

// DefaultCollisionMatrix - правила арены:
// игроки сталкиваются с препятствиями и пулями; пули - с игроками,
// препятствиями и друг с другом, но не с лутом; лут - только с
// препятствиями и другим лутом.
func DefaultCollisionMatrix() CollisionMatrix {
	m := CollisionMatrix{
		domain.KindPlayer: {
			domain.KindObstacle:   true,
			domain.KindProjectile: true,
		},
		domain.KindProjectile: {
			domain.KindPlayer:     true,
			domain.KindObstacle:   true,
			domain.KindProjectile: true,
		},
		domain.KindLoot: {
			domain.KindObstacle: true,
			domain.KindLoot:     true,
		},
		domain.KindObstacle: {
			domain.KindPlayer:     true,
			domain.KindProjectile: true,
			domain.KindLoot:       true,
		},
	}
	return m
}

// PhysicsConfig - параметры адаптера, задаются при создании мира.
type PhysicsConfig struct {
	MapSize float64
	Matrix  CollisionMatrix

	// LootCorrection - доля перекрытия, выбираемая за тик при расталкивании
	// пар с лутом. Для остальных пар коррекция равна нулю: игрок у стены
	// выталкивается ровно на глубину проникновения, без дрожи.
	LootCorrection float64

	// LootDrag - затухание скорости разлёта лута за тик.
	LootDrag float64
}

// Physics - адаптер над 2D-пространством resolv. Владеет телами;
// тела держат не-владеющие ссылки на объекты реестра через Data.
type Physics struct {
	cfg    PhysicsConfig
	space  *resolv.Space
	bodies map[domain.ObjectID]*resolv.Object

	// Пули, остановленные стеной/неразрушаемым препятствием в этом тике.
	// Уничтожаются тем же путём, что и попавшие в цель.
	stopped []*domain.Projectile
}

// NewPhysics строит пространство арены. Граница арены - не тела, а
// полуплоскости: ячеек за пределами пространства у resolv нет, тело
// с отрицательными координатами невидимо для Check. Пули останавливает
// castBullet аналитически, игроков и лут держит clampToArena.
func NewPhysics(cfg PhysicsConfig) *Physics {
	size := int(math.Ceil(cfg.MapSize)) + int(broadPad)*2

	return &Physics{
		cfg: cfg,
		// Ячейки 4x4 юнита.
		space:  resolv.NewSpace(size, size, 4, 4),
		bodies: make(map[domain.ObjectID]*resolv.Object),
	}
}

// AddBody регистрирует физическое тело объекта.
func (ph *Physics) AddBody(obj domain.GameObject) {
	var body *resolv.Object

	switch o := obj.(type) {
	case *domain.Player:
		body = circleBody(o.Pos(), domain.PlayerRadius, tagPlayer)
	case *domain.Loot:
		body = circleBody(o.Pos(), domain.LootRadius, tagLoot)
	case *domain.Projectile:
		body = circleBody(o.Pos(), domain.BulletRadius, tagBullet)
	case *domain.Obstacle:
		if o.Shape == domain.ShapeRect {
			body = resolv.NewObject(
				o.Pos().X-o.HalfW-broadPad, o.Pos().Y-o.HalfH-broadPad,
				o.HalfW*2+broadPad*2, o.HalfH*2+broadPad*2, tagObstacle)
		} else {
			body = circleBody(o.Pos(), o.Radius, tagObstacle)
		}
	default:
		return
	}

	body.Data = obj
	ph.space.Add(body)
	ph.bodies[obj.ID()] = body
}

func circleBody(pos domain.Vec2, r float64, tag string) *resolv.Object {
	h := r + broadPad
	return resolv.NewObject(pos.X-h, pos.Y-h, h*2, h*2, tag)
}

// RemoveBody снимает тело с объекта. Идемпотентен: повторное удаление
// (stale-reference) - безопасный no-op.
func (ph *Physics) RemoveBody(id domain.ObjectID) {
	if body, ok := ph.bodies[id]; ok {
		ph.space.Remove(body)
		delete(ph.bodies, id)
	}
}

// HasBody - есть ли у объекта тело.
func (ph *Physics) HasBody(id domain.ObjectID) bool {
	_, ok := ph.bodies[id]
	return ok
}

// SyncPlayer приводит физическое тело к доменной позиции игрока.
// Нужен тем, кто меняет позицию мимо stepPlayers (телепорт).
func (ph *Physics) SyncPlayer(p *domain.Player) {
	ph.syncBody(p, domain.PlayerRadius)
}

// syncBody переносит доменную позицию в тело и обновляет ячейки.
func (ph *Physics) syncBody(obj domain.GameObject, r float64) {
	if body, ok := ph.bodies[obj.ID()]; ok {
		body.X = obj.Pos().X - r - broadPad
		body.Y = obj.Pos().Y - r - broadPad
		body.Update()
	}
}

// Step продвигает мир на один тик. Порядок фиксирован: пули (контакты),
// игроки (выталкивание из препятствий), лут (расталкивание).
// Внутри контактной фазы НИКАКая мутация реестра не происходит -
// только постановка DamageRecord в очередь.
func (ph *Physics) Step(w *domain.World, dt float64) {
	ph.stepBullets(w, dt)
	ph.stepPlayers(w, dt)
	ph.stepLoot(w, dt)
}

// DrainStopped отдает пули, остановленные препятствиями в этом тике.
// Контракт тот же, что у DrainDamage: ровно один вызов за тик.
func (ph *Physics) DrainStopped() []*domain.Projectile {
	out := ph.stopped
	ph.stopped = nil
	return out
}

// --- ПУЛИ ---

func (ph *Physics) stepBullets(w *domain.World, dt float64) {
	for _, b := range w.Bullets {
		if b.Spent {
			continue
		}
		from := b.Pos()
		to := from.Add(b.Dir.Scale(b.Speed * dt))

		hit, target := ph.castBullet(w, b, from, to)
		b.SetPos(hit)
		ph.syncBody(b, domain.BulletRadius)

		if target == nil {
			continue
		}
		if target.Damageable() {
			// Урон НЕ применяется здесь: коллбэк контакта только ставит факт
			// в очередь, боевая логика выгребет её до обработки намерений.
			var attacker *domain.Player
			if p, ok := w.Players[b.ShooterID]; ok {
				attacker = p
			}
			w.QueueDamage(domain.DamageRecord{Target: target, Attacker: attacker, Bullet: b})
		} else {
			ph.stopped = append(ph.stopped, b)
		}
		b.Spent = true
	}
}

// castBullet ведет пулю отрезком from->to с подшагами, чтобы не
// туннелировать сквозь игроков. Возвращает точку остановки и цель
// (nil, если долетела свободно; не-Damageable цель = стена/камень).
func (ph *Physics) castBullet(w *domain.World, b *domain.Projectile, from, to domain.Vec2) (domain.Vec2, domain.GameObject) {
	body, ok := ph.bodies[b.ID()]
	if !ok {
		return to, nil
	}

	dist := to.Sub(from).Len()
	steps := int(math.Ceil(dist)) // подшаг <= 1 юнита
	if steps < 1 {
		steps = 1
	}

	pos := from
	stepVec := to.Sub(from).Scale(1.0 / float64(steps))

	for i := 0; i < steps; i++ {
		next := pos.Add(stepVec)

		// Граница арены проверяется до тел: за ней ячеек нет.
		if next.X < domain.BulletRadius || next.Y < domain.BulletRadius ||
			next.X > ph.cfg.MapSize-domain.BulletRadius || next.Y > ph.cfg.MapSize-domain.BulletRadius {
			return ph.clampToArena(next, domain.BulletRadius), wallSentinel
		}

		// Broadphase: кандидаты в ячейках по пути подшага.
		check := body.Check(next.X-from.X, next.Y-from.Y, tagPlayer, tagObstacle, tagBullet)
		if check != nil {
			if tgt := ph.nearestBulletContact(w, b, pos, next, check.Objects); tgt != nil {
				return next, tgt
			}
		}
		pos = next
	}
	return pos, nil
}

// nearestBulletContact делает точный (narrowphase) тест подшага пули
// против кандидатов broadphase. Фильтрация: слой, матрица видов, стрелявший.
func (ph *Physics) nearestBulletContact(w *domain.World, b *domain.Projectile, from, to domain.Vec2, candidates []*resolv.Object) domain.GameObject {
	var best domain.GameObject
	bestDist := math.MaxFloat64

	for _, cand := range candidates {
		obj, ok := cand.Data.(domain.GameObject)
		if !ok {
			continue
		}
		if obj.ID() == b.ID() || obj.ID() == b.ShooterID {
			continue
		}
		if obj.Layer() != b.Layer() {
			continue
		}
		if !ph.cfg.Matrix.Collides(domain.KindProjectile, obj.Kind()) {
			continue
		}
		// Защита от stale-reference: тело могло пережить объект на один проход.
		if _, live := w.Objects[obj.ID()]; !live {
			warnStale("bullet contact", obj.ID())
			continue
		}

		var hit bool
		var d float64
		switch o := obj.(type) {
		case *domain.Player:
			hit, d = segmentCircleHit(from, to, o.Pos(), domain.PlayerRadius+domain.BulletRadius)
		case *domain.Projectile:
			hit, d = segmentCircleHit(from, to, o.Pos(), domain.BulletRadius*2)
		case *domain.Obstacle:
			if o.Dead {
				continue
			}
			if o.Shape == domain.ShapeRect {
				hit = rectOverlapsSegment(o.Pos().X-o.HalfW, o.Pos().Y-o.HalfH, o.HalfW*2, o.HalfH*2, from, to, domain.BulletRadius)
				d = to.DistanceTo(from)
			} else {
				hit, d = segmentCircleHit(from, to, o.Pos(), o.Radius+domain.BulletRadius)
			}
		default:
			continue
		}
		if hit && d < bestDist {
			bestDist = d
			best = obj
		}
	}
	return best
}

// wallSentinel - общий не-Damageable объект для попаданий в границу арены.
var wallSentinel domain.GameObject = &domain.Obstacle{
	Type: "arena_wall",
}

// --- ИГРОКИ ---

func (ph *Physics) stepPlayers(w *domain.World, dt float64) {
	for _, p := range w.Players {
		if p.Dead {
			continue
		}
		if p.Vel.X == 0 && p.Vel.Y == 0 {
			continue
		}

		prev := p.Pos()
		pos := prev.Add(p.Vel.Scale(dt))
		pos = ph.clampToArena(pos, domain.PlayerRadius)
		p.SetPos(pos)
		ph.syncBody(p, domain.PlayerRadius)

		ph.pushOutOfObstacles(w, p, domain.PlayerRadius)

		if moved := p.Pos().DistanceTo(prev); moved > 0 {
			// Движение - слабая грязь; видимость пересчитывается, когда
			// накопленный сдвиг превысит порог.
			p.MovedSinceVis += moved
			w.MarkPartial(p)
		}
	}
}

// pushOutOfObstacles выталкивает круглое тело из пересекаемых препятствий.
// Коррекция позиции здесь "нулевая" в смысле контракта: выталкиваем ровно
// на глубину проникновения, без запаса - иначе контакт дрожит.
func (ph *Physics) pushOutOfObstacles(w *domain.World, obj domain.GameObject, r float64) {
	body, ok := ph.bodies[obj.ID()]
	if !ok {
		return
	}
	check := body.Check(0, 0, tagObstacle)
	if check == nil {
		return
	}

	pos := obj.Pos()
	moved := false
	for _, cand := range check.Objects {
		obst, ok := cand.Data.(*domain.Obstacle)
		if !ok || obst.Dead {
			continue
		}
		if obst.Layer() != obj.Layer() {
			continue
		}
		if !ph.cfg.Matrix.Collides(obj.Kind(), domain.KindObstacle) {
			continue
		}
		var push domain.Vec2
		var hit bool
		if obst.Shape == domain.ShapeRect {
			push, hit = circleRectPushOut(pos, r, obst.Pos().X-obst.HalfW, obst.Pos().Y-obst.HalfH, obst.HalfW*2, obst.HalfH*2)
		} else {
			push, hit = circleCirclePushOut(pos, r, obst.Pos(), obst.Radius)
		}
		if hit {
			pos = pos.Add(push)
			moved = true
		}
	}

	if moved {
		pos = ph.clampToArena(pos, r)
		obj.SetPos(pos)
		ph.syncBody(obj, r)
	}
}

// --- ЛУТ ---

func (ph *Physics) stepLoot(w *domain.World, dt float64) {
	for _, obj := range w.Objects {
		loot, ok := obj.(*domain.Loot)
		if !ok {
			continue
		}

		if loot.Vel.X != 0 || loot.Vel.Y != 0 {
			pos := ph.clampToArena(loot.Pos().Add(loot.Vel.Scale(dt)), domain.LootRadius)
			loot.SetPos(pos)
			loot.Vel = loot.Vel.Scale(ph.cfg.LootDrag)
			if loot.Vel.Len() < 0.05 {
				loot.Vel = domain.Vec2{}
			}
			ph.syncBody(loot, domain.LootRadius)
			ph.pushOutOfObstacles(w, loot, domain.LootRadius)
			w.MarkPartial(loot)
		}

		// Расталкивание стопок: для пар с лутом коррекция позиции УСИЛЕНА
		// (доля перекрытия за тик), чтобы сваленный в кучу лут расползался.
		// Это ре-оценивается на каждой паре, не глобально на шаг.
		ph.separateLoot(w, loot)
	}
}

func (ph *Physics) separateLoot(w *domain.World, loot *domain.Loot) {
	body, ok := ph.bodies[loot.ID()]
	if !ok {
		return
	}
	check := body.Check(0, 0, tagLoot)
	if check == nil {
		return
	}

	for _, cand := range check.Objects {
		other, ok := cand.Data.(*domain.Loot)
		if !ok || other == loot {
			continue
		}
		if other.Layer() != loot.Layer() {
			continue
		}
		delta := other.Pos().Sub(loot.Pos())
		overlap := domain.LootRadius*2 - delta.Len()
		if overlap <= 0 {
			continue
		}
		dir := delta.Normalize()
		if dir.X == 0 && dir.Y == 0 {
			// Полное совпадение позиций: разносим детерминированно по rng мира.
			dir = domain.DirFromAngle(w.Rng.Float64() * 2 * math.Pi)
		}
		shift := dir.Scale(overlap * ph.cfg.LootCorrection * 0.5)

		loot.SetPos(ph.clampToArena(loot.Pos().Sub(shift), domain.LootRadius))
		other.SetPos(ph.clampToArena(other.Pos().Add(shift), domain.LootRadius))
		ph.syncBody(loot, domain.LootRadius)
		ph.syncBody(other, domain.LootRadius)
		w.MarkPartial(loot)
		w.MarkPartial(other)
	}
}

func (ph *Physics) clampToArena(pos domain.Vec2, r float64) domain.Vec2 {
	if pos.X < r {
		pos.X = r
	}
	if pos.Y < r {
		pos.Y = r
	}
	if pos.X > ph.cfg.MapSize-r {
		pos.X = ph.cfg.MapSize - r
	}
	if pos.Y > ph.cfg.MapSize-r {
		pos.Y = ph.cfg.MapSize - r
	}
	return pos
}

// --- ГЕОМЕТРИЯ (narrowphase) ---

// segmentCircleHit: пересекает ли отрезок [a,b] круг (c, r).
// Возвращает расстояние от a до ближайшей точки пересечения.
func segmentCircleHit(a, b, c domain.Vec2, r float64) (bool, float64) {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	t := 0.0
	if lenSq > 0 {
		t = ((c.X-a.X)*ab.X + (c.Y-a.Y)*ab.Y) / lenSq
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
	}
	closest := a.Add(ab.Scale(t))
	if closest.DistanceTo(c) > r {
		return false, 0
	}
	return true, a.DistanceTo(closest)
}

// rectOverlapsSegment: грубый тест отрезка против AABB с радиусом снаряда.
// Отрезки у нас короткие (подшаг <= 1 юнита), поэтому проверяем три точки.
func rectOverlapsSegment(rx, ry, rw, rh float64, a, b domain.Vec2, r float64) bool {
	mid := a.Add(b).Scale(0.5)
	for _, pt := range [3]domain.Vec2{a, mid, b} {
		if pointInRect(pt, rx-r, ry-r, rw+r*2, rh+r*2) {
			return true
		}
	}
	return false
}

func pointInRect(p domain.Vec2, rx, ry, rw, rh float64) bool {
	return p.X >= rx && p.X <= rx+rw && p.Y >= ry && p.Y <= ry+rh
}

// circleCirclePushOut возвращает вектор, выталкивающий круг (pos, r)
// из круга (c, cr) ровно на глубину проникновения.
func circleCirclePushOut(pos domain.Vec2, r float64, c domain.Vec2, cr float64) (domain.Vec2, bool) {
	delta := pos.Sub(c)
	dist := delta.Len()
	overlap := r + cr - dist
	if overlap <= 0 {
		return domain.Vec2{}, false
	}
	if dist == 0 {
		return domain.Vec2{X: overlap}, true
	}
	return delta.Normalize().Scale(overlap), true
}

// circleRectPushOut - выталкивание круга из AABB.
func circleRectPushOut(pos domain.Vec2, r float64, rx, ry, rw, rh float64) (domain.Vec2, bool) {
	// Ближайшая точка прямоугольника к центру круга.
	cx := math.Max(rx, math.Min(pos.X, rx+rw))
	cy := math.Max(ry, math.Min(pos.Y, ry+rh))
	delta := pos.Sub(domain.Vec2{X: cx, Y: cy})
	dist := delta.Len()

	if dist == 0 {
		// Центр внутри прямоугольника: выталкиваем через ближайшую грань.
		left := pos.X - rx
		right := rx + rw - pos.X
		top := pos.Y - ry
		bottom := ry + rh - pos.Y
		min := math.Min(math.Min(left, right), math.Min(top, bottom))
		switch min {
		case left:
			return domain.Vec2{X: -(left + r)}, true
		case right:
			return domain.Vec2{X: right + r}, true
		case top:
			return domain.Vec2{Y: -(top + r)}, true
		default:
			return domain.Vec2{Y: bottom + r}, true
		}
	}

	overlap := r - dist
	if overlap <= 0 {
		return domain.Vec2{}, false
	}
	return delta.Normalize().Scale(overlap), true
}

// BodyCount - количество тел (для debug-эндпоинтов).
func (ph *Physics) BodyCount() int {
	return len(ph.bodies)
}

// warnStale - общий лог для инвариантных дефектов физики.
func warnStale(where string, id domain.ObjectID) {
	logger.Log.WithField("component", "physics_system").
		WithField("object_id", id).
		Warnf("%s: body references object missing from registry", where)
}
