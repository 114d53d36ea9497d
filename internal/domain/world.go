package domain

import (
	"math/rand"
)

// World - каноническое состояние одного матча. Единственный владелец всех
// игровых объектов; физические тела, наборы видимости и dirty-наборы держат
// только не-владеющие ссылки на реестр.
//
// Все поля мутируются строго из потока симуляции (один логический поток,
// см. модель конкурентности) - мьютексов здесь нет сознательно.
type World struct {
	MapSize float64 // арена - квадрат [0, MapSize] x [0, MapSize]
	Seed    int64
	Rng     *rand.Rand
	Items   *Table

	// Tick - счетчик тиков матча, монотонный.
	Tick uint64

	ids IDAllocator

	// Objects - канонический реестр. Любой объект из dirty-наборов обязан
	// присутствовать здесь в момент сериализации, кроме deletedObjects.
	Objects map[ObjectID]GameObject

	// Players - все игроки, включая отключенных с непустым инвентарем.
	Players map[ObjectID]*Player

	// Bullets - живые снаряды.
	Bullets map[ObjectID]*Projectile

	// --- DIRTY-НАБОРЫ (пер-тик, членство идемпотентно) ---
	NewObjects     map[ObjectID]GameObject
	FullDirty      map[ObjectID]GameObject
	PartialDirty   map[ObjectID]GameObject
	DeletedObjects map[ObjectID]struct{}

	// ObjectsChanged: в этом тике что-то добавили/поменяли/удалили -
	// всем соединениям нужен пересчет видимости.
	ObjectsChanged bool

	// --- ЭФЕМЕРНЫЕ ОЧЕРЕДИ ТИКА ---
	damageQueue []DamageRecord

	// SpawnedBullets - снаряды, созданные в ЭТОМ тике (для очереди дальности).
	SpawnedBullets []*Projectile

	Kills         []KillEvent
	Announcements []RoleAnnouncement
	Emotes        []EmoteEvent
	Explosions    []ExplosionEvent
	PickupResults []PickupResult

	// --- АГРЕГАТНОЕ СОСТОЯНИЕ СЕССИИ ---
	AliveCount    int
	AliveDirty    bool
	KillLeaderID  ObjectID
	KillLeaderNum int

	Zone HazardZone
}

// NewWorld создает пустой мир матча.
func NewWorld(seed int64, mapSize float64, items *Table) *World {
	return &World{
		MapSize:        mapSize,
		Seed:           seed,
		Rng:            rand.New(rand.NewSource(seed)),
		Items:          items,
		Objects:        make(map[ObjectID]GameObject),
		Players:        make(map[ObjectID]*Player),
		Bullets:        make(map[ObjectID]*Projectile),
		NewObjects:     make(map[ObjectID]GameObject),
		FullDirty:      make(map[ObjectID]GameObject),
		PartialDirty:   make(map[ObjectID]GameObject),
		DeletedObjects: make(map[ObjectID]struct{}),
	}
}

// NextID выдает следующий ID объекта. Обертка над аллокатором,
// чтобы у систем не было доступа к счетчику напрямую.
func (w *World) NextID() ObjectID {
	return w.ids.Next()
}

// LastID - последний выданный ID (для инвариантов в тестах).
func (w *World) LastID() ObjectID {
	return w.ids.Last()
}

// Register вносит объект в реестр и помечает его новым.
func (w *World) Register(obj GameObject) {
	id := obj.ID()
	w.Objects[id] = obj
	w.NewObjects[id] = obj
	w.ObjectsChanged = true

	switch o := obj.(type) {
	case *Player:
		w.Players[id] = o
	case *Projectile:
		w.Bullets[id] = o
	}
}

// Unregister удаляет объект из реестра и помечает удаленным.
// Идемпотентен: повторное удаление того же объекта - no-op.
func (w *World) Unregister(obj GameObject) {
	id := obj.ID()
	if _, deleted := w.DeletedObjects[id]; deleted {
		return
	}
	delete(w.Objects, id)
	delete(w.Bullets, id)
	// Persisted-дисконнект сюда не попадает: такой игрок остается
	// и в Objects, и в Players, Unregister для него не вызывают.
	delete(w.Players, id)

	// Объект не должен одновременно числиться новым/грязным и удаленным.
	delete(w.NewObjects, id)
	delete(w.FullDirty, id)
	delete(w.PartialDirty, id)

	w.DeletedObjects[id] = struct{}{}
	w.ObjectsChanged = true
}

// MarkFull помечает объект на полную переотправку.
// Идемпотентно; новые и удаленные объекты не дублируются.
func (w *World) MarkFull(obj GameObject) {
	id := obj.ID()
	if _, ok := w.NewObjects[id]; ok {
		return
	}
	if _, ok := w.DeletedObjects[id]; ok {
		return
	}
	delete(w.PartialDirty, id)
	w.FullDirty[id] = obj
	w.ObjectsChanged = true
}

// MarkPartial помечает объект на частичную (позиция/анимация) переотправку.
// Если объект уже new/full/deleted - более сильное состояние побеждает.
// ObjectsChanged поднимается и здесь: двигающийся объект может войти в
// радиус обзора неподвижного игрока, его набор видимости тоже устаревает.
func (w *World) MarkPartial(obj GameObject) {
	id := obj.ID()
	w.ObjectsChanged = true
	if _, ok := w.NewObjects[id]; ok {
		return
	}
	if _, ok := w.FullDirty[id]; ok {
		return
	}
	if _, ok := w.DeletedObjects[id]; ok {
		return
	}
	w.PartialDirty[id] = obj
}

// QueueDamage ставит факт урона в очередь тика.
// Вызывается из коллбэка контакта физики: там никакой другой мутации нет.
func (w *World) QueueDamage(rec DamageRecord) {
	w.damageQueue = append(w.damageQueue, rec)
}

// DrainDamage отдает все накопленные записи и очищает очередь.
// Контракт: вызывается ровно один раз за тик, до боевой логики.
func (w *World) DrainDamage() []DamageRecord {
	drained := w.damageQueue
	w.damageQueue = nil
	return drained
}

// ClearTick безусловно очищает все dirty-наборы и эфемерные очереди.
// Вызывается в конце КАЖДОГО тика, даже если ни одно соединение
// ничего не потребило.
func (w *World) ClearTick() {
	clear(w.NewObjects)
	clear(w.FullDirty)
	clear(w.PartialDirty)
	clear(w.DeletedObjects)

	w.damageQueue = nil
	w.SpawnedBullets = nil
	w.Kills = nil
	w.Announcements = nil
	w.Emotes = nil
	w.Explosions = nil
	w.PickupResults = nil

	w.ObjectsChanged = false
	w.AliveDirty = false
	w.Zone.Dirty = false
}

// DecrementAlive уменьшает счетчик живых ровно на единицу.
// Никогда не уходит в минус: рассинхрон - дефект, логируем на вызывающей
// стороне и пропускаем.
func (w *World) DecrementAlive() bool {
	if w.AliveCount <= 0 {
		return false
	}
	w.AliveCount--
	w.AliveDirty = true
	return true
}

// UpdateKillLeader проверяет, стал ли игрок новым kill leader.
// Возвращает true, если лидер сменился (нужно объявление).
func (w *World) UpdateKillLeader(p *Player) bool {
	if p.Kills < KillLeaderMinKills || p.Kills <= w.KillLeaderNum {
		// Действующий лидер обновляет собственный счет без смены роли.
		if p.ID() == w.KillLeaderID && p.Kills > w.KillLeaderNum {
			w.KillLeaderNum = p.Kills
			return false
		}
		return false
	}
	changed := w.KillLeaderID != p.ID()
	w.KillLeaderID = p.ID()
	w.KillLeaderNum = p.Kills
	return changed
}
