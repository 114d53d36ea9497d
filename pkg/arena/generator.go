// Package arena генерирует статическую часть карты матча: препятствия
// и предзаложенный лут. Генерация детерминирована сидом мира - два
// сервера с одним сидом соберут одинаковую арену.
package arena

import (
	"github.com/sirupsen/logrus"

	"github.com/Viswas-Programs/survivreloaded-server/internal/domain"
	"github.com/Viswas-Programs/survivreloaded-server/internal/systems"
	"github.com/Viswas-Programs/survivreloaded-server/pkg/logger"
)

// Params - объемы генерации.
type Params struct {
	ObstacleCount int
	LootSpawns    int
}

// Отступ от границы арены при размещении.
const edgeMargin = 6.0

// obstacleTemplate - шаблон препятствия для генератора.
type obstacleTemplate struct {
	Type         string
	Shape        domain.CollisionShape
	Radius       float64
	HalfW, HalfH float64
	Destructible bool
	Health       float64
	LootDrop     domain.ItemType
	LootCount    int
	Weight       int
}

var obstacleTemplates = []obstacleTemplate{
	{Type: "tree01", Shape: domain.ShapeCircle, Radius: 1.6, Weight: 5},
	{Type: "rock01", Shape: domain.ShapeCircle, Radius: 2.0, Weight: 4},
	{Type: "bush01", Shape: domain.ShapeCircle, Radius: 1.2, Destructible: true, Health: 30, Weight: 3},
	{Type: "crate01", Shape: domain.ShapeRect, HalfW: 1.5, HalfH: 1.5, Destructible: true, Health: 75, LootDrop: "bandage", LootCount: 5, Weight: 4},
	{Type: "crate02", Shape: domain.ShapeRect, HalfW: 1.5, HalfH: 1.5, Destructible: true, Health: 75, LootDrop: "soda", LootCount: 2, Weight: 2},
	{Type: "barrel01", Shape: domain.ShapeCircle, Radius: 1.1, Destructible: true, Health: 60, Weight: 2},
}

// groundLoot - пул предзаложенного лута и веса выпадения.
var groundLoot = []struct {
	Type   domain.ItemType
	Count  int
	Weight int
}{
	{"m9", 1, 5},
	{"mp5", 1, 3},
	{"ak47", 1, 2},
	{"m870", 1, 2},
	{"bandage", 5, 6},
	{"medkit", 1, 2},
	{"soda", 2, 4},
	{"pills", 1, 2},
	{"chest01", 1, 3},
	{"chest02", 1, 2},
	{"chest03", 1, 1},
	{"helmet01", 1, 3},
	{"helmet02", 1, 2},
	{"helmet03", 1, 1},
	{"backpack01", 1, 3},
	{"backpack02", 1, 2},
	{"2xscope", 1, 2},
	{"4xscope", 1, 1},
}

// Generate наполняет пустой мир препятствиями и лутом.
func Generate(w *domain.World, ph *systems.Physics, p Params) {
	for i := 0; i < p.ObstacleCount; i++ {
		tpl := pickObstacle(w)
		pos := randomFreePos(w, obstacleExtent(tpl))

		o := &domain.Obstacle{
			ObjectCommon: domain.ObjectCommon{ObjID: w.NextID(), Position: pos},
			Type:         tpl.Type,
			Shape:        tpl.Shape,
			Radius:       tpl.Radius,
			HalfW:        tpl.HalfW,
			HalfH:        tpl.HalfH,
			Destructible: tpl.Destructible,
			Health:       tpl.Health,
			LootDrop:     tpl.LootDrop,
			LootCount:    tpl.LootCount,
		}
		w.Register(o)
		ph.AddBody(o)
	}

	for i := 0; i < p.LootSpawns; i++ {
		entry := pickLoot(w)
		pos := randomFreePos(w, domain.LootRadius)

		l := domain.NewLoot(w.NextID(), entry.Type, entry.Count, pos)
		l.Preloaded = true
		w.Register(l)
		ph.AddBody(l)
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "arena",
		"obstacles": p.ObstacleCount,
		"loot":      p.LootSpawns,
		"seed":      w.Seed,
	}).Info("Arena generated")
}

// SpawnPoint подбирает позицию спавна игрока вне препятствий.
func SpawnPoint(w *domain.World) domain.Vec2 {
	return randomFreePos(w, domain.PlayerRadius)
}

func pickObstacle(w *domain.World) obstacleTemplate {
	total := 0
	for _, t := range obstacleTemplates {
		total += t.Weight
	}
	n := w.Rng.Intn(total)
	for _, t := range obstacleTemplates {
		n -= t.Weight
		if n < 0 {
			return t
		}
	}
	return obstacleTemplates[0]
}

func pickLoot(w *domain.World) struct {
	Type   domain.ItemType
	Count  int
	Weight int
} {
	total := 0
	for _, e := range groundLoot {
		total += e.Weight
	}
	n := w.Rng.Intn(total)
	for _, e := range groundLoot {
		n -= e.Weight
		if n < 0 {
			return e
		}
	}
	return groundLoot[0]
}

func obstacleExtent(t obstacleTemplate) float64 {
	if t.Shape == domain.ShapeRect {
		if t.HalfW > t.HalfH {
			return t.HalfW
		}
		return t.HalfH
	}
	return t.Radius
}

// randomFreePos сэмплирует позицию, не пересекающую препятствия.
// После разумного числа попыток сдается и возвращает последнюю - на
// большой арене это практически недостижимо.
func randomFreePos(w *domain.World, extent float64) domain.Vec2 {
	var pos domain.Vec2
	for attempt := 0; attempt < 32; attempt++ {
		pos = domain.Vec2{
			X: edgeMargin + w.Rng.Float64()*(w.MapSize-edgeMargin*2),
			Y: edgeMargin + w.Rng.Float64()*(w.MapSize-edgeMargin*2),
		}
		if !overlapsObstacle(w, pos, extent) {
			return pos
		}
	}
	return pos
}

func overlapsObstacle(w *domain.World, pos domain.Vec2, extent float64) bool {
	for _, obj := range w.Objects {
		o, ok := obj.(*domain.Obstacle)
		if !ok || o.Dead {
			continue
		}
		if o.Shape == domain.ShapeRect {
			dx := abs(pos.X-o.Pos().X) - o.HalfW
			dy := abs(pos.Y-o.Pos().Y) - o.HalfH
			if dx < extent && dy < extent {
				return true
			}
		} else {
			if pos.DistanceTo(o.Pos()) < extent+o.Radius {
				return true
			}
		}
	}
	return false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
