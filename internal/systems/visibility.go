package systems

import (
	"github.com/Viswas-Programs/survivreloaded-server/internal/domain"
)

// Запас к радиусу обзора: объекты на самой кромке не мерцают
// при микродвижениях камеры.
const visMargin = 1.5

// ComputeVisible - чистая функция: возвращает набор объектов в круге
// обзора наблюдателя. Никаких мутаций мира; вызывающий владеет
// результатом и сравнивает его с прошлым набором соединения.
func ComputeVisible(w *domain.World, viewer *domain.Player) map[domain.ObjectID]struct{} {
	radius := viewer.ViewRadius + visMargin
	r2 := radius * radius
	center := viewer.Pos()

	out := make(map[domain.ObjectID]struct{}, 64)
	out[viewer.ID()] = struct{}{} // себя видно всегда

	for id, obj := range w.Objects {
		if id == viewer.ID() {
			continue
		}
		d := obj.Pos().Sub(center)
		if d.X*d.X+d.Y*d.Y <= r2 {
			out[id] = struct{}{}
		}
	}
	return out
}

// NeedsVisRecompute сообщает, накопил ли игрок достаточно перемещения,
// чтобы пересчитывать его набор видимости на этом тике.
func NeedsVisRecompute(p *domain.Player) bool {
	return p.MovedSinceVis >= domain.VisMoveThreshold
}

// ResetVisMotion сбрасывает накопленное перемещение после пересчета.
func ResetVisMotion(p *domain.Player) {
	p.MovedSinceVis = 0
}
