package actions

import (
	"github.com/Viswas-Programs/survivreloaded-server/internal/domain"
	"github.com/Viswas-Programs/survivreloaded-server/internal/engine/handlers"
	"github.com/Viswas-Programs/survivreloaded-server/internal/systems"
	"github.com/Viswas-Programs/survivreloaded-server/pkg/api"
)

// HandleInteract - подбор лута. TargetID = 0 означает "ближайший";
// явная цель проверяется на досягаемость, чтобы клиент не мог
// подобрать предмет через всю карту.
func HandleInteract(ctx handlers.Context, p api.InteractPayload) (handlers.Result, error) {
	var loot *domain.Loot

	if p.TargetID != 0 {
		obj, ok := ctx.World.Objects[domain.ObjectID(p.TargetID)]
		if !ok || !obj.Interactable() {
			return handlers.Result{Msg: "interact target gone"}, nil
		}
		l, ok := obj.(*domain.Loot)
		if !ok || !withinReach(ctx.Actor, l) {
			return handlers.Result{Msg: "interact target out of reach"}, nil
		}
		loot = l
	} else {
		loot = systems.NearestLoot(ctx.World, ctx.Actor)
		if loot == nil {
			return handlers.EmptyResult(), nil
		}
	}

	res := systems.TryPickup(ctx.World, ctx.Physics, ctx.Actor, loot)
	ctx.World.PickupResults = append(ctx.World.PickupResults, res)
	return handlers.EmptyResult(), nil
}

func withinReach(p *domain.Player, l *domain.Loot) bool {
	if l.Layer() != p.Layer() {
		return false
	}
	const reach = domain.PlayerRadius + domain.LootRadius + 1.2
	return p.Pos().DistanceTo(l.Pos()) <= reach
}
