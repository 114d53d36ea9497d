package actions

import (
	"github.com/Viswas-Programs/survivreloaded-server/internal/domain"
	"github.com/Viswas-Programs/survivreloaded-server/internal/engine/handlers"
	"github.com/Viswas-Programs/survivreloaded-server/internal/systems"
	"github.com/Viswas-Programs/survivreloaded-server/pkg/api"
)

// HandleDrop выбрасывает предмет из инвентаря или слота оружия.
func HandleDrop(ctx handlers.Context, p api.DropPayload) (handlers.Result, error) {
	if !systems.DropItem(ctx.World, ctx.Physics, ctx.Actor, domain.ItemType(p.Item), p.Count) {
		return handlers.Result{Msg: "drop rejected"}, nil
	}
	return handlers.EmptyResult(), nil
}
