package actions

import (
	"github.com/Viswas-Programs/survivreloaded-server/internal/domain"
	"github.com/Viswas-Programs/survivreloaded-server/internal/engine/handlers"
	"github.com/Viswas-Programs/survivreloaded-server/pkg/api"
)

// HandleEmote ставит эмоцию в очередь тика; увидят её только те,
// у кого автор в наборе видимости.
func HandleEmote(ctx handlers.Context, p api.EmotePayload) (handlers.Result, error) {
	ctx.World.Emotes = append(ctx.World.Emotes, domain.EmoteEvent{
		PlayerID: ctx.Actor.ID(),
		Type:     p.Type,
		Pos:      ctx.Actor.Pos(),
	})
	return handlers.EmptyResult(), nil
}
