package actions

import (
	"github.com/Viswas-Programs/survivreloaded-server/internal/domain"
	"github.com/Viswas-Programs/survivreloaded-server/internal/engine/handlers"
	"github.com/Viswas-Programs/survivreloaded-server/pkg/api"
)

// HandleMove принимает намерение движения. Последняя команда тика
// авторитетна; сама позиция меняется только физикой.
func HandleMove(ctx handlers.Context, p api.MovePayload) (handlers.Result, error) {
	var dir domain.Vec2
	if p.Touch {
		dir = domain.Vec2{X: p.TouchX, Y: p.TouchY}
	} else {
		dir = domain.Vec2{X: float64(p.Dx), Y: float64(p.Dy)}
	}

	if dir.X == 0 && dir.Y == 0 {
		ctx.Actor.Intent = domain.MoveIntent{}
		return handlers.EmptyResult(), nil
	}

	dir = dir.Normalize()
	ctx.Actor.Intent = domain.MoveIntent{Moving: true, Dir: dir}

	// Пока курок не зажат, взгляд следует за движением.
	if !ctx.Actor.Firing {
		ctx.Actor.Dir = dir
	}
	return handlers.EmptyResult(), nil
}
