package server

import (
	"encoding/json"
	"net/http"

	"github.com/Viswas-Programs/survivreloaded-server/internal/domain"
	"github.com/Viswas-Programs/survivreloaded-server/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию матча.
// Чтение происходит без синхронизации с потоком симуляции: для
// debug-глаз этого достаточно, для чего-либо еще - нет.
type DebugHandler struct {
	Session *engine.Session
}

func NewDebugHandler(s *engine.Session) *DebugHandler {
	return &DebugHandler{Session: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/match", h.handleMatchSummary)
	mux.HandleFunc("/debug/objects", h.handleDumpObjects)
	mux.HandleFunc("/debug/zone", h.handleZone)
}

// /debug/match - сводка матча
func (h *DebugHandler) handleMatchSummary(w http.ResponseWriter, r *http.Request) {
	type MatchSummary struct {
		Tick        uint64  `json:"tick"`
		Seed        int64   `json:"seed"`
		MapSize     float64 `json:"map_size"`
		ObjectCount int     `json:"object_count"`
		PlayerCount int     `json:"player_count"`
		BulletCount int     `json:"bullet_count"`
		BodyCount   int     `json:"body_count"`
		AliveCount  int     `json:"alive_count"`
		Subscribers int     `json:"subscribers"`
	}

	world := h.Session.World
	writeJSON(w, MatchSummary{
		Tick:        world.Tick,
		Seed:        world.Seed,
		MapSize:     world.MapSize,
		ObjectCount: len(world.Objects),
		PlayerCount: len(world.Players),
		BulletCount: len(world.Bullets),
		BodyCount:   h.Session.Physics.BodyCount(),
		AliveCount:  world.AliveCount,
		Subscribers: h.Session.Hub.SubscriberCount(),
	})
}

// /debug/objects?kind=PLAYER - дамп объектов реестра (позиции, виды)
func (h *DebugHandler) handleDumpObjects(w http.ResponseWriter, r *http.Request) {
	type ObjectView struct {
		ID   uint32  `json:"id"`
		Kind string  `json:"kind"`
		X    float64 `json:"x"`
		Y    float64 `json:"y"`
	}

	kindFilter := r.URL.Query().Get("kind")

	var out []ObjectView
	for _, obj := range h.Session.World.Objects {
		if kindFilter != "" && obj.Kind().String() != kindFilter {
			continue
		}
		out = append(out, ObjectView{
			ID:   uint32(obj.ID()),
			Kind: obj.Kind().String(),
			X:    obj.Pos().X,
			Y:    obj.Pos().Y,
		})
	}
	writeJSON(w, out)
}

// /debug/zone - текущее состояние опасной зоны
func (h *DebugHandler) handleZone(w http.ResponseWriter, r *http.Request) {
	z := h.Session.World.Zone
	type ZoneView struct {
		Mode          uint8       `json:"mode"`
		Stage         int         `json:"stage"`
		Current       domain.Vec2 `json:"current_center"`
		CurrentRadius float64     `json:"current_radius"`
		StageEndTick  uint64      `json:"stage_end_tick"`
		DamagePerTick float64     `json:"damage_per_tick"`
	}
	writeJSON(w, ZoneView{
		Mode:          uint8(z.Mode),
		Stage:         z.Stage,
		Current:       z.CurrentCenter,
		CurrentRadius: z.CurrentRadius,
		StageEndTick:  z.StageEndTick,
		DamagePerTick: z.DamagePerTick,
	})
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Пустой результат - это [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
