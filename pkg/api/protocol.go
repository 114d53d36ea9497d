package api

import (
	"encoding/json"
)

// --- КЛИЕНТ -> СЕРВЕР ---
//
// Входящие команды идут текстовым JSON: их мало и они маленькие.
// Исходящее состояние, наоборот, бинарное (см. pkg/wire) - оно уходит
// каждому соединению каждый тик.

// ClientCommand - конверт любой команды клиента.
type ClientCommand struct {
	// Action - имя действия: "MOVE", "FIRE_START", "INTERACT", ...
	Action string `json:"action"`

	// Payload - параметры действия, формат зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// JoinPayload - первое сообщение соединения (handshake).
type JoinPayload struct {
	Name string `json:"name"`
}

// MovePayload - намерение движения. Либо 8-направленный ввод
// (Dx/Dy из {-1,0,1}), либо тач-вектор (Touch=true + TouchX/TouchY).
// Поcледняя полученная команда авторитетна для текущего тика.
type MovePayload struct {
	Dx int `json:"dx"`
	Dy int `json:"dy"`

	Touch  bool    `json:"touch,omitempty"`
	TouchX float64 `json:"touchX,omitempty"`
	TouchY float64 `json:"touchY,omitempty"`
}

// FirePayload - нажатие/направление огня. DirX/DirY - куда смотрит игрок.
type FirePayload struct {
	DirX float64 `json:"dirX"`
	DirY float64 `json:"dirY"`
}

// SwitchSlotPayload - смена активного слота оружия.
type SwitchSlotPayload struct {
	Slot int `json:"slot"`
}

// InteractPayload - подбор/взаимодействие. TargetID = 0 означает
// "ближайший подходящий объект".
type InteractPayload struct {
	TargetID uint32 `json:"targetId,omitempty"`
}

// UseItemPayload - применить расходник из инвентаря.
type UseItemPayload struct {
	Item string `json:"item"`
}

// DropPayload - выбросить предмет.
type DropPayload struct {
	Item  string `json:"item"`
	Count int    `json:"count,omitempty"`
}

// EmotePayload - эмоция.
type EmotePayload struct {
	Type uint8 `json:"type"`
}
