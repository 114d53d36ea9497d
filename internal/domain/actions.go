package domain

import "strings"

// ActionType - внутренний числовой идентификатор команды игрока.
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionMove
	ActionFireStart
	ActionFireStop
	ActionSwitchSlot
	ActionInteract
	ActionUseItem
	ActionDrop
	ActionEmote

	// Отладочные действия: доступны только с включенными читами.
	ActionAdminTeleport
	ActionAdminGive
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"MOVE":        ActionMove,
	"FIRE_START":  ActionFireStart,
	"FIRE_STOP":   ActionFireStop,
	"SWITCH_SLOT": ActionSwitchSlot,
	"INTERACT":    ActionInteract,
	"USE_ITEM":    ActionUseItem,
	"DROP":        ActionDrop,
	"EMOTE":       ActionEmote,

	"ADMIN_TELEPORT": ActionAdminTeleport,
	"ADMIN_GIVE":     ActionAdminGive,
}

// Маппинг для логов Domain -> String
var actionCmdToString = func() map[ActionType]string {
	m := make(map[ActionType]string, len(actionStringToCmd))
	for s, a := range actionStringToCmd {
		m[a] = s
	}
	return m
}()

// ParseAction конвертирует строку из JSON в ActionType.
// Неизвестное действие - это invalid-intent: игнорируется, не фатально.
func ParseAction(s string) ActionType {
	upper := strings.ToUpper(s)
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
