package domain

import "encoding/json"

// JournalAction - одна команда игрока, как она была применена на границе тика.
type JournalAction struct {
	Tick     uint64
	PlayerID ObjectID
	Action   ActionType
	Payload  json.RawMessage
}

// JournalSession - лента матча: сид плюс все примененные команды.
// Этого достаточно для детерминированного проигрывания матча заново.
type JournalSession struct {
	Seed      int64
	MapSize   float64
	Timestamp int64
	Actions   []JournalAction
}
