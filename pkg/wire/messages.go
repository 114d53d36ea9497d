package wire

// Типы исходящих сообщений. Несколько сообщений одного тика
// дописываются в один буфер и уходят одним websocket-фреймом;
// порядок внутри тика фиксирован контрактом протокола:
// Update -> AliveCount -> Kill* -> RoleAnnouncement*.
const (
	MsgJoined           uint8 = 1
	MsgMap              uint8 = 2
	MsgUpdate           uint8 = 3
	MsgAliveCount       uint8 = 4
	MsgKill             uint8 = 5
	MsgRoleAnnouncement uint8 = 6
	MsgPickup           uint8 = 7
	MsgGameOver         uint8 = 8
	MsgZone             uint8 = 9
	MsgEmote            uint8 = 10
	MsgExplosion        uint8 = 11
)

// Битовые ширины протокола.
const (
	// Позиции квантуются 16 битами на ось в границах арены.
	PosBits = 16

	// Направление взгляда: 8 бит на полный оборот.
	DirBits = 8

	// Здоровье/буст: 8 бит в [0, 100].
	StatBits = 8

	// Слой: 2 бита (четыре слоя).
	LayerBits = 2
)
