package domain

// ZoneMode - фаза сжимающейся безопасной области.
type ZoneMode uint8

const (
	ZoneInactive ZoneMode = iota
	ZoneWaiting           // граница объявлена, сжатие еще не началось
	ZoneMoving            // граница движется от Old к New
)

// HazardZone - состояние опасной зоны. Мутируется драйвером зоны,
// ядро потребляет его только ради dirty-флагов и урона за границей.
type HazardZone struct {
	Mode ZoneMode

	OldCenter Vec2
	NewCenter Vec2
	OldRadius float64
	NewRadius float64

	// Текущая (интерполированная) граница - для урона на сервере.
	CurrentCenter Vec2
	CurrentRadius float64

	// Dirty: геометрия/фаза изменилась, нужно переслать всем.
	Dirty bool

	DamagePerTick float64

	Stage          int
	StageStartTick uint64
	StageEndTick   uint64
}
