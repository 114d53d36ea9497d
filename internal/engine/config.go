package engine

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config - параметры матча и движка. Загружается из YAML;
// нулевые поля добиваются значениями по умолчанию.
type Config struct {
	// TickMillis - длительность тика в миллисекундах.
	TickMillis int `yaml:"tick_millis"`

	MapSize    float64 `yaml:"map_size"`
	MaxPlayers int     `yaml:"max_players"`

	// Seed - строковый сид матча; пустая строка = случайный.
	Seed string `yaml:"seed"`

	// Спавн препятствий и лута при генерации арены.
	ObstacleCount int `yaml:"obstacle_count"`
	LootSpawns    int `yaml:"loot_spawns"`

	Zone ZoneConfig `yaml:"zone"`

	// JournalPath - каталог журналов матчей ("" = журнал выключен).
	JournalPath string `yaml:"journal_path"`

	// DebugCheats включает админ-команды (телепорт, выдача предметов).
	DebugCheats bool `yaml:"debug_cheats"`
}

// ZoneConfig - расписание сжатия опасной зоны.
type ZoneConfig struct {
	Enabled bool `yaml:"enabled"`

	// WaitTicks/MoveTicks - длительности фаз ожидания и сжатия.
	WaitTicks uint64 `yaml:"wait_ticks"`
	MoveTicks uint64 `yaml:"move_ticks"`

	// ShrinkFactor - во сколько раз уменьшается радиус за стадию.
	ShrinkFactor float64 `yaml:"shrink_factor"`

	BaseDamagePerTick float64 `yaml:"base_damage_per_tick"`
}

// DefaultConfig - параметры матча по умолчанию (30ms тик).
func DefaultConfig() Config {
	return Config{
		TickMillis:    30,
		MapSize:       360,
		MaxPlayers:    80,
		ObstacleCount: 220,
		LootSpawns:    90,
		Zone: ZoneConfig{
			Enabled:           true,
			WaitTicks:         2000,
			MoveTicks:         1000,
			ShrinkFactor:      0.55,
			BaseDamagePerTick: 0.05,
		},
	}
}

// LoadConfig читает YAML-файл поверх значений по умолчанию.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.TickMillis <= 0 {
		cfg.TickMillis = 30
	}
	if cfg.MapSize <= 0 {
		cfg.MapSize = 360
	}
	return cfg, nil
}

// TickInterval - длительность тика.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickMillis) * time.Millisecond
}

// TickDt - шаг интегрирования в секундах.
func (c Config) TickDt() float64 {
	return float64(c.TickMillis) / 1000.0
}
