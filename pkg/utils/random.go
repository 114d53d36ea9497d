package utils

import (
	"hash/fnv"
	"math/rand"
)

// StringToSeed детерминированно превращает строку в сид для rand.
// Используется, чтобы имя матча давало один и тот же мир в live- и replay-режимах.
func StringToSeed(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}

// SpreadDegrees возвращает случайное отклонение, равномерное в [-spread, +spread] градусов.
// Отдельная функция, чтобы разброс оружия всегда считался одинаково.
func SpreadDegrees(rng *rand.Rand, spread float64) float64 {
	if spread <= 0 {
		return 0
	}
	return (rng.Float64()*2 - 1) * spread
}
