package engine

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Viswas-Programs/survivreloaded-server/internal/infrastructure/storage"
	"github.com/Viswas-Programs/survivreloaded-server/internal/systems"
	"github.com/Viswas-Programs/survivreloaded-server/pkg/logger"
)

// Run - игровой цикл матча. Тик стартует каждые Cfg.TickMillis мс;
// если работа заняла дольше бюджета, следующий тик начинается сразу
// (время сна не бывает отрицательным).
func (s *Session) Run() {
	logger.Log.WithField("component", "session").Info("Game loop started")
	interval := s.Cfg.TickInterval()

	for {
		// Флаг остановки проверяется в начале тика, не в середине.
		select {
		case <-s.stopChan:
			logger.Log.WithField("component", "session").Info("Game loop stopped")
			return
		default:
		}

		started := time.Now()
		s.runTick()
		elapsed := time.Since(started)

		if elapsed > interval {
			logger.Log.WithFields(logrus.Fields{
				"component": "session",
				"tick":      s.World.Tick,
				"elapsed":   elapsed,
			}).Warn("Tick over budget")
		}

		sleep := interval - elapsed
		if sleep > 0 {
			time.Sleep(sleep)
		}
	}
}

// runTick выполняет один тик целиком. Порядок фаз фиксирован:
// вход/выход/команды применяются строго на границе, затем физика,
// бой, игроки, дальность пуль, зона, рассылка и безусловная очистка.
func (s *Session) runTick() {
	s.World.Tick++

	// 1. Границы тика: входы, выходы, буферизованные команды.
	s.drainInbox()

	// 2. Физика: интеграция, контакты (только постановка в очередь).
	s.Physics.Step(s.World, s.Cfg.TickDt())

	// 3. Бой: выгребание очереди урона, затем огонь этого тика.
	systems.ResolveDamage(s.World, s.Physics)
	systems.UpdateWeapons(s.World, s.Physics)

	// 4. Пер-игроковое обновление: движение, буст/реген, действия.
	systems.UpdatePlayers(s.World)

	// 5. Дальность пуль: созданные в тике - в очередь, истекшие - прочь.
	for _, b := range s.World.SpawnedBullets {
		s.expiry.Add(b)
	}
	for _, b := range s.expiry.PopDue(s.World.Tick) {
		// Пуля могла уже погибнуть попаданием: DestroyBullet идемпотентен.
		systems.DestroyBullet(s.World, s.Physics, b)
	}

	// 6. Опасная зона.
	s.updateZone()

	// 7. Условие конца матча.
	s.checkGameOver()

	// 8. Рассылка дельт и событий каждому соединению.
	s.broadcastState()

	// 9. Безусловная очистка эфемерного состояния тика.
	s.World.ClearTick()
}

// drainInbox применяет всё, что накопили каналы между тиками.
func (s *Session) drainInbox() {
	for {
		select {
		case req := <-s.JoinChan:
			s.addPlayer(req)
		case connID := <-s.LeaveChan:
			s.removeConn(connID)
		case cmd := <-s.CommandChan:
			s.executeCommand(cmd)
		default:
			return
		}
	}
}

// checkGameOver объявляет победителя, когда живых не больше одного.
// До входа второго игрока условие не проверяется: разминка в одиночку
// не завершает матч.
func (s *Session) checkGameOver() {
	if s.gameOver || s.everJoined < 2 || s.World.AliveCount > 1 {
		return
	}
	s.gameOver = true

	winner := s.findWinner()
	s.broadcastGameOver(winner)

	if s.Cfg.JournalPath != "" {
		journal := storage.NewJournalService(s.Cfg.JournalPath)
		if err := journal.Save(s.Journal); err != nil {
			logger.Log.WithField("error", err).Error("Failed to save match journal")
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "session",
		"tick":      s.World.Tick,
		"alive":     s.World.AliveCount,
	}).Info("Match over")

	s.Stop()
}
