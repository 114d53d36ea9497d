package network

import (
	"sync"
)

// Broadcaster занимается только рассылкой бинарных кадров соединениям.
// Ядро пишет сюда из потока симуляции; write pump каждого соединения
// читает свой личный канал.
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: ConnID -> Личный канал
	subscribers map[string]chan []byte
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan []byte),
	}
}

// Register создает личный канал для соединения.
func (b *Broadcaster) Register(connID string) chan []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[connID]; ok {
		close(old)
	}

	ch := make(chan []byte, 100)
	b.subscribers[connID] = ch
	return ch
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(connID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[connID]; ok {
		close(ch)
		delete(b.subscribers, connID)
	}
}

// SendTo отправляет кадр конкретному соединению (Unicast).
// Медленный потребитель теряет кадры, а не блокирует симуляцию.
func (b *Broadcaster) SendTo(connID string, frame []byte) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.subscribers[connID]; ok {
		select {
		case ch <- frame:
		default:
		}
	}
}

// Broadcast отправляет кадр всем подписчикам.
func (b *Broadcaster) Broadcast(frame []byte) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- frame:
		default:
		}
	}
}

// HasSubscriber проверяет, живо ли соединение.
func (b *Broadcaster) HasSubscriber(connID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[connID]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
