package engine

import (
	"container/heap"

	"github.com/Viswas-Programs/survivreloaded-server/internal/domain"
)

// expiryItem - обертка для элемента очереди приоритетов
type expiryItem struct {
	Bullet   *domain.Projectile
	Priority uint64 // Тик истечения дальности. Чем меньше, тем раньше.
	Index    int    // Индекс в куче (нужен для heap.Fix)
}

// expiryHeap реализует heap.Interface и хранит expiryItems
type expiryHeap []*expiryItem

func (pq expiryHeap) Len() int { return len(pq) }

func (pq expiryHeap) Less(i, j int) bool {
	// MinHeap: раньше истекает - раньше выходит
	return pq[i].Priority < pq[j].Priority
}

func (pq expiryHeap) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *expiryHeap) Push(x interface{}) {
	n := len(*pq)
	item := x.(*expiryItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *expiryHeap) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // избегаем утечки памяти
	item.Index = -1 // для безопасности
	*pq = old[0 : n-1]
	return item
}

// ExpiryQueue - очередь дальности пуль: каждая пуля исчезает не позже
// своего тика истечения, без обхода всех живых пуль на каждом тике.
type ExpiryQueue struct {
	items expiryHeap
}

func NewExpiryQueue() *ExpiryQueue {
	q := &ExpiryQueue{items: make(expiryHeap, 0, 64)}
	heap.Init(&q.items)
	return q
}

// Add ставит пулю в очередь по её тику истечения.
func (q *ExpiryQueue) Add(b *domain.Projectile) {
	heap.Push(&q.items, &expiryItem{Bullet: b, Priority: b.ExpiryTick()})
}

// PopDue отдает все пули, чей срок наступил к тику tick.
// Пули, уже уничтоженные попаданием, вызывающий отфильтрует по реестру.
func (q *ExpiryQueue) PopDue(tick uint64) []*domain.Projectile {
	var due []*domain.Projectile
	for q.items.Len() > 0 && q.items[0].Priority <= tick {
		item := heap.Pop(&q.items).(*expiryItem)
		due = append(due, item.Bullet)
	}
	return due
}

// Len - количество пуль, ждущих истечения.
func (q *ExpiryQueue) Len() int {
	return q.items.Len()
}
