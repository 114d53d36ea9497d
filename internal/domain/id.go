package domain

import "strconv"

// ObjectID - идентификатор объекта в рамках одного матча.
// Выдается монотонно, никогда не переиспользуется. На проводе кодируется
// 32 битами (см. сериализацию кадров в engine).
type ObjectID uint32

func (id ObjectID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// IDAllocator выдает идентификаторы объектов.
//
// Next мутирует счетчик и возвращает новое значение одним шагом -
// это осознанная замена "геттера с побочным эффектом" из старых версий.
// Метод НЕ реентерабелен внутри тика: вызывать его можно только из
// потока симуляции, где и живет все состояние матча.
type IDAllocator struct {
	last ObjectID
}

func (a *IDAllocator) Next() ObjectID {
	a.last++
	return a.last
}

// Last возвращает последний выданный ID (0, если еще ничего не выдано).
func (a *IDAllocator) Last() ObjectID {
	return a.last
}
