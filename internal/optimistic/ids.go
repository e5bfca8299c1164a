package optimistic

import (
	"sync/atomic"
	"time"
)

// TempID — временный идентификатор записи, ещё не подтверждённой сервером.
// Всегда строго отрицательный, поэтому не пересекается с серверными id.
type TempID int64

// IDAllocator выдаёт временные id. Один аллокатор на сессию; значения не повторяются.
type IDAllocator struct {
	last atomic.Int64
}

func NewIDAllocator() *IDAllocator {
	a := &IDAllocator{}
	a.last.Store(-time.Now().UnixMilli())
	return a
}

// Allocate возвращает следующий временный id (монотонно убывает).
func (a *IDAllocator) Allocate() TempID {
	return TempID(a.last.Add(-1))
}
