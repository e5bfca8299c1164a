package optimistic

import "fmt"

// Identity — явная пара «серверный id / временный id» вместо знака числа.
// Ровно одно из полей заполнено.
type Identity struct {
	ID      int64
	Pending TempID
}

func Confirmed(id int64) Identity { return Identity{ID: id} }

func Provisional(tmp TempID) Identity { return Identity{Pending: tmp} }

func (i Identity) IsPending() bool { return i.Pending != 0 }

func (i Identity) String() string {
	if i.IsPending() {
		return fmt.Sprintf("pending:%d", i.Pending)
	}
	return fmt.Sprintf("%d", i.ID)
}

// Record — элемент коллекции: идентичность плюс значение сущности.
type Record[E any] struct {
	Identity Identity
	Value    E
}
