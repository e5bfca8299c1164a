package optimistic

import "errors"

var (
	ErrNoScope   = errors.New("optimistic: no scope selected")
	ErrNotLoaded = errors.New("optimistic: record is not in the collection")
)

// Outcome — итог операции для UI: успех и сообщение. Err сохраняется для errors.Is.
type Outcome struct {
	Success bool
	Message string
	Err     error
}

// Result — Outcome плюс сущность, когда она доступна.
type Result[E any] struct {
	Outcome
	Entity *E
}

func ok(msg string) Outcome { return Outcome{Success: true, Message: msg} }

func fail(msg string, err error) Outcome { return Outcome{Message: msg, Err: err} }
