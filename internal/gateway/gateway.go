// Package gateway описывает порт удалённого сервиса: CRUD одной сущности
// в пределах области (компания или родительский товар).
package gateway

import "context"

// Gateway — удалённый CRUD для сущности E с черновиком D и патчем P.
// scopeID — id компании для товаров/материалов и id товара для вариантов/компонентов.
type Gateway[E, D, P any] interface {
	List(ctx context.Context, scopeID int64) ([]E, error)
	Create(ctx context.Context, scopeID int64, draft D) (E, error)
	Update(ctx context.Context, id int64, patch P) (E, error)
	Delete(ctx context.Context, id int64) error
}
