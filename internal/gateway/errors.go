package gateway

import (
	"errors"
	"fmt"
)

var (
	ErrNetwork    = errors.New("gateway: network error")
	ErrAuth       = errors.New("gateway: unauthorized")
	ErrNotFound   = errors.New("gateway: not found")
	ErrValidation = errors.New("gateway: validation failed")
)

// Error — классифицированная ошибка адаптера. Kind — один из Err* выше.
type Error struct {
	Op     string
	Kind   error
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

func Wrap(op string, kind error, detail string, err error) error {
	return &Error{Op: op, Kind: kind, Detail: detail, Err: err}
}

// Classify приводит произвольную ошибку к одному из видов; неизвестное считаем сетевой ошибкой.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrAuth):
		return ErrAuth
	case errors.Is(err, ErrNotFound):
		return ErrNotFound
	case errors.Is(err, ErrValidation):
		return ErrValidation
	default:
		return ErrNetwork
	}
}

// Describe — короткое описание для пользователя.
func Describe(err error) string {
	var ge *Error
	detail := ""
	if errors.As(err, &ge) {
		detail = ge.Detail
	}
	var msg string
	switch Classify(err) {
	case ErrAuth:
		msg = "требуется повторный вход"
	case ErrNotFound:
		msg = "запись не найдена"
	case ErrValidation:
		msg = "сервер отклонил данные"
	default:
		msg = "нет связи с сервером"
	}
	if detail != "" {
		return fmt.Sprintf("%s (%s)", msg, detail)
	}
	return msg
}
