package optimistic

import "log/slog"

// Recorder принимает метрики операций хранилища.
type Recorder interface {
	Operation(store, op, outcome string)
	Size(store string, records, pending int)
}

type nopRecorder struct{}

func (nopRecorder) Operation(string, string, string) {}
func (nopRecorder) Size(string, int, int)            {}

// Options настраивает Store. Нулевые значения безопасны.
type Options struct {
	// Noun — название сущности для сообщений ("Материал", "Товар").
	Noun string
	// NoScopeMessage — сообщение, когда область не выбрана.
	NoScopeMessage string

	IDs     *IDAllocator
	Logger  *slog.Logger
	Metrics Recorder

	// Notify получает итог каждой публичной операции.
	Notify func(op string, o Outcome)

	// RollbackFailedUpdates: при ошибке update вернуть запись к состоянию до патча.
	// По умолчанию выключено: оптимистичное значение остаётся.
	RollbackFailedUpdates bool

	// DiscardStaleLoads: ответ load применяется, только если после него не было нового load.
	// По умолчанию выключено: побеждает последний завершившийся.
	DiscardStaleLoads bool
}

func (o Options) withDefaults(name string) Options {
	if o.Noun == "" {
		o.Noun = name
	}
	if o.IDs == nil {
		o.IDs = NewIDAllocator()
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	if o.Metrics == nil {
		o.Metrics = nopRecorder{}
	}
	return o
}

func (o Options) noScopeMessage() string {
	if o.NoScopeMessage != "" {
		return o.NoScopeMessage
	}
	return "Компания не выбрана"
}
