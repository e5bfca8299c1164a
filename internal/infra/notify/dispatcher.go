package notify

import (
	"context"
	"log/slog"

	"github.com/Spok95/empresa-pos/internal/optimistic"
)

// Dispatcher отправляет уведомления в фоне, чтобы медленный Notifier не задерживал операции.
// Если очередь заполнена, сообщение отбрасывается с предупреждением в логе.
type Dispatcher struct {
	n   Notifier
	log *slog.Logger
	ch  chan string
}

func NewDispatcher(n Notifier, log *slog.Logger, queue int) *Dispatcher {
	if queue <= 0 {
		queue = 64
	}
	return &Dispatcher{n: n, log: log, ch: make(chan string, queue)}
}

// Hook — значение для optimistic.Options.Notify. Пустые сообщения (no-op load) пропускаются.
func (d *Dispatcher) Hook(store string) func(op string, o optimistic.Outcome) {
	return func(op string, o optimistic.Outcome) {
		if o.Message == "" {
			return
		}
		select {
		case d.ch <- Format(o):
		default:
			d.log.Warn("notification dropped", "store", store, "op", op)
		}
	}
}

// Run доставляет сообщения до отмены ctx, затем досылает то, что уже в очереди.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			d.drain()
			return
		case text := <-d.ch:
			d.send(ctx, text)
		}
	}
}

func (d *Dispatcher) drain() {
	for {
		select {
		case text := <-d.ch:
			d.send(context.Background(), text)
		default:
			return
		}
	}
}

func (d *Dispatcher) send(ctx context.Context, text string) {
	if err := d.n.Notify(ctx, text); err != nil {
		d.log.Error("notify failed", "err", err)
	}
}
