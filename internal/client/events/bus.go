// Package events реализует publish/subscribe шину для уведомлений об изменениях коллекции.
//
// Шина создается один раз в корне приложения и передается компонентам явно.
// Доставка синхронная в вызывающей горутине. Если доставка уже идет (вложенный
// Publish из обработчика или Publish из другой горутины), событие ставится в очередь
// и доставляется той горутиной, которая уже ведет доставку.
package events

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// CredentialCollectionChanged объявляется после любого create, update или delete.
const CredentialCollectionChanged = "credential-collection-changed"

// Payloads used with CredentialCollectionChanged.
const (
	ContentSaved   = "OK"
	ContentDeleted = "Deleted a credential"
)

// Event is a single notification.
type Event struct {
	Name    string
	Content string
}

// Handler receives events. Handlers may subscribe, unsubscribe and publish.
type Handler func(Event)

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	bus     *Bus
	handler Handler
	name    string
	active  bool
}

// Unsubscribe stops delivery. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.bus == nil {
		return
	}
	s.bus.Unsubscribe(s)
}

// Bus is an in-process event bus.
type Bus struct {
	logger      *slog.Logger
	subscribers map[string][]*Subscription
	queue       []Event
	mu          sync.Mutex
	dispatching bool
}

// NewBus создает шину событий. Если logger == nil, логи отбрасываются.
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Bus{
		logger:      logger,
		subscribers: make(map[string][]*Subscription),
	}
}

// Subscribe registers handler for events named name.
func (b *Bus) Subscribe(name string, handler Handler) *Subscription {
	sub := &Subscription{bus: b, name: name, handler: handler, active: true}

	b.mu.Lock()
	defer b.mu.Unlock()

	// Копируем срез, чтобы не трогать снимок, по которому идет текущая доставка
	subs := b.subscribers[name]
	next := make([]*Subscription, 0, len(subs)+1)
	next = append(next, subs...)
	b.subscribers[name] = append(next, sub)

	b.logger.Debug("subscribed", slog.String("event", name), slog.Int("subscribers", len(next)+1))
	return sub
}

// Unsubscribe removes the subscription. Idempotent.
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !sub.active {
		return
	}
	sub.active = false

	subs := b.subscribers[sub.name]
	next := make([]*Subscription, 0, len(subs))
	for _, s := range subs {
		if s != sub {
			next = append(next, s)
		}
	}
	if len(next) == 0 {
		delete(b.subscribers, sub.name)
	} else {
		b.subscribers[sub.name] = next
	}

	b.logger.Debug("unsubscribed", slog.String("event", sub.name), slog.Int("subscribers", len(next)))
}

// Publish delivers ev to every current subscriber of ev.Name in subscription order.
// Events published while a delivery is in progress are queued and delivered
// afterwards, so publish order is preserved.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	b.queue = append(b.queue, ev)
	if b.dispatching {
		b.mu.Unlock()
		return
	}
	b.dispatching = true
	b.mu.Unlock()

	for {
		b.mu.Lock()
		if len(b.queue) == 0 {
			b.dispatching = false
			b.mu.Unlock()
			return
		}
		next := b.queue[0]
		b.queue = b.queue[1:]
		subs := b.subscribers[next.Name]
		b.mu.Unlock()

		b.logger.Debug("publishing event",
			slog.String("event", next.Name),
			slog.String("content", next.Content),
			slog.Int("subscribers", len(subs)))

		for _, sub := range subs {
			// Подписчик мог отписаться во время доставки
			if !b.isActive(sub) {
				continue
			}
			b.deliver(sub, next)
		}
	}
}

// SubscriberCount returns the number of active subscriptions for name.
func (b *Bus) SubscriberCount(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers[name])
}

func (b *Bus) isActive(sub *Subscription) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return sub.active
}

func (b *Bus) deliver(sub *Subscription, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				slog.String("event", ev.Name),
				slog.String("panic", fmt.Sprint(r)))
		}
	}()
	sub.handler(ev)
}
