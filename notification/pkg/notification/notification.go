package notification

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/log"
)

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"

	DefaultCapacity = 20
)

type Notification struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Variant     Variant   `json:"variant"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Notifier shows a transient message to the shopper.
type Notifier interface {
	Notify(c context.Context, n Notification)
}

// Hub logs every notification and keeps the most recent ones until they are
// drained. When full the oldest notification is dropped.
type Hub struct {
	mu       sync.Mutex
	ring     []Notification
	start    int
	size     int
	now      func() time.Time
	capacity int
}

func NewHub(capacity int) *Hub {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Hub{ring: make([]Notification, capacity), capacity: capacity, now: time.Now}
}

func (h *Hub) Notify(c context.Context, n Notification) {
	if n.Variant == "" {
		n.Variant = VariantDefault
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = h.now()
	}

	event := zerolog.Ctx(c).Info()
	if n.Variant == VariantDestructive {
		event = zerolog.Ctx(c).Warn()
	}
	event.Str(log.KeyTag, "Hub Notify").Any(log.KeyNotification, n).Msg(n.Title)

	h.mu.Lock()
	defer h.mu.Unlock()
	end := (h.start + h.size) % h.capacity
	h.ring[end] = n
	if h.size < h.capacity {
		h.size++
		return
	}
	h.start = (h.start + 1) % h.capacity
}

// Drain returns pending notifications oldest first and empties the hub.
func (h *Hub) Drain() []Notification {
	h.mu.Lock()
	defer h.mu.Unlock()

	drained := make([]Notification, 0, h.size)
	for i := 0; i < h.size; i++ {
		drained = append(drained, h.ring[(h.start+i)%h.capacity])
	}
	h.start, h.size = 0, 0
	return drained
}

func Success(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: VariantDefault}
}

func Failure(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: VariantDestructive}
}
