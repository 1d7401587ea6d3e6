package events

import (
	"strconv"
	"sync"
	"time"

	"github.com/yeremiapane/table-booking/models"
	"github.com/yeremiapane/table-booking/utils"
)

// Lifecycle event types consumed by the notification subsystem.
const (
	BookingCreated       = "created"
	BookingConfirmed     = "confirmed"
	BookingCancelled     = "cancelled"
	BookingExpired       = "expired"
	BookingStatusUpdated = "status_updated"
)

type Event struct {
	Type       string          `json:"type"`
	BookingID  uint            `json:"booking_id"`
	Status     string          `json:"status"`
	Booking    *models.Booking `json:"booking,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// ForStatus picks the event type that announces a move into status.
func ForStatus(status string) string {
	switch status {
	case models.BookingStatusConfirmed:
		return BookingConfirmed
	case models.BookingStatusCancelled:
		return BookingCancelled
	case models.BookingStatusExpired:
		return BookingExpired
	default:
		return BookingStatusUpdated
	}
}

// Envelope is the wire shape shared with the realtime and notification consumers.
type Envelope struct {
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId"`
	Metadata   map[string]string `json:"metadata"`
	Data       interface{}       `json:"data"`
}

func (e Event) Envelope() Envelope {
	meta := map[string]string{
		"status":      e.Status,
		"occurred_at": e.OccurredAt.UTC().Format(time.RFC3339),
	}
	if e.Booking != nil {
		meta["date"] = e.Booking.Date
		meta["time"] = e.Booking.Time
	}
	return Envelope{
		Entity:     "booking",
		Action:     e.Type,
		ResourceID: strconv.FormatUint(uint64(e.BookingID), 10),
		Metadata:   meta,
		Data:       e.Booking,
	}
}

type Handler func(Event)

// Bus fans each event out to every subscriber synchronously. A panicking subscriber is
// logged and does not stop delivery to the others.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

func (b *Bus) Publish(e Event) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, h := range handlers {
		deliver(h, e)
	}
}

func deliver(h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			utils.ErrorLogger.Printf("event handler panic on %s for booking %d: %v", e.Type, e.BookingID, r)
		}
	}()
	h(e)
}
