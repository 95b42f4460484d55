package consumer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/RamCupido/ClaReSys-Project/pkg/mq"
	"github.com/RamCupido/ClaReSys-Project/services/booking-query/internal/cache"
	"github.com/RamCupido/ClaReSys-Project/services/booking-query/internal/events"
)

var (
	// ErrBadPayload marks an undecodable message body; dropped, not requeued.
	ErrBadPayload = errors.New("undecodable event payload")
	// ErrMissingBookingID marks a payload without the one mandatory field;
	// dropped, not requeued.
	ErrMissingBookingID = errors.New("event payload missing booking_id")
)

const maxBackoff = 30 * time.Second

// SyncConsumer applies booking lifecycle events to the read-model cache.
// Application is an unconditional overwrite, so duplicate delivery is
// harmless and the consumer stays idempotent.
type SyncConsumer struct {
	cache *cache.Bookings
}

func NewSyncConsumer(c *cache.Bookings) *SyncConsumer {
	return &SyncConsumer{cache: c}
}

// Apply writes one event payload into the cache.
func (s *SyncConsumer) Apply(ctx context.Context, body []byte) error {
	ev, err := events.Unmarshal[events.BookingSnapshot](body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if ev.BookingID == "" {
		return ErrMissingBookingID
	}
	return s.cache.Put(ctx, ev)
}

func (s *SyncConsumer) run(ctx context.Context, msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-msgs:
			if !ok {
				return
			}
			switch d.RoutingKey {
			case events.RKBookingCreated, events.RKBookingCanceled:
				err := s.Apply(ctx, d.Body)
				switch {
				case err == nil:
					_ = d.Ack(false)
				case errors.Is(err, ErrBadPayload), errors.Is(err, ErrMissingBookingID):
					log.Printf("[booking-query] drop event key=%s: %v", d.RoutingKey, err)
					_ = d.Ack(false)
				default:
					log.Printf("[booking-query] apply event key=%s: %v -> requeue", d.RoutingKey, err)
					_ = d.Nack(false, true)
				}
			default:
				_ = d.Ack(false)
			}
		}
	}
}

// ConsumeLoop keeps a consumer session alive: dial, consume until the
// broker connection dies, re-dial with a doubling delay capped at 30s. The
// cache is the durable state, so nothing is lost across reconnects; the
// durable queue replays whatever was missed.
func (s *SyncConsumer) ConsumeLoop(ctx context.Context, url, exchange, queue string) {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return
		}
		cons := mq.NewConsumer(url, exchange, queue, []string{events.RKBookingCreated, events.RKBookingCanceled})
		if err := cons.Connect(); err != nil {
			log.Printf("[booking-query] rabbit connect: %v (retry in %s)", err, backoff)
			sleep(ctx, backoff)
			backoff = nextBackoff(backoff)
			continue
		}
		backoff = time.Second

		msgs, err := cons.Deliveries(ctx)
		if err != nil {
			log.Printf("[booking-query] consume: %v (retry in %s)", err, backoff)
			_ = cons.Close()
			sleep(ctx, backoff)
			backoff = nextBackoff(backoff)
			continue
		}

		log.Println("[booking-query] consuming booking events")
		s.run(ctx, msgs)
		_ = cons.Close()
		if ctx.Err() != nil {
			return
		}
		log.Println("[booking-query] broker connection lost, reconnecting")
	}
}

func nextBackoff(d time.Duration) time.Duration {
	d *= 2
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
