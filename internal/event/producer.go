package event

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"tram-kitchen/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// producerName identifies this service in event envelopes.
const producerName = "tram-kitchen-api"

// Producer publishes order events to Kafka through a buffered inbox so the
// request path never blocks on the broker.
type Producer struct {
	w       *kafka.Writer
	inbox   chan kafka.Message
	mu      sync.RWMutex
	closed  bool
	closeCh chan struct{}
	logger  zerolog.Logger
}

// NewProducer creates a Kafka producer for the given brokers and topic.
func NewProducer(brokers []string, topic string, buf int, logger zerolog.Logger) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        true,
		},
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
		logger:  logger.With().Str("component", "event-producer").Logger(),
	}
}

// Start launches the publish loop. It drains the inbox on context
// cancellation before closing the writer.
func (p *Producer) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				p.Close()
				for m := range p.inbox {
					p.write(m)
				}
				_ = p.w.Close()
				close(p.closeCh)
				return
			case m, ok := <-p.inbox:
				if !ok {
					_ = p.w.Close()
					close(p.closeCh)
					return
				}
				p.write(m)
			}
		}
	}()
}

func (p *Producer) write(m kafka.Message) {
	if err := p.w.WriteMessages(context.Background(), m); err != nil {
		p.logger.Warn().Err(err).Str("key", string(m.Key)).Msg("failed to publish event")
	}
}

// OrderCreated queues an OrderCreated envelope for the committed order.
// The inbox is buffered; when it is full the event is dropped rather than
// stalling checkout.
func (p *Producer) OrderCreated(_ context.Context, order *model.Order) {
	payload, err := json.Marshal(OrderCreatedPayload{
		OrderCode:      order.OrderCode,
		RecipientName:  order.RecipientName,
		ItemsList:      order.ItemsList,
		TotalAmount:    order.TotalAmount,
		DeliveryMethod: order.DeliveryMethod,
	})
	if err != nil {
		p.logger.Error().Err(err).Str("order_code", order.OrderCode).Msg("failed to encode event payload")
		return
	}

	env := Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventOrderCreated,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      producerName,
		CorrelationID: order.OrderCode,
		Payload:       payload,
	}
	value, err := json.Marshal(env)
	if err != nil {
		p.logger.Error().Err(err).Str("order_code", order.OrderCode).Msg("failed to encode event envelope")
		return
	}

	msg := kafka.Message{
		Key:   []byte(order.OrderCode),
		Value: value,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "x-event-type", Value: []byte(EventOrderCreated)},
			{Key: "x-event-version", Value: []byte("1")},
		},
	}

	// The read lock keeps Close from closing the inbox mid-send; a send on
	// a closed channel would panic the checkout path.
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.logger.Warn().Str("order_code", order.OrderCode).Msg("producer closed, dropping event")
		return
	}

	select {
	case p.inbox <- msg:
	default:
		p.logger.Warn().Str("order_code", order.OrderCode).Msg("event inbox full, dropping event")
	}
}

// Close stops accepting events and lets the loop flush what remains. Safe to
// call more than once and concurrently with OrderCreated.
func (p *Producer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.inbox)
}

// WaitClosed blocks until the publish loop has exited.
func (p *Producer) WaitClosed() { <-p.closeCh }
