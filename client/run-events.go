package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"speedrun/metrics"

	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type RunEventType string

const (
	RunSubmitted RunEventType = "run_submitted"
	RunApproved  RunEventType = "run_approved"
	RunRejected  RunEventType = "run_rejected"
	RunDeleted   RunEventType = "run_deleted"
)

// RunEvent is published for every lifecycle change of a run.
type RunEvent struct {
	Type          RunEventType `json:"type"`
	RunId         string       `json:"run_id"`
	UserId        string       `json:"user_id"`
	CategoryId    string       `json:"category_id"`
	Status        string       `json:"status"`
	Value         int64        `json:"value"`
	IsWorldRecord bool         `json:"is_world_record"`
	ActorId       string       `json:"actor_id"`
	Timestamp     time.Time    `json:"timestamp"`
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaRunPublisher struct {
	writer     MessageWriter
	maxRetries uint64
}

func NewKafkaRunPublisher(writer MessageWriter) *KafkaRunPublisher {
	return &KafkaRunPublisher{writer: writer, maxRetries: 3}
}

func (p *KafkaRunPublisher) PublishRunEvent(ctx context.Context, event RunEvent) error {
	message, err := json.Marshal(event)
	if err != nil {
		return err
	}
	write := func() error {
		return p.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(event.RunId),
			Value: message,
			Time:  event.Timestamp,
		})
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), p.maxRetries), ctx)
	return backoff.Retry(write, policy)
}

// NoopRunPublisher is used when no broker is configured.
type NoopRunPublisher struct{}

func (NoopRunPublisher) PublishRunEvent(context.Context, RunEvent) error {
	return nil
}

type RunPublisher interface {
	PublishRunEvent(ctx context.Context, event RunEvent) error
}

var ErrPublishQueueFull = errors.New("run event queue is full")

// AsyncRunPublisher hands events to a background worker so request handlers
// never wait on the broker. Events are delivered in submission order.
type AsyncRunPublisher struct {
	next    RunPublisher
	logger  *zap.Logger
	timeout time.Duration
	events  chan RunEvent
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
	once   sync.Once
}

func NewAsyncRunPublisher(next RunPublisher, logger *zap.Logger, queueSize int) *AsyncRunPublisher {
	p := &AsyncRunPublisher{
		next:    next,
		logger:  logger,
		timeout: 30 * time.Second,
		events:  make(chan RunEvent, queueSize),
		done:    make(chan struct{}),
	}
	go p.work()
	return p
}

// PublishRunEvent enqueues the event without blocking. It fails when the
// queue is full or the publisher has been closed.
func (p *AsyncRunPublisher) PublishRunEvent(_ context.Context, event RunEvent) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return fmt.Errorf("publisher closed, dropping %s event for run %s", event.Type, event.RunId)
	}
	select {
	case p.events <- event:
		return nil
	default:
		return fmt.Errorf("%w, dropping %s event for run %s", ErrPublishQueueFull, event.Type, event.RunId)
	}
}

func (p *AsyncRunPublisher) work() {
	defer close(p.done)
	for event := range p.events {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		if err := p.next.PublishRunEvent(ctx, event); err != nil {
			metrics.NotificationErrorCounter.WithLabelValues("kafka").Inc()
			p.logger.Warn("could not publish run event",
				zap.String("type", string(event.Type)),
				zap.String("run_id", event.RunId),
				zap.Error(err))
		}
		cancel()
	}
}

// Close stops accepting events and waits until the queued ones are delivered.
func (p *AsyncRunPublisher) Close() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.events)
		p.mu.Unlock()
	})
	<-p.done
}
