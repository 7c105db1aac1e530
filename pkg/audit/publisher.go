// Package audit publishes session and permission events to Kafka for the
// operations trail. Publishing is best-effort: a broker outage is logged
// and never blocks or fails the session flow.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/leadgrid/console/pkg/logger"
	"github.com/leadgrid/console/pkg/permission"
)

// Event types emitted by the publisher.
const (
	EventLogin               = "session.login"
	EventLogout              = "session.logout"
	EventPermissionsReplaced = "permissions.replaced"
)

// Event is the JSON record written to the audit topic.
type Event struct {
	Type        string    `json:"type"`
	Subject     string    `json:"subject,omitempty"`
	Permissions []string  `json:"permissions,omitempty"`
	Time        time.Time `json:"time"`
}

// Writer is the subset of kafka.Writer the publisher needs; tests swap in
// a fake.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher forwards events to the audit topic from a background
// goroutine so store notifications stay synchronous and cheap.
type Publisher struct {
	writer Writer
	log    logger.LogManager

	events chan Event
	done   chan struct{}
	cancel func()
}

// NewPublisher creates a publisher writing to topic on the given brokers.
func NewPublisher(brokers []string, topic string, log logger.LogManager) *Publisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	return NewPublisherWithWriter(w, log)
}

// NewPublisherWithWriter creates a publisher over an existing writer.
func NewPublisherWithWriter(w Writer, log logger.LogManager) *Publisher {
	p := &Publisher{
		writer: w,
		log:    log,
		events: make(chan Event, 64),
		done:   make(chan struct{}),
	}
	go p.run()
	return p
}

// Follow subscribes the publisher to the store's change feed and emits a
// permissions.replaced event per replacement. The initial subscribe-time
// emission (the deterministic empty set) is not an audit-worthy change
// and is skipped.
func (p *Publisher) Follow(store *permission.Store) {
	first := true
	p.cancel = store.Subscribe(func(set permission.Set) {
		if first {
			first = false
			return
		}
		p.enqueue(Event{
			Type:        EventPermissionsReplaced,
			Permissions: set.Values(),
			Time:        time.Now().UTC(),
		})
	})
}

// Session emits a session lifecycle event (login/logout) for the subject.
func (p *Publisher) Session(eventType, subject string) {
	p.enqueue(Event{Type: eventType, Subject: subject, Time: time.Now().UTC()})
}

// Close stops following the store, flushes queued events and closes the
// writer.
func (p *Publisher) Close() error {
	if p.cancel != nil {
		p.cancel()
	}
	close(p.events)
	<-p.done
	return p.writer.Close()
}

func (p *Publisher) enqueue(ev Event) {
	select {
	case p.events <- ev:
	default:
		p.log.WarnF("audit: event queue full, dropping %s", ev.Type)
	}
}

func (p *Publisher) run() {
	defer close(p.done)
	for ev := range p.events {
		value, err := json.Marshal(ev)
		if err != nil {
			p.log.ErrorF("audit: encode event: %v", err)
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = p.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(ev.Type),
			Value: value,
		})
		cancel()
		if err != nil {
			p.log.WarnF("audit: write %s event: %v", ev.Type, err)
		}
	}
}
