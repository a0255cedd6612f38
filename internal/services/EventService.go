// This file contains the EventService, which publishes user lifecycle events to a RabbitMQ queue.
// The service is optional: when no broker address is configured the server runs without it, and a nil
// EventService is safe to publish on. Publishing is fire-and-forget; a failed publish is logged and
// never surfaced to the client.

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/tedlabs/users-api/internal/log"
	"github.com/tedlabs/users-api/internal/models/user"
)

const userEventsQueue = "user-events"

// UserEvent is the payload published for user lifecycle changes.
type UserEvent struct {
	Event string    `json:"event"`
	User  user.User `json:"user"`
	At    time.Time `json:"at"`
}

type EventService struct {
	mu         sync.Mutex
	connection *amqp.Connection
	channel    *amqp.Channel
	logger     *log.Logger
}

// NewEventService dials the message broker and declares the user events
// queue. Retries the dial for a short window so the server can come up
// alongside the broker.
func NewEventService(addr, username, password string, logger *log.Logger) (*EventService, error) {
	service := &EventService{logger: logger}

	timeout := time.Now().Add(time.Minute / 4)
	url := fmt.Sprintf("amqp://%s:%s@%s/", username, password, addr)

	var err error
	for time.Now().Before(timeout) {
		service.connection, err = amqp.Dial(url)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %v", err)
	}

	service.channel, err = service.connection.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open a channel: %v", err)
	}

	if _, err = service.channel.QueueDeclare(userEventsQueue, false, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed to declare queue %s: %v", userEventsQueue, err)
	}

	return service, nil
}

// PublishUserEvent publishes a lifecycle event for the given user. Safe to
// call on a nil service.
func (s *EventService) PublishUserEvent(ctx context.Context, event string, u *user.User) {
	if s == nil {
		return
	}

	body, err := json.Marshal(UserEvent{Event: event, User: *u, At: time.Now().UTC()})
	if err != nil {
		s.logger.Errorf("Failed to encode %s event: %v", event, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	err = s.channel.PublishWithContext(ctx, "", userEventsQueue, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		s.logger.Errorf("Failed to publish %s event: %v", event, err)
	}
}

// Close shuts down the channel and connection. Safe to call on a nil service.
func (s *EventService) Close() {
	if s == nil {
		return
	}
	if s.channel != nil {
		_ = s.channel.Close()
	}
	if s.connection != nil {
		_ = s.connection.Close()
	}
}
