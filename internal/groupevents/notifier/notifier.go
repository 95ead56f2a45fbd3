// Package notifier publishes group-event lifecycle notifications. Publishing
// is best-effort: the calling service logs failures and carries on, a lost
// notification never fails the request that produced it.
package notifier

import (
	"context"

	"groupcal/pkg/kafka"
	kafka_config "groupcal/pkg/kafka/config"
	"groupcal/pkg/logger"
	"groupcal/pkg/model"
)

const (
	TopicCreated = "group-event.created"
	TopicBooked  = "group-event.booked"

	EventTypeCreated = "GroupEventCreated"
	EventTypeBooked  = "GroupEventBooked"

	schemaVersion = "1"
	sourceService = "group-events"
)

// EventNotifier announces group-event lifecycle transitions.
type EventNotifier interface {
	GroupEventCreated(ctx context.Context, ge *model.GroupEvent) error
	SlotBooked(ctx context.Context, ge *model.GroupEvent) error
	Close() error
}

type kafkaNotifier struct {
	created *kafka.Producer
	booked  *kafka.Producer
	log     *logger.Logger
}

// New builds an EventNotifier from the Kafka configuration. When Kafka is
// disabled it returns a no-op notifier so callers never branch on the flag.
func New(cfg *kafka_config.Config, log *logger.Logger) (EventNotifier, error) {
	if cfg == nil || !cfg.Enabled {
		return NewNoop(), nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	created, err := kafka.NewProducer(cfg, TopicCreated)
	if err != nil {
		return nil, err
	}
	booked, err := kafka.NewProducer(cfg, TopicBooked)
	if err != nil {
		created.Close()
		return nil, err
	}

	return &kafkaNotifier{created: created, booked: booked, log: log}, nil
}

type createdPayload struct {
	GroupEventID   string   `json:"group_event_id"`
	Name           string   `json:"name"`
	OwnerID        string   `json:"owner_id"`
	ParticipantIDs []string `json:"participant_ids"`
	Status         string   `json:"status"`
}

type bookedPayload struct {
	GroupEventID   string   `json:"group_event_id"`
	Name           string   `json:"name"`
	OwnerID        string   `json:"owner_id"`
	ParticipantIDs []string `json:"participant_ids"`
	Date           string   `json:"date"`
	StartTime      string   `json:"start_time"`
	EndTime        string   `json:"end_time"`
}

func (n *kafkaNotifier) GroupEventCreated(ctx context.Context, ge *model.GroupEvent) error {
	msg := kafka.NewMessage().
		WithKey(ge.ID).
		WithEventType(EventTypeCreated).
		WithSchemaVersion(schemaVersion).
		WithSource(sourceService).
		WithValue(createdPayload{
			GroupEventID:   ge.ID,
			Name:           ge.Name,
			OwnerID:        ge.OwnerID,
			ParticipantIDs: ge.ParticipantIDs,
			Status:         ge.Status,
		}).
		Build()

	if err := n.created.Publish(ctx, msg); err != nil {
		return err
	}
	n.log.Debug("published group event notification", "topic", n.created.Topic(), "group_event_id", ge.ID)
	return nil
}

func (n *kafkaNotifier) SlotBooked(ctx context.Context, ge *model.GroupEvent) error {
	msg := kafka.NewMessage().
		WithKey(ge.ID).
		WithEventType(EventTypeBooked).
		WithSchemaVersion(schemaVersion).
		WithSource(sourceService).
		WithValue(bookedPayload{
			GroupEventID:   ge.ID,
			Name:           ge.Name,
			OwnerID:        ge.OwnerID,
			ParticipantIDs: ge.ParticipantIDs,
			Date:           ge.Date,
			StartTime:      ge.StartTime,
			EndTime:        ge.EndTime,
		}).
		Build()

	if err := n.booked.Publish(ctx, msg); err != nil {
		return err
	}
	n.log.Debug("published group event notification", "topic", n.booked.Topic(), "group_event_id", ge.ID)
	return nil
}

func (n *kafkaNotifier) Close() error {
	errCreated := n.created.Close()
	errBooked := n.booked.Close()
	if errCreated != nil {
		return errCreated
	}
	return errBooked
}

type noopNotifier struct{}

// NewNoop returns a notifier that drops every notification.
func NewNoop() EventNotifier {
	return noopNotifier{}
}

func (noopNotifier) GroupEventCreated(context.Context, *model.GroupEvent) error { return nil }
func (noopNotifier) SlotBooked(context.Context, *model.GroupEvent) error        { return nil }
func (noopNotifier) Close() error                                               { return nil }
