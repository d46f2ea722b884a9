//go:generate mockgen -source=contact.go -destination=contact_mock.go -package=services
package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/blog-api/internal/logger"
	"github.com/sbilibin2017/blog-api/internal/models"
)

// ContactWriter defines write operations for contact messages.
type ContactWriter interface {
	Save(ctx context.Context, contact models.ContactDB) (*models.ContactDB, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// ContactService stores contact messages and announces them on Kafka.
type ContactService struct {
	writer      ContactWriter
	kafkaWriter KafkaWriter
	now         func() time.Time
}

// NewContactService creates a new ContactService. kafkaWriter may be nil.
func NewContactService(writer ContactWriter, kafkaWriter KafkaWriter) *ContactService {
	return &ContactService{
		writer:      writer,
		kafkaWriter: kafkaWriter,
		now:         time.Now,
	}
}

// Submit stores a contact message stamped with the current time.
// None of the fields are required.
func (s *ContactService) Submit(ctx context.Context, name, email, message string) error {
	contact, err := s.writer.Save(ctx, models.ContactDB{
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		logger.Log.Errorw("failed to save contact message", "email", email, "error", err)
		return err
	}

	s.publishContact(ctx, *contact)
	return nil
}

// publishContact publishes a contact.created event. Failures are only logged.
func (s *ContactService) publishContact(ctx context.Context, contact models.ContactDB) {
	if s.kafkaWriter == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "contact_id", contact.ID.Hex())
		return
	}

	event := models.ContactEvent{
		EventID:   uuid.NewString(),
		ContactID: contact.ID.Hex(),
		Name:      contact.Name,
		Email:     contact.Email,
		Message:   contact.Message,
		Timestamp: contact.CreatedAt.Unix(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal contact event for Kafka", "contact_id", event.ContactID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.ContactID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("contact.created")},
		},
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish contact event to Kafka", "contact_id", event.ContactID, "error", err)
	} else {
		logger.Log.Infow("Contact event published to Kafka", "contact_id", event.ContactID, "event_id", event.EventID)
	}
}
