package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/unclebandit/brandplay-backend/internal/queue"
)

type ContactMessage struct {
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

// ContactEnvelope is what lands on the contact queue.
type ContactEnvelope struct {
	ContactMessage
	UserID     string    `json:"user_id,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
}

type ContactService struct {
	Queue queue.Queue
	Now   func() time.Time
}

// Submit validates the form and hands it to the support queue. userID is
// empty for anonymous visitors.
func (s *ContactService) Submit(_ context.Context, userID string, msg ContactMessage) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Subject = strings.TrimSpace(msg.Subject)
	msg.Message = strings.TrimSpace(msg.Message)
	if err := validateStruct(msg); err != nil {
		return err
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	env := ContactEnvelope{ContactMessage: msg, UserID: userID, ReceivedAt: now().UTC()}
	if err := s.Queue.Publish(queue.TopicContactMessages, env); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"email": msg.Email, "subject": msg.Subject}).Info("📩 contact message queued")
	return nil
}

// DecodeContact accepts an envelope published in-process or its JSON
// encoding as delivered by the broker.
func DecodeContact(payload any) (ContactEnvelope, error) {
	switch p := payload.(type) {
	case ContactEnvelope:
		return p, nil
	case *ContactEnvelope:
		return *p, nil
	case []byte:
		var env ContactEnvelope
		err := json.Unmarshal(p, &env)
		return env, err
	}
	return ContactEnvelope{}, fmt.Errorf("unexpected contact payload %T", payload)
}

// StartContactConsumer hands every queued contact message to sink. A
// payload that cannot be decoded is dropped; a sink error is retried by the
// queue.
func StartContactConsumer(q queue.Queue, sink func(ContactEnvelope) error) error {
	return q.Subscribe(queue.TopicContactMessages, func(payload any) error {
		env, err := DecodeContact(payload)
		if err != nil {
			logrus.WithError(err).Warn("⚠️ invalid contact payload")
			return nil // no retry
		}
		return sink(env)
	})
}

// LogContact writes the message to the support log.
func LogContact(env ContactEnvelope) error {
	logrus.WithFields(logrus.Fields{
		"name":        env.Name,
		"email":       env.Email,
		"subject":     env.Subject,
		"user_id":     env.UserID,
		"received_at": env.ReceivedAt.Format(time.RFC3339),
	}).Info("📬 contact message received: " + env.Message)
	return nil
}
