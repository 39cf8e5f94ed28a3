package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	TopicCampaignSubmissions = "campaign_submissions"
	TopicContactMessages     = "contact_messages"
)

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// SubmissionEvent announces a campaign entering review.
type SubmissionEvent struct {
	CampaignID  int  `json:"campaign_id"`
	Resubmitted bool `json:"resubmitted"`
}

// InMemoryQueue delivers to in-process subscribers with retry.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
	backoff  time.Duration
}

func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
		backoff:  500 * time.Millisecond,
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish hands payload to every subscriber of topic. Topics nobody listens
// to are dropped with a warning.
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		logrus.WithField("topic", topic).Warn("⚠️ no subscribers, message dropped")
		return nil
	}

	for _, handler := range handlers {
		job := JobPayload{
			Payload:    payload,
			RetryCount: 0,
			MaxRetries: 3,
		}
		go q.processJob(topic, handler, job)
	}
	return nil
}

func (q *InMemoryQueue) processJob(topic string, handler func(payload any) error, job JobPayload) {
	entry := logrus.WithField("topic", topic)
	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			entry.Debugf("job processed: %+v", job.Payload)
			return
		}

		job.RetryCount++
		entry.WithError(err).Warnf("job failed (attempt %d/%d)", job.RetryCount, job.MaxRetries)

		if job.RetryCount > job.MaxRetries {
			entry.Errorf("job permanently failed after %d attempts: %+v", job.MaxRetries, job.Payload)
			return
		}

		// linear backoff
		time.Sleep(time.Duration(job.RetryCount) * q.backoff)
	}
}

func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// Reviewer pre-reviews a submitted campaign.
type Reviewer interface {
	ReviewSubmission(ctx context.Context, campaignID int) error
}

// DecodeSubmission accepts either an in-process SubmissionEvent or its JSON
// encoding as delivered by the broker.
func DecodeSubmission(payload any) (SubmissionEvent, error) {
	switch p := payload.(type) {
	case SubmissionEvent:
		return p, nil
	case *SubmissionEvent:
		return *p, nil
	case []byte:
		var ev SubmissionEvent
		err := json.Unmarshal(p, &ev)
		return ev, err
	}
	return SubmissionEvent{}, fmt.Errorf("unexpected submission payload %T", payload)
}

// StartReviewSubscriber wires reviewer to the submissions topic.
func StartReviewSubscriber(q Queue, reviewer Reviewer) error {
	return q.Subscribe(TopicCampaignSubmissions, func(payload any) error {
		ev, err := DecodeSubmission(payload)
		if err != nil {
			logrus.WithError(err).Warn("⚠️ invalid submission payload")
			return nil // no retry
		}
		logrus.WithField("campaign_id", ev.CampaignID).Info("📩 reviewing submitted campaign")
		return reviewer.ReviewSubmission(context.Background(), ev.CampaignID)
	})
}
