package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/unclebandit/brandplay-backend/internal/config"
	"github.com/unclebandit/brandplay-backend/internal/db"
	"github.com/unclebandit/brandplay-backend/internal/queue"
	"github.com/unclebandit/brandplay-backend/internal/repository"
	"github.com/unclebandit/brandplay-backend/internal/service"
)

// The worker consumes campaign submissions from RabbitMQ and runs the
// pre-review against Postgres. Contact form messages are written to the
// support log.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("❌ config: %v", err)
	}
	cfg.ConfigureLogging()

	if cfg.DatabaseURL == "" || cfg.AMQPURL == "" {
		logrus.Fatal("❌ worker needs DATABASE_URL and AMQP_URL")
	}

	conn, err := db.Init(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("❌ database: %v", err)
	}
	defer conn.Close()

	q, err := queue.DialAMQP(cfg.AMQPURL)
	if err != nil {
		logrus.Fatalf("❌ Failed to connect to RabbitMQ: %v", err)
	}
	defer q.Close()

	if err := run(q, &repository.CampaignRepository{DB: conn}); err != nil {
		logrus.Fatalf("❌ Failed to register consumer: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logrus.Info("Worker running, waiting for submissions and contact messages...")
	<-ctx.Done()
	logrus.Info("🛑 worker stopping")
}

// run subscribes the pre-review to the submissions topic of q and the
// support log to the contact topic.
func run(q queue.Queue, repo repository.CampaignRepositoryInterface) error {
	svc := &service.CampaignService{CampaignRepo: repo, Queue: q}
	if err := queue.StartReviewSubscriber(q, svc); err != nil {
		return err
	}
	return service.StartContactConsumer(q, service.LogContact)
}
