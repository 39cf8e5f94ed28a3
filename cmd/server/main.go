// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/unclebandit/brandplay-backend/internal/config"
	"github.com/unclebandit/brandplay-backend/internal/controller"
	"github.com/unclebandit/brandplay-backend/internal/db"
	"github.com/unclebandit/brandplay-backend/internal/queue"
	"github.com/unclebandit/brandplay-backend/internal/repository"
	"github.com/unclebandit/brandplay-backend/internal/service"
)

const (
	demoEmail    = "demo@brandplay.test"
	demoPassword = "brandplay-demo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("❌ config: %v", err)
	}
	cfg.ConfigureLogging()
	signingKey, err := cfg.SigningKey()
	if err != nil {
		logrus.Fatalf("❌ config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		campaignRepo repository.CampaignRepositoryInterface
		profileRepo  repository.ProfileStore
	)
	if cfg.DatabaseURL != "" {
		conn, err := db.Init(cfg.DatabaseURL)
		if err != nil {
			logrus.Fatalf("❌ database: %v", err)
		}
		defer conn.Close()
		campaignRepo = &repository.CampaignRepository{DB: conn}
		profileRepo = &repository.ProfileRepository{DB: conn}
	} else {
		logrus.Warn("⚠️ DATABASE_URL not set, using in-memory repositories")
		campaignRepo = repository.NewMemoryCampaignRepository()
		profileRepo = repository.NewMemoryProfileRepository()
	}

	var sessions repository.SessionStore
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			logrus.Fatalf("❌ redis: %v", err)
		}
		defer client.Close()
		sessions = repository.NewRedisSessionStore(client)
	} else {
		logrus.Warn("⚠️ REDIS_ADDR not set, sessions are kept in memory")
		sessions = repository.NewMemorySessionStore()
	}

	var q queue.Queue
	if cfg.AMQPURL != "" {
		aq, err := queue.DialAMQP(cfg.AMQPURL)
		if err != nil {
			logrus.Fatalf("❌ amqp: %v", err)
		}
		defer aq.Close()
		q = aq
	} else {
		logrus.Warn("⚠️ AMQP_URL not set, submissions and contact messages are handled in-process")
		q = queue.NewInMemoryQueue()
	}

	campaignService := &service.CampaignService{CampaignRepo: campaignRepo, Queue: q}
	if _, inProcess := q.(*queue.InMemoryQueue); inProcess {
		if err := queue.StartReviewSubscriber(q, campaignService); err != nil {
			logrus.Fatalf("❌ review subscriber: %v", err)
		}
		if err := service.StartContactConsumer(q, service.LogContact); err != nil {
			logrus.Fatalf("❌ contact consumer: %v", err)
		}
	}

	authService := &service.AuthService{
		Profiles: profileRepo,
		Sessions: sessions,
		Tokens:   &service.TokenIssuer{Secret: signingKey, TTL: cfg.AccessTokenTTL},
	}
	if cfg.GoogleEnabled() {
		authService.Google = service.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	} else {
		logrus.Warn("⚠️ GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET not set, Google sign-in disabled")
	}

	if mem, ok := campaignRepo.(*repository.MemoryCampaignRepository); ok {
		seedDemo(ctx, authService, mem)
	}

	dialogs := service.NewDialogService(campaignService, cfg.PaymentDelay, cfg.ResubmitDelay)
	dialogs.IdleTTL = cfg.DialogIdleTTL
	go dialogs.RunSweeper(ctx, time.Minute)

	router := controller.NewRouter(controller.Services{
		Auth:      authService,
		Campaigns: campaignService,
		Catalog:   &service.CatalogService{CampaignRepo: campaignRepo},
		Dialogs:   dialogs,
		Contact:   &service.ContactService{Queue: q},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.Infof("🚀 Server running on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("❌ server: %v", err)
		}
	}()

	<-ctx.Done()
	logrus.Info("🛑 shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("graceful shutdown failed")
	}
}

// seedDemo registers a demo account and gives it one campaign per status so
// the dashboard and the resubmit flow have something to show.
func seedDemo(ctx context.Context, auth *service.AuthService, repo *repository.MemoryCampaignRepository) {
	sess, err := auth.SignUpWithEmail(ctx, service.SignUpInput{
		Email:    demoEmail,
		Password: demoPassword,
		FullName: "Demo Brand",
	})
	if err != nil {
		logrus.WithError(err).Warn("⚠️ could not create demo account")
		return
	}
	for _, c := range service.FixtureCampaigns(sess.User.ID) {
		if err := repo.Create(ctx, &c); err != nil {
			logrus.WithError(err).Warn("⚠️ could not seed demo campaign")
		}
	}
	logrus.WithField("email", demoEmail).Info("🌱 demo account seeded")
}
