package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/Godsaptarshifrtw/subscription-device-api/internal/config"
	"github.com/Godsaptarshifrtw/subscription-device-api/internal/database"
	"github.com/Godsaptarshifrtw/subscription-device-api/internal/handler"
	"github.com/Godsaptarshifrtw/subscription-device-api/internal/middleware"
	"github.com/Godsaptarshifrtw/subscription-device-api/internal/queue"
	"github.com/Godsaptarshifrtw/subscription-device-api/internal/repository"
	"github.com/Godsaptarshifrtw/subscription-device-api/internal/router"
)

func main() {
	// Load .env if present; real deployments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load() // fatal on missing required vars, incl. JWT_SECRET

	// Primary store: users, plans, devices, subscriptions, payments.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open primary store: %v", err)
	}
	// Session store lives in its own database.
	sessionDB, err := database.Open(cfg.SessionDBUser, cfg.SessionDBPass, cfg.SessionDBHost, cfg.SessionDBPort, cfg.SessionDBName)
	if err != nil {
		log.Fatalf("open session store: %v", err)
	}

	ctx := context.Background()
	if err := database.EnsurePrimarySchema(ctx, db); err != nil {
		log.Fatalf("ensure primary schema: %v", err)
	}
	if err := database.EnsureSessionSchema(ctx, sessionDB); err != nil {
		log.Fatalf("ensure session schema: %v", err)
	}

	users := repository.NewUserRepo(db)
	plans := repository.NewPlanRepo(db)
	devices := repository.NewDeviceRepo(db)
	subscriptions := repository.NewSubscriptionRepo(db)
	payments := repository.NewPaymentRepo(db)
	sessions := repository.NewSessionRepo(sessionDB)

	e := echo.New()

	// Redis-backed rate limiting; a nil client turns it into a pass-through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterUsers(e, handler.NewAuthHandler(cfg, users), handler.NewUserHandler(cfg, users), cfg.JWTSecret, users, sessions)
	router.RegisterSessions(e, handler.NewSessionHandler(cfg, users, sessions))
	router.RegisterEntities(e, handler.NewPlanHandler(plans), handler.NewDeviceHandler(devices), handler.NewSubscriptionHandler(subscriptions), handler.NewPaymentHandler(payments))

	// Payment events land in logs/payments.log via the broker.
	go func() {
		if err := queue.StartPaymentConsumer(); err != nil {
			log.Printf("payment consumer stopped: %v", err)
		}
	}()

	// Optional expired-session sweep.  Read paths never depend on it;
	// expiry stays a computed predicate either way.
	if cfg.SessionSweep > 0 {
		go func() {
			t := time.NewTicker(cfg.SessionSweep)
			defer t.Stop()
			for range t.C {
				swept, err := sessions.DeleteExpired(context.Background(), time.Now().UTC())
				if err != nil {
					log.Printf("session sweep failed: %v", err)
					continue
				}
				if swept > 0 {
					log.Printf("session sweep removed %d expired rows", swept)
				}
			}
		}()
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
