package main

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/chefbook-app/chefbook/libs/config"
	"github.com/chefbook-app/chefbook/libs/db"
	"github.com/chefbook-app/chefbook/libs/httpx"
	"github.com/chefbook-app/chefbook/libs/kafkax"
	otelx "github.com/chefbook-app/chefbook/libs/otel"
	"github.com/chefbook-app/chefbook/libs/runtime"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/admission"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/availability"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/cache"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/consumer"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/distance"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/handlers"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/inbox"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/outbox"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/storage"
)

func main() {
	service := config.String("SERVICE_NAME", "booking-service")
	port, err := config.Port("PORT", "8083")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		panic(err)
	}
	pool, err := db.Open(ctx, dbURL)
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	var rdb *redis.Client
	var slotCache *cache.AvailabilityCache
	if addr := strings.TrimSpace(config.String("REDIS_ADDR", "")); addr != "" {
		redisDB := 0
		if v, err := strconv.Atoi(config.String("REDIS_DB", "0")); err == nil && v >= 0 {
			redisDB = v
		}
		rdb = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: config.String("REDIS_PASSWORD", ""),
			DB:       redisDB,
		})
		defer func() { _ = rdb.Close() }()
		slotCache = cache.NewAvailabilityCache(rdb, parseCacheTTL(config.String("SLOT_CACHE_TTL_SECONDS", "60")), logger)
		logger.Info("slot cache enabled", "addr", addr)
	}

	chefRepo := storage.NewChefRepository(pool)
	outboxRepo := outbox.NewRepository(pool)
	sessionRepo := storage.NewSessionRepository(pool, outboxRepo)

	travelProvider, err := distance.NewProvider(logger, config.String("ROUTING_GRPC_ADDR", ""), parseSpeed(config.String("TRAVEL_SPEED_KMH", "30")))
	if err != nil {
		logger.Error("travel provider init failed", "err", err)
		panic(err)
	}

	engine := availability.NewEngine(chefRepo, chefRepo, chefRepo, sessionRepo, chefRepo, chefRepo, travelProvider)
	control := admission.New(sessionRepo, chefRepo, chefRepo, chefRepo, chefRepo, travelProvider, storage.IsConflict, logger)

	outboxPublisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   config.String("KAFKA_BROKERS", ""),
		PollEvery: 2 * time.Second,
		BatchSize: 50,
	})
	go outboxPublisher.Run(ctx)

	inboxRepo := inbox.NewRepository(pool)
	if topic := strings.TrimSpace(config.String("KAFKA_CONSUME_TOPIC", "chef.approved.v1")); topic != "" {
		consumerCfg := consumer.Config{
			Brokers: config.String("KAFKA_BROKERS", ""),
			GroupID: config.String("KAFKA_GROUP_ID", "booking-service"),
			Topic:   topic,
		}
		chefConsumer := consumer.New(logger, inboxRepo, consumerCfg, consumer.ChefApprovedHandler(chefRepo, logger))
		go chefConsumer.Run(ctx)
	}

	if err := startGrpcServer(ctx, logger, engine); err != nil {
		logger.Error("grpc server init failed", "err", err)
	}

	availabilityHandler := handlers.NewAvailabilityHandler(engine, slotCache, logger)
	bookingHandler := handlers.NewBookingHandler(control, sessionRepo, slotCache, logger)
	chefHandler := handlers.NewChefHandler(chefRepo, slotCache, logger)

	mux := runtime.NewBaseMuxWithReady(
		runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(pool)},
		runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(config.String("KAFKA_BROKERS", ""))},
	)
	mux.HandleFunc("/api/v1/public/slots", availabilityHandler.Slots)
	mux.HandleFunc("/api/v1/public/slots/cooking", availabilityHandler.SlotsWithCookingTime)
	mux.HandleFunc("/api/v1/public/availability/check", availabilityHandler.Check)
	mux.HandleFunc("/api/v1/public/book", bookingHandler.Create)
	mux.HandleFunc("/api/v1/sessions", bookingHandler.List)
	mux.HandleFunc("/api/v1/sessions/cancel", bookingHandler.Cancel)
	mux.HandleFunc("/api/v1/chef/schedule", chefHandler.Schedule)
	mux.HandleFunc("/api/v1/chef/blocked-dates", chefHandler.BlockedDates)
	mux.HandleFunc("/api/v1/chef/time-settings", chefHandler.TimeSettings)
	mux.HandleFunc("/api/v1/chef/time-settings/reset", chefHandler.ResetTimeSettings)
	mux.HandleFunc("/api/v1/chef/dishes", chefHandler.Dishes)
	mux.HandleFunc("/api/v1/chef/menus", chefHandler.Menus)

	limitPerMinute := 120
	if v, err := strconv.Atoi(config.String("RATE_LIMIT_PER_MINUTE", "120")); err == nil && v > 0 {
		limitPerMinute = v
	}
	var rateLimitMW httpx.Middleware
	if rdb != nil {
		rl := httpx.NewRedisRateLimiter(rdb, limitPerMinute, time.Minute, config.String("RATE_LIMIT_PREFIX", "booking"))
		rateLimitMW = rl.Middleware(logger, isTruthy(config.String("RATE_LIMIT_FAIL_OPEN", "true")))
		logger.Info("rate limiting enabled (redis)", "per_minute", limitPerMinute)
	} else {
		rl := httpx.NewRateLimiter(limitPerMinute, time.Minute)
		rateLimitMW = rl.Middleware()
		logger.Info("rate limiting enabled (in-memory)", "per_minute", limitPerMinute)
	}

	httpHandler := httpx.Chain(mux,
		httpx.WithCORS(httpx.CORSPolicy{
			AllowedOrigins:   parseList(config.String("CORS_ALLOWED_ORIGINS", "")),
			AllowedMethods:   parseList(config.String("CORS_ALLOWED_METHODS", "GET,POST,PUT,DELETE,OPTIONS")),
			AllowedHeaders:   parseList(config.String("CORS_ALLOWED_HEADERS", "Content-Type,X-Request-Id,X-Chef-Id,Idempotency-Key")),
			AllowCredentials: isTruthy(config.String("CORS_ALLOW_CREDENTIALS", "false")),
			MaxAge:           10 * time.Minute,
		}),
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithBodyLimit(1<<20),
		rateLimitMW,
	)
	httpHandler = otelhttp.NewHandler(httpHandler, "booking")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}

func isTruthy(s string) bool {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}

func parseList(raw string) []string {
	items := strings.Split(raw, ",")
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseSpeed(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v <= 0 {
		return 30
	}
	return v
}

func parseCacheTTL(raw string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || secs <= 0 {
		return 60 * time.Second
	}
	return time.Duration(secs) * time.Second
}
