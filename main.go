package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"portfolio-api/handlers"
	"portfolio-api/internal/config"
	"portfolio-api/internal/database"
	"portfolio-api/internal/mailer"
	"portfolio-api/internal/sessions"
	"portfolio-api/internal/storage"
	"portfolio-api/internal/store"
	"portfolio-api/internal/users"
	"portfolio-api/pkg/logger"
	"portfolio-api/pkg/metrics"
	"portfolio-api/pkg/middleware"
)

var startTime = time.Now()

// stores bundles every persistence backend behind its interface so the rest
// of main does not care whether Mongo is reachable.
type stores struct {
	posts        store.PostStore
	projects     store.ProjectStore
	testimonials store.TestimonialStore
	contacts     store.ContactStore
	subscribers  store.SubscriberStore
	analytics    store.AnalyticsStore
	settings     store.SettingsStore
	users        store.UserStore
	sessions     sessions.Repository
}

func main() {
	// logging level is controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v minio=%v email=%v",
		cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.MinIO.Endpoint != "", cfg.Email.APIKey != "")

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.CORS())

	// Connect to Redis early so the rate limiter and token blacklist can use it
	rdb := connectRedis(cfg)
	if rdb != nil {
		sessions.SetBlacklistClient(rdb)
	}

	ctx := context.Background()
	db := connectMongo(ctx, cfg)
	st := buildStores(db)
	st.sessions = sessionRepo(db, rdb)
	media := buildStorage(cfg)
	mail := mailer.New(cfg.Email)

	usersSvc := users.NewService(st.users)
	sessionsSvc := sessions.NewService(st.sessions)

	bootCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	if err := usersSvc.EnsureAdmin(bootCtx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name); err != nil {
		logger.Errorf("admin bootstrap failed: %v", err)
	}
	cancel()

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness reports per-dependency state; memory fallbacks still count as
	// ready so a dev setup with no infrastructure passes
	r.GET("/ready", func(c *gin.Context) {
		deps := gin.H{
			"mongo": db != nil,
			"redis": rdb != nil,
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": time.Since(startTime).String()})
	})

	public := r.Group("/api")
	if cfg.RateLimit.Enabled {
		public.Use(rateLimiter(cfg, rdb))
	}
	admin := r.Group("/api/admin")
	admin.Use(middleware.RequireAdmin(cfg.JWT.Secret))

	handlers.NewAuthHandler(cfg, usersSvc, sessionsSvc).Register(public, admin)
	handlers.NewBlogHandler(st.posts).Register(public, admin)
	handlers.NewProjectsHandler(st.projects).Register(public, admin)
	handlers.NewTestimonialsHandler(st.testimonials, mail).Register(public, admin)
	handlers.NewContactHandler(st.contacts, st.analytics, mail).Register(public, admin)
	handlers.NewNewsletterHandler(st.subscribers, st.analytics, mail).Register(public, admin)
	handlers.NewAnalyticsHandler(st.analytics).Register(public, admin)
	handlers.NewSettingsHandler(st.settings).Register(public, admin)
	handlers.NewMediaHandler(media, cfg.Uploads.MaxBytes).Register(admin)
	handlers.NewDashboardHandler(st.posts, st.projects, st.testimonials, st.contacts, st.subscribers, st.analytics).Register(admin)
	handlers.RegisterSwagger(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("portfolio-api listening on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}

// connectRedis returns nil when Redis is not configured or unreachable;
// callers treat nil as "feature off".
func connectRedis(cfg *config.Config) *redis.Client {
	if cfg.Redis.Host == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
		return nil
	}
	logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
	return client
}

// connectMongo retries with backoff to tolerate startup races, returning nil
// when Mongo is not configured or stays unreachable.
func connectMongo(ctx context.Context, cfg *config.Config) *mongo.Database {
	if cfg.MongoDB.URI == "" {
		return nil
	}
	const maxAttempts = 5
	backoff := time.Second
	var client *mongo.Client
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		client, err = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if err == nil {
			return client.Database(cfg.MongoDB.Database)
		}
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, err)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	logger.Warnf("could not connect to MongoDB after %d attempts, using memory-backed stores", maxAttempts)
	return nil
}

func buildStores(db *mongo.Database) *stores {
	if db == nil {
		return &stores{
			posts:        store.NewMemoryPostStore(),
			projects:     store.NewMemoryProjectStore(),
			testimonials: store.NewMemoryTestimonialStore(),
			contacts:     store.NewMemoryContactStore(),
			subscribers:  store.NewMemorySubscriberStore(),
			analytics:    store.NewMemoryAnalyticsStore(),
			settings:     store.NewMemorySettingsStore(),
			users:        store.NewMemoryUserStore(),
		}
	}
	return &stores{
		posts:        store.NewMongoPostStore(db),
		projects:     store.NewMongoProjectStore(db),
		testimonials: store.NewMongoTestimonialStore(db),
		contacts:     store.NewMongoContactStore(db),
		subscribers:  store.NewMongoSubscriberStore(db),
		analytics:    store.NewMongoAnalyticsStore(db),
		settings:     store.NewMongoSettingsStore(db),
		users:        store.NewMongoUserStore(db),
	}
}

// sessionRepo prefers Redis for refresh sessions, then Mongo, then memory.
func sessionRepo(db *mongo.Database, rdb *redis.Client) sessions.Repository {
	if rdb != nil {
		return sessions.NewRedisRepository(rdb, "session:")
	}
	if db != nil {
		return sessions.NewMongoRepository(db.Collection("sessions"))
	}
	return sessions.NewMemoryRepository()
}

func buildStorage(cfg *config.Config) storage.Storage {
	if cfg.MinIO.Endpoint == "" {
		return storage.NewMemoryStorage()
	}
	st, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		logger.Warnf("failed to initialize MinIO (%v), using memory-backed storage", err)
		return storage.NewMemoryStorage()
	}
	return st
}

func rateLimiter(cfg *config.Config, rdb *redis.Client) gin.HandlerFunc {
	if cfg.RateLimit.UseRedis && rdb != nil {
		window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
		return middleware.RedisRateLimit(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, window)
	}
	return middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
}
