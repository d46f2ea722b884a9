package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/sbilibin2017/blog-api/docs"
	"github.com/sbilibin2017/blog-api/internal/handlers"
	"github.com/sbilibin2017/blog-api/internal/logger"
	"github.com/sbilibin2017/blog-api/internal/middlewares"
	"github.com/sbilibin2017/blog-api/internal/repositories"
	"github.com/sbilibin2017/blog-api/internal/services"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title blog-api
// @version 1.0.0
// @description Blog posts, user signup and contact messages backed by MongoDB
// @BasePath /
// @schemes http
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, logLevel, corsOrigins,
		mongoURI, mongoDB, mongoTimeoutSecond,
		redisAddr, redisPassword, redisDB, redisExpSecond,
		kafkaBrokers, kafkaContactTopic,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort, logLevel, corsOrigins,
		mongoURI, mongoDB, mongoTimeoutSecond,
		redisAddr, redisPassword, redisDB, redisExpSecond,
		kafkaBrokers, kafkaContactTopic,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Build version: %s\nBuild date: %s\nBuild commit: %s\n", buildVersion, buildDate, buildCommit)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns
// the application, MongoDB, Redis and Kafka configuration.
// An empty redisAddr or kafkaBrokers disables that integration;
// empty corsOrigins allows any origin.
func parseConfig(path string) (
	appHost, appPort, logLevel string, corsOrigins []string,
	mongoURI, mongoDB string, mongoTimeoutSecond int,
	redisAddr, redisPassword string, redisDB, redisExpSecond int,
	kafkaBrokers []string, kafkaContactTopic string,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "0.0.0.0")
	appPort = getEnv("APP_PORT", "5000")
	logLevel = getEnv("APP_LOG_LEVEL", "info")
	corsOrigins = splitList(getEnv("APP_CORS_ORIGINS", ""))

	// MongoDB config
	mongoURI = getEnv("MONGO_URI", "mongodb://localhost:27017")
	mongoDB = getEnv("MONGO_DB", "blog")
	if mongoTimeoutSecond, err = strconv.Atoi(getEnv("MONGO_CONNECT_TIMEOUT_SECOND", "10")); err != nil {
		return
	}

	// Redis config
	redisAddr = getEnv("REDIS_ADDR", "")
	redisPassword = getEnv("REDIS_PASSWORD", "")
	if redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	if redisExpSecond, err = strconv.Atoi(getEnv("REDIS_CACHE_EXP_SECOND", "60")); err != nil {
		return
	}

	// Kafka config
	kafkaBrokers = splitList(getEnv("KAFKA_BROKERS", ""))
	kafkaContactTopic = getEnv("KAFKA_CONTACT_TOPIC", "contacts")

	return
}

// splitList splits a comma separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// newRouter registers the API routes behind recovery, logging and CORS middleware.
func newRouter(
	log *zap.SugaredLogger,
	corsOrigins []string,
	blogLister handlers.BlogLister,
	blogCreator handlers.BlogCreator,
	blogLiker handlers.BlogLiker,
	signUpper handlers.SignUpper,
	contactSubmitter handlers.ContactSubmitter,
) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(log))
	r.Use(middlewares.CORSMiddleware(corsOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/blogs", handlers.NewListBlogsHandler(blogLister))
		r.Post("/blogs", handlers.NewCreateBlogHandler(blogCreator))
		r.Patch("/blogs/like/{id}", handlers.NewLikeBlogHandler(blogLiker))
		r.Post("/signup", handlers.NewSignupHandler(signUpper))
		r.Post("/contact", handlers.NewContactHandler(contactSubmitter))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}

// run initializes the logger, MongoDB, the optional Redis cache and Kafka
// writer, and the HTTP server. It blocks until a shutdown signal arrives.
func run(ctx context.Context,
	appHost, appPort, logLevel string, corsOrigins []string,
	mongoURI, mongoDB string, mongoTimeoutSecond int,
	redisAddr, redisPassword string, redisDB, redisExpSecond int,
	kafkaBrokers []string, kafkaContactTopic string,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	log := logger.Log
	log.Infof("Logger initialized with level %s", logLevel)

	// Connect to MongoDB
	log.Infow("Connecting to MongoDB", "database", mongoDB)
	client, err := repositories.ConnectMongo(ctx, mongoURI, time.Duration(mongoTimeoutSecond)*time.Second)
	if err != nil {
		log.Errorw("MongoDB connection error", "error", err)
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Errorw("MongoDB disconnect error", "error", err)
		}
	}()
	log.Info("Connection Successful")

	db := client.Database(mongoDB)
	if err := repositories.EnsureIndexes(ctx, db); err != nil {
		log.Errorw("MongoDB index error", "error", err)
		return err
	}

	// Connect to Redis
	var blogCache services.BlogCache
	if redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Errorw("Redis connection error", "error", err)
			return err
		}
		defer rdb.Close()
		blogCache = repositories.NewBlogCacheRepository(rdb, time.Duration(redisExpSecond)*time.Second)
		log.Infow("Blog list cache enabled", "addr", redisAddr)
	}

	// Kafka writer
	var kafkaWriter services.KafkaWriter
	if len(kafkaBrokers) > 0 {
		kw := &kafka.Writer{
			Addr:                   kafka.TCP(kafkaBrokers...),
			Topic:                  kafkaContactTopic,
			Balancer:               &kafka.LeastBytes{},
			BatchTimeout:           10 * time.Millisecond,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		}
		defer kw.Close()
		kafkaWriter = kw
		log.Infow("Contact events enabled", "brokers", kafkaBrokers, "topic", kafkaContactTopic)
	}

	// Initialize repositories
	blogRepo := repositories.NewBlogRepository(db)
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	contactRepo := repositories.NewContactRepository(db)

	// Initialize services
	blogService := services.NewBlogService(blogRepo, blogRepo, blogCache)
	authService := services.NewAuthService(userReadRepo, userWriteRepo)
	contactService := services.NewContactService(contactRepo, kafkaWriter)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: newRouter(log, corsOrigins, blogService, blogService, blogService, authService, contactService),
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	}

	log.Info("HTTP server stopped gracefully")
	return nil
}
