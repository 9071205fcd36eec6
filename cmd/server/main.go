package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"paperdeck/config"
	"paperdeck/internal/cache"
	"paperdeck/internal/repository"
	"paperdeck/internal/service"
	"paperdeck/internal/transport/rest"
	"paperdeck/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	redisAddr := strings.TrimPrefix(cfg.RedisAddr, "redis://")
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	paperRepo := repository.NewPaperRepo(db)
	questionRepo := repository.NewQuestionRepo(db)

	// Initialize caches
	graphCache := cache.NewGraphCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService()
	conditionSvc := service.NewConditionService(questionRepo, graphCache)
	paperSvc := service.NewPaperService(paperRepo, questionRepo)
	questionSvc := service.NewQuestionService(questionRepo, paperRepo, conditionSvc)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	questionSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:      authSvc,
		PaperService:     paperSvc,
		QuestionService:  questionSvc,
		ConditionService: conditionSvc,
		WSHub:            wsHub,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST/GET /v1/papers")
		log.Println("  GET/PUT/DELETE /v1/papers/{paperId}")
		log.Println("  POST/GET /v1/papers/{paperId}/questions")
		log.Println("  POST /v1/papers/{paperId}/questions/{questionId}/condition/validate")
		log.Println("  PUT  /v1/papers/{paperId}/questions/{questionId}/condition")
		log.Println("  GET  /v1/papers/{paperId}/questions/{questionId}/dependencies")
		log.Println("  GET  /v1/papers/{paperId}/graph")
		log.Println("  WS   /v1/ws/papers/{paperId}")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
