package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"bookstore/internal/book"
	"bookstore/internal/httpx"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const maxRequestBytes = 1 << 20

func main() {
	_ = godotenv.Load()

	serverAddress := getEnv("APP_ADDR", ":8080")
	mongoURI := mustGetEnv("MONGO_URI")
	databaseName := getEnv("MONGO_DB", "bookstore")
	rateLimitRPS := getEnvFloat("RATE_LIMIT_RPS", 50)
	rateLimitBurst := getEnvInt("RATE_LIMIT_BURST", 100)

	client := mustOpenMongo(mongoURI)
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	repo := book.NewMongoRepo(client.Database(databaseName).Collection("books"), 5*time.Second)
	if err := repo.EnsureIndexes(context.Background()); err != nil {
		log.Fatalf("cannot create indexes: %v", err)
	}
	log.Println("book indexes OK")

	service := book.NewService(repo)
	handler := book.NewHTTPHandler(service)

	router := http.NewServeMux()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		pingCtx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := client.Ping(pingCtx, nil); err != nil {
			http.Error(w, "store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("GET /books", handler.List)
	router.HandleFunc("POST /books", handler.Create)
	router.HandleFunc("GET /books/{id}", handler.GetByID)
	router.HandleFunc("PUT /books/{id}", handler.Update)
	router.HandleFunc("DELETE /books/{id}", handler.Delete)

	router.HandleFunc("GET /search", handler.Search)

	router.HandleFunc("GET /stats/inventory", handler.TotalStock)
	router.HandleFunc("GET /stats/bestsellers", handler.TopBestsellers)
	router.HandleFunc("GET /stats/authors", handler.TopStockedAuthors)

	rateLimit := httpx.NewRateLimitMiddleware(rateLimitRPS, rateLimitBurst)

	var root http.Handler = router
	root = httpx.RequestSizeLimitMiddleware(maxRequestBytes)(root)
	root = rateLimit.Middleware(root)
	root = httpx.RecoveryMiddleware(root)
	root = httpx.AccessLogMiddleware(root)
	root = httpx.RequestIDMiddleware(root)

	httpServer := &http.Server{
		Addr:         serverAddress,
		Handler:      root,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on %s", serverAddress)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func mustGetEnv(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	log.Fatalf("missing required environment variable: %s", key)
	return ""
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func mustOpenMongo(uri string) *mongo.Client {
	ctx := context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("cannot create mongo client: %v", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		log.Fatalf("cannot ping mongodb (%s): %v", redactURI(uri), err)
	}
	log.Println("mongodb connection OK")
	return client
}

func redactURI(uri string) string {
	const marker = "://"
	start := strings.Index(uri, marker)
	if start < 0 {
		return uri
	}
	start += len(marker)
	end := strings.Index(uri[start:], "@")
	if end < 0 {
		return uri
	}
	return uri[:start] + "***" + uri[start+end:]
}
