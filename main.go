package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"greennest/catalog"
	"greennest/db"
	"greennest/globals"
	"greennest/live"
	"greennest/orders"
	"greennest/ratelim"
	"greennest/rdx"
	"greennest/routes"
	"greennest/seed"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		duration := time.Since(start)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, duration)
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func setupRouter(rateLimiter *ratelim.RateLimiter, plantHandler *catalog.Handler, orderHandler *orders.Handler, hub *live.Hub) *httprouter.Router {
	router := httprouter.New()
	router.GET("/health", Index)

	routes.AddStaticRoutes(router)
	routes.AddAuthRoutes(router, rateLimiter)
	routes.AddPlantRoutes(router, plantHandler)
	routes.AddOrderRoutes(router, orderHandler, rateLimiter)
	routes.AddCartRoutes(router)
	routes.AddLiveRoutes(router, hub)

	return router
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	seedOnly := flag.Bool("seed", false, "seed the catalog and admin user, then exit")
	flag.Parse()

	if err := db.Connect(); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Close(ctx); err != nil {
			log.Printf("MongoDB disconnect error: %v", err)
		}
	}()

	if *seedOnly {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := seed.Run(ctx); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		return
	}

	if err := rdx.Connect(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer rdx.Close()

	hub := live.NewHub()
	go hub.Run()
	defer hub.Stop()

	plantStore := catalog.NewStore(db.PlantsCollection)
	plantHandler := catalog.NewHandler(plantStore)

	orderStore := orders.NewStore(db.OrdersCollection)
	orderBuilder := orders.NewBuilder(plantStore)
	orderHandler := orders.NewHandler(orderStore, orderBuilder, hub)

	rateLimiter := ratelim.NewRateLimiter()
	router := setupRouter(rateLimiter, plantHandler, orderHandler, hub)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{globals.EnvOr("CORS_ORIGIN", "*")},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := securityHeaders(loggingMiddleware(c.Handler(router)))

	port := globals.EnvOr("PORT", "4000")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("GreenNest API listening on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
